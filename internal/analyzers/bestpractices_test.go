package analyzers

import (
	"strings"
	"testing"

	"github.com/quadlens/quadlens/internal/types"
)

func TestBestPracticesBareExcept(t *testing.T) {
	text := "try:\n    risky()\nexcept:\n    pass\n"
	a := NewBestPractices(nil)
	fs := a.Analyze(text, "app.py")
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %+v", fs)
	}
	f := fs[0]
	if f.Issue != "Bare except clause catches all exceptions" || f.Line != 3 || f.Severity != types.SevMedium {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

// Python conventions do not apply to files in other languages.
func TestBestPracticesLanguageGate(t *testing.T) {
	text := "try:\n    risky()\nexcept:\n    pass\n"
	a := NewBestPractices(nil)
	if fs := a.Analyze(text, "main.go"); len(fs) != 0 {
		t.Fatalf("expected no findings for a Go file, got %+v", fs)
	}
}

func TestBestPracticesMutableDefault(t *testing.T) {
	text := "def collect(items=[]):\n    \"\"\"Doc.\"\"\"\n    return items\n"
	a := NewBestPractices(nil)
	fs := a.Analyze(text, "app.py")
	if len(fs) != 1 || fs[0].Issue != "Mutable default argument" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
	if fs[0].Severity != types.SevHigh {
		t.Fatalf("mutable default should be HIGH, got %s", fs[0].Severity)
	}
}

func TestBestPracticesPrintGatedByMain(t *testing.T) {
	withMain := "print(x)\nif __name__ == \"__main__\":\n    run()\n"
	a := NewBestPractices(nil)
	for _, f := range a.Analyze(withMain, "app.py") {
		if f.Issue == "Print statement in production code" {
			t.Fatalf("print under __main__ guard should not be flagged: %+v", f)
		}
	}

	fs := a.Analyze("print(x)\n", "app.py")
	if len(fs) != 1 || fs[0].Issue != "Print statement in production code" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}

func TestBestPracticesMagicNumberExclusions(t *testing.T) {
	text := strings.Join([]string{
		"timeout = 500",
		"for i in range(100):",
		"    time.sleep(30)",
	}, "\n")
	a := NewBestPractices(nil)
	var magic []types.Finding
	for _, f := range a.Analyze(text, "app.py") {
		if f.Issue == "Magic number detected" {
			magic = append(magic, f)
		}
	}
	if len(magic) != 1 || magic[0].Line != 1 {
		t.Fatalf("expected one magic-number finding at line 1, got %+v", magic)
	}
}

func TestBestPracticesMagicNumberInCommentIgnored(t *testing.T) {
	a := NewBestPractices(nil)
	for _, f := range a.Analyze("x = 1  # retries capped at 500\n", "app.py") {
		if f.Issue == "Magic number detected" {
			t.Fatalf("numbers in comments should be ignored: %+v", f)
		}
	}
}

func TestBestPracticesDeepNestingOncePerFile(t *testing.T) {
	deep := strings.Repeat(" ", 20) + "x = f(y)"
	text := deep + "\n" + deep + "\n"
	a := NewBestPractices(nil)
	var nesting []types.Finding
	for _, f := range a.Analyze(text, "app.py") {
		if strings.HasPrefix(f.Issue, "Deeply nested code") {
			nesting = append(nesting, f)
		}
	}
	if len(nesting) != 1 || nesting[0].Line != 1 {
		t.Fatalf("expected one nesting finding at line 1, got %+v", nesting)
	}
}

func TestBestPracticesCommentedOutCode(t *testing.T) {
	text := strings.Join([]string{
		"# old = compute(x)",
		"# if old > limit:",
		"#     emit(old)",
		"x = 1",
	}, "\n")
	a := NewBestPractices(nil)
	var hits []types.Finding
	for _, f := range a.Analyze(text, "app.py") {
		if f.Issue == "Large block of commented-out code" {
			hits = append(hits, f)
		}
	}
	if len(hits) != 1 || hits[0].Line != 1 {
		t.Fatalf("expected one commented-code finding at line 1, got %+v", hits)
	}
}

func TestBestPracticesMixedNaming(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteString("myValue = raw_input\n")
	}
	a := NewBestPractices(nil)
	var hits []types.Finding
	for _, f := range a.Analyze(b.String(), "app.py") {
		if f.Issue == "Inconsistent naming convention" {
			hits = append(hits, f)
		}
	}
	if len(hits) != 1 || hits[0].Line != 1 {
		t.Fatalf("expected one file-scoped naming finding, got %+v", hits)
	}
}

func TestBestPracticesTodoMarker(t *testing.T) {
	a := NewBestPractices(nil)
	fs := a.Analyze("# TODO: handle retries\n", "app.py")
	if len(fs) != 1 || fs[0].Issue != "TODO/FIXME comment found" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := detectLanguage("app.py"); got != "python" {
		t.Fatalf("app.py: got %q", got)
	}
	if got := detectLanguage("dir/main.go"); got != "go" {
		t.Fatalf("main.go: got %q", got)
	}
}
