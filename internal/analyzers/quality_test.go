package analyzers

import (
	"strings"
	"testing"

	"github.com/quadlens/quadlens/internal/types"
)

func TestQualityLongFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process():\n")
	for i := 0; i < 60; i++ {
		b.WriteString("    x = 1\n")
	}
	b.WriteString("done = 1\n")

	a := NewQuality(nil)
	fs := a.Analyze(b.String(), "app.py")

	var long, doc *types.Finding
	for i := range fs {
		switch fs[i].Issue {
		case "Long function: process()":
			long = &fs[i]
		case "Missing docstring":
			doc = &fs[i]
		}
	}
	if long == nil {
		t.Fatal("expected a long-function finding")
	}
	if long.Line != 1 || long.Severity != types.SevMedium {
		t.Fatalf("unexpected long-function finding: %+v", long)
	}
	if long.Snippet != "Function is 61 lines long" {
		t.Fatalf("unexpected snippet: %q", long.Snippet)
	}
	if doc == nil || doc.Line != 1 || doc.Severity != types.SevLow {
		t.Fatalf("expected a missing-docstring finding at line 1, got %+v", doc)
	}
}

func TestQualityShortFunctionNotFlagged(t *testing.T) {
	text := "def ok():\n    \"\"\"Doc.\"\"\"\n    return 1\n"
	a := NewQuality(nil)
	for _, f := range a.Analyze(text, "app.py") {
		if f.Issue == "Missing docstring" || strings.HasPrefix(f.Issue, "Long function") {
			t.Fatalf("unexpected finding: %+v", f)
		}
	}
}

func TestQualityLongLine(t *testing.T) {
	line := strings.Repeat("a", 130)
	a := NewQuality(nil)
	fs := a.Analyze(line, "app.py")
	if len(fs) != 1 || fs[0].Issue != "Line too long" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
	if fs[0].Snippet != strings.Repeat("a", 80)+"..." {
		t.Fatalf("snippet should be the first 80 chars: %q", fs[0].Snippet)
	}
}

func TestQualityDuplicateLines(t *testing.T) {
	dup := "result = compute_totals(order)"
	text := strings.Join([]string{dup, "x = 1", dup, "y = 2", dup}, "\n")
	a := NewQuality(nil)
	fs := a.Analyze(text, "app.py")
	if len(fs) != 1 {
		t.Fatalf("expected one duplicate finding, got %+v", fs)
	}
	f := fs[0]
	if f.Issue != "Duplicate code detected" || f.Line != 1 || f.Severity != types.SevMedium {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if !strings.Contains(f.Snippet, "Repeated 3 times") {
		t.Fatalf("unexpected snippet: %q", f.Snippet)
	}
}

func TestQualityDeterministic(t *testing.T) {
	dupA := "value = totals.setdefault(key, 0)"
	dupB := "counts[key] = counts.get(key, 0) + 1"
	text := strings.Join([]string{dupA, dupB, dupA, dupB, dupA, dupB}, "\n")
	a := NewQuality(nil)
	first := a.Analyze(text, "app.py")
	for i := 0; i < 10; i++ {
		again := a.Analyze(text, "app.py")
		if len(again) != len(first) {
			t.Fatalf("non-deterministic count: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("non-deterministic order at %d: %+v vs %+v", j, again[j], first[j])
			}
		}
	}
}
