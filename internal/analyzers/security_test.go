package analyzers

import (
	"strings"
	"testing"

	"github.com/quadlens/quadlens/internal/types"
)

func TestSecurityHardcodedPassword(t *testing.T) {
	a := NewSecurity(nil)
	fs := a.Analyze(`password = "admin123"`, "app.py")
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	f := fs[0]
	if f.Issue != "Hardcoded password" || f.Severity != types.SevHigh || f.Line != 1 {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

func TestSecuritySQLInjectionFString(t *testing.T) {
	a := NewSecurity(nil)
	fs := a.Analyze(`cursor.execute(f"SELECT name FROM users WHERE id = {uid}")`, "app.py")
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].Issue != "SQL injection via f-string" || fs[0].Severity != types.SevCritical {
		t.Fatalf("unexpected finding: %+v", fs[0])
	}
}

func TestSecurityDynamicEval(t *testing.T) {
	a := NewSecurity(nil)
	fs := a.Analyze("result = eval(user_input)", "app.py")
	if len(fs) != 1 || fs[0].Issue != "Dangerous function: eval()" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
	if fs[0].Severity != types.SevHigh {
		t.Fatalf("eval should be HIGH, got %s", fs[0].Severity)
	}
}

// Secrets are reported before dynamic-eval findings even when they appear
// later in the file: rule groups run in fixed order.
func TestSecurityGroupOrder(t *testing.T) {
	text := strings.Join([]string{
		"data = eval(raw)",
		`token = "abc"`,
	}, "\n")
	a := NewSecurity(nil)
	fs := a.Analyze(text, "app.py")
	if len(fs) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(fs))
	}
	if fs[0].Issue != "Hardcoded token" || fs[0].Line != 2 {
		t.Fatalf("expected token finding first, got %+v", fs[0])
	}
	if fs[1].Issue != "Dangerous function: eval()" || fs[1].Line != 1 {
		t.Fatalf("expected eval finding second, got %+v", fs[1])
	}
}

func TestSecurityClean(t *testing.T) {
	a := NewSecurity(nil)
	if fs := a.Analyze("x = load_config()\n", "app.py"); len(fs) != 0 {
		t.Fatalf("expected no findings, got %+v", fs)
	}
}
