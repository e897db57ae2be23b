package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quadlens/quadlens/internal/types"
)

func sampleReport() *types.Report {
	r := &types.Report{SubmissionID: 3, Filename: "app.py"}
	r.SetResult(types.CatSecurity, types.CategoryResult{
		Count: 1,
		Findings: []types.Finding{{
			Category: types.CatSecurity,
			Issue:    "Hardcoded password",
			Line:     1,
			Snippet:  `password = "x"`,
			Severity: types.SevHigh,
			Fix:      "Use environment variables or secret management system",
		}},
	})
	r.SetResult(types.CatQuality, types.CategoryResult{
		Count: 1,
		Findings: []types.Finding{{
			Category: types.CatQuality,
			Issue:    "Line too long",
			Line:     9,
			Severity: types.SevLow,
			Fix:      "Break into multiple lines (PEP 8: max 79-120 chars)",
		}},
	})
	return r
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(), PrintOptions{})
	out := buf.String()

	for _, want := range []string{
		"app.py (submission #3)",
		"Hardcoded password",
		"HIGH",
		"Line too long",
		"Total issues: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal writer should get no ANSI codes")
	}
}

func TestPrintReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, &types.Report{Filename: "clean.py"}, PrintOptions{})
	if got := buf.String(); got != "clean.py: no issues found\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPrintReportErrors(t *testing.T) {
	r := sampleReport()
	r.Errors = []string{"performance: connection reset"}
	var buf bytes.Buffer
	PrintReport(&buf, r, PrintOptions{})
	if !strings.Contains(buf.String(), "analyzer error: performance: connection reset") {
		t.Fatalf("best-effort errors must be printed:\n%s", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, 4, 11)
	out := buf.String()
	if !strings.Contains(out, "Files analyzed: 4") || !strings.Contains(out, "Issues found: 11") {
		t.Fatalf("unexpected summary: %q", out)
	}
}
