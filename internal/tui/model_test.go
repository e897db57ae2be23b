package tui

import (
	"testing"

	"github.com/quadlens/quadlens/internal/types"
)

func testReports() []*types.Report {
	r := &types.Report{SubmissionID: 1, Filename: "app.py"}
	r.SetResult(types.CatSecurity, types.CategoryResult{
		Count: 1,
		Findings: []types.Finding{
			{Category: types.CatSecurity, Issue: "Hardcoded password", Line: 1, Severity: types.SevHigh},
		},
	})
	r.SetResult(types.CatQuality, types.CategoryResult{
		Count: 2,
		Findings: []types.Finding{
			{Category: types.CatQuality, Issue: "Line too long", Line: 4, Severity: types.SevLow},
			{Category: types.CatQuality, Issue: "Missing docstring", Line: 7, Severity: types.SevLow},
		},
	})
	return []*types.Report{r}
}

func TestNewModelRows(t *testing.T) {
	m := NewModel(testReports(), nil)
	if len(m.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m.entries))
	}
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 table rows, got %d", len(rows))
	}
	if rows[0][0] != "security" || rows[0][4] != "Hardcoded password" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
}

func TestApplyCategoryFilter(t *testing.T) {
	m := NewModel(testReports(), nil)
	m.categoryFilter = types.CatQuality
	m.applyFilters()
	if len(m.filtered) != 2 {
		t.Fatalf("expected 2 quality entries, got %d", len(m.filtered))
	}
	for _, e := range m.filtered {
		if e.Finding.Category != types.CatQuality {
			t.Fatalf("filter leaked: %+v", e)
		}
	}
}

func TestApplySeverityFilter(t *testing.T) {
	m := NewModel(testReports(), nil)
	m.severityFilter = types.SevHigh
	m.applyFilters()
	if len(m.filtered) != 1 || m.filtered[0].Finding.Issue != "Hardcoded password" {
		t.Fatalf("unexpected filtered set: %+v", m.filtered)
	}
}

func TestApplySearchFilter(t *testing.T) {
	m := NewModel(testReports(), nil)
	m.searchQuery = "docstring"
	m.applyFilters()
	if len(m.filtered) != 1 || m.filtered[0].Finding.Issue != "Missing docstring" {
		t.Fatalf("unexpected filtered set: %+v", m.filtered)
	}
}

func TestFilterCycles(t *testing.T) {
	c := types.Category("")
	for i := 0; i < len(categoryCycle); i++ {
		c = nextCategory(c)
	}
	if c != "" {
		t.Fatalf("category cycle should return to unfiltered, got %q", c)
	}
	s := types.Severity("")
	for i := 0; i < len(severityCycle); i++ {
		s = nextSeverity(s)
	}
	if s != "" {
		t.Fatalf("severity cycle should return to unfiltered, got %q", s)
	}
}

func TestSeverityText(t *testing.T) {
	if severityText(types.SevCritical) != "CRIT" || severityText(types.SevMedium) != "MED" {
		t.Fatal("unexpected severity abbreviations")
	}
}
