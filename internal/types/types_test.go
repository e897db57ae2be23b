package types

import "testing"

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SevLow, SevMedium, SevHigh, SevCritical} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Severity("WARN").Valid() {
		t.Error("unknown severity accepted")
	}
}

func TestSetResultKeepsTotal(t *testing.T) {
	var r Report
	r.SetResult(CatSecurity, CategoryResult{Count: 2})
	r.SetResult(CatBestPractices, CategoryResult{Count: 3})
	if r.TotalIssues != 5 {
		t.Fatalf("TotalIssues = %d, want 5", r.TotalIssues)
	}
	r.SetResult(CatSecurity, CategoryResult{Count: 1})
	if r.TotalIssues != 4 {
		t.Fatalf("TotalIssues after update = %d, want 4", r.TotalIssues)
	}
}

func TestAllFindingsMergeOrder(t *testing.T) {
	var r Report
	r.SetResult(CatPerformance, CategoryResult{Count: 1, Findings: []Finding{{Issue: "perf"}}})
	r.SetResult(CatSecurity, CategoryResult{Count: 1, Findings: []Finding{{Issue: "sec"}}})
	r.SetResult(CatQuality, CategoryResult{Count: 1, Findings: []Finding{{Issue: "qual"}}})

	got := r.AllFindings()
	want := []string{"sec", "qual", "perf"}
	if len(got) != len(want) {
		t.Fatalf("expected %d findings, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Issue != w {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Issue, w)
		}
	}
}
