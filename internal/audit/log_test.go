package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quadlens/quadlens/internal/types"
)

func TestLogRunAndLoadHistory(t *testing.T) {
	root := t.TempDir()
	l := NewLog(root)

	for i := 1; i <= 2; i++ {
		rec := RunRecord{
			RunID:       "",
			Root:        root,
			Mode:        "sequential",
			TotalIssues: i,
			Duration:    "1s",
		}
		if err := l.LogRun(rec); err != nil {
			t.Fatalf("LogRun: %v", err)
		}
	}

	records, err := l.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].TotalIssues != 2 || records[1].TotalIssues != 1 {
		t.Fatalf("history not reversed: %+v", records)
	}
	if records[0].RunID == "" {
		t.Fatal("LogRun should assign a run id")
	}
}

func TestNewLogPrefersGitDir(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	l := NewLog(root)
	if err := l.LogRun(RunRecord{Mode: "forked"}); err != nil {
		t.Fatalf("LogRun: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "quadlens_audit.jsonl")); err != nil {
		t.Fatalf("expected audit log inside .git: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".quadlens_audit.jsonl")); !os.IsNotExist(err) {
		t.Fatal("audit log should not land in the analyzed tree when .git exists")
	}
}

func TestNewRunRecord(t *testing.T) {
	r := &types.Report{SubmissionID: 5, Filename: "a.py"}
	r.SetResult(types.CatSecurity, types.CategoryResult{Count: 2})
	r.SetResult(types.CatPerformance, types.CategoryResult{Count: 1})

	rec := NewRunRecord("/src", "forked", "main", "abc123", []*types.Report{r}, 2*time.Second)
	if rec.FilesAnalyzed != 1 || rec.TotalIssues != 3 {
		t.Fatalf("unexpected totals: %+v", rec)
	}
	if rec.SecurityCount != 2 || rec.PerformanceCount != 1 || rec.QualityCount != 0 {
		t.Fatalf("unexpected category counts: %+v", rec)
	}
	if len(rec.SubmissionIDs) != 1 || rec.SubmissionIDs[0] != 5 {
		t.Fatalf("unexpected submission ids: %+v", rec.SubmissionIDs)
	}
	if rec.Branch != "main" || rec.Commit != "abc123" || rec.Mode != "forked" {
		t.Fatalf("metadata not carried: %+v", rec)
	}
}
