// Package audit appends one JSONL record per analysis run, so past runs
// can be reviewed without querying the store.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quadlens/quadlens/internal/types"
)

// RunRecord summarizes one analysis run.
type RunRecord struct {
	Timestamp          time.Time `json:"timestamp"`
	RunID              string    `json:"run_id"`
	Root               string    `json:"root"`
	Mode               string    `json:"mode"` // forked | sequential
	Branch             string    `json:"branch,omitempty"`
	Commit             string    `json:"commit,omitempty"`
	FilesAnalyzed      int       `json:"files_analyzed"`
	TotalIssues        int       `json:"total_issues"`
	SecurityCount      int       `json:"security_count"`
	QualityCount       int       `json:"quality_count"`
	PerformanceCount   int       `json:"performance_count"`
	BestPracticesCount int       `json:"best_practices_count"`
	SubmissionIDs      []int64   `json:"submission_ids,omitempty"`
	Duration           string    `json:"duration"`
}

// Log appends run records to a JSONL file, preferring .git/ when present
// so the log stays out of the analyzed tree.
type Log struct {
	logPath string
}

func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".quadlens_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "quadlens_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns past records, newest first.
func (l *Log) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends one record.
func (l *Log) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// NewRunRecord assembles a record from the reports of one run.
func NewRunRecord(root, mode, branch, commit string, reports []*types.Report, duration time.Duration) RunRecord {
	rec := RunRecord{
		Timestamp:     time.Now(),
		Root:          root,
		Mode:          mode,
		Branch:        branch,
		Commit:        commit,
		FilesAnalyzed: len(reports),
		Duration:      duration.String(),
	}
	for _, r := range reports {
		rec.TotalIssues += r.TotalIssues
		rec.SecurityCount += r.Security.Count
		rec.QualityCount += r.Quality.Count
		rec.PerformanceCount += r.Performance.Count
		rec.BestPracticesCount += r.BestPractices.Count
		rec.SubmissionIDs = append(rec.SubmissionIDs, r.SubmissionID)
	}
	return rec
}
