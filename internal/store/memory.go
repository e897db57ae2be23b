package store

import (
	"context"
	"sync"
	"time"

	"github.com/quadlens/quadlens/internal/types"
)

// Row is one persisted finding as the store sees it.
type Row struct {
	ID           int64
	SubmissionID int64
	AgentType    string // set only in the merged record
	IssueType    string
	LineNumber   int
	Severity     string
	Description  string
	SuggestedFix string
	CreatedAt    time.Time
}

// MemoryStore is an in-process Primary used by tests and by local runs
// without a database. It honors the same append-only contract as the
// Postgres implementation, including duplicate rows on re-persist.
type MemoryStore struct {
	mu          sync.Mutex
	nextSubID   int64
	nextRowID   int64
	submissions map[int64]submissionRecord
	tables      map[string][]Row
	merged      []Row
}

var _ Primary = (*MemoryStore)(nil)

type submissionRecord struct {
	Filename    string
	Content     string
	ContentHash string
	CreatedAt   time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextSubID:   1,
		nextRowID:   1,
		submissions: make(map[int64]submissionRecord),
		tables:      make(map[string][]Row),
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) EnsureFindingsSchema(_ context.Context, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = nil
	}
	return nil
}

func (m *MemoryStore) InsertFindings(_ context.Context, table string, submissionID int64, findings []types.Finding) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range findings {
		m.tables[table] = append(m.tables[table], m.row(submissionID, "", f))
	}
	return len(findings), nil
}

func (m *MemoryStore) NewSubmission(_ context.Context, filename, content, contentHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.submissions[id] = submissionRecord{
		Filename:    filename,
		Content:     content,
		ContentHash: contentHash,
		CreatedAt:   time.Now().UTC(),
	}
	return id, nil
}

func (m *MemoryStore) InsertMerged(_ context.Context, submissionID int64, findings []types.Finding) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range findings {
		m.merged = append(m.merged, m.row(submissionID, string(f.Category), f))
	}
	return len(findings), nil
}

// row assumes m.mu is held.
func (m *MemoryStore) row(submissionID int64, agentType string, f types.Finding) Row {
	r := Row{
		ID:           m.nextRowID,
		SubmissionID: submissionID,
		AgentType:    agentType,
		IssueType:    f.Issue,
		LineNumber:   f.Line,
		Severity:     string(f.Severity),
		Description:  f.Snippet,
		SuggestedFix: f.Fix,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextRowID++
	return r
}

// TableRows returns a copy of the named findings table, for tests.
func (m *MemoryStore) TableRows(table string) []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Row(nil), m.tables[table]...)
}

// MergedRows returns a copy of the merged findings record, for tests.
func (m *MemoryStore) MergedRows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Row(nil), m.merged...)
}

// SubmissionCount returns how many submissions were registered.
func (m *MemoryStore) SubmissionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}
