// Package analyzers holds the four category analyzers. Each one is a pure
// rule-evaluation unit over raw text split into lines: identical
// (text, filename) input produces an identical ordered finding sequence.
// Persistence is the only side effect, and it goes to whichever store the
// analyzer was constructed with.
package analyzers

import (
	"context"

	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// Analyzer is the contract shared by the four category analyzers.
type Analyzer interface {
	// Category identifies which findings table and merge slot this
	// analyzer owns.
	Category() types.Category

	// Analyze detects defects in text. It is stateless and
	// deterministic; it never touches the store.
	Analyze(text, filename string) []types.Finding

	// Persist appends findings for a submission to the analyzer's bound
	// store, creating the findings table if absent. It is idempotent at
	// the schema level only: re-invoking with the same submission id
	// appends duplicate rows.
	Persist(ctx context.Context, findings []types.Finding, submissionID int64) (int, error)
}

// agent carries the store binding and persistence shared by all analyzers.
type agent struct {
	category types.Category
	store    store.Store
}

func (a agent) Category() types.Category { return a.category }

func (a agent) Persist(ctx context.Context, findings []types.Finding, submissionID int64) (int, error) {
	table := store.FindingsTable(a.category)
	if err := a.store.EnsureFindingsSchema(ctx, table); err != nil {
		return 0, err
	}
	return a.store.InsertFindings(ctx, table, submissionID, findings)
}

// ForCategory constructs the analyzer for c bound to s.
func ForCategory(c types.Category, s store.Store) Analyzer {
	switch c {
	case types.CatSecurity:
		return NewSecurity(s)
	case types.CatQuality:
		return NewQuality(s)
	case types.CatPerformance:
		return NewPerformance(s)
	case types.CatBestPractices:
		return NewBestPractices(s)
	}
	return nil
}
