// Package store provides the durable findings store consumed by analyzers
// and the coordinator. Findings tables are append-only: inserts carry no
// uniqueness constraint beyond the auto-generated row id, so re-persisting
// the same submission id appends duplicate rows. That is the accepted
// contract; callers that re-analyze content receive a fresh submission id.
package store

import (
	"context"
	"fmt"

	"github.com/quadlens/quadlens/internal/types"
)

// Store is the append-only findings store bound to one analyzer. A forked
// deployment gives each analyzer its own Store; the degraded path shares
// the primary across all four.
type Store interface {
	// EnsureFindingsSchema creates the named findings table if absent.
	// It is idempotent and safe to call before every insert batch.
	EnsureFindingsSchema(ctx context.Context, table string) error

	// InsertFindings appends findings for a submission and returns the
	// number of rows written.
	InsertFindings(ctx context.Context, table string, submissionID int64, findings []types.Finding) (int, error)

	Close() error
}

// Primary is the main store. It is the single authoritative submission id
// generator and the destination of the merged findings record.
type Primary interface {
	Store

	// NewSubmission registers one immutable unit of source text and
	// returns its id. Ids are assigned once and increase monotonically.
	NewSubmission(ctx context.Context, filename, content, contentHash string) (int64, error)

	// InsertMerged appends findings into the merged record, tagged with
	// their originating category.
	InsertMerged(ctx context.Context, submissionID int64, findings []types.Finding) (int, error)
}

// FindingsTable maps an analyzer category to its dedicated table name.
func FindingsTable(c types.Category) string {
	switch c {
	case types.CatSecurity:
		return "security_findings"
	case types.CatQuality:
		return "quality_findings"
	case types.CatPerformance:
		return "performance_findings"
	case types.CatBestPractices:
		return "best_practices_findings"
	}
	return fmt.Sprintf("%s_findings", c)
}
