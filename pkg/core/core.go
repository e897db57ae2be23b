package core

import (
	"context"
	"fmt"

	"github.com/quadlens/quadlens/internal/config"
	"github.com/quadlens/quadlens/internal/coordinator"
	"github.com/quadlens/quadlens/internal/engine"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Result = engine.Result
type Report = types.Report
type Finding = types.Finding
type Severity = types.Severity
type Category = types.Category
type StoreConfig = config.StoreConfig

// Analyze is the stable entrypoint for other programs: it connects to the
// configured stores, runs the four analyzers over cfg.Root, and returns the
// per-file reports.
func Analyze(ctx context.Context, stores StoreConfig, cfg Config) (Result, error) {
	if err := stores.Validate(); err != nil {
		return Result{}, err
	}
	primary, err := store.OpenPostgres(ctx, stores.PrimaryURL)
	if err != nil {
		return Result{}, fmt.Errorf("open primary store: %w", err)
	}
	defer primary.Close()

	coord := coordinator.New(primary, coordinator.Config{
		SecurityForkURL:      stores.SecurityForkURL,
		QualityForkURL:       stores.QualityForkURL,
		PerformanceForkURL:   stores.PerformanceForkURL,
		BestPracticesForkURL: stores.BestPracticesForkURL,
		FailurePolicy:        coordinator.FailurePolicy(stores.FailurePolicy),
	})
	return engine.Analyze(ctx, coord, cfg)
}

// Inspect analyzes a single piece of content in-process against an in-memory
// store. Nothing touches Postgres; useful for editors and tests.
func Inspect(ctx context.Context, content, filename string) (*Report, error) {
	coord := coordinator.New(store.NewMemoryStore(), coordinator.Config{})
	return coord.Submit(ctx, content, filename)
}
