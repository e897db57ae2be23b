// Package coordinator dispatches a submission to the four category
// analyzers and merges their findings into the primary store.
//
// A submission moves through a fixed pipeline: register (one submission id,
// assigned before any analyzer runs), dispatch (forked mode when the
// security and quality fork stores are both configured, sequential mode
// otherwise), a barrier that waits for all four analyzers, then a merge
// that writes every finding into the primary store in the fixed order
// Security, Quality, Performance, BestPractices. The merge order is a
// presentation contract, never a race outcome. There is no timeout and no
// cancellation: a hung analyzer hangs the whole submission.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quadlens/quadlens/internal/analyzers"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// FailurePolicy decides what happens when an analyzer fails.
type FailurePolicy string

const (
	// FailFast aborts the whole submission on the first analyzer error:
	// findings from analyzers that did complete are discarded and nothing
	// is merged. This is the default.
	FailFast FailurePolicy = "fail_fast"

	// BestEffort merges the categories that completed and attaches the
	// error list to the report.
	BestEffort FailurePolicy = "best_effort"
)

// Config fully determines mode selection and failure handling. It is
// validated once at construction; the coordinator never consults the
// environment.
type Config struct {
	SecurityForkURL      string
	QualityForkURL       string
	PerformanceForkURL   string
	BestPracticesForkURL string
	FailurePolicy        FailurePolicy
}

// Forked reports whether forked (parallel) mode is selected. It is a pure
// function of configuration: forks for security AND quality must both be
// present. Analyzers without their own fork fall back to the primary store
// even while siblings run forked.
func (c Config) Forked() bool {
	return c.SecurityForkURL != "" && c.QualityForkURL != ""
}

func (c Config) forkURL(cat types.Category) string {
	switch cat {
	case types.CatSecurity:
		return c.SecurityForkURL
	case types.CatQuality:
		return c.QualityForkURL
	case types.CatPerformance:
		return c.PerformanceForkURL
	case types.CatBestPractices:
		return c.BestPracticesForkURL
	}
	return ""
}

// OpenStoreFunc opens an isolated store for one analyzer. Production use
// opens Postgres; tests inject memory stores.
type OpenStoreFunc func(ctx context.Context, url string) (store.Store, error)

// Coordinator accepts submissions and produces reports.
type Coordinator struct {
	primary store.Primary
	cfg     Config
	open    OpenStoreFunc
	obs     Observer
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithObserver installs a structured event observer for analyzer
// start/finish/fail notifications.
func WithObserver(obs Observer) Option {
	return func(c *Coordinator) { c.obs = obs }
}

// WithStoreOpener replaces how fork stores are opened.
func WithStoreOpener(open OpenStoreFunc) Option {
	return func(c *Coordinator) { c.open = open }
}

// New builds a Coordinator over an already-connected primary store.
func New(primary store.Primary, cfg Config, opts ...Option) *Coordinator {
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = FailFast
	}
	c := &Coordinator{
		primary: primary,
		cfg:     cfg,
		open: func(ctx context.Context, url string) (store.Store, error) {
			return store.OpenPostgres(ctx, url)
		},
		obs: NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// result is one analyzer's tagged outcome: findings-or-error, never both.
type result struct {
	category types.Category
	findings []types.Finding
	count    int
	err      error
}

// Submit analyzes content and returns the aggregate report. Under the
// fail-fast policy any analyzer error aborts the whole submission; under
// best-effort the completed categories are merged and reported alongside
// the error list.
func (c *Coordinator) Submit(ctx context.Context, content, filename string) (*types.Report, error) {
	hash := contentHash(content)

	// The submission id is assigned exactly once, before fan-out, so all
	// four analyzers tag findings with the same id.
	submissionID, err := c.primary.NewSubmission(ctx, filename, content, hash)
	if err != nil {
		return nil, fmt.Errorf("register submission: %w", err)
	}

	var results map[types.Category]result
	if c.cfg.Forked() {
		results, err = c.runForked(ctx, content, filename, submissionID)
	} else {
		results, err = c.runSequential(ctx, content, filename, submissionID)
	}
	if err != nil {
		return nil, err
	}

	report := &types.Report{
		SubmissionID: submissionID,
		Filename:     filename,
		ContentHash:  hash,
	}

	var merged []types.Finding
	for _, cat := range types.Categories() {
		res := results[cat]
		if res.err != nil {
			if c.cfg.FailurePolicy == FailFast {
				return nil, fmt.Errorf("%s analyzer: %w", cat, res.err)
			}
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", cat, res.err))
			continue
		}
		report.SetResult(cat, types.CategoryResult{Count: res.count, Findings: res.findings})
		merged = append(merged, res.findings...)
	}

	if _, err := c.primary.InsertMerged(ctx, submissionID, merged); err != nil {
		return nil, fmt.Errorf("merge findings: %w", err)
	}
	return report, nil
}

// runForked binds each analyzer to its own store (primary when its fork URL
// is unset) and runs all four concurrently, one worker per analyzer. The
// returned map is complete: the barrier waits for every worker.
func (c *Coordinator) runForked(ctx context.Context, content, filename string, submissionID int64) (map[types.Category]result, error) {
	type binding struct {
		analyzer analyzers.Analyzer
		close    func() error
	}
	bindings := make([]binding, 0, 4)
	for _, cat := range types.Categories() {
		url := c.cfg.forkURL(cat)
		if url == "" {
			bindings = append(bindings, binding{analyzer: analyzers.ForCategory(cat, c.primary)})
			continue
		}
		s, err := c.open(ctx, url)
		if err != nil {
			for _, b := range bindings {
				if b.close != nil {
					b.close()
				}
			}
			return nil, fmt.Errorf("open %s fork: %w", cat, err)
		}
		bindings = append(bindings, binding{analyzer: analyzers.ForCategory(cat, s), close: s.Close})
	}
	defer func() {
		for _, b := range bindings {
			if b.close != nil {
				b.close()
			}
		}
	}()

	out := make(chan result, len(bindings))
	var wg sync.WaitGroup
	for _, b := range bindings {
		wg.Add(1)
		go func(a analyzers.Analyzer) {
			defer wg.Done()
			out <- c.runAnalyzer(ctx, a, content, filename, submissionID)
		}(b.analyzer)
	}
	wg.Wait()
	close(out)

	results := make(map[types.Category]result, len(bindings))
	for res := range out {
		results[res.category] = res
	}
	return results, nil
}

// runSequential runs all four analyzers one after another on the calling
// goroutine, sharing the primary store. Execution order is the fixed
// category order.
func (c *Coordinator) runSequential(ctx context.Context, content, filename string, submissionID int64) (map[types.Category]result, error) {
	results := make(map[types.Category]result, 4)
	for _, cat := range types.Categories() {
		a := analyzers.ForCategory(cat, c.primary)
		results[cat] = c.runAnalyzer(ctx, a, content, filename, submissionID)
	}
	return results, nil
}

func (c *Coordinator) runAnalyzer(ctx context.Context, a analyzers.Analyzer, content, filename string, submissionID int64) result {
	cat := a.Category()
	c.obs.AnalyzerStarted(cat)
	started := time.Now()

	findings := a.Analyze(content, filename)
	count, err := a.Persist(ctx, findings, submissionID)
	if err != nil {
		c.obs.AnalyzerFailed(cat, err)
		return result{category: cat, err: err}
	}

	c.obs.AnalyzerFinished(cat, count, time.Since(started))
	return result{category: cat, findings: findings, count: count}
}
