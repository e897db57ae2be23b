package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quadlens/quadlens/internal/coordinator"
	"github.com/quadlens/quadlens/internal/types"
)

// Config controls which files under Root are submitted for analysis.
type Config struct {
	Root         string
	IncludeGlobs string // comma-separated doublestar globs
	ExcludeGlobs string
	MaxBytes     int64
}

// Result is one directory run: per-file reports plus run statistics.
type Result struct {
	Reports       []*types.Report
	FilesAnalyzed int
	Duration      time.Duration
}

// TotalIssues sums the reports' totals.
func (r Result) TotalIssues() int {
	n := 0
	for _, rep := range r.Reports {
		n += rep.TotalIssues
	}
	return n
}

// Analyze submits the file or directory at cfg.Root to coord, one
// submission per eligible file, in walk order. A failed submission fails
// the run: partial directory results are not reported.
func Analyze(ctx context.Context, coord *coordinator.Coordinator, cfg Config) (Result, error) {
	var result Result
	started := time.Now()

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return result, fmt.Errorf("stat %s: %w", cfg.Root, err)
	}

	submit := func(rel string, data []byte) error {
		report, err := coord.Submit(ctx, string(data), rel)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", rel, err)
		}
		result.Reports = append(result.Reports, report)
		result.FilesAnalyzed++
		return nil
	}

	if !info.IsDir() {
		data, err := os.ReadFile(cfg.Root)
		if err != nil {
			return result, err
		}
		if err := submit(filepath.Base(cfg.Root), data); err != nil {
			return result, err
		}
		result.Duration = time.Since(started)
		return result, nil
	}

	err = Walk(ctx, cfg, func(rel string, data []byte) error {
		return submit(rel, data)
	})
	if err != nil {
		return result, err
	}
	result.Duration = time.Since(started)
	return result, nil
}
