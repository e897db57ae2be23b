// Package core provides a small, stable facade over quadlens's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without exposing
// internal implementation packages.
//
// Example:
//
//	res, err := core.Analyze(ctx, stores, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalReports(os.Stdout, res.Reports)
package core
