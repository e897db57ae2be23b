// Package engine drives multi-file ingestion: it selects eligible source
// files under a root and submits each one to the coordinator as its own
// analysis. This package is internal; external consumers should use the
// stable facade in pkg/core.
package engine
