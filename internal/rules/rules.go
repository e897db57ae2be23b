// Package rules defines the declarative per-line rule table shared by all
// analyzers. A rule pairs a compiled pattern with the finding it emits;
// tables are ordered, and evaluation walks lines first, rules second, so the
// output order of a table is stable for identical input.
package rules

import (
	"regexp"
	"strings"

	"github.com/quadlens/quadlens/internal/types"
)

// Rule is one line-oriented detection: when Pattern matches a line (and
// Exclude, if set, does not), the rule emits a finding with the fixed
// issue label, severity, and remediation hint.
type Rule struct {
	ID      string
	Pattern *regexp.Regexp

	// Exclude, when set, suppresses a match on the same line.
	Exclude *regexp.Regexp

	// When, when set, gates a match on surrounding context; idx is 0-based.
	When func(lines []string, idx int) bool

	Issue    string
	Severity types.Severity
	Fix      string
}

// EvalLines applies the table to every line, line-major: for each line all
// rules run in table order, so identical input yields identical output.
func EvalLines(table []Rule, category types.Category, lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		for _, r := range table {
			if !r.Pattern.MatchString(line) {
				continue
			}
			if r.Exclude != nil && r.Exclude.MatchString(line) {
				continue
			}
			if r.When != nil && !r.When(lines, i) {
				continue
			}
			out = append(out, types.Finding{
				Category: category,
				Issue:    r.Issue,
				Line:     i + 1,
				Snippet:  Snippet(line),
				Severity: r.Severity,
				Fix:      r.Fix,
			})
		}
	}
	return out
}

// SplitLines splits raw text into lines without dropping empty ones; line
// numbers reported by analyzers index into this slice 1-based.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

const maxSnippet = 160

// Snippet trims a line for storage: surrounding whitespace removed and the
// text truncated so oversized lines do not bloat findings tables.
func Snippet(line string) string {
	s := strings.TrimSpace(line)
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}

// Indent returns the count of leading whitespace characters of a line, with
// tabs counted as single columns.
func Indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
