package analyzers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quadlens/quadlens/internal/rules"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// Performance applies query and loop heuristics: N+1 queries, missing
// indexes, wildcard selects, nested loops, repeated connection opens,
// unbounded fetches, and allocation churn inside loops.
type Performance struct {
	agent
}

func NewPerformance(s store.Store) *Performance {
	return &Performance{agent{category: types.CatPerformance, store: s}}
}

var (
	selectStarRe = regexp.MustCompile(`(?i)select\s+\*\s+from`)
	fetchAllRe   = regexp.MustCompile(`(?i)fetchall\(\)`)

	queryKeywords = []string{"execute", "query", "select", "fetch"}
	whereOps      = []string{"=", "in", "like"}
)

const (
	nPlusOneWindow   = 4
	nestedLoopWindow = 20
	concatWindow     = 10
	appendWindow     = 3
)

func (p *Performance) Analyze(text, _ string) []types.Finding {
	lines := rules.SplitLines(text)
	var out []types.Finding
	out = append(out, nPlusOneQueries(lines)...)
	out = append(out, missingIndexes(lines)...)
	out = append(out, wildcardSelects(lines)...)
	out = append(out, nestedLoops(lines)...)
	out = append(out, connectionChurn(lines)...)
	out = append(out, unboundedFetches(lines)...)
	out = append(out, loopConcat(lines)...)
	out = append(out, loopAppend(lines)...)
	return out
}

// nPlusOneQueries flags a loop-opening line followed within the next 4 lines
// by a query-like call. Reported once per loop line, at the loop line.
func nPlusOneQueries(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "for ") {
			continue
		}
		for offset := 1; offset <= nPlusOneWindow && i+offset < len(lines); offset++ {
			next := strings.ToLower(lines[i+offset])
			if containsAny(next, queryKeywords) {
				out = append(out, types.Finding{
					Category: types.CatPerformance,
					Issue:    "Potential N+1 query problem",
					Line:     i + 1,
					Snippet:  rules.Snippet(line),
					Severity: types.SevHigh,
					Fix:      "Move query outside loop or use batch query with JOIN",
				})
				break
			}
		}
	}
	return out
}

// missingIndexes flags a filtering clause combined with an execute call and
// no primary-key predicate.
func missingIndexes(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "where") || !containsAny(lower, whereOps) {
			continue
		}
		if strings.Contains(lower, "where id") || !strings.Contains(lower, "execute") {
			continue
		}
		out = append(out, types.Finding{
			Category: types.CatPerformance,
			Issue:    "Query might benefit from index",
			Line:     i + 1,
			Snippet:  rules.Snippet(line),
			Severity: types.SevMedium,
			Fix:      "Consider adding database index on queried columns",
		})
	}
	return out
}

func wildcardSelects(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if selectStarRe.MatchString(line) {
			out = append(out, types.Finding{
				Category: types.CatPerformance,
				Issue:    "SELECT * fetches unnecessary data",
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevMedium,
				Fix:      "Specify only needed columns instead of SELECT *",
			})
		}
	}
	return out
}

// nestedLoops tracks (line, indentation) for every loop-opening line. A new
// loop whose indentation exceeds a previously seen loop's, within 20 lines
// of it, is reported once per qualifying line.
func nestedLoops(lines []string) []types.Finding {
	var out []types.Finding
	type loopSite struct{ line, indent int }
	var seen []loopSite
	for i, line := range lines {
		if !strings.Contains(line, "for ") {
			continue
		}
		lineNum := i + 1
		indent := rules.Indent(line)
		for _, prev := range seen {
			if indent > prev.indent && lineNum-prev.line < nestedLoopWindow {
				out = append(out, types.Finding{
					Category: types.CatPerformance,
					Issue:    "Nested loop detected (O(n²) complexity)",
					Line:     lineNum,
					Snippet:  rules.Snippet(line),
					Severity: types.SevMedium,
					Fix:      "Consider using set/dict lookup or algorithm optimization",
				})
				break
			}
		}
		seen = append(seen, loopSite{line: lineNum, indent: indent})
	}
	return out
}

// connectionChurn emits one file-scoped HIGH finding when more than one
// independent connection-open call appears, carrying the count.
func connectionChurn(lines []string) []types.Finding {
	opens := 0
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "connect(") {
			opens++
		}
	}
	if opens <= 1 {
		return nil
	}
	return []types.Finding{{
		Category: types.CatPerformance,
		Issue:    fmt.Sprintf("Multiple connection calls detected (%d)", opens),
		Line:     1,
		Snippet:  fmt.Sprintf("Found %d separate connection calls", opens),
		Severity: types.SevHigh,
		Fix:      "Use connection pooling or context manager to reuse connections",
	}}
}

func unboundedFetches(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if fetchAllRe.MatchString(line) {
			out = append(out, types.Finding{
				Category: types.CatPerformance,
				Issue:    "fetchall() loads all rows into memory",
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevMedium,
				Fix:      "Use pagination (LIMIT/OFFSET) or fetchmany() for large datasets",
			})
		}
	}
	return out
}

// loopConcat flags string concatenation observed within 10 lines below a
// loop-opening line.
func loopConcat(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if !strings.Contains(line, "+=") || !strings.Contains(strings.ToLower(line), "str") {
			continue
		}
		if loopAbove(lines, i, concatWindow, true) {
			out = append(out, types.Finding{
				Category: types.CatPerformance,
				Issue:    "String concatenation in loop",
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevLow,
				Fix:      `Use list.append() then "".join() for better performance`,
			})
		}
	}
	return out
}

// loopAppend flags an append call within 3 lines below a loop-opening line.
func loopAppend(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".append(") {
			continue
		}
		if loopAbove(lines, i, appendWindow, false) {
			out = append(out, types.Finding{
				Category: types.CatPerformance,
				Issue:    "Consider list comprehension",
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevLow,
				Fix:      "List comprehensions are faster than append in loops",
			})
		}
	}
	return out
}

// loopAbove reports whether a loop-opening line appears within window lines
// above idx (0-based). includeWhile also accepts while loops.
func loopAbove(lines []string, idx, window int, includeWhile bool) bool {
	start := idx - window
	if start < 0 {
		start = 0
	}
	for j := start; j < idx; j++ {
		if strings.Contains(lines[j], "for ") {
			return true
		}
		if includeWhile && strings.Contains(lines[j], "while ") {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
