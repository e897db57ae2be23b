package analyzers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/quadlens/quadlens/internal/rules"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// Quality flags oversized functions, overlong lines, missing documentation
// blocks, and verbatim duplicated code.
type Quality struct {
	agent
}

func NewQuality(s store.Store) *Quality {
	return &Quality{agent{category: types.CatQuality, store: s}}
}

var defRe = regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`)

const (
	longFunctionLines = 50
	longLineChars     = 120
	duplicateMinLen   = 20
	duplicateMinCount = 3
)

func (q *Quality) Analyze(text, _ string) []types.Finding {
	lines := rules.SplitLines(text)
	var out []types.Finding
	out = append(out, longFunctions(lines)...)
	out = append(out, longLines(lines)...)
	out = append(out, missingDocBlocks(lines)...)
	out = append(out, duplicateLines(lines)...)
	return out
}

// longFunctions detects function boundaries by indentation reset: a function
// begins at a definition line and ends at the first subsequent column-0 line
// that is not itself a new definition.
func longFunctions(lines []string) []types.Finding {
	var out []types.Finding
	inFunction := false
	funcStart := 0
	funcName := ""
	for i, line := range lines {
		lineNum := i + 1
		if m := defRe.FindStringSubmatch(line); m != nil {
			inFunction = true
			funcStart = lineNum
			funcName = m[1]
			continue
		}
		if inFunction && line != "" && !unicode.IsSpace(rune(line[0])) && lineNum > funcStart {
			if length := lineNum - funcStart; length > longFunctionLines {
				out = append(out, types.Finding{
					Category: types.CatQuality,
					Issue:    fmt.Sprintf("Long function: %s()", funcName),
					Line:     funcStart,
					Snippet:  fmt.Sprintf("Function is %d lines long", length),
					Severity: types.SevMedium,
					Fix:      "Break into smaller, focused functions",
				})
			}
			inFunction = false
		}
	}
	return out
}

func longLines(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if len(line) > longLineChars {
			out = append(out, types.Finding{
				Category: types.CatQuality,
				Issue:    "Line too long",
				Line:     i + 1,
				Snippet:  line[:80] + "...",
				Severity: types.SevLow,
				Fix:      "Break into multiple lines (PEP 8: max 79-120 chars)",
			})
		}
	}
	return out
}

// missingDocBlocks flags definitions without a recognizable documentation
// block in the 3 lines following the signature.
func missingDocBlocks(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		if !defRe.MatchString(line) {
			continue
		}
		hasDoc := false
		for j := i + 1; j <= i+3 && j < len(lines); j++ {
			if strings.Contains(lines[j], `"""`) || strings.Contains(lines[j], "'''") {
				hasDoc = true
				break
			}
		}
		if !hasDoc {
			out = append(out, types.Finding{
				Category: types.CatQuality,
				Issue:    "Missing docstring",
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevLow,
				Fix:      "Add docstring to explain function purpose",
			})
		}
	}
	return out
}

// duplicateLines reports any line of code (over 20 chars, non-comment) that
// recurs 3 or more times verbatim, once per distinct line text, anchored at
// its first occurrence.
func duplicateLines(lines []string) []types.Finding {
	counts := make(map[string][]int)
	var order []string
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) <= duplicateMinLen || strings.HasPrefix(stripped, "#") {
			continue
		}
		if _, seen := counts[stripped]; !seen {
			order = append(order, stripped)
		}
		counts[stripped] = append(counts[stripped], i+1)
	}

	var out []types.Finding
	for _, text := range order {
		nums := counts[text]
		if len(nums) < duplicateMinCount {
			continue
		}
		snippet := text
		if len(snippet) > 50 {
			snippet = snippet[:50]
		}
		out = append(out, types.Finding{
			Category: types.CatQuality,
			Issue:    "Duplicate code detected",
			Line:     nums[0],
			Snippet:  fmt.Sprintf("Repeated %d times: %s...", len(nums), snippet),
			Severity: types.SevMedium,
			Fix:      "Extract into a reusable function",
		})
	}
	return out
}
