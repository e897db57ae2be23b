package analyzers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quadlens/quadlens/internal/rules"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// BestPractices layers language-specific conventions on general rules that
// apply to any language. The language is detected from the filename.
type BestPractices struct {
	agent
}

func NewBestPractices(s store.Store) *BestPractices {
	return &BestPractices{agent{category: types.CatBestPractices, store: s}}
}

// pythonRules run line-major against scripting-language submissions.
var pythonRules = []rules.Rule{
	{
		ID:      "print_statement",
		Pattern: regexp.MustCompile(`print\(`),
		Exclude: regexp.MustCompile(`^\s*#`),
		When: func(lines []string, idx int) bool {
			if strings.Contains(strings.ToLower(lines[idx]), "debug") {
				return false
			}
			for _, l := range lines {
				if strings.Contains(l, "__main__") {
					return false
				}
			}
			return true
		},
		Issue:    "Print statement in production code",
		Severity: types.SevLow,
		Fix:      "Use logging module instead of print() for production code",
	},
	{
		ID:       "bare_except",
		Pattern:  regexp.MustCompile(`^\s*except\s*:`),
		Issue:    "Bare except clause catches all exceptions",
		Severity: types.SevMedium,
		Fix:      "Specify exception types (e.g., except ValueError:) or use except Exception:",
	},
	{
		ID:      "mutable_default",
		Pattern: regexp.MustCompile(`=\s*\[\s*\]|=\s*\{\s*\}`),
		When: func(lines []string, idx int) bool {
			return strings.Contains(lines[idx], "def ")
		},
		Issue:    "Mutable default argument",
		Severity: types.SevHigh,
		Fix:      "Use None as default and initialize inside function: def func(arg=None): arg = arg or []",
	},
	{
		ID:      "unnecessary_pass",
		Pattern: regexp.MustCompile(`^\s*pass\s*$`),
		When: func(lines []string, idx int) bool {
			if idx == 0 {
				return false
			}
			prev := strings.TrimSpace(lines[idx-1])
			return !strings.Contains(prev, "except") && !strings.Contains(prev, "class")
		},
		Issue:    "Unnecessary pass statement",
		Severity: types.SevLow,
		Fix:      "Consider removing or adding a comment explaining why it's empty",
	},
	{
		ID:       "lambda_assignment",
		Pattern:  regexp.MustCompile(`^\s*\w+\s*=\s*lambda\s`),
		Issue:    "Lambda assignment should be a function",
		Severity: types.SevMedium,
		Fix:      "Use def instead of assigning lambda to a variable",
	},
	{
		ID:       "type_equality",
		Pattern:  regexp.MustCompile(`type\s*\([^)]+\)\s*==`),
		Issue:    "Using type() for type checking",
		Severity: types.SevMedium,
		Fix:      "Use isinstance() instead of type() == for type checking",
	},
	{
		ID:       "boolean_comparison",
		Pattern:  regexp.MustCompile(`==\s*(True|False)\b`),
		Issue:    "Explicit boolean comparison",
		Severity: types.SevLow,
		Fix:      `Use "if variable:" instead of "if variable == True:"`,
	},
	{
		ID:       "len_conditional",
		Pattern:  regexp.MustCompile(`if\s+len\s*\([^)]+\)\s*[><=]`),
		Issue:    "Using len() in conditional",
		Severity: types.SevLow,
		Fix:      `Use "if collection:" instead of "if len(collection) > 0:"`,
	},
	{
		ID:       "wildcard_import",
		Pattern:  regexp.MustCompile(`from\s+\w+\s+import\s+\*`),
		Issue:    "Wildcard import",
		Severity: types.SevMedium,
		Fix:      `Import specific items or use "import module" instead of "from module import *"`,
	},
	{
		ID:       "multiple_statements",
		Pattern:  regexp.MustCompile(`;`),
		Exclude:  regexp.MustCompile(`^\s*#`),
		Issue:    "Multiple statements on one line",
		Severity: types.SevLow,
		Fix:      "Put each statement on its own line for better readability",
	},
}

// todoRules apply to every language.
var todoRules = []rules.Rule{
	{
		ID:       "todo_marker",
		Pattern:  regexp.MustCompile(`(?i)#\s*(TODO|FIXME|HACK|XXX)`),
		Issue:    "TODO/FIXME comment found",
		Severity: types.SevLow,
		Fix:      "Address the TODO or create a tracked issue for it",
	},
}

var (
	magicNumberRe   = regexp.MustCompile(`\b\d{2,}\b`)
	commentedCodeRe = regexp.MustCompile(`[=+\-*/(){}\[\]]|def |class |import |if |for |while `)
	camelCaseRe     = regexp.MustCompile(`\b[a-z]+[A-Z][a-zA-Z]*\b`)
	snakeCaseRe     = regexp.MustCompile(`\b[a-z]+_[a-z]+\b`)
	defNameRe       = regexp.MustCompile(`^\s*def\s+(\w+)`)
)

const (
	maxNestingLevels  = 4
	indentWidth       = 4
	commentedCodeRun  = 3
	namingMixMinCount = 3
	veryLongFunction  = 100
)

func (b *BestPractices) Analyze(text, filename string) []types.Finding {
	lines := rules.SplitLines(text)
	var out []types.Finding
	if detectLanguage(filename) == "python" {
		out = append(out, rules.EvalLines(pythonRules, types.CatBestPractices, lines)...)
	}
	out = append(out, rules.EvalLines(todoRules, types.CatBestPractices, lines)...)
	out = append(out, magicNumbers(lines)...)
	out = append(out, deepNesting(lines)...)
	out = append(out, commentedOutCode(lines)...)
	out = append(out, mixedNaming(text)...)
	out = append(out, veryLongDefinitions(lines)...)
	return out
}

// magicNumbers flags numeric literals of 2+ digits outside excluded contexts
// (ranges and sleeps). Comments are stripped before matching.
func magicNumbers(lines []string) []types.Finding {
	var out []types.Finding
	for i, line := range lines {
		code := line
		if idx := strings.Index(code, "#"); idx >= 0 {
			code = code[:idx]
		}
		if !magicNumberRe.MatchString(code) {
			continue
		}
		if strings.Contains(code, "range") || strings.Contains(code, "sleep") {
			continue
		}
		out = append(out, types.Finding{
			Category: types.CatBestPractices,
			Issue:    "Magic number detected",
			Line:     i + 1,
			Snippet:  rules.Snippet(code),
			Severity: types.SevLow,
			Fix:      "Define magic numbers as named constants for better maintainability",
		})
	}
	return out
}

// deepNesting reports the first line nested deeper than 4 indentation
// levels, once per file.
func deepNesting(lines []string) []types.Finding {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		level := rules.Indent(line) / indentWidth
		if level > maxNestingLevels {
			return []types.Finding{{
				Category: types.CatBestPractices,
				Issue:    fmt.Sprintf("Deeply nested code (%d levels)", level),
				Line:     i + 1,
				Snippet:  rules.Snippet(line),
				Severity: types.SevMedium,
				Fix:      "Refactor to reduce nesting (extract methods, use early returns)",
			}}
		}
	}
	return nil
}

// commentedOutCode reports a run of 3+ consecutive comment lines that
// resemble code, once per file, anchored at the start of the run.
func commentedOutCode(lines []string) []types.Finding {
	run := 0
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "#") && len(stripped) > 3 && commentedCodeRe.MatchString(line) {
			run++
		} else {
			run = 0
		}
		if run >= commentedCodeRun {
			return []types.Finding{{
				Category: types.CatBestPractices,
				Issue:    "Large block of commented-out code",
				Line:     i - 1,
				Snippet:  "Multiple lines of commented code",
				Severity: types.SevLow,
				Fix:      "Remove commented code (use version control instead)",
			}}
		}
	}
	return nil
}

// mixedNaming emits one file-scoped finding when both camelCase and
// snake_case identifiers each appear more than 3 times.
func mixedNaming(text string) []types.Finding {
	camel := len(camelCaseRe.FindAllString(text, -1))
	snake := len(snakeCaseRe.FindAllString(text, -1))
	if camel == 0 || snake == 0 || min(camel, snake) <= namingMixMinCount {
		return nil
	}
	return []types.Finding{{
		Category: types.CatBestPractices,
		Issue:    "Inconsistent naming convention",
		Line:     1,
		Snippet:  fmt.Sprintf("Mixed camelCase (%d) and snake_case (%d)", camel, snake),
		Severity: types.SevLow,
		Fix:      "Use consistent naming convention throughout (Python: snake_case)",
	}}
}

// veryLongDefinitions flags definitions whose span exceeds 100 lines. A
// definition still open at end of input has no measured span.
func veryLongDefinitions(lines []string) []types.Finding {
	type span struct {
		name   string
		length int
	}
	var spans []span
	current := ""
	start := 0
	for i, line := range lines {
		lineNum := i + 1
		if m := defNameRe.FindStringSubmatch(line); m != nil {
			if current != "" {
				spans = append(spans, span{name: current, length: lineNum - start})
			}
			current = m[1]
			start = lineNum
			continue
		}
		if current != "" && line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && !strings.Contains(line, "def ") {
			spans = append(spans, span{name: current, length: lineNum - start})
			current = ""
		}
	}

	var out []types.Finding
	for _, sp := range spans {
		if sp.length > veryLongFunction {
			out = append(out, types.Finding{
				Category: types.CatBestPractices,
				Issue:    fmt.Sprintf("Function %q is very long (%d lines)", sp.name, sp.length),
				Line:     1,
				Snippet:  "Function exceeds 100 lines",
				Severity: types.SevMedium,
				Fix:      "Break down into smaller, focused functions following Single Responsibility Principle",
			})
		}
	}
	return out
}
