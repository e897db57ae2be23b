package analyzers

import (
	"regexp"

	"github.com/quadlens/quadlens/internal/rules"
	"github.com/quadlens/quadlens/internal/store"
	"github.com/quadlens/quadlens/internal/types"
)

// Security scans for hardcoded secrets, injection-shaped query construction,
// and dynamic-evaluation primitives.
type Security struct {
	agent
}

func NewSecurity(s store.Store) *Security {
	return &Security{agent{category: types.CatSecurity, store: s}}
}

const secretFix = "Use environment variables or secret management system"

// secretRules flag credential literals assigned in source. Severity is
// fixed per pattern class: every secret is HIGH.
var secretRules = []rules.Rule{
	{
		ID:       "hardcoded_password",
		Pattern:  regexp.MustCompile(`(?i)password\s*=\s*["']([^"']+)["']`),
		Issue:    "Hardcoded password",
		Severity: types.SevHigh,
		Fix:      secretFix,
	},
	{
		ID:       "hardcoded_api_key",
		Pattern:  regexp.MustCompile(`(?i)api[_-]?key\s*=\s*["']([^"']+)["']`),
		Issue:    "Hardcoded API key",
		Severity: types.SevHigh,
		Fix:      secretFix,
	},
	{
		ID:       "hardcoded_secret",
		Pattern:  regexp.MustCompile(`(?i)secret\s*=\s*["']([^"']+)["']`),
		Issue:    "Hardcoded secret",
		Severity: types.SevHigh,
		Fix:      secretFix,
	},
	{
		ID:       "hardcoded_token",
		Pattern:  regexp.MustCompile(`(?i)token\s*=\s*["']([^"']+)["']`),
		Issue:    "Hardcoded token",
		Severity: types.SevHigh,
		Fix:      secretFix,
	},
	{
		ID:       "aws_credentials",
		Pattern:  regexp.MustCompile(`(?i)aws[_-]?access[_-]?key`),
		Issue:    "AWS credentials",
		Severity: types.SevHigh,
		Fix:      secretFix,
	},
}

const injectionFix = "Use parameterized queries with placeholders"

// injectionRules flag string interpolation, %-formatting, or concatenation
// feeding an execute-like call. Every match is CRITICAL.
var injectionRules = []rules.Rule{
	{
		ID:       "sql_injection_fstring",
		Pattern:  regexp.MustCompile(`execute\s*\(\s*f["'].*\{.*\}.*["']`),
		Issue:    "SQL injection via f-string",
		Severity: types.SevCritical,
		Fix:      injectionFix,
	},
	{
		ID:       "sql_injection_format",
		Pattern:  regexp.MustCompile(`execute\s*\(\s*["'].*%s.*["'].*%`),
		Issue:    "SQL injection via string formatting",
		Severity: types.SevCritical,
		Fix:      injectionFix,
	},
	{
		ID:       "sql_injection_concat",
		Pattern:  regexp.MustCompile(`execute\s*\(\s*.+\s*\+\s*.+\)`),
		Issue:    "SQL injection via concatenation",
		Severity: types.SevCritical,
		Fix:      injectionFix,
	},
	{
		ID:       "sql_injection_cursor",
		Pattern:  regexp.MustCompile(`cursor\.execute\s*\([^,]+\+`),
		Issue:    "SQL injection in cursor.execute",
		Severity: types.SevCritical,
		Fix:      injectionFix,
	},
}

// dynamicEvalRules flag invocation of dynamic-evaluation primitives.
var dynamicEvalRules = []rules.Rule{
	{
		ID:       "dangerous_eval",
		Pattern:  regexp.MustCompile(`\beval\s*\(`),
		Issue:    "Dangerous function: eval()",
		Severity: types.SevHigh,
		Fix:      "Avoid using eval() - find safer alternatives",
	},
	{
		ID:       "dangerous_exec",
		Pattern:  regexp.MustCompile(`\bexec\s*\(`),
		Issue:    "Dangerous function: exec()",
		Severity: types.SevHigh,
		Fix:      "Avoid using exec() - find safer alternatives",
	},
	{
		ID:       "dangerous_import",
		Pattern:  regexp.MustCompile(`\b__import__\s*\(`),
		Issue:    "Dangerous function: __import__()",
		Severity: types.SevHigh,
		Fix:      "Avoid using __import__() - find safer alternatives",
	},
}

// Analyze runs the three rule groups in order: secrets, injection-shaped
// calls, dynamic evaluation. Each group walks the full text so grouped
// output order is stable.
func (s *Security) Analyze(text, _ string) []types.Finding {
	lines := rules.SplitLines(text)
	var out []types.Finding
	out = append(out, rules.EvalLines(secretRules, types.CatSecurity, lines)...)
	out = append(out, rules.EvalLines(injectionRules, types.CatSecurity, lines)...)
	out = append(out, rules.EvalLines(dynamicEvalRules, types.CatSecurity, lines)...)
	return out
}
