package types

// Severity is the risk level assigned to a finding. The set is closed:
// every rule maps to exactly one of these four values.
type Severity string

const (
	SevLow      Severity = "LOW"
	SevMedium   Severity = "MEDIUM"
	SevHigh     Severity = "HIGH"
	SevCritical Severity = "CRITICAL"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SevLow, SevMedium, SevHigh, SevCritical:
		return true
	}
	return false
}

// Category identifies the analyzer that produced a finding.
type Category string

const (
	CatSecurity      Category = "security"
	CatQuality       Category = "quality"
	CatPerformance   Category = "performance"
	CatBestPractices Category = "best_practices"
)

// Categories returns all categories in merge order. The order is a
// presentation contract: merged findings are always written Security,
// Quality, Performance, BestPractices regardless of completion order.
func Categories() []Category {
	return []Category{CatSecurity, CatQuality, CatPerformance, CatBestPractices}
}

// Finding describes one detected defect: what was matched, where, how bad
// it is, and how to fix it. Findings are value objects; they are created
// once and never updated.
type Finding struct {
	Category Category `json:"category"`
	Issue    string   `json:"issue"`
	Line     int      `json:"line"` // 1-based; 1 for file-scoped findings
	Snippet  string   `json:"snippet"`
	Severity Severity `json:"severity"`
	Fix      string   `json:"fix"`
}

// CategoryResult is one analyzer's slice of a report.
type CategoryResult struct {
	Count    int       `json:"count"`
	Findings []Finding `json:"issues"`
}

// Report aggregates the findings of all four analyzers for one submission.
// It is derived from stored findings and never persisted on its own.
type Report struct {
	SubmissionID  int64          `json:"submission_id"`
	Filename      string         `json:"filename"`
	ContentHash   string         `json:"content_hash,omitempty"`
	Security      CategoryResult `json:"security"`
	Quality       CategoryResult `json:"quality"`
	Performance   CategoryResult `json:"performance"`
	BestPractices CategoryResult `json:"best_practices"`
	TotalIssues   int            `json:"total_issues"`

	// Errors carries per-analyzer failures when the coordinator runs with
	// the best-effort policy. Empty under fail-fast (the default).
	Errors []string `json:"errors,omitempty"`
}

// Result returns the category result for c.
func (r *Report) Result(c Category) CategoryResult {
	switch c {
	case CatSecurity:
		return r.Security
	case CatQuality:
		return r.Quality
	case CatPerformance:
		return r.Performance
	case CatBestPractices:
		return r.BestPractices
	}
	return CategoryResult{}
}

// SetResult stores a category result and keeps TotalIssues consistent.
func (r *Report) SetResult(c Category, res CategoryResult) {
	switch c {
	case CatSecurity:
		r.Security = res
	case CatQuality:
		r.Quality = res
	case CatPerformance:
		r.Performance = res
	case CatBestPractices:
		r.BestPractices = res
	}
	r.TotalIssues = r.Security.Count + r.Quality.Count + r.Performance.Count + r.BestPractices.Count
}

// AllFindings returns every finding in merge order, flattened.
func (r *Report) AllFindings() []Finding {
	var out []Finding
	for _, c := range Categories() {
		out = append(out, r.Result(c).Findings...)
	}
	return out
}
