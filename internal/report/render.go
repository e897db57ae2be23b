package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/quadlens/quadlens/internal/types"
)

// PrintOptions controls rendering of a report to a terminal.
type PrintOptions struct {
	NoColor bool
}

var severityStyles = map[types.Severity]lipgloss.Style{
	types.SevCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	types.SevHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	types.SevMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	types.SevLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

// PrintReport renders one submission's report as a findings table followed
// by a per-category summary footer.
func PrintReport(w io.Writer, r *types.Report, opts PrintOptions) {
	findings := r.AllFindings()
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s: no issues found\n", r.Filename)
		return
	}

	color := !opts.NoColor && isTerminal(w)

	fmt.Fprintf(w, "%s (submission #%d)\n", r.Filename, r.SubmissionID)
	table := tablewriter.NewWriter(w)
	table.Header("Category", "Severity", "Line", "Issue", "Suggested Fix")
	for _, f := range findings {
		sev := string(f.Severity)
		if color {
			sev = severityStyles[f.Severity].Render(sev)
		}
		table.Append(string(f.Category), sev, fmt.Sprintf("%d", f.Line), f.Issue, f.Fix)
	}
	table.Render()

	fmt.Fprintf(w, "\nTotal issues: %d (security: %d, quality: %d, performance: %d, best practices: %d)\n",
		r.TotalIssues, r.Security.Count, r.Quality.Count, r.Performance.Count, r.BestPractices.Count)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "analyzer error: %s\n", e)
	}
}

// PrintSummary renders the run footer for a multi-file analysis.
func PrintSummary(w io.Writer, totalFiles, totalIssues int) {
	fmt.Fprintf(w, "\nFiles analyzed: %d\n", totalFiles)
	fmt.Fprintf(w, "Issues found: %d\n", totalIssues)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
