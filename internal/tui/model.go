// Package tui is an interactive findings browser: a findings table with a
// detail pane, search, category and severity filters, and re-analysis.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/quadlens/quadlens/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)
)

// entry is one finding row together with the file it was found in.
type entry struct {
	File    string
	Finding types.Finding
}

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "CRIT"
	case types.SevHigh:
		return "HIGH"
	case types.SevMedium:
		return "MED"
	case types.SevLow:
		return "LOW"
	default:
		return string(s)
	}
}

func categoryText(c types.Category) string {
	if c == types.CatBestPractices {
		return "best practices"
	}
	return string(c)
}

// Model is the state of the findings browser.
type Model struct {
	table       table.Model
	viewport    viewport.Model
	spinner     spinner.Model
	searchInput textinput.Model

	entries  []entry // all findings, report order
	filtered []entry // entries after filters (shown in table)

	reanalyzeFunc func() ([]*types.Report, error)

	quitting  bool
	ready     bool // terminal dimensions known
	analyzing bool // re-analysis in progress
	showHelp  bool
	showEmpty bool

	searchMode     bool
	searchQuery    string
	categoryFilter types.Category // "" = all
	severityFilter types.Severity // "" = all

	width         int
	height        int
	statusMessage string
	statusTimeout *time.Time
	lastRunTime   time.Time
}

type reanalyzeDoneMsg struct {
	reports []*types.Report
	err     error
}

func flatten(reports []*types.Report) []entry {
	var out []entry
	for _, r := range reports {
		for _, f := range r.AllFindings() {
			out = append(out, entry{File: r.Filename, Finding: f})
		}
	}
	return out
}

// NewModel initializes the browser over one run's reports.
func NewModel(reports []*types.Report, reanalyzeFunc func() ([]*types.Report, error)) Model {
	entries := flatten(reports)

	columns := []table.Column{
		{Title: "Category", Width: 14},
		{Title: "Sev", Width: 6},
		{Title: "Line", Width: 6},
		{Title: "File", Width: 28},
		{Title: "Issue", Width: 46},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(entryRows(entries)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search file or issue..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	m := Model{
		table:         t,
		spinner:       sp,
		searchInput:   ti,
		entries:       entries,
		filtered:      entries,
		reanalyzeFunc: reanalyzeFunc,
		showEmpty:     len(entries) == 0,
		lastRunTime:   time.Now(),
	}

	if m.showEmpty {
		m.statusMessage = "q: quit | r: re-analyze"
	} else {
		m.statusMessage = "q: quit | ?: help | j/k: navigate | /: search | c: category | s: severity | r: re-analyze"
	}
	return m
}

func entryRows(entries []entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			categoryText(e.Finding.Category),
			severityText(e.Finding.Severity),
			fmt.Sprintf("%d", e.Finding.Line),
			e.File,
			e.Finding.Issue,
		}
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) reanalyze() tea.Cmd {
	return func() tea.Msg {
		if m.reanalyzeFunc == nil {
			return reanalyzeDoneMsg{err: fmt.Errorf("re-analysis not available")}
		}
		reports, err := m.reanalyzeFunc()
		return reanalyzeDoneMsg{reports: reports, err: err}
	}
}

// applyFilters recomputes the filtered list from search and filter state.
func (m *Model) applyFilters() {
	query := strings.ToLower(m.searchQuery)
	var out []entry
	for _, e := range m.entries {
		if m.categoryFilter != "" && e.Finding.Category != m.categoryFilter {
			continue
		}
		if m.severityFilter != "" && e.Finding.Severity != m.severityFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.File), query) &&
			!strings.Contains(strings.ToLower(e.Finding.Issue), query) {
			continue
		}
		out = append(out, e)
	}
	m.filtered = out
	m.table.SetRows(entryRows(out))
	if m.table.Cursor() >= len(out) {
		m.table.SetCursor(0)
	}
	m.syncDetail()
}

var categoryCycle = []types.Category{
	"", types.CatSecurity, types.CatQuality,
	types.CatPerformance, types.CatBestPractices,
}

var severityCycle = []types.Severity{
	"", types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow,
}

func nextCategory(c types.Category) types.Category {
	for i, v := range categoryCycle {
		if v == c {
			return categoryCycle[(i+1)%len(categoryCycle)]
		}
	}
	return ""
}

func nextSeverity(s types.Severity) types.Severity {
	for i, v := range severityCycle {
		if v == s {
			return severityCycle[(i+1)%len(severityCycle)]
		}
	}
	return ""
}

func (m *Model) setStatus(msg string, d time.Duration) {
	m.statusMessage = msg
	t := time.Now().Add(d)
	m.statusTimeout = &t
}

func (m *Model) syncDetail() {
	if !m.ready {
		return
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		m.viewport.SetContent("")
		return
	}
	e := m.filtered[idx]
	f := e.Finding
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d\n", e.File, f.Line)
	fmt.Fprintf(&b, "Category: %s    Severity: %s\n\n", categoryText(f.Category), f.Severity)
	fmt.Fprintf(&b, "%s\n\n", f.Issue)
	if f.Snippet != "" {
		fmt.Fprintf(&b, "  %s\n\n", f.Snippet)
	}
	if f.Fix != "" {
		fmt.Fprintf(&b, "Suggested fix: %s\n", f.Fix)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		tableHeight := m.height/2 - 4
		if tableHeight < 4 {
			tableHeight = 4
		}
		m.table.SetHeight(tableHeight)
		detailHeight := m.height - tableHeight - 8
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-4, detailHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = detailHeight
		}
		m.syncDetail()
		return m, nil

	case spinner.TickMsg:
		if m.analyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case reanalyzeDoneMsg:
		m.analyzing = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("re-analysis failed: %v", msg.err), 5*time.Second)
			return m, nil
		}
		m.entries = flatten(msg.reports)
		m.showEmpty = len(m.entries) == 0
		m.lastRunTime = time.Now()
		m.applyFilters()
		m.setStatus(fmt.Sprintf("re-analyzed: %d findings", len(m.entries)), 3*time.Second)
		return m, nil

	case tea.KeyMsg:
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusMessage = ""
			m.statusTimeout = nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchMode = false
				m.searchQuery = m.searchInput.Value()
				m.applyFilters()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.SetValue("")
				m.searchQuery = ""
				m.applyFilters()
				return m, nil
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "/":
			m.searchMode = true
			m.searchInput.Focus()
			return m, textinput.Blink
		case "c":
			m.categoryFilter = nextCategory(m.categoryFilter)
			m.applyFilters()
			if m.categoryFilter == "" {
				m.setStatus("category filter off", 2*time.Second)
			} else {
				m.setStatus("category: "+categoryText(m.categoryFilter), 2*time.Second)
			}
			return m, nil
		case "s":
			m.severityFilter = nextSeverity(m.severityFilter)
			m.applyFilters()
			if m.severityFilter == "" {
				m.setStatus("severity filter off", 2*time.Second)
			} else {
				m.setStatus("severity: "+string(m.severityFilter), 2*time.Second)
			}
			return m, nil
		case "r":
			if m.analyzing {
				return m, nil
			}
			m.analyzing = true
			m.setStatus("re-analyzing...", 10*time.Second)
			return m, tea.Batch(m.spinner.Tick, m.reanalyze())
		case "g":
			m.table.GotoTop()
			m.syncDetail()
			return m, nil
		case "G":
			m.table.GotoBottom()
			m.syncDetail()
			return m, nil
		case "J", "ctrl+d":
			m.viewport.HalfViewDown()
			return m, nil
		case "K", "ctrl+u":
			m.viewport.HalfViewUp()
			return m, nil
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
		m.syncDetail()
		return m, tea.Batch(cmds...)
	}

	return m, nil
}
