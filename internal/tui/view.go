package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	title := titleStyle.Render("quadlens")
	header := title + "  " + m.headerSummary()

	var body string
	if m.showEmpty && len(m.filtered) == 0 && m.searchQuery == "" &&
		m.categoryFilter == "" && m.severityFilter == "" {
		body = emptyTextStyle.Width(m.width).Render("\nNo issues found.\n")
	} else {
		body = tableBorderStyle.Render(m.table.View()) + "\n" +
			detailPaneBorderStyle.Render(m.viewport.View())
	}

	var footer string
	switch {
	case m.searchMode:
		footer = m.searchInput.View()
	case m.analyzing:
		footer = m.spinner.View() + " analyzing..."
	default:
		footer = statusStyle.Width(m.width).Render(m.statusMessage)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) headerSummary() string {
	parts := []string{fmt.Sprintf("%d findings", len(m.filtered))}
	if m.categoryFilter != "" {
		parts = append(parts, "category="+categoryText(m.categoryFilter))
	}
	if m.severityFilter != "" {
		parts = append(parts, "severity="+string(m.severityFilter))
	}
	if m.searchQuery != "" {
		parts = append(parts, "search="+m.searchQuery)
	}
	return strings.Join(parts, " | ")
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"j/k, up/down", "move selection"},
		{"g / G", "jump to top / bottom"},
		{"J/K, ctrl+d/u", "scroll detail pane"},
		{"/", "search file or issue text"},
		{"c", "cycle category filter"},
		{"s", "cycle severity filter"},
		{"r", "re-analyze"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("quadlens keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Width(16).Render(r[0]), r[1])
	}
	b.WriteString("\npress ? to close")
	return b.String()
}
