package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quadlens/quadlens/internal/types"
)

// Run opens the findings browser over one run's reports. reanalyzeFunc, when
// non-nil, re-runs the analysis on demand ("r").
func Run(reports []*types.Report, reanalyzeFunc func() ([]*types.Report, error)) error {
	m := NewModel(reports, reanalyzeFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
