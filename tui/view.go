package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	titleStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginLeft(2)
)

// View renders the search screen from the current controller snapshot
func (m SearchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.state.Loading:
		fmt.Fprintf(&b, "%s Searching...\n", spinnerStyle.Render(m.spinner.View()))

	case m.state.Err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Error: %v", m.state.Err)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("ctrl+r to retry"))
		b.WriteString("\n")

	case m.state.Query == "":
		b.WriteString(dimStyle.Render("Start typing to search"))
		b.WriteString("\n")

	case len(m.state.Results) == 0:
		b.WriteString(infoStyle.Render("No results found"))
		b.WriteString("\n")

	default:
		b.WriteString(successStyle.Render(fmt.Sprintf("%d results", len(m.state.Results))))
		b.WriteString("\n")
	}

	// Results stay visible while loading or after a failure
	start := 0
	if m.cursor >= maxVisibleResults {
		start = m.cursor - maxVisibleResults + 1
	}
	end := min(start+maxVisibleResults, len(m.state.Results))
	for i := start; i < end; i++ {
		u := m.state.Results[i]
		line := fmt.Sprintf("%s %s", u.Name, dimStyle.Render("<"+u.Email+">"))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move • enter select • esc quit"))
	b.WriteString("\n")
	return b.String()
}
