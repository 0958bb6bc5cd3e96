package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hsbacot/typeahead/search"
)

// Init initializes the model
func (m SearchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.initial != "" {
		q := m.initial
		cmds = append(cmds, func() tea.Msg { return queryMsg(q) })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and state transitions
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if len(m.state.Results) > 0 {
				choice := m.state.Results[m.cursor]
				m.choice = &choice
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.state.Results)-1 {
				m.cursor++
			}
			return m, nil

		case "ctrl+r":
			m.apply(m.ctrl.Retry())
			return m, nil
		}

		// Every edit of the input is a query change for the controller
		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != prev {
			m.apply(m.ctrl.Observe(value))
		}
		return m, cmd

	case queryMsg:
		m.input.SetValue(string(msg))
		m.input.CursorEnd()
		m.apply(m.ctrl.Observe(string(msg)))
		return m, nil

	case StateMsg:
		m.apply(search.State(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
