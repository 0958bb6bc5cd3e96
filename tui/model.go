package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/search"
)

// maxVisibleResults caps how many result rows are drawn at once
const maxVisibleResults = 10

// SearchModel is the Bubble Tea model for the debounced search screen
type SearchModel struct {
	// UI Components
	input   textinput.Model
	spinner spinner.Model
	logger  *log.Logger

	// Services
	ctrl *search.Controller

	// State
	state    search.State
	cursor   int
	choice   *client.User
	quitting bool
	initial  string
}

// NewSearchModel creates a search screen driven by ctrl
func NewSearchModel(ctrl *search.Controller, logger *log.Logger) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search users..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return SearchModel{
		input:   ti,
		spinner: s,
		logger:  logger,
		ctrl:    ctrl,
		state:   ctrl.State(),
	}
}

// Choice returns the user picked with enter, or nil
func (m SearchModel) Choice() *client.User {
	return m.choice
}

// State returns the last controller snapshot applied to the screen
func (m SearchModel) State() search.State {
	return m.state
}

// apply installs a controller snapshot unless a newer one is already shown
func (m *SearchModel) apply(s search.State) {
	if s.Revision < m.state.Revision {
		m.logger.Debug("Dropping out-of-order state", "revision", s.Revision, "current", m.state.Revision)
		return
	}
	m.state = s

	if m.cursor >= len(s.Results) {
		m.cursor = len(s.Results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
