package tui

import (
	"github.com/hsbacot/typeahead/pager"
	"github.com/hsbacot/typeahead/search"
)

// Message types for Bubble Tea state transitions

// StateMsg carries a controller snapshot into the event loop
type StateMsg search.State

// queryMsg replaces the input value as if it had been typed
type queryMsg string

type pageMsg struct {
	state pager.State
	err   error
}
