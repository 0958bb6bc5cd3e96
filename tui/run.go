package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/pager"
	"github.com/hsbacot/typeahead/search"
)

// SearchOptions configures the interactive search screen
type SearchOptions struct {
	QuietPeriod time.Duration
	Logger      *log.Logger
	Metrics     *search.Metrics
	// Query pre-fills the input and starts a search right away
	Query string
}

// RunSearch runs the interactive search screen and returns the chosen user.
// It returns nil without error when the user quits without choosing.
func RunSearch(fetcher search.Fetcher, opts SearchOptions) (*client.User, error) {
	var p *tea.Program

	ctrl := search.New(fetcher, search.Options{
		QuietPeriod: opts.QuietPeriod,
		Logger:      opts.Logger,
		Metrics:     opts.Metrics,
		OnChange: func(s search.State) {
			// Observe runs inside Update, so a blocking Send here would deadlock
			go p.Send(StateMsg(s))
		},
	})
	defer ctrl.Close()

	m := NewSearchModel(ctrl, opts.Logger)
	m.initial = opts.Query

	p = tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("search UI error: %w", err)
	}

	return final.(SearchModel).Choice(), nil
}

// RunPosts runs the infinite post list until the user quits
func RunPosts(ctx context.Context, pg *pager.Pager, pageSize int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewPostsModel(ctx, pg, pageSize), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("posts UI error: %w", err)
	}
	return nil
}
