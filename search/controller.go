// Package search implements a debounced, cancelling query controller.
//
// Each call to Observe starts a new settle cycle tagged with a generation number.
// A request is only issued once the query has stayed unchanged for the quiet
// period, and a response is only applied if its generation is still current.
package search

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
)

// DefaultQuietPeriod is the debounce interval used when Options leaves it unset
const DefaultQuietPeriod = 500 * time.Millisecond

// Fetcher performs the network search for a settled query
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]client.User, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, query string) ([]client.User, error)

// Fetch calls f(ctx, query)
func (f FetcherFunc) Fetch(ctx context.Context, query string) ([]client.User, error) {
	return f(ctx, query)
}

// State is the view-facing record owned by the caller
type State struct {
	Query   string
	Results []client.User
	Loading bool
	Err     error

	// Generation identifies the settle cycle this state belongs to
	Generation uint64
	// Revision increases on every state mutation
	Revision uint64
}

// ErrorMessage returns the error text, or "" when the last fetch succeeded
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Options contains configuration for the Controller
type Options struct {
	QuietPeriod time.Duration
	Clock       Clock
	Logger      *log.Logger
	Metrics     *Metrics
	// OnChange receives a snapshot after every visible state change.
	// It is called without the controller lock held, possibly from a timer goroutine.
	OnChange func(State)
}

// Controller debounces query changes and guards results against stale responses
type Controller struct {
	fetcher  Fetcher
	quiet    time.Duration
	clock    Clock
	logger   *log.Logger
	metrics  *Metrics
	onChange func(State)

	mu     sync.Mutex
	state  State
	gen    uint64
	timer  Timer
	cancel context.CancelFunc
	closed bool
}

// New creates a controller that issues requests through fetcher
func New(fetcher Fetcher, opts Options) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		quiet:    opts.QuietPeriod,
		clock:    opts.Clock,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		onChange: opts.OnChange,
	}
	if c.quiet <= 0 {
		c.quiet = DefaultQuietPeriod
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Observe feeds a new query value into the controller and returns the resulting state
func (c *Controller) Observe(query string) State {
	c.mu.Lock()
	if c.closed || query == c.state.Query {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	if c.supersedeLocked() {
		c.metrics.debounced()
	}
	c.state.Query = query
	c.state.Err = nil

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.state.Results = nil
		c.state.Loading = false
		c.logger.Debug("Query cleared", "generation", c.gen)
	} else {
		c.state.Loading = true
		c.scheduleLocked(trimmed, c.quiet)
	}

	c.state.Revision++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

// Retry re-issues the current query immediately, skipping the quiet period
func (c *Controller) Retry() State {
	c.mu.Lock()
	trimmed := strings.TrimSpace(c.state.Query)
	if c.closed || trimmed == "" {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.supersedeLocked()
	c.state.Err = nil
	c.state.Loading = true
	c.scheduleLocked(trimmed, 0)

	c.state.Revision++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops the pending timer and aborts any in-flight request.
// Responses arriving afterwards are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.supersedeLocked()
	c.closed = true
}

// supersedeLocked starts a new generation and invalidates whatever the previous one had in progress.
// It reports whether a pending search was stopped before it fired.
func (c *Controller) supersedeLocked() bool {
	c.gen++
	c.state.Generation = c.gen

	stopped := false
	if c.timer != nil {
		stopped = c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return stopped
}

func (c *Controller) scheduleLocked(query string, delay time.Duration) {
	gen := c.gen
	c.timer = c.clock.AfterFunc(delay, func() {
		c.settle(gen, query)
	})
}

// settle runs when the quiet period for generation gen has elapsed
func (c *Controller) settle(gen uint64, query string) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.timer = nil
	c.mu.Unlock()
	defer cancel()

	c.metrics.requested()
	c.logger.Debug("Issuing search", "query", query, "generation", gen)

	results, err := c.fetcher.Fetch(ctx, query)
	c.resolve(gen, query, results, err)
}

func (c *Controller) resolve(gen uint64, query string, results []client.User, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.metrics.discarded()
		c.logger.Debug("Discarding stale response", "query", query, "generation", gen)
		return
	}
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		c.state.Err = err
		c.metrics.failed()
		c.logger.Debug("Search failed", "query", query, "error", err)
	} else {
		c.state.Results = append([]client.User(nil), results...)
		c.state.Err = nil
		c.logger.Debug("Search completed", "query", query, "results", len(results))
	}

	c.state.Revision++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) snapshotLocked() State {
	snap := c.state
	snap.Results = append([]client.User(nil), c.state.Results...)
	return snap
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
