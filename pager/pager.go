// Package pager loads a list page by page with a duplicate-request guard and
// pull-to-refresh.
package pager

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
)

// DefaultPageSize matches the page size of the demo API exercises
const DefaultPageSize = 20

var (
	// ErrBusy is returned when a load or refresh is already running
	ErrBusy = errors.New("pager: load already in progress")
	// ErrExhausted is returned by LoadMore once the last page has been seen
	ErrExhausted = errors.New("pager: no more pages")
)

// PageFetcher fetches one page of posts. Pages start at 1.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, limit int) ([]client.Post, error)
}

// Options configures a Pager
type Options struct {
	PageSize int
	// MaxPages stops paging after this many pages, 0 means no limit
	MaxPages int
	Logger   *log.Logger
}

// State is a snapshot of the pager
type State struct {
	Items      []client.Post
	Page       int
	Loading    bool
	Refreshing bool
	HasMore    bool
	Err        error
}

// Pager accumulates pages of posts
type Pager struct {
	fetcher  PageFetcher
	pageSize int
	maxPages int
	logger   *log.Logger

	mu         sync.Mutex
	items      []client.Post
	seen       map[int]struct{}
	page       int
	loading    bool
	refreshing bool
	hasMore    bool
	err        error
	gen        uint64
}

// New creates a pager. Nothing is fetched until LoadMore or Refresh is called.
func New(fetcher PageFetcher, opts Options) *Pager {
	p := &Pager{
		fetcher:  fetcher,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		logger:   opts.Logger,
		seen:     make(map[int]struct{}),
		hasMore:  true,
	}
	if p.pageSize <= 0 {
		p.pageSize = DefaultPageSize
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	return p
}

// LoadMore fetches the next page and appends it
func (p *Pager) LoadMore(ctx context.Context) (State, error) {
	p.mu.Lock()
	if p.loading || p.refreshing {
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st, ErrBusy
	}
	if !p.hasMore {
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st, ErrExhausted
	}
	p.loading = true
	gen := p.gen
	next := p.page + 1
	p.mu.Unlock()

	p.logger.Debug("Loading page", "page", next, "limit", p.pageSize)
	posts, err := p.fetcher.FetchPage(ctx, next, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A refresh started while this page was in flight; its result wins
	if gen != p.gen {
		p.logger.Debug("Dropping page superseded by refresh", "page", next)
		return p.snapshotLocked(), nil
	}
	p.loading = false

	if err != nil {
		p.err = err
		return p.snapshotLocked(), err
	}
	p.err = nil

	if len(posts) == 0 {
		p.hasMore = false
		return p.snapshotLocked(), nil
	}

	added := p.appendLocked(posts)
	p.page = next
	p.hasMore = len(posts) >= p.pageSize && (p.maxPages == 0 || p.page < p.maxPages)
	p.logger.Debug("Loaded page", "page", next, "added", added, "total", len(p.items), "has_more", p.hasMore)

	return p.snapshotLocked(), nil
}

// Refresh reloads the first page and replaces everything loaded so far
func (p *Pager) Refresh(ctx context.Context) (State, error) {
	p.mu.Lock()
	if p.refreshing {
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st, ErrBusy
	}
	p.gen++
	p.refreshing = true
	p.loading = false
	p.mu.Unlock()

	p.logger.Debug("Refreshing", "limit", p.pageSize)
	posts, err := p.fetcher.FetchPage(ctx, 1, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshing = false

	if err != nil {
		p.err = err
		return p.snapshotLocked(), err
	}

	p.err = nil
	p.items = nil
	p.seen = make(map[int]struct{})
	p.appendLocked(posts)
	p.page = 1
	p.hasMore = len(posts) >= p.pageSize && p.maxPages != 1

	return p.snapshotLocked(), nil
}

// State returns a snapshot of the pager
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pager) appendLocked(posts []client.Post) int {
	added := 0
	for _, post := range posts {
		if _, dup := p.seen[post.ID]; dup {
			continue
		}
		p.seen[post.ID] = struct{}{}
		p.items = append(p.items, post)
		added++
	}
	return added
}

func (p *Pager) snapshotLocked() State {
	return State{
		Items:      append([]client.Post(nil), p.items...),
		Page:       p.page,
		Loading:    p.loading,
		Refreshing: p.refreshing,
		HasMore:    p.hasMore,
		Err:        p.err,
	}
}
