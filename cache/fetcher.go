package cache

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
	"golang.org/x/sync/singleflight"
)

// Source is the upstream search the cache sits in front of
type Source interface {
	Fetch(ctx context.Context, query string) ([]client.User, error)
}

// Fetcher answers searches from the cache and falls through to Source on a miss.
// Concurrent misses for the same query share a single upstream request.
type Fetcher struct {
	next   Source
	cache  *Cache
	ttl    time.Duration
	logger *log.Logger
	group  singleflight.Group
}

// NewFetcher wraps next with the cache c. Entries older than ttl are refetched.
func NewFetcher(next Source, c *Cache, ttl time.Duration, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{next: next, cache: c, ttl: ttl, logger: logger}
}

// Fetch implements search.Fetcher
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]client.User, error) {
	key := normalizeQuery(query)

	if users, err := f.cache.Get(key, f.ttl); err == nil {
		f.logger.Debug("Search cache hit", "query", key, "results", len(users))
		return users, nil
	}

	// The flight is shared, so it must outlive any single waiter's cancellation
	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (interface{}, error) {
		users, err := f.next.Fetch(flightCtx, key)
		if err != nil {
			return nil, err
		}
		if err := f.cache.Put(key, users); err != nil {
			f.logger.Warn("Failed to cache search", "query", key, "error", err)
		}
		return users, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]client.User), nil
	}
}
