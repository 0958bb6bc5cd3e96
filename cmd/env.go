package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/cache"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/config"
	"github.com/hsbacot/typeahead/search"
)

// Env carries what every command needs: settings, logging, metrics and an output stream
type Env struct {
	Config  *config.Config
	Logger  *log.Logger
	Out     io.Writer
	NoCache bool

	ClientMetrics *client.Metrics
	SearchMetrics *search.Metrics
}

// Client builds an API client from the configuration
func (e *Env) Client() *client.Client {
	opts := e.Config.ClientOptions()
	opts.Logger = e.Logger
	opts.Metrics = e.ClientMetrics
	return client.NewClient(opts)
}

// OpenCache opens the on-disk search cache
func (e *Env) OpenCache() (*cache.Cache, error) {
	c, err := cache.NewCache(e.Config.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return c, nil
}

// SearchFetcher returns the fetcher searches go through, cached unless disabled
func (e *Env) SearchFetcher(c *client.Client) search.Fetcher {
	if e.NoCache || !e.Config.Cache.Enabled {
		return c
	}

	sc, err := e.OpenCache()
	if err != nil {
		e.Logger.Warn("Search cache unavailable, continuing without it", "error", err)
		return c
	}
	e.Logger.Debug("Using search cache", "dir", sc.Dir(), "ttl", e.Config.Cache.TTL)
	return cache.NewFetcher(c, sc, e.Config.Cache.TTL, e.Logger)
}
