package cache

import (
	"time"

	"github.com/hsbacot/typeahead/client"
)

// SearchEntry is the on-disk record for one cached search
type SearchEntry struct {
	Query     string        `json:"query"`
	Timestamp time.Time     `json:"timestamp"`
	Results   []client.User `json:"results"`
}

// CachedSearch describes a cached search without its results
type CachedSearch struct {
	Query     string    `json:"query"`
	Results   int       `json:"results"`
	Size      int64     `json:"size"`
	FetchedAt time.Time `json:"fetched_at"`
}

// CacheStats contains statistics about the cache
type CacheStats struct {
	TotalEntries int
	TotalSize    int64
	OldestEntry  time.Time
	NewestEntry  time.Time
	CacheDir     string
}

// PruneOptions configures cache pruning behavior
type PruneOptions struct {
	MaxAge time.Duration
	DryRun bool
}

// PruneResult contains information about pruned entries
type PruneResult struct {
	RemovedCount int
	FreedSpace   int64
	RemovedItems []string
}
