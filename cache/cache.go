package cache

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hsbacot/typeahead/client"
)

// ErrExpired is returned by Get when the entry is older than the allowed age
var ErrExpired = errors.New("search cache expired")

// Cache manages the local file cache of search results
type Cache struct {
	baseDir string
}

// NewCache creates a new cache manager with the specified directory
func NewCache(dir string) (*Cache, error) {
	searchDir := filepath.Join(dir, "searches")
	if err := os.MkdirAll(searchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{baseDir: dir}, nil
}

// Dir returns the cache root directory
func (c *Cache) Dir() string {
	return c.baseDir
}

// Put caches the results of a search
func (c *Cache) Put(query string, results []client.User) error {
	return c.put(SearchEntry{
		Query:     normalizeQuery(query),
		Timestamp: time.Now(),
		Results:   results,
	})
}

func (c *Cache) put(entry SearchEntry) error {
	searchPath := c.entryPath(entry.Query)
	tmpPath := searchPath + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create search cache file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entry); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode search cache: %w", err)
	}
	file.Close()

	// Write atomically (write to temp file, then rename)
	if err := os.Rename(tmpPath, searchPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save search cache: %w", err)
	}

	return nil
}

// Get retrieves cached search results no older than maxAge
func (c *Cache) Get(query string, maxAge time.Duration) ([]client.User, error) {
	entry, err := c.readEntry(c.entryPath(normalizeQuery(query)))
	if err != nil {
		return nil, err
	}

	if time.Since(entry.Timestamp) > maxAge {
		return nil, ErrExpired
	}

	return entry.Results, nil
}

// Remove deletes the cached results for query
func (c *Cache) Remove(query string) error {
	path := c.entryPath(normalizeQuery(query))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("search not found in cache: %q", query)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove search: %w", err)
	}
	return nil
}

// Clear removes all cached content
func (c *Cache) Clear() error {
	searchDir := filepath.Join(c.baseDir, "searches")

	if err := os.RemoveAll(searchDir); err != nil {
		return fmt.Errorf("failed to clear searches cache: %w", err)
	}

	if err := os.MkdirAll(searchDir, 0755); err != nil {
		return fmt.Errorf("failed to recreate searches directory: %w", err)
	}

	return nil
}

// List returns every cached search, newest first
func (c *Cache) List() ([]CachedSearch, error) {
	searchDir := filepath.Join(c.baseDir, "searches")

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CachedSearch{}, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	result := []CachedSearch{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		entry, err := c.readEntry(filepath.Join(searchDir, e.Name()))
		if err != nil {
			continue // Skip corrupted files
		}

		result = append(result, CachedSearch{
			Query:     entry.Query,
			Results:   len(entry.Results),
			Size:      info.Size(),
			FetchedAt: entry.Timestamp,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FetchedAt.After(result[j].FetchedAt)
	})

	return result, nil
}

// GetStats returns statistics about the cache
func (c *Cache) GetStats() (*CacheStats, error) {
	searches, err := c.List()
	if err != nil {
		return nil, err
	}

	stats := &CacheStats{CacheDir: c.baseDir}
	for _, s := range searches {
		stats.TotalEntries++
		stats.TotalSize += s.Size

		if stats.OldestEntry.IsZero() || s.FetchedAt.Before(stats.OldestEntry) {
			stats.OldestEntry = s.FetchedAt
		}
		if s.FetchedAt.After(stats.NewestEntry) {
			stats.NewestEntry = s.FetchedAt
		}
	}

	return stats, nil
}

// Prune removes cache entries older than opts.MaxAge
func (c *Cache) Prune(opts PruneOptions) (*PruneResult, error) {
	searches, err := c.List()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{
		RemovedItems: []string{},
	}

	now := time.Now()
	for _, s := range searches {
		if now.Sub(s.FetchedAt) <= opts.MaxAge {
			continue
		}

		if !opts.DryRun {
			if err := c.Remove(s.Query); err != nil {
				// Log error but continue
				continue
			}
		}

		result.RemovedCount++
		result.FreedSpace += s.Size
		result.RemovedItems = append(result.RemovedItems, s.Query)
	}

	return result, nil
}

func (c *Cache) readEntry(path string) (*SearchEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("search cache miss: %w", err)
	}
	defer file.Close()

	var entry SearchEntry
	if err := json.NewDecoder(file).Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode search cache: %w", err)
	}
	return &entry, nil
}

func (c *Cache) entryPath(query string) string {
	return filepath.Join(c.baseDir, "searches", hashQuery(query)+".json")
}

func normalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// hashQuery creates a hash of the query string for caching
func hashQuery(query string) string {
	h := sha256.New()
	io.WriteString(h, query)
	return fmt.Sprintf("%x", h.Sum(nil))
}
