// Package config loads typeahead settings.
//
// Configuration is layered:
//  1. Built-in defaults
//  2. YAML config file (explicit path, TYPEAHEAD_CONFIG, ./typeahead.yaml,
//     <user config dir>/typeahead/config.yaml)
//  3. Environment variable overrides (TYPEAHEAD_ prefix)
//  4. Validation
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hsbacot/typeahead/client"
)

// Config holds all configuration for typeahead
type Config struct {
	API     APIConfig     `yaml:"api"`
	Search  SearchConfig  `yaml:"search"`
	Pager   PagerConfig   `yaml:"pager"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig describes the demo REST endpoint
type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`     // default: https://jsonplaceholder.typicode.com
	UsersPath   string        `yaml:"users_path"`   // default: /users
	PostsPath   string        `yaml:"posts_path"`   // default: /posts
	SearchParam string        `yaml:"search_param"` // default: name_like
	Timeout     time.Duration `yaml:"timeout"`      // default: 30s
	RateLimit   float64       `yaml:"rate_limit"`   // requests per second, 0 = unlimited
}

// SearchConfig holds controller settings
type SearchConfig struct {
	QuietPeriod time.Duration `yaml:"quiet_period"` // default: 500ms
}

// PagerConfig holds pagination settings
type PagerConfig struct {
	PageSize int `yaml:"page_size"` // default: 20
	MaxPages int `yaml:"max_pages"` // 0 = until the API runs out
}

// CacheConfig holds search cache settings
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // default: <user cache dir>/typeahead
	TTL     time.Duration `yaml:"ttl"` // default: 1h
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Defaults returns a Config populated with built-in defaults
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:     client.DefaultBaseURL,
			UsersPath:   client.DefaultUsersPath,
			PostsPath:   client.DefaultPostsPath,
			SearchParam: client.DefaultSearchParam,
			Timeout:     client.DefaultTimeout,
		},
		Search: SearchConfig{
			QuietPeriod: 500 * time.Millisecond,
		},
		Pager: PagerConfig{
			PageSize: 20,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     time.Hour,
		},
	}
}

// ClientOptions maps the API section onto client options
func (c *Config) ClientOptions() client.Options {
	return client.Options{
		BaseURL:     c.API.BaseURL,
		UsersPath:   c.API.UsersPath,
		PostsPath:   c.API.PostsPath,
		SearchParam: c.API.SearchParam,
		Timeout:     c.API.Timeout,
		RateLimit:   c.API.RateLimit,
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".typeahead-cache")
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "typeahead")
}
