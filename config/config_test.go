package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typeahead.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.API.BaseURL)
	assert.Equal(t, "name_like", cfg.API.SearchParam)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.QuietPeriod)
	assert.Equal(t, 20, cfg.Pager.PageSize)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	path := writeTemp(t, `
api:
  base_url: http://localhost:3000
  search_param: q
  timeout: 5s
  rate_limit: 2.5
search:
  quiet_period: 250ms
pager:
  page_size: 10
  max_pages: 5
cache:
  enabled: false
metrics:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, "q", cfg.API.SearchParam)
	assert.Equal(t, "/users", cfg.API.UsersPath)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.5, cfg.API.RateLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.QuietPeriod)
	assert.Equal(t, 10, cfg.Pager.PageSize)
	assert.Equal(t, 5, cfg.Pager.MaxPages)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)

	opts := cfg.ClientOptions()
	assert.Equal(t, "q", opts.SearchParam)
	assert.Equal(t, 2.5, opts.RateLimit)
}

func TestEnvOverride(t *testing.T) {
	path := writeTemp(t, "search:\n  quiet_period: 1s\n")
	t.Setenv("TYPEAHEAD_QUIET_PERIOD", "300ms")
	t.Setenv("TYPEAHEAD_BASE_URL", "http://example.test")
	t.Setenv("TYPEAHEAD_PAGE_SIZE", "7")
	t.Setenv("TYPEAHEAD_CACHE_DIR", "/tmp/ta-cache")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.QuietPeriod)
	assert.Equal(t, "http://example.test", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.Pager.PageSize)
	assert.Equal(t, "/tmp/ta-cache", cfg.Cache.Dir)
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("TYPEAHEAD_CONFIG", writeTemp(t, "{}\n"))
	t.Setenv("TYPEAHEAD_QUIET_PERIOD", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TYPEAHEAD_QUIET_PERIOD")
}

func TestConfigEnvDiscovery(t *testing.T) {
	t.Setenv("TYPEAHEAD_CONFIG", writeTemp(t, "pager:\n  page_size: 3\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pager.PageSize)
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/users" }, "not an absolute URL"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"negative rate", func(c *Config) { c.API.RateLimit = -1 }, "api.rate_limit"},
		{"zero quiet period", func(c *Config) { c.Search.QuietPeriod = 0 }, "search.quiet_period"},
		{"zero page size", func(c *Config) { c.Pager.PageSize = 0 }, "pager.page_size"},
		{"negative max pages", func(c *Config) { c.Pager.MaxPages = -1 }, "pager.max_pages"},
		{"cache without dir", func(c *Config) { c.Cache.Dir = "" }, "cache.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
