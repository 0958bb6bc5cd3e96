package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for values the tool cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, errors.New("api.rate_limit must not be negative"))
	}
	if c.Search.QuietPeriod <= 0 {
		errs = append(errs, errors.New("search.quiet_period must be positive"))
	}
	if c.Pager.PageSize <= 0 {
		errs = append(errs, errors.New("pager.page_size must be positive"))
	}
	if c.Pager.MaxPages < 0 {
		errs = append(errs, errors.New("pager.max_pages must not be negative"))
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache.dir is required when the cache is enabled"))
	}

	return errors.Join(errs...)
}
