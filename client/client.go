package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "https://jsonplaceholder.typicode.com"
	DefaultUsersPath   = "/users"
	DefaultPostsPath   = "/posts"
	DefaultSearchParam = "name_like"
	DefaultTimeout     = 30 * time.Second
)

// User represents a user record from the demo API
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Post represents a post record from the demo API
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL     string
	UsersPath   string
	PostsPath   string
	SearchParam string
	Timeout     time.Duration
	// RateLimit is the number of requests allowed per second, 0 disables limiting
	RateLimit float64
	Logger    *log.Logger
	Metrics   *Metrics
}

// Client is an HTTP client for the demo REST API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	usersPath   string
	postsPath   string
	searchParam string
	limiter     *rate.Limiter
	logger      *log.Logger
	metrics     *Metrics
}

// NewClient creates a new API client
func NewClient(opts Options) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:     opts.BaseURL,
		usersPath:   opts.UsersPath,
		postsPath:   opts.PostsPath,
		searchParam: opts.SearchParam,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = DefaultTimeout
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.usersPath == "" {
		c.usersPath = DefaultUsersPath
	}
	if c.postsPath == "" {
		c.postsPath = DefaultPostsPath
	}
	if c.searchParam == "" {
		c.searchParam = DefaultSearchParam
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c
}

// SearchUsers searches for users whose name matches the query
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	params := url.Values{}
	params.Set(c.searchParam, query)

	var users []User
	if err := c.getJSON(ctx, "search", c.usersPath, params, &users); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// ListUsers fetches every user
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "users", c.usersPath, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListPosts fetches one page of posts. Pages start at 1.
func (c *Client) ListPosts(ctx context.Context, page, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("_page", strconv.Itoa(page))
	params.Set("_limit", strconv.Itoa(limit))

	var posts []Post
	if err := c.getJSON(ctx, "posts", c.postsPath, params, &posts); err != nil {
		return nil, fmt.Errorf("failed to list posts page %d: %w", page, err)
	}
	return posts, nil
}

// FetchPage lets the client back a pager directly
func (c *Client) FetchPage(ctx context.Context, page, limit int) ([]Post, error) {
	return c.ListPosts(ctx, page, limit)
}

// Fetch lets the client back a search controller directly
func (c *Client) Fetch(ctx context.Context, query string) ([]User, error) {
	return c.SearchUsers(ctx, query)
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET", "url", reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(endpoint, "error", time.Since(start))
		// Surface the context error itself so callers can tell cancellation apart
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.observe(endpoint, "decode_error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	c.metrics.observe(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	c.logger.Debug("GET completed", "url", reqURL, "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}
