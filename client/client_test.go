package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestSearchUsersSendsQueryParam(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("name_like")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz"}]`))
	})

	users, err := c.SearchUsers(context.Background(), "lean ne&x")
	require.NoError(t, err)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, "lean ne&x", gotQuery)
	require.Len(t, users, 1)
	assert.Equal(t, User{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"}, users[0])
}

func TestCustomSearchParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people", r.URL.Path)
		assert.Equal(t, "bob", r.URL.Query().Get("q"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, UsersPath: "/people", SearchParam: "q"})
	users, err := c.Fetch(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNon2xxIsStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.SearchUsers(context.Background(), "x")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "502")
}

func TestMalformedJSONIsError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestCancelledRequestReturnsContextError(t *testing.T) {
	release := make(chan struct{})
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.SearchUsers(ctx, "slow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListPostsPagination(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("_page"))
		assert.Equal(t, "20", r.URL.Query().Get("_limit"))
		w.Write([]byte(`[{"id":41,"userId":5,"title":"t","body":"b"}]`))
	})

	posts, err := c.FetchPage(context.Background(), 3, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 41, posts[0].ID)
	assert.Equal(t, 5, posts[0].UserID)
}

func TestMetricsCountRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name_like") == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Metrics: m})
	_, err := c.SearchUsers(context.Background(), "ok")
	require.NoError(t, err)
	_, err = c.SearchUsers(context.Background(), "bad")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("search", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("search", "500")))
}
