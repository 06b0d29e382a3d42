package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/autogen/pkg/httputil"
	"github.com/matzehuels/autogen/pkg/observability"
)

// Client provides cached, retrying JSON GETs for index API clients.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	headers map[string]string
}

// NewClient creates a Client. headers are sent with every request and may be
// nil. A nil cache disables caching.
func NewClient(cache *httputil.Cache, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		cache:   cache,
		headers: headers,
	}
}

// Cached fills v from the cache, or runs fetch (with retries) and stores the
// result. refresh skips the cache lookup but still stores the fresh value.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	hooks := observability.Cache()
	if c.cache != nil && !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			hooks.OnCacheHit(ctx, key)
			return nil
		}
		hooks.OnCacheMiss(ctx, key)
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.Set(key, v); err == nil {
			hooks.OnCacheSet(ctx, key)
		}
	}
	return nil
}

// Get performs an HTTP GET and JSON-decodes the body into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
