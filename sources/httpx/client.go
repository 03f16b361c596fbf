// Package httpx is the shared GET client for the remote data sources: a resty
// client with a per-request timeout and exponential-backoff retries, fronted by
// a ResponseCache so identical requests are not re-issued across runs.
package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"dataset-collector/storage"
	"dataset-collector/utils"
)

// FetchError reports a request that failed after all retries.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	Timeout     time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
	CacheTTL    time.Duration
}

// Client issues cached, retried GET requests.
type Client struct {
	http   *resty.Client
	cache  storage.ResponseCache
	ttl    time.Duration
	logger *utils.Logger
}

// New builds a Client. A nil cache disables caching.
func New(opts Options, cache storage.ResponseCache, logger *utils.Logger) *Client {
	if cache == nil {
		cache = storage.NoopCache{}
	}

	backoff := opts.BaseBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(backoff).
		SetRetryMaxWaitTime(backoff<<uint(max(opts.MaxRetries, 1))).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "dataset-collector/1.0").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := r.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		})

	return &Client{http: rc, cache: cache, ttl: opts.CacheTTL, logger: logger}
}

// RequestURL joins base and query into the URL used as the cache key.
// url.Values.Encode sorts keys, so the key is stable.
func RequestURL(base string, query url.Values) string {
	if len(query) == 0 {
		return base
	}
	return base + "?" + query.Encode()
}

// Get returns the body of a successful GET to base?query, serving it from the
// cache when a fresh entry exists.
func (c *Client) Get(ctx context.Context, base string, query url.Values) ([]byte, error) {
	key := RequestURL(base, query)

	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("[http] Cache read failed for %s: %v", key, err)
	} else if ok {
		c.logger.Debug("[http] Cache hit: %s", key)
		return body, nil
	}

	resp, err := c.http.R().SetContext(ctx).Get(key)
	if err != nil {
		return nil, &FetchError{URL: key, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: key, StatusCode: resp.StatusCode()}
	}

	body = resp.Body()
	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("[http] Cache write failed for %s: %v", key, err)
	}
	return body, nil
}
