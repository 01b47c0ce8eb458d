// Package api is a typed client for the cancha booking backend. It covers
// the auth endpoints consumed by the session gate plus the venue, booking,
// payment, profile and statistics resources the CLI exposes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

const defaultTimeout = 30 * time.Second

// maxRetries bounds the retry loop for idempotent requests.
const maxRetries = 3

// Config holds the settings for a backend client.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.canchaclub.app
	BaseURL string

	// Timeout applies per request. Zero selects the default.
	Timeout time.Duration

	// CacheDir enables a disk-backed HTTP cache for GET responses.
	// Empty selects an in-memory cache.
	CacheDir string
}

// Client talks to the booking backend over its REST API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a backend client. GET responses are cached per their
// Cache-Control headers (availability listings are the hot path), bodies
// are transparently gunzipped, and cookies are kept across redirects.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	var cache httpcache.Cache
	if cfg.CacheDir != "" {
		cache = diskcache.New(cfg.CacheDir)
	} else {
		cache = httpcache.NewMemoryCache()
	}

	transport := httpcache.NewTransport(cache)
	transport.Transport = gzhttp.Transport(http.DefaultTransport)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log.Debug().Str("baseURL", cfg.BaseURL).Dur("timeout", timeout).Msg("api client initialized")

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
	}, nil
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// get performs a GET with bounded exponential backoff. Connection errors
// and 5xx responses are retried; anything else resolves immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	operation := func() ([]byte, error) {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		body, err := c.send(req)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return body, nil
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxRetries),
	)
	if err != nil {
		return err
	}

	return decode(body, out)
}

// do performs a non-idempotent request exactly once.
func (c *Client) do(ctx context.Context, method, path string, in, out any, headers http.Header) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	respBody, err := c.send(req)
	if err != nil {
		return err
	}

	return decode(respBody, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// send executes the request and returns the raw body, mapping non-2xx
// responses to *APIError.
func (c *Client) send(req *http.Request) ([]byte, error) {
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
