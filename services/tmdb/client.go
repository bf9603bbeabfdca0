// Package tmdb is a small TMDB v3 client covering the discovery, lookup and
// detail endpoints the addon needs. Decoded responses are memoized in the
// shared cache under a per-key namespace.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yakychan/KidsFlix/internal/cache"
)

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	DefaultTimeout   = 5 * time.Second
	DefaultTTL       = 30 * time.Minute
	PrimaryLanguage  = "es-ES"
	FallbackLanguage = "en-US"
)

var (
	// ErrNotFound is returned when TMDB answers 404.
	ErrNotFound = errors.New("tmdb: not found")
	// ErrUnauthorized is returned when TMDB rejects the API key.
	ErrUnauthorized = errors.New("tmdb: invalid api key")
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *cache.Cache
	TTL        time.Duration
	Timeout    time.Duration
}

// Client talks to TMDB with one API key. Use WithAPIKey to derive a client
// for another key; derived clients share the HTTP client and cache.
type Client struct {
	baseURL   string
	apiKey    string
	namespace string
	httpc     *http.Client
	cache     *cache.Cache
	ttl       time.Duration
	timeout   time.Duration
	log       *slog.Logger
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpc:   opts.HTTPClient,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		timeout: opts.Timeout,
		log:     slog.Default().With("component", "tmdb"),
	}
}

// WithAPIKey returns a copy of the client bound to key.
func (c *Client) WithAPIKey(key string) *Client {
	cp := *c
	cp.apiKey = strings.TrimSpace(key)
	cp.namespace = cache.Namespace(cp.apiKey)
	return &cp
}

// Configured reports whether an API key is bound.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Namespace returns the cache namespace of the bound key.
func (c *Client) Namespace() string {
	return c.namespace
}

// fetch GETs endpoint (relative to the base URL, optionally carrying its own
// query) in the given language and decodes the body into T. Successful
// results are cached; failures never are.
func fetch[T any](ctx context.Context, c *Client, endpoint, language string) (T, error) {
	var zero T
	key := "tmdb:" + c.namespace + ":" + language + ":" + endpoint
	if v, ok := cache.Lookup[T](c.cache, key); ok {
		return v, nil
	}

	var out T
	if err := c.get(ctx, endpoint, language, &out); err != nil {
		return zero, err
	}
	if c.cache != nil {
		c.cache.Set(key, out, c.ttl)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint, language string, v any) error {
	if !c.Configured() {
		return errors.New("tmdb: api key not configured")
	}
	u, err := c.buildURL(endpoint, language)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("tmdb %s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		// url.Error carries the full URL, which includes the key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.log.Debug("tmdb.request", "endpoint", endpoint, "language", language, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("tmdb %s: %w", endpoint, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("tmdb %s: %w", endpoint, ErrUnauthorized)
	case resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("tmdb %s: unexpected status %s", endpoint, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("tmdb %s: decode: %w", endpoint, err)
	}
	return nil
}

func (c *Client) buildURL(endpoint, language string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("tmdb %s: parse endpoint: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	if language != "" {
		q.Set("language", language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
