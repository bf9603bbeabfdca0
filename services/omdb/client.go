// Package omdb fetches age ratings and review scores from OMDb.
package omdb

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
	"github.com/yakychan/KidsFlix/models"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	DefaultTimeout = 3 * time.Second
	DefaultTTL     = 24 * time.Hour

	// ValidationID is a long-lived title used to probe keys.
	ValidationID = "tt0120338"
)

var (
	// ErrNotFound is returned when OMDb answers Response:"False".
	ErrNotFound = errors.New("omdb: not found")
	// ErrUnauthorized is returned when OMDb rejects the API key.
	ErrUnauthorized = errors.New("omdb: invalid api key")
)

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *cache.Cache
	TTL        time.Duration
	Timeout    time.Duration
}

// Client is an OMDb client bound to at most one API key.
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
		baseURL: opts.BaseURL,
		httpc:   opts.HTTPClient,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		timeout: opts.Timeout,
		log:     slog.Default().With("component", "omdb"),
	}
}

// WithAPIKey returns a copy of the client bound to key. An empty key yields an
// unconfigured client.
func (c *Client) WithAPIKey(key string) *Client {
	cp := *c
	cp.apiKey = strings.TrimSpace(key)
	cp.namespace = cache.Namespace(cp.apiKey)
	return &cp
}

// Namespace returns the cache namespace of the bound key, "" when unconfigured.
func (c *Client) Namespace() string {
	return c.namespace
}

// Configured reports whether lookups will be attempted.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type response struct {
	Response   string   `json:"Response"`
	Error      string   `json:"Error"`
	Rated      string   `json:"Rated"`
	IMDBRating string   `json:"imdbRating"`
	Ratings    []rating `json:"Ratings"`
}

func (r response) record() models.RatingsRecord {
	rec := models.RatingsRecord{
		PrimaryRating: present(r.IMDBRating),
		AgeRating:     present(r.Rated),
	}
	for _, rt := range r.Ratings {
		if rt.Source == "Rotten Tomatoes" {
			rec.SecondaryScore = present(strings.TrimSuffix(strings.TrimSpace(rt.Value), "%"))
			break
		}
	}
	return rec
}

// present maps OMDb's "N/A" placeholder to absent.
func present(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "N/A") {
		return ""
	}
	return v
}

// Ratings returns the ratings record for imdbID. Unknown titles yield an empty
// record, which is cached like any other answer. Transport failures are not.
func (c *Client) Ratings(ctx context.Context, imdbID string) (models.RatingsRecord, error) {
	if !c.Configured() {
		return models.RatingsRecord{}, nil
	}
	key := "omdb:" + c.namespace + ":" + imdbID
	if rec, ok := cache.Lookup[models.RatingsRecord](c.cache, key); ok {
		return rec, nil
	}

	resp, err := c.lookup(ctx, imdbID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.RatingsRecord{}, err
	}
	rec := resp.record()
	if c.cache != nil {
		c.cache.Set(key, rec, c.ttl)
	}
	return rec, nil
}

// Validate probes the bound key with a known title.
func (c *Client) Validate(ctx context.Context) error {
	if !c.Configured() {
		return errors.New("omdb: api key not configured")
	}
	_, err := c.lookup(ctx, ValidationID)
	return err
}

func (c *Client) lookup(ctx context.Context, imdbID string) (response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return response{}, fmt.Errorf("omdb: parse base url: %w", err)
	}
	q := u.Query()
	q.Set("i", imdbID)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return response{}, fmt.Errorf("omdb %s: build request: %w", imdbID, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return response{}, fmt.Errorf("omdb %s: %w", imdbID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return response{}, fmt.Errorf("omdb %s: %w", imdbID, ErrUnauthorized)
	}
	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return response{}, fmt.Errorf("omdb %s: unexpected status %s", imdbID, resp.Status)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return response{}, fmt.Errorf("omdb %s: decode: %w", imdbID, err)
	}
	if strings.EqualFold(out.Response, "False") {
		c.log.Debug("omdb.not_found", "imdb_id", imdbID, "error", out.Error)
		return response{}, fmt.Errorf("omdb %s: %s: %w", imdbID, out.Error, ErrNotFound)
	}
	return out, nil
}
