// Package cinemeta reads episode lists from the public Cinemeta addon.
package cinemeta

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
	DefaultBaseURL = "https://v3-cinemeta.strem.io"
	DefaultTimeout = 3 * time.Second
	DefaultTTL     = 30 * time.Minute
)

var ErrNotFound = errors.New("cinemeta: not found")

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *cache.Cache
	TTL        time.Duration
	Timeout    time.Duration
}

type Client struct {
	baseURL string
	httpc   *http.Client
	cache   *cache.Cache
	ttl     time.Duration
	timeout time.Duration
	log     *slog.Logger
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
		log:     slog.Default().With("component", "cinemeta"),
	}
}

type video struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Season      int    `json:"season"`
	Episode     int    `json:"episode"`
	Number      int    `json:"number"`
	Released    string `json:"released"`
	Overview    string `json:"overview"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type metaResponse struct {
	Meta *struct {
		Videos []video `json:"videos"`
	} `json:"meta"`
}

func (v video) toModel() models.Video {
	out := models.Video{
		ID:        v.ID,
		Title:     v.Name,
		Season:    v.Season,
		Episode:   v.Episode,
		Released:  v.Released,
		Overview:  v.Overview,
		Thumbnail: v.Thumbnail,
	}
	if out.Title == "" {
		out.Title = v.Title
	}
	if out.Episode == 0 {
		out.Episode = v.Number
	}
	if out.Overview == "" {
		out.Overview = v.Description
	}
	return out
}

// SeriesVideos returns the episode list Cinemeta knows for a series.
func (c *Client) SeriesVideos(ctx context.Context, imdbID string) ([]models.Video, error) {
	key := "cinemeta:series:" + imdbID
	if v, ok := cache.Lookup[[]models.Video](c.cache, key); ok {
		return v, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/meta/series/" + url.PathEscape(imdbID) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cinemeta %s: build request: %w", imdbID, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cinemeta %s: %w", imdbID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("cinemeta %s: unexpected status %s", imdbID, resp.Status)
	}

	var body metaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cinemeta %s: decode: %w", imdbID, err)
	}
	if body.Meta == nil {
		return nil, ErrNotFound
	}

	videos := make([]models.Video, 0, len(body.Meta.Videos))
	for _, v := range body.Meta.Videos {
		videos = append(videos, v.toModel())
	}
	c.log.Debug("cinemeta.videos", "imdb_id", imdbID, "count", len(videos))
	if c.cache != nil {
		c.cache.Set(key, videos, c.ttl)
	}
	return videos, nil
}
