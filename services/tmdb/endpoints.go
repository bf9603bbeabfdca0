package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yakychan/KidsFlix/models"
)

// Listing fetches a discovery or search endpoint such as
// "discover/movie?with_genres=16&page=2".
func (c *Client) Listing(ctx context.Context, endpoint string) (Page, error) {
	return fetch[Page](ctx, c, endpoint, PrimaryLanguage)
}

// SearchEndpoint builds the relative search endpoint.
func SearchEndpoint(kind models.MediaKind, query string, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("search/%s?query=%s&page=%d", kind.TMDBPath(), url.QueryEscape(query), page)
}

// IMDBID resolves the canonical id of a TMDB record. An empty string with a
// nil error means TMDB knows no IMDb id for it.
func (c *Client) IMDBID(ctx context.Context, kind models.MediaKind, id int64) (string, error) {
	ext, err := fetch[ExternalIDs](ctx, c, fmt.Sprintf("%s/%d/external_ids", kind.TMDBPath(), id), PrimaryLanguage)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(ext.IMDBID), nil
}

// Find looks up TMDB records by IMDb id.
func (c *Client) Find(ctx context.Context, imdbID string) (FindResult, error) {
	return fetch[FindResult](ctx, c, "find/"+url.PathEscape(imdbID)+"?external_source=imdb_id", PrimaryLanguage)
}

// Certifications returns per-country certification labels, normalized across
// movie release dates and series content ratings.
func (c *Client) Certifications(ctx context.Context, kind models.MediaKind, id int64) ([]models.CountryCertification, error) {
	if kind == models.MediaSeries {
		resp, err := fetch[contentRatingsResponse](ctx, c, fmt.Sprintf("tv/%d/content_ratings", id), PrimaryLanguage)
		if err != nil {
			return nil, err
		}
		out := make([]models.CountryCertification, 0, len(resp.Results))
		for _, r := range resp.Results {
			out = append(out, models.CountryCertification{Country: r.Country, Labels: []string{r.Rating}})
		}
		return out, nil
	}

	resp, err := fetch[releaseDatesResponse](ctx, c, fmt.Sprintf("movie/%d/release_dates", id), PrimaryLanguage)
	if err != nil {
		return nil, err
	}
	out := make([]models.CountryCertification, 0, len(resp.Results))
	for _, r := range resp.Results {
		labels := make([]string, 0, len(r.ReleaseDates))
		for _, rd := range r.ReleaseDates {
			labels = append(labels, rd.Certification)
		}
		out = append(out, models.CountryCertification{Country: r.Country, Labels: labels})
	}
	return out, nil
}

// Details fetches the detail record in the primary language.
func (c *Client) Details(ctx context.Context, kind models.MediaKind, id int64) (Details, error) {
	return c.DetailsIn(ctx, kind, id, PrimaryLanguage)
}

// DetailsIn fetches the detail record in language.
func (c *Client) DetailsIn(ctx context.Context, kind models.MediaKind, id int64, language string) (Details, error) {
	return fetch[Details](ctx, c, fmt.Sprintf("%s/%d", kind.TMDBPath(), id), language)
}

// Videos lists trailers and clips.
func (c *Client) Videos(ctx context.Context, kind models.MediaKind, id int64) ([]Video, error) {
	resp, err := fetch[videosResponse](ctx, c, fmt.Sprintf("%s/%d/videos", kind.TMDBPath(), id), PrimaryLanguage)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Images lists artwork; logos are restricted to Spanish, English and textless.
func (c *Client) Images(ctx context.Context, kind models.MediaKind, id int64) (Images, error) {
	return fetch[Images](ctx, c, fmt.Sprintf("%s/%d/images?include_image_language=es,en,null", kind.TMDBPath(), id), PrimaryLanguage)
}

// Season fetches one season of a series with its episodes.
func (c *Client) Season(ctx context.Context, tvID int64, number int) (Season, error) {
	return fetch[Season](ctx, c, "tv/"+strconv.FormatInt(tvID, 10)+"/season/"+strconv.Itoa(number), PrimaryLanguage)
}

// Validate checks the bound key against a known title without caching.
func (c *Client) Validate(ctx context.Context) error {
	var probe struct {
		ID int64 `json:"id"`
	}
	return c.get(ctx, "movie/550", "", &probe)
}
