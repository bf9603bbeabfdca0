package models

import (
	"strconv"
	"strings"
)

// MediaKind is the addon-facing content type: "movie" or "series".
type MediaKind string

const (
	MediaMovie  MediaKind = "movie"
	MediaSeries MediaKind = "series"
)

// ParseMediaKind accepts addon and TMDB spellings. Anything unrecognized is a movie.
func ParseMediaKind(raw string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "series", "tv", "show", "shows":
		return MediaSeries
	default:
		return MediaMovie
	}
}

// TMDBPath returns the path segment TMDB uses for this kind ("movie" or "tv").
func (k MediaKind) TMDBPath() string {
	if k == MediaSeries {
		return "tv"
	}
	return "movie"
}

// Other returns the opposite kind.
func (k MediaKind) Other() MediaKind {
	if k == MediaSeries {
		return MediaMovie
	}
	return MediaSeries
}

// Genre is a TMDB genre as returned by detail endpoints.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is a provider-native record from discovery, search, find or detail endpoints.
// Records are shared through the cache and must be treated as read-only.
type CatalogItem struct {
	ID           int64   `json:"id"`
	Adult        bool    `json:"adult"`
	GenreIDs     []int   `json:"genre_ids,omitempty"` // list endpoints
	Genres       []Genre `json:"genres,omitempty"`    // detail endpoints
	Overview     string  `json:"overview"`
	Title        string  `json:"title,omitempty"` // movies
	Name         string  `json:"name,omitempty"`  // series
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
}

// GenreTags returns the genre ids regardless of which endpoint produced the record.
func (i CatalogItem) GenreTags() []int {
	if len(i.GenreIDs) > 0 {
		return i.GenreIDs
	}
	if len(i.Genres) == 0 {
		return nil
	}
	ids := make([]int, 0, len(i.Genres))
	for _, g := range i.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// DisplayTitle prefers the series name over the movie title.
func (i CatalogItem) DisplayTitle() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Title
}

// Year returns the first four characters of the air or release date.
func (i CatalogItem) Year() string {
	date := i.FirstAirDate
	if date == "" {
		date = i.ReleaseDate
	}
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// FormattedVote renders the vote average with one decimal, or "" when there are no votes.
func (i CatalogItem) FormattedVote() string {
	if i.VoteAverage <= 0 {
		return ""
	}
	return strconv.FormatFloat(i.VoteAverage, 'f', 1, 64)
}

// CountryCertification holds every certification label a country reported for one title.
type CountryCertification struct {
	Country string
	Labels  []string
}

// RatingsRecord is what the ratings provider knows about one canonical id.
// Empty fields are absent.
type RatingsRecord struct {
	PrimaryRating  string // decimal text, e.g. "7.5"
	SecondaryScore string // percentage without the sign, e.g. "93"
	AgeRating      string // e.g. "PG", "TV-14"
}

// IsIMDBID reports whether id looks like a canonical IMDb identifier.
func IsIMDBID(id string) bool {
	return strings.HasPrefix(id, "tt") && len(id) > 2
}
