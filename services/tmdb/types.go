package tmdb

import (
	"strings"

	"github.com/yakychan/KidsFlix/models"
)

// ImageBaseURL is the TMDB image CDN root.
const ImageBaseURL = "https://image.tmdb.org/t/p"

// Image sizes used by the addon.
const (
	SizePoster   = "w500"
	SizeLogo     = "w500"
	SizeStill    = "w400"
	SizeBackdrop = "original"
)

// ImageURL returns the CDN URL for path at size, or "" when path is empty.
func ImageURL(size, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return ImageBaseURL + "/" + size + path
}

// Page is one page of a discovery or search listing.
type Page struct {
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	TotalResults int                  `json:"total_results"`
	Results      []models.CatalogItem `json:"results"`
}

// MaxPages is the deepest page TMDB will serve for discovery.
const MaxPages = 500

// HasMore reports whether a further page can be requested.
func (p Page) HasMore() bool {
	last := p.TotalPages
	if last <= 0 {
		last = 1
	}
	if last > MaxPages {
		last = MaxPages
	}
	return p.Page < last
}

// FindResult is the response of /find for an external id.
type FindResult struct {
	MovieResults []models.CatalogItem `json:"movie_results"`
	TVResults    []models.CatalogItem `json:"tv_results"`
}

// Pick returns the first record for kind, falling back to the other kind.
// The returned kind is the one the record actually belongs to.
func (f FindResult) Pick(kind models.MediaKind) (models.CatalogItem, models.MediaKind, bool) {
	movie, hasMovie := first(f.MovieResults)
	tv, hasTV := first(f.TVResults)
	if kind == models.MediaSeries {
		if hasTV {
			return tv, models.MediaSeries, true
		}
		if hasMovie {
			return movie, models.MediaMovie, true
		}
		return models.CatalogItem{}, kind, false
	}
	if hasMovie {
		return movie, models.MediaMovie, true
	}
	if hasTV {
		return tv, models.MediaSeries, true
	}
	return models.CatalogItem{}, kind, false
}

func first(items []models.CatalogItem) (models.CatalogItem, bool) {
	if len(items) == 0 {
		return models.CatalogItem{}, false
	}
	return items[0], true
}

// ExternalIDs is the response of /{kind}/{id}/external_ids.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

type releaseDatesResponse struct {
	Results []struct {
		Country      string `json:"iso_3166_1"`
		ReleaseDates []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

type contentRatingsResponse struct {
	Results []struct {
		Country string `json:"iso_3166_1"`
		Rating  string `json:"rating"`
	} `json:"results"`
}

// Details is a movie or series detail record.
type Details struct {
	models.CatalogItem
	Runtime          int             `json:"runtime"`
	EpisodeRunTime   []int           `json:"episode_run_time"`
	LastEpisodeToAir *EpisodeSummary `json:"last_episode_to_air"`
	Seasons          []SeasonSummary `json:"seasons"`
}

// RuntimeMinutes picks the movie runtime, the first episode runtime or the
// runtime of the latest aired episode, in that order.
func (d Details) RuntimeMinutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 && d.EpisodeRunTime[0] > 0 {
		return d.EpisodeRunTime[0]
	}
	if d.LastEpisodeToAir != nil {
		return d.LastEpisodeToAir.Runtime
	}
	return 0
}

// GenreNames returns the display names of the detail genres.
func (d Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

type EpisodeSummary struct {
	Runtime int `json:"runtime"`
}

type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// Season is the response of tv/{id}/season/{n}.
type Season struct {
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

type Episode struct {
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	StillPath     string `json:"still_path"`
	AirDate       string `json:"air_date"`
}

// Video is one entry of /{kind}/{id}/videos.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type videosResponse struct {
	Results []Video `json:"results"`
}

// Images is the response of /{kind}/{id}/images.
type Images struct {
	Logos []Image `json:"logos"`
}

type Image struct {
	FilePath string `json:"file_path"`
}

// PickTrailer returns the first YouTube trailer, else the first YouTube video.
func PickTrailer(videos []Video) (Video, bool) {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" && v.Key != "" {
			return v, true
		}
	}
	for _, v := range videos {
		if v.Site == "YouTube" && v.Key != "" {
			return v, true
		}
	}
	return Video{}, false
}
