package meta

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"

	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

// maxEnrichedSeasons caps how many season detail requests one meta may issue.
const maxEnrichedSeasons = 10

// FormatRuntime renders minutes as "1h 30m", "2h" or "45 min".
func FormatRuntime(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes >= 60:
		h, m := minutes/60, minutes%60
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	default:
		return strconv.Itoa(minutes) + " min"
	}
}

// AgeIndicator is prefixed to descriptions when the age rating is known.
func AgeIndicator(rating string) string {
	if rating == "" {
		return ""
	}
	return "📋 Clasificación: " + rating + "\n\n"
}

// Meta resolves the full display record for one canonical id: details,
// trailer, logo, runtime and, for series, the episode list. It returns nil
// when the title is unknown or not admitted.
func (b *Builder) Meta(ctx context.Context, kind models.MediaKind, imdbID string) *models.DisplayMeta {
	start := time.Now()

	var (
		found       tmdb.FindResult
		findErr     error
		cinemetaEps []models.Video
		rec         models.RatingsRecord
	)
	var lookups conc.WaitGroup
	lookups.Go(func() { found, findErr = b.provider.Find(ctx, imdbID) })
	if kind == models.MediaSeries && b.episodes != nil {
		lookups.Go(func() {
			eps, err := b.episodes.SeriesVideos(ctx, imdbID)
			if err != nil {
				b.log.Debug("meta.episodes_failed", "imdb_id", imdbID, "error", err)
				return
			}
			cinemetaEps = eps
		})
	}
	lookups.Go(func() { rec = b.ratingsFor(ctx, imdbID) })
	lookups.Wait()

	if findErr != nil {
		b.log.Debug("meta.find_failed", "imdb_id", imdbID, "error", findErr)
		return nil
	}
	item, itemKind, ok := found.Pick(kind)
	if !ok {
		return nil
	}

	if d := b.classifier.Classify(ctx, item, itemKind, imdbID); !d.Admit {
		b.log.Info("meta.blocked", "imdb_id", imdbID, "title", item.DisplayTitle(), "reason", d.Reason)
		return nil
	}

	var (
		det    tmdb.Details
		detOK  bool
		videos []tmdb.Video
		images tmdb.Images
	)
	var fetches conc.WaitGroup
	fetches.Go(func() {
		d, err := b.provider.Details(ctx, itemKind, item.ID)
		det, detOK = d, err == nil
	})
	fetches.Go(func() { videos, _ = b.provider.Videos(ctx, itemKind, item.ID) })
	fetches.Go(func() { images, _ = b.provider.Images(ctx, itemKind, item.ID) })
	fetches.Wait()

	overview := firstNonEmpty(det.Overview, item.Overview)
	if overview == "" {
		if en, err := b.provider.DetailsIn(ctx, itemKind, item.ID, tmdb.FallbackLanguage); err == nil {
			overview = en.Overview
		}
	}

	rating := rec.PrimaryRating
	if rating == "" {
		rating = item.FormattedVote()
	}
	runtime := FormatRuntime(det.RuntimeMinutes())

	m := &models.DisplayMeta{
		ID:          imdbID,
		Type:        kind,
		Name:        firstNonEmpty(det.DisplayTitle(), item.DisplayTitle()),
		Background:  tmdb.ImageURL(tmdb.SizeBackdrop, firstNonEmpty(det.BackdropPath, item.BackdropPath)),
		Description: AgeIndicator(rec.AgeRating) + overview,
		ReleaseInfo: firstNonEmpty(det.Year(), item.Year()),
		IMDBRating:  rating,
		Runtime:     runtime,
		Genres:      det.GenreNames(),
	}
	src := tmdb.ImageURL(tmdb.SizePoster, firstNonEmpty(det.PosterPath, item.PosterPath))
	m.Poster = poster.BadgeURL(b.posterBase, imdbID, src, poster.Ratings{Primary: rating, Secondary: rec.SecondaryScore}, runtime)

	if v, ok := tmdb.PickTrailer(videos); ok {
		m.Trailers = []models.Trailer{{Source: v.Key, Type: "Trailer"}}
	}
	if len(images.Logos) > 0 {
		m.Logo = tmdb.ImageURL(tmdb.SizeLogo, images.Logos[0].FilePath)
	}

	if kind == models.MediaSeries {
		eps := append([]models.Video(nil), cinemetaEps...)
		if itemKind == models.MediaSeries {
			if len(eps) == 0 {
				show := det
				if !detOK || len(show.Seasons) == 0 {
					show, _ = b.provider.Details(ctx, models.MediaSeries, item.ID)
				}
				eps = b.episodesFromSeasons(imdbID, show.Seasons)
			}
			b.enrichEpisodes(ctx, item.ID, eps)
		}
		if len(eps) > 0 {
			m.Videos = eps
		}
	}

	b.log.Info("meta.resolved", "imdb_id", imdbID, "title", m.Name, "duration", time.Since(start))
	return m
}

// episodesFromSeasons synthesizes an episode list from season summaries,
// skipping specials.
func (b *Builder) episodesFromSeasons(imdbID string, seasons []tmdb.SeasonSummary) []models.Video {
	var out []models.Video
	for _, s := range seasons {
		if s.SeasonNumber == 0 {
			continue
		}
		released := isoDate(s.AirDate)
		if released == "" {
			released = b.now().UTC().Format(isoLayout)
		}
		for ep := 1; ep <= s.EpisodeCount; ep++ {
			out = append(out, models.Video{
				ID:       fmt.Sprintf("%s:%d:%d", imdbID, s.SeasonNumber, ep),
				Title:    "Episodio " + strconv.Itoa(ep),
				Season:   s.SeasonNumber,
				Episode:  ep,
				Released: released,
			})
		}
	}
	return out
}

// enrichEpisodes fills titles, synopses, stills and air dates from season
// details for the first maxEnrichedSeasons distinct seasons.
func (b *Builder) enrichEpisodes(ctx context.Context, tvID int64, eps []models.Video) {
	if len(eps) == 0 {
		return
	}
	var numbers []int
	seen := make(map[int]bool)
	for _, v := range eps {
		if !seen[v.Season] {
			seen[v.Season] = true
			numbers = append(numbers, v.Season)
		}
	}
	if len(numbers) > maxEnrichedSeasons {
		numbers = numbers[:maxEnrichedSeasons]
	}

	seasons := make([]*tmdb.Season, len(numbers))
	p := pool.New().WithMaxGoroutines(maxEnrichedSeasons)
	for i, n := range numbers {
		p.Go(func() {
			s, err := b.provider.Season(ctx, tvID, n)
			if err != nil {
				b.log.Debug("meta.season_failed", "tmdb_id", tvID, "season", n, "error", err)
				return
			}
			seasons[i] = &s
		})
	}
	p.Wait()

	bySeason := make(map[int]*tmdb.Season, len(seasons))
	for _, s := range seasons {
		if s != nil {
			bySeason[s.SeasonNumber] = s
		}
	}
	for i := range eps {
		s, ok := bySeason[eps[i].Season]
		if !ok {
			continue
		}
		for _, ep := range s.Episodes {
			if ep.EpisodeNumber != eps[i].Episode {
				continue
			}
			if ep.Name != "" {
				eps[i].Title = ep.Name
			}
			if ep.Overview != "" {
				eps[i].Overview = ep.Overview
			}
			if ep.StillPath != "" {
				eps[i].Thumbnail = tmdb.ImageURL(tmdb.SizeStill, ep.StillPath)
			}
			if d := isoDate(ep.AirDate); d != "" {
				eps[i].Released = d
			}
			break
		}
	}
}

const isoLayout = "2006-01-02T15:04:05.000Z"

func isoDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
