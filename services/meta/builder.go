// Package meta builds display metadata for admitted titles.
package meta

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

// BatchSize bounds how many ids are resolved concurrently.
const BatchSize = 5

// Provider is the slice of the catalog provider used to build metadata.
type Provider interface {
	Find(ctx context.Context, imdbID string) (tmdb.FindResult, error)
	Details(ctx context.Context, kind models.MediaKind, id int64) (tmdb.Details, error)
	DetailsIn(ctx context.Context, kind models.MediaKind, id int64, language string) (tmdb.Details, error)
	Videos(ctx context.Context, kind models.MediaKind, id int64) ([]tmdb.Video, error)
	Images(ctx context.Context, kind models.MediaKind, id int64) (tmdb.Images, error)
	Season(ctx context.Context, tvID int64, number int) (tmdb.Season, error)
}

// Classifier re-checks a title before it is shown.
type Classifier interface {
	Classify(ctx context.Context, item models.CatalogItem, kind models.MediaKind, imdbID string) kids.Decision
}

// EpisodeSource lists the episodes of a series by canonical id.
type EpisodeSource interface {
	SeriesVideos(ctx context.Context, imdbID string) ([]models.Video, error)
}

type Options struct {
	Provider   Provider
	Classifier Classifier
	Ratings    kids.RatingsSource
	Episodes   EpisodeSource
	// PosterBase is the public base URL of this service. When empty, posters
	// point straight at the provider CDN.
	PosterBase string
	Now        func() time.Time
}

// Builder turns canonical ids into display metadata.
type Builder struct {
	provider   Provider
	classifier Classifier
	ratings    kids.RatingsSource
	episodes   EpisodeSource
	posterBase string
	now        func() time.Time
	log        *slog.Logger
}

func NewBuilder(opts Options) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{
		provider:   opts.Provider,
		classifier: opts.Classifier,
		ratings:    opts.Ratings,
		episodes:   opts.Episodes,
		posterBase: opts.PosterBase,
		now:        opts.Now,
		log:        slog.Default().With("component", "meta"),
	}
}

// Build resolves ids in batches of BatchSize. Ids that cannot be resolved or
// fail re-classification are dropped; the rest keep their relative order.
func (b *Builder) Build(ctx context.Context, ids []string, kind models.MediaKind) []models.DisplayMeta {
	out := make([]models.DisplayMeta, 0, len(ids))
	for start := 0; start < len(ids); start += BatchSize {
		if ctx.Err() != nil {
			break
		}
		end := min(start+BatchSize, len(ids))
		batch := ids[start:end]

		results := iter.Mapper[string, *models.DisplayMeta]{MaxGoroutines: BatchSize}.Map(batch, func(id *string) *models.DisplayMeta {
			return b.buildOne(ctx, *id, kind)
		})
		for _, m := range results {
			if m != nil {
				out = append(out, *m)
			}
		}
	}
	return out
}

func (b *Builder) buildOne(ctx context.Context, imdbID string, kind models.MediaKind) *models.DisplayMeta {
	item, itemKind, ok := b.lookup(ctx, imdbID, kind)
	if !ok {
		return nil
	}
	if d := b.classifier.Classify(ctx, item, itemKind, imdbID); !d.Admit {
		return nil
	}

	rec := b.ratingsFor(ctx, imdbID)
	ratings := poster.Ratings{Primary: rec.PrimaryRating, Secondary: rec.SecondaryScore}
	if ratings.Primary == "" {
		ratings.Primary = item.FormattedVote()
	}

	return &models.DisplayMeta{
		ID:          imdbID,
		Type:        kind,
		Name:        item.DisplayTitle(),
		Poster:      poster.BadgeURL(b.posterBase, imdbID, tmdb.ImageURL(tmdb.SizePoster, item.PosterPath), ratings, ""),
		Background:  tmdb.ImageURL(tmdb.SizeBackdrop, item.BackdropPath),
		Description: item.Overview,
		ReleaseInfo: item.Year(),
		IMDBRating:  ratings.Primary,
		Genres:      []string{},
	}
}

// lookup finds the provider record for imdbID, preferring kind.
func (b *Builder) lookup(ctx context.Context, imdbID string, kind models.MediaKind) (models.CatalogItem, models.MediaKind, bool) {
	found, err := b.provider.Find(ctx, imdbID)
	if err != nil {
		b.log.Debug("meta.find_failed", "imdb_id", imdbID, "error", err)
		return models.CatalogItem{}, kind, false
	}
	return found.Pick(kind)
}

func (b *Builder) ratingsFor(ctx context.Context, imdbID string) models.RatingsRecord {
	if b.ratings == nil || !b.ratings.Configured() {
		return models.RatingsRecord{}
	}
	rec, err := b.ratings.Ratings(ctx, imdbID)
	if err != nil {
		b.log.Debug("meta.ratings_failed", "imdb_id", imdbID, "error", err)
		return models.RatingsRecord{}
	}
	return rec
}
