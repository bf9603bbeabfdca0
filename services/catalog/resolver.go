// Package catalog turns discovery queries into pages of admitted titles.
package catalog

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

// Provider is the part of the catalog provider the resolver needs.
type Provider interface {
	Listing(ctx context.Context, endpoint string) (tmdb.Page, error)
	IMDBID(ctx context.Context, kind models.MediaKind, id int64) (string, error)
}

// Classifier decides admission for one title.
type Classifier interface {
	Classify(ctx context.Context, item models.CatalogItem, kind models.MediaKind, imdbID string) kids.Decision
}

// Result is one resolved page: admitted canonical ids in provider order.
type Result struct {
	IDs     []string
	HasMore bool
}

// Resolver runs discovery → pre-filter → id resolution → classification.
type Resolver struct {
	provider   Provider
	classifier Classifier
	log        *slog.Logger
}

func NewResolver(provider Provider, classifier Classifier) *Resolver {
	return &Resolver{
		provider:   provider,
		classifier: classifier,
		log:        slog.Default().With("component", "catalog.resolver"),
	}
}

type candidate struct {
	item   models.CatalogItem
	imdbID string
}

// Resolve fetches one discovery page and returns the ids that pass the
// classifier. Any failure fetching the page yields an empty result.
func (r *Resolver) Resolve(ctx context.Context, endpoint string, kind models.MediaKind) Result {
	page, err := r.provider.Listing(ctx, endpoint)
	if err != nil {
		r.log.Warn("catalog.resolver.page_failed", "endpoint", endpoint, "error", err)
		return Result{IDs: []string{}}
	}
	if len(page.Results) == 0 {
		return Result{IDs: []string{}}
	}

	filtered := make([]models.CatalogItem, 0, len(page.Results))
	for _, item := range page.Results {
		if kids.PreFilter(item) {
			filtered = append(filtered, item)
		}
	}

	ids := mapConcurrent(filtered, func(item *models.CatalogItem) string {
		id, err := r.provider.IMDBID(ctx, kind, item.ID)
		if err != nil {
			r.log.Debug("catalog.resolver.external_id_failed", "tmdb_id", item.ID, "error", err)
			return ""
		}
		return id
	})

	candidates := make([]candidate, 0, len(filtered))
	for i, item := range filtered {
		if !models.IsIMDBID(ids[i]) {
			continue
		}
		candidates = append(candidates, candidate{item: item, imdbID: ids[i]})
	}

	admitted := mapConcurrent(candidates, func(c *candidate) bool {
		return r.classifier.Classify(ctx, c.item, kind, c.imdbID).Admit
	})

	out := make([]string, 0, len(candidates))
	for i, c := range candidates {
		if admitted[i] {
			out = append(out, c.imdbID)
		}
	}

	r.log.Debug("catalog.resolver.page",
		"endpoint", endpoint,
		"results", len(page.Results),
		"prefiltered", len(filtered),
		"admitted", len(out),
	)
	return Result{IDs: out, HasMore: page.HasMore()}
}

// mapConcurrent applies fn to every element with one goroutine per element,
// keeping input order in the output.
func mapConcurrent[T, R any](in []T, fn func(*T) R) []R {
	if len(in) == 0 {
		return nil
	}
	return iter.Mapper[T, R]{MaxGoroutines: len(in)}.Map(in, fn)
}
