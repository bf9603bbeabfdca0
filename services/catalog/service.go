package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

const (
	// PageSize is how many provider results one addon page (skip step) covers.
	PageSize       = 20
	DefaultPageTTL = 15 * time.Minute
)

// MetaBuilder turns admitted ids into display items.
type MetaBuilder interface {
	Build(ctx context.Context, ids []string, kind models.MediaKind) []models.DisplayMeta
}

// Service answers addon catalog requests and memoizes composed pages.
type Service struct {
	resolver  *Resolver
	builder   MetaBuilder
	cache     *cache.Cache
	namespace string
	ttl       time.Duration
	log       *slog.Logger
}

func NewService(resolver *Resolver, builder MetaBuilder, c *cache.Cache, namespace string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &Service{
		resolver:  resolver,
		builder:   builder,
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		log:       slog.Default().With("component", "catalog"),
	}
}

// Catalog resolves one addon catalog request. Failures yield an empty page.
func (s *Service) Catalog(ctx context.Context, req models.CatalogRequest) []models.DisplayMeta {
	key := s.cacheKey(req)
	if metas, ok := cache.Lookup[[]models.DisplayMeta](s.cache, key); ok {
		return metas
	}

	start := time.Now()
	endpoint, kind, ok := Endpoint(req, PageNumber(req.Skip))
	if !ok {
		s.log.Debug("catalog.no_endpoint", "catalog", req.CatalogID, "type", req.Kind)
		return []models.DisplayMeta{}
	}

	result := s.resolver.Resolve(ctx, endpoint, kind)
	if len(result.IDs) == 0 {
		return []models.DisplayMeta{}
	}

	metas := s.builder.Build(ctx, result.IDs, req.Kind)
	if len(metas) == 0 {
		s.log.Debug("catalog.build_empty", "catalog", req.CatalogID, "type", req.Kind, "ids", len(result.IDs))
		return []models.DisplayMeta{}
	}
	if s.cache != nil && ctx.Err() == nil {
		s.cache.Set(key, metas, s.ttl)
	}
	s.log.Info("catalog.page",
		"catalog", req.CatalogID,
		"type", req.Kind,
		"skip", req.Skip,
		"search", req.Search != "",
		"genre", req.Genre,
		"items", len(metas),
		"has_more", result.HasMore,
		"duration", time.Since(start),
	)
	return metas
}

func (s *Service) cacheKey(req models.CatalogRequest) string {
	key := fmt.Sprintf("cat:%s:%s:%d:%s:%s", req.Kind, req.CatalogID, req.Skip, req.Search, req.Genre)
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// PageNumber converts an addon skip offset into a 1-based provider page.
func PageNumber(skip int) int {
	if skip < 0 {
		skip = 0
	}
	return skip/PageSize + 1
}

// Endpoint picks the provider query for a request: search when a query is
// present, a kid-restricted discovery when a genre filter is set, otherwise
// the catalog's own discovery query.
func Endpoint(req models.CatalogRequest, page int) (string, models.MediaKind, bool) {
	switch {
	case req.Search != "":
		return tmdb.SearchEndpoint(req.Kind, req.Search, page), req.Kind, true
	case req.Genre != "":
		return genreEndpoint(req.Kind, req.Genre, page), req.Kind, true
	}

	def, ok := Lookup(req.CatalogID)
	if !ok || def.Query == "" {
		return "", req.Kind, false
	}
	return def.Query + "&page=" + strconv.Itoa(page), def.Kind, true
}

func genreEndpoint(kind models.MediaKind, genre string, page int) string {
	endpoint := "discover/" + kind.TMDBPath() + "?sort_by=popularity.desc&page=" + strconv.Itoa(page)
	gid, known := GenreID(kind, genre)
	if kind == models.MediaSeries {
		if known {
			return endpoint + "&with_genres=" + strconv.Itoa(gid) + "," + strconv.Itoa(kids.GenreKids)
		}
		return endpoint + "&with_genres=" + strconv.Itoa(kids.GenreKids)
	}
	endpoint += certifiedPG
	if known {
		endpoint += "&with_genres=" + strconv.Itoa(gid)
	}
	return endpoint
}
