// Package addon binds the provider clients, classifier and builders to one
// user's API keys.
package addon

import (
	"context"
	"time"

	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/catalog"
	"github.com/yakychan/KidsFlix/services/cinemeta"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/meta"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

// Options configures an Engine. Clients are templates: sessions derive
// key-bound copies from them.
type Options struct {
	Cache            *cache.Cache
	TMDB             *tmdb.Client
	OMDb             *omdb.Client
	Cinemeta         *cinemeta.Client
	Policy           kids.Policy
	CertificationTTL time.Duration
	CatalogTTL       time.Duration
	Now              func() time.Time
}

// Engine creates per-request sessions.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	if opts.TMDB == nil {
		opts.TMDB = tmdb.NewClient(tmdb.Options{Cache: opts.Cache})
	}
	if opts.OMDb == nil {
		opts.OMDb = omdb.NewClient(omdb.Options{Cache: opts.Cache})
	}
	if opts.Cinemeta == nil {
		opts.Cinemeta = cinemeta.NewClient(cinemeta.Options{Cache: opts.Cache})
	}
	return &Engine{opts: opts}
}

// Cache exposes the shared cache for status reporting.
func (e *Engine) Cache() *cache.Cache {
	return e.opts.Cache
}

// Session answers addon requests on behalf of one set of user keys. Cache
// entries written by a session are namespaced by its catalog provider key;
// composed pages also by the ratings key.
type Session struct {
	tmdb       *tmdb.Client
	omdb       *omdb.Client
	certs      *kids.CertificationResolver
	classifier *kids.Classifier
	builder    *meta.Builder
	catalogs   *catalog.Service
}

// pageNamespace scopes composed pages by both keys: the ratings key changes
// admission and badges.
func pageNamespace(catalogNS, ratingsNS string) string {
	if ratingsNS == "" {
		return catalogNS
	}
	return catalogNS + "+" + ratingsNS
}

// Session binds keys. posterBase is the public base URL used for decorated
// poster links and may be empty.
func (e *Engine) Session(keys models.UserKeys, posterBase string) *Session {
	tc := e.opts.TMDB.WithAPIKey(keys.TMDBKey)
	oc := e.opts.OMDb.WithAPIKey(keys.OMDbKey)
	ns := tc.Namespace()

	certs := kids.NewCertificationResolver(tc, e.opts.Cache, ns, e.opts.CertificationTTL)
	classifier := kids.NewClassifier(certs, oc, e.opts.Policy)

	builder := meta.NewBuilder(meta.Options{
		Provider:   tc,
		Classifier: classifier,
		Ratings:    oc,
		Episodes:   e.opts.Cinemeta,
		PosterBase: posterBase,
		Now:        e.opts.Now,
	})
	resolver := catalog.NewResolver(tc, classifier)

	return &Session{
		tmdb:       tc,
		omdb:       oc,
		certs:      certs,
		classifier: classifier,
		builder:    builder,
		catalogs:   catalog.NewService(resolver, builder, e.opts.Cache, pageNamespace(ns, oc.Namespace()), e.opts.CatalogTTL),
	}
}

// Catalog returns one page of admitted, display-ready items.
func (s *Session) Catalog(ctx context.Context, req models.CatalogRequest) []models.DisplayMeta {
	return s.catalogs.Catalog(ctx, req)
}

// Meta returns the full record for one id, or nil when it is unknown or not
// admitted.
func (s *Session) Meta(ctx context.Context, kind models.MediaKind, imdbID string) *models.DisplayMeta {
	if !models.IsIMDBID(imdbID) {
		return nil
	}
	return s.builder.Meta(ctx, kind, imdbID)
}
