package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/addon"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/services/tmdb"
	"github.com/yakychan/KidsFlix/utils"
)

var upstream = map[string]string{
	"/3/discover/movie": `{"page":1,"total_pages":1,"results":[
		{"id":1,"title":"Good","genre_ids":[16],"overview":"Friends on a trip.","poster_path":"/good.jpg","release_date":"2020-01-01"},
		{"id":2,"title":"Scary","genre_ids":[27],"overview":"Night."}
	]}`,
	"/3/movie/1/external_ids":  `{"imdb_id":"tt0000001"}`,
	"/3/movie/1/release_dates": `{"results":[{"iso_3166_1":"US","release_dates":[{"certification":"G"}]}]}`,
	"/3/find/tt0000001":        `{"movie_results":[{"id":1,"title":"Good","genre_ids":[16],"overview":"Friends on a trip.","poster_path":"/good.jpg","release_date":"2020-01-01"}],"tv_results":[]}`,
	"/3/find/tt0000009":        `{"movie_results":[],"tv_results":[]}`,
}

type fakeRenderer struct {
	out     []byte
	ok      bool
	ratings poster.Ratings
	runtime string
}

func (f *fakeRenderer) Allowed(src string) bool {
	return strings.HasPrefix(src, "https://image.tmdb.org/")
}

func (f *fakeRenderer) Decorate(ctx context.Context, src string, ratings poster.Ratings, runtime string) ([]byte, bool) {
	f.ratings, f.runtime = ratings, runtime
	return f.out, f.ok
}

type fixture struct {
	router   http.Handler
	renderer *fakeRenderer
	limiter  *api.IPRateLimiter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/550":
			if r.URL.Query().Get("api_key") != "good" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":550}`))
			return
		case "/omdb/":
			if r.URL.Query().Get("apikey") != "good" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
				return
			}
			_, _ = w.Write([]byte(`{"Response":"True","Title":"Titanic"}`))
			return
		}
		body, ok := upstream[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := cache.New(cache.Options{})
	t.Cleanup(c.Close)
	tc := tmdb.NewClient(tmdb.Options{BaseURL: srv.URL + "/3", Cache: c})
	oc := omdb.NewClient(omdb.Options{BaseURL: srv.URL + "/omdb/", Cache: c})

	limiter := api.NewIPRateLimiter(rate.Every(time.Minute), 3)
	t.Cleanup(limiter.Close)

	f := &fixture{renderer: &fakeRenderer{}, limiter: limiter}
	f.router = NewRouter(RouterOptions{
		Engine:        addon.NewEngine(addon.Options{Cache: c, TMDB: tc, OMDb: oc}),
		TMDB:          tc,
		OMDb:          oc,
		Renderer:      f.renderer,
		PosterLimiter: limiter,
		PublicBaseURL: "https://kf.example",
		Started:       time.Now().Add(-3 * time.Minute),
	})
	return f
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func configSegment(t *testing.T, keys models.UserKeys) string {
	t.Helper()
	seg, err := utils.EncodeUserConfig(keys)
	require.NoError(t, err)
	return seg
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestManifest(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/"+configSegment(t, models.UserKeys{TMDBKey: "k"})+"/manifest.json")
	require.Equal(t, http.StatusOK, rec.Code)

	m := decode[Manifest](t, rec)
	assert.Equal(t, ManifestID, m.ID)
	assert.Equal(t, "2.0.0", m.Version)
	assert.Equal(t, []string{"tt"}, m.IDPrefixes)
	assert.False(t, m.BehaviorHints.Adult)
	assert.Len(t, m.Catalogs, 34)

	var searchable int
	for _, c := range m.Catalogs {
		if len(c.Extra) == 0 {
			continue
		}
		searchable++
		require.Len(t, c.Extra, 3, c.ID)
		assert.Equal(t, "genre", c.Extra[2].Name)
		assert.Contains(t, c.Extra[2].Options, "Animación")
	}
	assert.Equal(t, 2, searchable)
}

func TestInvalidConfig(t *testing.T) {
	f := newFixture(t)
	for _, target := range []string{
		"/not-a-config/manifest.json",
		"/e30/catalog/movie/kf_animation.json",
		"/e30/meta/movie/tt0000001.json",
	} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, api.InvalidConfigMessage, decode[map[string]string](t, rec)["error"], target)
	}
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/"+configSegment(t, models.UserKeys{TMDBKey: "k"})+"/catalog/movie/kf_animation.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=1800", rec.Header().Get("Cache-Control"))

	body := decode[catalogResponse](t, rec)
	require.Len(t, body.Metas, 1)
	assert.Equal(t, "tt0000001", body.Metas[0].ID)
	assert.True(t, strings.HasPrefix(body.Metas[0].Poster, "https://kf.example/poster/tt0000001.jpg?"))
}

func TestCatalogUnknownIsEmpty(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/"+configSegment(t, models.UserKeys{TMDBKey: "k"})+"/catalog/movie/nope/skip=20.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"metas":[]}`, rec.Body.String())
}

func TestParseCatalogRequest(t *testing.T) {
	tests := []struct {
		name  string
		kind  string
		id    string
		extra string
		want  models.CatalogRequest
	}{
		{"plain", "movie", "kf_ghibli", "", models.CatalogRequest{CatalogID: "kf_ghibli", Kind: models.MediaMovie}},
		{"skip", "series", "kf_preschool", "skip=40", models.CatalogRequest{CatalogID: "kf_preschool", Kind: models.MediaSeries, Skip: 40}},
		{"search", "movie", "kf_movies", "search=toy%20story%20%26%20more", models.CatalogRequest{CatalogID: "kf_movies", Kind: models.MediaMovie, Search: "toy story & more"}},
		{"escaped separators", "series", "kf_series", "genre%3DAnimaci%C3%B3n%26skip%3D20", models.CatalogRequest{CatalogID: "kf_series", Kind: models.MediaSeries, Genre: "Animación", Skip: 20}},
		{"bad skip", "movie", "kf_movies", "skip=abc&genre=Familia", models.CatalogRequest{CatalogID: "kf_movies", Kind: models.MediaMovie, Genre: "Familia"}},
		{"negative skip", "movie", "kf_movies", "skip=-5", models.CatalogRequest{CatalogID: "kf_movies", Kind: models.MediaMovie}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCatalogRequest(tt.kind, tt.id, tt.extra))
		})
	}
}

func TestMetaUnknown(t *testing.T) {
	f := newFixture(t)
	seg := configSegment(t, models.UserKeys{TMDBKey: "k"})
	for _, id := range []string{"tt0000009", "nm123"} {
		rec := f.get(t, "/"+seg+"/meta/movie/"+id+".json")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Cache-Control"))
		assert.JSONEq(t, `{"meta":null}`, rec.Body.String())
	}
}

func TestFilterReport(t *testing.T) {
	f := newFixture(t)
	seg := configSegment(t, models.UserKeys{TMDBKey: "k"})

	rec := f.get(t, "/"+seg+"/test-filter/tt0000001")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[addon.FilterReport](t, rec)
	assert.Equal(t, "Good", report.Title)
	assert.Equal(t, "✅ SEGURO", report.Checks.Result)

	rec = f.get(t, "/"+seg+"/test-filter/tt0000009")
	assert.Equal(t, "Sin resultados", decode[map[string]string](t, rec)["error"])
}

func TestPoster(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/poster/tt1.jpg")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PlaceholderPosterURL, rec.Header().Get("Location"))

	rec = f.get(t, "/poster/tt1.jpg?url=https%3A%2F%2Fevil.example%2Fa.jpg")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PlaceholderPosterURL, rec.Header().Get("Location"))

	src := "https://image.tmdb.org/t/p/w500/a.jpg"
	rec = f.get(t, "/poster/tt1.jpg?url="+src+"&imdb=7.5")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, src, rec.Header().Get("Location"))
}

func TestPosterDropsMalformedBadgeValues(t *testing.T) {
	f := newFixture(t)
	f.renderer.out, f.renderer.ok = []byte{0xff, 0xd8, 0xff}, true

	huge := strings.Repeat("9", 100000)
	rec := f.get(t, "/poster/tt1.jpg?url=https://image.tmdb.org/t/p/w500/a.jpg&imdb="+huge+"&rt=74&runtime="+huge)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, poster.Ratings{Secondary: "74"}, f.renderer.ratings)
	assert.Empty(t, f.renderer.runtime)

	rec = f.get(t, "/poster/tt1.jpg?url=https://image.tmdb.org/t/p/w500/a.jpg&imdb=7.5&rt=abc&runtime=1h%2030m")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, poster.Ratings{Primary: "7.5"}, f.renderer.ratings)
	assert.Equal(t, "1h 30m", f.renderer.runtime)
}

func TestPosterSuccessAndRateLimit(t *testing.T) {
	f := newFixture(t)
	f.renderer.out, f.renderer.ok = []byte{0xff, 0xd8, 0xff}, true

	rec := f.get(t, "/poster/tt1.jpg?url=https://image.tmdb.org/t/p/w500/a.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, s-maxage=604800, immutable", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, rec.Body.Bytes())

	// Burst is 3 per IP; the first request used one.
	f.get(t, "/poster/tt1.jpg")
	f.get(t, "/poster/tt1.jpg")
	rec = f.get(t, "/poster/tt1.jpg")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other routes are not limited.
	assert.Equal(t, http.StatusOK, f.get(t, "/health").Code)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	s := decode[StatusResponse](t, rec)
	assert.Equal(t, "KidsFlix", s.Name)
	assert.Equal(t, "per-user-config", s.Mode)
	assert.Equal(t, "3 minutes", s.Uptime)
	assert.Equal(t, 5, s.Filtering.Levels)
	assert.Equal(t, 37, s.Filtering.BlockedKeywords)
	assert.Equal(t, 10, s.Filtering.CertificationCountries)
	assert.NotEmpty(t, s.HeapInUse)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestValidateKeys(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/validate-keys?tmdb=good&omdb=good")
	assert.Equal(t, ValidateResponse{TMDB: true, OMDb: true}, decode[ValidateResponse](t, rec))

	rec = f.get(t, "/validate-keys?tmdb=bad&omdb=bad")
	assert.Equal(t, ValidateResponse{}, decode[ValidateResponse](t, rec))

	rec = f.get(t, "/validate-keys")
	assert.Equal(t, ValidateResponse{}, decode[ValidateResponse](t, rec))
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/version")
	assert.Equal(t, Version, decode[VersionResponse](t, rec).Version)
}
