package catalog

import (
	"github.com/yakychan/KidsFlix/models"
)

// Searchable catalog ids. They only produce results for a search or genre filter.
const (
	SearchMoviesID = "kf_movies"
	SearchSeriesID = "kf_series"
)

// certifiedPG restricts movie discovery to US certifications up to PG.
const certifiedPG = "&certification_country=US&certification.lte=PG"

// Definition describes one catalog the addon publishes.
type Definition struct {
	ID   string
	Name string
	Kind models.MediaKind
	// Query is the discovery endpoint without the page parameter. Empty for
	// searchable catalogs.
	Query string
}

// Searchable reports whether the catalog accepts search and genre extras.
func (s Definition) Searchable() bool {
	return s.ID == SearchMoviesID || s.ID == SearchSeriesID
}

// GenreOption is a genre filter offered by the searchable catalogs.
type GenreOption struct {
	Name    string
	GenreID int
}

var movieGenres = []GenreOption{
	{"Animación", 16},
	{"Familia", 10751},
	{"Aventura", 12},
	{"Comedia", 35},
	{"Fantasía", 14},
	{"Musical", 10402},
}

var seriesGenres = []GenreOption{
	{"Animación", 16},
	{"Familia", 10751},
	{"Comedia", 35},
	{"Aventura", 10759},
	{"Fantasía", 10765},
}

// GenreOptions returns the genre filters for kind in display order.
func GenreOptions(kind models.MediaKind) []GenreOption {
	if kind == models.MediaSeries {
		return seriesGenres
	}
	return movieGenres
}

// GenreID maps a genre filter name to its TMDB id.
func GenreID(kind models.MediaKind, name string) (int, bool) {
	for _, g := range GenreOptions(kind) {
		if g.Name == name {
			return g.GenreID, true
		}
	}
	return 0, false
}

var catalogs = []Definition{
	{ID: "kf_trending", Name: "🌟 Populares para niños", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16|10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_popular_movies", Name: "⭐ Películas familiares", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_top_movies", Name: "🏆 Mejor valoradas", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=10751&sort_by=vote_average.desc&vote_count.gte=500" + certifiedPG},
	{ID: "kf_new_releases", Name: "🆕 Nuevos estrenos", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16|10751&sort_by=release_date.desc&vote_count.gte=10" + certifiedPG},
	{ID: "kf_animation", Name: "🎨 Animación", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_adventure", Name: "🗺️ Aventuras", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=12,10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_comedy", Name: "😂 Comedias familiares", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=35,10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_fantasy", Name: "✨ Fantasía", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=14,10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_musical", Name: "🎵 Musicales", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=10402,10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_disney", Name: "🏰 Disney", Kind: models.MediaMovie,
		Query: "discover/movie?with_companies=2&with_genres=16|10751&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_pixar", Name: "🎯 Pixar", Kind: models.MediaMovie,
		Query: "discover/movie?with_companies=3&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_dreamworks", Name: "🌙 DreamWorks", Kind: models.MediaMovie,
		Query: "discover/movie?with_companies=521&with_genres=16&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_illumination", Name: "💡 Illumination", Kind: models.MediaMovie,
		Query: "discover/movie?with_companies=6704&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_ghibli", Name: "🍃 Studio Ghibli", Kind: models.MediaMovie,
		Query: "discover/movie?with_companies=10342&sort_by=popularity.desc"},
	{ID: "kf_anime_movies", Name: "🇯🇵 Anime infantil", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16&with_original_language=ja&sort_by=popularity.desc" + certifiedPG},
	{ID: "kf_spanish_kids", Name: "🇪🇸 Películas en español", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16|10751&with_original_language=es&sort_by=popularity.desc"},
	{ID: "kf_classics", Name: "📼 Clásicos infantiles", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=16|10751&sort_by=vote_average.desc&vote_count.gte=200&primary_release_date.lte=2005-12-31" + certifiedPG},
	{ID: "kf_docs_kids", Name: "🔬 Documentales para niños", Kind: models.MediaMovie,
		Query: "discover/movie?with_genres=99,10751&sort_by=popularity.desc" + certifiedPG},
	{ID: SearchMoviesID, Name: "🎬 Buscar películas", Kind: models.MediaMovie},

	{ID: "kf_trending_series", Name: "🌟 Series populares", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762&sort_by=popularity.desc"},
	{ID: "kf_popular_series", Name: "⭐ Series para niños", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762|10751&sort_by=popularity.desc"},
	{ID: "kf_top_series", Name: "🏆 Mejor valoradas", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762&sort_by=vote_average.desc&vote_count.gte=100"},
	{ID: "kf_new_series", Name: "🆕 Nuevas series", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762|10751|16&sort_by=first_air_date.desc&vote_count.gte=5"},
	{ID: "kf_animated_series", Name: "🎨 Series animadas", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=16,10762&sort_by=popularity.desc"},
	{ID: "kf_family_series", Name: "👨‍👩‍👧‍👦 Series familiares", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10751&sort_by=popularity.desc"},
	{ID: "kf_adventure_series", Name: "🗺️ Aventuras", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10759,10762&sort_by=popularity.desc"},
	{ID: "kf_comedy_series", Name: "😂 Comedias", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=35,10762&sort_by=popularity.desc"},
	{ID: "kf_scifi_series", Name: "🚀 Ciencia ficción", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10765,10762&sort_by=popularity.desc"},
	{ID: "kf_anime_series", Name: "🇯🇵 Anime infantil", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=16&with_original_language=ja&sort_by=popularity.desc"},
	{ID: "kf_spanish_series", Name: "🇪🇸 Series en español", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762|10751|16&with_original_language=es&sort_by=popularity.desc"},
	{ID: "kf_educational", Name: "📚 Educativas", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762&with_keywords=195051|6075|210342&sort_by=popularity.desc"},
	{ID: "kf_preschool", Name: "🧒 Preescolar", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762&sort_by=popularity.desc&first_air_date.gte=2015-01-01"},
	{ID: "kf_classic_series", Name: "📼 Clásicos", Kind: models.MediaSeries,
		Query: "discover/tv?with_genres=10762|16&sort_by=vote_average.desc&vote_count.gte=50&first_air_date.lte=2010-12-31"},
	{ID: SearchSeriesID, Name: "🔍 Buscar series", Kind: models.MediaSeries},
}

var catalogsByID = func() map[string]Definition {
	m := make(map[string]Definition, len(catalogs))
	for _, c := range catalogs {
		m[c.ID] = c
	}
	return m
}()

// All returns the published catalogs in manifest order.
func All() []Definition {
	out := make([]Definition, len(catalogs))
	copy(out, catalogs)
	return out
}

// Lookup finds a catalog by id.
func Lookup(id string) (Definition, bool) {
	s, ok := catalogsByID[id]
	return s, ok
}
