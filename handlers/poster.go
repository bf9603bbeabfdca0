package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/utils"
)

const (
	PlaceholderPosterURL = "https://via.placeholder.com/500x750?text=KidsFlix"
	posterCacheControl   = "public, s-maxage=604800, immutable"
)

// PosterRenderer decorates a source image. *poster.Renderer implements it.
type PosterRenderer interface {
	Allowed(src string) bool
	Decorate(ctx context.Context, src string, ratings poster.Ratings, runtime string) ([]byte, bool)
}

// PosterHandler serves /poster/{id}.jpg. It never fails: any problem turns
// into a redirect to the undecorated source or the placeholder.
type PosterHandler struct {
	Renderer PosterRenderer
}

func NewPosterHandler(renderer PosterRenderer) *PosterHandler {
	return &PosterHandler{Renderer: renderer}
}

// Register mounts the poster route with the given middleware, typically the
// per-IP rate limiter.
func (h *PosterHandler) Register(r *mux.Router, mw ...mux.MiddlewareFunc) {
	sub := r.PathPrefix("/poster").Subrouter()
	sub.Use(mw...)
	sub.HandleFunc("/{id}.jpg", h.GetPoster).Methods(http.MethodGet, http.MethodOptions)
}

func (h *PosterHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, err := utils.NormalizeImageURL(q.Get("url"))
	if err != nil || !h.Renderer.Allowed(src) {
		http.Redirect(w, r, PlaceholderPosterURL, http.StatusFound)
		return
	}

	ratings, runtime := poster.Clean(poster.Ratings{Primary: q.Get("imdb"), Secondary: q.Get("rt")}, q.Get("runtime"))
	img, ok := h.Renderer.Decorate(r.Context(), src, ratings, runtime)
	if !ok {
		http.Redirect(w, r, src, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", posterCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
