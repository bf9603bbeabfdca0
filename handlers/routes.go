package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/services/addon"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/tmdb"
	"github.com/yakychan/KidsFlix/utils"
)

// RouterOptions carries everything the HTTP surface depends on.
type RouterOptions struct {
	Engine        *addon.Engine
	TMDB          *tmdb.Client
	OMDb          *omdb.Client
	Renderer      PosterRenderer
	PosterLimiter *api.IPRateLimiter // nil disables poster rate limiting
	PublicBaseURL string
	Started       time.Time
}

// NewRouter builds the full addon router.
func NewRouter(opts RouterOptions) *mux.Router {
	r := utils.NewRouter()
	r.Use(api.AccessLogMiddleware())

	status := NewStatusHandler(opts.Engine.Cache(), opts.Started)
	r.HandleFunc("/status", status.GetStatus).Methods(http.MethodGet)
	r.HandleFunc("/version", NewVersionHandler().GetVersion).Methods(http.MethodGet)
	r.HandleFunc("/validate-keys", NewValidateHandler(opts.TMDB, opts.OMDb).GetValidateKeys).Methods(http.MethodGet)

	var posterMW []mux.MiddlewareFunc
	if opts.PosterLimiter != nil {
		posterMW = append(posterMW, api.RateLimitMiddleware(opts.PosterLimiter))
	}
	NewPosterHandler(opts.Renderer).Register(r, posterMW...)

	NewAddonHandler(opts.Engine, opts.PublicBaseURL).Register(r)
	return r
}
