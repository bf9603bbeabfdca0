package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/addon"
)

const (
	catalogCacheControl = "public, max-age=1800"
	metaCacheControl    = "public, max-age=86400"
)

// AddonHandler serves the key-scoped addon resources.
type AddonHandler struct {
	Engine *addon.Engine
	// PublicBaseURL is used for poster links. When empty it is derived from
	// the request host.
	PublicBaseURL string
	log           *slog.Logger
}

func NewAddonHandler(engine *addon.Engine, publicBaseURL string) *AddonHandler {
	return &AddonHandler{
		Engine:        engine,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           slog.Default().With("component", "addon_handler"),
	}
}

// Register mounts the addon routes on r behind the user config middleware.
func (h *AddonHandler) Register(r *mux.Router) {
	sub := r.PathPrefix("/{config}").Subrouter()
	sub.Use(api.UserConfigMiddleware())
	sub.HandleFunc("/manifest.json", h.GetManifest).Methods(http.MethodGet, http.MethodOptions)
	sub.HandleFunc("/catalog/{type}/{id}/{extra}.json", h.GetCatalog).Methods(http.MethodGet, http.MethodOptions)
	sub.HandleFunc("/catalog/{type}/{id}.json", h.GetCatalog).Methods(http.MethodGet, http.MethodOptions)
	sub.HandleFunc("/meta/{type}/{id}.json", h.GetMeta).Methods(http.MethodGet, http.MethodOptions)
	sub.HandleFunc("/test-filter/{imdbId}", h.GetFilterReport).Methods(http.MethodGet, http.MethodOptions)
}

func (h *AddonHandler) session(r *http.Request) (*addon.Session, bool) {
	keys, ok := api.GetUserKeys(r)
	if !ok {
		return nil, false
	}
	return h.Engine.Session(keys, h.baseURL(r)), true
}

func (h *AddonHandler) baseURL(r *http.Request) string {
	if h.PublicBaseURL != "" {
		return h.PublicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme, _, _ = strings.Cut(proto, ",")
		scheme = strings.TrimSpace(scheme)
	}
	return scheme + "://" + r.Host
}

func (h *AddonHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, BuildManifest())
}

type catalogResponse struct {
	Metas []models.DisplayMeta `json:"metas"`
}

// GetCatalog answers both the plain and the extras form of the catalog route.
func (h *AddonHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, api.InvalidConfigMessage)
		return
	}
	vars := mux.Vars(r)
	req := ParseCatalogRequest(vars["type"], vars["id"], vars["extra"])

	metas := s.Catalog(r.Context(), req)
	if metas == nil {
		metas = []models.DisplayMeta{}
	}
	if len(metas) > 0 {
		w.Header().Set("Cache-Control", catalogCacheControl)
	}
	api.WriteJSON(w, http.StatusOK, catalogResponse{Metas: metas})
}

// ParseCatalogRequest builds a request from the route variables. extra is the
// still-escaped "skip=20&search=..." segment.
func ParseCatalogRequest(kind, id, extra string) models.CatalogRequest {
	req := models.CatalogRequest{
		CatalogID: unescape(id),
		Kind:      models.ParseMediaKind(unescape(kind)),
	}
	if extra == "" {
		return req
	}
	// Values are decoded by ParseQuery so an escaped "&" stays inside its value.
	if !strings.Contains(extra, "=") {
		extra = unescape(extra)
	}
	values, err := url.ParseQuery(extra)
	if err != nil {
		return req
	}
	if skip, err := strconv.Atoi(values.Get("skip")); err == nil && skip > 0 {
		req.Skip = skip
	}
	req.Search = strings.TrimSpace(values.Get("search"))
	req.Genre = strings.TrimSpace(values.Get("genre"))
	return req
}

// unescape decodes one level of path escaping.
func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

type metaResponse struct {
	Meta *models.DisplayMeta `json:"meta"`
}

func (h *AddonHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, api.InvalidConfigMessage)
		return
	}
	vars := mux.Vars(r)
	kind := models.ParseMediaKind(unescape(vars["type"]))
	id := unescape(vars["id"])

	m := s.Meta(r.Context(), kind, id)
	if m != nil {
		w.Header().Set("Cache-Control", metaCacheControl)
	}
	api.WriteJSON(w, http.StatusOK, metaResponse{Meta: m})
}

func (h *AddonHandler) GetFilterReport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, api.InvalidConfigMessage)
		return
	}
	imdbID := unescape(mux.Vars(r)["imdbId"])

	report, err := s.Report(r.Context(), imdbID)
	switch {
	case errors.Is(err, addon.ErrNoMatch):
		api.WriteError(w, http.StatusOK, "Sin resultados")
		return
	case err != nil:
		h.log.Warn("addon.report_failed", "imdb_id", imdbID, "error", err)
		api.WriteError(w, http.StatusOK, "No encontrado en TMDB")
		return
	}
	api.WriteJSON(w, http.StatusOK, report)
}
