package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

const (
	validateAttempts = 2
	validateDelay    = 300 * time.Millisecond
)

// ValidateHandler probes user supplied provider keys.
type ValidateHandler struct {
	TMDB  *tmdb.Client
	OMDb  *omdb.Client
	Delay time.Duration
	log   *slog.Logger
}

func NewValidateHandler(tc *tmdb.Client, oc *omdb.Client) *ValidateHandler {
	return &ValidateHandler{
		TMDB:  tc,
		OMDb:  oc,
		Delay: validateDelay,
		log:   slog.Default().With("component", "validate"),
	}
}

type ValidateResponse struct {
	TMDB bool `json:"tmdb"`
	OMDb bool `json:"omdb"`
}

// GetValidateKeys answers /validate-keys?tmdb=&omdb=. Absent keys report false.
func (h *ValidateHandler) GetValidateKeys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tmdbKey := strings.TrimSpace(q.Get("tmdb"))
	omdbKey := strings.TrimSpace(q.Get("omdb"))

	var resp ValidateResponse
	var wg conc.WaitGroup
	if tmdbKey != "" {
		wg.Go(func() {
			resp.TMDB = h.probe(r.Context(), "tmdb", h.TMDB.WithAPIKey(tmdbKey).Validate)
		})
	}
	if omdbKey != "" {
		wg.Go(func() {
			resp.OMDb = h.probe(r.Context(), "omdb", h.OMDb.WithAPIKey(omdbKey).Validate)
		})
	}
	wg.Wait()

	api.WriteJSON(w, http.StatusOK, resp)
}

// probe retries transient failures once. A rejected key is final.
func (h *ValidateHandler) probe(ctx context.Context, provider string, validate func(context.Context) error) bool {
	err := retry.Do(
		func() error { return validate(ctx) },
		retry.Attempts(validateAttempts),
		retry.Delay(h.Delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, tmdb.ErrUnauthorized) && !errors.Is(err, omdb.ErrUnauthorized)
		}),
	)
	if err != nil {
		h.log.Debug("validate.failed", "provider", provider, "error", err)
		return false
	}
	return true
}
