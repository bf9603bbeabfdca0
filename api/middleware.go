package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yakychan/KidsFlix/internal/auth"
	"github.com/yakychan/KidsFlix/utils"
)

// InvalidConfigMessage is returned when the config path segment is unusable.
const InvalidConfigMessage = "Configuración inválida. Visita /configure para generar tu URL."

// Re-export from auth package so handlers only import api.
var (
	GetUserKeys  = auth.GetUserKeys
	GetRequestID = auth.GetRequestID
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("api.write_failed", "error", err)
	}
}

// WriteError writes {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLogMiddleware assigns a request id (reusing a well-formed inbound
// X-Request-ID), echoes it on the response and logs one line per request.
// Config path segments carry API keys and are redacted from the log.
func AccessLogMiddleware() mux.MiddlewareFunc {
	log := slog.Default().With("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get("X-Request-ID")
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(auth.WithRequestID(r.Context(), id)))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			log.Log(r.Context(), level, "http.request",
				"request_id", id,
				"method", r.Method,
				"path", RedactPath(r.URL.EscapedPath()),
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(start).Round(time.Millisecond),
				"ip", ClientIP(r),
			)
		})
	}
}

// RedactPath masks the leading config segment of addon routes.
func RedactPath(p string) string {
	parts := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 2)
	if len(parts) < 2 {
		return p
	}
	switch {
	case parts[1] == "manifest.json",
		strings.HasPrefix(parts[1], "catalog/"),
		strings.HasPrefix(parts[1], "meta/"),
		strings.HasPrefix(parts[1], "test-filter/"):
		return "/{config}/" + parts[1]
	}
	return p
}

// UserConfigMiddleware decodes the {config} route variable into user keys
// and rejects the request with 400 when it is unusable.
func UserConfigMiddleware() mux.MiddlewareFunc {
	log := slog.Default().With("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			segment := mux.Vars(r)["config"]
			if unescaped, err := url.PathUnescape(segment); err == nil {
				segment = unescaped
			}
			keys, err := utils.DecodeUserConfig(segment)
			if err != nil {
				log.Info("http.invalid_config", "request_id", GetRequestID(r), "error", err)
				WriteError(w, http.StatusBadRequest, InvalidConfigMessage)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserKeys(r.Context(), keys)))
		})
	}
}
