// Package auth carries caller-supplied credentials through a request context.
// The addon has no accounts; a caller is identified only by the provider keys
// embedded in its URL.
package auth

import (
	"context"
	"net/http"

	"github.com/yakychan/KidsFlix/models"
)

// ContextKey is the type used for context keys
type ContextKey string

const (
	// ContextKeyUserKeys holds the decoded models.UserKeys
	ContextKeyUserKeys ContextKey = "userKeys"
	// ContextKeyRequestID holds the request id assigned by the access log
	ContextKeyRequestID ContextKey = "requestID"
)

// WithUserKeys returns a copy of ctx carrying keys.
func WithUserKeys(ctx context.Context, keys models.UserKeys) context.Context {
	return context.WithValue(ctx, ContextKeyUserKeys, keys)
}

// GetUserKeys retrieves the caller's provider keys from the request context.
func GetUserKeys(r *http.Request) (models.UserKeys, bool) {
	keys, ok := r.Context().Value(ContextKeyUserKeys).(models.UserKeys)
	return keys, ok
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// GetRequestID returns the request id, or "" outside the access log middleware.
func GetRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}
