package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UserKeys are the provider API keys a user embeds in their addon URL.
type UserKeys struct {
	TMDBKey string `json:"tmdbKey"`
	OMDbKey string `json:"omdbKey,omitempty"` // optional, enables the secondary ratings signal
}

// Normalized trims surrounding whitespace from both keys.
func (k UserKeys) Normalized() UserKeys {
	return UserKeys{TMDBKey: strings.TrimSpace(k.TMDBKey), OMDbKey: strings.TrimSpace(k.OMDbKey)}
}

// Validate requires the catalog provider key.
func (k UserKeys) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.TMDBKey, validation.Required, validation.Length(1, 128)),
		validation.Field(&k.OMDbKey, validation.Length(0, 128)),
	)
}
