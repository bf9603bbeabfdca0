package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yakychan/KidsFlix/models"
)

// ErrInvalidUserConfig is returned for a config path segment that does not
// decode to usable keys.
var ErrInvalidUserConfig = errors.New("invalid user config")

// EncodeUserConfig renders keys as the URL-safe path segment used in addon URLs.
func EncodeUserConfig(keys models.UserKeys) (string, error) {
	raw, err := json.Marshal(keys.Normalized())
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeUserConfig parses a config path segment. Both base64 alphabets are
// accepted, with or without padding.
func DecodeUserConfig(segment string) (models.UserKeys, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return models.UserKeys{}, ErrInvalidUserConfig
	}
	segment = strings.NewReplacer("+", "-", "/", "_").Replace(segment)
	segment = strings.TrimRight(segment, "=")

	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return models.UserKeys{}, fmt.Errorf("%w: %v", ErrInvalidUserConfig, err)
	}
	var keys models.UserKeys
	if err := json.Unmarshal(raw, &keys); err != nil {
		return models.UserKeys{}, fmt.Errorf("%w: %v", ErrInvalidUserConfig, err)
	}
	keys = keys.Normalized()
	if err := keys.Validate(); err != nil {
		return models.UserKeys{}, fmt.Errorf("%w: %v", ErrInvalidUserConfig, err)
	}
	return keys, nil
}
