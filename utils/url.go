package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedURL is returned for anything but an absolute http(s) URL.
var ErrUnsupportedURL = errors.New("unsupported url")

// NormalizeImageURL validates an image source URL and escapes raw spaces,
// which some clients leave in query-supplied URLs.
func NormalizeImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return "", ErrUnsupportedURL
	}

	out := scheme + "://" + u.Host + u.EscapedPath()
	if u.RawQuery != "" {
		out += "?" + strings.ReplaceAll(u.RawQuery, " ", "%20")
	}
	return out, nil
}
