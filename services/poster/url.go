package poster

import (
	"net/url"
	"strings"
)

// BadgeURL points a client at the decorating endpoint for src. It returns src
// unchanged when no public base URL is known or src is empty.
func BadgeURL(base, imdbID, src string, ratings Ratings, runtime string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" || src == "" || imdbID == "" {
		return src
	}
	q := url.Values{}
	q.Set("url", src)
	if present(ratings.Primary) {
		q.Set("imdb", ratings.Primary)
	}
	if present(ratings.Secondary) {
		q.Set("rt", ratings.Secondary)
	}
	if present(runtime) {
		q.Set("runtime", runtime)
	}
	return base + "/poster/" + url.PathEscape(imdbID) + ".jpg?" + q.Encode()
}
