package kids

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/models"
)

// DefaultCertificationTTL is how long a resolved certification verdict is memoized.
const DefaultCertificationTTL = 60 * time.Minute

// allowedCertifications lists, per country, the labels that mark a title as suitable.
var allowedCertifications = map[string][]string{
	"US": {"G", "PG", "TV-Y", "TV-Y7", "TV-Y7-FV", "TV-G", "TV-PG", "NR"},
	"ES": {"APTA", "TP", "7", "A"},
	"GB": {"U", "PG"},
	"DE": {"0", "6"},
	"FR": {"U", "TP"},
	"BR": {"L", "10"},
	"MX": {"AA", "A"},
	"AR": {"ATP", "SAM 7"},
	"CO": {"TP", "7"},
	"CL": {"TE", "TE+7"},
}

// Hard-block labels are checked in every country, not just the allow table.
var (
	hardBlockedMovie = []string{"R", "NC-17", "X", "18", "16", "15", "MA 15+", "MA-15+", "TV-MA", "TV-14"}
	hardBlockedTV    = []string{"TV-MA", "TV-14", "MA", "MA 15+", "MA-15+", "18", "16", "15"}
)

// EvaluateCertifications interprets normalized certification data. Any
// hard-blocked label wins over allowed labels found elsewhere.
func EvaluateCertifications(kind models.MediaKind, certs []models.CountryCertification) Verdict {
	hardBlocked := hardBlockedMovie
	if kind == models.MediaSeries {
		hardBlocked = hardBlockedTV
	}

	result := Unknown
	for _, cc := range certs {
		allowed := allowedCertifications[strings.ToUpper(cc.Country)]
		for _, raw := range cc.Labels {
			label := strings.TrimSpace(raw)
			if label == "" {
				continue
			}
			if containsLabel(hardBlocked, label) {
				return Blocked
			}
			if containsLabel(allowed, label) {
				result = Safe
			}
		}
	}
	return result
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// CertificationResolver fetches certification data and memoizes the verdict
// inside a key namespace.
type CertificationResolver struct {
	source    CertificationSource
	cache     *cache.Cache
	namespace string
	ttl       time.Duration
	log       *slog.Logger
}

// NewCertificationResolver builds a resolver. A nil cache disables memoization.
func NewCertificationResolver(source CertificationSource, c *cache.Cache, namespace string, ttl time.Duration) *CertificationResolver {
	if ttl <= 0 {
		ttl = DefaultCertificationTTL
	}
	return &CertificationResolver{
		source:    source,
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		log:       slog.Default().With("component", "kids.certification"),
	}
}

// Resolve returns the certification verdict for one title. Fetch failures
// yield Unknown and are not memoized.
func (r *CertificationResolver) Resolve(ctx context.Context, id int64, kind models.MediaKind) Verdict {
	if r == nil || r.source == nil {
		return Unknown
	}
	key := r.cacheKey(id, kind)
	if v, ok := cache.Lookup[Verdict](r.cache, key); ok {
		return v
	}

	certs, err := r.source.Certifications(ctx, kind, id)
	if err != nil {
		r.log.Debug("kids.certification.fetch_failed", "kind", kind, "id", id, "error", err)
		return Unknown
	}

	verdict := EvaluateCertifications(kind, certs)
	if r.cache != nil {
		r.cache.Set(key, verdict, r.ttl)
	}
	return verdict
}

func (r *CertificationResolver) cacheKey(id int64, kind models.MediaKind) string {
	if r.namespace == "" {
		return fmt.Sprintf("cert:%s:%d", kind.TMDBPath(), id)
	}
	return fmt.Sprintf("%s:cert:%s:%d", r.namespace, kind.TMDBPath(), id)
}
