package kids

//go:generate mockgen -source=sources.go -destination=mock_sources_test.go -package=kids

import (
	"context"

	"github.com/yakychan/KidsFlix/models"
)

// CertificationSource fetches raw per-country certification labels for one title.
type CertificationSource interface {
	Certifications(ctx context.Context, kind models.MediaKind, id int64) ([]models.CountryCertification, error)
}

// RatingsSource looks up the secondary ratings record for a canonical id.
type RatingsSource interface {
	// Configured reports whether the provider has a key and may be called.
	Configured() bool
	Ratings(ctx context.Context, imdbID string) (models.RatingsRecord, error)
}
