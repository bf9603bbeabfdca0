package addon

import (
	"context"
	"errors"
	"time"

	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/kids"
)

// ErrNoMatch is returned when the catalog provider knows no record for an id.
var ErrNoMatch = errors.New("no catalog record for id")

// FilterReport explains how the classifier treats one title.
type FilterReport struct {
	Time      string             `json:"time"`
	Title     string             `json:"title"`
	MediaType string             `json:"mediaType"`
	GenreIDs  []int              `json:"genreIds"`
	AgeRating string             `json:"omdbRated"`
	Decision  kids.Decision      `json:"decision"`
	Checks    FilterReportChecks `json:"checks"`
}

// FilterReportChecks lists every signal, including those the classifier
// skipped after an early veto.
type FilterReportChecks struct {
	AdultFlag     kids.Verdict `json:"adultFlag"`
	Genres        kids.Verdict `json:"genres"`
	Description   kids.Verdict `json:"description"`
	Certification kids.Verdict `json:"certification"`
	AgeRating     kids.Verdict `json:"omdbRating"`
	Result        string       `json:"result"`
}

// Report runs every signal for imdbID, movie records first.
func (s *Session) Report(ctx context.Context, imdbID string) (*FilterReport, error) {
	start := time.Now()

	found, err := s.tmdb.Find(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	item, kind, ok := found.Pick(models.MediaMovie)
	if !ok {
		return nil, ErrNoMatch
	}

	rec, _ := s.omdb.Ratings(ctx, imdbID)
	decision := s.classifier.Classify(ctx, item, kind, imdbID)

	result := "❌ BLOQUEADO"
	if decision.Admit {
		result = "✅ SEGURO"
	}
	ageRating := rec.AgeRating
	if ageRating == "" {
		ageRating = "N/A"
	}

	return &FilterReport{
		Time:      time.Since(start).Round(time.Millisecond).String(),
		Title:     item.DisplayTitle(),
		MediaType: kind.TMDBPath(),
		GenreIDs:  nonNil(item.GenreTags()),
		AgeRating: ageRating,
		Decision:  decision,
		Checks: FilterReportChecks{
			AdultFlag:     kids.CheckAdult(item),
			Genres:        kids.CheckGenres(item.GenreTags()),
			Description:   kids.CheckSynopsis(item.Overview),
			Certification: s.certs.Resolve(ctx, item.ID, kind),
			AgeRating:     kids.CheckAgeRating(rec),
			Result:        result,
		},
	}, nil
}

func nonNil(tags []int) []int {
	if tags == nil {
		return []int{}
	}
	return tags
}
