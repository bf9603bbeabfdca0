package kids

import (
	"context"
	"log/slog"

	"github.com/yakychan/KidsFlix/models"
)

// Reason names the rule that settled a decision.
type Reason string

const (
	ReasonAdult         Reason = "adult"
	ReasonGenre         Reason = "blocked_genre"
	ReasonSynopsis      Reason = "blocked_keyword"
	ReasonCertification Reason = "blocked_certification"
	ReasonAgeRating     Reason = "blocked_age_rating"
	ReasonKidSignal     Reason = "kid_signal"
	ReasonNeutralGenre  Reason = "neutral_genre"
	ReasonNoSignal      Reason = "no_positive_signal"
)

// Policy tunes how ambiguous titles are treated.
type Policy struct {
	// StrictNeutral admits neutral-genre titles only when the ratings provider
	// positively reports a suitable age label.
	StrictNeutral bool
}

// Signals holds the evidence gathered for one title.
type Signals struct {
	Adult         Verdict `json:"adultFlag"`
	Genre         Verdict `json:"genres"`
	Synopsis      Verdict `json:"description"`
	Certification Verdict `json:"certification"`
	AgeRating     Verdict `json:"ageRating"`

	NeutralGenre     bool   `json:"neutralGenre"`
	RatingsConsulted bool   `json:"ratingsConsulted"`
	MatchedKeyword   string `json:"matchedKeyword,omitempty"`
}

func (s Signals) vetoed() bool {
	return s.Adult == Blocked || s.Genre == Blocked || s.Synopsis == Blocked
}

// Decision is the classifier's answer for one title.
type Decision struct {
	Admit   bool    `json:"admit"`
	Reason  Reason  `json:"reason"`
	Signals Signals `json:"signals"`
}

// Decide applies the admission rules to already gathered signals. Vetoes take
// precedence over every positive signal.
func Decide(s Signals, p Policy) Decision {
	reject := func(r Reason) Decision { return Decision{Admit: false, Reason: r, Signals: s} }
	admit := func(r Reason) Decision { return Decision{Admit: true, Reason: r, Signals: s} }

	switch {
	case s.Adult == Blocked:
		return reject(ReasonAdult)
	case s.Genre == Blocked:
		return reject(ReasonGenre)
	case s.Synopsis == Blocked:
		return reject(ReasonSynopsis)
	case s.Certification == Blocked:
		return reject(ReasonCertification)
	case s.RatingsConsulted && s.AgeRating == Blocked:
		return reject(ReasonAgeRating)
	case s.Genre == Safe || s.Certification == Safe:
		return admit(ReasonKidSignal)
	case s.NeutralGenre:
		switch {
		case p.StrictNeutral && s.AgeRating == Safe:
			return admit(ReasonNeutralGenre)
		case p.StrictNeutral:
			return reject(ReasonNoSignal)
		default:
			return admit(ReasonNeutralGenre)
		}
	}
	return reject(ReasonNoSignal)
}

// Classifier gathers signals for a title in cost order and decides admission.
type Classifier struct {
	certs   *CertificationResolver
	ratings RatingsSource
	policy  Policy
	log     *slog.Logger
}

// NewClassifier wires the certification resolver and optional ratings source.
func NewClassifier(certs *CertificationResolver, ratings RatingsSource, policy Policy) *Classifier {
	return &Classifier{
		certs:   certs,
		ratings: ratings,
		policy:  policy,
		log:     slog.Default().With("component", "kids.classifier"),
	}
}

// Gather collects the local signals and, unless one of them already vetoes the
// title, the certification verdict and (when configured) the age rating.
func (c *Classifier) Gather(ctx context.Context, item models.CatalogItem, kind models.MediaKind, imdbID string) Signals {
	tags := item.GenreTags()
	s := Signals{
		Adult:        CheckAdult(item),
		Genre:        CheckGenres(tags),
		NeutralGenre: HasNeutralGenre(tags),
	}
	if term, ok := MatchKeyword(item.Overview); ok {
		s.Synopsis = Blocked
		s.MatchedKeyword = term
	}
	if s.vetoed() {
		return s
	}

	s.Certification = c.certs.Resolve(ctx, item.ID, kind)
	if s.Certification == Blocked {
		return s
	}

	if imdbID != "" && c.ratings != nil && c.ratings.Configured() {
		s.RatingsConsulted = true
		rec, err := c.ratings.Ratings(ctx, imdbID)
		if err != nil {
			c.log.Debug("kids.classifier.ratings_failed", "imdb_id", imdbID, "error", err)
		} else {
			s.AgeRating = CheckAgeRating(rec)
		}
	}
	return s
}

// Classify decides whether a title may be shown.
func (c *Classifier) Classify(ctx context.Context, item models.CatalogItem, kind models.MediaKind, imdbID string) Decision {
	d := Decide(c.Gather(ctx, item, kind, imdbID), c.policy)
	if !d.Admit {
		c.log.Debug("kids.classifier.rejected",
			"title", item.DisplayTitle(),
			"tmdb_id", item.ID,
			"imdb_id", imdbID,
			"reason", d.Reason,
		)
	}
	return d
}
