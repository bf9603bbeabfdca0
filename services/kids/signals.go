package kids

import (
	"strings"

	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/utils/filter"
)

// TMDB genre ids.
const (
	GenreAdventure       = 12
	GenreFantasy         = 14
	GenreAnimation       = 16
	GenreComedy          = 35
	GenreHorror          = 27
	GenreHistory         = 36
	GenreThriller        = 53
	GenreCrime           = 80
	GenreDocumentary     = 99
	GenreMusic           = 10402
	GenreRomance         = 10749
	GenreFamily          = 10751
	GenreWar             = 10752
	GenreScienceFiction  = 878
	GenreKids            = 10762
	GenreNews            = 10763
	GenreReality         = 10764
	GenreTalk            = 10767
	GenreWarAndPolitics  = 10768
	GenreActionAdventure = 10759
	GenreSciFiFantasy    = 10765
)

var blockedGenres = map[int]struct{}{
	GenreHorror:         {},
	GenreThriller:       {},
	GenreCrime:          {},
	GenreWar:            {},
	GenreWarAndPolitics: {},
	GenreTalk:           {},
	GenreReality:        {},
	GenreNews:           {},
}

var kidGenres = map[int]struct{}{
	GenreAnimation: {},
	GenreFamily:    {},
	GenreKids:      {},
}

var neutralGenres = map[int]struct{}{
	GenreComedy:         {},
	GenreAdventure:      {},
	GenreFantasy:        {},
	GenreScienceFiction: {},
	GenreMusic:          {},
	GenreRomance:        {},
	GenreHistory:        {},
	GenreDocumentary:    {},
}

// BlockedKeywords is the bilingual list of synopsis terms that veto a title.
var BlockedKeywords = []string{
	"gore", "slasher", "erotic", "erotica", "sexual", "violence",
	"murder", "serial killer", "drug", "drugs", "narco", "narcotic",
	"prostitution", "rape", "torture", "blood", "bloody", "zombie",
	"horror", "terror", "disturbing", "explicit", "mature",
	"asesino", "asesinato", "violación", "drogas", "sangre",
	"demonio", "demon", "possessed", "exorcism", "hell",
	"gambling", "mafia", "cartel", "trafficking",
}

var blockedKeywordTerms = filter.CompileTerms(BlockedKeywords)

var blockedAgeRatings = map[string]struct{}{
	"R": {}, "NC-17": {}, "X": {}, "TV-MA": {}, "TV-14": {}, "PG-13": {}, "MA-17": {}, "AO": {},
}

// CheckAdult only ever vetoes: a missing adult flag is not proof of suitability.
func CheckAdult(item models.CatalogItem) Verdict {
	if item.Adult {
		return Blocked
	}
	return Unknown
}

// CheckGenres blocks on any adult-coded genre and otherwise recognizes kid-coded ones.
func CheckGenres(tags []int) Verdict {
	if len(tags) == 0 {
		return Unknown
	}
	if IsBlockedGenre(tags) {
		return Blocked
	}
	for _, id := range tags {
		if _, ok := kidGenres[id]; ok {
			return Safe
		}
	}
	return Unknown
}

// IsBlockedGenre reports whether any tag is disqualifying.
func IsBlockedGenre(tags []int) bool {
	for _, id := range tags {
		if _, ok := blockedGenres[id]; ok {
			return true
		}
	}
	return false
}

// HasNeutralGenre reports whether any tag is in the neutral set.
func HasNeutralGenre(tags []int) bool {
	for _, id := range tags {
		if _, ok := neutralGenres[id]; ok {
			return true
		}
	}
	return false
}

// CheckSynopsis never returns Safe.
func CheckSynopsis(text string) Verdict {
	if _, ok := MatchKeyword(text); ok {
		return Blocked
	}
	return Unknown
}

// MatchKeyword returns the first disqualifying term found in text.
func MatchKeyword(text string) (string, bool) {
	term, ok := filter.FirstMatch(text, blockedKeywordTerms)
	if !ok {
		return "", false
	}
	return term.String(), true
}

// CheckAgeRating maps the ratings provider's age label.
func CheckAgeRating(rec models.RatingsRecord) Verdict {
	label := strings.TrimSpace(rec.AgeRating)
	if label == "" || strings.EqualFold(label, "N/A") {
		return Unknown
	}
	if _, ok := blockedAgeRatings[strings.ToUpper(label)]; ok {
		return Blocked
	}
	return Safe
}

// PreFilter is the cheap local screen applied to discovery results before any
// network call: adult flag, disqualifying genre or disqualifying synopsis.
func PreFilter(item models.CatalogItem) bool {
	if CheckAdult(item) == Blocked {
		return false
	}
	if IsBlockedGenre(item.GenreIDs) {
		return false
	}
	return CheckSynopsis(item.Overview) != Blocked
}

// FilterStats summarizes the static filter tables.
type FilterStats struct {
	Levels                 int `json:"levels"`
	BlockedGenres          int `json:"blockedGenres"`
	BlockedKeywords        int `json:"blockedKeywords"`
	CertificationCountries int `json:"certificationCountries"`
}

// Stats returns the sizes of the filter tables.
func Stats() FilterStats {
	return FilterStats{
		Levels:                 5,
		BlockedGenres:          len(blockedGenres),
		BlockedKeywords:        len(BlockedKeywords),
		CertificationCountries: len(allowedCertifications),
	}
}
