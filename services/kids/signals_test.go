package kids

import (
	"testing"

	"github.com/yakychan/KidsFlix/models"
)

func TestCheckGenres(t *testing.T) {
	tests := []struct {
		name string
		tags []int
		want Verdict
	}{
		{"empty", nil, Unknown},
		{"animation", []int{GenreAnimation}, Safe},
		{"kids tv", []int{GenreKids, GenreComedy}, Safe},
		{"neutral only", []int{GenreComedy, GenreAdventure}, Unknown},
		{"horror", []int{GenreHorror}, Blocked},
		{"blocked wins over kid", []int{GenreFamily, GenreCrime}, Blocked},
		{"reality", []int{GenreReality}, Blocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckGenres(tt.tags); got != tt.want {
				t.Fatalf("CheckGenres(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestCheckAdult(t *testing.T) {
	if got := CheckAdult(models.CatalogItem{Adult: true}); got != Blocked {
		t.Fatalf("adult item = %v, want blocked", got)
	}
	if got := CheckAdult(models.CatalogItem{}); got != Unknown {
		t.Fatalf("non-adult item = %v, want unknown", got)
	}
}

func TestCheckSynopsis(t *testing.T) {
	tests := []struct {
		text string
		want Verdict
	}{
		{"", Unknown},
		{"A young lion learns about friendship.", Unknown},
		{"A family road trip goes wrong when a SERIAL KILLER appears.", Blocked},
		{"Una historia de VIOLACIÓN y venganza.", Blocked},
		{"Una historia de violacion sin acentos.", Blocked},
		{"El cartel controla la ciudad.", Blocked},
		// Plain terms match as substrings.
		{"Say hello to the new neighbours.", Blocked},
	}
	for _, tt := range tests {
		if got := CheckSynopsis(tt.text); got != tt.want {
			t.Fatalf("CheckSynopsis(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMatchKeywordReportsTerm(t *testing.T) {
	term, ok := MatchKeyword("The mafia boss returns")
	if !ok || term != "mafia" {
		t.Fatalf("MatchKeyword = (%q, %v), want (mafia, true)", term, ok)
	}
}

func TestCheckAgeRating(t *testing.T) {
	tests := []struct {
		label string
		want  Verdict
	}{
		{"", Unknown},
		{"N/A", Unknown},
		{"G", Safe},
		{"PG", Safe},
		{"TV-Y7", Safe},
		{"PG-13", Blocked},
		{" R ", Blocked},
		{"TV-MA", Blocked},
		{"tv-14", Blocked},
	}
	for _, tt := range tests {
		if got := CheckAgeRating(models.RatingsRecord{AgeRating: tt.label}); got != tt.want {
			t.Fatalf("CheckAgeRating(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestPreFilter(t *testing.T) {
	tests := []struct {
		name string
		item models.CatalogItem
		want bool
	}{
		{"clean", models.CatalogItem{GenreIDs: []int{GenreAnimation}, Overview: "Friends on an island."}, true},
		{"adult", models.CatalogItem{Adult: true}, false},
		{"blocked genre", models.CatalogItem{GenreIDs: []int{GenreThriller}}, false},
		{"keyword", models.CatalogItem{Overview: "A zombie outbreak."}, false},
	}
	for _, tt := range tests {
		if got := PreFilter(tt.item); got != tt.want {
			t.Fatalf("%s: PreFilter = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	s := Stats()
	if s.BlockedGenres != 8 || s.BlockedKeywords != 37 || s.CertificationCountries != 10 || s.Levels != 5 {
		t.Fatalf("Stats() = %+v", s)
	}
}
