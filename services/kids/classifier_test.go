package kids

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yakychan/KidsFlix/models"
)

func newTestClassifier(t *testing.T, certs []models.CountryCertification, policy Policy) (*Classifier, *MockRatingsSource, *MockCertificationSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	certSrc := NewMockCertificationSource(ctrl)
	ratings := NewMockRatingsSource(ctrl)
	certSrc.EXPECT().Certifications(gomock.Any(), gomock.Any(), gomock.Any()).Return(certs, nil).AnyTimes()
	resolver := NewCertificationResolver(certSrc, nil, "", 0)
	return NewClassifier(resolver, ratings, policy), ratings, certSrc
}

func TestDecideVetoesBeatPositiveSignals(t *testing.T) {
	positives := Signals{Genre: Safe, Certification: Safe, AgeRating: Safe, RatingsConsulted: true, NeutralGenre: true}

	vetoes := map[Reason]func(*Signals){
		ReasonAdult:         func(s *Signals) { s.Adult = Blocked },
		ReasonSynopsis:      func(s *Signals) { s.Synopsis = Blocked },
		ReasonCertification: func(s *Signals) { s.Certification = Blocked },
		ReasonAgeRating:     func(s *Signals) { s.AgeRating = Blocked },
	}
	for reason, apply := range vetoes {
		s := positives
		apply(&s)
		d := Decide(s, Policy{})
		assert.False(t, d.Admit, "veto %s should reject", reason)
		assert.Equal(t, reason, d.Reason)
	}

	s := positives
	s.Genre = Blocked
	assert.Equal(t, ReasonGenre, Decide(s, Policy{}).Reason)
}

func TestDecideNeutralGating(t *testing.T) {
	tests := []struct {
		name   string
		s      Signals
		policy Policy
		want   bool
	}{
		{"no provider", Signals{NeutralGenre: true}, Policy{}, true},
		{"provider unknown", Signals{NeutralGenre: true, RatingsConsulted: true}, Policy{}, true},
		{"provider pg", Signals{NeutralGenre: true, RatingsConsulted: true, AgeRating: Safe}, Policy{}, true},
		{"provider pg-13", Signals{NeutralGenre: true, RatingsConsulted: true, AgeRating: Blocked}, Policy{}, false},
		{"strict without provider", Signals{NeutralGenre: true}, Policy{StrictNeutral: true}, false},
		{"strict unknown", Signals{NeutralGenre: true, RatingsConsulted: true}, Policy{StrictNeutral: true}, false},
		{"strict pg", Signals{NeutralGenre: true, RatingsConsulted: true, AgeRating: Safe}, Policy{StrictNeutral: true}, true},
		{"no signal at all", Signals{}, Policy{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.s, tt.policy).Admit)
		})
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	s := Signals{Genre: Unknown, Certification: Safe, NeutralGenre: true}
	first := Decide(s, Policy{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide(s, Policy{}))
	}
}

func TestClassifyKeywordVetoSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	certSrc := NewMockCertificationSource(ctrl)
	ratings := NewMockRatingsSource(ctrl)
	// No EXPECT calls: any call to either source fails the test.
	c := NewClassifier(NewCertificationResolver(certSrc, nil, "", 0), ratings, Policy{})

	item := models.CatalogItem{
		ID:       1,
		GenreIDs: []int{GenreAnimation},
		Overview: "A cute story with one scene of graphic violence.",
	}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000001")
	assert.False(t, d.Admit)
	assert.Equal(t, ReasonSynopsis, d.Reason)
	assert.Equal(t, "violence", d.Signals.MatchedKeyword)
}

func TestClassifyCertificationBlockSkipsRatings(t *testing.T) {
	c, _, _ := newTestClassifier(t, []models.CountryCertification{cc("US", "R")}, Policy{})

	item := models.CatalogItem{ID: 2, GenreIDs: []int{GenreFamily}}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000002")
	assert.False(t, d.Admit)
	assert.Equal(t, ReasonCertification, d.Reason)
}

func TestClassifyPositiveAdmission(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(true)
	ratings.EXPECT().Ratings(gomock.Any(), "tt0000003").Return(models.RatingsRecord{AgeRating: "G"}, nil)

	item := models.CatalogItem{ID: 3, GenreIDs: []int{GenreAnimation}}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000003")
	require.True(t, d.Admit)
	assert.Equal(t, ReasonKidSignal, d.Reason)
	assert.Equal(t, Safe, d.Signals.AgeRating)
}

func TestClassifyNeutralGenreRejectedOnPG13(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(true)
	ratings.EXPECT().Ratings(gomock.Any(), "tt0000004").Return(models.RatingsRecord{AgeRating: "PG-13"}, nil)

	item := models.CatalogItem{ID: 4, GenreIDs: []int{GenreComedy}}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000004")
	assert.False(t, d.Admit)
	assert.Equal(t, ReasonAgeRating, d.Reason)
}

func TestClassifyNeutralGenreAdmittedOnPG(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(true)
	ratings.EXPECT().Ratings(gomock.Any(), "tt0000005").Return(models.RatingsRecord{AgeRating: "PG"}, nil)

	item := models.CatalogItem{ID: 5, GenreIDs: []int{GenreComedy}}
	assert.True(t, c.Classify(context.Background(), item, models.MediaMovie, "tt0000005").Admit)
}

func TestClassifyRatingsFailureIsUnknown(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(true)
	ratings.EXPECT().Ratings(gomock.Any(), "tt0000006").Return(models.RatingsRecord{}, errors.New("timeout"))

	item := models.CatalogItem{ID: 6, GenreIDs: []int{GenreAdventure}}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000006")
	assert.True(t, d.Admit)
	assert.Equal(t, Unknown, d.Signals.AgeRating)
	assert.True(t, d.Signals.RatingsConsulted)
}

func TestClassifyUnconfiguredRatingsNotCalled(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(false)

	item := models.CatalogItem{ID: 7, GenreIDs: []int{GenreDocumentary}}
	d := c.Classify(context.Background(), item, models.MediaMovie, "tt0000007")
	assert.True(t, d.Admit)
	assert.False(t, d.Signals.RatingsConsulted)
}

func TestClassifyNoSignalRejected(t *testing.T) {
	c, ratings, _ := newTestClassifier(t, nil, Policy{})
	ratings.EXPECT().Configured().Return(false)

	d := c.Classify(context.Background(), models.CatalogItem{ID: 8}, models.MediaSeries, "tt0000008")
	assert.False(t, d.Admit)
	assert.Equal(t, ReasonNoSignal, d.Reason)
}
