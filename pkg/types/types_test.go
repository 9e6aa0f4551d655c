package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsASIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"happy path", "B0H8K1234T", true},
		{"lowercase tail accepted", "B0h8k1234t", true},
		{"too short", "B0H8K123", false},
		{"too long", "B0H8K1234TX", false},
		{"wrong prefix", "A0H8K1234T", false},
		{"missing zero", "BXH8K1234T", false},
		{"punctuation rejected", "B0H8K12-4T", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsASIN(tt.in))
		})
	}
}

func TestFilterCriteria_IsZero(t *testing.T) {
	t.Parallel()

	var f FilterCriteria
	assert.True(t, f.IsZero())

	f.Search = "headphones"
	assert.False(t, f.IsZero())

	f = FilterCriteria{MaxRank: 5000}
	assert.False(t, f.IsZero())
}

func TestProduct_Clone(t *testing.T) {
	t.Parallel()

	roi := 35.0
	p := &Product{
		ID:              "B0AAAA1111",
		ASIN:            "B0AAAA1111",
		Name:            "First",
		PriceHistory:    []PricePoint{{Date: "Jan 1", Price: 10}},
		RankHistory:     []RankPoint{{Date: "Jan 1", Rank: 500}},
		SeasonalityTags: []Season{SeasonQ4},
		TargetROI:       &roi,
		Analysis:        &Analysis{Grade: GradeA, Pros: []string{"fast mover"}},
	}

	cp := p.Clone()
	cp.PriceHistory[0].Price = 99
	cp.RankHistory[0].Rank = 1
	cp.SeasonalityTags[0] = SeasonSummer
	*cp.TargetROI = 10
	cp.Analysis.Pros[0] = "changed"

	assert.Equal(t, 10.0, p.PriceHistory[0].Price)
	assert.Equal(t, 500, p.RankHistory[0].Rank)
	assert.Equal(t, SeasonQ4, p.SeasonalityTags[0])
	assert.Equal(t, 35.0, *p.TargetROI)
	assert.Equal(t, "fast mover", p.Analysis.Pros[0])

	var nilProduct *Product
	assert.Nil(t, nilProduct.Clone())
}
