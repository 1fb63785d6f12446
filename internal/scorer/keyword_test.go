package scorer

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

func TestKeywordScore_PositiveHits(t *testing.T) {
	// "contract", "award" (substring of "awarded"), and "modernization" are
	// all positive defense keywords.
	score := KeywordScore(model.Defense, "Major contract awarded for defense modernization", "")
	assert.Equal(t, 3, score)
}

func TestKeywordScore_MixedHits(t *testing.T) {
	// One positive (contract) and one negative (delay) cancel out... mostly.
	score := KeywordScore(model.Defense, "Contract delay announced", "")
	assert.Equal(t, 0, score)
}

func TestKeywordScore_NegativeHits(t *testing.T) {
	score := KeywordScore(model.Manufacturing, "Factory closure triggers layoffs", "supply disruption expected")
	// factory(+1), closure(-1), layoffs(-1), disruption(-1)
	assert.Equal(t, -2, score)
}

func TestKeywordScore_NoHits(t *testing.T) {
	assert.Equal(t, 0, KeywordScore(model.Energy, "Quiet week in the sector", ""))
}

func TestKeywordScore_Deterministic(t *testing.T) {
	title := "Renewable grid investment grows clean energy capacity"
	first := KeywordScore(model.Energy, title, "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, KeywordScore(model.Energy, title, ""))
	}
}

func TestKeywordScore_ClampedAtFive(t *testing.T) {
	// All seven energy positives plus none of the negatives.
	title := "renewable clean efficiency breakthrough investment capacity grid"
	assert.Equal(t, 5, KeywordScore(model.Energy, title, ""))
}

func TestKeywordScore_CaseInsensitive(t *testing.T) {
	upper := KeywordScore(model.Workforce, "TRAINING AND HIRING SURGE", "")
	lower := KeywordScore(model.Workforce, "training and hiring surge", "")
	assert.Equal(t, upper, lower)
	if upper < 2 {
		t.Errorf("expected at least two positive hits, got %d", upper)
	}
}

func TestKeywordScore_AllCategoriesCovered(t *testing.T) {
	for _, cat := range model.AllCategories() {
		if _, ok := categoryKeywords[cat]; !ok {
			t.Errorf("category %s has no keyword table", cat)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, clamp(9))
	assert.Equal(t, -5, clamp(-7))
	assert.Equal(t, 3, clamp(3))
}
