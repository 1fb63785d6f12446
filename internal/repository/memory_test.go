package repository

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

func TestMemoryStore_SeedsAllCategories(t *testing.T) {
	s := NewMemoryStore()

	categories, err := s.GetCategories()
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(categories))
	assert.Equal(t, model.Defense, categories[0].Key)
	assert.Equal(t, "Defense Technology", categories[0].Name)
}

func TestMemoryStore_GetCategory(t *testing.T) {
	s := NewMemoryStore()

	info, err := s.GetCategory(model.Energy)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Energy Infrastructure", info.Name)

	missing, err := s.GetCategory(model.Category("bogus"))
	assert.Equal(t, nil, err)
	if missing != nil {
		t.Error("unknown key should return nil")
	}
}

func TestMemoryStore_SeedsMilestonesPerCategory(t *testing.T) {
	s := NewMemoryStore()

	for _, cat := range model.AllCategories() {
		milestones, err := s.GetMilestones(cat)
		assert.Equal(t, nil, err)
		if len(milestones) == 0 {
			t.Errorf("category %s has no seeded milestones", cat)
		}
	}
}

func TestMemoryStore_ReplaceMilestones(t *testing.T) {
	s := NewMemoryStore()

	next := map[model.Category][]model.Milestone{
		model.Defense: {
			{ID: "defense-2", CategoryKey: model.Defense, Title: "New target", Status: model.MilestoneOnTrack},
		},
	}
	assert.Equal(t, nil, s.ReplaceMilestones(next))

	milestones, _ := s.GetMilestones(model.Defense)
	assert.Equal(t, 1, len(milestones))
	assert.Equal(t, "New target", milestones[0].Title)

	// Categories not present in the new set are emptied, not retained.
	energy, _ := s.GetMilestones(model.Energy)
	assert.Equal(t, 0, len(energy))
}

func TestMemoryStore_GetMilestonesReturnsCopy(t *testing.T) {
	s := NewMemoryStore()

	milestones, _ := s.GetMilestones(model.Defense)
	milestones[0].Title = "mutated"

	fresh, _ := s.GetMilestones(model.Defense)
	if fresh[0].Title == "mutated" {
		t.Error("store contents must not be mutable through returned slices")
	}
}
