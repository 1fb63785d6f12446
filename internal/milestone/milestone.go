// Package milestone decides when a full milestone set has been achieved and
// asks the LLM for the next generation of targets.
package milestone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
	"github.com/lukeringworm/dynameter-deploy/pkg/llm"
)

type Store interface {
	GetCategories() ([]model.CategoryInfo, error)
	GetAllMilestones() (map[model.Category][]model.Milestone, error)
	ReplaceMilestones(map[model.Category][]model.Milestone) error
}

type Service struct {
	client llm.Client // nil when no API credential is configured
	store  Store
}

func NewService(client llm.Client, store Store) *Service {
	return &Service{client: client, store: store}
}

// CheckAndUpdate regenerates the milestone set when every milestone in every
// category is completed. Returns true when a new set was stored.
func (s *Service) CheckAndUpdate(ctx context.Context) (bool, error) {
	if s.client == nil {
		slog.Info("no LLM API key configured, skipping milestone update")
		return false, nil
	}

	milestones, err := s.store.GetAllMilestones()
	if err != nil {
		return false, fmt.Errorf("loading milestones: %w", err)
	}

	if !allCompleted(milestones) {
		return false, nil
	}

	slog.Info("all milestones completed, generating new targets")
	return s.regenerate(ctx)
}

// ForceUpdate regenerates milestones regardless of completion state. Used by
// the admin panel.
func (s *Service) ForceUpdate(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("LLM API key not available")
	}
	return s.regenerate(ctx)
}

func (s *Service) regenerate(ctx context.Context) (bool, error) {
	categories, err := s.store.GetCategories()
	if err != nil {
		return false, fmt.Errorf("loading categories: %w", err)
	}

	scores := make(map[string]float64, len(categories))
	for _, c := range categories {
		scores[c.Name] = c.Score
	}

	plans, err := s.client.GenerateMilestones(ctx, llm.MilestoneInput{CategoryScores: scores})
	if err != nil {
		return false, fmt.Errorf("generating milestones: %w", err)
	}

	next, err := plansToMilestones(plans)
	if err != nil {
		return false, err
	}

	if err := s.store.ReplaceMilestones(next); err != nil {
		return false, fmt.Errorf("storing milestones: %w", err)
	}

	slog.Info("milestones replaced with new targets")
	return true, nil
}

// plansToMilestones validates that the model covered all six categories and
// assigns stable per-category IDs.
func plansToMilestones(plans map[string][]llm.MilestonePlan) (map[model.Category][]model.Milestone, error) {
	out := make(map[model.Category][]model.Milestone, len(model.AllCategories()))
	for _, cat := range model.AllCategories() {
		list, ok := plans[string(cat)]
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("invalid milestone structure for category: %s", cat)
		}
		milestones := make([]model.Milestone, 0, len(list))
		for i, plan := range list {
			milestones = append(milestones, model.Milestone{
				ID:          fmt.Sprintf("%s-%d", cat, i+1),
				CategoryKey: cat,
				Title:       plan.Title,
				Target:      plan.Target,
				Current:     plan.Current,
				Status:      model.MilestoneOnTrack,
				Description: plan.Description,
				Completed:   plan.Completed,
			})
		}
		out[cat] = milestones
	}
	return out, nil
}

func allCompleted(milestones map[model.Category][]model.Milestone) bool {
	any := false
	for _, list := range milestones {
		for _, m := range list {
			any = true
			if !m.Completed {
				return false
			}
		}
	}
	return any
}
