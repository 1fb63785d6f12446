// Package repository provides the category and milestone stores consumed by
// the HTTP handlers and the milestone service: an in-memory store seeded
// with defaults, and a Postgres-backed store for deployments with a
// DATABASE_URL.
package repository

import (
	"sync"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// MemoryStore keeps categories and milestones in process memory. It is the
// default backing store and the one used in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[model.Category]model.CategoryInfo
	milestones map[model.Category][]model.Milestone
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		categories: make(map[model.Category]model.CategoryInfo),
		milestones: make(map[model.Category][]model.Milestone),
	}
	for _, c := range defaultCategories() {
		s.categories[c.Key] = c
	}
	for _, m := range defaultMilestones() {
		s.milestones[m.CategoryKey] = append(s.milestones[m.CategoryKey], m)
	}
	return s
}

func (s *MemoryStore) GetCategories() ([]model.CategoryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CategoryInfo, 0, len(s.categories))
	for _, cat := range model.AllCategories() {
		if info, ok := s.categories[cat]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetCategory(key model.Category) (*model.CategoryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.categories[key]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (s *MemoryStore) GetMilestones(key model.Category) ([]model.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.milestones[key]
	out := make([]model.Milestone, len(list))
	copy(out, list)
	return out, nil
}

func (s *MemoryStore) GetAllMilestones() (map[model.Category][]model.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.Category][]model.Milestone, len(s.milestones))
	for cat, list := range s.milestones {
		cp := make([]model.Milestone, len(list))
		copy(cp, list)
		out[cat] = cp
	}
	return out, nil
}

// ReplaceMilestones swaps in a full new milestone set, category by category.
func (s *MemoryStore) ReplaceMilestones(milestones map[model.Category][]model.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestones = make(map[model.Category][]model.Milestone, len(milestones))
	for cat, list := range milestones {
		cp := make([]model.Milestone, len(list))
		copy(cp, list)
		s.milestones[cat] = cp
	}
	return nil
}

func defaultCategories() []model.CategoryInfo {
	return []model.CategoryInfo{
		{
			Key: model.Defense, Name: model.Defense.DisplayName(),
			Score: 72, Change: 2.3, Icon: "Shield", Color: "#dc2626",
			Description:   "Advanced military systems, cybersecurity, and defense innovation",
			CurrentStatus: "Strong growth in defense contracts and R&D investments",
		},
		{
			Key: model.Manufacturing, Name: model.Manufacturing.DisplayName(),
			Score: 68, Change: 1.8, Icon: "Factory", Color: "#ea580c",
			Description:   "Bringing production capabilities back to America",
			CurrentStatus: "287,000 reshored jobs announced in 2023, cumulatively",
		},
		{
			Key: model.Energy, Name: model.Energy.DisplayName(),
			Score: 75, Change: 3.2, Icon: "Zap", Color: "#fbbf24",
			Description:   "Clean energy transition, grid modernization, and energy independence",
			CurrentStatus: "Record renewable energy capacity additions nationwide",
		},
		{
			Key: model.Workforce, Name: model.Workforce.DisplayName(),
			Score: 64, Change: -0.5, Icon: "Users", Color: "#10b981",
			Description:   "Skills training, STEM education, and talent pipeline development",
			CurrentStatus: "Skills gap persists in key manufacturing and tech sectors",
		},
		{
			Key: model.TechPolicy, Name: model.TechPolicy.DisplayName(),
			Score: 70, Change: 1.2, Icon: "Cpu", Color: "#3b82f6",
			Description:   "AI governance, semiconductor policy, and technology leadership",
			CurrentStatus: "CHIPS Act implementation showing early positive results",
		},
		{
			Key: model.SupplyChain, Name: model.SupplyChain.DisplayName(),
			Score: 66, Change: 2.1, Icon: "Truck", Color: "#8b5cf6",
			Description:   "Diversifying supply sources and strengthening critical supply chains",
			CurrentStatus: "Critical minerals and semiconductor supply chains strengthening",
		},
	}
}

func defaultMilestones() []model.Milestone {
	return []model.Milestone{
		{
			ID: "defense-1", CategoryKey: model.Defense,
			Title:       "5th Generation Fighter Readiness",
			Target:      "400 aircraft", Current: "285 aircraft",
			TargetDate:  "2025-12-31", Status: model.MilestoneOnTrack,
			Description: "Achieve full operational capability of 400 5th-generation fighter aircraft",
		},
		{
			ID: "manufacturing-1", CategoryKey: model.Manufacturing,
			Title:       "Manufacturing Jobs Reshored",
			Target:      "500,000 jobs", Current: "287,000 jobs",
			TargetDate:  "2025-06-30", Status: model.MilestoneOnTrack,
			Description: "Total cumulative manufacturing jobs brought back to the US",
		},
		{
			ID: "energy-1", CategoryKey: model.Energy,
			Title:       "Renewable Energy Capacity",
			Target:      "300 GW", Current: "185 GW",
			TargetDate:  "2026-01-01", Status: model.MilestoneOnTrack,
			Description: "Total installed renewable energy capacity nationwide",
		},
		{
			ID: "workforce-1", CategoryKey: model.Workforce,
			Title:       "STEM Graduates Annual",
			Target:      "150,000 graduates", Current: "120,000 graduates",
			TargetDate:  "2025-05-31", Status: model.MilestoneAtRisk,
			Description: "Annual STEM graduates from US universities",
		},
		{
			ID: "techPolicy-1", CategoryKey: model.TechPolicy,
			Title:       "Semiconductor Fab Capacity",
			Target:      "25 percent", Current: "12 percent",
			TargetDate:  "2028-12-31", Status: model.MilestoneOnTrack,
			Description: "US share of global semiconductor fabrication capacity",
		},
		{
			ID: "supplyChain-1", CategoryKey: model.SupplyChain,
			Title:       "Critical Mineral Independence",
			Target:      "50 percent domestic", Current: "28 percent domestic",
			TargetDate:  "2027-12-31", Status: model.MilestoneOnTrack,
			Description: "Share of critical minerals sourced domestically or from allies",
		},
	}
}
