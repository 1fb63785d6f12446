package model

import "time"

// Article is a single news item fetched from an RSS feed. ImpactScore is nil
// until the article has gone through scoring; a nil score means "pending",
// which is distinct from a real score of 0.
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PubDate     time.Time `json:"pubDate"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	ImpactScore *int      `json:"impactScore,omitempty"`
	AISummary   string    `json:"aiSummary,omitempty"`
	Processed   bool      `json:"processed"`
}

// CategoryInfo is the persisted snapshot of a category shown on the
// dashboard: its current score, trend, and presentation metadata.
type CategoryInfo struct {
	Key           Category `json:"key"`
	Name          string   `json:"name"`
	Score         float64  `json:"score"`
	Change        float64  `json:"change"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Description   string   `json:"description"`
	CurrentStatus string   `json:"currentStatus"`
}

// Milestone is a progress target within a category. Target and Current are
// display strings ("500K jobs by 2025"), not parsed quantities.
type Milestone struct {
	ID          string   `json:"milestoneId"`
	CategoryKey Category `json:"categoryKey"`
	Title       string   `json:"title"`
	Target      string   `json:"target"`
	Current     string   `json:"current"`
	TargetDate  string   `json:"targetDate,omitempty"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
}

// Milestone status values.
const (
	MilestoneOnTrack = "on-track"
	MilestoneAtRisk  = "at-risk"
	MilestoneDone    = "completed"
)
