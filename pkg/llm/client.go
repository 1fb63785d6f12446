package llm

import (
	"context"
	"strings"
)

type ScoreInput struct {
	CategoryName string
	Title        string
	Description  string
}

type ScoreResult struct {
	ImpactScore int
	Summary     string
	ModelUsed   string
}

// MilestonePlan is one generated milestone target. Target and Current are
// display strings as produced by the model.
type MilestonePlan struct {
	Title       string `json:"title"`
	Target      string `json:"target"`
	Current     string `json:"current"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// MilestoneInput carries the current per-category scores (0-100), keyed by
// display name, for the milestone-generation prompt.
type MilestoneInput struct {
	CategoryScores map[string]float64
}

type Client interface {
	ScoreArticle(ctx context.Context, input ScoreInput) (*ScoreResult, error)
	GenerateMilestones(ctx context.Context, input MilestoneInput) (map[string][]MilestonePlan, error)
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
