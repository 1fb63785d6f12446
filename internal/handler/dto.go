package handler

import "github.com/lukeringworm/dynameter-deploy/internal/model"

type CategoryResponse struct {
	Key           model.Category `json:"key"`
	Name          string         `json:"name"`
	Score         float64        `json:"score"`
	Change        float64        `json:"change"`
	Icon          string         `json:"icon"`
	Color         string         `json:"color"`
	Description   string         `json:"description"`
	CurrentStatus string         `json:"currentStatus"`
}

type IndexResponse struct {
	OverallScore float64            `json:"overallScore"`
	Categories   []CategoryResponse `json:"categories"`
}

type CategoryDetailsResponse struct {
	CategoryResponse
	Milestones []model.Milestone `json:"milestones"`
}

type NewsResponse map[model.Category][]model.Article

type CategoryScoresResponse map[model.Category]float64

type RefreshResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MilestoneCheckResponse struct {
	Message   string `json:"message"`
	Updated   bool   `json:"updated"`
	Timestamp string `json:"timestamp"`
}

type SystemInfoResponse struct {
	GoVersion     string  `json:"goVersion"`
	Platform      string  `json:"platform"`
	UptimeSeconds float64 `json:"uptime"`
	Environment   string  `json:"environment"`
	HasLLMKey     bool    `json:"hasLlmKey"`
	QuotaExceeded bool    `json:"quotaExceeded"`
}
