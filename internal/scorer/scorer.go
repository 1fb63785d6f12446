// Package scorer resolves an impact score and summary for every article.
// The primary path asks an LLM; any failure falls back to deterministic
// keyword scoring, so Score always produces a value.
package scorer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
	"github.com/lukeringworm/dynameter-deploy/pkg/llm"
)

// Scoring methods reported to the stats tracker.
const (
	MethodAI      = "ai"
	MethodKeyword = "keyword"
)

type Result struct {
	ImpactScore int
	Summary     string
	Method      string
}

type Scorer struct {
	client llm.Client // nil when no API credential is configured
	stats  *stats.Tracker
}

// New builds a Scorer. A nil client disables AI scoring for the process
// lifetime; every article takes the keyword path.
func New(client llm.Client, tracker *stats.Tracker) *Scorer {
	if client == nil {
		slog.Warn("no LLM API key configured, AI scoring disabled")
	}
	return &Scorer{client: client, stats: tracker}
}

// Score resolves an impact score for one article. It never fails: an AI
// error is recorded and the keyword heuristic supplies the value instead.
func (s *Scorer) Score(ctx context.Context, article model.Article) Result {
	if s.client == nil {
		return s.keywordResult(article)
	}

	res, err := s.client.ScoreArticle(ctx, llm.ScoreInput{
		CategoryName: article.Category.DisplayName(),
		Title:        article.Title,
		Description:  article.Description,
	})
	if err != nil {
		slog.Error("AI scoring failed, falling back to keywords",
			"title", article.Title, "error", err)
		s.stats.RecordScoringFailure()
		if strings.Contains(err.Error(), "quota") {
			s.stats.RecordQuotaExceeded()
		}
		return s.keywordResult(article)
	}

	summary := res.Summary
	if summary == "" {
		summary = article.Description
	}
	s.stats.RecordScoringSuccess(MethodAI)
	return Result{
		ImpactScore: clamp(res.ImpactScore),
		Summary:     summary,
		Method:      MethodAI,
	}
}

func (s *Scorer) keywordResult(article model.Article) Result {
	summary := article.Description
	if summary == "" {
		summary = article.Title
	}
	s.stats.RecordScoringSuccess(MethodKeyword)
	return Result{
		ImpactScore: KeywordScore(article.Category, article.Title, article.Description),
		Summary:     summary,
		Method:      MethodKeyword,
	}
}
