package scorer

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
	"github.com/lukeringworm/dynameter-deploy/pkg/llm"
)

type fakeClient struct {
	result *llm.ScoreResult
	err    error
}

func (f *fakeClient) ScoreArticle(ctx context.Context, in llm.ScoreInput) (*llm.ScoreResult, error) {
	return f.result, f.err
}

func (f *fakeClient) GenerateMilestones(ctx context.Context, in llm.MilestoneInput) (map[string][]llm.MilestonePlan, error) {
	return nil, errors.New("not implemented")
}

func defenseArticle() model.Article {
	return model.Article{
		Title:    "Major contract awarded for defense modernization",
		Category: model.Defense,
	}
}

func TestScore_NoClientUsesKeywords(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(nil, tracker)

	res := s.Score(context.Background(), defenseArticle())

	assert.Equal(t, MethodKeyword, res.Method)
	assert.Equal(t, 3, res.ImpactScore) // contract + award (in "awarded") + modernization

	snap := tracker.Snapshot()
	assert.Equal(t, 1, snap.Articles.KeywordScoredCount)
	assert.Equal(t, 0, snap.Articles.AIScoredCount)
}

func TestScore_AISuccess(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(&fakeClient{result: &llm.ScoreResult{ImpactScore: 3, Summary: "Big deal."}}, tracker)

	res := s.Score(context.Background(), defenseArticle())

	assert.Equal(t, MethodAI, res.Method)
	assert.Equal(t, 3, res.ImpactScore)
	assert.Equal(t, "Big deal.", res.Summary)
	assert.Equal(t, 1, tracker.Snapshot().Articles.AIScoredCount)
}

func TestScore_AIFailureFallsBack(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(&fakeClient{err: errors.New("failed to parse response")}, tracker)

	res := s.Score(context.Background(), defenseArticle())

	assert.Equal(t, MethodKeyword, res.Method)
	assert.Equal(t, 3, res.ImpactScore)

	snap := tracker.Snapshot()
	assert.Equal(t, 1, snap.Articles.FailedScoring)
	assert.Equal(t, 1, snap.Articles.KeywordScoredCount)
	assert.Equal(t, false, snap.System.QuotaExceeded)
}

func TestScore_QuotaErrorSetsFlag(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(&fakeClient{err: errors.New("429: You exceeded your current quota")}, tracker)

	s.Score(context.Background(), defenseArticle())
	assert.Equal(t, true, tracker.Snapshot().System.QuotaExceeded)

	// No circuit breaker: the next call still attempts the API.
	res := s.Score(context.Background(), defenseArticle())
	assert.Equal(t, MethodKeyword, res.Method)
	assert.Equal(t, 2, tracker.Snapshot().Articles.FailedScoring)
}

func TestScore_ClampsOutOfRangeAIScores(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(&fakeClient{result: &llm.ScoreResult{ImpactScore: 11, Summary: "x"}}, tracker)

	res := s.Score(context.Background(), defenseArticle())
	assert.Equal(t, 5, res.ImpactScore)
}

func TestScore_EmptySummaryFallsBackToDescription(t *testing.T) {
	tracker := stats.NewTracker()
	s := New(&fakeClient{result: &llm.ScoreResult{ImpactScore: 1}}, tracker)

	a := defenseArticle()
	a.Description = "Original description"
	res := s.Score(context.Background(), a)
	assert.Equal(t, "Original description", res.Summary)
}
