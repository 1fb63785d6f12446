package stats

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

func TestTracker_FeedLifecycle(t *testing.T) {
	tr := NewTracker()
	url := "http://example.com/feed"

	tr.RecordFeedAttempt(url, model.Defense)
	tr.RecordFeedAttempt(url, model.Defense) // second attempt, same feed
	tr.RecordFeedSuccess(url, 3)
	tr.RecordFeedError(url, "timeout")

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.RSSFeeds.TotalFeeds)
	assert.Equal(t, 1, snap.RSSFeeds.SuccessfulFeeds)
	assert.Equal(t, 1, snap.RSSFeeds.FailedFeeds)

	stat := snap.RSSFeeds.FeedStats[url]
	assert.Equal(t, model.Defense, stat.Category)
	assert.Equal(t, 3, stat.TotalArticles)
	assert.Equal(t, 1, stat.SuccessCount)
	assert.Equal(t, 1, stat.ErrorCount)
	assert.Equal(t, "timeout", stat.LastError)
	if stat.LastSuccess == nil {
		t.Error("expected LastSuccess timestamp")
	}
}

func TestTracker_UnknownFeedEventsIgnored(t *testing.T) {
	tr := NewTracker()
	tr.RecordFeedSuccess("http://never-attempted", 5)
	tr.RecordFeedError("http://never-attempted", "boom")

	snap := tr.Snapshot()
	assert.Equal(t, 0, snap.RSSFeeds.SuccessfulFeeds)
	assert.Equal(t, 0, snap.RSSFeeds.FailedFeeds)
}

func TestTracker_ArticleCounters(t *testing.T) {
	tr := NewTracker()
	tr.RecordArticleFetched(4)
	tr.RecordArticleProcessed()
	tr.RecordScoringSuccess("ai")
	tr.RecordScoringSuccess("keyword")
	tr.RecordScoringFailure()

	snap := tr.Snapshot()
	assert.Equal(t, 4, snap.Articles.TotalFetched)
	assert.Equal(t, 1, snap.Articles.TotalProcessed)
	assert.Equal(t, 2, snap.Articles.SuccessfullyScored)
	assert.Equal(t, 1, snap.Articles.AIScoredCount)
	assert.Equal(t, 1, snap.Articles.KeywordScoredCount)
	assert.Equal(t, 1, snap.Articles.FailedScoring)
}

func TestTracker_ProcessingState(t *testing.T) {
	tr := NewTracker()

	tr.SetProcessingState(true, 5)
	snap := tr.Snapshot()
	assert.Equal(t, true, snap.Processing.IsCurrentlyProcessing)
	assert.Equal(t, 5, snap.Processing.QueueLength)

	tr.SetProcessingState(false, 0)
	snap = tr.Snapshot()
	assert.Equal(t, false, snap.Processing.IsCurrentlyProcessing)
	assert.Equal(t, 0, snap.Processing.QueueLength)
	if snap.Processing.LastProcessingTime == nil {
		t.Error("closing a processing window should record its end time")
	}
}

func TestTracker_QuotaFlagSticky(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, false, tr.QuotaExceeded())
	tr.RecordQuotaExceeded()
	assert.Equal(t, true, tr.QuotaExceeded())
	tr.RecordQuotaExceeded()
	assert.Equal(t, true, tr.QuotaExceeded())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.RecordFeedAttempt("http://example.com", model.Energy)
	tr.RecordFeedSuccess("http://example.com", 2)
	tr.RecordArticleFetched(2)
	tr.RecordQuotaExceeded()

	tr.Reset()

	snap := tr.Snapshot()
	assert.Equal(t, 0, snap.RSSFeeds.TotalFeeds)
	assert.Equal(t, 0, snap.Articles.TotalFetched)
	assert.Equal(t, false, snap.System.QuotaExceeded)
}
