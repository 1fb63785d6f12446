// Package stats tracks RSS processing statistics for the admin panel.
// All record methods are fire-and-forget: they never block and never fail.
package stats

import (
	"sync"
	"time"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// FeedStat holds per-URL fetch history.
type FeedStat struct {
	URL           string         `json:"url"`
	Category      model.Category `json:"category"`
	LastSuccess   *time.Time     `json:"lastSuccess,omitempty"`
	LastError     string         `json:"lastError,omitempty"`
	TotalArticles int            `json:"totalArticles"`
	SuccessCount  int            `json:"successCount"`
	ErrorCount    int            `json:"errorCount"`
}

// Snapshot is a point-in-time copy of all tracked statistics.
type Snapshot struct {
	RSSFeeds struct {
		TotalFeeds      int                 `json:"totalFeeds"`
		SuccessfulFeeds int                 `json:"successfulFeeds"`
		FailedFeeds     int                 `json:"failedFeeds"`
		LastFetchTime   *time.Time          `json:"lastFetchTime,omitempty"`
		FeedStats       map[string]FeedStat `json:"feedStats"`
	} `json:"rssFeeds"`
	Articles struct {
		TotalFetched       int `json:"totalFetched"`
		TotalProcessed     int `json:"totalProcessed"`
		SuccessfullyScored int `json:"successfullyScored"`
		FailedScoring      int `json:"failedScoring"`
		AIScoredCount      int `json:"aiScoredCount"`
		KeywordScoredCount int `json:"keywordScoredCount"`
	} `json:"articles"`
	Processing struct {
		IsCurrentlyProcessing bool       `json:"isCurrentlyProcessing"`
		QueueLength           int        `json:"queueLength"`
		LastProcessingTime    *time.Time `json:"lastProcessingTime,omitempty"`
		AverageProcessingMs   float64    `json:"averageProcessingTime,omitempty"`
	} `json:"processing"`
	System struct {
		UptimeSeconds float64 `json:"uptime"`
		QuotaExceeded bool    `json:"quotaExceeded"`
	} `json:"system"`
}

// Tracker accumulates pipeline events. Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	feedStats       map[string]*FeedStat
	successfulFeeds int
	failedFeeds     int
	lastFetchTime   *time.Time

	totalFetched       int
	totalProcessed     int
	successfullyScored int
	failedScoring      int
	aiScored           int
	keywordScored      int

	isProcessing       bool
	queueLength        int
	lastProcessingTime *time.Time
	processingStart    time.Time
	processingTimes    []time.Duration

	startedAt     time.Time
	quotaExceeded bool
}

func NewTracker() *Tracker {
	return &Tracker{
		feedStats: make(map[string]*FeedStat),
		startedAt: time.Now(),
	}
}

func (t *Tracker) RecordFeedAttempt(url string, category model.Category) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.feedStats[url]; !ok {
		t.feedStats[url] = &FeedStat{URL: url, Category: category}
	}
}

func (t *Tracker) RecordFeedSuccess(url string, articleCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stat, ok := t.feedStats[url]
	if !ok {
		return
	}
	now := time.Now()
	stat.LastSuccess = &now
	stat.TotalArticles += articleCount
	stat.SuccessCount++
	t.successfulFeeds++
	t.lastFetchTime = &now
}

func (t *Tracker) RecordFeedError(url string, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stat, ok := t.feedStats[url]
	if !ok {
		return
	}
	stat.LastError = message
	stat.ErrorCount++
	t.failedFeeds++
}

func (t *Tracker) RecordArticleFetched(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalFetched += count
}

func (t *Tracker) RecordArticleProcessed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalProcessed++
}

// RecordScoringSuccess counts a resolved score. Method is "ai" or "keyword".
func (t *Tracker) RecordScoringSuccess(method string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.successfullyScored++
	if method == "ai" {
		t.aiScored++
	} else {
		t.keywordScored++
	}
}

func (t *Tracker) RecordScoringFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failedScoring++
}

func (t *Tracker) RecordQuotaExceeded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quotaExceeded = true
}

// SetProcessingState records whether the scoring queue is being drained and
// how many items remain. Closing a processing window updates the rolling
// average over the last 10 drains.
func (t *Tracker) SetProcessingState(isProcessing bool, queueLength int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasProcessing := t.isProcessing
	t.isProcessing = isProcessing
	t.queueLength = queueLength

	if isProcessing {
		if !wasProcessing {
			t.processingStart = time.Now()
		}
		return
	}

	if wasProcessing && !t.processingStart.IsZero() {
		t.processingTimes = append(t.processingTimes, time.Since(t.processingStart))
		if len(t.processingTimes) > 10 {
			t.processingTimes = t.processingTimes[1:]
		}
		now := time.Now()
		t.lastProcessingTime = &now
	}
}

func (t *Tracker) QuotaExceeded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quotaExceeded
}

// Snapshot returns a copy of the current statistics.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Snapshot
	s.RSSFeeds.TotalFeeds = len(t.feedStats)
	s.RSSFeeds.SuccessfulFeeds = t.successfulFeeds
	s.RSSFeeds.FailedFeeds = t.failedFeeds
	s.RSSFeeds.LastFetchTime = t.lastFetchTime
	s.RSSFeeds.FeedStats = make(map[string]FeedStat, len(t.feedStats))
	for url, stat := range t.feedStats {
		s.RSSFeeds.FeedStats[url] = *stat
	}

	s.Articles.TotalFetched = t.totalFetched
	s.Articles.TotalProcessed = t.totalProcessed
	s.Articles.SuccessfullyScored = t.successfullyScored
	s.Articles.FailedScoring = t.failedScoring
	s.Articles.AIScoredCount = t.aiScored
	s.Articles.KeywordScoredCount = t.keywordScored

	s.Processing.IsCurrentlyProcessing = t.isProcessing
	s.Processing.QueueLength = t.queueLength
	s.Processing.LastProcessingTime = t.lastProcessingTime
	if len(t.processingTimes) > 0 {
		var total time.Duration
		for _, d := range t.processingTimes {
			total += d
		}
		s.Processing.AverageProcessingMs = float64(total.Milliseconds()) / float64(len(t.processingTimes))
	}

	s.System.UptimeSeconds = time.Since(t.startedAt).Seconds()
	s.System.QuotaExceeded = t.quotaExceeded
	return s
}

// Reset clears all counters. Uptime is preserved.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.feedStats = make(map[string]*FeedStat)
	t.successfulFeeds = 0
	t.failedFeeds = 0
	t.lastFetchTime = nil
	t.totalFetched = 0
	t.totalProcessed = 0
	t.successfullyScored = 0
	t.failedScoring = 0
	t.aiScored = 0
	t.keywordScored = 0
	t.isProcessing = false
	t.queueLength = 0
	t.lastProcessingTime = nil
	t.processingTimes = nil
	t.quotaExceeded = false
}
