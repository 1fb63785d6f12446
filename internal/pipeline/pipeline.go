// Package pipeline runs the recurring fetch-dedup-queue-score loop: feeds
// are fetched per category, new articles are cached and queued, and a single
// worker drains the queue through the scorer at a rate-limited pace.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lukeringworm/dynameter-deploy/internal/feed"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
	"github.com/lukeringworm/dynameter-deploy/internal/scorer"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
)

const (
	defaultCacheSize     = 20
	defaultQueueSize     = 512
	defaultFetchInterval = 15 * time.Minute
	defaultScoreGap      = time.Second
	scoreWindow          = 10
)

// MilestoneChecker is invoked after each completed cycle. The pipeline only
// logs its outcome.
type MilestoneChecker interface {
	CheckAndUpdate(ctx context.Context) (bool, error)
}

type Config struct {
	Feeds         map[model.Category][]string
	CacheSize     int
	QueueSize     int
	FetchInterval time.Duration
	ScoreGap      time.Duration
}

func (c *Config) applyDefaults() {
	if c.CacheSize <= 0 {
		c.CacheSize = defaultCacheSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.FetchInterval <= 0 {
		c.FetchInterval = defaultFetchInterval
	}
	if c.ScoreGap <= 0 {
		c.ScoreGap = defaultScoreGap
	}
}

type queueItem struct {
	article  model.Article
	category model.Category
}

// Pipeline owns all processing state: ledger, cache, and the scoring queue.
// One instance is created at startup and torn down with its context; there
// are no package-level statics.
type Pipeline struct {
	cfg        Config
	fetcher    *feed.Fetcher
	scorer     *scorer.Scorer
	cache      *Cache
	ledger     *Ledger
	stats      *stats.Tracker
	milestones MilestoneChecker
	limiter    *rate.Limiter

	queue chan queueItem

	// pending counts enqueued-but-unfinished items. The cond lets RunCycle
	// wait for the drain to finish before the milestone check.
	mu      sync.Mutex
	pending int
	idle    *sync.Cond
}

func New(cfg Config, fetcher *feed.Fetcher, sc *scorer.Scorer, tracker *stats.Tracker, milestones MilestoneChecker) *Pipeline {
	cfg.applyDefaults()
	p := &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		scorer:     sc,
		cache:      NewCache(cfg.CacheSize),
		ledger:     NewLedger(),
		stats:      tracker,
		milestones: milestones,
		limiter:    rate.NewLimiter(rate.Every(cfg.ScoreGap), 1),
		queue:      make(chan queueItem, cfg.QueueSize),
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Start launches the scoring worker and the fetch scheduler: one cycle
// immediately, then one per interval until the context is cancelled.
func (p *Pipeline) Start(ctx context.Context) {
	go p.worker(ctx)
	go func() {
		slog.Info("starting RSS scheduler", "interval", p.cfg.FetchInterval)
		p.runScheduled(ctx)
		ticker := time.NewTicker(p.cfg.FetchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.runScheduled(ctx)
			}
		}
	}()
}

// runScheduled wraps RunCycle so an orchestration panic is logged instead of
// crashing the process.
func (p *Pipeline) runScheduled(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("feed cycle panicked", "panic", r)
		}
	}()
	p.RunCycle(ctx)
}

// RunCycle fetches every configured feed, waits for the scoring queue to
// drain, then runs the milestone check. Concurrent cycles are not prevented
// at the fetch stage; the ledger keeps overlapping cycles from reprocessing
// the same article.
func (p *Pipeline) RunCycle(ctx context.Context) {
	slog.Info("starting RSS feed fetch")
	p.stats.SetProcessingState(true, p.queueLen())

	for _, category := range model.AllCategories() {
		for _, url := range p.cfg.Feeds[category] {
			p.stats.RecordFeedAttempt(url, category)
			if err := p.fetchFeed(ctx, url, category); err != nil {
				slog.Error("feed fetch failed", "url", url, "category", category, "error", err)
				p.stats.RecordFeedError(url, err.Error())
			}
		}
	}

	p.waitIdle(ctx)
	// A concurrent cycle may still have items in flight; report its queue
	// rather than declaring the pipeline idle.
	remaining := p.queueLen()
	p.stats.SetProcessingState(remaining > 0, remaining)

	if p.milestones != nil {
		updated, err := p.milestones.CheckAndUpdate(ctx)
		if err != nil {
			slog.Error("milestone check failed", "error", err)
		} else if updated {
			slog.Info("milestones updated, all targets achieved")
		}
	}
	slog.Info("feed cycle complete")
}

// fetchFeed processes one URL: new articles pass the ledger, enter the cache
// unprocessed, and are queued for scoring.
func (p *Pipeline) fetchFeed(ctx context.Context, url string, category model.Category) error {
	articles, err := p.fetcher.Fetch(ctx, url, category)
	if err != nil {
		return err
	}

	admitted := 0
	for _, article := range articles {
		if !p.ledger.Admit(article.Link) {
			continue
		}
		p.cache.Insert(category, article)
		p.enqueue(ctx, queueItem{article: article, category: category})
		admitted++
	}

	slog.Info("feed fetched", "url", url, "category", category, "new_articles", admitted)
	p.stats.RecordFeedSuccess(url, admitted)
	p.stats.RecordArticleFetched(admitted)
	return nil
}

func (p *Pipeline) enqueue(ctx context.Context, it queueItem) {
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()

	select {
	case p.queue <- it:
	case <-ctx.Done():
		p.taskDone()
	}
}

// worker is the single consumer of the scoring queue. Having exactly one
// worker makes drain mutual exclusion structural rather than flag-guarded.
func (p *Pipeline) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case it := <-p.queue:
			p.stats.SetProcessingState(true, p.queueLen())

			if err := p.limiter.Wait(ctx); err != nil {
				p.taskDone()
				return
			}

			res := p.scorer.Score(ctx, it.article)
			if !p.cache.SetResult(it.category, it.article.Link, res.ImpactScore, res.Summary) {
				slog.Warn("scored article no longer cached", "link", it.article.Link)
			}
			p.stats.RecordArticleProcessed()
			p.taskDone()

			remaining := p.queueLen()
			p.stats.SetProcessingState(remaining > 0, remaining)
		}
	}
}

func (p *Pipeline) taskDone() {
	p.mu.Lock()
	p.pending--
	if p.pending <= 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

func (p *Pipeline) queueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// waitIdle blocks until every queued item has been scored or the context is
// cancelled. The waiter goroutine checks the cancelled flag on every wakeup
// so it exits even when pending never drops.
func (p *Pipeline) waitIdle(ctx context.Context) {
	done := make(chan struct{})
	cancelled := false
	go func() {
		p.mu.Lock()
		for p.pending > 0 && !cancelled {
			p.idle.Wait()
		}
		p.mu.Unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		p.mu.Lock()
		cancelled = true
		p.idle.Broadcast()
		p.mu.Unlock()
		<-done
	}
}

// Articles returns one category's cached articles, newest first.
func (p *Pipeline) Articles(category model.Category) []model.Article {
	return p.cache.Articles(category)
}

// AllArticles returns the cached articles for all six categories.
func (p *Pipeline) AllArticles() map[model.Category][]model.Article {
	return p.cache.All()
}

// CategoryScores derives a 0-100 score per category from the mean impact of
// up to the 10 most recent processed articles: 50 + mean*10, clamped.
// Categories with no processed articles score 0. Pure read.
func (p *Pipeline) CategoryScores() map[model.Category]float64 {
	scores := make(map[model.Category]float64, len(model.AllCategories()))
	for _, category := range model.AllCategories() {
		var total, count int
		for _, a := range p.cache.Articles(category) {
			if !a.Processed || a.ImpactScore == nil {
				continue
			}
			total += *a.ImpactScore
			count++
			if count == scoreWindow {
				break
			}
		}
		if count == 0 {
			scores[category] = 0
			continue
		}
		mean := float64(total) / float64(count)
		score := 50 + mean*10
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
		scores[category] = score
	}
	return scores
}
