package pipeline

import (
	"sync"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// Ledger records every article link admitted for processing in this process
// lifetime. A restart resets it; recently seen links may be reprocessed.
type Ledger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Admit returns true and records the link if it has never been seen before.
// Subsequent calls with the same link return false.
func (l *Ledger) Admit(link string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[link]; ok {
		return false
	}
	l.seen[link] = struct{}{}
	return true
}

func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

// Cache holds the most recent articles per category, newest first, capped.
// Articles enter unprocessed; SetResult fills in score, summary, and the
// processed flag in one step so readers never observe a half-scored article.
type Cache struct {
	mu       sync.RWMutex
	articles map[model.Category][]model.Article
	cap      int
}

func NewCache(capacity int) *Cache {
	return &Cache{
		articles: make(map[model.Category][]model.Article),
		cap:      capacity,
	}
}

// Insert prepends the article to its category and truncates past the cap,
// evicting the oldest entries.
func (c *Cache) Insert(category model.Category, article model.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := append([]model.Article{article}, c.articles[category]...)
	if len(list) > c.cap {
		list = list[:c.cap]
	}
	c.articles[category] = list
}

// SetResult applies a scoring result to the cached article identified by
// link. Returns false if the article has already aged out of the cache.
func (c *Cache) SetResult(category model.Category, link string, score int, summary string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.articles[category]
	for i := range list {
		if list[i].Link == link {
			s := score
			list[i].ImpactScore = &s
			list[i].AISummary = summary
			list[i].Processed = true
			return true
		}
	}
	return false
}

// Articles returns a copy of one category's list, newest first.
func (c *Cache) Articles(category model.Category) []model.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := c.articles[category]
	out := make([]model.Article, len(list))
	copy(out, list)
	return out
}

// All returns a copy of every category's list. Categories with no articles
// map to an empty slice, not nil, so responses always carry all six keys.
func (c *Cache) All() map[model.Category][]model.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[model.Category][]model.Article, len(c.articles))
	for _, cat := range model.AllCategories() {
		list := c.articles[cat]
		cp := make([]model.Article, len(list))
		copy(cp, list)
		out[cat] = cp
	}
	return out
}

func (c *Cache) Len(category model.Category) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles[category])
}
