// Package feed retrieves and parses RSS/Atom feeds into articles.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
	"github.com/mmcdole/gofeed"
)

const (
	userAgent    = "Dynameter/1.0"
	fetchTimeout = 10 * time.Second
	maxItems     = 10
)

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch retrieves one feed URL and returns at most the 10 most recent items
// as articles for the given category. Items without a resolvable link are
// dropped. Network, timeout, and parse failures surface as a single error;
// the caller isolates them per URL.
//
// Safe for concurrent use: gofeed.Parser initializes translator state
// lazily on first parse, so a parser is built per call and only the HTTP
// client is shared.
func (f *Fetcher) Fetch(ctx context.Context, url string, category model.Category) ([]model.Article, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = f.client

	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	now := time.Now()
	items := parsed.Items
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		articles = append(articles, model.Article{
			Title:       title,
			Link:        item.Link,
			PubDate:     pub,
			Description: description,
			Category:    category,
		})
	}
	return articles, nil
}
