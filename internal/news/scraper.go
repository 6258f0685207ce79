// Package news fetches recent headlines for a symbol to enrich the
// insight prompt. Headlines are strictly optional: every failure path
// degrades to "no headlines" and never reaches the caller.
package news

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/types"
)

// Scraper collects headlines from the configured sources
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines one news source configuration
type Source struct {
	Name      string
	URL       string // contains a {symbol} placeholder
	Selectors HeadlineSelectors
}

// HeadlineSelectors defines CSS selectors for extracting headline data
type HeadlineSelectors struct {
	Container string
	Title     string
	Link      string
}

// NewScraper creates a new headline scraper with default sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: getDefaultSources(),
		timeout: timeout,
	}
}

// getDefaultSources returns the financial news sources to scrape
func getDefaultSources() []Source {
	return []Source{
		{
			Name: "Yahoo Finance",
			URL:  "https://finance.yahoo.com/quote/{symbol}/news",
			Selectors: HeadlineSelectors{
				Container: "li.stream-item",
				Title:     "h3",
				Link:      "a",
			},
		},
		{
			Name: "MarketWatch",
			URL:  "https://www.marketwatch.com/investing/stock/{symbol}",
			Selectors: HeadlineSelectors{
				Container: "div.article__content",
				Title:     "h3.article__headline a",
				Link:      "h3.article__headline a",
			},
		},
	}
}

// Scrape fetches up to max headlines for the symbol across all sources.
// Sources that fail are skipped.
func (s *Scraper) Scrape(ctx context.Context, symbol string, max int) []types.Headline {
	headlines := []types.Headline{}

	for _, src := range s.sources {
		if len(headlines) >= max {
			break
		}
		found := s.scrapeSource(ctx, src, symbol, max-len(headlines))
		headlines = append(headlines, found...)
	}

	logger.Debug(ctx, "Headline scrape finished", "symbol", symbol, "headlines", len(headlines))
	return headlines
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, symbol string, max int) []types.Headline {
	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(s.timeout)

	found := []types.Headline{}
	c.OnHTML(src.Selectors.Container, func(e *colly.HTMLElement) {
		if len(found) >= max {
			return
		}
		title := strings.TrimSpace(e.ChildText(src.Selectors.Title))
		if title == "" {
			return
		}
		found = append(found, types.Headline{
			Source: src.Name,
			Title:  title,
			URL:    e.Request.AbsoluteURL(e.ChildAttr(src.Selectors.Link, "href")),
		})
	})

	url := strings.ReplaceAll(src.URL, "{symbol}", symbol)
	if err := c.Visit(url); err != nil {
		logger.Warn(ctx, "Headline source failed", "source", src.Name, "symbol", symbol, "error", err)
		return nil
	}
	return found
}
