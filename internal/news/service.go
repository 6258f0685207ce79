package news

import (
	"context"
	"sync"
	"time"

	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/store"
	"wealth-dashboard/internal/types"
)

const scrapeTimeout = 10 * time.Second

// Service provides cached headline lookups for the insight prompt
type Service struct {
	scraper *Scraper
	maxPer  int
	ttl     time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	headlines []types.Headline
	fetchedAt time.Time
}

// NewService creates a headline service from the news configuration
func NewService(cfg store.NewsConfig) *Service {
	return &Service{
		scraper: NewScraper(scrapeTimeout),
		maxPer:  cfg.MaxHeadlines,
		ttl:     time.Duration(cfg.CacheMinutes) * time.Minute,
		cache:   make(map[string]cacheEntry),
	}
}

// Headlines returns cached headlines for the symbol, scraping on a miss.
// A scrape that yields nothing is cached too, so failing sources are
// not hammered on every request.
func (s *Service) Headlines(ctx context.Context, symbol string, max int) []types.Headline {
	if max <= 0 || max > s.maxPer {
		max = s.maxPer
	}

	if cached, ok := s.lookup(symbol); ok {
		logger.Debug(ctx, "Headline cache hit", "symbol", symbol, "headlines", len(cached))
		if len(cached) > max {
			return cached[:max]
		}
		return cached
	}

	headlines := s.scraper.Scrape(ctx, symbol, s.maxPer)
	s.put(symbol, headlines)

	if len(headlines) > max {
		return headlines[:max]
	}
	return headlines
}

func (s *Service) lookup(symbol string) ([]types.Headline, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[symbol]
	if !ok || time.Since(entry.fetchedAt) > s.ttl {
		return nil, false
	}
	return entry.headlines, true
}

func (s *Service) put(symbol string, headlines []types.Headline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[symbol] = cacheEntry{headlines: headlines, fetchedAt: time.Now()}
}
