package search

import (
	"fmt"
	"time"

	"github.com/receitaro/receitaro/internal/models"
)

// DefaultCacheTTL is how long search results stay cached.
const DefaultCacheTTL = 5 * time.Minute

// Searcher composes the query parser, result cache, and scoring engine into
// the single entry point callers invoke. The cache is injected so each owner
// (server, CLI, tests) controls its own instance; there is no package-level
// state.
type Searcher struct {
	parser *Parser
	engine *Engine
	cache  *ResultCache
	ttl    time.Duration
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithTTL overrides the result cache TTL.
func WithTTL(ttl time.Duration) SearcherOption {
	return func(s *Searcher) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSearcherClock overrides the clock used for recency scoring.
func WithSearcherClock(now func() time.Time) SearcherOption {
	return func(s *Searcher) { s.engine = NewEngine(WithEngineClock(now)) }
}

// NewSearcher creates a Searcher. A nil cache disables memoization.
func NewSearcher(cache *ResultCache, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		parser: NewParser(),
		engine: NewEngine(),
		cache:  cache,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search parses rawQuery, then returns ranked results for candidates, served
// from the cache when a fresh entry exists for the same query and options.
func (s *Searcher) Search(rawQuery string, candidates []*models.Recipe, opts Options) (*ParsedQuery, []*models.SearchResult) {
	opts.applyDefaults()
	query := s.parser.Parse(rawQuery)

	compute := func() []*models.SearchResult {
		return s.engine.Search(candidates, query, opts)
	}
	if s.cache == nil {
		return query, compute()
	}
	return query, s.cache.GetOrCompute(cacheKey(query.Normalized, opts), s.ttl, compute)
}

// InvalidateAll drops every cached result set. Call after the underlying
// recipe collection changes.
func (s *Searcher) InvalidateAll() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// cacheKey builds a stable key from the normalized query and the option set.
func cacheKey(normalized string, opts Options) string {
	return fmt.Sprintf("%s|max=%d|min=%g|boosts=%g,%g,%g,%g",
		normalized, opts.MaxResults, opts.MinScore,
		opts.Boosts.Title, opts.Boosts.Description, opts.Boosts.Ingredients, opts.Boosts.Tags)
}
