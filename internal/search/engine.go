package search

import (
	"sort"
	"time"

	"github.com/receitaro/receitaro/internal/models"
)

// Default search options.
const (
	DefaultMaxResults = 50
	DefaultMinScore   = 0.1
)

// Options control one search invocation.
type Options struct {
	MaxResults int
	MinScore   float64
	Boosts     FieldBoosts
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		MaxResults: DefaultMaxResults,
		MinScore:   DefaultMinScore,
		Boosts:     DefaultFieldBoosts(),
	}
}

// applyDefaults fills unset option fields.
func (o *Options) applyDefaults() {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	o.Boosts.ApplyDefaults()
}

// Engine scores candidate recipes against a parsed query and returns a
// ranked, truncated result list. It is a pure function of its inputs: same
// candidates, query, and options always produce the same output.
type Engine struct {
	now func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineClock overrides the clock used for recency scoring.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a search engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search scores every candidate, keeps those at or above MinScore, sorts by
// score descending (stable: ties keep input order), and truncates to
// MaxResults. Nil candidates are skipped, never propagated as errors.
func (e *Engine) Search(candidates []*models.Recipe, query *ParsedQuery, opts Options) []*models.SearchResult {
	opts.applyDefaults()
	scorer := NewScorer(opts.Boosts, WithClock(e.now))

	results := make([]*models.SearchResult, 0, len(candidates))
	for _, recipe := range candidates {
		if recipe == nil {
			continue
		}
		result := scorer.Score(recipe, query)
		if result.Score >= opts.MinScore {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	for i, r := range results {
		r.Rank = i + 1
	}
	return results
}
