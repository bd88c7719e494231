package search

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/receitaro/receitaro/internal/models"
	"github.com/receitaro/receitaro/pkg/utils"
)

// Scoring constants for the additive relevance model.
const (
	exactMatchScore       = 1.0
	nearMatchWeight       = 0.5
	nearMatchThreshold    = 0.7
	multiMatchBonus       = 0.3
	exactPhraseBonus      = 2.0
	popularityWeight      = 0.5
	recencyWeight         = 0.3
	recencyWindowDays     = 30.0
	descriptionSnippetLen = 150
)

// FieldBoosts holds the multiplicative weight of each recipe field.
type FieldBoosts struct {
	Title       float64 `yaml:"title"`
	Description float64 `yaml:"description"`
	Ingredients float64 `yaml:"ingredients"`
	Tags        float64 `yaml:"tags"`
}

// DefaultFieldBoosts returns the default field weights.
func DefaultFieldBoosts() FieldBoosts {
	return FieldBoosts{Title: 3, Description: 1, Ingredients: 2, Tags: 1.5}
}

// ApplyDefaults fills in zero values with defaults.
func (b *FieldBoosts) ApplyDefaults() {
	defaults := DefaultFieldBoosts()
	if b.Title == 0 {
		b.Title = defaults.Title
	}
	if b.Description == 0 {
		b.Description = defaults.Description
	}
	if b.Ingredients == 0 {
		b.Ingredients = defaults.Ingredients
	}
	if b.Tags == 0 {
		b.Tags = defaults.Tags
	}
}

// Scorer computes relevance scores for recipes against a parsed query.
type Scorer struct {
	boosts FieldBoosts
	now    func() time.Time
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithClock overrides the clock used for the recency boost.
func WithClock(now func() time.Time) ScorerOption {
	return func(s *Scorer) { s.now = now }
}

// NewScorer creates a Scorer with the given field boosts. Zero boost fields
// fall back to the defaults.
func NewScorer(boosts FieldBoosts, opts ...ScorerOption) *Scorer {
	boosts.ApplyDefaults()
	s := &Scorer{boosts: boosts, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the relevance of recipe for query. The model is additive:
// per-field keyword scores weighted by boosts, plus an exact-phrase bonus, a
// popularity boost, and a recency boost. Scores are never negative and have
// no upper bound. A recipe with no keyword overlap can still score on the
// popularity and recency terms, which is intentional for near-empty queries.
func (s *Scorer) Score(recipe *models.Recipe, query *ParsedQuery) *models.SearchResult {
	result := &models.SearchResult{Recipe: recipe}
	if recipe == nil || query == nil {
		return result
	}

	fields := []struct {
		name  string
		text  string
		boost float64
	}{
		{"title", recipe.Title, s.boosts.Title},
		{"description", recipe.Description, s.boosts.Description},
		{"ingredients", strings.Join(recipe.Ingredients, " "), s.boosts.Ingredients},
		{"tags", strings.Join(recipe.Tags, " "), s.boosts.Tags},
	}

	total := 0.0
	for _, field := range fields {
		fieldScore, matched := s.scoreField(field.text, query.Keywords)
		total += fieldScore * field.boost
		if matched > 0 {
			result.MatchedFields = append(result.MatchedFields, field.name)
			result.Highlights = highlightField(result.Highlights, field.name, field.text, query.Keywords)
		}
		if field.name == "ingredients" && matched > 1 {
			result.RelevanceFactors = append(result.RelevanceFactors, "multiple ingredient matches")
		}
	}

	if FuzzyContains(recipe.Title, query.Original) {
		total += exactPhraseBonus
		result.RelevanceFactors = append(result.RelevanceFactors, "exact title match")
	}

	if pop := utils.Clamp01(recipe.Popularity()); pop > 0 {
		total += pop * popularityWeight
		result.RelevanceFactors = append(result.RelevanceFactors, "popular recipe")
	}

	if recency := s.recencyBoost(recipe.CreatedAt); recency > 0 {
		total += recency
		result.RelevanceFactors = append(result.RelevanceFactors, "recently added")
	}

	result.Score = total
	return result
}

// scoreField computes the unweighted score of one field: 1.0 per keyword
// contained in the normalized text, 0.5 x similarity for every field token
// within the near-match threshold of a keyword, and a multi-match bonus when
// two or more distinct keywords hit. Returns the score and the count of
// distinct exact-substring keyword matches.
func (s *Scorer) scoreField(text string, keywords []string) (float64, int) {
	if text == "" || len(keywords) == 0 {
		return 0, 0
	}

	normalized := Normalize(text)
	tokens := strings.Fields(normalized)

	score := 0.0
	matched := make(map[string]struct{})
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			score += exactMatchScore
			matched[kw] = struct{}{}
		}
		for _, token := range tokens {
			if sim := Similarity(token, kw); sim > nearMatchThreshold {
				score += nearMatchWeight * sim
			}
		}
	}

	if len(matched) > 1 {
		score += multiMatchBonus * float64(len(matched))
	}

	return score, len(matched)
}

// recencyBoost rewards recipes created within the last 30 days, scaling
// linearly down to zero at the window edge. Never negative.
func (s *Scorer) recencyBoost(createdAt time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := s.now().Sub(createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	fraction := (recencyWindowDays - days) / recencyWindowDays
	if fraction < 0 {
		return 0
	}
	return fraction * recencyWeight
}

// highlightField records the highlighted snippet for a matched field. The
// description is truncated before highlighting to keep snippets short.
func highlightField(highlights map[string]string, name, text string, keywords []string) map[string]string {
	if highlights == nil {
		highlights = make(map[string]string)
	}
	if name == "description" {
		text = utils.Truncate(text, descriptionSnippetLen)
	}
	highlights[name] = highlightTerms(text, keywords)
	return highlights
}

// highlightTerms wraps every case-insensitive keyword occurrence in text with
// <mark> tags. All keywords are matched in a single pass so a keyword can
// never match inside markup inserted for another, and longer keywords win
// over their prefixes.
func highlightTerms(text string, keywords []string) string {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			quoted = append(quoted, regexp.QuoteMeta(kw))
		}
	}
	if len(quoted) == 0 {
		return text
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })

	re, err := regexp.Compile(`(?i)` + strings.Join(quoted, "|"))
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "<mark>$0</mark>")
}
