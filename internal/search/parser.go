package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/receitaro/receitaro/internal/models"
)

// ParsedQuery holds the structured form of a raw search query. It is built
// once by Parser.Parse and not mutated afterwards.
type ParsedQuery struct {
	// Original is the query exactly as typed.
	Original string
	// Normalized is the query after Normalize.
	Normalized string
	// Keywords are normalized tokens longer than 2 runes with stop words
	// removed, in first-occurrence order. Duplicates are kept.
	Keywords []string
	// Numbers are the numeric literals found in the original text, in order.
	Numbers []float64
	// Filters are structured constraints inferred from the query text.
	Filters models.SearchFilters
	// Suggestions are up to 5 alternative query strings.
	Suggestions []string
	// PrefersSlow is set when the query asks for slow-cooked dishes. It is a
	// relevance hint, not a filter.
	PrefersSlow bool
}

// stopWords are Portuguese articles, prepositions, and conjunctions excluded
// from keywords. Tokens of 2 runes or fewer are dropped regardless.
var stopWords = map[string]struct{}{
	"com": {}, "sem": {}, "para": {}, "por": {}, "que": {},
	"uma": {}, "uns": {}, "umas": {}, "mais": {}, "menos": {},
	"como": {}, "muito": {}, "bem": {}, "aos": {}, "das": {},
	"dos": {}, "nas": {}, "nos": {}, "pela": {}, "pelo": {}, "ate": {},
}

var numberRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// filterRule pairs a text matcher with its effect on the parsed query.
// Rules are evaluated in order; for single-valued fields (MaxTimeMinutes,
// Difficulty) the last matching rule wins, while list fields accumulate.
type filterRule struct {
	pattern *regexp.Regexp
	apply   func(match []string, q *ParsedQuery)
}

var filterRules = []filterRule{
	// Time hints. "rápido" implies a 30-minute ceiling; explicit durations
	// override it because they are evaluated later.
	{regexp.MustCompile(`\b(rápido|rapido|rapidinho|express[oa]?|prático|pratico)\b`),
		func(_ []string, q *ParsedQuery) { q.Filters.MaxTimeMinutes = 30 }},
	{regexp.MustCompile(`\b(demorado|lento|cozimento lento|fogo baixo)\b`),
		func(_ []string, q *ParsedQuery) { q.PrefersSlow = true }},
	// The leading guard keeps the digits from matching the fractional part
	// of a decimal such as "1,5 h".
	{regexp.MustCompile(`(?:^|[^\d.,])(\d+)\s*min`),
		func(m []string, q *ParsedQuery) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				q.Filters.MaxTimeMinutes = n
			}
		}},
	{regexp.MustCompile(`(?:^|[^\d.,])(\d+)\s*h(ora)?s?\b`),
		func(m []string, q *ParsedQuery) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				q.Filters.MaxTimeMinutes = n * 60
			}
		}},

	// Difficulty vocabulary.
	{regexp.MustCompile(`\b(fácil|facil|simples|iniciante)\b`),
		func(_ []string, q *ParsedQuery) { q.Filters.Difficulty = []int{1} }},
	{regexp.MustCompile(`\b(médio|medio|intermediário|intermediario)\b`),
		func(_ []string, q *ParsedQuery) { q.Filters.Difficulty = []int{2} }},
	{regexp.MustCompile(`\b(difícil|dificil|avançado|avancado|elaborado)\b`),
		func(_ []string, q *ParsedQuery) { q.Filters.Difficulty = []int{3} }},

	// Dietary vocabulary; multiple matches accumulate.
	{regexp.MustCompile(`\bvegetarian[oa]s?\b`), addDietary("vegetariano")},
	{regexp.MustCompile(`\bvegan[oa]s?\b`), addDietary("vegano")},
	{regexp.MustCompile(`sem\s+gl[úu]ten`), addDietary("sem gluten")},
	{regexp.MustCompile(`sem\s+lactose`), addDietary("sem lactose")},
	{regexp.MustCompile(`low\s*carb`), addDietary("low carb")},
	{regexp.MustCompile(`\b(fit|saudável|saudavel)\b`), addDietary("fit")},

	// Meal-type vocabulary; multiple matches accumulate.
	{regexp.MustCompile(`caf[ée]\s+da\s+manh[ãa]`), addMealType("cafe da manha")},
	{regexp.MustCompile(`\balmo[çc]o\b`), addMealType("almoco")},
	{regexp.MustCompile(`\bjantar\b`), addMealType("jantar")},
	{regexp.MustCompile(`\b(sobremesas?|doces?)\b`), addMealType("sobremesa")},
	{regexp.MustCompile(`\blanches?\b`), addMealType("lanche")},
}

func addDietary(value string) func([]string, *ParsedQuery) {
	return func(_ []string, q *ParsedQuery) {
		q.Filters.DietaryTypes = appendUnique(q.Filters.DietaryTypes, value)
	}
}

func addMealType(value string) func([]string, *ParsedQuery) {
	return func(_ []string, q *ParsedQuery) {
		q.Filters.MealTypes = appendUnique(q.Filters.MealTypes, value)
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// qualifierPhrases are common recipe-domain qualifiers offered as query
// expansions when absent from the query.
var qualifierPhrases = []string{"receita de", "como fazer", "fácil", "rápido", "caseiro"}

const maxSuggestions = 5

// Parser turns raw query strings into ParsedQuery values. Parsing never fails:
// empty input yields a query with empty keyword, number, and suggestion lists.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse analyzes rawQuery and returns its structured form.
func (p *Parser) Parse(rawQuery string) *ParsedQuery {
	q := &ParsedQuery{
		Original:   rawQuery,
		Normalized: Normalize(rawQuery),
	}

	q.Keywords = p.extractKeywords(q.Normalized)
	q.Numbers = p.extractNumbers(rawQuery)
	p.extractFilters(rawQuery, q)
	q.Suggestions = p.generateSuggestions(q)

	return q
}

// extractKeywords splits the normalized query and drops short tokens and stop
// words. First-occurrence order is preserved and duplicates are kept.
func (p *Parser) extractKeywords(normalized string) []string {
	tokens := strings.Fields(normalized)
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// extractNumbers scans the original (non-normalized) text for integer and
// decimal literals, preserving their order of appearance.
func (p *Parser) extractNumbers(raw string) []float64 {
	matches := numberRegex.FindAllString(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	numbers := make([]float64, 0, len(matches))
	for _, m := range matches {
		m = strings.ReplaceAll(m, ",", ".")
		if n, err := strconv.ParseFloat(m, 64); err == nil {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// extractFilters applies the filter rule table to the lower-cased original
// text. Diacritics are kept because the vocabulary is locale-specific.
func (p *Parser) extractFilters(raw string, q *ParsedQuery) {
	text := strings.ToLower(raw)
	for _, rule := range filterRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			rule.apply(m, q)
		}
	}
}

// generateSuggestions proposes alternative queries: qualifier phrases not
// already present prefixed onto the query, then naive singular/plural toggles
// of longer keywords. Capped at maxSuggestions in generation order.
func (p *Parser) generateSuggestions(q *ParsedQuery) []string {
	if q.Normalized == "" {
		return nil
	}

	var suggestions []string
	for _, phrase := range qualifierPhrases {
		if len(suggestions) >= maxSuggestions {
			return suggestions
		}
		if !strings.Contains(q.Normalized, Normalize(phrase)) {
			suggestions = append(suggestions, phrase+" "+q.Original)
		}
	}

	for _, kw := range q.Keywords {
		if len(suggestions) >= maxSuggestions {
			return suggestions
		}
		if utf8.RuneCountInString(kw) <= 3 {
			continue
		}
		toggled := kw + "s"
		if strings.HasSuffix(kw, "s") {
			toggled = strings.TrimSuffix(kw, "s")
		}
		suggestions = append(suggestions, substituteKeyword(q.Original, q.Normalized, kw, toggled))
	}

	return suggestions
}

// substituteKeyword replaces the first occurrence of kw in the original query,
// falling back to the normalized query when accents prevent a direct match.
func substituteKeyword(original, normalized, kw, toggled string) string {
	lower := strings.ToLower(original)
	if idx := strings.Index(lower, kw); idx >= 0 {
		return original[:idx] + toggled + original[idx+len(kw):]
	}
	return strings.Replace(normalized, kw, toggled, 1)
}
