package search

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/receitaro/receitaro/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScorer_TitleMatch(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("bolo de chocolate fácil")
	recipe := &models.Recipe{Title: "Bolo de Chocolate"}

	result := scorer.Score(recipe, query)

	// Title field: "bolo" and "chocolate" each contribute an exact substring
	// match plus a perfect token similarity, then the distinct-match bonus:
	// (1 + 0.5) + (1 + 0.5) + 0.3*2 = 3.6, times the title boost of 3.
	want := 10.8
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", result.Score, want)
	}
	if len(result.MatchedFields) != 1 || result.MatchedFields[0] != "title" {
		t.Errorf("MatchedFields = %v, want [title]", result.MatchedFields)
	}
	if got := result.Highlights["title"]; got != "<mark>Bolo</mark> de <mark>Chocolate</mark>" {
		t.Errorf("title highlight = %q", got)
	}
}

func TestScorer_ExactPhraseBonus(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("bolo de chocolate fácil")

	partial := scorer.Score(&models.Recipe{Title: "Bolo de Chocolate"}, query)
	exact := scorer.Score(&models.Recipe{Title: "Bolo de Chocolate Fácil"}, query)

	if exact.Score <= partial.Score {
		t.Errorf("exact phrase %f should outscore partial %f", exact.Score, partial.Score)
	}
	if !hasFactor(exact, "exact title match") {
		t.Errorf("RelevanceFactors = %v, want exact title match", exact.RelevanceFactors)
	}
	if hasFactor(partial, "exact title match") {
		t.Errorf("partial match should not carry the phrase bonus: %v", partial.RelevanceFactors)
	}
}

func TestScorer_EmptyQueryUsesPopularityAndRecency(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	scorer := NewScorer(DefaultFieldBoosts(), WithClock(fixedClock(now)))
	query := NewParser().Parse("")

	recipe := &models.Recipe{Title: "Pudim", Rating: 5, CreatedAt: now}
	result := scorer.Score(recipe, query)

	// Popularity 1.0 * 0.5 plus a full recency window * 0.3.
	want := 0.8
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", result.Score, want)
	}
	if !hasFactor(result, "popular recipe") || !hasFactor(result, "recently added") {
		t.Errorf("RelevanceFactors = %v", result.RelevanceFactors)
	}
}

func TestScorer_RecencyBoost(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	scorer := NewScorer(DefaultFieldBoosts(), WithClock(fixedClock(now)))
	query := NewParser().Parse("")

	tests := []struct {
		name      string
		createdAt time.Time
		want      float64
	}{
		{"today", now, 0.3},
		{"fifteen days old", now.AddDate(0, 0, -15), 0.15},
		{"window edge", now.AddDate(0, 0, -30), 0},
		{"older than window", now.AddDate(0, 0, -90), 0},
		{"zero time", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(&models.Recipe{Title: "x", CreatedAt: tt.createdAt}, query)
			if math.Abs(result.Score-tt.want) > 1e-9 {
				t.Errorf("Score = %f, want %f", result.Score, tt.want)
			}
		})
	}
}

func TestScorer_FieldBoostOrdering(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("chocolate")

	inTitle := scorer.Score(&models.Recipe{Title: "Chocolate"}, query)
	inIngredients := scorer.Score(&models.Recipe{Title: "Bolo", Ingredients: []string{"chocolate"}}, query)
	inTags := scorer.Score(&models.Recipe{Title: "Bolo", Tags: []string{"chocolate"}}, query)
	inDescription := scorer.Score(&models.Recipe{Title: "Bolo", Description: "chocolate"}, query)

	if !(inTitle.Score > inIngredients.Score &&
		inIngredients.Score > inTags.Score &&
		inTags.Score > inDescription.Score) {
		t.Errorf("boost ordering violated: title=%f ingredients=%f tags=%f description=%f",
			inTitle.Score, inIngredients.Score, inTags.Score, inDescription.Score)
	}
}

func TestScorer_MultipleIngredientMatches(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("chocolate ovos")

	recipe := &models.Recipe{
		Title:       "Bolo",
		Ingredients: []string{"chocolate em pó", "farinha de trigo", "ovos"},
	}
	result := scorer.Score(recipe, query)
	if !hasFactor(result, "multiple ingredient matches") {
		t.Errorf("RelevanceFactors = %v, want multiple ingredient matches", result.RelevanceFactors)
	}

	single := scorer.Score(&models.Recipe{Title: "Bolo", Ingredients: []string{"ovos"}}, query)
	if hasFactor(single, "multiple ingredient matches") {
		t.Errorf("single ingredient match should not add the factor: %v", single.RelevanceFactors)
	}
}

func TestScorer_NearMatch(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("bolos")

	// "bolo" is one edit from "bolos": similarity 0.8, above the threshold,
	// and "bolo" is a substring of "bolos" going the other way around is not,
	// so only the near-match term applies.
	result := scorer.Score(&models.Recipe{Title: "bolo"}, query)
	want := 0.5 * 0.8 * 3
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", result.Score, want)
	}
}

func TestScorer_HighlightKeywordInsideMarkup(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("salada frutos do mar")

	result := scorer.Score(&models.Recipe{Title: "Salada de Frutos do Mar"}, query)

	want := "<mark>Salada</mark> de <mark>Frutos</mark> do <mark>Mar</mark>"
	if got := result.Highlights["title"]; got != want {
		t.Errorf("title highlight = %q, want %q", got, want)
	}
}

func TestHighlightTerms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{"single keyword", "Bolo de Chocolate", []string{"bolo"}, "<mark>Bolo</mark> de Chocolate"},
		{"no keywords", "Bolo", nil, "Bolo"},
		{"keyword matching earlier markup", "Mar aberto", []string{"mar", "aberto"},
			"<mark>Mar</mark> <mark>aberto</mark>"},
		{"longer keyword wins over prefix", "bolos de festa", []string{"bolo", "bolos"},
			"<mark>bolos</mark> de festa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := highlightTerms(tt.text, tt.keywords); got != tt.want {
				t.Errorf("highlightTerms(%q, %v) = %q, want %q", tt.text, tt.keywords, got, tt.want)
			}
		})
	}
}

func TestScorer_DescriptionSnippetTruncated(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	query := NewParser().Parse("chocolate")

	recipe := &models.Recipe{
		Title:       "Bolo",
		Description: "chocolate " + strings.Repeat("a", 300),
	}
	result := scorer.Score(recipe, query)

	snippet, ok := result.Highlights["description"]
	if !ok {
		t.Fatal("expected a description highlight")
	}
	if !strings.Contains(snippet, "<mark>chocolate</mark>") {
		t.Errorf("snippet missing highlight: %q", snippet)
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("snippet should be truncated: %q", snippet)
	}
}

func TestScorer_NilInputs(t *testing.T) {
	scorer := NewScorer(DefaultFieldBoosts())
	if got := scorer.Score(nil, NewParser().Parse("bolo")); got.Score != 0 {
		t.Errorf("nil recipe: Score = %f, want 0", got.Score)
	}
	if got := scorer.Score(&models.Recipe{Title: "Bolo"}, nil); got.Score != 0 {
		t.Errorf("nil query: Score = %f, want 0", got.Score)
	}
}

func TestFieldBoosts_ApplyDefaults(t *testing.T) {
	b := FieldBoosts{Title: 10}
	b.ApplyDefaults()
	if b.Title != 10 {
		t.Errorf("Title = %f, want 10", b.Title)
	}
	if b.Description != 1 || b.Ingredients != 2 || b.Tags != 1.5 {
		t.Errorf("defaults not applied: %+v", b)
	}
}

func hasFactor(r *models.SearchResult, factor string) bool {
	for _, f := range r.RelevanceFactors {
		if f == factor {
			return true
		}
	}
	return false
}
