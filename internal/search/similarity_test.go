package search

import (
	"math"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"bolo", "bolos", 1},
		{"açaí", "acai", 2},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("both empty: got %f, want 1.0", got)
	}
	if got := Similarity("", "x"); got != 0.0 {
		t.Errorf("one empty: got %f, want 0.0", got)
	}
	if got := Similarity("chocolate", "chocolate"); got != 1.0 {
		t.Errorf("identical: got %f, want 1.0", got)
	}

	got := Similarity("abc", "abd")
	if got <= 0 || got >= 1 {
		t.Errorf("Similarity(abc, abd) = %f, want strictly between 0 and 1", got)
	}
	want := 1.0 - 1.0/3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity(abc, abd) = %f, want %f", got, want)
	}
}

func TestFuzzyContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"exact", "Bolo de Chocolate", "chocolate", true},
		{"case insensitive", "Bolo de Chocolate", "BOLO", true},
		{"diacritic insensitive", "Pão de Açúcar", "acucar", true},
		{"accented needle", "Bolo Facil", "fácil", true},
		{"no match", "Salada", "chocolate", false},
		{"empty needle", "Bolo", "", false},
		{"empty haystack", "", "bolo", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FuzzyContains(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("FuzzyContains(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}
