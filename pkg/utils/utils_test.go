package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello..."},
		{"hello", 0, "hello"},
		{"hello", -1, "hello"},
		{"", 5, ""},
		// "ç" is two bytes; a cut inside it must back up to the rune start.
		{"açúcar", 2, "a..."},
		{"açúcar", 3, "aç..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestTruncate_AlwaysValidUTF8(t *testing.T) {
	s := strings.Repeat("pão fácil ", 20)
	for maxLen := 1; maxLen < len(s); maxLen++ {
		if got := Truncate(s, maxLen); !utf8.ValidString(got) {
			t.Fatalf("Truncate(len %d) produced invalid UTF-8: %q", maxLen, got)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.x); got != tt.want {
			t.Errorf("Clamp01(%f) = %f, want %f", tt.x, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		if err != nil {
			t.Fatalf("NewLogger(%v) failed: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%v) returned nil", debug)
		}
	}
}
