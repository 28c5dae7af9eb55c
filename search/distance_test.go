package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 0},
		{"empty a", "", "memory", 6},
		{"empty b", "memory", "", 6},
		{"equal strings", "memory", "memory", 0},
		{"single substitution", "cat", "bat", 1},
		{"single insertion", "cat", "cart", 1},
		{"single deletion", "cart", "cat", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"completely different", "abc", "xyz", 3},
		{"case sensitive", "Memory", "memory", 1},
		{"unicode runes", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "beach trip", "a longer string with spaces"} {
		assert.Zero(t, EditDistance(s, s), "EditDistance(%q, %q)", s, s)
	}
}

func TestEditDistance_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "memory"},
		{"home", "house"},
		{"beach", "birthday"},
	}
	for _, p := range pairs {
		assert.Equal(t, EditDistance(p[0], p[1]), EditDistance(p[1], p[0]),
			"EditDistance(%q, %q) not symmetric", p[0], p[1])
	}
}

func TestEditDistance_TriangleInequality(t *testing.T) {
	triples := [][3]string{
		{"kitten", "sitting", "mitten"},
		{"", "abc", "abcdef"},
		{"home", "house", "horse"},
		{"beach trip", "beach", "trip"},
	}
	for _, tr := range triples {
		ab := EditDistance(tr[0], tr[1])
		bc := EditDistance(tr[1], tr[2])
		ac := EditDistance(tr[0], tr[2])
		assert.LessOrEqual(t, ac, ab+bc,
			"triangle inequality violated for %q, %q, %q", tr[0], tr[1], tr[2])
	}
}
