package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "abc", "abc", 0},
		{"empty_both", "", "", 0},
		{"empty_a", "", "ab", 2},
		{"empty_b", "a", "", 1},
		{"substitution", "abc", "adc", 1},
		{"insertion", "ab", "abc", 1},
		{"deletion", "abc", "ab", 1},
		{"transposition_costs_two", "cta", "cat", 2},
		{"kitten_sitting", "kitten", "sitting", 3},
		{"unicode", "größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein([]rune(tt.a), []rune(tt.b)))
		})
	}
}

func TestLevenshteinProperties(t *testing.T) {
	words := []string{"", "a", "the", "then", "cat", "cta", "mat", "sat", "kitten", "sitting", "on"}
	for _, a := range words {
		ra := []rune(a)
		assert.Zero(t, Levenshtein(ra, ra), "d(%q,%q)", a, a)
		for _, b := range words {
			rb := []rune(b)
			dab := Levenshtein(ra, rb)
			assert.Equal(t, dab, Levenshtein(rb, ra), "symmetry %q %q", a, b)
			for _, c := range words {
				rc := []rune(c)
				assert.LessOrEqual(t, Levenshtein(ra, rc), dab+Levenshtein(rb, rc), "triangle %q %q %q", a, b, c)
			}
		}
	}
}

func TestLevenshteinOverIDs(t *testing.T) {
	assert.Equal(t, 1, Levenshtein([]int{1, 2, 3}, []int{1, 3}))
}

func TestPrefixLevenshtein(t *testing.T) {
	a := []rune("cta")
	b := []rune("ca")

	assert.Equal(t, 1, PrefixLevenshtein(a, 1, b))
	assert.Equal(t, 1, PrefixLevenshtein(a, 2, b))
	assert.Equal(t, 1, PrefixLevenshtein(a, 3, b))
	assert.Equal(t, 2, PrefixLevenshtein(a, 0, b))
	assert.Equal(t, Infinite, PrefixLevenshtein(a, 4, b))
	assert.Equal(t, Infinite, PrefixLevenshtein(a, -1, b))
}

func BenchmarkLevenshtein(b *testing.B) {
	x, y := []rune("waterlooville"), []rune("watrloovile")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Levenshtein(x, y)
	}
}
