package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCutoff(t *testing.T) {
	tests := []struct {
		name      string
		incorrect string
		candidate string
		threshold int
		want      int
	}{
		{"prefix_matches", "cta", "c", 2, 0},
		{"partial_with_error", "cta", "ca", 2, 1},
		{"full_word", "cta", "cat", 2, 1},
		{"too_far", "cta", "xyz", 1, 3},
		{"empty_incorrect_window", "", "a", 2, Infinite},
		{"candidate_too_long", "ab", "abcdef", 1, Infinite},
		{"zero_threshold_exact_prefix", "cat", "ca", 0, 0},
		{"zero_threshold_mismatch", "cat", "co", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cutoff([]rune(tt.incorrect), []rune(tt.candidate), tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutoffMatchesPrefixMinimum(t *testing.T) {
	incorrect := []rune("sittin")
	for _, cand := range []string{"s", "si", "kit", "sitt", "sitting", "mitten"} {
		c := []rune(cand)
		for th := 0; th <= 3; th++ {
			lo := max(1, len(c)-th)
			hi := min(len(incorrect), len(c)+th)
			want := Infinite
			for i := lo; i <= hi; i++ {
				want = min(want, PrefixLevenshtein(incorrect, i, c))
			}
			assert.Equal(t, want, Cutoff(incorrect, c, th), "candidate %q threshold %d", cand, th)
		}
	}
}

// A complete word within t edits must never be pruned on the way to it.
func TestCutoffIsAdmissible(t *testing.T) {
	pairs := [][2]string{{"cta", "cat"}, {"teh", "the"}, {"mta", "mat"}, {"sittin", "sitting"}, {"on", "one"}}
	for _, p := range pairs {
		incorrect, word := []rune(p[0]), []rune(p[1])
		d := Levenshtein(incorrect, word)
		for th := d; th <= d+1; th++ {
			for n := 1; n <= len(word); n++ {
				assert.LessOrEqual(t, Cutoff(incorrect, word[:n], th), th, "%q prefix %q threshold %d", p[0], string(word[:n]), th)
			}
		}
	}
}
