// Package distance implements the edit distances used by the candidate
// search: plain Levenshtein distance and the cutoff variant that bounds how
// far a partial candidate can still be from the misspelled word.
package distance

import "math"

// Infinite is returned when no distance can be computed, e.g. for an empty
// cutoff window or an out of range prefix.
const Infinite = math.MaxInt

// Levenshtein returns the minimum number of single symbol insertions,
// deletions or substitutions that turn a into b.
func Levenshtein[S comparable](a, b []S) int {
	return column(a, b)[len(a)]
}

// PrefixLevenshtein returns the distance between a[:i] and b.
func PrefixLevenshtein[S comparable](a []S, i int, b []S) int {
	if i < 0 || i > len(a) {
		return Infinite
	}
	return Levenshtein(a[:i], b)
}

// column fills the (m+1)x(n+1) table row by row and returns its last column:
// col[i] is the distance between a[:i] and b.
func column[S comparable](a, b []S) []int {
	m, n := len(a), len(b)
	col := make([]int, m+1)
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	col[0] = n
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min3(prev[j], curr[j-1], prev[j-1])
		}
		col[i] = curr[n]
		prev, curr = curr, prev
	}
	return col
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}
