package distance

// Cutoff returns the smallest distance between candidate and any prefix of
// incorrect whose length lies in [max(1, n-t), min(m, n+t)], where m and n
// are the lengths of incorrect and candidate. A result above t means no
// extension of candidate can come within t edits of incorrect.
func Cutoff[S comparable](incorrect, candidate []S, t int) int {
	m, n := len(incorrect), len(candidate)
	lo := max(1, n-t)
	hi := min(m, n+t)
	if lo > hi {
		return Infinite
	}

	col := column(incorrect[:hi], candidate)
	best := Infinite
	for i := lo; i <= hi; i++ {
		if col[i] < best {
			best = col[i]
		}
	}
	return best
}
