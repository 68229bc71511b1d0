package backoff

// Weighting gives the back-off factor of a node from the number of context
// levels left below it. Nodes holding the full context have remaining == 0.
type Weighting interface {
	Weight(remaining int) float64
}

// HalfOverRemaining is 1 for a full context and 0.5/remaining otherwise, so
// shorter contexts are discounted more.
type HalfOverRemaining struct{}

func (HalfOverRemaining) Weight(remaining int) float64 {
	if remaining <= 0 {
		return 1
	}
	return 0.5 / float64(remaining)
}

// WeightFunc adapts a function to Weighting.
type WeightFunc func(remaining int) float64

func (f WeightFunc) Weight(remaining int) float64 {
	return f(remaining)
}
