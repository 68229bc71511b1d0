package corrector

import (
	"math"

	"ngramcorrector/pkg/options"
)

// Scorer ranks a candidate from its edit distance and its log-probability
// in context. Smaller is better.
type Scorer = options.Scorer

// ExactMatchBonus is added to the log-probability of a candidate that is
// the input word itself.
const ExactMatchBonus = 1000.0

// OflazerScorer negates the log-probability plus a closeness bonus of
// 20·ln(1/d + 1), or ExactMatchBonus when d is 0.
type OflazerScorer struct{}

// ExactMatchFloor replaces a log-probability of -Inf for the input word
// itself, so a known word with no counts still outranks its neighbours.
const ExactMatchFloor = -100.0

func (OflazerScorer) Score(distance int, logProb float64) float64 {
	if distance <= 0 && math.IsInf(logProb, -1) {
		logProb = ExactMatchFloor
	}
	return -(logProb + closeness(distance))
}

func closeness(d int) float64 {
	if d <= 0 {
		return ExactMatchBonus
	}
	return 20 * math.Log(1/float64(d)+1)
}

// ScoreFunc adapts a function to Scorer.
type ScoreFunc func(distance int, logProb float64) float64

func (f ScoreFunc) Score(distance int, logProb float64) float64 {
	return f(distance, logProb)
}
