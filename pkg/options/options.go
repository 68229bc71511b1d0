package options

import "github.com/sirupsen/logrus"

var DefaultOptions = CorrectorOptions{
	MaxThreshold:       2,
	InLexiconThreshold: 1,
	MinCandidates:      5,
	TopKSuggestions:    5,
	MinWordLength:      1,
	IgnoreCase:         false,
	PreserveCase:       true,
}

// Scorer turns an edit distance and a language model log-probability into
// a ranking score. Smaller scores rank first.
type Scorer interface {
	Score(distance int, logProb float64) float64
}

type CorrectorOptions struct {
	MaxThreshold       int // largest edit distance searched for unknown words
	InLexiconThreshold int // largest edit distance searched for known words
	MinCandidates      int // stop widening once this many candidates are found
	TopKSuggestions    int
	MinWordLength      int // shorter words are passed through by CorrectText
	IgnoreCase         bool
	PreserveCase       bool
	Scorer             Scorer
	Logger             logrus.FieldLogger
}

type Options interface {
	Apply(options *CorrectorOptions)
}

type FuncConfig struct {
	ops func(options *CorrectorOptions)
}

func (w FuncConfig) Apply(conf *CorrectorOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CorrectorOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithMaxThreshold(threshold int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MaxThreshold = threshold
	})
}

func WithInLexiconThreshold(threshold int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.InLexiconThreshold = threshold
	})
}

func WithMinCandidates(n int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MinCandidates = n
	})
}

func WithTopKSuggestions(k int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.TopKSuggestions = k
	})
}

func WithMinWordLength(n int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MinWordLength = n
	})
}

func WithIgnoreCase() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.IgnoreCase = true
	})
}

func WithoutPreserveCase() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.PreserveCase = false
	})
}

func WithScorer(s Scorer) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.Scorer = s
	})
}

func WithLogger(l logrus.FieldLogger) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.Logger = l
	})
}

// WithStrictSearch only looks one edit away, even for unknown words.
func WithStrictSearch() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MaxThreshold = 1
		options.InLexiconThreshold = 1
	})
}

// WithExhaustiveSearch never stops widening early.
func WithExhaustiveSearch() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.MinCandidates = int(^uint(0) >> 1)
	})
}
