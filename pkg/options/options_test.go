package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func apply(opts ...Options) CorrectorOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func TestDefaults(t *testing.T) {
	o := apply()
	assert.Equal(t, 2, o.MaxThreshold)
	assert.Equal(t, 1, o.InLexiconThreshold)
	assert.Equal(t, 5, o.MinCandidates)
	assert.True(t, o.PreserveCase)
	assert.Nil(t, o.Scorer)
}

func TestPresets(t *testing.T) {
	o := apply(WithStrictSearch())
	assert.Equal(t, 1, o.MaxThreshold)
	assert.Equal(t, 1, o.InLexiconThreshold)

	o = apply(WithMinCandidates(3), WithExhaustiveSearch())
	assert.Greater(t, o.MinCandidates, 1<<30)

	o = apply(WithIgnoreCase(), WithoutPreserveCase(), WithTopKSuggestions(2))
	assert.True(t, o.IgnoreCase)
	assert.False(t, o.PreserveCase)
	assert.Equal(t, 2, o.TopKSuggestions)

	// DefaultOptions is copied, never modified.
	assert.False(t, DefaultOptions.IgnoreCase)
}
