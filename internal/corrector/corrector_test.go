package corrector

import (
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngramcorrector/internal/model"
	"ngramcorrector/pkg/options"
)

func newCorrector(t *testing.T, text string, opts ...options.Options) *Corrector {
	t.Helper()
	l, _ := test.NewNullLogger()
	m, err := model.New(2, model.WithLogger(l))
	require.NoError(t, err)
	require.NoError(t, m.Train(strings.Fields(text)))
	m.Finalize()
	return New(m.Lexicon(), m.LanguageModel(), append([]options.Options{options.WithLogger(l)}, opts...)...)
}

func words(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Word
	}
	return out
}

const catSentence = "the cat sat on the mat"

func TestCorrectWordTransposition(t *testing.T) {
	c := newCorrector(t, catSentence)

	got := c.CorrectWord("cta")
	require.Len(t, got, 1)
	assert.Equal(t, "cat", got[0].Word)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 2, got[0].Distance)

	want := -(math.Log(1.0/6.0) + math.Log(0.5) + 20*math.Log(1.5))
	assert.InDelta(t, want, got[0].Score, 1e-9)
}

func TestCorrectKnownWordRanksFirst(t *testing.T) {
	c := newCorrector(t, catSentence)

	got := c.CorrectWordInContext([]string{"", "the"})
	require.NotEmpty(t, got)
	assert.Equal(t, "the", got[0].Word)
	assert.Equal(t, 0, got[0].Distance)
	assert.InDelta(t, -(math.Log(0.5) + ExactMatchBonus), got[0].Score, 1e-9)
}

func TestCorrectUsesContext(t *testing.T) {
	c := newCorrector(t, catSentence)

	assert.Equal(t, []string{"cat", "sat", "mat"}, words(c.CorrectWord("hat")))
	assert.Equal(t, []string{"cat", "mat", "sat"}, words(c.CorrectWordInContext([]string{"the", "hat"})))
}

func TestCorrectUnknownContextWord(t *testing.T) {
	c := newCorrector(t, catSentence)

	plain := c.CorrectWord("hat")
	unknown := c.CorrectWordInContext([]string{"zebra", "hat"})
	require.Equal(t, len(plain), len(unknown))
	for i := range plain {
		assert.Equal(t, plain[i].Word, unknown[i].Word)
		assert.InDelta(t, plain[i].Score, unknown[i].Score, 1e-12)
	}
}

func TestCorrectEmptyResult(t *testing.T) {
	c := newCorrector(t, catSentence)

	assert.Empty(t, c.CorrectWord("xyzzyq"))
	assert.Empty(t, c.CorrectWord(""))
	assert.Empty(t, c.CorrectWordInContext(nil))
}

func TestCorrectBestFirstNoDuplicates(t *testing.T) {
	c := newCorrector(t, "a ab abc abd b ba bad bat cab cat at", options.WithExhaustiveSearch())

	got := c.CorrectWord("abx")
	require.NotEmpty(t, got)
	seen := map[int]bool{}
	for i, s := range got {
		assert.False(t, seen[s.ID], "duplicate %q", s.Word)
		seen[s.ID] = true
		assert.LessOrEqual(t, s.Distance, 2)
		if i > 0 {
			prev := got[i-1]
			assert.True(t, prev.Score < s.Score || prev.Score == s.Score && prev.ID < s.ID,
				"%q before %q", prev.Word, s.Word)
		}
	}
}

func TestThresholdWidening(t *testing.T) {
	text := "cat cut cot cit cet act"

	// Five words one edit away stop the search before distance two.
	c := newCorrector(t, text)
	for _, s := range c.CorrectWord("cbt") {
		assert.LessOrEqual(t, s.Distance, 1)
	}

	c = newCorrector(t, text, options.WithMinCandidates(100))
	assert.Contains(t, words(c.CorrectWord("cbt")), "act")
}

func TestInLexiconThreshold(t *testing.T) {
	// Known words are only compared against words one edit away.
	c := newCorrector(t, "cat cart carts")
	assert.Equal(t, []string{"cat", "cart"}, words(c.CorrectWord("cat")))

	c = newCorrector(t, "cat cart carts", options.WithInLexiconThreshold(0))
	assert.Equal(t, []string{"cat"}, words(c.CorrectWord("cat")))
}

func TestCustomScorer(t *testing.T) {
	// Rank purely by distance.
	byDistance := ScoreFunc(func(d int, _ float64) float64 { return float64(d) })
	c := newCorrector(t, catSentence, options.WithScorer(byDistance))

	got := c.CorrectWord("mat")
	require.NotEmpty(t, got)
	assert.Equal(t, "mat", got[0].Word)
	assert.Equal(t, 0.0, got[0].Score)
}

func TestCorrectText(t *testing.T) {
	c := newCorrector(t, catSentence)

	res := c.CorrectText("the cta sat")
	assert.Equal(t, "the cta sat", res.Original)
	assert.Equal(t, "the cat sat", res.Corrected)
	require.Contains(t, res.Suggestions, 2)
	assert.Equal(t, SuggestionInfo{Token: "cta", Suggestions: []string{"cat"}, Decision: DecisionReplace}, res.Suggestions[2])
	assert.Len(t, res.Suggestions, 1)
}

func TestCorrectTextCase(t *testing.T) {
	c := newCorrector(t, catSentence, options.WithIgnoreCase())
	assert.Equal(t, "The Cat sat, on the MAT!", c.CorrectText("The Cta sat, on the MTA!").Corrected)

	c = newCorrector(t, catSentence, options.WithIgnoreCase(), options.WithoutPreserveCase())
	assert.Equal(t, "The cat", c.CorrectText("The Cta").Corrected)
}

func TestCorrectTextAlternatives(t *testing.T) {
	c := newCorrector(t, catSentence)

	res := c.CorrectText("the hat")
	assert.Equal(t, "the cat", res.Corrected)
	assert.Equal(t, []string{"the mat"}, res.Alternatives)
	assert.Equal(t, []string{"cat", "mat", "sat"}, res.Suggestions[2].Suggestions)
}

func TestCorrectTextMinWordLength(t *testing.T) {
	c := newCorrector(t, catSentence, options.WithMinWordLength(4))
	res := c.CorrectText("the cta")
	assert.Equal(t, "the cta", res.Corrected)
	assert.Empty(t, res.Suggestions)
}

func TestMatchCase(t *testing.T) {
	tests := []struct{ orig, repl, want string }{
		{"cta", "cat", "cat"},
		{"Cta", "cat", "Cat"},
		{"CTA", "cat", "CAT"},
		{"C", "a", "A"},
		{"cTa", "cat", "cat"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchCase(tt.orig, tt.repl), tt.orig)
	}
}

func TestOflazerScorer(t *testing.T) {
	s := OflazerScorer{}
	assert.Equal(t, -(-2.0 + ExactMatchBonus), s.Score(0, -2))
	assert.InDelta(t, -(-2.0 + 20*math.Log(2)), s.Score(1, -2), 1e-12)
	assert.InDelta(t, -(-2.0 + 20*math.Log(1.5)), s.Score(2, -2), 1e-12)
	assert.True(t, math.IsInf(s.Score(1, math.Inf(-1)), 1))
	assert.Equal(t, -(ExactMatchFloor + ExactMatchBonus), s.Score(0, math.Inf(-1)))
}

// zeroCountLM reports no mass for one word, as a restored id:0 record does.
type zeroCountLM struct {
	LanguageModel
	id int
}

func (lm zeroCountLM) LogProbability(ids []int) float64 {
	if ids[0] == lm.id {
		return math.Inf(-1)
	}
	return lm.LanguageModel.LogProbability(ids)
}

func TestExactMatchWithoutCountsRanksFirst(t *testing.T) {
	l, _ := test.NewNullLogger()
	m, err := model.New(2, model.WithLogger(l))
	require.NoError(t, err)
	require.NoError(t, m.Train(strings.Fields(catSentence)))
	m.Finalize()
	id, ok := m.Lexicon().ID([]rune("cat"))
	require.True(t, ok)

	c := New(m.Lexicon(), zeroCountLM{LanguageModel: m.LanguageModel(), id: id}, options.WithLogger(l))
	got := c.CorrectWord("cat")
	require.NotEmpty(t, got)
	assert.Equal(t, "cat", got[0].Word)
	assert.False(t, math.IsInf(got[0].Score, 0))
	assert.Equal(t, []string{"cat", "sat", "mat"}, words(got))
}
