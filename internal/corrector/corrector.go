// Package corrector searches the lexicon automaton for words within a small
// edit distance of a misspelled token and ranks them with the back-off
// language model.
package corrector

import (
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"ngramcorrector/internal/candidate"
	"ngramcorrector/internal/distance"
	"ngramcorrector/internal/lexicon"
	"ngramcorrector/internal/tokenizer"
	"ngramcorrector/pkg/options"
)

// Unknown stands in for a context word that is not in the lexicon.
const Unknown = -1

// Lexicon is the read side of the word automaton.
type Lexicon interface {
	Contains(word []rune) bool
	ID(word []rune) (int, bool)
	Word(id int) ([]rune, bool)
	Transitions(s lexicon.State) []rune
	Child(s lexicon.State, r rune) (lexicon.State, bool)
	Accepting(s lexicon.State) bool
	StateID(s lexicon.State) int
}

// LanguageModel scores a context given most recent word first.
type LanguageModel interface {
	LogProbability(ids []int) float64
	Order() int
}

// Corrector is read-only after New and may be shared between goroutines as
// long as the lexicon and language model are not modified.
type Corrector struct {
	lex  Lexicon
	lm   LanguageModel
	opts options.CorrectorOptions
	log  logrus.FieldLogger
}

func New(lex Lexicon, lm LanguageModel, opts ...options.Options) *Corrector {
	o := options.DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	if o.Scorer == nil {
		o.Scorer = OflazerScorer{}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return &Corrector{lex: lex, lm: lm, opts: o, log: o.Logger}
}

// Options returns the effective configuration.
func (c *Corrector) Options() options.CorrectorOptions {
	return c.opts
}

// CorrectWordInContext proposes corrections for the last element of
// context. The elements before it are the preceding words, oldest first.
// The result is best first and may be empty.
func (c *Corrector) CorrectWordInContext(context []string) []Suggestion {
	if len(context) == 0 {
		return nil
	}
	n := len(context)
	word := []rune(context[n-1])

	// Slot 0 receives each candidate, slot i the word i positions back.
	ids := make([]int, n)
	for i := 1; i < n; i++ {
		id, ok := c.lex.ID([]rune(context[n-1-i]))
		if !ok {
			id = Unknown
		}
		ids[i] = id
	}

	maxT := c.opts.MaxThreshold
	if c.lex.Contains(word) {
		maxT = min(maxT, c.opts.InLexiconThreshold)
	}

	q := candidate.NewQueue()
	for t := 0; t <= maxT; t++ {
		c.search(word, ids, t, q)
		if q.Len() >= c.opts.MinCandidates {
			break
		}
	}

	out := make([]Suggestion, 0, q.Len())
	for _, cand := range q.Drain() {
		w, _ := c.lex.Word(cand.ID)
		out = append(out, Suggestion{
			Word:     string(w),
			ID:       cand.ID,
			Score:    cand.Score,
			Distance: cand.Distance,
		})
	}
	c.log.WithFields(logrus.Fields{
		"word":       string(word),
		"threshold":  maxT,
		"candidates": len(out),
	}).Debug("corrected word")
	return out
}

// CorrectWord is CorrectWordInContext without preceding words.
func (c *Corrector) CorrectWord(word string) []Suggestion {
	return c.CorrectWordInContext([]string{word})
}

type agendaItem struct {
	prefix []rune
	state  lexicon.State
}

// search walks the automaton depth first from the root. A branch is kept
// while the cutoff distance of its prefix stays within t; every accepting
// state within t of word becomes a candidate.
func (c *Corrector) search(word []rune, ids []int, t int, q *candidate.Queue) {
	agenda := []agendaItem{{state: lexicon.Root}}
	for len(agenda) > 0 {
		item := agenda[len(agenda)-1]
		agenda = agenda[:len(agenda)-1]

		for _, r := range c.lex.Transitions(item.state) {
			next := append(slices.Clip(item.prefix), r)
			if distance.Cutoff(word, next, t) > t {
				continue
			}
			s, _ := c.lex.Child(item.state, r)
			agenda = append(agenda, agendaItem{prefix: next, state: s})
		}

		if !c.lex.Accepting(item.state) {
			continue
		}
		d := distance.Levenshtein(word, item.prefix)
		if d > t {
			continue
		}
		id := c.lex.StateID(item.state)
		if q.Contains(id) {
			continue
		}
		ids[0] = id
		q.Offer(candidate.Candidate{
			ID:       id,
			Score:    c.opts.Scorer.Score(d, c.lm.LogProbability(ids)),
			Distance: d,
		})
	}
}

// CorrectText corrects every word of text using the words before it as
// context. Words missing from the lexicon are replaced by their best
// candidate; known words only get hints when a better ranked candidate
// exists.
func (c *Corrector) CorrectText(text string) CorrectionResult {
	tokens := tokenizer.Split(text)
	out := slices.Clone(tokens)
	res := CorrectionResult{
		Original:    text,
		Suggestions: make(map[int]SuggestionInfo),
	}

	type alternative struct {
		idx  int
		word string
	}
	var alts []alternative

	window := make([]string, max(c.lm.Order(), 1))
	for i, tok := range tokens {
		if !tok.IsWord {
			continue
		}
		w := tok.Text
		if c.opts.IgnoreCase {
			w = strings.ToLower(w)
		}
		copy(window, window[1:])
		window[len(window)-1] = w

		if len([]rune(w)) < c.opts.MinWordLength {
			continue
		}
		suggs := c.CorrectWordInContext(window)
		if len(suggs) == 0 || suggs[0].Word == w {
			continue
		}

		decision := DecisionHint
		chosen := w
		if !c.lex.Contains([]rune(w)) {
			decision = DecisionReplace
			chosen = suggs[0].Word
		}

		var list []string
		for _, s := range suggs {
			if len(list) == c.opts.TopKSuggestions {
				break
			}
			if s.Word == w {
				continue
			}
			list = append(list, c.recase(tok.Text, s.Word))
		}
		res.Suggestions[i] = SuggestionInfo{Token: tok.Text, Suggestions: list, Decision: decision}

		if decision == DecisionReplace {
			out[i].Text = c.recase(tok.Text, chosen)
			window[len(window)-1] = chosen
			if len(suggs) > 1 {
				alts = append(alts, alternative{idx: i, word: c.recase(tok.Text, suggs[1].Word)})
			}
		}
	}

	res.Corrected = tokenizer.Join(out)
	for _, a := range alts {
		if len(res.Alternatives) == c.opts.TopKSuggestions {
			break
		}
		alt := slices.Clone(out)
		alt[a.idx].Text = a.word
		res.Alternatives = append(res.Alternatives, tokenizer.Join(alt))
	}
	return res
}

func (c *Corrector) recase(orig, repl string) string {
	if !c.opts.PreserveCase {
		return repl
	}
	return matchCase(orig, repl)
}
