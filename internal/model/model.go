// Package model ties the lexicon automaton and the back-off trie together:
// it feeds training text into both, finalizes them and saves or restores the
// pair.
package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"ngramcorrector/internal/backoff"
	"ngramcorrector/internal/lexicon"
	"ngramcorrector/internal/tokenizer"
)

// DefaultOrder is the context length used when none is configured.
const DefaultOrder = 3

var (
	ErrInvalidOrder = errors.New("n-gram order must be positive")
	ErrFinalized    = errors.New("model is already finalized")
)

// Model is a trained lexicon plus language model. Training methods must not
// be called concurrently; after Finalize the model is read-only and may be
// shared.
type Model struct {
	order     int
	lex       *lexicon.Automaton
	lm        *backoff.Trie
	extra     []string
	finalized bool
	log       logrus.FieldLogger
	lmOpts    []backoff.Option
}

// Option configures a Model.
type Option func(*Model)

// WithExtraWords adds words that are inserted into the lexicon at Finalize,
// each observed as a one-word sentence.
func WithExtraWords(words []string) Option {
	return func(m *Model) {
		m.extra = append(m.extra, words...)
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithWeighting replaces the back-off weighting of the language model.
func WithWeighting(w backoff.Weighting) Option {
	return func(m *Model) {
		m.lmOpts = append(m.lmOpts, backoff.WithWeighting(w))
	}
}

// New returns an empty model for contexts of order words.
func New(order int, opts ...Option) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	m := &Model{
		order: order,
		lex:   lexicon.New(),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lm = backoff.New(order, m.lmOpts...)
	return m, nil
}

// Order returns the n-gram order.
func (m *Model) Order() int { return m.order }

// Lexicon returns the word automaton.
func (m *Model) Lexicon() *lexicon.Automaton { return m.lex }

// LanguageModel returns the back-off trie.
func (m *Model) LanguageModel() *backoff.Trie { return m.lm }

// Finalized reports whether Finalize has run.
func (m *Model) Finalized() bool { return m.finalized }

// Train adds one document given as a word sequence. The context window
// starts out filled with lexicon.Delimiter.
func (m *Model) Train(words []string) error {
	if m.finalized {
		return ErrFinalized
	}
	w := newWindow(m.order)
	for _, word := range words {
		if word == "" {
			continue
		}
		m.lm.Observe(w.push(m.lex.Insert([]rune(word))))
	}
	return nil
}

// TrainReader tokenizes r and trains on it as one document.
func (m *Model) TrainReader(r io.Reader) error {
	if m.finalized {
		return ErrFinalized
	}
	w := newWindow(m.order)
	n := 0
	err := tokenizer.ReadWords(r, func(word string) {
		m.lm.Observe(w.push(m.lex.Insert([]rune(word))))
		n++
	})
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}
	m.log.WithField("tokens", n).Debug("corpus read")
	return nil
}

// AddWord inserts word and observes it as a sentence of its own. It returns
// the word identifier.
func (m *Model) AddWord(word string) (int, error) {
	if m.finalized {
		return lexicon.NoID, ErrFinalized
	}
	w := newWindow(m.order)
	id := m.lex.Insert([]rune(word))
	if id == lexicon.Delimiter {
		return id, nil
	}
	m.lm.Observe(w.push(id))
	return id, nil
}

// Finalize adds the extra words, scores the language model and freezes the
// model. Calling it twice is harmless.
func (m *Model) Finalize() {
	if m.finalized {
		return
	}
	for _, word := range m.extra {
		if m.lex.Contains([]rune(word)) {
			continue
		}
		if _, err := m.AddWord(word); err != nil {
			m.log.WithError(err).WithField("word", word).Warn("skipping extra word")
		}
	}
	m.lm.LockAndScore()
	m.finalized = true
	m.log.WithFields(logrus.Fields{
		"order":  m.order,
		"words":  m.lex.Len(),
		"states": m.lex.States(),
		"tokens": m.lm.Count(nil),
	}).Info("model finalized")
}

// Contains reports whether word is in the lexicon.
func (m *Model) Contains(word string) bool {
	return m.lex.Contains([]rune(word))
}

// LogProbability looks up the language model for words given most recent
// first. Unknown words take the lexicon.NoID slot.
func (m *Model) LogProbability(words ...string) float64 {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i], _ = m.lex.ID([]rune(w))
	}
	return m.lm.LogProbability(ids)
}

// window holds the last order word ids, most recent first.
type window struct {
	ids []int
}

func newWindow(order int) *window {
	ids := make([]int, order)
	for i := range ids {
		ids[i] = lexicon.Delimiter
	}
	return &window{ids: ids}
}

func (w *window) push(id int) []int {
	copy(w.ids[1:], w.ids[:len(w.ids)-1])
	w.ids[0] = id
	return w.ids
}
