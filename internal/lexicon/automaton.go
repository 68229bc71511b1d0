// Package lexicon stores the vocabulary as a prefix automaton. Every
// accepting path is a word and carries an identifier that stays fixed once
// assigned. The automaton is the state space of the candidate search.
package lexicon

import (
	"slices"
)

const (
	// Delimiter is the reserved symbol that ends a word on insertion. It is
	// also the identifier of the empty word, which pads training windows at
	// the start of a document.
	Delimiter = 0

	// NoID marks a node that no word ends at.
	NoID = -1
)

// State is a handle to an automaton node.
type State int

// Root is the initial state.
const Root State = 0

type node struct {
	next      map[rune]State
	id        int
	accepting bool
}

// Automaton is an append-only trie over runes. It is not safe for
// concurrent mutation; once training is over it may be read from many
// goroutines.
type Automaton struct {
	nodes []node
	ids   *Counter
	words map[int][]rune
}

// New returns an empty automaton whose first word gets identifier 1.
func New() *Automaton {
	return &Automaton{
		nodes: []node{{next: map[rune]State{}, id: Delimiter}},
		ids:   NewCounter(Delimiter + 1),
		words: map[int][]rune{Delimiter: {}},
	}
}

// Insert adds word and returns its identifier. Inserting a word that is
// already present returns the existing identifier. A word that is empty, or
// starts with the delimiter, maps to Delimiter and is never accepting.
func (a *Automaton) Insert(word []rune) int {
	word = trim(word)
	if len(word) == 0 {
		return Delimiter
	}
	s := a.extend(word)
	n := &a.nodes[s]
	if !n.accepting {
		n.id = a.ids.Next()
		n.accepting = true
		a.words[n.id] = slices.Clone(word)
	}
	return n.id
}

// InsertWithID adds word with a fixed identifier. It is meant for restoring
// a saved lexicon; the counter is only moved forward so later inserts can
// not reuse id.
func (a *Automaton) InsertWithID(word []rune, id int) {
	word = trim(word)
	if len(word) == 0 {
		return
	}
	s := a.extend(word)
	n := &a.nodes[s]
	if n.accepting && n.id != id {
		delete(a.words, n.id)
	}
	n.id = id
	n.accepting = true
	a.words[id] = slices.Clone(word)
	a.ids.Observe(id)
}

// Contains reports whether word is a complete word of the lexicon.
func (a *Automaton) Contains(word []rune) bool {
	s, ok := a.walk(word)
	return ok && a.nodes[s].accepting
}

// ID returns the identifier of word. The empty word resolves to Delimiter.
func (a *Automaton) ID(word []rune) (int, bool) {
	if len(word) == 0 {
		return Delimiter, true
	}
	s, ok := a.walk(word)
	if !ok || !a.nodes[s].accepting {
		return NoID, false
	}
	return a.nodes[s].id, true
}

// Word returns the symbols of the word with identifier id.
func (a *Automaton) Word(id int) ([]rune, bool) {
	w, ok := a.words[id]
	return w, ok
}

// Transitions returns the outgoing symbols of s in ascending order.
func (a *Automaton) Transitions(s State) []rune {
	next := a.nodes[s].next
	out := make([]rune, 0, len(next))
	for r := range next {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Child follows the transition labelled r from s.
func (a *Automaton) Child(s State, r rune) (State, bool) {
	c, ok := a.nodes[s].next[r]
	return c, ok
}

// Accepting reports whether a word ends at s.
func (a *Automaton) Accepting(s State) bool {
	return a.nodes[s].accepting
}

// StateID returns the identifier held by s, NoID for inner nodes.
func (a *Automaton) StateID(s State) int {
	return a.nodes[s].id
}

// Len returns the number of words.
func (a *Automaton) Len() int {
	return len(a.words) - 1
}

// States returns the number of nodes including the root.
func (a *Automaton) States() int {
	return len(a.nodes)
}

// NextID returns the identifier the next new word would receive.
func (a *Automaton) NextID() int {
	return a.ids.Peek()
}

// SetNextID moves the identifier counter, used when restoring.
func (a *Automaton) SetNextID(id int) {
	a.ids.Observe(id - 1)
}

// Walk calls fn for every word in lexicographic rune order.
func (a *Automaton) Walk(fn func(word []rune, id int)) {
	a.walkFrom(Root, nil, fn)
}

func (a *Automaton) walkFrom(s State, prefix []rune, fn func([]rune, int)) {
	if a.nodes[s].accepting {
		fn(prefix, a.nodes[s].id)
	}
	for _, r := range a.Transitions(s) {
		a.walkFrom(a.nodes[s].next[r], append(prefix, r), fn)
	}
}

func (a *Automaton) extend(word []rune) State {
	s := Root
	for _, r := range word {
		c, ok := a.nodes[s].next[r]
		if !ok {
			c = State(len(a.nodes))
			a.nodes = append(a.nodes, node{next: map[rune]State{}, id: NoID})
			a.nodes[s].next[r] = c
		}
		s = c
	}
	return s
}

func (a *Automaton) walk(word []rune) (State, bool) {
	s := Root
	for _, r := range word {
		c, ok := a.nodes[s].next[r]
		if !ok {
			return Root, false
		}
		s = c
	}
	return s, true
}

func trim(word []rune) []rune {
	if i := slices.Index(word, Delimiter); i >= 0 {
		return word[:i]
	}
	return word
}
