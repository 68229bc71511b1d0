// Package backoff implements the n-gram language model: a trie over word
// identifiers, most recent word first, that counts contexts during training
// and turns the counts into back-off weighted log-probabilities once.
package backoff

import (
	"math"
	"slices"
)

var (
	// LogZero is the log-probability of an impossible context.
	LogZero = math.Inf(-1)

	// Unscored is what LogProbability reports before LockAndScore.
	Unscored = math.Inf(1)
)

type node struct {
	count     int
	logProb   float64
	remaining int
	children  map[int]*node
}

func newNode(remaining int) *node {
	return &node{
		logProb:   Unscored,
		remaining: remaining,
		children:  make(map[int]*node),
	}
}

// Trie is the back-off language model. The root stands for the empty
// context and is never scored itself.
type Trie struct {
	root   *node
	order  int
	locked bool
	weight Weighting
}

// Option configures a Trie.
type Option func(*Trie)

// WithWeighting replaces the default HalfOverRemaining weighting.
func WithWeighting(w Weighting) Option {
	return func(t *Trie) {
		t.weight = w
	}
}

// New returns an empty trie for contexts of up to order words. order must
// be positive; callers validate it.
func New(order int, opts ...Option) *Trie {
	t := &Trie{
		root:   newNode(order),
		order:  order,
		weight: HalfOverRemaining{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Order returns the maximum context length.
func (t *Trie) Order() int {
	return t.order
}

// Locked reports whether LockAndScore has run.
func (t *Trie) Locked() bool {
	return t.locked
}

// Observe records one occurrence of ids (most recent word first). Every
// node on the path, up to Order levels, is incremented by one.
func (t *Trie) Observe(ids []int) {
	if t.locked {
		return
	}
	n := t.root
	n.count++
	for _, id := range ids[:min(len(ids), t.order)] {
		n = n.child(id)
		n.count++
	}
}

// ObserveWithCount sets the count of the node at the end of ids without
// touching the nodes above it. It restores counts that were aggregated by an
// earlier training run.
func (t *Trie) ObserveWithCount(ids []int, count int) {
	if t.locked || len(ids) == 0 || len(ids) > t.order {
		return
	}
	n := t.root
	for _, id := range ids {
		n = n.child(id)
	}
	n.count = count
}

// LockAndScore converts counts into log-probabilities and freezes the trie.
// Calling it again has no effect.
func (t *Trie) LockAndScore() {
	if t.locked {
		return
	}
	t.locked = true

	total := 0
	for _, c := range t.root.children {
		total += c.count
	}
	t.root.count = total
	t.root.logProb = LogZero
	for _, c := range t.root.children {
		t.score(c, total)
	}
}

func (t *Trie) score(n *node, parentCount int) {
	n.logProb = logRatio(n.count, parentCount) + math.Log(t.weight.Weight(n.remaining))
	for _, c := range n.children {
		t.score(c, n.count)
	}
}

// LogProbability follows ids from the root and returns the log-probability
// of the longest matching context. When the first identifier is unknown the
// result is LogZero. Before LockAndScore it returns Unscored.
func (t *Trie) LogProbability(ids []int) float64 {
	if !t.locked {
		return Unscored
	}
	n := t.root
	for _, id := range ids {
		c, ok := n.children[id]
		if !ok {
			break
		}
		n = c
	}
	return n.logProb
}

// Count returns the raw count stored for ids, 0 if the context was never
// seen.
func (t *Trie) Count(ids []int) int {
	n := t.root
	for _, id := range ids {
		c, ok := n.children[id]
		if !ok {
			return 0
		}
		n = c
	}
	return n.count
}

// Walk calls fn for every node below the root with its context and raw
// count. Children are visited in ascending identifier order.
func (t *Trie) Walk(fn func(ids []int, count int)) {
	walk(t.root, nil, fn)
}

func walk(n *node, prefix []int, fn func([]int, int)) {
	keys := make([]int, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c := n.children[k]
		ctx := append(prefix, k)
		fn(ctx, c.count)
		walk(c, ctx, fn)
	}
}

func (n *node) child(id int) *node {
	c, ok := n.children[id]
	if !ok {
		c = newNode(n.remaining - 1)
		n.children[id] = c
	}
	return c
}

func logRatio(count, parent int) float64 {
	if count <= 0 || parent <= 0 {
		return LogZero
	}
	return math.Log(float64(count)) - math.Log(float64(parent))
}
