// Package candidate holds scored correction candidates: a priority queue
// that keeps at most one entry per word identifier.
package candidate

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emirpasic/gods/trees/binaryheap"
)

// Candidate is a scored word. Smaller scores are better.
type Candidate struct {
	ID       int
	Score    float64
	Distance int
}

// Less orders by score, then by identifier.
func Less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.ID < b.ID
}

func compare(x, y interface{}) int {
	a, b := x.(Candidate), y.(Candidate)
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	}
	return 0
}

// Queue is a set of candidates iterated best first. Iteration consumes it.
type Queue struct {
	heap *binaryheap.Heap
	seen mapset.Set[int]
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		heap: binaryheap.NewWith(compare),
		seen: mapset.NewThreadUnsafeSet[int](),
	}
}

// Offer adds c unless a candidate with the same ID was offered before. It
// reports whether c was added.
func (q *Queue) Offer(c Candidate) bool {
	if !q.seen.Add(c.ID) {
		return false
	}
	q.heap.Push(c)
	return true
}

// Contains reports whether a candidate with id was offered.
func (q *Queue) Contains(id int) bool {
	return q.seen.Contains(id)
}

// Len returns the number of candidates not yet popped.
func (q *Queue) Len() int {
	return q.heap.Size()
}

// Pop removes and returns the best candidate.
func (q *Queue) Pop() (Candidate, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return Candidate{}, false
	}
	return v.(Candidate), true
}

// Drain pops every remaining candidate, best first.
func (q *Queue) Drain() []Candidate {
	out := make([]Candidate, 0, q.Len())
	for {
		c, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}
