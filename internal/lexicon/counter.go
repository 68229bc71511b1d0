package lexicon

// Counter hands out word identifiers. It is owned by one Automaton and only
// ever moves forward.
type Counter struct {
	next int
}

// NewCounter returns a counter whose first identifier is start.
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Next returns a fresh identifier.
func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}

// Peek returns the identifier Next would return.
func (c *Counter) Peek() int {
	return c.next
}

// Observe records that id is in use so it is never handed out again.
func (c *Counter) Observe(id int) {
	if id >= c.next {
		c.next = id + 1
	}
}
