package stack

import "sync"

// Counter is a mutex-protected monotonically increasing integer
// generator. The parser uses one instance, scoped to the whole
// compilation, to hand out unique jump-target ids; the code generator
// uses a separate instance to hand out unique data-segment label ids
// for string literals.
type Counter struct {
	lock sync.Mutex
	next int
}

// NewCounter returns a Counter whose first Next() call returns 0.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the next value in the sequence, starting at 0.
func (c *Counter) Next() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	v := c.next
	c.next++
	return v
}
