package reactive

import "sync"

// Observable is a value that changes over time. Subscribers are called with
// the current value right away and then with every later value.
type Observable[T any] interface {
	Value() T
	Subscribe(fn func(T)) *Subscription
}

// Cell holds a current value and notifies subscribers on change.
//
// Values set while a notification round is running are queued and delivered
// after the round completes, so every subscriber sees changes in the order
// they were applied.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	subs     []subscriber[T]
	nextID   int
	equal    func(a, b T) bool
	emitting bool
	pending  []T
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewCell creates a cell that notifies on every Set
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// NewDistinctCell creates a cell that ignores Set calls repeating the
// current value
func NewDistinctCell[T comparable](initial T) *Cell[T] {
	c := NewCell(initial)
	c.equal = func(a, b T) bool { return a == b }
	return c
}

// Value returns the current value
func (c *Cell[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v and notifies subscribers
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	if c.equal != nil && c.equal(c.value, v) {
		c.mu.Unlock()
		return
	}
	c.value = v
	if c.emitting {
		c.pending = append(c.pending, v)
		c.mu.Unlock()
		return
	}
	c.emitting = true

	for {
		subs := append([]subscriber[T](nil), c.subs...)
		c.mu.Unlock()

		for _, s := range subs {
			s.fn(v)
		}

		c.mu.Lock()
		if len(c.pending) == 0 {
			c.emitting = false
			c.mu.Unlock()
			return
		}
		v = c.pending[0]
		c.pending = c.pending[1:]
	}
}

// Update applies fn to the current value and stores the result
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.Value()))
}

// Subscribe registers fn and calls it once with the current value
func (c *Cell[T]) Subscribe(fn func(T)) *Subscription {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	current := c.value
	c.mu.Unlock()

	fn(current)

	return newSubscription(func() { c.unsubscribe(id) })
}

// ReadOnly hides Set from callers that should only observe the cell
func (c *Cell[T]) ReadOnly() Observable[T] {
	return readOnly[T]{c: c}
}

func (c *Cell[T]) unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

type readOnly[T any] struct {
	c *Cell[T]
}

func (r readOnly[T]) Value() T {
	return r.c.Value()
}

func (r readOnly[T]) Subscribe(fn func(T)) *Subscription {
	return r.c.Subscribe(fn)
}
