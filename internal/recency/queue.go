package recency

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned when a queue is seeded with no items
	ErrInvalidCapacity = errors.New("recency queue needs at least one seed item")

	// ErrIndexOutOfRange is returned for indices outside [0, capacity)
	ErrIndexOutOfRange = errors.New("recency queue index out of range")
)

// Queue keeps the last N distinct values picked by the user.
//
// A Queue is an immutable value: every mutating operation returns a new
// snapshot and leaves the receiver untouched, so a holder that swaps its
// reference on change never exposes a half-updated queue to observers.
type Queue[T comparable] struct {
	items []T
}

// PushResult describes where a pushed value ended up
type PushResult[T comparable] struct {
	Index   int
	Evicted T
	// DidEvict is false when the value was already present
	DidEvict bool
}

// New creates a queue whose capacity is fixed to len(seed)
func New[T comparable](seed ...T) (Queue[T], error) {
	if len(seed) == 0 {
		return Queue[T]{}, ErrInvalidCapacity
	}
	items := make([]T, len(seed))
	copy(items, seed)
	return Queue[T]{items: items}, nil
}

// Len returns the number of slots, which is also the capacity
func (q Queue[T]) Len() int {
	return len(q.items)
}

// Get returns the value stored in slot i
func (q Queue[T]) Get(i int) (T, error) {
	if err := q.check(i); err != nil {
		var zero T
		return zero, err
	}
	return q.items[i], nil
}

// With returns a copy of the queue with slot i replaced by value
func (q Queue[T]) With(i int, value T) (Queue[T], error) {
	if err := q.check(i); err != nil {
		return q, err
	}
	next := q.clone()
	next.items[i] = value
	return next, nil
}

// Contains reports whether value occupies any slot
func (q Queue[T]) Contains(value T) bool {
	_, ok := q.IndexOf(value)
	return ok
}

// IndexOf returns the first slot holding value
func (q Queue[T]) IndexOf(value T) (int, bool) {
	for i, item := range q.items {
		if item == value {
			return i, true
		}
	}
	return -1, false
}

// Push records value as recently used.
//
// A value that is already present keeps its slot and nothing moves. A new
// value goes to slot 0, every other value shifts one slot back and the value
// in the last slot is evicted.
func (q Queue[T]) Push(value T) (Queue[T], PushResult[T]) {
	if i, ok := q.IndexOf(value); ok {
		return q, PushResult[T]{Index: i}
	}
	if len(q.items) == 0 {
		return q, PushResult[T]{Index: -1}
	}

	last := len(q.items) - 1
	evicted := q.items[last]

	next := Queue[T]{items: make([]T, len(q.items))}
	next.items[0] = value
	copy(next.items[1:], q.items[:last])

	return next, PushResult[T]{Index: 0, Evicted: evicted, DidEvict: true}
}

// Items returns a copy of the slots in order
func (q Queue[T]) Items() []T {
	return append([]T(nil), q.items...)
}

// Equal reports whether both queues hold the same values in the same slots
func (q Queue[T]) Equal(other Queue[T]) bool {
	if len(q.items) != len(other.items) {
		return false
	}
	for i := range q.items {
		if q.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

func (q Queue[T]) check(i int) error {
	if i < 0 || i >= len(q.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(q.items))
	}
	return nil
}

func (q Queue[T]) clone() Queue[T] {
	return Queue[T]{items: q.Items()}
}
