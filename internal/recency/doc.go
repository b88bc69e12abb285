// Package recency provides a fixed-capacity queue of recently picked values.
// It backs the pinned language buttons on each side of the translator: a
// value already pinned keeps its slot, a new one bumps the oldest slot out.
package recency
