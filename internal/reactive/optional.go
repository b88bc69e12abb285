package reactive

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrElse returns the value or def when absent
func (o Optional[T]) OrElse(def T) T {
	if !o.Valid {
		return def
	}
	return o.Value
}
