package reactive

// Map derives a stream by applying fn to every value of src
func Map[A, B any](bag *Bag, src Observable[A], fn func(A) B) Observable[B] {
	out := NewCell(fn(src.Value()))
	bag.Add(src.Subscribe(func(a A) { out.Set(fn(a)) }))
	return out.ReadOnly()
}

// MapDistinct is Map that only emits when the derived value changes
func MapDistinct[A any, B comparable](bag *Bag, src Observable[A], fn func(A) B) Observable[B] {
	out := NewDistinctCell(fn(src.Value()))
	bag.Add(src.Subscribe(func(a A) { out.Set(fn(a)) }))
	return out.ReadOnly()
}

// Combine2 re-evaluates fn whenever a or b changes
func Combine2[A, B, R any](bag *Bag, a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	out := NewCell(fn(a.Value(), b.Value()))
	update := func() { out.Set(fn(a.Value(), b.Value())) }
	bag.Add(
		a.Subscribe(func(A) { update() }),
		b.Subscribe(func(B) { update() }),
	)
	return out.ReadOnly()
}

// Combine2Distinct is Combine2 that only emits when the result changes
func Combine2Distinct[A, B any, R comparable](bag *Bag, a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	out := NewDistinctCell(fn(a.Value(), b.Value()))
	update := func() { out.Set(fn(a.Value(), b.Value())) }
	bag.Add(
		a.Subscribe(func(A) { update() }),
		b.Subscribe(func(B) { update() }),
	)
	return out.ReadOnly()
}

// Combine3 re-evaluates fn whenever a, b or c changes
func Combine3[A, B, C, R any](bag *Bag, a Observable[A], b Observable[B], c Observable[C], fn func(A, B, C) R) Observable[R] {
	out := NewCell(fn(a.Value(), b.Value(), c.Value()))
	update := func() { out.Set(fn(a.Value(), b.Value(), c.Value())) }
	bag.Add(
		a.Subscribe(func(A) { update() }),
		b.Subscribe(func(B) { update() }),
		c.Subscribe(func(C) { update() }),
	)
	return out.ReadOnly()
}

// Merge forwards every value of every source; the latest write wins
func Merge[T any](bag *Bag, sources ...Observable[T]) Observable[T] {
	var initial T
	if len(sources) > 0 {
		initial = sources[len(sources)-1].Value()
	}
	out := NewCell(initial)
	for _, src := range sources {
		bag.Add(src.Subscribe(out.Set))
	}
	return out.ReadOnly()
}

// Bind forwards every value of src into dst
func Bind[T any](bag *Bag, src Observable[T], dst *Cell[T]) {
	bag.Add(src.Subscribe(dst.Set))
}
