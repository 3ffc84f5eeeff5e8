package events

// OneOrMany holds one decode result or a batch of them. Most frames yield
// exactly one event and pay no allocation; the batch form exists for the few
// identifiers that always carry several readings per frame.
type OneOrMany[T any] struct {
	single T
	batch  []T
	many   bool
}

// One wraps a single value.
func One[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{single: v}
}

// Many wraps a batch. Decoders only use this for identifiers that always
// produce two or more events per frame.
func Many[T any](vs []T) OneOrMany[T] {
	return OneOrMany[T]{batch: vs, many: true}
}

// IsMany reports whether this is a batch result.
func (o OneOrMany[T]) IsMany() bool {
	return o.many
}

// Len returns the number of values the iterator will yield.
func (o OneOrMany[T]) Len() int {
	if o.many {
		return len(o.batch)
	}
	return 1
}

// Iter returns a single-pass destructive iterator over the contents. The
// yield order of a batch is unspecified; treat it as a set.
func (o OneOrMany[T]) Iter() *Iter[T] {
	return &Iter[T]{rem: o}
}

// Slice drains the contents into a slice.
func (o OneOrMany[T]) Slice() []T {
	out := make([]T, 0, o.Len())
	it := o.Iter()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}

// mapOneOrMany lifts a conversion over the container, preserving shape.
func mapOneOrMany[T, U any](o OneOrMany[T], fn func(T) U) OneOrMany[U] {
	if !o.many {
		return One(fn(o.single))
	}
	out := make([]U, len(o.batch))
	for i, v := range o.batch {
		out[i] = fn(v)
	}
	return Many(out)
}

// Iter walks a OneOrMany exactly once. It is a small explicit state machine:
// either terminal, or holding the remaining elements. Batches are consumed
// from the tail. Once exhausted it yields nothing, forever; dropping it
// part-way through is fine.
type Iter[T any] struct {
	rem  OneOrMany[T]
	done bool
}

// Next pops the next element. The second return is false once the iterator
// is exhausted.
func (it *Iter[T]) Next() (T, bool) {
	var zero T
	if it.done {
		return zero, false
	}
	if !it.rem.many {
		v := it.rem.single
		it.rem.single = zero
		it.done = true
		return v, true
	}
	n := len(it.rem.batch)
	if n == 0 {
		it.done = true
		return zero, false
	}
	v := it.rem.batch[n-1]
	it.rem.batch = it.rem.batch[:n-1]
	return v, true
}
