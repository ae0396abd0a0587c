package pipeline

// Result holds the outcome of a run: the transformed sequence, or the
// final accumulator when the pipeline ends in a reduction.
type Result[T any] struct {
	values  []T
	value   any
	reduced bool
}

// Reduced reports whether the run ended in a reduction.
func (r Result[T]) Reduced() bool { return r.reduced }

// Values returns the transformed sequence, or nil after a reduction.
func (r Result[T]) Values() []T { return r.values }

// Value returns the accumulator after a reduction, or the sequence
// otherwise.
func (r Result[T]) Value() any {
	if r.reduced {
		return r.value
	}
	return r.values
}

// ValueAs returns the accumulator of r as R. ok is false when r is not
// reduced or holds another type.
func ValueAs[R, T any](r Result[T]) (v R, ok bool) {
	if !r.reduced {
		return v, false
	}
	v, ok = r.value.(R)
	return v, ok
}
