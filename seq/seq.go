package seq

// Filter returns the elements of s for which keep returns true, in order.
// The result is never nil.
func Filter[T any](s []T, keep func(T) bool) []T {
	result := make([]T, 0, len(s))
	for _, item := range s {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// TryFilter is Filter with a fallible predicate.
func TryFilter[T any](s []T, keep func(T) (bool, error)) ([]T, error) {
	result := make([]T, 0, len(s))
	for _, item := range s {
		ok, err := keep(item)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, item)
		}
	}
	return result, nil
}

// Map returns a slice holding fn applied to every element of s.
func Map[T, U any](s []T, fn func(T) U) []U {
	result := make([]U, len(s))
	for i, item := range s {
		result[i] = fn(item)
	}
	return result
}

// TryMap is Map with a fallible function.
func TryMap[T, U any](s []T, fn func(T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, item := range s {
		out, err := fn(item)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

// Reduce folds s from left to right. fn receives the accumulator, the
// current element, its index and the whole slice.
func Reduce[T, R any](s []T, initial R, fn func(acc R, cur T, index int, all []T) R) R {
	acc := initial
	for i, item := range s {
		acc = fn(acc, item, i, s)
	}
	return acc
}

// TryReduce is Reduce with a fallible function.
func TryReduce[T, R any](s []T, initial R, fn func(acc R, cur T, index int, all []T) (R, error)) (R, error) {
	acc := initial
	for i, item := range s {
		next, err := fn(acc, item, i, s)
		if err != nil {
			var zero R
			return zero, err
		}
		acc = next
	}
	return acc, nil
}

// Fold folds s from left to right with a two-argument function.
func Fold[T, R any](s []T, initial R, fn func(acc R, cur T) R) R {
	acc := initial
	for _, item := range s {
		acc = fn(acc, item)
	}
	return acc
}

// ReduceRight folds s from right to left.
func ReduceRight[T, R any](s []T, initial R, fn func(acc R, cur T) R) R {
	acc := initial
	for i := len(s) - 1; i >= 0; i-- {
		acc = fn(acc, s[i])
	}
	return acc
}

// Clone returns a copy of s. A nil slice clones to an empty one.
func Clone[T any](s []T) []T {
	result := make([]T, len(s))
	copy(result, s)
	return result
}
