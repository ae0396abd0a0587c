package pipeline

import "fmt"

// Kind identifies what a stage does to the sequence.
type Kind int

const (
	KindFilter Kind = iota + 1
	KindMap
	KindReduce
)

func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindMap:
		return "map"
	case KindReduce:
		return "reduce"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stage is one step of a pipeline. Build stages with Filter, Map, Reduce
// and their Try and Fold variants; the zero Stage is invalid.
type Stage[T any] struct {
	kind    Kind
	name    string
	keep    func(T) (bool, error)
	apply   func(T) (T, error)
	fold    func(acc any, cur T, index int, all []T) (any, error)
	initial any
}

// Filter keeps the elements for which pred returns true.
func Filter[T any](pred func(T) bool) Stage[T] {
	s := Stage[T]{kind: KindFilter}
	if pred != nil {
		s.keep = func(v T) (bool, error) { return pred(v), nil }
	}
	return s
}

// TryFilter is Filter with a predicate that may fail.
func TryFilter[T any](pred func(T) (bool, error)) Stage[T] {
	return Stage[T]{kind: KindFilter, keep: pred}
}

// Map replaces every element with fn applied to it.
func Map[T any](fn func(T) T) Stage[T] {
	s := Stage[T]{kind: KindMap}
	if fn != nil {
		s.apply = func(v T) (T, error) { return fn(v), nil }
	}
	return s
}

// TryMap is Map with a function that may fail.
func TryMap[T any](fn func(T) (T, error)) Stage[T] {
	return Stage[T]{kind: KindMap, apply: fn}
}

// Reduce folds the sequence left to right starting at initial. fn receives
// the accumulator, the current element, its index and the sequence as it
// reaches this stage.
func Reduce[T, R any](fn func(acc R, cur T, index int, all []T) R, initial R) Stage[T] {
	if fn == nil {
		return Stage[T]{kind: KindReduce, initial: initial}
	}
	return TryReduce(func(acc R, cur T, index int, all []T) (R, error) {
		return fn(acc, cur, index, all), nil
	}, initial)
}

// Fold is Reduce for functions that only need the accumulator and the
// current element.
func Fold[T, R any](fn func(acc R, cur T) R, initial R) Stage[T] {
	if fn == nil {
		return Stage[T]{kind: KindReduce, initial: initial}
	}
	return TryReduce(func(acc R, cur T, _ int, _ []T) (R, error) {
		return fn(acc, cur), nil
	}, initial)
}

// TryReduce is Reduce with a function that may fail.
func TryReduce[T, R any](fn func(acc R, cur T, index int, all []T) (R, error), initial R) Stage[T] {
	s := Stage[T]{kind: KindReduce, initial: initial}
	if fn != nil {
		s.fold = func(acc any, cur T, index int, all []T) (any, error) {
			// acc always holds an R; the comma-ok form keeps nil interfaces as zero R
			a, _ := acc.(R)
			return fn(a, cur, index, all)
		}
	}
	return s
}

// Named returns a copy of the stage carrying a label for errors and logs.
func (s Stage[T]) Named(name string) Stage[T] {
	s.name = name
	return s
}

// Kind reports the stage kind.
func (s Stage[T]) Kind() Kind { return s.kind }

// Name returns the stage label, or "" if none was set.
func (s Stage[T]) Name() string { return s.name }

// Initial returns the initial accumulator of a reduce stage.
func (s Stage[T]) Initial() any { return s.initial }

func (s Stage[T]) String() string {
	if s.name == "" {
		return s.kind.String()
	}
	return fmt.Sprintf("%s(%s)", s.kind, s.name)
}

func (s Stage[T]) hasFunc() bool {
	switch s.kind {
	case KindFilter:
		return s.keep != nil
	case KindMap:
		return s.apply != nil
	case KindReduce:
		return s.fold != nil
	default:
		return false
	}
}
