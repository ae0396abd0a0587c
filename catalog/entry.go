package catalog

import (
	"fmt"

	"github.com/kbukum/fnkit/compose"
	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/pipeline"
)

// ReduceFunc is the index-aware reducer signature.
type ReduceFunc = func(acc, cur float64, index int, all []float64) float64

// Entry is one named catalog function.
type Entry struct {
	Name        string
	Kind        pipeline.Kind
	Description string
	// Parameterised entries need an argument from the stage definition.
	Parameterised bool

	pred     func(float64) bool
	predWith func(float64) func(float64) bool
	mapper   func(float64) float64
	mapWith  func(float64) func(float64) float64
	reducer  ReduceFunc
	initial  float64
}

// Predicate creates a filter entry.
func Predicate(name, description string, fn func(float64) bool) Entry {
	return Entry{Name: name, Kind: pipeline.KindFilter, Description: description, pred: fn}
}

// PredicateWith creates a parameterised filter entry. fn receives the
// stage argument first and the element second.
func PredicateWith(name, description string, fn func(arg, x float64) bool) Entry {
	return Entry{
		Name:          name,
		Kind:          pipeline.KindFilter,
		Description:   description,
		Parameterised: true,
		predWith:      compose.Curry(fn),
	}
}

// Mapper creates a map entry.
func Mapper(name, description string, fn func(float64) float64) Entry {
	return Entry{Name: name, Kind: pipeline.KindMap, Description: description, mapper: fn}
}

// MapperWith creates a parameterised map entry.
func MapperWith(name, description string, fn func(arg, x float64) float64) Entry {
	return Entry{
		Name:          name,
		Kind:          pipeline.KindMap,
		Description:   description,
		Parameterised: true,
		mapWith:       compose.Curry(fn),
	}
}

// Reducer creates a reduce entry with its default initial accumulator.
func Reducer(name, description string, fn ReduceFunc, initial float64) Entry {
	return Entry{Name: name, Kind: pipeline.KindReduce, Description: description, reducer: fn, initial: initial}
}

// Filter returns the predicate, applying arg to parameterised entries.
func (e Entry) Filter(arg *float64) (func(float64) bool, error) {
	if err := e.check(pipeline.KindFilter, arg); err != nil {
		return nil, err
	}
	if e.Parameterised {
		return e.predWith(*arg), nil
	}
	return e.pred, nil
}

// Map returns the mapping function, applying arg to parameterised entries.
func (e Entry) Map(arg *float64) (func(float64) float64, error) {
	if err := e.check(pipeline.KindMap, arg); err != nil {
		return nil, err
	}
	if e.Parameterised {
		return e.mapWith(*arg), nil
	}
	return e.mapper, nil
}

// Reduce returns the reducer and its default initial accumulator.
func (e Entry) Reduce() (ReduceFunc, float64, error) {
	if err := e.check(pipeline.KindReduce, nil); err != nil {
		return nil, 0, err
	}
	return e.reducer, e.initial, nil
}

// Initial returns the default accumulator of a reducer entry.
func (e Entry) Initial() float64 { return e.initial }

func (e Entry) String() string {
	if e.Parameterised {
		return fmt.Sprintf("%s(arg)", e.Name)
	}
	return e.Name
}

func (e Entry) check(want pipeline.Kind, arg *float64) error {
	if e.Kind != want {
		return errors.InvalidInput("fn", fmt.Sprintf("%s is a %s function, not a %s", e.Name, e.Kind, want)).
			WithDetail("function", e.Name)
	}
	if e.Parameterised && arg == nil {
		return errors.MissingField("arg").WithDetail("function", e.Name)
	}
	if !e.Parameterised && arg != nil {
		return errors.InvalidInput("arg", fmt.Sprintf("%s takes no argument", e.Name))
	}
	return nil
}

func (e Entry) valid() bool {
	switch e.Kind {
	case pipeline.KindFilter:
		return e.pred != nil || e.predWith != nil
	case pipeline.KindMap:
		return e.mapper != nil || e.mapWith != nil
	case pipeline.KindReduce:
		return e.reducer != nil
	default:
		return false
	}
}
