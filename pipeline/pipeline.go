package pipeline

import (
	"fmt"
	"strings"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/seq"
)

// Pipeline is an immutable, validated sequence of stages.
// It is safe for concurrent use.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// New validates stages and returns a pipeline running them in order.
// It returns an *InvalidPipelineError if the sequence is empty, a stage
// lacks a function, or a reduce stage is duplicated or not last.
func New[T any](stages ...Stage[T]) (*Pipeline[T], error) {
	if err := validate(stages); err != nil {
		return nil, err
	}
	return &Pipeline[T]{stages: seq.Clone(stages)}, nil
}

// MustNew is like New but panics on an invalid stage sequence.
func MustNew[T any](stages ...Stage[T]) *Pipeline[T] {
	p, err := New(stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Run applies the stages to input. input is never modified and the
// result never shares memory with it. The first error returned by a stage
// function is returned as-is.
func (p *Pipeline[T]) Run(input []T) (Result[T], error) {
	current := seq.Clone(input)
	for _, s := range p.stages {
		var err error
		switch s.kind {
		case KindFilter:
			current, err = seq.TryFilter(current, s.keep)
		case KindMap:
			current, err = seq.TryMap(current, s.apply)
		case KindReduce:
			acc, rErr := seq.TryReduce(current, s.initial, s.fold)
			if rErr != nil {
				return Result[T]{}, rErr
			}
			return Result[T]{value: acc, reduced: true}, nil
		}
		if err != nil {
			return Result[T]{}, err
		}
	}
	return Result[T]{values: current}, nil
}

// Func returns Run as a plain function value.
func (p *Pipeline[T]) Func() func([]T) (Result[T], error) {
	return p.Run
}

// Then returns a new pipeline running p's stages followed by stages.
// p itself is unchanged.
func (p *Pipeline[T]) Then(stages ...Stage[T]) (*Pipeline[T], error) {
	all := make([]Stage[T], 0, len(p.stages)+len(stages))
	all = append(all, p.stages...)
	all = append(all, stages...)
	return New(all...)
}

// Concat joins the stages of several pipelines into one. Only the last
// pipeline may end in a reduction.
func Concat[T any](pipelines ...*Pipeline[T]) (*Pipeline[T], error) {
	var all []Stage[T]
	for _, p := range pipelines {
		if p != nil {
			all = append(all, p.stages...)
		}
	}
	return New(all...)
}

// Len returns the number of stages.
func (p *Pipeline[T]) Len() int {
	return len(p.stages)
}

// Stages returns a copy of the stage sequence.
func (p *Pipeline[T]) Stages() []Stage[T] {
	return seq.Clone(p.stages)
}

// Reduces reports whether the pipeline ends in a reduction.
func (p *Pipeline[T]) Reduces() bool {
	n := len(p.stages)
	return n > 0 && p.stages[n-1].kind == KindReduce
}

func (p *Pipeline[T]) String() string {
	return strings.Join(seq.Map(p.stages, Stage[T].String), " -> ")
}

// RunAs runs a reducing pipeline and returns its accumulator as R.
// It fails with a TYPE_MISMATCH AppError when the pipeline does not
// reduce or its accumulator is not an R.
func RunAs[R, T any](p *Pipeline[T], input []T) (R, error) {
	var zero R
	res, err := p.Run(input)
	if err != nil {
		return zero, err
	}
	v, ok := ValueAs[R](res)
	if !ok {
		if !res.Reduced() {
			return zero, errors.TypeMismatch(fmt.Sprintf("%T", zero), res.Values()).
				WithDetail("reason", "pipeline does not reduce")
		}
		return zero, errors.TypeMismatch(fmt.Sprintf("%T", zero), res.Value())
	}
	return v, nil
}
