package pipeline

import (
	stderrors "errors"
	"fmt"
)

// ErrInvalidPipeline matches every *InvalidPipelineError via errors.Is.
var ErrInvalidPipeline = stderrors.New("invalid pipeline")

// Reason classifies a structurally invalid stage sequence.
type Reason string

const (
	ReasonEmpty             Reason = "empty"
	ReasonReduceNotTerminal Reason = "reduce_not_terminal"
	ReasonDuplicateReduce   Reason = "duplicate_reduce"
	ReasonNilFunction       Reason = "nil_function"
	ReasonUnknownKind       Reason = "unknown_kind"
)

// InvalidPipelineError is returned when a pipeline cannot be built from
// the given stages.
type InvalidPipelineError struct {
	Reason Reason
	// Index is the offending stage, or -1 when the sequence as a whole is at fault.
	Index int
	Kind  Kind
	Stage string
}

func (e *InvalidPipelineError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "invalid pipeline: no stages"
	case ReasonReduceNotTerminal:
		return fmt.Sprintf("invalid pipeline: %s at index %d is not the last stage", e.describe(), e.Index)
	case ReasonDuplicateReduce:
		return fmt.Sprintf("invalid pipeline: %s at index %d is a second reduction", e.describe(), e.Index)
	case ReasonNilFunction:
		return fmt.Sprintf("invalid pipeline: %s at index %d has no function", e.describe(), e.Index)
	case ReasonUnknownKind:
		return fmt.Sprintf("invalid pipeline: stage at index %d has unknown %s", e.Index, e.Kind)
	default:
		return fmt.Sprintf("invalid pipeline: %s", e.Reason)
	}
}

// Is reports whether target is ErrInvalidPipeline.
func (e *InvalidPipelineError) Is(target error) bool {
	return target == ErrInvalidPipeline
}

func (e *InvalidPipelineError) describe() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s stage %q", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%s stage", e.Kind)
}

func invalid[T any](reason Reason, index int, s Stage[T]) *InvalidPipelineError {
	return &InvalidPipelineError{Reason: reason, Index: index, Kind: s.kind, Stage: s.name}
}

// validate checks the structural rules: at least one stage, every stage
// has a known kind and a function, and at most one reduce, placed last.
func validate[T any](stages []Stage[T]) error {
	if len(stages) == 0 {
		return &InvalidPipelineError{Reason: ReasonEmpty, Index: -1}
	}
	reduceAt := -1
	for i, s := range stages {
		switch s.kind {
		case KindFilter, KindMap, KindReduce:
		default:
			return invalid(ReasonUnknownKind, i, s)
		}
		if !s.hasFunc() {
			return invalid(ReasonNilFunction, i, s)
		}
		if s.kind == KindReduce {
			if reduceAt >= 0 {
				return invalid(ReasonDuplicateReduce, i, s)
			}
			reduceAt = i
		}
	}
	if reduceAt >= 0 && reduceAt != len(stages)-1 {
		return invalid(ReasonReduceNotTerminal, reduceAt, stages[reduceAt])
	}
	return nil
}
