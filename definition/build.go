package definition

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kbukum/fnkit/catalog"
	"github.com/kbukum/fnkit/compose"
	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/pipeline"
)

// resolvedStage is a stage definition with the definition it came from.
type resolvedStage struct {
	owner string
	index int
	def   StageDef
}

func (r resolvedStage) path() string {
	return fmt.Sprintf("%s.stages[%d]", r.owner, r.index)
}

// Build turns d into a pipeline over float64 values. Includes are loaded
// through loader, which may be nil when d has none. A definition reached
// through more than one include path contributes its stages once.
func Build(d *Definition, cat *catalog.Catalog, loader Loader) (*pipeline.Pipeline[float64], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	stack := make(map[string]bool)    // current include path
	resolved := make(map[string]bool) // already expanded
	defs, err := resolve(d.Name, d, loader, stack, resolved)
	if err != nil {
		return nil, err
	}

	stages := make([]pipeline.Stage[float64], 0, len(defs))
	for _, rs := range defs {
		s, err := buildStage(rs, cat)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	p, err := pipeline.New(stages...)
	if err != nil {
		var invalid *pipeline.InvalidPipelineError
		if stderrors.As(err, &invalid) && invalid.Index >= 0 {
			return nil, errors.InvalidPipeline(d.Name, err.Error()).
				WithCause(err).
				WithDetail("stage", defs[invalid.Index].path())
		}
		return nil, errors.InvalidPipeline(d.Name, err.Error()).WithCause(err)
	}
	return p, nil
}

func resolve(key string, d *Definition, loader Loader, stack, resolved map[string]bool) ([]resolvedStage, error) {
	if stack[key] {
		return nil, errors.InvalidPipeline(key, fmt.Sprintf("circular include of %q", key)).
			WithDetail("include", key)
	}
	stack[key] = true
	defer delete(stack, key)

	var out []resolvedStage
	for _, name := range d.Includes {
		if resolved[name] {
			continue
		}
		if loader == nil {
			return nil, errors.InvalidInput("includes", fmt.Sprintf("%s includes %q but no loader is configured", key, name))
		}
		sub, err := loader.Load(name)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return nil, appErr.WithDetail("included_by", key)
			}
			return nil, errors.Internal(err).WithDetail("include", name)
		}
		if err := sub.Validate(); err != nil {
			return nil, err
		}
		stages, err := resolve(name, sub, loader, stack, resolved)
		if err != nil {
			return nil, err
		}
		out = append(out, stages...)
	}

	for i, s := range d.Stages {
		out = append(out, resolvedStage{owner: d.Name, index: i, def: s})
	}
	resolved[key] = true
	return out, nil
}

func buildStage(rs resolvedStage, cat *catalog.Catalog) (pipeline.Stage[float64], error) {
	var zero pipeline.Stage[float64]
	s := rs.def
	switch s.Kind {
	case pipeline.KindFilter.String():
		e, err := lookup(cat, s.Fn, rs)
		if err != nil {
			return zero, err
		}
		pred, err := e.Filter(s.Arg)
		if err != nil {
			return zero, stageError(err, rs)
		}
		return pipeline.Filter(pred).Named(s.Label()), nil

	case pipeline.KindMap.String():
		names := s.Compose
		if len(names) == 0 {
			names = []string{s.Fn}
		}
		fns := make([]func(float64) float64, 0, len(names))
		for _, name := range names {
			e, err := lookup(cat, name, rs)
			if err != nil {
				return zero, err
			}
			fn, err := e.Map(s.Arg)
			if err != nil {
				return zero, stageError(err, rs)
			}
			fns = append(fns, fn)
		}
		if len(fns) == 1 {
			return pipeline.Map(fns[0]).Named(s.Label()), nil
		}
		return pipeline.Map(compose.Compose(fns...)).Named(s.Label()), nil

	case pipeline.KindReduce.String():
		e, err := lookup(cat, s.Fn, rs)
		if err != nil {
			return zero, err
		}
		fn, initial, err := e.Reduce()
		if err != nil {
			return zero, stageError(err, rs)
		}
		if s.Initial != nil {
			initial = *s.Initial
		}
		return pipeline.Reduce(fn, initial).Named(s.Label()), nil
	}
	return zero, errors.InvalidInput(rs.path()+".kind", fmt.Sprintf("unknown stage kind %q", s.Kind))
}

func lookup(cat *catalog.Catalog, name string, rs resolvedStage) (catalog.Entry, error) {
	e, ok := cat.Get(name)
	if !ok {
		return e, errors.NotFound("function", name).WithDetail("stage", rs.path())
	}
	return e, nil
}

func stageError(err error, rs resolvedStage) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithDetail("stage", rs.path())
	}
	return err
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
