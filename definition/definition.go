package definition

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/pipeline"
	"github.com/kbukum/fnkit/validation"
)

// Definition is a declarative pipeline.
type Definition struct {
	// Name identifies the pipeline in logs, metrics and includes.
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Includes lists definitions whose stages run before this one's.
	Includes []string   `yaml:"includes,omitempty" json:"includes,omitempty" validate:"omitempty,dive,required"`
	Stages   []StageDef `yaml:"stages" json:"stages" validate:"dive"`
}

// StageDef is one stage of a definition.
type StageDef struct {
	Kind string `yaml:"kind" json:"kind" validate:"required,oneof=filter map reduce"`
	// Fn names a catalog function. Exactly one of Fn and Compose is set.
	Fn string `yaml:"fn,omitempty" json:"fn,omitempty" validate:"required_without=Compose,excluded_with=Compose"`
	// Compose lists mapping functions applied right to left.
	Compose []string `yaml:"compose,omitempty" json:"compose,omitempty" validate:"omitempty,dive,required"`
	// Arg is the argument of a parameterised function.
	Arg *float64 `yaml:"arg,omitempty" json:"arg,omitempty"`
	// Initial overrides the reducer's default accumulator.
	Initial *float64 `yaml:"initial,omitempty" json:"initial,omitempty"`
}

// Label returns the function name, or the composed names.
func (s StageDef) Label() string {
	if len(s.Compose) > 0 {
		return fmt.Sprintf("compose(%s)", joinNames(s.Compose))
	}
	return s.Fn
}

// Validate checks the definition's structure. Function names are checked
// by Build, against a catalog.
func (d *Definition) Validate() error {
	v := validation.New()
	v.Merge("definition", validation.Validate(d))
	for i, s := range d.Stages {
		field := fmt.Sprintf("stages[%d]", i)
		v.Custom(len(s.Compose) == 0 || s.Kind == pipeline.KindMap.String(),
			field+".compose", "only map stages can compose functions")
		v.Custom(s.Arg == nil || len(s.Compose) == 0,
			field+".arg", "must not be set together with compose")
		v.Custom(s.Initial == nil || s.Kind == pipeline.KindReduce.String(),
			field+".initial", "only reduce stages take an initial value")
	}
	return v.Err()
}

// Parse decodes a YAML or JSON document and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Definition
	if err := dec.Decode(&d); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.InvalidInput("definition", "document is empty")
		}
		return nil, errors.InvalidInput("definition", err.Error()).WithCause(err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
