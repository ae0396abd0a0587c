// Package validation provides input validation for fnkit definitions,
// configuration and command flags.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type StageDef struct {
//	    Kind string `yaml:"kind" validate:"required,oneof=filter map reduce"`
//	}
//	err := validation.Validate(def)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.OneOf("output", output, []string{"text", "json"})
//	err := v.Validate()
package validation
