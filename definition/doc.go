// Package definition builds pipelines from YAML or JSON documents.
//
// A definition names its stages by catalog function:
//
//	name: even-halves-avg
//	includes: [evens]
//	stages:
//	  - kind: map
//	    fn: half
//	  - kind: map
//	    compose: [inc, double]
//	  - kind: filter
//	    fn: gt
//	    arg: 1
//	  - kind: reduce
//	    fn: avg
//
// Included definitions contribute their stages first, in include order.
// Build resolves includes through a Loader, looks functions up in a
// catalog.Catalog and validates the result with pipeline.New.
package definition
