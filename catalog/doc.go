// Package catalog holds named float64 functions that declarative
// pipeline definitions refer to.
//
// Entries are predicates (filter stages), mappers (map stages) or
// reducers (reduce stages). Parameterised entries such as "gt" or "add"
// are registered as two-argument functions and curried, so a definition
// supplies the argument once:
//
//	c := catalog.Default()
//	e, _ := c.Get("gt")
//	limit := 10.0
//	over, _ := e.Filter(&limit) // x > 10
package catalog
