// Package compose provides function composition and currying helpers.
//
// Compose applies right to left and Pipe left to right:
//
//	inc := func(x int) int { return x + 1 }
//	double := func(x int) int { return x * 2 }
//	compose.Compose(inc, double)(3) // inc(double(3)) == 7
//	compose.Pipe(inc, double)(3)    // double(inc(3)) == 8
//
// Curry turns a two-argument function into a chain of one-argument
// functions, so a parameter can be fixed once and the result reused:
//
//	gt := compose.Curry(func(limit, x float64) bool { return x > limit })
//	overTen := gt(10)
package compose
