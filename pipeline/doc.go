// Package pipeline evaluates ordered sequences of pure transformation
// stages over slices.
//
// A Pipeline is built once from Filter, Map and Reduce stages and can then
// be run any number of times, from any number of goroutines. Stages run
// left to right; a Reduce stage collapses the sequence into one value and
// must therefore be the last stage.
//
// # Usage
//
//	isEven := func(n float64) bool { return math.Mod(n, 2) == 0 }
//	half := func(n float64) float64 { return n / 2 }
//	toAvg := func(acc, cur float64, i int, all []float64) float64 {
//	    if i < len(all)-1 {
//	        return acc + cur
//	    }
//	    return (acc + cur) / float64(len(all))
//	}
//
//	p, err := pipeline.New(
//	    pipeline.Filter(isEven),
//	    pipeline.Map(half),
//	    pipeline.Reduce(toAvg, 0.0),
//	)
//	avg, err := pipeline.RunAs[float64](p, []float64{1, 2, 3, 4, 5, 6}) // 2
//
// Errors returned by stage functions reach the caller of Run unchanged.
// Panics are not recovered.
package pipeline
