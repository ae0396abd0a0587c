package catalog

import "math"

func builtins() []Entry {
	return []Entry{
		Predicate("is_even", "x is an even integer", func(x float64) bool { return math.Mod(x, 2) == 0 }),
		Predicate("is_odd", "x is an odd integer", func(x float64) bool { return math.Abs(math.Mod(x, 2)) == 1 }),
		Predicate("is_positive", "x > 0", func(x float64) bool { return x > 0 }),
		Predicate("is_negative", "x < 0", func(x float64) bool { return x < 0 }),
		Predicate("non_zero", "x != 0", func(x float64) bool { return x != 0 }),
		Predicate("is_integer", "x has no fractional part", func(x float64) bool {
			return !math.IsInf(x, 0) && x == math.Trunc(x)
		}),

		PredicateWith("gt", "x > arg", func(arg, x float64) bool { return x > arg }),
		PredicateWith("ge", "x >= arg", func(arg, x float64) bool { return x >= arg }),
		PredicateWith("lt", "x < arg", func(arg, x float64) bool { return x < arg }),
		PredicateWith("le", "x <= arg", func(arg, x float64) bool { return x <= arg }),
		PredicateWith("eq", "x == arg", func(arg, x float64) bool { return x == arg }),
		PredicateWith("divisible_by", "x is a multiple of arg", func(arg, x float64) bool {
			return arg != 0 && math.Mod(x, arg) == 0
		}),

		Mapper("identity", "x", func(x float64) float64 { return x }),
		Mapper("half", "x / 2", func(x float64) float64 { return x / 2 }),
		Mapper("double", "x * 2", func(x float64) float64 { return x * 2 }),
		Mapper("inc", "x + 1", func(x float64) float64 { return x + 1 }),
		Mapper("dec", "x - 1", func(x float64) float64 { return x - 1 }),
		Mapper("negate", "-x", func(x float64) float64 { return -x }),
		Mapper("square", "x * x", func(x float64) float64 { return x * x }),
		Mapper("abs", "|x|", math.Abs),
		Mapper("sqrt", "square root of x", math.Sqrt),
		Mapper("floor", "largest integer <= x", math.Floor),
		Mapper("ceil", "smallest integer >= x", math.Ceil),

		MapperWith("add", "x + arg", func(arg, x float64) float64 { return x + arg }),
		MapperWith("sub", "x - arg", func(arg, x float64) float64 { return x - arg }),
		MapperWith("mul", "x * arg", func(arg, x float64) float64 { return x * arg }),
		MapperWith("div", "x / arg", func(arg, x float64) float64 { return x / arg }),
		MapperWith("pow", "x to the power arg", func(arg, x float64) float64 { return math.Pow(x, arg) }),
		MapperWith("mod", "remainder of x / arg", func(arg, x float64) float64 { return math.Mod(x, arg) }),

		Reducer("sum", "sum of the sequence", func(acc, cur float64, _ int, _ []float64) float64 {
			return acc + cur
		}, 0),
		Reducer("product", "product of the sequence", func(acc, cur float64, _ int, _ []float64) float64 {
			return acc * cur
		}, 1),
		Reducer("count", "number of elements", func(acc, _ float64, _ int, _ []float64) float64 {
			return acc + 1
		}, 0),
		Reducer("min", "smallest element", func(acc, cur float64, _ int, _ []float64) float64 {
			return math.Min(acc, cur)
		}, math.Inf(1)),
		Reducer("max", "largest element", func(acc, cur float64, _ int, _ []float64) float64 {
			return math.Max(acc, cur)
		}, math.Inf(-1)),
		Reducer("avg", "arithmetic mean", avg, 0),
	}
}

// avg accumulates the running sum and divides by the length at the last
// element, so the final accumulator is the mean.
func avg(acc, cur float64, index int, all []float64) float64 {
	if index < len(all)-1 {
		return acc + cur
	}
	return (acc + cur) / float64(len(all))
}
