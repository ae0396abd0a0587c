package compose

// Curry converts a two-argument function into nested one-argument
// functions: Curry(f)(a)(b) == f(a, b).
func Curry[A, B, R any](f func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return f(a, b)
		}
	}
}

// Curry3 is Curry for three arguments.
func Curry3[A, B, C, R any](f func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R {
				return f(a, b, c)
			}
		}
	}
}

// Uncurry reverses Curry.
func Uncurry[A, B, R any](f func(A) func(B) R) func(A, B) R {
	return func(a A, b B) R {
		return f(a)(b)
	}
}

// Partial fixes the first argument of f.
func Partial[A, B, R any](f func(A, B) R, a A) func(B) R {
	return Curry(f)(a)
}

// Flip swaps the arguments of f.
func Flip[A, B, R any](f func(A, B) R) func(B, A) R {
	return func(b B, a A) R {
		return f(a, b)
	}
}
