package compose

import "github.com/kbukum/fnkit/seq"

// Identity returns its argument.
func Identity[T any](v T) T { return v }

// Const returns a function that ignores its argument and returns v.
func Const[T, A any](v T) func(A) T {
	return func(A) T { return v }
}

// Compose returns the right-to-left composition of fns, so
// Compose(f, g, h)(x) == f(g(h(x))). With no functions it returns Identity.
func Compose[T any](fns ...func(T) T) func(T) T {
	fns = seq.Clone(fns)
	return func(v T) T {
		return seq.ReduceRight(fns, v, func(acc T, fn func(T) T) T {
			return fn(acc)
		})
	}
}

// Pipe returns the left-to-right composition of fns, so
// Pipe(f, g, h)(x) == h(g(f(x))).
func Pipe[T any](fns ...func(T) T) func(T) T {
	fns = seq.Clone(fns)
	return func(v T) T {
		return seq.Fold(fns, v, func(acc T, fn func(T) T) T {
			return fn(acc)
		})
	}
}

// TryCompose is Compose over functions that may fail. The first error
// stops the chain and is returned unchanged.
func TryCompose[T any](fns ...func(T) (T, error)) func(T) (T, error) {
	fns = seq.Clone(fns)
	return func(v T) (T, error) {
		current := v
		for i := len(fns) - 1; i >= 0; i-- {
			next, err := fns[i](current)
			if err != nil {
				var zero T
				return zero, err
			}
			current = next
		}
		return current, nil
	}
}

// Compose2 returns g after f for functions that change type.
func Compose2[A, B, C any](g func(B) C, f func(A) B) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}
