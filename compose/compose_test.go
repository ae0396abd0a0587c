package compose

import (
	"errors"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	inc    = func(x int) int { return x + 1 }
	double = func(x int) int { return x * 2 }
	square = func(x int) int { return x * x }
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		fns  []func(int) int
		in   int
		want int
	}{
		{"none is identity", nil, 5, 5},
		{"single", []func(int) int{inc}, 5, 6},
		{"right to left", []func(int) int{inc, double}, 3, 7},
		{"three", []func(int) int{inc, double, square}, 3, 19},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compose(tc.fns...)(tc.in); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPipe(t *testing.T) {
	if got := Pipe(inc, double, square)(3); got != 64 {
		t.Errorf("expected 64, got %d", got)
	}
	if got := Pipe[int]()(9); got != 9 {
		t.Errorf("expected identity, got %d", got)
	}
}

func TestCompose_CopiesFunctions(t *testing.T) {
	fns := []func(int) int{inc, double}
	f := Compose(fns...)
	fns[0] = square
	if got := f(3); got != 7 {
		t.Errorf("composition changed after construction: got %d", got)
	}
}

func TestTryCompose(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	parse := func(s string) (string, error) {
		if _, err := strconv.Atoi(s); err != nil {
			return "", boom
		}
		return s + "0", nil
	}
	trace := func(s string) (string, error) {
		calls++
		return s, nil
	}

	got, err := TryCompose(trace, parse)("12")
	if err != nil || got != "120" {
		t.Errorf("got %q, %v", got, err)
	}

	calls = 0
	_, err = TryCompose(trace, parse)("x")
	if err != boom {
		t.Errorf("expected the function error unchanged, got %v", err)
	}
	if calls != 0 {
		t.Error("expected functions after the failure not to run")
	}

	if got, err := TryCompose[int]()(4); err != nil || got != 4 {
		t.Errorf("expected identity, got %d, %v", got, err)
	}
}

func TestCompose2(t *testing.T) {
	length := Compose2(func(s string) int { return len(s) }, strconv.Itoa)
	if got := length(12345); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestIdentityAndConst(t *testing.T) {
	if Identity("x") != "x" {
		t.Error("identity changed its argument")
	}
	seven := Const[int, string](7)
	if seven("anything") != 7 {
		t.Error("const ignored its value")
	}
}

func TestCurry(t *testing.T) {
	sub := func(a, b int) int { return a - b }
	from10 := Curry(sub)(10)
	if from10(3) != 7 || from10(4) != 6 {
		t.Error("partial application is not reusable")
	}
	if Uncurry(Curry(sub))(8, 5) != 3 {
		t.Error("uncurry does not invert curry")
	}
	if Partial(sub, 1)(1) != 0 {
		t.Error("partial fixed the wrong argument")
	}
	if Flip(sub)(1, 10) != 9 {
		t.Error("flip did not swap arguments")
	}

	join := Curry3(func(a, b, c string) string { return a + b + c })
	if join("a")("b")("c") != "abc" {
		t.Error("curry3 changed argument order")
	}
}

func TestCompositionProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("compose is associative", prop.ForAll(
		func(x int) bool {
			left := Compose(inc, Compose(double, square))
			right := Compose(Compose(inc, double), square)
			return left(x) == right(x)
		},
		gen.IntRange(-10000, 10000),
	))

	properties.Property("identity is neutral", prop.ForAll(
		func(x int) bool {
			return Compose(Identity[int], double)(x) == double(x) &&
				Compose(double, Identity[int])(x) == double(x)
		},
		gen.Int(),
	))

	properties.Property("pipe reverses compose", prop.ForAll(
		func(x int) bool {
			return Pipe(square, double, inc)(x) == Compose(inc, double, square)(x)
		},
		gen.IntRange(-10000, 10000),
	))

	properties.Property("curried application equals direct application", prop.ForAll(
		func(a, b int) bool {
			f := func(x, y int) int { return 3*x - y }
			return Curry(f)(a)(b) == f(a, b) && Flip(f)(b, a) == f(a, b)
		},
		gen.Int(),
		gen.Int(),
	))

	properties.TestingRun(t)
}
