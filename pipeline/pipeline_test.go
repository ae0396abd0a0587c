package pipeline

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/fnkit/errors"
)

var (
	isEven = func(n float64) bool { return math.Mod(n, 2) == 0 }
	half   = func(n float64) float64 { return n / 2 }
	toAvg  = func(acc, cur float64, i int, all []float64) float64 {
		if i < len(all)-1 {
			return acc + cur
		}
		return (acc + cur) / float64(len(all))
	}
)

func TestRun_FilterMapReduce(t *testing.T) {
	p, err := New(Filter(isEven), Map(half), Reduce(toAvg, 0.0))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Reduced() {
		t.Fatal("expected a reduced result")
	}
	if res.Value() != 2.0 {
		t.Errorf("expected 2, got %v", res.Value())
	}
	if res.Values() != nil {
		t.Errorf("expected no sequence after reduction, got %v", res.Values())
	}
}

func TestRun_MapOnly(t *testing.T) {
	p := MustNew(Map(func(x int) int { return x * 2 }))
	res, err := p.Run([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reduced() {
		t.Fatal("expected a sequence result")
	}
	want := []int{2, 4, 6}
	if !intSliceEqual(res.Values(), want) {
		t.Errorf("got %v, want %v", res.Values(), want)
	}
}

func TestRun_InterleavedStages(t *testing.T) {
	p := MustNew(
		Map(func(x int) int { return x + 1 }),
		Filter(func(x int) bool { return x%3 != 0 }),
		Map(func(x int) int { return x * 10 }),
		Filter(func(x int) bool { return x > 20 }),
	)
	res, err := p.Run([]int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	// +1: 2 3 4 5 6 7 | drop multiples of 3: 2 4 5 7 | *10: 20 40 50 70 | >20: 40 50 70
	want := []int{40, 50, 70}
	if !intSliceEqual(res.Values(), want) {
		t.Errorf("got %v, want %v", res.Values(), want)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	seqP := MustNew(Filter(func(int) bool { return true }), Map(func(x int) int { return x }))
	res, err := seqP.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values() == nil || len(res.Values()) != 0 {
		t.Errorf("expected empty non-nil sequence, got %#v", res.Values())
	}

	sum := MustNew(Fold(func(acc, cur int) int { return acc + cur }, 7))
	got, err := RunAs[int](sum, []int{})
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("expected the initial accumulator 7, got %d", got)
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	input := []int{3, 1, 2}
	p := MustNew(
		Map(func(x int) int { return x * 100 }),
		Reduce(func(acc int, cur int, i int, all []int) int {
			all[i] = -1 // reducers only ever see the run's own copy
			return acc + cur
		}, 0),
	)
	if _, err := p.Run(input); err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(input, []int{3, 1, 2}) {
		t.Errorf("input was modified: %v", input)
	}

	identity := MustNew(Map(func(x int) int { return x }))
	res, _ := identity.Run(input)
	res.Values()[0] = 42
	if input[0] != 3 {
		t.Error("result aliases the input")
	}
}

func TestRun_ReduceSeesSequenceAtItsStage(t *testing.T) {
	var seen []int
	p := MustNew(
		Filter(func(x int) bool { return x > 2 }),
		Reduce(func(acc int, cur int, i int, all []int) int {
			if i == 0 {
				seen = append(seen, all...)
			}
			return acc + i
		}, 0),
	)
	got, err := RunAs[int](p, []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(seen, []int{3, 4, 5}) {
		t.Errorf("reducer saw %v, want the filtered sequence", seen)
	}
	if got != 0+1+2 {
		t.Errorf("expected sum of indexes 3, got %d", got)
	}
}

func TestRun_FoldTypeChange(t *testing.T) {
	p := MustNew(
		Filter(func(s string) bool { return s != "" }),
		Fold(func(acc []string, cur string) []string { return append(acc, strings.ToUpper(cur)) }, []string{}),
	)
	got, err := RunAs[[]string](p, []string{"a", "", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "A,B" {
		t.Errorf("got %v", got)
	}
}

func TestRun_StageErrorPropagatesUnchanged(t *testing.T) {
	boom := stderrors.New("boom")
	calls := 0

	tests := []struct {
		name  string
		stage Stage[int]
	}{
		{"filter", TryFilter(func(x int) (bool, error) {
			if x == 2 {
				return false, boom
			}
			return true, nil
		})},
		{"map", TryMap(func(x int) (int, error) {
			if x == 2 {
				return 0, boom
			}
			return x, nil
		})},
		{"reduce", TryReduce(func(acc, cur, _ int, _ []int) (int, error) {
			if cur == 2 {
				return 0, boom
			}
			return acc + cur, nil
		}, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			after := Map(func(x int) int { calls++; return x })
			stages := []Stage[int]{tc.stage}
			if tc.stage.Kind() != KindReduce {
				stages = append(stages, after)
			}
			p := MustNew(stages...)
			calls = 0
			_, err := p.Run([]int{1, 2, 3})
			if err != boom {
				t.Fatalf("expected the stage error itself, got %v", err)
			}
			if calls != 0 {
				t.Errorf("expected later stages not to run, got %d calls", calls)
			}
		})
	}
}

func TestRun_PanicsAreNotRecovered(t *testing.T) {
	p := MustNew(Map(func(x int) int { return 10 / x }))
	defer func() {
		if recover() == nil {
			t.Error("expected the stage panic to reach the caller")
		}
	}()
	_, _ = p.Run([]int{0})
}

func TestNew_Invalid(t *testing.T) {
	sum := Fold(func(acc, cur int) int { return acc + cur }, 0)
	keep := Filter(func(int) bool { return true })

	tests := []struct {
		name   string
		stages []Stage[int]
		reason Reason
		index  int
	}{
		{"empty", nil, ReasonEmpty, -1},
		{"reduce then map", []Stage[int]{sum, Map(func(x int) int { return x })}, ReasonReduceNotTerminal, 0},
		{"reduce then filter", []Stage[int]{keep, sum, keep}, ReasonReduceNotTerminal, 1},
		{"two reductions", []Stage[int]{sum, sum}, ReasonDuplicateReduce, 1},
		{"nil filter", []Stage[int]{Filter[int](nil)}, ReasonNilFunction, 0},
		{"nil try map", []Stage[int]{keep, TryMap[int](nil)}, ReasonNilFunction, 1},
		{"nil reducer", []Stage[int]{Reduce[int, int](nil, 0)}, ReasonNilFunction, 0},
		{"nil fold", []Stage[int]{Fold[int, int](nil, 0)}, ReasonNilFunction, 0},
		{"zero stage", []Stage[int]{{}}, ReasonUnknownKind, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.stages...)
			if p != nil {
				t.Error("expected no pipeline")
			}
			var invalid *InvalidPipelineError
			if !stderrors.As(err, &invalid) {
				t.Fatalf("expected *InvalidPipelineError, got %v", err)
			}
			if invalid.Reason != tc.reason {
				t.Errorf("expected reason %s, got %s", tc.reason, invalid.Reason)
			}
			if invalid.Index != tc.index {
				t.Errorf("expected index %d, got %d", tc.index, invalid.Index)
			}
			if !stderrors.Is(err, ErrInvalidPipeline) {
				t.Error("expected errors.Is(err, ErrInvalidPipeline)")
			}
		})
	}
}

func TestInvalidPipelineError_Message(t *testing.T) {
	_, err := New(Fold(func(acc, cur int) int { return acc + cur }, 0).Named("sum"), Map(func(x int) int { return x }))
	want := `invalid pipeline: reduce stage "sum" at index 0 is not the last stage`
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}

	_, err = New[int]()
	if err == nil || err.Error() != "invalid pipeline: no stages" {
		t.Errorf("unexpected message %v", err)
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, ErrInvalidPipeline) {
			t.Errorf("expected invalid pipeline panic, got %v", r)
		}
	}()
	MustNew[int]()
}

func TestNew_CopiesStages(t *testing.T) {
	stages := []Stage[int]{Map(func(x int) int { return x + 1 })}
	p := MustNew(stages...)
	stages[0] = Map(func(x int) int { return x * 100 })

	res, _ := p.Run([]int{1})
	if res.Values()[0] != 2 {
		t.Errorf("pipeline changed after construction: got %v", res.Values())
	}
}

func TestThen(t *testing.T) {
	base := MustNew(Filter(isEven))
	avg, err := base.Then(Map(half), Reduce(toAvg, 0.0))
	if err != nil {
		t.Fatal(err)
	}
	if base.Len() != 1 {
		t.Errorf("Then must not modify the receiver, got %d stages", base.Len())
	}
	got, err := RunAs[float64](avg, []float64{1, 2, 3, 4, 5, 6})
	if err != nil || got != 2 {
		t.Errorf("got %v, %v", got, err)
	}

	if _, err := avg.Then(Map(half)); !stderrors.Is(err, ErrInvalidPipeline) {
		t.Errorf("expected a stage after the reduction to be rejected, got %v", err)
	}
}

func TestConcat(t *testing.T) {
	evens := MustNew(Filter(isEven))
	halves := MustNew(Map(half))
	avg := MustNew(Reduce(toAvg, 0.0))

	p, err := Concat(evens, nil, halves, avg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 3 || !p.Reduces() {
		t.Errorf("unexpected shape %s", p)
	}

	if _, err := Concat(avg, halves); !stderrors.Is(err, ErrInvalidPipeline) {
		t.Errorf("expected non-terminal reduction to be rejected, got %v", err)
	}
	if _, err := Concat[int](); !stderrors.Is(err, ErrInvalidPipeline) {
		t.Errorf("expected empty concat to be rejected, got %v", err)
	}
}

func TestRunAs_TypeMismatch(t *testing.T) {
	seqP := MustNew(Map(half))
	_, err := RunAs[float64](seqP, []float64{1})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeTypeMismatch {
		t.Fatalf("expected TYPE_MISMATCH for a non-reducing pipeline, got %v", err)
	}

	avg := MustNew(Reduce(toAvg, 0.0))
	_, err = RunAs[int](avg, []float64{1})
	appErr, ok = errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeTypeMismatch {
		t.Fatalf("expected TYPE_MISMATCH for the wrong accumulator type, got %v", err)
	}
}

func TestPipeline_Introspection(t *testing.T) {
	p := MustNew(Filter(isEven).Named("is_even"), Map(half), Reduce(toAvg, 0.0).Named("avg"))
	if got := p.String(); got != "filter(is_even) -> map -> reduce(avg)" {
		t.Errorf("unexpected String() %q", got)
	}
	stages := p.Stages()
	if len(stages) != 3 || stages[0].Name() != "is_even" || stages[2].Kind() != KindReduce {
		t.Errorf("unexpected stages %v", stages)
	}
	if stages[2].Initial() != 0.0 {
		t.Errorf("expected initial 0, got %v", stages[2].Initial())
	}
	stages[0] = Map(half)
	if p.Stages()[0].Kind() != KindFilter {
		t.Error("Stages must return a copy")
	}
	if MustNew(Map(half)).Reduces() {
		t.Error("map-only pipeline does not reduce")
	}
	if (&Pipeline[int]{}).Reduces() {
		t.Error("zero pipeline does not reduce")
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindFilter: "filter",
		KindMap:    "map",
		KindReduce: "reduce",
		Kind(9):    "kind(9)",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestFunc(t *testing.T) {
	run := MustNew(Map(func(x int) int { return -x })).Func()
	res, err := run([]int{1, 2})
	if err != nil || !intSliceEqual(res.Values(), []int{-1, -2}) {
		t.Errorf("got %v, %v", res.Values(), err)
	}
}

func TestValueAs(t *testing.T) {
	res := Result[int]{value: "done", reduced: true}
	if v, ok := ValueAs[string](res); !ok || v != "done" {
		t.Errorf("got %q, %v", v, ok)
	}
	if _, ok := ValueAs[int](res); ok {
		t.Error("expected wrong type to report false")
	}
	if _, ok := ValueAs[string](Result[int]{values: []int{1}}); ok {
		t.Error("expected sequences to report false")
	}
}

func TestRun_ConcurrentCalls(t *testing.T) {
	p := MustNew(Filter(isEven), Map(half), Reduce(toAvg, 0.0))

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			input := make([]float64, 0, n+2)
			for v := 0; v <= n+1; v++ {
				input = append(input, float64(2*v))
			}
			got, err := RunAs[float64](p, input)
			if err != nil {
				errs <- err
				return
			}
			// evens 0..2(n+1), halves 0..n+1, average (n+1)/2
			if want := float64(n+1) / 2; got != want {
				errs <- fmt.Errorf("n=%d: got %v, want %v", n, got, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// --- Helpers ---

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
