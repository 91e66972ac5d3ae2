package bubblesort_test

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/p-n-ai/ibcs-hub/internal/activity/bubblesort"
	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

func answer(swap bool) bubblesort.Answer { return bubblesort.Answer{Swap: &swap} }

func yes() bubblesort.Answer { return answer(true) }
func no() bubblesort.Answer  { return answer(false) }

func TestNewProblem_Bounds(t *testing.T) {
	ex := bubblesort.Exercise{}
	rng := trainer.NewRand(42)
	for range 200 {
		p := ex.NewProblem(rng)
		if len(p.Values) != bubblesort.DefaultSize {
			t.Fatalf("len(Values) = %d, want %d", len(p.Values), bubblesort.DefaultSize)
		}
		for _, v := range p.Values {
			if v < bubblesort.MinValue || v > bubblesort.MaxValue {
				t.Fatalf("value %d out of range", v)
			}
		}
	}
}

func TestScenario_FiveThreeEight(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := bubblesort.Problem{Values: []int{5, 3, 8}}
	g := ex.Start(p)

	steps := []struct {
		answer    bubblesort.Answer
		comparing []int
		wantArray []int
		final     bool
	}{
		{yes(), []int{0, 1}, []int{3, 5, 8}, false},
		{no(), []int{1, 2}, []int{3, 5, 8}, false},
		{no(), []int{0, 1}, []int{3, 5, 8}, true},
	}

	for i, step := range steps {
		view := bubblesort.Render(p, g)
		if !reflect.DeepEqual(view.Comparing, step.comparing) {
			t.Fatalf("step %d: Comparing = %v, want %v", i, view.Comparing, step.comparing)
		}
		v := ex.Evaluate(p, g, step.answer)
		if v.Feedback == nil || v.Feedback.Kind != trainer.FeedbackCorrect {
			t.Fatalf("step %d: Feedback = %+v, want correct", i, v.Feedback)
		}
		if v.Final != step.final {
			t.Errorf("step %d: Final = %v, want %v", i, v.Final, step.final)
		}
		g = v.Next
		if !slices.Equal(g.Array, step.wantArray) {
			t.Errorf("step %d: Array = %v, want %v", i, g.Array, step.wantArray)
		}
	}

	if !bubblesort.Render(p, g).Complete {
		t.Error("Render().Complete = false after final step")
	}
	if !slices.Equal(p.Values, []int{5, 3, 8}) {
		t.Errorf("problem mutated: %v", p.Values)
	}
}

func TestEvaluate_WrongAnswerDoesNotAdvance(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := bubblesort.Problem{Values: []int{5, 3, 8}}
	g := ex.Start(p)

	v := ex.Evaluate(p, g, no())
	if v.Feedback.Kind != trainer.FeedbackIncorrect {
		t.Fatalf("Kind = %q, want incorrect", v.Feedback.Kind)
	}
	if v.Feedback.Message != "Incorrect. We should swap." {
		t.Errorf("Message = %q", v.Feedback.Message)
	}
	if v.Changed {
		t.Error("Changed = true for incorrect answer")
	}
}

func TestEvaluate_Unanswered(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := bubblesort.Problem{Values: []int{5, 3, 8}}

	v := ex.Evaluate(p, ex.Start(p), bubblesort.Answer{})
	if v.Feedback.Kind != trainer.FeedbackUnanswered {
		t.Errorf("Kind = %q, want unanswered", v.Feedback.Kind)
	}
}

func TestStep_EarlyExitOnSortedInput(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := bubblesort.Problem{Values: []int{1, 2, 3, 4}}
	g := ex.Start(p)

	for range 3 {
		g = bubblesort.Step(g)
	}
	if !g.Done {
		t.Fatalf("Done = false after a pass without swaps; %+v", g)
	}
	if g.Steps != 3 {
		t.Errorf("Steps = %d, want 3", g.Steps)
	}
}

func TestStep_AlwaysSortsWithinBound(t *testing.T) {
	ex := bubblesort.Exercise{}
	rng := trainer.NewRand(9)
	for range 100 {
		p := ex.NewProblem(rng)
		g := ex.Start(p)
		for !g.Done {
			g = bubblesort.Step(g)
			if g.Steps > bubblesort.MaxSteps(len(p.Values)) {
				t.Fatalf("Steps = %d exceeds bound for %v", g.Steps, p.Values)
			}
		}
		if !slices.IsSorted(g.Array) {
			t.Errorf("Array = %v, not sorted", g.Array)
		}
	}
}

func TestRender_ShowsPreviousOutcome(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := bubblesort.Problem{Values: []int{5, 3, 8}}
	g := ex.Start(p)

	if got := bubblesort.Render(p, g).Previous; got != "" {
		t.Errorf("Render().Previous = %q before any answer, want empty", got)
	}

	g = ex.Evaluate(p, g, yes()).Next
	view := bubblesort.Render(p, g)
	if view.Previous != "Swapped! New order: 3, 5." {
		t.Errorf("Render().Previous = %q, want swap outcome", view.Previous)
	}
	if !strings.HasPrefix(view.Message, "Comparing") {
		t.Errorf("Render().Message = %q, want next comparison", view.Message)
	}

	g = ex.Evaluate(p, g, no()).Next
	if got := bubblesort.Render(p, g).Previous; got != "No swap needed. Elements are in order." {
		t.Errorf("Render().Previous = %q, want no-swap outcome", got)
	}
}

func TestRender_Idempotent(t *testing.T) {
	ex := bubblesort.Exercise{}
	p := ex.NewProblem(trainer.NewRand(3))
	g := bubblesort.Step(ex.Start(p))

	a := bubblesort.Render(p, g)
	b := bubblesort.Render(p, g)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Render() not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestSession_EndToEnd(t *testing.T) {
	s := trainer.NewSession[bubblesort.Problem, bubblesort.Progress, bubblesort.Answer](
		fixed{bubblesort.Problem{Values: []int{5, 3, 8}}}, trainer.WithDelay(0))

	for _, a := range []bubblesort.Answer{yes(), no(), no()} {
		if _, err := s.Submit(a); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	snap := s.Snapshot()
	if !snap.Complete() {
		t.Fatalf("Phase = %q, want complete", snap.Phase)
	}
	if !slices.Equal(snap.Progress.Array, []int{3, 5, 8}) {
		t.Errorf("Array = %v, want [3 5 8]", snap.Progress.Array)
	}
}

// fixed serves the same problem on every reset.
type fixed struct {
	p bubblesort.Problem
}

func (f fixed) NewProblem(*rand.Rand) bubblesort.Problem { return f.p }
func (f fixed) Start(p bubblesort.Problem) bubblesort.Progress {
	return bubblesort.Exercise{}.Start(p)
}
func (f fixed) Evaluate(p bubblesort.Problem, g bubblesort.Progress, a bubblesort.Answer) trainer.Verdict[bubblesort.Progress] {
	return bubblesort.Exercise{}.Evaluate(p, g, a)
}
