package ai

import (
	"testing"
)

func TestInMemoryBudget_Check(t *testing.T) {
	quiz := TaskQuiz.String()

	tests := []struct {
		name   string
		budget int64
		used   []int
		want   bool
	}{
		{"unset is unlimited", -1, []int{1 << 20}, true},
		{"zero is unlimited", 0, []int{1 << 20}, true},
		{"within budget", 1000, []int{500}, true},
		{"exhausted exactly", 100, []int{100}, false},
		{"over budget", 100, []int{60, 60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewInMemoryBudget()
			if tt.budget >= 0 {
				b.SetBudget(quiz, tt.budget)
			}
			for _, tokens := range tt.used {
				if err := b.Record(quiz, tokens); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			ok, err := b.Check(quiz)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Check(%q) = %v, want %v", quiz, ok, tt.want)
			}
		})
	}
}

func TestInMemoryBudget_ContentKindsAreIsolated(t *testing.T) {
	b := NewInMemoryBudget()
	for _, task := range []TaskType{TaskQuiz, TaskLessonPlan} {
		b.SetBudget(task.String(), 500)
	}

	// A long lesson plan must not starve quiz generation.
	if err := b.Record(TaskLessonPlan.String(), 800); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := b.Record(TaskQuiz.String(), 120); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if ok, _ := b.Check(TaskLessonPlan.String()); ok {
		t.Error("Check(lesson_plan) = true, want false after 800 of 500 tokens")
	}
	if ok, _ := b.Check(TaskQuiz.String()); !ok {
		t.Error("Check(quiz) = false, want true after 120 of 500 tokens")
	}
	if ok, _ := b.Check(TaskWorksheet.String()); !ok {
		t.Error("Check(worksheet) = false, want true with no budget set")
	}

	used, budget, err := b.Usage(TaskLessonPlan.String())
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if used != 800 || budget != 500 {
		t.Errorf("Usage(lesson_plan) = %d/%d, want 800/500", used, budget)
	}
}

func TestInMemoryBudget_SetZeroLiftsCap(t *testing.T) {
	b := NewInMemoryBudget()
	scope := TaskWorksheet.String()
	b.SetBudget(scope, 10)
	_ = b.Record(scope, 10)

	if ok, _ := b.Check(scope); ok {
		t.Fatal("Check() = true, want false at the cap")
	}
	b.SetBudget(scope, 0)
	if ok, _ := b.Check(scope); !ok {
		t.Error("Check() = false after SetBudget(0), want unlimited")
	}
	if used, _, _ := b.Usage(scope); used != 10 {
		t.Errorf("Usage() used = %d, want 10 kept after lifting the cap", used)
	}
}

func TestInMemoryBudget_NegativeTokens(t *testing.T) {
	if err := NewInMemoryBudget().Record(TaskIAHelp.String(), -10); err == nil {
		t.Fatal("Record() should return error for negative tokens")
	}
}
