package numconv_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/p-n-ai/ibcs-hub/internal/activity/numconv"
	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

func TestRoundTrip(t *testing.T) {
	for n := numconv.MinValue; n <= numconv.MaxValue; n++ {
		for _, b := range []numconv.Base{numconv.Binary, numconv.Hexadecimal, numconv.Decimal} {
			s := numconv.Format(n, b)
			got, err := numconv.Parse(s, b)
			if err != nil {
				t.Fatalf("Parse(%q, %s) error = %v", s, b, err)
			}
			if got != n {
				t.Fatalf("Parse(Format(%d, %s)) = %d", n, b, got)
			}
			if s != strings.ToUpper(s) {
				t.Fatalf("Format(%d, %s) = %q, want upper case", n, b, s)
			}
			if len(s) > 1 && s[0] == '0' {
				t.Fatalf("Format(%d, %s) = %q has leading zero", n, b, s)
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		base    numconv.Base
		want    int
		wantErr bool
	}{
		{"a", numconv.Hexadecimal, 10, false},
		{"A", numconv.Hexadecimal, 10, false},
		{" ff ", numconv.Hexadecimal, 255, false},
		{"0xFF", numconv.Hexadecimal, 255, false},
		{"0B", numconv.Hexadecimal, 11, false},
		{"1010 1010", numconv.Binary, 170, false},
		{"0b1010", numconv.Binary, 10, false},
		{"00001010", numconv.Binary, 10, false},
		{"42", numconv.Decimal, 42, false},
		{"G1", numconv.Hexadecimal, 0, true},
		{"102", numconv.Binary, 0, true},
		{"12A", numconv.Decimal, 0, true},
		{"-5", numconv.Decimal, 0, true},
		{"0x", numconv.Hexadecimal, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := numconv.Parse(tt.in, tt.base)
			if tt.wantErr {
				if !errors.Is(err, numconv.ErrInvalidAnswerFormat) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidAnswerFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvaluate_BinaryToHexScenario(t *testing.T) {
	ex := numconv.Exercise{}
	p := numconv.NewProblemFrom(numconv.Conversion{From: numconv.Binary, To: numconv.Hexadecimal}, 10)
	if p.Operand != "1010" || p.Answer != "A" {
		t.Fatalf("problem = %+v, want 1010 -> A", p)
	}

	for _, answer := range []string{"a", "A"} {
		v := ex.Evaluate(p, ex.Start(p), numconv.Answer{Text: answer})
		if v.Feedback.Kind != trainer.FeedbackCorrect {
			t.Errorf("answer %q: Kind = %q, want correct", answer, v.Feedback.Kind)
		}
		if !v.Final {
			t.Errorf("answer %q: Final = false", answer)
		}
	}
}

func TestEvaluate_Outcomes(t *testing.T) {
	ex := numconv.Exercise{}
	p := numconv.NewProblemFrom(numconv.Conversion{From: numconv.Decimal, To: numconv.Binary}, 13)

	tests := []struct {
		name  string
		text  string
		want  trainer.FeedbackKind
		final bool
		expl  string
	}{
		{"empty", "", trainer.FeedbackUnanswered, false, ""},
		{"correct", "1101", trainer.FeedbackCorrect, true, ""},
		{"wrong value", "1011", trainer.FeedbackIncorrect, true, "13 / 2 = 6 remainder 1"},
		{"bad format", "13", trainer.FeedbackIncorrect, true, "use only the digits 0 and 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ex.Evaluate(p, ex.Start(p), numconv.Answer{Text: tt.text})
			if v.Feedback.Kind != tt.want {
				t.Fatalf("Kind = %q, want %q", v.Feedback.Kind, tt.want)
			}
			if v.Final != tt.final {
				t.Errorf("Final = %v, want %v", v.Final, tt.final)
			}
			if tt.want == trainer.FeedbackIncorrect && v.Feedback.Message != "Not quite. The correct answer was 1101." {
				t.Errorf("Message = %q", v.Feedback.Message)
			}
			if !strings.Contains(v.Feedback.Explanation, tt.expl) {
				t.Errorf("Explanation = %q, want it to contain %q", v.Feedback.Explanation, tt.expl)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		conv   numconv.Conversion
		n      int
		method numconv.Method
		text   string
	}{
		{numconv.Conversion{From: numconv.Decimal, To: numconv.Hexadecimal}, 175, numconv.MethodDivision, "175 / 16 = 10 remainder F\n10 / 16 = 0 remainder A"},
		{numconv.Conversion{From: numconv.Binary, To: numconv.Decimal}, 10, numconv.MethodExpansion, "(1 × 2^3) + (0 × 2^2) + (1 × 2^1) + (0 × 2^0)\n= 8 + 0 + 2 + 0\n= 10"},
		{numconv.Conversion{From: numconv.Hexadecimal, To: numconv.Decimal}, 175, numconv.MethodExpansion, "(A × 16^1) + (F × 16^0)\n= 160 + 15\n= 175"},
		{numconv.Conversion{From: numconv.Binary, To: numconv.Hexadecimal}, 21, numconv.MethodGrouping, "0001 = 1\n0101 = 5"},
		{numconv.Conversion{From: numconv.Hexadecimal, To: numconv.Binary}, 21, numconv.MethodGrouping, "0001 = 1\n0101 = 5"},
	}
	for _, tt := range tests {
		p := numconv.NewProblemFrom(tt.conv, tt.n)
		e := numconv.Explain(p)
		if e.Method != tt.method {
			t.Errorf("%v: Method = %q, want %q", tt.conv, e.Method, tt.method)
		}
		if !strings.Contains(e.Text(), tt.text) {
			t.Errorf("%v: Text() = %q, want it to contain %q", tt.conv, e.Text(), tt.text)
		}
	}
}

func TestNewProblem_Bounds(t *testing.T) {
	ex := numconv.Exercise{}
	rng := trainer.NewRand(77)
	seen := map[numconv.Conversion]bool{}
	for range 600 {
		p := ex.NewProblem(rng)
		seen[p.Conversion] = true
		if p.From == p.To {
			t.Fatalf("same-base conversion %v", p.Conversion)
		}
		if p.Value < numconv.MinValue || p.Value > numconv.MaxValue {
			t.Fatalf("Value = %d out of range", p.Value)
		}
	}
	if len(seen) != len(numconv.Conversions) {
		t.Errorf("conversions drawn = %d, want %d", len(seen), len(numconv.Conversions))
	}
}

func TestRender_HidesAnswerUntilChecked(t *testing.T) {
	ex := numconv.Exercise{}
	p := numconv.NewProblemFrom(numconv.Conversion{From: numconv.Decimal, To: numconv.Hexadecimal}, 200)

	before := numconv.Render(p, ex.Start(p))
	if before.Answer != "" || before.Explanation != nil {
		t.Error("answer visible before check")
	}
	if before.Prompt != "Convert the decimal number 200 to hexadecimal." {
		t.Errorf("Prompt = %q", before.Prompt)
	}

	g := ex.Evaluate(p, ex.Start(p), numconv.Answer{Text: "c8"}).Next
	after := numconv.Render(p, g)
	if after.Answer != "C8" || !after.Complete {
		t.Errorf("Render() after check = %+v", after)
	}
	if !reflect.DeepEqual(after, numconv.Render(p, g)) {
		t.Error("Render() not idempotent")
	}
}
