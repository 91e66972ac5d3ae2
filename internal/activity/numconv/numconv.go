// Package numconv implements the number-base conversion trainer over decimal,
// binary and hexadecimal.
package numconv

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	MinValue = 10
	MaxValue = 255
)

// Conversion is an ordered pair of distinct bases.
type Conversion struct {
	From Base `json:"from"`
	To   Base `json:"to"`
}

// Conversions lists the six ordered pairs.
var Conversions = []Conversion{
	{Decimal, Binary},
	{Binary, Decimal},
	{Decimal, Hexadecimal},
	{Hexadecimal, Decimal},
	{Binary, Hexadecimal},
	{Hexadecimal, Binary},
}

type Problem struct {
	Conversion
	Value   int    `json:"value"`
	Operand string `json:"operand"`
	Answer  string `json:"answer"`
}

// NewProblemFrom builds the problem of converting n along c.
func NewProblemFrom(c Conversion, n int) Problem {
	return Problem{
		Conversion: c,
		Value:      n,
		Operand:    Format(n, c.From),
		Answer:     Format(n, c.To),
	}
}

type Progress struct {
	Submitted string `json:"submitted,omitempty"`
	Checked   bool   `json:"checked"`
}

type Answer struct {
	Text string `json:"text"`
}

type Exercise struct{}

func (Exercise) NewProblem(rng *rand.Rand) Problem {
	return NewProblemFrom(trainer.Pick(rng, Conversions), trainer.IntIn(rng, MinValue, MaxValue))
}

func (Exercise) Start(Problem) Progress {
	return Progress{}
}

// Evaluate parses the answer in the target base and compares values.
func (Exercise) Evaluate(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.Checked {
		return trainer.Reject[Progress](trainer.Unanswered("This answer has already been checked."))
	}
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return trainer.Reject[Progress](trainer.Unanswered("Please enter your answer."))
	}

	next := Progress{Submitted: text, Checked: true}
	wrong := fmt.Sprintf("Not quite. The correct answer was %s.", p.Answer)
	n, err := Parse(text, p.To)
	if err != nil {
		expl := fmt.Sprintf("%q is not a %s number: use only the digits %s. %s",
			text, strings.ToLower(string(p.To)), p.To.digits(), Explain(p).Text())
		return trainer.Conclude(trainer.Incorrect(wrong, expl), next)
	}
	if n != p.Value {
		return trainer.Conclude(trainer.Incorrect(wrong, Explain(p).Text()), next)
	}
	return trainer.Conclude(trainer.Correct("Correct! Well done.", ""), next)
}
