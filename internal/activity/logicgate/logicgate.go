// Package logicgate implements the logic gate simulator: given a gate and its
// input bits, the trainee states the output bit.
package logicgate

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

type Gate string

const (
	AND  Gate = "AND"
	OR   Gate = "OR"
	NOT  Gate = "NOT"
	NAND Gate = "NAND"
	NOR  Gate = "NOR"
	XOR  Gate = "XOR"
)

// Gates lists every gate kind in draw order.
var Gates = []Gate{AND, OR, NOT, NAND, NOR, XOR}

var explanations = map[Gate]string{
	AND:  "Outputs 1 only if BOTH inputs are 1.",
	OR:   "Outputs 1 if AT LEAST ONE input is 1.",
	NOT:  "Outputs the INVERSE of the single input (1 becomes 0, 0 becomes 1).",
	NAND: "Outputs 0 only if BOTH inputs are 1. It is the opposite of AND.",
	NOR:  "Outputs 1 only if BOTH inputs are 0. It is the opposite of OR.",
	XOR:  "Outputs 1 only if the inputs are DIFFERENT (one is 1, the other is 0).",
}

// Unary reports whether the gate reads only input A.
func (g Gate) Unary() bool {
	return g == NOT
}

// Explanation describes the gate's rule.
func (g Gate) Explanation() string {
	return explanations[g]
}

// Eval computes the gate's output. b is ignored for NOT.
func (g Gate) Eval(a, b int) int {
	x, y := a == 1, b == 1
	var out bool
	switch g {
	case AND:
		out = x && y
	case OR:
		out = x || y
	case NOT:
		out = !x
	case NAND:
		out = !(x && y)
	case NOR:
		out = !(x || y)
	case XOR:
		out = x != y
	}
	if out {
		return 1
	}
	return 0
}

// Problem is a gate with its inputs. B is always 0 for NOT.
type Problem struct {
	Gate   Gate `json:"gate"`
	A      int  `json:"a"`
	B      int  `json:"b"`
	Output int  `json:"output"`
}

// NewProblemFrom fixes the gate and inputs and computes the expected output.
func NewProblemFrom(g Gate, a, b int) Problem {
	if g.Unary() {
		b = 0
	}
	return Problem{Gate: g, A: a, B: b, Output: g.Eval(a, b)}
}

type Progress struct {
	Submitted string `json:"submitted,omitempty"`
	Checked   bool   `json:"checked"`
}

// Answer is the output bit as text, "0" or "1".
type Answer struct {
	Output string `json:"output"`
}

type Exercise struct{}

func (Exercise) NewProblem(rng *rand.Rand) Problem {
	g := trainer.Pick(rng, Gates)
	a := rng.IntN(2)
	b := 0
	if !g.Unary() {
		b = rng.IntN(2)
	}
	return NewProblemFrom(g, a, b)
}

func (Exercise) Start(Problem) Progress {
	return Progress{}
}

// Evaluate checks the output bit in one shot.
func (Exercise) Evaluate(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.Checked {
		return trainer.Reject[Progress](trainer.Unanswered("This answer has already been checked."))
	}
	out := strings.TrimSpace(a.Output)
	if out == "" {
		return trainer.Reject[Progress](trainer.Unanswered("Please select an output value."))
	}

	next := Progress{Submitted: out, Checked: true}
	expl := p.Gate.Explanation() + " " + inputsLine(p)
	switch out {
	case "0", "1":
	default:
		msg := fmt.Sprintf("Not quite. The correct answer was %d.", p.Output)
		return trainer.Conclude(trainer.Incorrect(msg, "The output of a logic gate is a single bit, 0 or 1. "+expl), next)
	}

	if out == fmt.Sprint(p.Output) {
		return trainer.Conclude(trainer.Correct("Correct! Well done.", expl), next)
	}
	return trainer.Conclude(trainer.Incorrect(fmt.Sprintf("Not quite. The correct answer was %d.", p.Output), expl), next)
}

func inputsLine(p Problem) string {
	if p.Gate.Unary() {
		return fmt.Sprintf("For input A=%d, the correct output is %d.", p.A, p.Output)
	}
	return fmt.Sprintf("For inputs A=%d, B=%d, the correct output is %d.", p.A, p.B, p.Output)
}
