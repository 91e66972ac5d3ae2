// Package bstree implements the binary search tree trainer. In INSERT mode the
// trainee chooses left or right at each node on the way to the insertion point;
// in SEARCH mode the trainee traces the search path by selecting nodes and then
// checks it in one go.
package bstree

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	TreeSize = 7
	MinValue = 10
	MaxValue = 99

	searchMemberRate = 0.7
)

// Operation is the exercise kind.
type Operation string

const (
	OpInsert Operation = "INSERT"
	OpSearch Operation = "SEARCH"
)

// Direction is one descent decision.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Problem is a generated tree and a target value.
type Problem struct {
	Operation   Operation `json:"operation"`
	Value       int       `json:"value"`
	Inserted    []int     `json:"inserted"`
	Tree        Tree      `json:"tree"`
	After       Tree      `json:"after"`
	CorrectPath []int     `json:"correct_path"`
	Exists      bool      `json:"exists"`
}

// NewProblemFrom builds a problem from explicit insertion order and target.
func NewProblemFrom(op Operation, values []int, target int) Problem {
	tree := Build(values)
	p := Problem{
		Operation:   op,
		Value:       target,
		Inserted:    slices.Clone(values),
		Tree:        tree,
		After:       tree,
		CorrectPath: tree.Path(target),
		Exists:      tree.Contains(target),
	}
	if op == OpInsert {
		p.After = tree.Insert(target)
	}
	return p
}

// Progress tracks the INSERT step index and the SEARCH path being traced.
type Progress struct {
	PathIndex int   `json:"path_index"`
	UserPath  []int `json:"user_path"`
	Checked   bool  `json:"checked"`
}

// Answer is one trainee action. INSERT uses Direction; SEARCH uses Toggle to
// add or remove a node from the traced path and Check to submit it.
type Answer struct {
	Direction Direction `json:"direction,omitempty"`
	Toggle    *int      `json:"toggle,omitempty"`
	Check     bool      `json:"check,omitempty"`
}

type Exercise struct{}

// NewProblem draws TreeSize distinct values and a target. INSERT targets are
// always absent; SEARCH targets are members with probability 0.7.
func (Exercise) NewProblem(rng *rand.Rand) Problem {
	values := make([]int, 0, TreeSize)
	for len(values) < TreeSize {
		v := trainer.IntIn(rng, MinValue, MaxValue)
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}

	op := OpSearch
	if rng.IntN(2) == 0 {
		op = OpInsert
	}

	var target int
	if op == OpSearch && rng.Float64() < searchMemberRate {
		target = trainer.Pick(rng, values)
	} else {
		target = absentValue(rng, values)
	}
	return NewProblemFrom(op, values, target)
}

func absentValue(rng *rand.Rand, values []int) int {
	for {
		v := trainer.IntIn(rng, MinValue, MaxValue)
		if !slices.Contains(values, v) {
			return v
		}
	}
}

func (Exercise) Start(Problem) Progress {
	return Progress{}
}

func (Exercise) Evaluate(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if p.Operation == OpInsert {
		return evaluateInsert(p, g, a)
	}
	return evaluateSearch(p, g, a)
}

// Expected returns the direction to take from the node at path position i.
func (p Problem) Expected(i int) Direction {
	if p.Value < p.CorrectPath[i] {
		return Left
	}
	return Right
}

func evaluateInsert(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.PathIndex >= len(p.CorrectPath) {
		return trainer.Reject[Progress](trainer.Unanswered("The value has already been inserted."))
	}
	dir := Direction(strings.ToLower(strings.TrimSpace(string(a.Direction))))
	switch dir {
	case "":
		return trainer.Reject[Progress](trainer.Unanswered("Choose Go Left or Go Right."))
	case Left, Right:
	default:
		return trainer.Reject[Progress](trainer.Incorrect("Answer left or right.", ""))
	}

	node := p.CorrectPath[g.PathIndex]
	want := p.Expected(g.PathIndex)
	if dir != want {
		hint := fmt.Sprintf("Compare %d with %d: smaller values go left, larger values go right.", p.Value, node)
		return trainer.Reject[Progress](trainer.Incorrect("Incorrect. Try again.", hint))
	}

	next := Progress{PathIndex: g.PathIndex + 1}
	final := next.PathIndex == len(p.CorrectPath)
	expl := ""
	if final {
		expl = fmt.Sprintf("%d is inserted as the %s child of %d.", p.Value, want, node)
	}
	return trainer.Advance(trainer.Correct("Correct!", expl), next, final)
}

func evaluateSearch(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.Checked {
		return trainer.Reject[Progress](trainer.Unanswered("The path has already been checked."))
	}

	if a.Toggle != nil {
		v := *a.Toggle
		if p.Tree.Find(v) == Nil {
			return trainer.Reject[Progress](trainer.Unanswered(fmt.Sprintf("%d is not a node in the tree.", v)))
		}
		return trainer.Edit(Progress{UserPath: toggle(g.UserPath, v)})
	}

	if !a.Check {
		return trainer.Reject[Progress](trainer.Unanswered("Select nodes to trace the path, then check your answer."))
	}
	if len(g.UserPath) == 0 {
		return trainer.Reject[Progress](trainer.Unanswered("Select at least one node before checking the path."))
	}

	next := Progress{UserPath: slices.Clone(g.UserPath), Checked: true}
	if slices.Equal(g.UserPath, p.CorrectPath) {
		msg := fmt.Sprintf("Correct path! Value %d was found.", p.Value)
		if !p.Exists {
			msg = fmt.Sprintf("Correct path! Value %d is not in the tree.", p.Value)
		}
		return trainer.Conclude(trainer.Correct(msg, ""), next)
	}
	msg := "Incorrect path. The correct path was: " + FormatPath(p.CorrectPath)
	return trainer.Conclude(trainer.Incorrect(msg, searchHint(p)), next)
}

func searchHint(p Problem) string {
	if p.Exists {
		return fmt.Sprintf("Start at the root and compare %d with each node, stopping when you reach it.", p.Value)
	}
	return fmt.Sprintf("Start at the root and compare %d with each node, stopping at the last node before an empty child.", p.Value)
}

func toggle(path []int, v int) []int {
	if i := slices.Index(path, v); i >= 0 {
		return slices.Delete(slices.Clone(path), i, i+1)
	}
	return append(slices.Clone(path), v)
}

// FormatPath joins path values with arrows.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " -> ")
}
