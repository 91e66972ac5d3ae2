// Package linkedlist implements the linked list pointer trainer: each problem
// is one operation on a short list, taught as a fixed two-step script about the
// order of pointer changes.
package linkedlist

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	MinNodes = 3
	MaxNodes = 4
	MinValue = 10
	MaxValue = 99

	// NewNodeID identifies the node created by an insert.
	NewNodeID = 100
)

type Operation string

const (
	OpInsertHead Operation = "INSERT_HEAD"
	OpInsertTail Operation = "INSERT_TAIL"
	OpDelete     Operation = "DELETE"
)

var operations = []Operation{OpInsertHead, OpInsertTail, OpDelete}

// Step is one scripted question.
type Step struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
	Hint     string   `json:"hint"`
}

// Problem is a list, an operation on it, and the script that teaches it.
type Problem struct {
	Operation Operation `json:"operation"`
	Value     int       `json:"value"`
	Target    int       `json:"target"`
	Before    List      `json:"before"`
	After     List      `json:"after"`
	Steps     []Step    `json:"steps"`
}

type Progress struct {
	Step int `json:"step"`
}

// Answer is the chosen option text.
type Answer struct {
	Option string `json:"option"`
}

type Exercise struct{}

// NewProblem draws a 3 or 4 node list and a uniformly chosen operation. DELETE
// only ever targets an interior node.
func (Exercise) NewProblem(rng *rand.Rand) Problem {
	values := make([]int, trainer.IntIn(rng, MinNodes, MaxNodes))
	for i := range values {
		values[i] = trainer.IntIn(rng, MinValue, MaxValue)
	}
	list := FromValues(values)

	op := trainer.Pick(rng, operations)
	if op == OpDelete {
		chain := list.Chain()
		var target Node
		for {
			target = trainer.Pick(rng, chain)
			if target.ID != list.Head && target.ID != list.Tail() {
				break
			}
		}
		return NewProblemFrom(list, op, target.ID, target.Value)
	}
	return NewProblemFrom(list, op, NewNodeID, trainer.IntIn(rng, MinValue, MaxValue))
}

// NewProblemFrom builds the problem for op on list. For inserts target is the
// new node's ID; for DELETE it is the ID of the node to remove.
func NewProblemFrom(list List, op Operation, target, value int) Problem {
	p := Problem{Operation: op, Value: value, Target: target, Before: list}
	switch op {
	case OpInsertHead:
		p.After = list.InsertHead(target, value)
		p.Steps = insertHeadScript()
	case OpInsertTail:
		p.After = list.InsertTail(target, value)
		p.Steps = insertTailScript()
	case OpDelete:
		removed, _ := list.Get(target)
		prev, _ := list.Predecessor(target)
		p.After = list.Delete(target)
		p.Steps = deleteScript(removed.Value, prev.Value)
	}
	return p
}

func insertHeadScript() []Step {
	return []Step{
		{
			Question: "To insert a new node at the head, what is the first step?",
			Options:  []string{"Point the old head to the new node", "Point the new node's `next` to the current head", "Change the head pointer last"},
			Correct:  "Point the new node's `next` to the current head",
			Hint:     "If the head moves first, nothing points at the rest of the list any more.",
		},
		{
			Question: "After setting the new node's `next` pointer, what is the final step?",
			Options:  []string{"Set the old head's `next` to null", "Update the head pointer to point to the new node", "Nothing, it's done"},
			Correct:  "Update the head pointer to point to the new node",
			Hint:     "The list is reached through the head pointer, which still names the old first node.",
		},
	}
}

func insertTailScript() []Step {
	return []Step{
		{
			Question: "To insert at the tail, what must we find first?",
			Options:  []string{"The head node", "The second node", "The last node (where `next` is null)"},
			Correct:  "The last node (where `next` is null)",
			Hint:     "The new node goes after the node whose `next` is null.",
		},
		{
			Question: "Once we find the last node, what do we do?",
			Options:  []string{"Set its `next` pointer to the new node", "Set the new node's `next` to the last node", "Update the head pointer"},
			Correct:  "Set its `next` pointer to the new node",
			Hint:     "Links point forward, from the old tail to the new node.",
		},
	}
}

func deleteScript(value, prev int) []Step {
	return []Step{
		{
			Question: fmt.Sprintf("To delete node %d, which node's pointer must we change?", value),
			Options:  []string{fmt.Sprintf("Node %d", value), fmt.Sprintf("The node before it (%d)", prev), "The node after it"},
			Correct:  fmt.Sprintf("The node before it (%d)", prev),
			Hint:     fmt.Sprintf("Only the node pointing at %d has to bypass it.", value),
		},
		{
			Question: fmt.Sprintf("What should node %d's `next` pointer now point to?", prev),
			Options:  []string{"null", fmt.Sprintf("Node %d", value), fmt.Sprintf("The node that %d was pointing to", value)},
			Correct:  fmt.Sprintf("The node that %d was pointing to", value),
			Hint:     "Pointing to null would cut off every node after the deleted one.",
		},
	}
}

func (Exercise) Start(Problem) Progress {
	return Progress{}
}

// Evaluate judges the chosen option for the current script step.
func (Exercise) Evaluate(p Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.Step >= len(p.Steps) {
		return trainer.Reject[Progress](trainer.Unanswered("The operation is already complete."))
	}
	option := strings.TrimSpace(a.Option)
	if option == "" {
		return trainer.Reject[Progress](trainer.Unanswered("Choose one of the options."))
	}

	step := p.Steps[g.Step]
	if option != step.Correct {
		hint := step.Hint
		if !slices.Contains(step.Options, option) {
			hint = "Choose one of the listed options."
		}
		return trainer.Reject[Progress](trainer.Incorrect("Not quite. Think about the order of pointer changes.", hint))
	}

	next := Progress{Step: g.Step + 1}
	if next.Step == len(p.Steps) {
		return trainer.Advance(trainer.Correct("Operation Complete!", "You have successfully manipulated the linked list."), next, true)
	}
	return trainer.Advance(trainer.Correct("Correct! Proceeding to the next step.", ""), next, false)
}
