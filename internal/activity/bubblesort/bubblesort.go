// Package bubblesort implements the bubble sort step trainer: the trainee
// predicts, one comparison at a time, whether the pair under comparison must be
// swapped.
package bubblesort

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	DefaultSize = 8
	MinValue    = 10
	MaxValue    = 99
)

// Problem is the array to sort as generated.
type Problem struct {
	Values []int `json:"values"`
}

// Progress is the array-in-progress and the loop counters of the sort.
type Progress struct {
	Array           []int  `json:"array"`
	Pass            int    `json:"pass"`
	Index           int    `json:"index"`
	SwappedThisPass bool   `json:"swapped_this_pass"`
	Sorted          []int  `json:"sorted"`
	Steps           int    `json:"steps"`
	Done            bool   `json:"done"`
	LastMessage     string `json:"last_message,omitempty"`
}

// Answer is the trainee's swap decision. A nil Swap is an empty submission.
type Answer struct {
	Swap *bool `json:"swap"`
}

// Exercise generates arrays of Size values.
type Exercise struct {
	Size int
}

func (e Exercise) size() int {
	if e.Size < 2 {
		return DefaultSize
	}
	return e.Size
}

// NewProblem draws Size values uniformly from [MinValue, MaxValue]. Duplicates
// are allowed.
func (e Exercise) NewProblem(rng *rand.Rand) Problem {
	values := make([]int, e.size())
	for i := range values {
		values[i] = trainer.IntIn(rng, MinValue, MaxValue)
	}
	return Problem{Values: values}
}

// Start returns progress positioned at the first comparison.
func (Exercise) Start(p Problem) Progress {
	return Progress{Array: slices.Clone(p.Values), Done: len(p.Values) < 2}
}

// Evaluate judges a swap decision against the live array.
func (Exercise) Evaluate(_ Problem, g Progress, a Answer) trainer.Verdict[Progress] {
	if g.Done {
		return trainer.Reject[Progress](trainer.Unanswered("The array is already sorted."))
	}
	if a.Swap == nil {
		return trainer.Reject[Progress](trainer.Unanswered("Choose Yes or No."))
	}

	left, right := g.Array[g.Index], g.Array[g.Index+1]
	want := ShouldSwap(g)
	if *a.Swap != want {
		msg := "Incorrect. We should not swap."
		hint := fmt.Sprintf("%d is not greater than %d, so the pair is already in order.", left, right)
		if want {
			msg = "Incorrect. We should swap."
			hint = fmt.Sprintf("%d is greater than %d, so the larger value must move right.", left, right)
		}
		return trainer.Reject[Progress](trainer.Incorrect(msg, hint))
	}

	next := Step(g)
	return trainer.Advance(trainer.Correct("Correct!", next.LastMessage), next, next.Done)
}

// ShouldSwap reports the ground truth for the current comparison.
func ShouldSwap(g Progress) bool {
	return g.Array[g.Index] > g.Array[g.Index+1]
}

// Step performs the current comparison on a copy of g and moves the loop
// counters. The sort ends after n-1 passes, or earlier once a full pass makes no
// swap.
func Step(g Progress) Progress {
	next := Progress{
		Array:           slices.Clone(g.Array),
		Pass:            g.Pass,
		Index:           g.Index,
		SwappedThisPass: g.SwappedThisPass,
		Sorted:          slices.Clone(g.Sorted),
		Steps:           g.Steps + 1,
	}
	n := len(next.Array)
	j := next.Index

	if next.Array[j] > next.Array[j+1] {
		next.Array[j], next.Array[j+1] = next.Array[j+1], next.Array[j]
		next.SwappedThisPass = true
		next.LastMessage = fmt.Sprintf("Swapped! New order: %d, %d.", next.Array[j], next.Array[j+1])
	} else {
		next.LastMessage = "No swap needed. Elements are in order."
	}

	next.Index++
	if next.Index < n-1-next.Pass {
		return next
	}

	next.Sorted = append(next.Sorted, n-1-next.Pass)
	earlyExit := !next.SwappedThisPass
	next.Pass++
	next.Index = 0
	next.SwappedThisPass = false
	if next.Pass >= n-1 || earlyExit {
		next.Done = true
		next.Sorted = allIndices(n)
		next.LastMessage = "Array is fully sorted!"
	}
	return next
}

// MaxSteps bounds the number of comparisons for an array of n values.
func MaxSteps(n int) int {
	return n * (n - 1) / 2
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
