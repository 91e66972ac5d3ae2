package bubblesort

import (
	"fmt"
	"slices"
)

// BarState is how one array element is drawn.
type BarState string

const (
	BarIdle      BarState = "idle"
	BarComparing BarState = "comparing"
	BarSorted    BarState = "sorted"
)

type Bar struct {
	Value int      `json:"value"`
	State BarState `json:"state"`
}

// View is the render model for the bubble sort trainer.
type View struct {
	Bars      []Bar  `json:"bars"`
	Comparing []int  `json:"comparing,omitempty"`
	Question  string `json:"question,omitempty"`
	Message   string `json:"message"`
	// Previous is the outcome of the last comparison.
	Previous string `json:"previous,omitempty"`
	Pass     int    `json:"pass"`
	Complete bool   `json:"complete"`
}

// Render projects the problem and progress into a view. It does not modify its
// arguments.
func Render(_ Problem, g Progress) View {
	v := View{
		Bars:     make([]Bar, len(g.Array)),
		Pass:     g.Pass + 1,
		Complete: g.Done,
		Previous: g.LastMessage,
	}
	for i, value := range g.Array {
		state := BarIdle
		switch {
		case g.Done || slices.Contains(g.Sorted, i):
			state = BarSorted
		case i == g.Index || i == g.Index+1:
			state = BarComparing
		}
		v.Bars[i] = Bar{Value: value, State: state}
	}

	if g.Done {
		v.Message = "Array is fully sorted! Click \"Reset\" to try again."
		return v
	}

	j := g.Index
	v.Comparing = []int{j, j + 1}
	v.Question = fmt.Sprintf("Should we swap %d and %d?", g.Array[j], g.Array[j+1])
	v.Message = fmt.Sprintf("Comparing elements at index %d (%d) and %d (%d).", j, g.Array[j], j+1, g.Array[j+1])
	return v
}
