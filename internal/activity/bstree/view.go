package bstree

import (
	"fmt"
	"slices"
)

type NodeView struct {
	Value       int     `json:"value"`
	Level       int     `json:"level"`
	X           float64 `json:"x"`
	Root        bool    `json:"root"`
	Highlighted bool    `json:"highlighted"`
	OnUserPath  bool    `json:"on_user_path"`
	Clickable   bool    `json:"clickable"`
}

// Edge connects a parent value to a child value.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type View struct {
	Operation   Operation  `json:"operation"`
	Value       int        `json:"value"`
	Nodes       []NodeView `json:"nodes"`
	Edges       []Edge     `json:"edges"`
	Instruction string     `json:"instruction"`
	Expected    *int       `json:"expected,omitempty"`
	UserPath    []int      `json:"user_path"`
	Choices     []string   `json:"choices,omitempty"`
	Complete    bool       `json:"complete"`
}

// Render projects the problem and progress into a view. Once an insertion is
// complete the tree containing the new value is shown.
func Render(p Problem, g Progress) View {
	complete := g.Checked
	if p.Operation == OpInsert {
		complete = g.PathIndex >= len(p.CorrectPath)
	}

	tree := p.Tree
	if complete {
		tree = p.After
	}

	v := View{
		Operation: p.Operation,
		Value:     p.Value,
		UserPath:  slices.Clone(g.UserPath),
		Complete:  complete,
	}
	if v.UserPath == nil {
		v.UserPath = []int{}
	}

	var expected int
	if p.Operation == OpInsert && !complete {
		expected = p.CorrectPath[g.PathIndex]
		v.Expected = &expected
	}

	for _, i := range tree.BreadthFirst() {
		n := tree.Nodes[i]
		v.Nodes = append(v.Nodes, NodeView{
			Value:       n.Value,
			Level:       n.Level,
			X:           n.X,
			Root:        n.Level == 0,
			Highlighted: v.Expected != nil && n.Value == expected,
			OnUserPath:  slices.Contains(g.UserPath, n.Value),
			Clickable:   p.Operation == OpSearch && !complete,
		})
		for _, c := range []int{n.Left, n.Right} {
			if c != Nil {
				v.Edges = append(v.Edges, Edge{From: n.Value, To: tree.Nodes[c].Value})
			}
		}
	}

	switch {
	case complete && p.Operation == OpInsert:
		v.Instruction = fmt.Sprintf("%d has been inserted into the tree.", p.Value)
	case complete:
		v.Instruction = "Search path checked. Start a new problem to try again."
	case p.Operation == OpInsert:
		v.Instruction = fmt.Sprintf("To insert %d, from node %d, should we go Left or Right?", p.Value, expected)
		v.Choices = []string{string(Left), string(Right)}
	default:
		v.Instruction = fmt.Sprintf("Click the nodes to trace the search path for value %d, then check your answer.", p.Value)
		v.Choices = []string{"check"}
	}
	return v
}
