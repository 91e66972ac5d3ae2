package linkedlist

import "fmt"

type NodeView struct {
	ID          int  `json:"id"`
	Value       int  `json:"value"`
	Head        bool `json:"head"`
	Null        bool `json:"null_next"`
	Highlighted bool `json:"highlighted"`
}

type View struct {
	Task      string     `json:"task"`
	Nodes     []NodeView `json:"nodes"`
	Question  string     `json:"question,omitempty"`
	Options   []string   `json:"options,omitempty"`
	Step      int        `json:"step"`
	StepCount int        `json:"step_count"`
	Complete  bool       `json:"complete"`
}

// Render shows the list before the operation while the script is running and
// the resulting list once it is done.
func Render(p Problem, g Progress) View {
	complete := g.Step >= len(p.Steps)
	list := p.Before
	if complete {
		list = p.After
	}

	v := View{
		Task:      task(p),
		Step:      min(g.Step, len(p.Steps)),
		StepCount: len(p.Steps),
		Complete:  complete,
	}
	for _, n := range list.Chain() {
		v.Nodes = append(v.Nodes, NodeView{
			ID:          n.ID,
			Value:       n.Value,
			Head:        n.ID == list.Head,
			Null:        n.Next == Nil,
			Highlighted: n.ID == p.Target,
		})
	}
	if !complete {
		step := p.Steps[g.Step]
		v.Question = step.Question
		v.Options = append([]string(nil), step.Options...)
	}
	return v
}

func task(p Problem) string {
	switch p.Operation {
	case OpInsertHead:
		return fmt.Sprintf("Insert a new node with value %d at the head of the list.", p.Value)
	case OpInsertTail:
		return fmt.Sprintf("Insert a new node with value %d at the tail of the list.", p.Value)
	default:
		return fmt.Sprintf("Delete the node with value %d from the list.", p.Value)
	}
}
