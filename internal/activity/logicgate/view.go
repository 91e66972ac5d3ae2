package logicgate

// Row is one line of a truth table.
type Row struct {
	Inputs []int `json:"inputs"`
	Output int   `json:"output"`
}

type View struct {
	Gate        Gate     `json:"gate"`
	Inputs      []int    `json:"inputs"`
	Labels      []string `json:"labels"`
	Choices     []string `json:"choices"`
	Selected    string   `json:"selected,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	TruthTable  []Row    `json:"truth_table,omitempty"`
	Complete    bool     `json:"complete"`
}

// Render projects the problem. The gate's rule and truth table are revealed only
// after the answer is checked.
func Render(p Problem, g Progress) View {
	v := View{
		Gate:     p.Gate,
		Inputs:   []int{p.A, p.B},
		Labels:   []string{"A", "B"},
		Choices:  []string{"0", "1"},
		Selected: g.Submitted,
		Complete: g.Checked,
	}
	if p.Gate.Unary() {
		v.Inputs = []int{p.A}
		v.Labels = []string{"A"}
	}
	if g.Checked {
		v.Explanation = p.Gate.Explanation()
		v.TruthTable = TruthTable(p.Gate)
	}
	return v
}

// TruthTable enumerates every input combination of the gate.
func TruthTable(g Gate) []Row {
	if g.Unary() {
		return []Row{
			{Inputs: []int{0}, Output: g.Eval(0, 0)},
			{Inputs: []int{1}, Output: g.Eval(1, 0)},
		}
	}
	rows := make([]Row, 0, 4)
	for a := range 2 {
		for b := range 2 {
			rows = append(rows, Row{Inputs: []int{a, b}, Output: g.Eval(a, b)})
		}
	}
	return rows
}
