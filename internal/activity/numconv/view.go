package numconv

import (
	"fmt"
	"strings"
)

type View struct {
	From        Base         `json:"from"`
	To          Base         `json:"to"`
	Operand     string       `json:"operand"`
	Prompt      string       `json:"prompt"`
	Submitted   string       `json:"submitted,omitempty"`
	Answer      string       `json:"answer,omitempty"`
	Explanation *Explanation `json:"explanation,omitempty"`
	Complete    bool         `json:"complete"`
}

// Render projects the problem. The answer and worked solution appear only once
// the trainee has checked.
func Render(p Problem, g Progress) View {
	v := View{
		From:      p.From,
		To:        p.To,
		Operand:   p.Operand,
		Prompt:    fmt.Sprintf("Convert the %s number %s to %s.", strings.ToLower(string(p.From)), p.Operand, strings.ToLower(string(p.To))),
		Submitted: g.Submitted,
		Complete:  g.Checked,
	}
	if g.Checked {
		e := Explain(p)
		v.Answer = p.Answer
		v.Explanation = &e
	}
	return v
}
