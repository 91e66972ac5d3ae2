package numconv

import (
	"fmt"
	"strconv"
	"strings"
)

type Method string

const (
	MethodDivision  Method = "repeated_division"
	MethodExpansion Method = "positional_expansion"
	MethodGrouping  Method = "nibble_grouping"
)

// Division is one row of a repeated-division table.
type Division struct {
	Dividend  int    `json:"dividend"`
	Divisor   int    `json:"divisor"`
	Quotient  int    `json:"quotient"`
	Remainder string `json:"remainder"`
}

// Term is one digit times its place value.
type Term struct {
	Digit string `json:"digit"`
	Radix int    `json:"radix"`
	Power int    `json:"power"`
	Value int    `json:"value"`
}

// Group maps four bits to one hex digit.
type Group struct {
	Bits  string `json:"bits"`
	Digit string `json:"digit"`
}

// Explanation is the worked solution of a conversion.
type Explanation struct {
	Method    Method     `json:"method"`
	Intro     string     `json:"intro"`
	Divisions []Division `json:"divisions,omitempty"`
	Terms     []Term     `json:"terms,omitempty"`
	Groups    []Group    `json:"groups,omitempty"`
	Result    string     `json:"result"`
}

// Explain works the conversion step by step.
func Explain(p Problem) Explanation {
	switch {
	case p.From == Decimal:
		return explainDivision(p.Value, p.To, p.Answer)
	case p.To == Decimal:
		return explainExpansion(p.Operand, p.From.Radix(), p.Answer)
	default:
		return explainGrouping(p)
	}
}

func explainDivision(n int, to Base, result string) Explanation {
	e := Explanation{Method: MethodDivision, Result: result}
	radix := to.Radix()
	if to == Hexadecimal {
		e.Intro = "We use repeated division by 16. We convert remainders 10-15 to A-F."
	} else {
		e.Intro = "We use repeated division by 2. We record the remainder at each step."
	}
	for n > 0 {
		e.Divisions = append(e.Divisions, Division{
			Dividend:  n,
			Divisor:   radix,
			Quotient:  n / radix,
			Remainder: Format(n%radix, to),
		})
		n /= radix
	}
	return e
}

func explainExpansion(operand string, radix int, result string) Explanation {
	e := Explanation{Method: MethodExpansion, Result: result}
	if radix == 16 {
		e.Intro = "We multiply each hex digit by its corresponding power of 16, then sum the results."
	} else {
		e.Intro = "We multiply each binary digit by its corresponding power of 2, then sum the results."
	}
	place := 1
	terms := make([]Term, len(operand))
	for i := len(operand) - 1; i >= 0; i-- {
		d, _ := strconv.ParseInt(operand[i:i+1], radix, 8)
		power := len(operand) - 1 - i
		terms[i] = Term{Digit: operand[i : i+1], Radix: radix, Power: power, Value: int(d) * place}
		place *= radix
	}
	e.Terms = terms
	return e
}

func explainGrouping(p Problem) Explanation {
	e := Explanation{Method: MethodGrouping, Result: p.Answer}
	if p.From == Binary {
		e.Intro = "Group the binary digits into fours from the right, then write each group as one hex digit."
		bits := p.Operand
		if pad := len(bits) % 4; pad != 0 {
			bits = strings.Repeat("0", 4-pad) + bits
		}
		for i := 0; i < len(bits); i += 4 {
			v, _ := strconv.ParseInt(bits[i:i+4], 2, 8)
			e.Groups = append(e.Groups, Group{Bits: bits[i : i+4], Digit: Format(int(v), Hexadecimal)})
		}
		return e
	}

	e.Intro = "Write each hex digit as four binary digits, then drop the leading zeros."
	for _, r := range p.Operand {
		v, _ := strconv.ParseInt(string(r), 16, 8)
		e.Groups = append(e.Groups, Group{Bits: fmt.Sprintf("%04b", v), Digit: string(r)})
	}
	return e
}

// Text renders the explanation as plain lines.
func (e Explanation) Text() string {
	var b strings.Builder
	b.WriteString(e.Intro)
	switch e.Method {
	case MethodDivision:
		for _, d := range e.Divisions {
			fmt.Fprintf(&b, "\n%d / %d = %d remainder %s", d.Dividend, d.Divisor, d.Quotient, d.Remainder)
		}
		fmt.Fprintf(&b, "\nReading the remainders from the bottom up gives %s.", e.Result)
	case MethodExpansion:
		parts := make([]string, len(e.Terms))
		values := make([]string, len(e.Terms))
		for i, t := range e.Terms {
			parts[i] = fmt.Sprintf("(%s × %d^%d)", t.Digit, t.Radix, t.Power)
			values[i] = strconv.Itoa(t.Value)
		}
		fmt.Fprintf(&b, "\n%s\n= %s\n= %s", strings.Join(parts, " + "), strings.Join(values, " + "), e.Result)
	case MethodGrouping:
		for _, g := range e.Groups {
			fmt.Fprintf(&b, "\n%s = %s", g.Bits, g.Digit)
		}
		fmt.Fprintf(&b, "\nThe answer is %s.", e.Result)
	}
	return b.String()
}
