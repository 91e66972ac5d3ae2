package numconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrInvalidAnswerFormat is returned when text does not parse in the expected base.
var ErrInvalidAnswerFormat = errors.New("invalid answer format")

type Base string

const (
	Decimal     Base = "Decimal"
	Binary      Base = "Binary"
	Hexadecimal Base = "Hexadecimal"
)

// Radix returns the numeric base.
func (b Base) Radix() int {
	switch b {
	case Binary:
		return 2
	case Hexadecimal:
		return 16
	default:
		return 10
	}
}

func (b Base) prefix() string {
	switch b {
	case Binary:
		return "0b"
	case Hexadecimal:
		return "0x"
	default:
		return ""
	}
}

func (b Base) digits() string {
	switch b {
	case Binary:
		return "0 and 1"
	case Hexadecimal:
		return "0-9 and A-F"
	default:
		return "0-9"
	}
}

// Format renders n in base b. Hex digits are upper-case and no padding is added.
func Format(n int, b Base) string {
	return strings.ToUpper(strconv.FormatInt(int64(n), b.Radix()))
}

// Parse reads a trainee's answer in base b. Surrounding space, digit-group
// separators and a matching 0b/0x prefix are accepted, and letters compare
// case-insensitively.
func Parse(s string, b Base) (int, error) {
	t := cases.Fold().String(strings.TrimSpace(s))
	t = strings.NewReplacer(" ", "", "_", "").Replace(t)
	if p := b.prefix(); p != "" {
		t = strings.TrimPrefix(t, p)
	}
	if t == "" || strings.HasPrefix(t, "-") || strings.HasPrefix(t, "+") {
		return 0, fmt.Errorf("parse %s %q: %w", strings.ToLower(string(b)), s, ErrInvalidAnswerFormat)
	}
	n, err := strconv.ParseInt(t, b.Radix(), 32)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", strings.ToLower(string(b)), s, ErrInvalidAnswerFormat)
	}
	return int(n), nil
}
