package unit

import (
	"strconv"
	"strings"
)

// Score is a nullable dimensionless number, typically an efficiency ratio
// such as cputime/(walltime * ncpu).  It follows the same conventions as
// Quantity: absent formats as blank, sorts first, and matches no predicate.
type Score struct {
	val     float64
	present bool
}

func AbsentScore() Score {
	return Score{}
}

func NewScore(v float64) Score {
	return Score{val: v, present: true}
}

// Ratio computes num / (denom * scale).  The result is absent when either
// quantity is absent or when the denominator works out to zero; a ratio over
// unknown or zero resource claims is meaningless, not infinite.
func Ratio(num, denom Quantity, scale float64) Score {
	if !num.present || !denom.present {
		return Score{}
	}
	d := denom.val * scale
	if d == 0 {
		return Score{}
	}
	return NewScore(num.val / d)
}

// ParseScore interprets text as a score; "" is absent, not an error.
func ParseScore(text string) (Score, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Score{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Score{}, errParsef(text)
	}
	return NewScore(v), nil
}

func (s Score) Present() bool {
	return s.present
}

func (s Score) Value() float64 {
	return s.val
}

// Format renders the score with prec decimals; absent renders as width
// spaces.  Padding a present value to the column width is the renderer's
// business, not ours.
func (s Score) Format(prec, width int) string {
	if !s.present {
		return strings.Repeat(" ", width)
	}
	return strconv.FormatFloat(s.val, 'f', prec, 64)
}

func CmpScore(a, b Score) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return -1
	case !b.present:
		return 1
	case a.val < b.val:
		return -1
	case a.val > b.val:
		return 1
	default:
		return 0
	}
}

// CheckScorePredicate checks the syntax of a score predicate, like
// CheckPredicate for quantities.
func CheckScorePredicate(expr string) error {
	if expr == "" {
		return nil
	}
	_, rest := splitOp(expr)
	if _, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err != nil {
		return errParsef(expr)
	}
	return nil
}

// Match evaluates "[op]<number>" against the score, fail-soft like
// Quantity.Match.
func (s Score) Match(expr string) bool {
	if !s.present {
		return false
	}
	op, rest := splitOp(expr)
	v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return false
	}
	return applyOp(op, CmpScore(s, NewScore(v)))
}
