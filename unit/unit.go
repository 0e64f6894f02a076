// Typed quantities for queue and node reports.
//
// A Quantity is an immutable magnitude in a fixed base unit (seconds for the
// time family, bytes for the byte-size family) together with a presence flag.
// The magnitude may be absent because the underlying attribute was missing
// from the input or failed to parse; an absent quantity formats as blank,
// sorts before every present quantity, and matches no predicate.  This lets
// one bad attribute degrade a single cell instead of killing the record.

package unit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Family tags a Quantity with its base unit.
type Family int

const (
	Time  Family = iota // base unit seconds
	Bytes               // base unit bytes
)

func (f Family) String() string {
	switch f {
	case Time:
		return "time"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}

var (
	// ErrParse wraps all syntax errors from Parse.
	ErrParse = errors.New("unparseable quantity")

	// ErrFamilyMismatch is returned by Add and Sub when the operands have
	// different base units.
	ErrFamilyMismatch = errors.New("mismatched unit families")
)

type unitDef struct {
	suffix string
	factor float64
}

// Largest first.  Format picks the first unit whose factor the magnitude
// meets or exceeds; Parse checks two-letter suffixes before one-letter ones
// so that "kb" is not read as a bare "b".
var (
	timeUnits = []unitDef{
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}
	byteUnits = []unitDef{
		{"tb", 1e12},
		{"gb", 1e9},
		{"mb", 1e6},
		{"kb", 1e3},
		{"b", 1},
	}
	// Accepted on input only (ganglia-style sizes).
	byteAliases = []unitDef{
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	}
)

func (f Family) units() []unitDef {
	if f == Time {
		return timeUnits
	}
	return byteUnits
}

type Quantity struct {
	val     float64
	present bool
	fam     Family
}

// Absent returns the absent quantity of the given family.
func Absent(f Family) Quantity {
	return Quantity{fam: f}
}

// New returns a present quantity with the given base-unit magnitude.
func New(f Family, magnitude float64) Quantity {
	return Quantity{val: magnitude, present: true, fam: f}
}

func (q Quantity) Present() bool {
	return q.present
}

// Value returns the base-unit magnitude, 0 if absent.
func (q Quantity) Value() float64 {
	return q.val
}

func (q Quantity) Family() Family {
	return q.fam
}

// Parse interprets text as a quantity of family f.  The empty string is the
// absent quantity, not an error.  Time accepts the clock form "HH:MM:SS", a
// number with suffix d, h, m or s, or a bare number of seconds.  Bytes
// accepts a number with suffix tb, gb, mb, kb or b (also the single letters
// T, G, M, K), or a bare number of bytes.
func Parse(text string, f Family) (Quantity, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Absent(f), nil
	}
	if f == Time {
		if strings.Contains(s, ":") {
			return parseClock(s)
		}
	}
	for _, u := range f.units() {
		if n, ok := strings.CutSuffix(s, u.suffix); ok {
			return scaled(f, n, u.factor, s)
		}
	}
	if f == Bytes {
		for _, u := range byteAliases {
			if n, ok := strings.CutSuffix(s, u.suffix); ok {
				return scaled(f, n, u.factor, s)
			}
		}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return New(f, v), nil
	}
	return Absent(f), errParsef(text)
}

func errParsef(text string) error {
	return fmt.Errorf("%w: %q", ErrParse, text)
}

func parseClock(s string) (Quantity, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Absent(Time), errParsef(s)
	}
	var secs float64
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Absent(Time), errParsef(s)
		}
		secs = secs*60 + float64(n)
	}
	return New(Time, secs), nil
}

func scaled(f Family, num string, factor float64, orig string) (Quantity, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Absent(f), errParsef(orig)
	}
	return New(f, v*factor), nil
}

// Style selects between human-oriented and machine-oriented formatting.
type Style int

const (
	// Natural scales the magnitude to the largest fitting unit and appends
	// the unit suffix.
	Natural Style = iota
	// Raw prints the base-unit magnitude as a plain number, no suffix.
	Raw
)

// Mode controls formatting.  The zero value asks for precision 0; use
// DefaultMode (or Prec -1) for the family's default precision.
type Mode struct {
	Prec  int // decimal digits; -1 selects the family default
	Width int // maximum rendered width; 0 means unbounded
	Style Style
}

var DefaultMode = Mode{Prec: -1}

// Format renders the quantity.  An absent quantity renders as exactly
// m.Width spaces so that blank cells still occupy their column.  A present
// quantity never renders wider than m.Width (when nonzero): precision is
// reduced to 1 and then to 0 before, as a last resort, the string is cut.
func (q Quantity) Format(m Mode) string {
	if !q.present {
		return strings.Repeat(" ", m.Width)
	}
	if m.Style == Raw {
		if m.Prec >= 0 {
			return strconv.FormatFloat(q.val, 'f', m.Prec, 64)
		}
		return strconv.FormatFloat(q.val, 'g', -1, 64)
	}
	mag := q.val
	neg := false
	if mag < 0 {
		neg = true
		mag = -mag
	}
	units := q.fam.units()
	u := units[len(units)-1]
	for _, cand := range units {
		if mag >= cand.factor {
			u = cand
			break
		}
	}
	v := mag / u.factor
	if neg {
		v = -v
	}
	prec := m.Prec
	if prec < 0 {
		prec = q.fam.defaultPrec(v)
	}
	s := strconv.FormatFloat(v, 'f', prec, 64) + u.suffix
	if m.Width > 0 && len(s) > m.Width && prec > 1 {
		s = strconv.FormatFloat(v, 'f', 1, 64) + u.suffix
	}
	if m.Width > 0 && len(s) > m.Width && prec > 0 {
		s = strconv.FormatFloat(v, 'f', 0, 64) + u.suffix
	}
	if m.Width > 0 && len(s) > m.Width {
		s = s[:m.Width]
	}
	return s
}

// Time quantities get a decimal when the scaled value is small ("1.5h") but
// not when it is already wide ("12h"); byte sizes are always whole.
func (f Family) defaultPrec(scaled float64) int {
	if f == Time {
		if scaled < 0 {
			scaled = -scaled
		}
		if scaled < 10 {
			return 1
		}
	}
	return 0
}

// String renders with default precision at natural width.
func (q Quantity) String() string {
	return q.Format(DefaultMode)
}

// Cmp orders two quantities of the same family by base-unit magnitude.
// Absent sorts before present, and two absent quantities are equal.  The
// family must be the same on both sides; Cmp does not convert.
func Cmp(a, b Quantity) int {
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

// Match evaluates the predicate expression against the quantity.  The
// expression is an optional operator (<, <=, ==, >=, >; default ==) followed
// by a value in the quantity's own syntax, eg ">1d" or "<=512mb".  A
// malformed expression or an absent operand yields false, never an error;
// filters built on Match degrade to excluding the record.
func (q Quantity) Match(expr string) bool {
	op, rest := splitOp(expr)
	rhs, err := Parse(rest, q.fam)
	if err != nil || !rhs.present || !q.present {
		return false
	}
	return applyOp(op, Cmp(q, rhs))
}

// CheckPredicate checks the syntax of a predicate expression for family f
// without evaluating it.  Match treats a malformed expression as matching
// nothing; callers that want a diagnostic check the syntax up front.  The
// empty expression is no predicate and is fine.
func CheckPredicate(expr string, f Family) error {
	if expr == "" {
		return nil
	}
	_, rest := splitOp(expr)
	rhs, err := Parse(rest, f)
	if err != nil {
		return err
	}
	if !rhs.present {
		return errParsef(expr)
	}
	return nil
}

func splitOp(expr string) (string, string) {
	for _, op := range []string{"<=", ">=", "==", "<", ">"} {
		if rest, ok := strings.CutPrefix(expr, op); ok {
			return op, rest
		}
	}
	return "==", expr
}

func applyOp(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return c == 0
	}
}

// Add returns the sum of two quantities of the same family.  An absent
// operand acts as the identity: the other operand is returned.
func Add(a, b Quantity) (Quantity, error) {
	if a.fam != b.fam {
		return Absent(a.fam), fmt.Errorf("%w: %s + %s", ErrFamilyMismatch, a.fam, b.fam)
	}
	switch {
	case !a.present:
		return b, nil
	case !b.present:
		return a, nil
	default:
		return New(a.fam, a.val+b.val), nil
	}
}

// Sub returns the difference of two quantities of the same family.  If
// either operand is absent the result is absent; a difference against an
// unknown value is itself unknown.
func Sub(a, b Quantity) (Quantity, error) {
	if a.fam != b.fam {
		return Absent(a.fam), fmt.Errorf("%w: %s - %s", ErrFamilyMismatch, a.fam, b.fam)
	}
	if !a.present || !b.present {
		return Absent(a.fam), nil
	}
	return New(a.fam, a.val-b.val), nil
}

// Scale multiplies the magnitude by a dimensionless factor, eg walltime by a
// cpu count.  Absent stays absent.
func Scale(q Quantity, factor float64) Quantity {
	if !q.present {
		return q
	}
	return New(q.fam, q.val*factor)
}
