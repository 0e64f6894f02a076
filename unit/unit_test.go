package unit

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		secs  float64
	}{
		{"00:00:10", 10},
		{"01:30:00", 5400},
		{"995:58:01", 995*3600 + 58*60 + 1},
		{"10s", 10},
		{"1.5m", 90},
		{"2h", 7200},
		{"1d", 86400},
		{"3600", 3600},
	}
	for _, test := range tests {
		q, err := Parse(test.input, Time)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.input, err)
		}
		if !q.Present() || q.Value() != test.secs {
			t.Errorf("Parse(%q) = %v, want %v seconds", test.input, q.Value(), test.secs)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input string
		bytes float64
	}{
		{"512b", 512},
		{"100kb", 1e5},
		{"6286932kb", 6.286932e9},
		{"4gb", 4e9},
		{"1.5tb", 1.5e12},
		{"2G", 2e9},
		{"300M", 3e8},
		{"1024", 1024},
	}
	for _, test := range tests {
		q, err := Parse(test.input, Bytes)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.input, err)
		}
		if !q.Present() || q.Value() != test.bytes {
			t.Errorf("Parse(%q) = %v, want %v bytes", test.input, q.Value(), test.bytes)
		}
	}
}

func TestParseEmptyIsAbsent(t *testing.T) {
	for _, f := range []Family{Time, Bytes} {
		q, err := Parse("", f)
		if err != nil {
			t.Fatalf("Parse empty: %v", err)
		}
		if q.Present() {
			t.Errorf("empty input should be absent in family %v", f)
		}
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{"zebra", "10x", "1:2", "1:2:3:4", "aa:bb:cc", "mb", "--5s"}
	for _, input := range bad {
		if _, err := Parse(input, Time); err == nil && input != "mb" {
			t.Errorf("Parse(%q, Time) should fail", input)
		}
		q, err := Parse(input, Bytes)
		if input == "1:2" || input == "1:2:3:4" || input == "aa:bb:cc" {
			continue // clock syntax is a time-family matter
		}
		if err == nil {
			t.Errorf("Parse(%q, Bytes) should fail, got %v", input, q)
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q, Bytes) error should wrap ErrParse, got %v", input, err)
		}
	}
}

func TestFormatNatural(t *testing.T) {
	tests := []struct {
		fam    Family
		value  float64
		mode   Mode
		expect string
	}{
		// Time scales to the largest unit the magnitude reaches; small
		// scaled values get one decimal by default.
		{Time, 5400, DefaultMode, "1.5h"},
		{Time, 45296, DefaultMode, "13h"},
		{Time, 90, DefaultMode, "1.5m"},
		{Time, 86400, DefaultMode, "1.0d"},
		{Time, 864000, DefaultMode, "10d"},
		{Time, 0, DefaultMode, "0.0s"},
		// Bytes are whole by default.
		{Bytes, 6.286932e9, Mode{Prec: -1}, "6gb"},
		{Bytes, 4.2e9, Mode{Prec: 1}, "4.2gb"},
		{Bytes, 999, Mode{Prec: -1}, "999b"},
		{Bytes, 0, Mode{Prec: -1}, "0b"},
		// Explicit precision wins over the default.
		{Time, 45296, Mode{Prec: 2}, "12.58h"},
	}
	for _, test := range tests {
		got := New(test.fam, test.value).Format(test.mode)
		if got != test.expect {
			t.Errorf("Format(%v, %v, %+v) = %q, want %q",
				test.fam, test.value, test.mode, got, test.expect)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	// Parsing a formatted quantity and reformatting it must be stable.
	inputs := []struct {
		text string
		fam  Family
	}{
		{"1.5h", Time},
		{"12h", Time},
		{"45s", Time},
		{"3.0d", Time},
		{"6gb", Bytes},
		{"512kb", Bytes},
		{"999b", Bytes},
	}
	for _, in := range inputs {
		q, err := Parse(in.text, in.fam)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in.text, err)
		}
		s1 := q.Format(DefaultMode)
		q2, err := Parse(s1, in.fam)
		if err != nil {
			t.Fatalf("reparse %q: %v", s1, err)
		}
		s2 := q2.Format(DefaultMode)
		if s1 != s2 {
			t.Errorf("%q: format/parse/format not stable: %q then %q", in.text, s1, s2)
		}
	}
}

func TestFormatWidthFitting(t *testing.T) {
	tests := []struct {
		fam    Family
		value  float64
		mode   Mode
		expect string
	}{
		// Precision drops to 1 and then 0 to fit the width.
		{Time, 45296.5, Mode{Prec: 3, Width: 5}, "12.6h"},
		{Time, 45296.5, Mode{Prec: 3, Width: 3}, "13h"},
		{Time, 5400, Mode{Prec: -1, Width: 4}, "1.5h"},
		{Time, 5400, Mode{Prec: -1, Width: 2}, "2h"},
		// Degenerate: even precision 0 overflows, so the string is cut.
		{Time, 8553600, Mode{Prec: -1, Width: 2}, "99"},
		{Bytes, 123e9, Mode{Prec: -1, Width: 3}, "123"},
	}
	for _, test := range tests {
		got := New(test.fam, test.value).Format(test.mode)
		if got != test.expect {
			t.Errorf("Format(%v, %+v) = %q, want %q", test.value, test.mode, got, test.expect)
		}
		if test.mode.Width > 0 && len(got) > test.mode.Width {
			t.Errorf("Format(%v, %+v) = %q wider than %d", test.value, test.mode, got, test.mode.Width)
		}
	}
}

func TestFormatAbsent(t *testing.T) {
	for _, width := range []int{0, 1, 4, 9} {
		got := Absent(Time).Format(Mode{Prec: -1, Width: width})
		if len(got) != width {
			t.Errorf("absent at width %d rendered %q", width, got)
		}
		for _, c := range got {
			if c != ' ' {
				t.Errorf("absent at width %d rendered %q, want all spaces", width, got)
			}
		}
	}
}

func TestFormatRaw(t *testing.T) {
	q := New(Time, 5400)
	if got := q.Format(Mode{Prec: 0, Style: Raw}); got != "5400" {
		t.Errorf("raw format = %q", got)
	}
	if got := q.Format(Mode{Prec: 2, Style: Raw}); got != "5400.00" {
		t.Errorf("raw format prec 2 = %q", got)
	}
}

func TestCmp(t *testing.T) {
	day := New(Time, 86400)
	hour := New(Time, 3600)
	none := Absent(Time)
	if Cmp(day, hour) <= 0 {
		t.Errorf("1d should compare above 1h")
	}
	if Cmp(hour, day) >= 0 {
		t.Errorf("1h should compare below 1d")
	}
	if Cmp(day, day) != 0 {
		t.Errorf("equal quantities should compare equal")
	}
	if Cmp(none, hour) != -1 || Cmp(hour, none) != 1 {
		t.Errorf("absent should sort before present")
	}
	if Cmp(none, Absent(Time)) != 0 {
		t.Errorf("two absent quantities should compare equal")
	}
}

func TestMatch(t *testing.T) {
	q := New(Time, 86400)
	tests := []struct {
		expr   string
		expect bool
	}{
		{">12h", true},
		{"==1d", true},
		{"<1d", false},
		{"<=1d", true},
		{">=25h", false},
		{"24h", true}, // default operator is equality
		{"86400", true},
		{">1d", false},
	}
	for _, test := range tests {
		if got := q.Match(test.expr); got != test.expect {
			t.Errorf("Match(%q) = %v, want %v", test.expr, got, test.expect)
		}
	}
}

func TestMatchFailSoft(t *testing.T) {
	q := New(Bytes, 1e9)
	for _, expr := range []string{"", ">", "zebra", ">>1gb", "=1gb:extra"} {
		if q.Match(expr) {
			t.Errorf("malformed expression %q should not match", expr)
		}
	}
	if Absent(Bytes).Match(">0b") {
		t.Errorf("absent quantity should match nothing")
	}
}

func TestCheckPredicate(t *testing.T) {
	tests := []struct {
		expr string
		fam  Family
		ok   bool
	}{
		{"", Time, true}, // no predicate at all
		{">1d", Time, true},
		{"<=512mb", Bytes, true},
		{"04:00:00", Time, true},
		{">", Time, false},
		{"zebra", Time, false},
		{">1gb", Time, false},
		{">>1gb", Bytes, false},
	}
	for _, test := range tests {
		err := CheckPredicate(test.expr, test.fam)
		if (err == nil) != test.ok {
			t.Errorf("CheckPredicate(%q, %v) = %v, want ok=%v", test.expr, test.fam, err, test.ok)
		}
		if err != nil && !errors.Is(err, ErrParse) {
			t.Errorf("CheckPredicate(%q) error should wrap ErrParse, got %v", test.expr, err)
		}
	}
	if err := CheckScorePredicate(">0.95"); err != nil {
		t.Errorf("CheckScorePredicate: %v", err)
	}
	if err := CheckScorePredicate("wibble"); err == nil {
		t.Errorf("malformed score predicate should be reported")
	}
}

func TestAddSub(t *testing.T) {
	a := New(Bytes, 3e9)
	b := New(Bytes, 1e9)
	sum, err := Add(a, b)
	if err != nil || sum.Value() != 4e9 {
		t.Fatalf("Add = %v, %v", sum, err)
	}
	diff, err := Sub(a, b)
	if err != nil || diff.Value() != 2e9 {
		t.Fatalf("Sub = %v, %v", diff, err)
	}

	// One absent operand: Add passes the other side through, Sub is absent.
	sum, err = Add(Absent(Bytes), b)
	if err != nil || !sum.Present() || sum.Value() != 1e9 {
		t.Errorf("Add(absent, x) = %v, %v", sum, err)
	}
	diff, err = Sub(a, Absent(Bytes))
	if err != nil || diff.Present() {
		t.Errorf("Sub(x, absent) = %v, %v", diff, err)
	}

	// Cross-family arithmetic must fail.
	if _, err := Add(New(Time, 1), New(Bytes, 1)); !errors.Is(err, ErrFamilyMismatch) {
		t.Errorf("Add across families: %v", err)
	}
	if _, err := Sub(New(Bytes, 1), New(Time, 1)); !errors.Is(err, ErrFamilyMismatch) {
		t.Errorf("Sub across families: %v", err)
	}
}

func TestScale(t *testing.T) {
	q := Scale(New(Time, 3600), 4)
	if q.Value() != 14400 {
		t.Errorf("Scale = %v", q.Value())
	}
	if Scale(Absent(Time), 4).Present() {
		t.Errorf("scaling absent should stay absent")
	}
}

func TestScoreRatio(t *testing.T) {
	cputime := New(Time, 41400)
	walltime := New(Time, 43200)
	s := Ratio(cputime, walltime, 1)
	if !s.Present() || s.Format(2, 0) != "0.96" {
		t.Errorf("Ratio = %q", s.Format(2, 0))
	}
	if Ratio(Absent(Time), walltime, 1).Present() {
		t.Errorf("ratio with absent numerator should be absent")
	}
	if Ratio(cputime, Absent(Time), 1).Present() {
		t.Errorf("ratio with absent denominator should be absent")
	}
	if Ratio(cputime, walltime, 0).Present() {
		t.Errorf("ratio with zero denominator should be absent")
	}
}

func TestScoreFormatAndMatch(t *testing.T) {
	if got := AbsentScore().Format(2, 5); got != "     " {
		t.Errorf("absent score = %q", got)
	}
	s := NewScore(0.87)
	if got := s.Format(2, 0); got != "0.87" {
		t.Errorf("score format = %q", got)
	}
	if !s.Match("<0.95") || s.Match(">0.95") || !s.Match("0.87") {
		t.Errorf("score match misbehaves")
	}
	if s.Match("zebra") || AbsentScore().Match(">0") {
		t.Errorf("score match should be fail-soft")
	}
}
