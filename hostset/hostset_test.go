package hostset

import (
	"errors"
	"testing"

	"qview/unit"
)

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		input string
		prec0 string
		prec1 string
		prec2 string
	}{
		{"compute-0-3/1+compute-0-4/2", "3*", "3,4", "3/1,4/2"},
		{"compute-0-3/0", "3", "3", "3/0"},
		{"n12/0+n12/1+n12/2", "12", "12", "12/0,12/1,12/2"},
		{"c1/0+c2/0+c1/1", "1*", "1,2", "1/0,2/0,1/1"},
		{"", "", "", ""},
	}
	for _, test := range tests {
		h, err := Parse(test.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", test.input, err)
		}
		if got := h.Format(0); got != test.prec0 {
			t.Errorf("Parse(%q).Format(0) = %q, want %q", test.input, got, test.prec0)
		}
		if got := h.Format(1); got != test.prec1 {
			t.Errorf("Parse(%q).Format(1) = %q, want %q", test.input, got, test.prec1)
		}
		if got := h.Format(2); got != test.prec2 {
			t.Errorf("Parse(%q).Format(2) = %q, want %q", test.input, got, test.prec2)
		}
	}
}

func TestParseDegenerate(t *testing.T) {
	// No cpu suffix: the node list is still usable, precision 2 falls back
	// to the node list.
	h, err := Parse("node3+node4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d", h.Len())
	}
	if got := h.Format(2); got != "3,4" {
		t.Errorf("Format(2) without cpu data = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"compute/0", "node3/x", "zebra"} {
		if _, err := Parse(input); !errors.Is(err, unit.ErrParse) {
			t.Errorf("Parse(%q) should wrap ErrParse, got %v", input, err)
		}
	}
}

func TestConcat(t *testing.T) {
	a, _ := Parse("c3/0+c3/1")
	b, _ := Parse("c4/0")
	c := Concat(a, b)
	if c.Len() != 3 {
		t.Fatalf("Len = %d", c.Len())
	}
	if got := c.Format(2); got != "3/0,3/1,4/0" {
		t.Errorf("Concat Format(2) = %q", got)
	}
	// Growing from empty is the normal aggregation pattern.
	acc := Empty()
	for _, h := range []HostSet{a, b} {
		acc = Concat(acc, h)
	}
	if acc.Len() != 3 {
		t.Errorf("accumulated Len = %d", acc.Len())
	}
}

func TestOverlapsAndOrderKey(t *testing.T) {
	a, _ := Parse("c3/0+c4/0")
	b, _ := Parse("c4/1+c5/0")
	c, _ := Parse("c7/0")
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Errorf("sets sharing node 4 should overlap")
	}
	if a.Overlaps(c) {
		t.Errorf("disjoint sets should not overlap")
	}
	if a.Overlaps(Empty()) || Empty().Overlaps(a) {
		t.Errorf("the empty set overlaps nothing")
	}
	if a.OrderKey() != 3 || c.OrderKey() != 7 {
		t.Errorf("OrderKey should be the minimum node id")
	}
	if Empty().OrderKey() != -1 {
		t.Errorf("empty set should sort first")
	}
}

func TestMatch(t *testing.T) {
	h, _ := Parse("c3/0+c7/0")
	tests := []struct {
		expr   string
		expect bool
	}{
		{"3", true},
		{"==7", true},
		{"5", false},
		{">5", true},
		{"<3", false},
		{"<=3", true},
		{">=8", false},
	}
	for _, test := range tests {
		if got := h.Match(test.expr); got != test.expect {
			t.Errorf("Match(%q) = %v, want %v", test.expr, got, test.expect)
		}
	}
	if h.Match("zebra") || h.Match("") || Empty().Match(">0") {
		t.Errorf("malformed expressions and empty sets should not match")
	}
}

func TestCheckPredicate(t *testing.T) {
	for _, expr := range []string{"", "3", ">=10", "<3"} {
		if err := CheckPredicate(expr); err != nil {
			t.Errorf("CheckPredicate(%q): %v", expr, err)
		}
	}
	for _, expr := range []string{"zebra", ">", ">c3"} {
		if err := CheckPredicate(expr); !errors.Is(err, unit.ErrParse) {
			t.Errorf("CheckPredicate(%q) should wrap ErrParse, got %v", expr, err)
		}
	}
}
