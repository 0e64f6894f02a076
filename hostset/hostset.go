// Execution host sets for jobs: the ordered list of node ids a job's virtual
// processors run on, with the cpu index on each node when known.
//
// PBS reports exec_host as "compute-3-4/0+compute-3-4/1+compute-3-7/0"; only
// the trailing numeric part of the host name matters for cluster-local
// reporting, so "compute-3-4/0" contributes node 4, cpu 0.

package hostset

import (
	"fmt"
	"strconv"
	"strings"

	"qview/unit"
)

type HostSet struct {
	nodes []int
	cpus  []int // same length as nodes, or empty when cpu data is missing
}

// Empty returns the host set of a job that runs nowhere (yet).
func Empty() HostSet {
	return HostSet{}
}

func New(nodes, cpus []int) HostSet {
	return HostSet{nodes: nodes, cpus: cpus}
}

// Parse reads "<host>/<cpu>[+<host>/<cpu>...]".  Each host name is reduced
// to its trailing decimal digits.  The degenerate form without "/<cpu>"
// parses too, leaving the cpu list empty; the empty string is the empty set.
func Parse(text string) (HostSet, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return HostSet{}, nil
	}
	parts := strings.Split(s, "+")
	nodes := make([]int, 0, len(parts))
	cpus := make([]int, 0, len(parts))
	haveCpus := true
	for _, part := range parts {
		host, cpu, withCpu := strings.Cut(part, "/")
		n, ok := trailingInt(host)
		if !ok {
			return HostSet{}, errParsef(text)
		}
		nodes = append(nodes, n)
		if withCpu {
			c, err := strconv.Atoi(cpu)
			if err != nil {
				return HostSet{}, errParsef(text)
			}
			cpus = append(cpus, c)
		} else {
			haveCpus = false
		}
	}
	if !haveCpus {
		cpus = nil
	}
	return HostSet{nodes: nodes, cpus: cpus}, nil
}

func errParsef(text string) error {
	return fmt.Errorf("%w: %q", unit.ErrParse, text)
}

func trailingInt(s string) (int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (h HostSet) IsEmpty() bool {
	return len(h.nodes) == 0
}

// Len is the number of virtual processors, one entry per node occurrence.
func (h HostSet) Len() int {
	return len(h.nodes)
}

// Concat appends other's entries after h's, preserving order and repeats.
func Concat(a, b HostSet) HostSet {
	n := make([]int, 0, len(a.nodes)+len(b.nodes))
	n = append(n, a.nodes...)
	n = append(n, b.nodes...)
	var c []int
	if len(a.cpus) == len(a.nodes) && len(b.cpus) == len(b.nodes) && len(n) > 0 {
		c = make([]int, 0, len(n))
		c = append(c, a.cpus...)
		c = append(c, b.cpus...)
	}
	return HostSet{nodes: n, cpus: c}
}

// Format renders the set at increasing levels of detail.  Precision 0 is the
// first node id, starred when the set spans more than one distinct node;
// precision 1 lists the distinct node ids in first-occurrence order;
// precision 2 lists every node/cpu pair.  The empty set is always "".
func (h HostSet) Format(precision int) string {
	if len(h.nodes) == 0 {
		return ""
	}
	switch {
	case precision <= 0:
		s := strconv.Itoa(h.nodes[0])
		if h.distinctCount() > 1 {
			s += "*"
		}
		return s
	case precision == 1 || len(h.cpus) != len(h.nodes):
		var b strings.Builder
		seen := make(map[int]bool)
		for _, n := range h.nodes {
			if seen[n] {
				continue
			}
			seen[n] = true
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(n))
		}
		return b.String()
	default:
		var b strings.Builder
		for i, n := range h.nodes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(n))
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(h.cpus[i]))
		}
		return b.String()
	}
}

func (h HostSet) distinctCount() int {
	seen := make(map[int]bool, len(h.nodes))
	for _, n := range h.nodes {
		seen[n] = true
	}
	return len(seen)
}

func (h HostSet) String() string {
	return h.Format(1)
}

// Overlaps reports whether the two sets share any node id.
func (h HostSet) Overlaps(other HostSet) bool {
	if len(h.nodes) == 0 || len(other.nodes) == 0 {
		return false
	}
	seen := make(map[int]bool, len(h.nodes))
	for _, n := range h.nodes {
		seen[n] = true
	}
	for _, n := range other.nodes {
		if seen[n] {
			return true
		}
	}
	return false
}

// OrderKey is the minimum node id, for sorting job lists by placement.  The
// empty set sorts before everything.
func (h HostSet) OrderKey() int {
	if len(h.nodes) == 0 {
		return -1
	}
	min := h.nodes[0]
	for _, n := range h.nodes[1:] {
		if n < min {
			min = n
		}
	}
	return min
}

// CheckPredicate checks the syntax of a node-id predicate without
// evaluating it; Match treats a malformed expression as matching nothing.
func CheckPredicate(expr string) error {
	if expr == "" {
		return nil
	}
	_, rest := cutOp(expr)
	if _, err := strconv.Atoi(strings.TrimSpace(rest)); err != nil {
		return errParsef(expr)
	}
	return nil
}

// Match reports whether any node id satisfies "[op]<id>", with the usual
// operators and fail-soft behavior on malformed expressions.
func (h HostSet) Match(expr string) bool {
	op, rest := cutOp(expr)
	v, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return false
	}
	for _, n := range h.nodes {
		var c int
		switch {
		case n < v:
			c = -1
		case n > v:
			c = 1
		}
		if applyOp(op, c) {
			return true
		}
	}
	return false
}

func cutOp(expr string) (string, string) {
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
