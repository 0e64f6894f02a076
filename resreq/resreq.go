// Node reservation requests from PBS Resource_List attributes: node count,
// processors per node, and an optional cpu type constraint.

package resreq

import (
	"fmt"
	"strconv"
	"strings"

	"qview/unit"
)

// ResourceSpec is an immutable reservation request.  Zero Nodes or Ppn means
// the component was absent from the request; absent components count as 1 in
// capacity arithmetic but are omitted when formatting compactly.
type ResourceSpec struct {
	nodes   int
	ppn     int
	cpuType string
}

func New(nodes, ppn int, cpuType string) ResourceSpec {
	return ResourceSpec{nodes: nodes, ppn: ppn, cpuType: cpuType}
}

// Parse reads a reservation string such as "nodes=2:ppn=8:intel".  The
// components may appear in any order, separated by ":".  A bare numeric
// token is a node count (PBS shorthand "4:ppn=8"); any other bare token is
// the cpu type.  The empty string is the empty request.
func Parse(text string) (ResourceSpec, error) {
	var r ResourceSpec
	s := strings.TrimSpace(text)
	if s == "" {
		return r, nil
	}
	// Resource_List strings may carry trailing attributes after a comma,
	// eg "nodes=1:ppn=2,walltime=24:00:00"; only the node request matters.
	if i := strings.IndexByte(s, ','); i != -1 {
		s = s[:i]
	}
	for _, tok := range strings.Split(s, ":") {
		switch {
		case tok == "":
			// tolerated, eg "nodes=1::intel"
		case strings.HasPrefix(tok, "nodes="):
			n, err := strconv.Atoi(tok[len("nodes="):])
			if err != nil || n < 0 {
				return ResourceSpec{}, errParsef(text)
			}
			r.nodes = n
		case strings.HasPrefix(tok, "ppn="):
			n, err := strconv.Atoi(tok[len("ppn="):])
			if err != nil || n < 0 {
				return ResourceSpec{}, errParsef(text)
			}
			r.ppn = n
		default:
			if n, err := strconv.Atoi(tok); err == nil {
				r.nodes = n
			} else {
				r.cpuType = tok
			}
		}
	}
	return r, nil
}

func errParsef(text string) error {
	return fmt.Errorf("%w: %q", unit.ErrParse, text)
}

// Nodes returns the requested node count, 0 if absent.
func (r ResourceSpec) Nodes() int {
	return r.nodes
}

// Ppn returns the requested processors per node, 0 if absent.
func (r ResourceSpec) Ppn() int {
	return r.ppn
}

func (r ResourceSpec) CpuType() string {
	return r.cpuType
}

func (r ResourceSpec) IsZero() bool {
	return r.nodes == 0 && r.ppn == 0 && r.cpuType == ""
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// CpuCount is the total processor claim, nodes times ppn, each defaulting
// to 1 when absent.
func (r ResourceSpec) CpuCount() int {
	return orOne(r.nodes) * orOne(r.ppn)
}

// Cmp orders requests by total processor claim.
func Cmp(a, b ResourceSpec) int {
	x, y := a.CpuCount(), b.CpuCount()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Compact renders "<nodes>:<ppn>:<type initial>", omitting absent components
// together with their separators: "1:10:i", "1:10", "4", "i", or "".
func (r ResourceSpec) Compact() string {
	parts := make([]string, 0, 3)
	if r.nodes != 0 {
		parts = append(parts, strconv.Itoa(r.nodes))
	}
	if r.ppn != 0 {
		parts = append(parts, strconv.Itoa(r.ppn))
	}
	if r.cpuType != "" {
		parts = append(parts, r.cpuType[:1])
	}
	return strings.Join(parts, ":")
}

// PbsOption renders the request the way qsub wants it, with absent counts
// defaulted: "nodes=1:ppn=10:intel".
func (r ResourceSpec) PbsOption() string {
	s := "nodes=" + strconv.Itoa(orOne(r.nodes)) + ":ppn=" + strconv.Itoa(orOne(r.ppn))
	if r.cpuType != "" {
		s += ":" + r.cpuType
	}
	return s
}

func (r ResourceSpec) String() string {
	return r.Compact()
}
