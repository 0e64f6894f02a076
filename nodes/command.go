package nodes

import (
	"errors"
	"flag"
	"io"
	"regexp"
	"slices"

	. "qview/command"
	"qview/record"
	"qview/table"
	"qview/unit"
)

type NodesCommand struct {
	VerboseArgs
	InputArgs
	RenderArgs
	SortArgs

	// Filters
	State string
	Ctype string
	Load  string

	stateRe *regexp.Regexp
	ctypeRe *regexp.Regexp
	sorter  func(a, b *Node) int
}

func (nc *NodesCommand) Add(fs *flag.FlagSet) {
	nc.VerboseArgs.Add(fs)
	nc.InputArgs.Add(fs)
	nc.RenderArgs.Add(fs)
	nc.SortArgs.Add(fs)
	fs.StringVar(&nc.State, "state", "", "Select nodes in this state (anchored `regexp`)")
	fs.StringVar(&nc.Ctype, "ctype", "", "Select nodes with this cpu type (anchored `regexp`)")
	fs.StringVar(&nc.Load, "load", "", "Select nodes whose load matches `predicate`, eg '>8'")
}

func (nc *NodesCommand) Summary() []string {
	return []string{
		"Print a table of cluster nodes with capacity, usage and health",
		"information, one line per node, fitted to the terminal width.",
	}
}

func (nc *NodesCommand) Validate() error {
	var e1, e2, e3, e4, e5 error
	e1 = nc.VerboseArgs.Validate()
	e2 = nc.InputArgs.Validate()
	e3 = nc.RenderArgs.Validate()
	nc.stateRe, e4 = CompileMatcher(nc.State, "-state")
	nc.ctypeRe, e5 = CompileMatcher(nc.Ctype, "-ctype")
	sorter, e6 := ResolveSort(&nc.SortArgs, nodeComparators)
	if sorter == nil {
		// Nodes list by node id unless asked otherwise.
		sorter = nodeComparators["node"]
		if nc.Reverse {
			sorter = func(a, b *Node) int { return cmpInt(b.Node, a.Node) }
		}
	}
	nc.sorter = sorter
	NotePredicate("-load", nc.Load, unit.CheckScorePredicate(nc.Load))
	return errors.Join(e1, e2, e3, e4, e5, e6)
}

func (nc *NodesCommand) keep(n *Node) bool {
	if nc.stateRe != nil && !nc.stateRe.MatchString(n.State) {
		return false
	}
	if nc.ctypeRe != nil && !nc.ctypeRe.MatchString(n.Ctype) {
		return false
	}
	if nc.Load != "" && !n.Load.Match(nc.Load) {
		return false
	}
	return true
}

func (nc *NodesCommand) Perform(in io.Reader, stdout, _ io.Writer) error {
	input, err := nc.InputArgs.Open(in)
	if err != nil {
		return err
	}
	defer input.Close()

	raws, err := record.Read(input)
	if err != nil {
		return err
	}

	nodes := make([]*Node, 0, len(raws))
	for _, r := range raws {
		if n := FromRaw(r); nc.keep(n) {
			nodes = append(nodes, n)
		}
	}
	slices.SortStableFunc(nodes, nc.sorter)

	records := make([]table.Record, len(nodes))
	for i, n := range nodes {
		records[i] = n.render()
	}
	table.Render(stdout, columns(nc.Long), records, nc.Options())
	return nil
}
