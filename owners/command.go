package owners

import (
	"errors"
	"flag"
	"io"
	"regexp"
	"slices"
	"strconv"

	. "qview/command"
	"qview/jobs"
	"qview/record"
	"qview/table"
	"qview/unit"
)

type OwnersCommand struct {
	VerboseArgs
	InputArgs
	RenderArgs
	SortArgs

	Owner string

	ownerRe *regexp.Regexp
	sorter  func(a, b *Owner) int
}

func (oc *OwnersCommand) Add(fs *flag.FlagSet) {
	oc.VerboseArgs.Add(fs)
	oc.InputArgs.Add(fs)
	oc.RenderArgs.Add(fs)
	oc.SortArgs.Add(fs)
	fs.StringVar(&oc.Owner, "owner", "", "Select owners by name (anchored `regexp`)")
}

func (oc *OwnersCommand) Summary() []string {
	return []string{
		"Aggregate the job records per owner and print each owner's share",
		"of the cluster: jobs, processors, memory, time and efficiency.",
	}
}

func (oc *OwnersCommand) Validate() error {
	var e1, e2, e3, e4 error
	e1 = oc.VerboseArgs.Validate()
	e2 = oc.InputArgs.Validate()
	e3 = oc.RenderArgs.Validate()
	oc.ownerRe, e4 = CompileMatcher(oc.Owner, "-owner")
	sorter, e5 := ResolveSort(&oc.SortArgs, ownerComparators)
	if sorter == nil {
		// Owners list by ascending processor count, biggest consumers at
		// the bottom where the eye lands.
		sorter = ownerComparators["cpus"]
		if oc.Reverse {
			sorter = func(a, b *Owner) int { return cmpInt(b.Cpus, a.Cpus) }
		}
	}
	oc.sorter = sorter
	return errors.Join(e1, e2, e3, e4, e5)
}

func (oc *OwnersCommand) Perform(in io.Reader, stdout, _ io.Writer) error {
	input, err := oc.InputArgs.Open(in)
	if err != nil {
		return err
	}
	defer input.Close()

	raws, err := record.Read(input)
	if err != nil {
		return err
	}

	js := make([]*jobs.Job, 0, len(raws))
	for _, r := range raws {
		js = append(js, jobs.FromRaw(r))
	}
	owners := Aggregate(js)
	if oc.ownerRe != nil {
		owners = slices.DeleteFunc(owners, func(o *Owner) bool {
			return !oc.ownerRe.MatchString(o.Name)
		})
	}
	slices.SortStableFunc(owners, oc.sorter)

	records := make([]table.Record, len(owners))
	for i, o := range owners {
		records[i] = o.render(oc.Long)
	}
	table.Render(stdout, columns(oc.Long), records, oc.Options())
	return nil
}

var ownerColumns = []table.Column{
	{Key: "owner", Header: "owner", MinWidth: 5, Prio: 1},
	{Key: "njobs", Header: "jobs", MinWidth: 4, Prio: 2, Align: table.Right},
	{Key: "cpus", Header: "cpus", MinWidth: 4, Prio: 3, Align: table.Right},
	{Key: "memused", Header: "mem", MinWidth: 4, Prio: 4, Align: table.Right},
	{Key: "walltime", Header: "time", MinWidth: 4, Prio: 5, Align: table.Right},
	{Key: "score", Header: "score", MinWidth: 4, Prio: 6, Align: table.Right},
}

var ownerColumnsLong = append(ownerColumns[0:len(ownerColumns):len(ownerColumns)],
	table.Column{Key: "cputime", Header: "cputime", MinWidth: 4, Prio: 7, Align: table.Right},
	table.Column{Key: "claimtime", Header: "claimtime", MinWidth: 4, Prio: 8, Align: table.Right},
	table.Column{Key: "hosts", Header: "hosts", MinWidth: 5, Prio: 9},
)

func columns(long bool) []table.Column {
	if long {
		return ownerColumnsLong
	}
	return ownerColumns
}

func (o *Owner) render(long bool) table.Record {
	return table.Record{
		"owner":     {Text: o.Name},
		"njobs":     {Text: strconv.Itoa(o.Njobs)},
		"cpus":      {Text: strconv.Itoa(o.Cpus)},
		"memused":   {Text: o.Memused.Format(unit.Mode{Prec: -1})},
		"walltime":  {Text: o.Walltime.Format(unit.Mode{Prec: -1})},
		"score":     {Text: o.Score.Format(2, 0)},
		"cputime":   {Text: o.Cputime.Format(unit.Mode{Prec: -1})},
		"claimtime": {Text: o.Claimtime.Format(unit.Mode{Prec: -1})},
		"hosts":     {Text: o.Hosts.Format(1)},
	}
}

var ownerComparators = map[string]func(a, b *Owner) int{
	"owner":    func(a, b *Owner) int { return cmpString(a.Name, b.Name) },
	"njobs":    func(a, b *Owner) int { return cmpInt(a.Njobs, b.Njobs) },
	"cpus":     func(a, b *Owner) int { return cmpInt(a.Cpus, b.Cpus) },
	"memused":  func(a, b *Owner) int { return unit.Cmp(a.Memused, b.Memused) },
	"walltime": func(a, b *Owner) int { return unit.Cmp(a.Walltime, b.Walltime) },
	"cputime":  func(a, b *Owner) int { return unit.Cmp(a.Cputime, b.Cputime) },
	"score":    func(a, b *Owner) int { return unit.CmpScore(a.Score, b.Score) },
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
