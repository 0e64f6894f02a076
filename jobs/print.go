package jobs

import (
	"qview/resreq"
	"qview/table"
	"qview/unit"
)

// Column presets.  Priorities decide what gives way first on narrow
// terminals; the job id and owner go last.
var jobColumns = []table.Column{
	{Key: "id", Header: "id", MinWidth: 4, Prio: 1, Align: table.Right},
	{Key: "owner", Header: "owner", MinWidth: 5, Prio: 2},
	{Key: "state", Header: "s", MinWidth: 1, Prio: 3},
	{Key: "walltime", Header: "time", MinWidth: 4, Prio: 4, Align: table.Right},
	{Key: "resnode", Header: "res", MinWidth: 4, Prio: 5},
	{Key: "memused", Header: "mem", MinWidth: 4, Prio: 6, Align: table.Right},
	{Key: "score", Header: "score", MinWidth: 4, Prio: 7, Align: table.Right},
	{Key: "pmem", Header: "pmem", MinWidth: 4, Prio: 8, Align: table.Right},
	{Key: "name", Header: "name", MinWidth: 6, Prio: 9},
}

var jobColumnsLong = append(jobColumns[0:len(jobColumns):len(jobColumns)],
	table.Column{Key: "cputime", Header: "cputime", MinWidth: 4, Prio: 10, Align: table.Right},
	table.Column{Key: "host", Header: "host", MinWidth: 3, Prio: 11},
	table.Column{Key: "submit_args", Header: "submit args", MinWidth: 10, Prio: 12},
)

func columns(long bool) []table.Column {
	if long {
		return jobColumnsLong
	}
	return jobColumns
}

// timeMode keeps running times compact; precision falls before digits do.
var timeMode = unit.Mode{Prec: -1, Width: 5}

func (j *Job) render(long bool) table.Record {
	hostPrec := 0
	if long {
		hostPrec = 1
	}
	return table.Record{
		"id":          {Text: j.Id},
		"owner":       {Text: j.Owner},
		"state":       {Text: j.State},
		"walltime":    {Text: j.Walltime.Format(timeMode)},
		"resnode":     {Text: j.Resnode.Compact()},
		"memused":     {Text: j.Memused.Format(unit.Mode{Prec: -1}), Color: j.memusedColor()},
		"score":       {Text: j.Score.Format(2, 0), Color: j.scoreColor()},
		"pmem":        {Text: j.Pmem.Format(unit.Mode{Prec: -1})},
		"name":        {Text: j.Name},
		"cputime":     {Text: j.Cputime.Format(timeMode)},
		"host":        {Text: j.Host.Format(hostPrec)},
		"submit_args": {Text: j.SubmitArgs},
	}
}

// Comparators for -sort.  Typed values compare as values, absent first.
var jobComparators = map[string]func(a, b *Job) int{
	"id":       func(a, b *Job) int { return cmpString(a.Id, b.Id) },
	"owner":    func(a, b *Job) int { return cmpString(a.Owner, b.Owner) },
	"name":     func(a, b *Job) int { return cmpString(a.Name, b.Name) },
	"state":    func(a, b *Job) int { return cmpString(a.State, b.State) },
	"walltime": func(a, b *Job) int { return unit.Cmp(a.Walltime, b.Walltime) },
	"cputime":  func(a, b *Job) int { return unit.Cmp(a.Cputime, b.Cputime) },
	"memused":  func(a, b *Job) int { return unit.Cmp(a.Memused, b.Memused) },
	"pmem":     func(a, b *Job) int { return unit.Cmp(a.Pmem, b.Pmem) },
	"score":    func(a, b *Job) int { return unit.CmpScore(a.Score, b.Score) },
	"resnode":  func(a, b *Job) int { return resreq.Cmp(a.Resnode, b.Resnode) },
	"host":     func(a, b *Job) int { return cmpInt(a.Host.OrderKey(), b.Host.OrderKey()) },
	"ncpu":     func(a, b *Job) int { return cmpInt(a.Ncpu, b.Ncpu) },
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
