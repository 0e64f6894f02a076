package nodes

import (
	"strconv"
	"strings"

	"qview/table"
	"qview/unit"
)

var nodeColumns = []table.Column{
	{Key: "node", Header: "node", MinWidth: 4, Prio: 1, Align: table.Right},
	{Key: "state", Header: "state", MinWidth: 4, Prio: 2},
	{Key: "cpufree", Header: "free", MinWidth: 4, Prio: 3, Align: table.Right},
	{Key: "ncpu", Header: "cpu", MinWidth: 3, Prio: 4, Align: table.Right},
	{Key: "load", Header: "load", MinWidth: 4, Prio: 5, Align: table.Right},
	{Key: "score", Header: "score", MinWidth: 4, Prio: 6, Align: table.Right},
	{Key: "relmemu", Header: "mem%", MinWidth: 4, Prio: 7, Align: table.Right},
	{Key: "memu", Header: "memu", MinWidth: 4, Prio: 8, Align: table.Right},
	{Key: "ctype", Header: "type", MinWidth: 4, Prio: 9},
	{Key: "jobs", Header: "jobs", MinWidth: 6, Prio: 10},
}

var nodeColumnsLong = append(nodeColumns[0:len(nodeColumns):len(nodeColumns)],
	table.Column{Key: "name", Header: "name", MinWidth: 6, Prio: 11},
	table.Column{Key: "memt", Header: "memt", MinWidth: 4, Prio: 12, Align: table.Right},
	table.Column{Key: "memp", Header: "memp", MinWidth: 4, Prio: 13, Align: table.Right},
	table.Column{Key: "mema", Header: "mema", MinWidth: 4, Prio: 14, Align: table.Right},
	table.Column{Key: "reldisku", Header: "disk%", MinWidth: 4, Prio: 15, Align: table.Right},
	table.Column{Key: "disk_used", Header: "dused", MinWidth: 4, Prio: 16, Align: table.Right},
	table.Column{Key: "bytes_tot", Header: "net", MinWidth: 4, Prio: 17, Align: table.Right},
	table.Column{Key: "cpu_idle", Header: "idle", MinWidth: 4, Prio: 18, Align: table.Right},
)

func columns(long bool) []table.Column {
	if long {
		return nodeColumnsLong
	}
	return nodeColumns
}

var byteMode = unit.Mode{Prec: -1}

func (n *Node) render() table.Record {
	stateColor := n.stateColor()
	return table.Record{
		"node":      {Text: strconv.Itoa(n.Node), Color: stateColor},
		"name":      {Text: n.Name},
		"state":     {Text: n.State, Color: stateColor},
		"cpufree":   {Text: strconv.Itoa(n.Cpufree), Color: n.cpufreeColor()},
		"ncpu":      {Text: strconv.Itoa(n.Ncpu)},
		"load":      {Text: n.Load.Format(2, 0)},
		"score":     {Text: n.Score.Format(2, 0)},
		"relmemu":   {Text: n.Relmemu.Format(2, 0), Color: n.relmemuColor()},
		"memu":      {Text: n.Memu.Format(byteMode)},
		"memt":      {Text: n.Memt.Format(byteMode)},
		"memp":      {Text: n.Memp.Format(byteMode)},
		"mema":      {Text: n.Mema.Format(byteMode)},
		"reldisku":  {Text: n.Reldisku.Format(2, 0), Color: n.reldiskuColor()},
		"disk_used": {Text: n.DiskUsed.Format(byteMode)},
		"bytes_tot": {Text: n.BytesTot.Format(byteMode)},
		"cpu_idle":  {Text: n.CpuIdle.Format(1, 0)},
		"ctype":     {Text: n.Ctype},
		"jobs":      {Text: strings.Join(n.Jobs, ",")},
	}
}

var nodeComparators = map[string]func(a, b *Node) int{
	"node":    func(a, b *Node) int { return cmpInt(a.Node, b.Node) },
	"name":    func(a, b *Node) int { return cmpString(a.Name, b.Name) },
	"state":   func(a, b *Node) int { return cmpString(a.State, b.State) },
	"ctype":   func(a, b *Node) int { return cmpString(a.Ctype, b.Ctype) },
	"ncpu":    func(a, b *Node) int { return cmpInt(a.Ncpu, b.Ncpu) },
	"cpufree": func(a, b *Node) int { return cmpInt(a.Cpufree, b.Cpufree) },
	"load":    func(a, b *Node) int { return unit.CmpScore(a.Load, b.Load) },
	"score":   func(a, b *Node) int { return unit.CmpScore(a.Score, b.Score) },
	"relmemu": func(a, b *Node) int { return unit.CmpScore(a.Relmemu, b.Relmemu) },
	"memu":    func(a, b *Node) int { return unit.Cmp(a.Memu, b.Memu) },
	"memt":    func(a, b *Node) int { return unit.Cmp(a.Memt, b.Memt) },
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
