// The nodes report: one line per cluster node, from raw pbsnodes attribute
// records enriched with node telemetry (load, disk, network, cpu idle).

package nodes

import (
	"strings"

	"qview/record"
	"qview/unit"
)

type Node struct {
	Name      string
	State     string
	Ctype     string
	Ncpu      int
	Jobs      []string // job ids running here
	Memt      unit.Quantity
	Memp      unit.Quantity
	Mema      unit.Quantity
	Load      unit.Score
	DiskTotal unit.Quantity
	DiskFree  unit.Quantity
	BytesIn   unit.Quantity
	BytesOut  unit.Quantity
	CpuIdle   unit.Score

	// Derived
	Node     int // trailing numeric id of Name
	Memu     unit.Quantity
	BytesTot unit.Quantity
	DiskUsed unit.Quantity
	Relmemu  unit.Score
	Reldisku unit.Score
	Cpufree  int
	Score    unit.Score
}

func FromRaw(r record.Raw) *Node {
	n := &Node{
		Name:      r.Str("name"),
		State:     r.Str("state"),
		Ctype:     r.Str("ctype"),
		Ncpu:      r.Int("ncpus"),
		Jobs:      splitJobs(r.Str("jobs")),
		Memt:      r.Quantity("totmem", unit.Bytes),
		Memp:      r.Quantity("physmem", unit.Bytes),
		Mema:      r.Quantity("availmem", unit.Bytes),
		Load:      r.Score("load"),
		DiskTotal: r.Quantity("disk_total", unit.Bytes),
		DiskFree:  r.Quantity("disk_free", unit.Bytes),
		BytesIn:   r.Quantity("bytes_in", unit.Bytes),
		BytesOut:  r.Quantity("bytes_out", unit.Bytes),
		CpuIdle:   r.Score("cpu_idle"),
	}
	n.derive()
	return n
}

func splitJobs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	jobs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			jobs = append(jobs, p)
		}
	}
	return jobs
}

func (n *Node) derive() {
	n.Node = trailingInt(n.Name)
	n.Memu, _ = unit.Sub(n.Memt, n.Mema)
	n.BytesTot, _ = unit.Add(n.BytesIn, n.BytesOut)
	n.DiskUsed, _ = unit.Sub(n.DiskTotal, n.DiskFree)
	n.Relmemu = unit.Ratio(n.Memu, n.Memt, 1)
	n.Reldisku = unit.Ratio(n.DiskUsed, n.DiskTotal, 1)
	njobs := len(n.Jobs)
	n.Cpufree = n.Ncpu - njobs
	if njobs > 0 && n.Load.Present() {
		n.Score = unit.NewScore(n.Load.Value() / float64(njobs))
	}
	if n.offline() {
		// Usage numbers from a node that is out of service are stale at
		// best; print the node but blank what cannot be trusted.
		n.Memu = unit.Absent(unit.Bytes)
		n.BytesTot = unit.Absent(unit.Bytes)
		n.DiskUsed = unit.Absent(unit.Bytes)
		n.Relmemu = unit.AbsentScore()
		n.Reldisku = unit.AbsentScore()
		n.Load = unit.AbsentScore()
		n.CpuIdle = unit.AbsentScore()
		n.Score = unit.AbsentScore()
		n.Cpufree = 0
	}
}

func trailingInt(s string) int {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0
	}
	n := 0
	for _, c := range s[i:] {
		n = n*10 + int(c-'0')
	}
	return n
}

func (n *Node) offline() bool {
	return strings.Contains(n.State, "down") || strings.Contains(n.State, "offline")
}

func (n *Node) stateColor() string {
	switch n.State {
	case "free", "job-exclusive":
		return ""
	}
	if n.offline() {
		return "down"
	}
	return "error"
}

const (
	relmemuThreshold  = 0.8
	reldiskuThreshold = 0.7
)

func (n *Node) relmemuColor() string {
	if n.Relmemu.Present() && n.Relmemu.Value() > relmemuThreshold {
		return "warning"
	}
	return ""
}

func (n *Node) reldiskuColor() string {
	if n.Reldisku.Present() && n.Reldisku.Value() > reldiskuThreshold {
		return "warning"
	}
	return ""
}

func (n *Node) cpufreeColor() string {
	if n.Cpufree > 0 {
		return "free"
	}
	return ""
}
