// The jobs report: one line per queued or running job, from raw qstat
// attribute records.

package jobs

import (
	"qview/hostset"
	"qview/record"
	"qview/resreq"
	"qview/unit"
)

type Job struct {
	Id         string
	Name       string
	Owner      string
	State      string
	SubmitArgs string
	Resnode    resreq.ResourceSpec
	Pmem       unit.Quantity
	Memused    unit.Quantity
	Cputime    unit.Quantity
	Walltime   unit.Quantity
	Host       hostset.HostSet

	// Derived
	Ncpu  int // virtual processor count; 0 until the job runs
	Score unit.Score
}

// FromRaw converts one raw record.  Field conversion is fail-soft: a
// malformed attribute is logged by the record layer and ends up absent here.
func FromRaw(r record.Raw) *Job {
	j := &Job{
		Id:         r.Str("id"),
		Name:       r.Str("name"),
		Owner:      r.User("owner"),
		State:      r.Str("state"),
		SubmitArgs: r.Str("submit_args"),
		Resnode:    r.Resources("resnode"),
		Pmem:       r.Quantity("pmem", unit.Bytes),
		Memused:    r.Quantity("memused", unit.Bytes),
		Cputime:    r.Quantity("cputime", unit.Time),
		Walltime:   r.Quantity("walltime", unit.Time),
		Host:       r.Hosts("host"),
	}
	j.derive()
	return j
}

func (j *Job) derive() {
	if !j.Host.IsEmpty() {
		j.Ncpu = j.Host.Len()
	} else if !j.Resnode.IsZero() {
		// Queued jobs have no execution hosts yet; the reservation is the
		// best estimate of the claim.
		j.Ncpu = j.Resnode.CpuCount()
	}
	if !j.Host.IsEmpty() {
		j.Score = unit.Ratio(j.Cputime, j.Walltime, float64(j.Host.Len()))
	}
}

// Efficiency scores near 1 are healthy; far below means idle processors,
// above means oversubscription.
const (
	scoreLow  = 0.95
	scoreHigh = 1.03
)

func (j *Job) scoreColor() string {
	if !j.Score.Present() {
		return ""
	}
	if v := j.Score.Value(); v < scoreLow || v > scoreHigh {
		return "warning"
	}
	return ""
}

// A job eating real memory without having told PBS how much it would need
// gets flagged; the scheduler cannot protect other jobs from it.
var memusedThreshold = unit.New(unit.Bytes, 1e9)

func (j *Job) memusedColor() string {
	if !j.Pmem.Present() && unit.Cmp(j.Memused, memusedThreshold) > 0 {
		return "warning"
	}
	return ""
}
