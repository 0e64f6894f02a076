// The owners report: per-user aggregation of the jobs report, showing who
// holds how much of the cluster and how efficiently they use it.

package owners

import (
	"qview/hostset"
	"qview/jobs"
	"qview/unit"
)

type Owner struct {
	Name      string
	Njobs     int
	Hosts     hostset.HostSet
	Memused   unit.Quantity
	Walltime  unit.Quantity
	Cputime   unit.Quantity
	Claimtime unit.Quantity // sum over jobs of walltime * ncpu

	// Derived
	Cpus  int // total virtual processors held
	Score unit.Score
}

// Aggregate folds the job list into one record per owner.  The result is in
// first-appearance order; sorting is the command's business.
func Aggregate(js []*jobs.Job) []*Owner {
	index := make(map[string]*Owner)
	owners := make([]*Owner, 0)
	for _, j := range js {
		o := index[j.Owner]
		if o == nil {
			o = &Owner{
				Name:     j.Owner,
				Memused:  unit.Absent(unit.Bytes),
				Walltime: unit.Absent(unit.Time),
				Cputime:  unit.Absent(unit.Time),
			}
			o.Claimtime = unit.Absent(unit.Time)
			index[j.Owner] = o
			owners = append(owners, o)
		}
		o.Njobs++
		o.Hosts = hostset.Concat(o.Hosts, j.Host)
		o.Memused, _ = unit.Add(o.Memused, j.Memused)
		o.Walltime, _ = unit.Add(o.Walltime, j.Walltime)
		o.Cputime, _ = unit.Add(o.Cputime, j.Cputime)
		if !j.Host.IsEmpty() {
			claim := unit.Scale(j.Walltime, float64(j.Host.Len()))
			o.Claimtime, _ = unit.Add(o.Claimtime, claim)
		}
	}
	for _, o := range owners {
		o.Cpus = o.Hosts.Len()
		o.Score = unit.Ratio(o.Cputime, o.Claimtime, 1)
	}
	return owners
}
