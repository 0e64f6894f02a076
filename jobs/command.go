package jobs

import (
	"errors"
	"flag"
	"io"
	"regexp"
	"slices"

	. "qview/command"
	"qview/hostset"
	"qview/record"
	"qview/table"
	"qview/unit"
)

type JobsCommand struct {
	VerboseArgs
	InputArgs
	RenderArgs
	SortArgs

	// Filters
	Owner    string
	Name     string
	State    string
	Id       string
	Walltime string
	Memused  string
	Pmem     string
	Host     string

	ownerRe *regexp.Regexp
	nameRe  *regexp.Regexp
	stateRe *regexp.Regexp
	idRe    *regexp.Regexp
	sorter  func(a, b *Job) int
}

func (jc *JobsCommand) Add(fs *flag.FlagSet) {
	jc.VerboseArgs.Add(fs)
	jc.InputArgs.Add(fs)
	jc.RenderArgs.Add(fs)
	jc.SortArgs.Add(fs)
	fs.StringVar(&jc.Owner, "owner", "", "Select jobs with this owner (anchored `regexp`)")
	fs.StringVar(&jc.Name, "name", "", "Select jobs with this name (anchored `regexp`)")
	fs.StringVar(&jc.State, "state", "", "Select jobs in this state (anchored `regexp`)")
	fs.StringVar(&jc.Id, "id", "", "Select jobs with this id (anchored `regexp`)")
	fs.StringVar(&jc.Walltime, "walltime", "", "Select jobs whose walltime matches `predicate`, eg '>1d'")
	fs.StringVar(&jc.Memused, "memused", "", "Select jobs whose memory use matches `predicate`, eg '>=4gb'")
	fs.StringVar(&jc.Pmem, "pmem", "", "Select jobs whose memory reservation matches `predicate`")
	fs.StringVar(&jc.Host, "host", "", "Select jobs with an execution host matching `predicate`, eg '3'")
}

func (jc *JobsCommand) Summary() []string {
	return []string{
		"Print a table of queued and running jobs from raw job records,",
		"one line per job, fitted to the terminal width.",
	}
}

func (jc *JobsCommand) Validate() error {
	var e1, e2, e3, e4, e5, e6, e7 error
	e1 = jc.VerboseArgs.Validate()
	e2 = jc.InputArgs.Validate()
	e3 = jc.RenderArgs.Validate()
	jc.ownerRe, e4 = CompileMatcher(jc.Owner, "-owner")
	jc.nameRe, e5 = CompileMatcher(jc.Name, "-name")
	jc.stateRe, e6 = CompileMatcher(jc.State, "-state")
	jc.idRe, e7 = CompileMatcher(jc.Id, "-id")
	sorter, e8 := ResolveSort(&jc.SortArgs, jobComparators)
	jc.sorter = sorter
	NotePredicate("-walltime", jc.Walltime, unit.CheckPredicate(jc.Walltime, unit.Time))
	NotePredicate("-memused", jc.Memused, unit.CheckPredicate(jc.Memused, unit.Bytes))
	NotePredicate("-pmem", jc.Pmem, unit.CheckPredicate(jc.Pmem, unit.Bytes))
	NotePredicate("-host", jc.Host, hostset.CheckPredicate(jc.Host))
	return errors.Join(e1, e2, e3, e4, e5, e6, e7, e8)
}

func (jc *JobsCommand) keep(j *Job) bool {
	if jc.ownerRe != nil && !jc.ownerRe.MatchString(j.Owner) {
		return false
	}
	if jc.nameRe != nil && !jc.nameRe.MatchString(j.Name) {
		return false
	}
	if jc.stateRe != nil && !jc.stateRe.MatchString(j.State) {
		return false
	}
	if jc.idRe != nil && !jc.idRe.MatchString(j.Id) {
		return false
	}
	if jc.Walltime != "" && !j.Walltime.Match(jc.Walltime) {
		return false
	}
	if jc.Memused != "" && !j.Memused.Match(jc.Memused) {
		return false
	}
	if jc.Pmem != "" && !j.Pmem.Match(jc.Pmem) {
		return false
	}
	if jc.Host != "" && !j.Host.Match(jc.Host) {
		return false
	}
	return true
}

func (jc *JobsCommand) Perform(in io.Reader, stdout, _ io.Writer) error {
	input, err := jc.InputArgs.Open(in)
	if err != nil {
		return err
	}
	defer input.Close()

	raws, err := record.Read(input)
	if err != nil {
		return err
	}

	jobs := make([]*Job, 0, len(raws))
	for _, r := range raws {
		if j := FromRaw(r); jc.keep(j) {
			jobs = append(jobs, j)
		}
	}
	if jc.sorter != nil {
		slices.SortStableFunc(jobs, jc.sorter)
	}

	records := make([]table.Record, len(jobs))
	for i, j := range jobs {
		records[i] = j.render(jc.Long)
	}
	table.Render(stdout, columns(jc.Long), records, jc.Options())
	return nil
}
