package nodes

import (
	"strings"
	"testing"

	"qview/record"
)

func sampleRaw() record.Raw {
	return record.Raw{
		"name":       "compute-0-12",
		"state":      "job-exclusive",
		"ctype":      "intel",
		"ncpus":      "8",
		"jobs":       "117.master, 118.master",
		"totmem":     "16gb",
		"physmem":    "16gb",
		"availmem":   "4gb",
		"load":       "7.92",
		"disk_total": "100gb",
		"disk_free":  "20gb",
		"bytes_in":   "3gb",
		"bytes_out":  "1gb",
		"cpu_idle":   "1.0",
	}
}

func TestFromRaw(t *testing.T) {
	n := FromRaw(sampleRaw())
	if n.Node != 12 {
		t.Errorf("Node = %d", n.Node)
	}
	if len(n.Jobs) != 2 {
		t.Errorf("Jobs = %v", n.Jobs)
	}
	if n.Memu.Value() != 12e9 {
		t.Errorf("Memu = %v", n.Memu.Value())
	}
	if n.BytesTot.Value() != 4e9 {
		t.Errorf("BytesTot = %v", n.BytesTot.Value())
	}
	if n.DiskUsed.Value() != 80e9 {
		t.Errorf("DiskUsed = %v", n.DiskUsed.Value())
	}
	if got := n.Relmemu.Format(2, 0); got != "0.75" {
		t.Errorf("Relmemu = %q", got)
	}
	if got := n.Reldisku.Format(2, 0); got != "0.80" {
		t.Errorf("Reldisku = %q", got)
	}
	if n.Cpufree != 6 {
		t.Errorf("Cpufree = %d", n.Cpufree)
	}
	if got := n.Score.Format(2, 0); got != "3.96" {
		t.Errorf("Score = %q", got)
	}
}

func TestOfflineNodeBlanksUsage(t *testing.T) {
	r := sampleRaw()
	r["state"] = "down,offline"
	n := FromRaw(r)
	if n.Memu.Present() || n.DiskUsed.Present() || n.BytesTot.Present() {
		t.Errorf("usage quantities of an offline node should be blank")
	}
	if n.Relmemu.Present() || n.Reldisku.Present() || n.Load.Present() || n.Score.Present() {
		t.Errorf("usage ratios of an offline node should be blank")
	}
	// Capacity is still real and still prints.
	if !n.Memt.Present() || n.Ncpu != 8 {
		t.Errorf("capacity fields should survive")
	}
}

func TestStateColors(t *testing.T) {
	tests := []struct {
		state  string
		expect string
	}{
		{"free", ""},
		{"job-exclusive", ""},
		{"down,offline", "down"},
		{"busy", "error"},
	}
	for _, test := range tests {
		r := sampleRaw()
		r["state"] = test.state
		if got := FromRaw(r).stateColor(); got != test.expect {
			t.Errorf("stateColor(%q) = %q, want %q", test.state, got, test.expect)
		}
	}
}

func TestUsageColors(t *testing.T) {
	n := FromRaw(sampleRaw())
	if got := n.relmemuColor(); got != "" {
		t.Errorf("relmemu 0.75 tagged %q", got)
	}
	if got := n.reldiskuColor(); got != "warning" {
		t.Errorf("reldisku 0.80 should warn, got %q", got)
	}
	if got := n.cpufreeColor(); got != "free" {
		t.Errorf("free processors should be tagged, got %q", got)
	}

	r := sampleRaw()
	r["availmem"] = "1gb"
	r["jobs"] = "a,b,c,d,e,f,g,h"
	n = FromRaw(r)
	if got := n.relmemuColor(); got != "warning" {
		t.Errorf("relmemu above threshold should warn, got %q", got)
	}
	if got := n.cpufreeColor(); got != "" {
		t.Errorf("fully busy node tagged %q", got)
	}
}

func TestPerformSortsAndFilters(t *testing.T) {
	input := `[
		{"name":"c7","state":"free","ncpus":"4","totmem":"8gb","availmem":"6gb","load":"0.1"},
		{"name":"c3","state":"free","ncpus":"4","totmem":"8gb","availmem":"6gb","load":"3.9"},
		{"name":"c5","state":"down","ncpus":"4","totmem":"8gb"}
	]`
	var nc NodesCommand
	nc.NoColor = true
	nc.WidthArg = 200
	if err := nc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	var out strings.Builder
	if err := nc.Perform(strings.NewReader(input), &out, &out); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out.String())
	}
	// Default order is by node id.
	for i, want := range []string{"3", "5", "7"} {
		if !strings.Contains(lines[2+i], want) {
			t.Errorf("line %d = %q, want node %s", 2+i, lines[2+i], want)
		}
	}

	nc = NodesCommand{}
	nc.NoColor = true
	nc.State = "free"
	if err := nc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	out.Reset()
	if err := nc.Perform(strings.NewReader(input), &out, &out); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if strings.Contains(out.String(), "down") {
		t.Errorf("-state free should exclude the down node:\n%s", out.String())
	}
}
