// Raw report records.  The input to every report is a JSON array of objects
// whose values are the already-isolated attribute strings of one PBS job or
// node, eg:
//
//   [{"id":"117.master", "owner":"alice@login1", "resources_used.walltime":
//     "12:34:56", ...}, ...]
//
// Conversion to typed values happens field by field: a field that fails to
// parse is logged and left absent, so one bad attribute degrades one cell,
// never the record and never the report.

package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"qview/common"
	"qview/hostset"
	"qview/resreq"
	"qview/unit"
)

type Raw map[string]string

// Read decodes a raw-record array from r.
func Read(r io.Reader) ([]Raw, error) {
	var recs []Raw
	dec := json.NewDecoder(r)
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("Failed to decode input records: %w", err)
	}
	return recs, nil
}

func (r Raw) Str(key string) string {
	return strings.TrimSpace(r[key])
}

// User returns the user part of a "user@host" attribute.
func (r Raw) User(key string) string {
	s := r.Str(key)
	if i := strings.IndexByte(s, '@'); i != -1 {
		s = s[:i]
	}
	return s
}

// Int returns the attribute as an int, 0 when missing, and logs when the
// attribute is present but malformed.
func (r Raw) Int(key string) int {
	s := r.Str(key)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.complain(key, err)
		return 0
	}
	return n
}

// Quantity parses the attribute in the given family; missing is absent.
func (r Raw) Quantity(key string, f unit.Family) unit.Quantity {
	q, err := unit.Parse(r.Str(key), f)
	if err != nil {
		r.complain(key, err)
	}
	return q
}

func (r Raw) Score(key string) unit.Score {
	s, err := unit.ParseScore(r.Str(key))
	if err != nil {
		r.complain(key, err)
	}
	return s
}

func (r Raw) Resources(key string) resreq.ResourceSpec {
	spec, err := resreq.Parse(r.Str(key))
	if err != nil {
		r.complain(key, err)
	}
	return spec
}

func (r Raw) Hosts(key string) hostset.HostSet {
	h, err := hostset.Parse(r.Str(key))
	if err != nil {
		r.complain(key, err)
	}
	return h
}

func (r Raw) complain(key string, err error) {
	common.Log.Infof("Dropping field %s: %v", key, err)
}
