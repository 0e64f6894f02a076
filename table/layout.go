// The adaptive column layout.  Given column descriptors, the records to be
// printed, and a target line width, compute a width for every column such
// that the report fits.  Layout never fails: when even the most important
// column cannot fit, the result is simply the best-effort subset, and cell
// truncation (render.go) guarantees the line width in the end.

package table

import (
	"sort"
	"unicode/utf8"
)

type ColumnState int

const (
	// Proposed columns have a computed natural width but no final width yet.
	Proposed ColumnState = iota
	// IncludedNatural columns print at their natural width.
	IncludedNatural
	// IncludedMin columns were shrunk to their minimum width.
	IncludedMin
	// IncludedExpanded columns got some slack back after shrinking.
	IncludedExpanded
	// Excluded columns do not print at all.
	Excluded
)

type LaidColumn struct {
	Column
	Natural int // max rune width of header and cells
	Width   int // assigned width; meaningless when Excluded
	State   ColumnState
}

type Layout struct {
	Columns []LaidColumn // in the original column order
}

type Options struct {
	Width       int    // target line width; <= 0 means unbounded
	Separator   string // between columns; default two spaces
	TruncMarker string // suffix of truncated cells; default "..."
	RuleChar    string // fill of the rule under the header; default "-"
	Colors      ColorScheme
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = "  "
	}
	if o.TruncMarker == "" {
		o.TruncMarker = "..."
	}
	if o.RuleChar == "" {
		o.RuleChar = "-"
	}
	return o
}

// Lay computes the layout for the given columns and records.
//
// First every column gets its natural width, the widest of its header and
// its cells; columns with no cell content at all are excluded outright.  If
// the naturals plus separators fit the target, that is the layout.
// Otherwise columns claim their minimum width in priority order until the
// budget runs out; columns that do not fit even at minimum width are
// excluded, and whatever budget remains is handed back to the survivors, in
// priority order, up to each one's natural width.
func Lay(columns []Column, records []Record, opts Options) Layout {
	opts = opts.withDefaults()
	sep := utf8.RuneCountInString(opts.Separator)

	laid := make([]LaidColumn, len(columns))
	for i, c := range columns {
		laid[i] = LaidColumn{Column: c, State: Proposed}
		empty := true
		for _, r := range records {
			if f, found := r[c.Key]; found && f.Text != "" {
				empty = false
				if w := utf8.RuneCountInString(f.Text); w > laid[i].Natural {
					laid[i].Natural = w
				}
			}
		}
		if empty {
			laid[i].State = Excluded
			continue
		}
		if w := utf8.RuneCountInString(c.Header); w > laid[i].Natural {
			laid[i].Natural = w
		}
	}

	candidates := make([]int, 0, len(laid))
	total := 0
	for i := range laid {
		if laid[i].State == Excluded {
			continue
		}
		if len(candidates) > 0 {
			total += sep
		}
		total += laid[i].Natural
		candidates = append(candidates, i)
	}

	if opts.Width <= 0 || total <= opts.Width {
		for _, i := range candidates {
			laid[i].Width = laid[i].Natural
			laid[i].State = IncludedNatural
		}
		return Layout{Columns: laid}
	}

	// Most important first; original order breaks priority ties.
	byPrio := make([]int, len(candidates))
	copy(byPrio, candidates)
	sort.SliceStable(byPrio, func(a, b int) bool {
		return laid[byPrio[a]].Prio < laid[byPrio[b]].Prio
	})

	committed := 0
	kept := 0
	for _, i := range byPrio {
		need := laid[i].MinWidth
		if kept > 0 {
			need += sep
		}
		if committed+need <= opts.Width {
			committed += need
			kept++
			laid[i].Width = laid[i].MinWidth
			laid[i].State = IncludedMin
		} else {
			laid[i].State = Excluded
		}
	}

	slack := opts.Width - committed
	for _, i := range byPrio {
		if slack == 0 {
			break
		}
		if laid[i].State != IncludedMin {
			continue
		}
		grow := laid[i].Natural - laid[i].Width
		if grow > slack {
			grow = slack
		}
		if grow > 0 {
			laid[i].Width += grow
			slack -= grow
			laid[i].State = IncludedExpanded
		}
	}

	return Layout{Columns: laid}
}

// LineWidth is the width of a rendered line under this layout, separators
// included.
func (l Layout) LineWidth(opts Options) int {
	opts = opts.withDefaults()
	sep := utf8.RuneCountInString(opts.Separator)
	w := 0
	n := 0
	for _, c := range l.Columns {
		if c.State == Excluded {
			continue
		}
		if n > 0 {
			w += sep
		}
		w += c.Width
		n++
	}
	return w
}
