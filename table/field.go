package table

// Field is one rendered cell: the natural text of a typed value plus an
// optional color tag.  Absent values arrive as the empty string; the layout
// and renderer never need to know why a cell is blank.
type Field struct {
	Text  string
	Color string
}

// Record maps column keys to cells.  A missing key reads as an empty Field.
type Record map[string]Field

// Align controls cell padding within the assigned column width.
type Align int

const (
	Left Align = iota
	Right
)

// Column describes one column of a report.  Prio orders columns by
// importance when the layout must shrink or drop them; lower is more
// important.  MinWidth is the narrowest acceptable width for the column's
// content to stay readable.
type Column struct {
	Key      string
	Header   string
	MinWidth int
	Prio     int
	Align    Align
	Color    string // tag applied to the header and to untagged cells
}
