package table

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Render lays out the columns and writes the whole report: header, rule,
// then one line per record.  Output goes through a strings.Builder per line
// so a short write cannot leave a torn line.
func Render(w io.Writer, columns []Column, records []Record, opts Options) {
	opts = opts.withDefaults()
	layout := Lay(columns, records, opts)

	writeLine(w, layout.headerLine(opts))
	writeLine(w, layout.ruleLine(opts))
	for _, r := range records {
		writeLine(w, layout.recordLine(r, opts))
	}
}

func writeLine(w io.Writer, line string) {
	io.WriteString(w, strings.TrimRight(line, " "))
	io.WriteString(w, "\n")
}

func (l Layout) headerLine(opts Options) string {
	var b strings.Builder
	n := 0
	for _, c := range l.Columns {
		if c.State == Excluded {
			continue
		}
		if n > 0 {
			b.WriteString(opts.Separator)
		}
		cell := fit(c.Header, c.Width, opts.TruncMarker)
		cell = pad(cell, c.Width, Left)
		b.WriteString(opts.Colors.Wrap(c.Color, cell))
		n++
	}
	return b.String()
}

func (l Layout) ruleLine(opts Options) string {
	var b strings.Builder
	n := 0
	for _, c := range l.Columns {
		if c.State == Excluded {
			continue
		}
		if n > 0 {
			b.WriteString(opts.Separator)
		}
		b.WriteString(strings.Repeat(opts.RuleChar, c.Width))
		n++
	}
	return b.String()
}

func (l Layout) recordLine(r Record, opts Options) string {
	var b strings.Builder
	n := 0
	for _, c := range l.Columns {
		if c.State == Excluded {
			continue
		}
		if n > 0 {
			b.WriteString(opts.Separator)
		}
		f := r[c.Key]
		cell := fit(f.Text, c.Width, opts.TruncMarker)
		cell = pad(cell, c.Width, c.Align)
		tag := f.Color
		if tag == "" {
			tag = c.Color
		}
		b.WriteString(opts.Colors.Wrap(tag, cell))
		n++
	}
	return b.String()
}

// fit truncates text to exactly width runes when it is too wide, ending in
// the truncation marker.  When the width is narrower than the marker the
// marker itself is cut; the contract is only that the result never exceeds
// the width.
func fit(text string, width int, marker string) string {
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	m := []rune(marker)
	if width <= len(m) {
		return string(m[:max(width, 0)])
	}
	r := []rune(text)
	return string(r[:width-len(m)]) + marker
}

func pad(text string, width int, align Align) string {
	n := width - utf8.RuneCountInString(text)
	if n <= 0 {
		return text
	}
	fill := strings.Repeat(" ", n)
	if align == Right {
		return fill + text
	}
	return text + fill
}
