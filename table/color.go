package table

// Cells carry a symbolic color tag; the scheme resolves tags to terminal
// escape sequences at render time.  An unknown tag renders plain, so reports
// can invent tags freely without breaking older schemes.

type ColorStyle struct {
	Prefix string
	Suffix string
}

type ColorScheme map[string]ColorStyle

// Wrap decorates text with the style for tag, or returns it unchanged when
// the tag is empty or unknown.
func (cs ColorScheme) Wrap(tag, text string) string {
	if tag == "" || cs == nil {
		return text
	}
	style, found := cs[tag]
	if !found {
		return text
	}
	return style.Prefix + text + style.Suffix
}

// NoColor renders everything plain.
var NoColor = ColorScheme(nil)

// DefaultColors is the standard ANSI palette for terminal output.
var DefaultColors = ColorScheme{
	"selection": {"\033[1;32m", "\033[0m"},
	"free":      {"\033[32m", "\033[0m"},
	"warning":   {"\033[1;31m", "\033[0m"},
	"error":     {"\033[41;37m", "\033[0m"},
	"down":      {"\033[9;31m", "\033[0m"},
}
