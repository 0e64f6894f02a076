// Optional user defaults from ~/.qview, an ini file.  Flags set on the command
// line always win; a default is applied only when the flag value is still
// empty after parsing.
//
// Recognized sections and fields:
//
//   [output]
//   width = <columns>
//   color = always | never
//   separator = <string>

package common

import (
	"errors"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"
)

// MT: Constant after initialization
var (
	p               = ini.NewParser()
	store           *ini.Store
	output          = p.AddSection("output")
	OutputWidth     = output.AddString("width")
	OutputColor     = output.AddString("color")
	OutputSeparator = output.AddString("separator")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".qview")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			Log.Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		Log.Errorf("Error in trying to parse %s: %s", fn, err.Error())
		return
	}
}

// HasDefault reports whether the defaults file provides a value for f.
func HasDefault(f *ini.Field) bool {
	return store != nil && f.Present(store)
}

// ApplyDefault stores the default for f into *sp, but only when *sp is still
// empty: a flag given on the command line is never overridden.
func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || !HasDefault(f) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}

// DefaultString returns the default for f, "" when there is none.
func DefaultString(f *ini.Field) string {
	if !HasDefault(f) {
		return ""
	}
	return os.ExpandEnv(f.StringVal(store))
}
