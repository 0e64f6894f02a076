// Shared argument groups.  Every verb embeds the groups it needs and chains
// Add and Validate; errors are joined so the user sees all argument problems
// at once.

package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"qview/common"
	"qview/status"
	"qview/table"
)

const defaultWidth = 100

type VerboseArgs struct {
	Verbose bool
}

func (va *VerboseArgs) Add(fs *flag.FlagSet) {
	fs.BoolVar(&va.Verbose, "v", false, "Print verbose diagnostics")
	fs.BoolVar(&va.Verbose, "verbose", false, "Print verbose diagnostics")
}

func (va *VerboseArgs) Validate() error {
	if va.Verbose {
		common.Log.LowerLevelTo(status.LogLevelDebug)
	}
	return nil
}

// InputArgs names the raw-record source, default stdin.
type InputArgs struct {
	InputFile string
}

func (ia *InputArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&ia.InputFile, "i", "", "Read records from `filename`, not stdin")
}

func (ia *InputArgs) Validate() error {
	if ia.InputFile != "" {
		info, err := os.Stat(ia.InputFile)
		if err != nil {
			return fmt.Errorf("Bad -i file: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("Bad -i file: %s is not a regular file", ia.InputFile)
		}
	}
	return nil
}

// Open returns the record source: the -i file if given, otherwise fallback.
func (ia *InputArgs) Open(fallback io.Reader) (io.ReadCloser, error) {
	if ia.InputFile == "" {
		return io.NopCloser(fallback), nil
	}
	return os.Open(ia.InputFile)
}

// RenderArgs control the table renderer.  Width precedence: explicit -width,
// then [output]width in ~/.qview, then $COLUMNS, then 100; -l disables the
// width limit altogether.
type RenderArgs struct {
	WidthArg   int
	Long       bool
	NoColor    bool
	ForceColor bool
	Separator  string
}

func (ra *RenderArgs) Add(fs *flag.FlagSet) {
	fs.IntVar(&ra.WidthArg, "width", -1, "Target line width in `columns`, 0 for unlimited")
	fs.BoolVar(&ra.Long, "l", false, "Long output: all columns, no width limit")
	fs.BoolVar(&ra.Long, "long", false, "Long output: all columns, no width limit")
	fs.BoolVar(&ra.NoColor, "nocolor", false, "Plain output, no terminal colors")
	fs.BoolVar(&ra.ForceColor, "color", false, "Colored output even when the defaults say otherwise")
	fs.StringVar(&ra.Separator, "separator", "", "Column separator `string`")
}

func (ra *RenderArgs) Validate() error {
	var e1, e2 error
	if ra.WidthArg < -1 {
		e1 = errors.New("-width cannot be negative")
	}
	if ra.NoColor && ra.ForceColor {
		e2 = errors.New("-color and -nocolor are contradictory")
	}
	common.ApplyDefault(&ra.Separator, common.OutputSeparator)
	return errors.Join(e1, e2)
}

// Width resolves the target line width, 0 meaning unbounded.
func (ra *RenderArgs) Width() int {
	if ra.Long {
		return 0
	}
	if ra.WidthArg >= 0 {
		return ra.WidthArg
	}
	if s := common.DefaultString(common.OutputWidth); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
		common.Log.Warningf("Ignoring bad [output]width value %q", s)
	}
	if s := os.Getenv("COLUMNS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultWidth
}

func (ra *RenderArgs) colors() table.ColorScheme {
	if ra.ForceColor {
		return table.DefaultColors
	}
	if ra.NoColor {
		return table.NoColor
	}
	if common.DefaultString(common.OutputColor) == "never" {
		return table.NoColor
	}
	return table.DefaultColors
}

// Options assembles the renderer options from the flags and defaults.
func (ra *RenderArgs) Options() table.Options {
	return table.Options{
		Width:     ra.Width(),
		Separator: ra.Separator,
		Colors:    ra.colors(),
	}
}

// SortArgs select the sort column and direction; the verb resolves the key
// against its own comparators.
type SortArgs struct {
	SortKey string
	Reverse bool
}

func (sa *SortArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&sa.SortKey, "sort", "", "Sort the report by `key`")
	fs.BoolVar(&sa.Reverse, "r", false, "Reverse the sort order")
}

func (sa *SortArgs) Validate() error {
	return nil
}

// ResolveSort looks up the comparator for the sort key and applies the
// direction.  An empty key is no sorting; an unknown key is an error listing
// the valid ones.
func ResolveSort[T any](sa *SortArgs, comparators map[string]func(a, b T) int) (func(a, b T) int, error) {
	if sa.SortKey == "" {
		return nil, nil
	}
	cmp, found := comparators[sa.SortKey]
	if !found {
		keys := make([]string, 0, len(comparators))
		for k := range comparators {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("Bad -sort key %q, valid keys are %v", sa.SortKey, keys)
	}
	if sa.Reverse {
		inner := cmp
		cmp = func(a, b T) int { return -inner(a, b) }
	}
	return cmp, nil
}
