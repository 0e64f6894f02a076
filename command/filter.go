package command

import (
	"fmt"
	"regexp"

	"qview/common"
)

// CompileMatcher compiles the regular expression of a record filter flag,
// anchored so that it must match the whole attribute value.  The empty
// expression is no filter.
func CompileMatcher(expr, flagName string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("Bad %s expression: %w", flagName, err)
	}
	return re, nil
}

// NotePredicate logs a malformed filter predicate at debug level.  A
// malformed predicate matches nothing rather than failing the command, and
// the debug line is the only trace of the typo.
func NotePredicate(flagName, expr string, err error) {
	if expr != "" && err != nil {
		common.Log.Debugf("%s %q will match nothing: %v", flagName, expr, err)
	}
}
