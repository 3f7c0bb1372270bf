package config

import (
	"os"
	"path/filepath"
	"strings"
)

// newExpander builds the $CWD/$PARENT/$HOME replacer described in spec §6.
// $PARENT is the basename of cwd, not its parent directory — naming it
// after what it's used for (the last path segment) rather than its
// filesystem relationship.
func newExpander(cwd string) *strings.Replacer {
	home, _ := os.UserHomeDir()
	return strings.NewReplacer(
		"$CWD", cwd,
		"$PARENT", filepath.Base(cwd),
		"$HOME", home,
	)
}

// Expand applies the same substitution to a single string, used for CLI
// flag values which go through no other decode step.
func Expand(cwd, s string) string {
	return newExpander(cwd).Replace(s)
}
