package diagnostics

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// ShouldColor reports whether ANSI color should be used on the file
// descriptor, i.e. whether it is a terminal (including Cygwin/MSYS pipes).
func ShouldColor(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Fprint renders diagnostics one per line.
func Fprint(w io.Writer, errs []*DiagnosticError, color bool) {
	for _, e := range errs {
		prefix := fmt.Sprintf("error[%s]:", e.Code)
		if color {
			prefix = ansiRed + prefix + ansiReset
		}
		loc := e.Loc.String()
		if loc != "" {
			fmt.Fprintf(w, "%s %s: %s\n", prefix, loc, e.Message)
		} else {
			fmt.Fprintf(w, "%s %s\n", prefix, e.Message)
		}
	}
}
