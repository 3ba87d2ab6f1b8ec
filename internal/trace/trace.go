// Package trace provides the verbosity-gated diagnostic output of the
// elaborator passes. Records are advisory and never affect results.
package trace

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Tracer writes gated trace records tagged with a per-run session id, so
// output from separate runs (for example under the watch command) can be
// told apart. A nil *Tracer is valid and discards everything.
type Tracer struct {
	out     io.Writer
	level   int
	session string
}

// New returns a tracer writing records up to the given level to out.
// Level 0 discards everything.
func New(out io.Writer, level int) *Tracer {
	return &Tracer{out: out, level: level, session: shortID()}
}

func shortID() string {
	id := uuid.NewString()
	return id[:8]
}

// Session returns the tracer's session id, or an empty string for a nil
// tracer.
func (t *Tracer) Session() string {
	if t == nil {
		return ""
	}
	return t.session
}

// Enabled reports whether records at the given level would be written.
// Callers use it to skip expensive rendering.
func (t *Tracer) Enabled(level int) bool {
	return t != nil && t.out != nil && level > 0 && level <= t.level
}

// Printf writes one record at the given level.
func (t *Tracer) Printf(level int, format string, args ...interface{}) {
	if !t.Enabled(level) {
		return
	}
	fmt.Fprintf(t.out, "[%s] %s\n", t.session, fmt.Sprintf(format, args...))
}
