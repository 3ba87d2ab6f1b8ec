package forcing

import (
	"fmt"

	"github.com/vela-lang/vela/internal/core"
)

// InternalError indicates a broken elaboration invariant: the pass was
// handed input a correct pipeline can never produce (a constructor
// codomain not headed by a data type, a forced pattern with nowhere to
// relocate its match, an unregistered name). It aborts processing of
// the current unit and is never caused by user input alone.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

func internalf(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// AmbiguityError is the one user-facing failure of the translation:
// the match removed from a forced position could be relocated to more
// than one structurally distinct place, so the clause's meaning would
// depend on an arbitrary choice. Elaboration of the enclosing
// definition fails; other definitions are unaffected.
type AmbiguityError struct {
	Pattern  core.Pattern
	Rendered string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous forced pattern %s: more than one possible binding position", e.Rendered)
}
