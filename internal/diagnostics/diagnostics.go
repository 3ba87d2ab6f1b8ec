// Package diagnostics defines the error values reported to users by the
// declaration tooling, and their terminal rendering. Errors carry a code
// and a location at definition/clause granularity; the elaborator works on
// structured declarations, not source text, so there are no line numbers.
package diagnostics

import (
	"fmt"
	"sort"
)

// ErrorCode identifies one diagnostic class.
type ErrorCode string

const (
	// Forcing translation.
	ErrF001 ErrorCode = "F001" // ambiguous forced pattern
	ErrF002 ErrorCode = "F002" // internal invariant violation

	// Declaration files.
	ErrD001 ErrorCode = "D001" // file unreadable or not valid yaml
	ErrD002 ErrorCode = "D002" // malformed node
	ErrD003 ErrorCode = "D003" // unknown name
	ErrD004 ErrorCode = "D004" // duplicate definition
	ErrD005 ErrorCode = "D005" // eta data type with more than one constructor
	ErrD006 ErrorCode = "D006" // annotation arity mismatch
	ErrD007 ErrorCode = "D007" // nesting depth exceeded

	// Configuration.
	ErrC001 ErrorCode = "C001" // project file error
)

// Loc places a diagnostic. Def and Clause may be empty/zero when the
// error is not tied to a definition; Clause is 1-based.
type Loc struct {
	File   string
	Def    string
	Clause int
}

func (l Loc) String() string {
	s := l.File
	if l.Def != "" {
		if s != "" {
			s += ": "
		}
		s += l.Def
	}
	if l.Clause > 0 {
		s += fmt.Sprintf(": clause %d", l.Clause)
	}
	return s
}

// DiagnosticError is one user-facing diagnostic.
type DiagnosticError struct {
	Code    ErrorCode
	Loc     Loc
	Message string
}

// NewError creates a diagnostic with the given code, location and message.
func NewError(code ErrorCode, loc Loc, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Loc: loc, Message: message}
}

func (e *DiagnosticError) Error() string {
	loc := e.Loc.String()
	if loc == "" {
		return fmt.Sprintf("%s [%s]", e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s [%s]", loc, e.Message, e.Code)
}

// Key is the deduplication key: reporting the same code twice for the
// same location adds nothing.
func (e *DiagnosticError) Key() string {
	return fmt.Sprintf("%s:%s:%d:%s", e.Loc.File, e.Loc.Def, e.Loc.Clause, e.Code)
}

// Sort orders diagnostics by file, definition, clause and code, so output
// is deterministic regardless of processing order.
func Sort(errs []*DiagnosticError) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if a.Loc.File != b.Loc.File {
			return a.Loc.File < b.Loc.File
		}
		if a.Loc.Def != b.Loc.Def {
			return a.Loc.Def < b.Loc.Def
		}
		if a.Loc.Clause != b.Loc.Clause {
			return a.Loc.Clause < b.Loc.Clause
		}
		return a.Code < b.Code
	})
}

// Dedup drops diagnostics whose Key repeats, keeping first occurrences.
func Dedup(errs []*DiagnosticError) []*DiagnosticError {
	seen := make(map[string]bool, len(errs))
	out := errs[:0]
	for _, e := range errs {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	return out
}
