// Package forcing implements the forcing analysis and forcing
// translation of the elaborator. Forcing analysis decides, per
// constructor argument, whether the argument's value is recoverable
// from the constructor's result-type indices; such arguments need not
// be matched or bound again. Forcing translation rewrites a clause's
// pattern list so forced positions carry inaccessible (dotted)
// patterns, relocating any real match or binding that used to live
// there into an unforced position that is known to hold the same value.
//
// The passes are pure tree transformations: they consume a pattern
// list (and optionally its telescope) and produce a new one, looking
// up previously computed forcing annotations of other constructors and
// functions through the injected Lookup. On any error the input is
// returned unchanged semantics-wise: no partially rewritten pattern
// list ever escapes.
package forcing

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/trace"
)

// Lookup resolves forcing metadata of constructors and pattern-matching
// functions by name. Implementations fail only on names that should
// already be registered; such failures are internal-invariant errors,
// since a data type's constructors must be registered before any
// clause matching on them is translated.
type Lookup interface {
	// ForcedArgs returns the forcing annotation list of a constructor
	// or function, one entry per argument in declaration order.
	ForcedArgs(name string) ([]core.IsForced, error)

	// IsEtaCon reports whether the constructor belongs to a
	// single-constructor data type with eta equality. Matching on such
	// a constructor is transparent unless a real match sits beneath it.
	IsEtaCon(ctor string) (bool, error)
}

// Forcer runs the forcing translation passes over clauses. The zero
// value is not usable; all fields must be set except Trace, which may
// be nil to disable trace output.
type Forcer struct {
	Opts  *config.Options
	Defs  Lookup
	Trace *trace.Tracer
}

// New returns a Forcer with the given options, annotation lookup and
// optional tracer.
func New(opts *config.Options, defs Lookup, tr *trace.Tracer) *Forcer {
	return &Forcer{Opts: opts, Defs: defs, Trace: tr}
}
