package forcing

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/trace"
)

// ComputeAnnotations runs the forcing analysis for one constructor and
// returns its annotation list, in the order of the constructor's own
// argument telescope. The constructor type must be normalized and
// fully instantiated. An argument is Forced when the user pinned no
// explicit quantity on it, it is not irrelevant, and some occurrence
// of its variable in the codomain's indices is at least as usable as
// the declared binding.
//
// With forcing disabled the analysis short-circuits to an all-NotForced
// list without inspecting the type.
func ComputeAnnotations(opts *config.Options, tr *trace.Tracer, ctorName string, ctorType core.CtorType) ([]core.IsForced, error) {
	n := len(ctorType.Tel)
	forced := make([]core.IsForced, n)
	if !opts.Forcing {
		return forced, nil
	}

	head, err := codomainHead(ctorName, ctorType.Codomain)
	if err != nil {
		return nil, err
	}
	occs, err := forcedVariablesElims(head.Elims, 0)
	if err != nil {
		return nil, err
	}

	for pos := n - 1; pos >= 0; pos-- {
		b := ctorType.Tel[pos]
		if b.Mod.UserQuantity || b.Mod.Relevance == core.Irrelevant {
			continue
		}
		index := ctorType.Tel.DeBruijn(pos)
		for _, o := range occs {
			if o.index == index && o.mod.MoreUsableThan(b.Mod) {
				forced[pos] = core.Forced
				break
			}
		}
	}

	if tr.Enabled(60) {
		tr.Printf(60, "forcing analysis of %s: %d occurrence(s) in indices, annotations %v", ctorName, len(occs), forced)
	}
	return forced, nil
}

// codomainHead unwraps path types around a constructor codomain and
// returns its data-type head. Anything else means the type checker
// handed over a codomain it was required to normalize away.
func codomainHead(ctorName string, t core.Term) (*core.Def, error) {
	for depth := 0; ; depth++ {
		if depth > config.MaxNestingDepth {
			return nil, internalf("constructor %s: codomain path nesting exceeded depth %d", ctorName, config.MaxNestingDepth)
		}
		switch x := t.(type) {
		case *core.Def:
			return x, nil
		case *core.Path:
			t = x.Space
		default:
			return nil, internalf("constructor %s: codomain is not headed by a data type", ctorName)
		}
	}
}
