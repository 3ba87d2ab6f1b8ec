package forcing

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
)

// occurrence is one variable occurrence found in an index term,
// together with the modality accumulated along the spine of argument
// positions above it.
type occurrence struct {
	mod   core.Modality
	index int
}

// forcedVariables walks a normalized term and collects the variable
// occurrences that can force a constructor argument. A bare variable
// yields itself under the neutral modality; a constructor application
// yields the union over its plain arguments, each combined with the
// argument position's modality. Everything else is opaque: definitions
// may compute, lambdas and pi types bind, and projections and path
// applications are deliberately excluded, so none of them contribute.
//
// The input must be fully normalized. A non-normal term only hides
// occurrences and loses forcing opportunities; it never invents one.
func forcedVariables(t core.Term, depth int) ([]occurrence, error) {
	if depth > config.MaxNestingDepth {
		return nil, internalf("forced-variable extraction exceeded nesting depth %d", config.MaxNestingDepth)
	}
	switch x := t.(type) {
	case *core.Var:
		if len(x.Elims) == 0 {
			return []occurrence{{mod: core.Modality{}, index: x.Index}}, nil
		}
		return nil, nil
	case *core.Con:
		return forcedVariablesElims(x.Elims, depth+1)
	default:
		return nil, nil
	}
}

// forcedVariablesElims collects occurrences from the plain arguments
// of an elimination spine. Projections and path applications yield
// nothing.
func forcedVariablesElims(elims []core.Elim, depth int) ([]occurrence, error) {
	var occs []occurrence
	for _, e := range elims {
		app, ok := e.(*core.Apply)
		if !ok {
			continue
		}
		sub, err := forcedVariables(app.Arg.Val, depth)
		if err != nil {
			return nil, err
		}
		for _, o := range sub {
			occs = append(occs, occurrence{mod: app.Arg.Mod.Combine(o.mod), index: o.index})
		}
	}
	return occs, nil
}
