package forcing

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
)

// dotPatterns rewrites every forced position of a pattern list into an
// inaccessible pattern and returns, alongside the rewritten list, the
// worklist of patterns whose real match or binding must be relocated
// elsewhere. Forced-ness of a sub-pattern comes from the annotation
// list of the enclosing constructor or function, not from the pattern
// itself; top-level positions are never forced.
func (f *Forcer) dotPatterns(ps []core.PatArg) ([]core.PatArg, []core.Pattern, error) {
	var work []core.Pattern
	out, err := f.dotArgs(ps, nil, 0, &work)
	if err != nil {
		return nil, nil, err
	}
	return out, work, nil
}

func (f *Forcer) dotArgs(args []core.PatArg, forced []core.IsForced, depth int, work *[]core.Pattern) ([]core.PatArg, error) {
	out := make([]core.PatArg, len(args))
	for i, a := range args {
		tag := core.NotForced
		if i < len(forced) {
			tag = forced[i]
		}
		p, err := f.dotPattern(a.Pat, tag, depth, work)
		if err != nil {
			return nil, err
		}
		out[i] = core.PatArg{Mod: a.Mod, Name: a.Name, Pat: p}
	}
	return out, nil
}

func (f *Forcer) dotPattern(p core.Pattern, tag core.IsForced, depth int, work *[]core.Pattern) (core.Pattern, error) {
	if depth > config.MaxNestingDepth {
		return nil, internalf("dot-forcing exceeded nesting depth %d", config.MaxNestingDepth)
	}

	if tag == core.Forced {
		switch p.(type) {
		case *core.DotP, *core.ProjP:
			// Already inaccessible, or not a value position at all.
			return p, nil
		}
		proper, err := f.properlyMatches(p, depth)
		if err != nil {
			return nil, err
		}
		if proper || len(core.PatternVars(p)) > 0 {
			*work = append(*work, p)
		}
		return &core.DotP{Term: core.PatternToTerm(p)}, nil
	}

	switch q := p.(type) {
	case *core.ConP:
		fa, err := f.Defs.ForcedArgs(q.Ctor)
		if err != nil {
			return nil, err
		}
		args, err := f.dotArgs(q.Args, fa, depth+1, work)
		if err != nil {
			return nil, err
		}
		return &core.ConP{Ctor: q.Ctor, Args: args}, nil
	case *core.DefP:
		fa, err := f.Defs.ForcedArgs(q.Name)
		if err != nil {
			return nil, err
		}
		args, err := f.dotArgs(q.Args, fa, depth+1, work)
		if err != nil {
			return nil, err
		}
		return &core.DefP{Name: q.Name, Args: args}, nil
	default:
		return p, nil
	}
}

// properlyMatches reports whether a pattern performs real
// discrimination. Literal and function patterns always do; variables,
// projections, path bindings and inaccessible patterns never do. A
// constructor pattern discriminates unless its data type has a single
// eta constructor and nothing beneath it discriminates either.
func (f *Forcer) properlyMatches(p core.Pattern, depth int) (bool, error) {
	if depth > config.MaxNestingDepth {
		return false, internalf("proper-match check exceeded nesting depth %d", config.MaxNestingDepth)
	}
	switch q := p.(type) {
	case *core.LitP, *core.DefP:
		return true, nil
	case *core.ConP:
		eta, err := f.Defs.IsEtaCon(q.Ctor)
		if err != nil {
			return false, err
		}
		if !eta {
			return true, nil
		}
		for _, a := range q.Args {
			sub, err := f.properlyMatches(a.Pat, depth+1)
			if err != nil {
				return false, err
			}
			if sub {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, nil
	}
}
