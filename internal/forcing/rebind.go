package forcing

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/pretty"
)

// rebindState tracks one rebinding search: how many placements were
// found across the whole pattern list, and whether the first of them
// has already been applied.
type rebindState struct {
	count   int
	applied bool
}

// rebindForcedPattern relocates one worklist entry: the real pattern
// that dot-forcing removed from a forced position. It searches the
// pattern list depth-first for an unforced inaccessible pattern whose
// carried term can hold the target, replaces the first such placeholder
// with a reconstructed real pattern, and counts every further
// placement it would also have accepted.
//
// Zero placements violate the dot-forcing invariant that a relocatable
// match exists. More than one placement makes the clause ambiguous,
// unless the target is a plain variable: its candidate placements are
// textually identical dots of that variable, so the first is kept.
func (f *Forcer) rebindForcedPattern(ps []core.PatArg, target core.Pattern) ([]core.PatArg, error) {
	st := &rebindState{}
	out, err := f.rebindArgs(ps, nil, target, st, 0)
	if err != nil {
		return nil, err
	}
	_, isVar := target.(*core.VarP)
	switch {
	case st.count == 0:
		return nil, internalf("no binding position found for forced pattern %s", pretty.Pattern(target))
	case st.count > 1 && !isVar:
		return nil, &AmbiguityError{Pattern: target, Rendered: pretty.Pattern(target)}
	}
	if f.Trace.Enabled(50) {
		f.Trace.Printf(50, "rebound forced pattern %s: %s", pretty.Pattern(target), pretty.PatArgs(out))
	}
	return out, nil
}

func (f *Forcer) rebindArgs(args []core.PatArg, forced []core.IsForced, target core.Pattern, st *rebindState, depth int) ([]core.PatArg, error) {
	if depth > config.MaxNestingDepth {
		return nil, internalf("rebinding exceeded nesting depth %d", config.MaxNestingDepth)
	}
	out := make([]core.PatArg, len(args))
	for i, a := range args {
		out[i] = a
		if i < len(forced) && forced[i] == core.Forced {
			continue
		}
		switch q := a.Pat.(type) {
		case *core.DotP:
			rebuilt, n, err := f.tryRebuild(q.Term, target, depth)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				st.count += n
				if !st.applied && rebuilt != nil {
					st.applied = true
					out[i].Pat = rebuilt
				}
			}
		case *core.ConP:
			fa, err := f.Defs.ForcedArgs(q.Ctor)
			if err != nil {
				return nil, err
			}
			sub, err := f.rebindArgs(q.Args, fa, target, st, depth+1)
			if err != nil {
				return nil, err
			}
			out[i].Pat = &core.ConP{Ctor: q.Ctor, Args: sub}
		case *core.DefP:
			fa, err := f.Defs.ForcedArgs(q.Name)
			if err != nil {
				return nil, err
			}
			sub, err := f.rebindArgs(q.Args, fa, target, st, depth+1)
			if err != nil {
				return nil, err
			}
			out[i].Pat = &core.DefP{Name: q.Name, Args: sub}
		}
	}
	return out, nil
}

// tryRebuild attempts to place target inside the term carried by one
// placeholder. It returns the rebuilt pattern together with the number
// of positions that admit the target. A direct hit is a carried term
// syntactically equal to the target's own term. Failing that, a
// constructor application is decomposed: each unforced argument is
// tried recursively, and on a unique hit the constructor is rebuilt as
// a real pattern with that argument realized and the rest left dotted.
// Multiple hits return a nil pattern for non-variable targets; the
// caller turns the count into an ambiguity error.
func (f *Forcer) tryRebuild(u core.Term, target core.Pattern, depth int) (core.Pattern, int, error) {
	if depth > config.MaxNestingDepth {
		return nil, 0, internalf("rebinding exceeded nesting depth %d", config.MaxNestingDepth)
	}
	if core.TermEqual(u, core.PatternToTerm(target)) {
		return target, 1, nil
	}
	con, ok := u.(*core.Con)
	if !ok {
		return nil, 0, nil
	}
	args, ok := core.SpineArgs(con.Elims)
	if !ok {
		return nil, 0, nil
	}
	fa, err := f.Defs.ForcedArgs(con.Ctor)
	if err != nil {
		return nil, 0, err
	}

	hit := -1
	var sub core.Pattern
	total := 0
	for j, a := range args {
		if j < len(fa) && fa[j] == core.Forced {
			continue
		}
		s, n, err := f.tryRebuild(a.Val, target, depth+1)
		if err != nil {
			return nil, 0, err
		}
		if n > 0 {
			total += n
			if hit < 0 {
				hit, sub = j, s
			}
		}
	}
	if hit < 0 {
		return nil, 0, nil
	}
	if total > 1 {
		if _, isVar := target.(*core.VarP); !isVar {
			return nil, total, nil
		}
	}
	if sub == nil {
		return nil, total, nil
	}

	pargs := make([]core.PatArg, len(args))
	for j, a := range args {
		if j == hit {
			pargs[j] = core.PatArg{Mod: a.Mod, Name: a.Name, Pat: sub}
		} else {
			pargs[j] = core.PatArg{Mod: a.Mod, Name: a.Name, Pat: &core.DotP{Term: a.Val}}
		}
	}
	return &core.ConP{Ctor: con.Ctor, Args: pargs}, total, nil
}
