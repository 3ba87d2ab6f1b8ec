package forcing

import (
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/pretty"
)

// Translate runs the forcing translation of one clause's pattern list
// to its fixpoint: dot every forced position, relocate every removed
// real match, and repeat, since a relocation can expose new forced
// positions. A round with an empty worklist is the fixpoint; dotting
// alone may still have changed the list in that round.
//
// Each productive round strictly shrinks the number of forced
// positions that still discriminate, a quantity bounded by the size of
// the pattern list, so the loop carries an explicit round budget and
// reports an internal error instead of spinning on malformed input.
func (f *Forcer) Translate(ps []core.PatArg) ([]core.PatArg, error) {
	if !f.Opts.Forcing {
		return ps, nil
	}
	budget := core.PatArgsSize(ps) + 1
	cur := ps
	for round := 0; ; round++ {
		if round >= budget {
			return nil, internalf("forcing translation did not converge after %d rounds", budget)
		}
		dotted, work, err := f.dotPatterns(cur)
		if err != nil {
			return nil, err
		}
		if f.Trace.Enabled(50) {
			f.Trace.Printf(50, "forcing translation round %d: %s, %d pattern(s) to rebind", round, pretty.PatArgs(dotted), len(work))
		}
		if len(work) == 0 {
			return dotted, nil
		}
		for _, target := range work {
			dotted, err = f.rebindForcedPattern(dotted, target)
			if err != nil {
				return nil, err
			}
		}
		cur = dotted
	}
}

// TranslateTelescope computes the forcing translation of the pattern
// list and rewrites the telescope so every binding whose effective
// modality changed carries its new one. A relocated variable is bound
// at a different argument position afterwards, and the right-hand side
// must be checked against the modality of the position that actually
// binds it.
func (f *Forcer) TranslateTelescope(tel core.Telescope, ps []core.PatArg) (core.Telescope, error) {
	out, err := f.Translate(ps)
	if err != nil {
		return nil, err
	}
	return retype(tel, ps, out), nil
}

// TranslateClause translates a clause's pattern list and retypes its
// telescope in one step.
func (f *Forcer) TranslateClause(cl core.Clause) (core.Clause, error) {
	out, err := f.Translate(cl.Pats)
	if err != nil {
		return core.Clause{}, err
	}
	return core.Clause{Tel: retype(cl.Tel, cl.Pats, out), Pats: out}, nil
}

// retype rewrites telescope modalities for every variable whose
// binding modality differs between the original and translated
// pattern lists.
func retype(tel core.Telescope, before, after []core.PatArg) core.Telescope {
	old := patternVarModalities(before)
	cur := patternVarModalities(after)
	out := make(core.Telescope, len(tel))
	copy(out, tel)
	for index, mod := range cur {
		prev, ok := old[index]
		if ok && prev == mod {
			continue
		}
		if pos := tel.Position(index); pos >= 0 {
			out[pos].Mod = mod
		}
	}
	return out
}

// patternVarModalities maps each bound variable to the modality of the
// argument position that binds it.
func patternVarModalities(ps []core.PatArg) map[int]core.Modality {
	m := make(map[int]core.Modality)
	for _, a := range ps {
		collectVarModalities(a.Pat, a.Mod, m)
	}
	return m
}

func collectVarModalities(p core.Pattern, mod core.Modality, m map[int]core.Modality) {
	switch q := p.(type) {
	case *core.VarP:
		m[q.Index] = mod
	case *core.PathP:
		m[q.Index] = mod
	case *core.ConP:
		for _, a := range q.Args {
			collectVarModalities(a.Pat, a.Mod, m)
		}
	case *core.DefP:
		for _, a := range q.Args {
			collectVarModalities(a.Pat, a.Mod, m)
		}
	}
}
