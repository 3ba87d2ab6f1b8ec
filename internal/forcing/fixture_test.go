package forcing

import (
	"fmt"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
)

// fakeLookup is a map-backed Lookup for tests.
type fakeLookup struct {
	forced map[string][]core.IsForced
	eta    map[string]bool
}

func (l *fakeLookup) ForcedArgs(name string) ([]core.IsForced, error) {
	fa, ok := l.forced[name]
	if !ok {
		return nil, internalf("no forcing annotations registered for %s", name)
	}
	return fa, nil
}

func (l *fakeLookup) IsEtaCon(ctor string) (bool, error) {
	eta, ok := l.eta[ctor]
	if !ok {
		return false, internalf("unknown constructor %s", ctor)
	}
	return eta, nil
}

// natFinLookup covers the constructors the scenario tests match on:
//
//	zero : Nat                            suc  : (n : Nat) -> Nat
//	fzero : (n : Nat) -> Fin (suc n)      fsuc : (n : Nat) -> Fin n -> Fin (suc n)
//	sing : (x : A) -> Sing x              pair : (a : A) -> (b : B) -> Pair A B   (eta)
//	wrap : (i : Fin m) -> Box i
func natFinLookup() *fakeLookup {
	return &fakeLookup{
		forced: map[string][]core.IsForced{
			"zero":  {},
			"suc":   {core.NotForced},
			"fzero": {core.Forced},
			"fsuc":  {core.Forced, core.NotForced},
			"sing":  {core.Forced},
			"pair":  {core.NotForced, core.NotForced},
			"wrap":  {core.Forced},
		},
		eta: map[string]bool{
			"zero": false, "suc": false,
			"fzero": false, "fsuc": false,
			"sing": false,
			"pair": true,
			"wrap": false,
		},
	}
}

func testOpts() *config.Options {
	return &config.Options{Forcing: true}
}

func testForcer() *Forcer {
	return New(testOpts(), natFinLookup(), nil)
}

// Term builders.

func v(index int, name string) *core.Var {
	return &core.Var{Index: index, Name: name}
}

func arg(t core.Term) core.Arg {
	return core.Arg{Val: t}
}

func con(ctor string, args ...core.Arg) *core.Con {
	return &core.Con{Ctor: ctor, Elims: core.Applies(args...)}
}

// Pattern builders.

func pvar(index int, name string) *core.VarP {
	return &core.VarP{Index: index, Name: name}
}

func pdot(t core.Term) *core.DotP {
	return &core.DotP{Term: t}
}

func pcon(ctor string, args ...core.PatArg) *core.ConP {
	return &core.ConP{Ctor: ctor, Args: args}
}

func parg(p core.Pattern) core.PatArg {
	return core.PatArg{Pat: p}
}

func pats(args ...core.PatArg) []core.PatArg {
	return args
}

// ctorArities are the argument counts of the fixture constructors,
// used by the shape-preservation checks.
var ctorArities = map[string]int{
	"zero": 0, "suc": 1, "fzero": 1, "fsuc": 2, "sing": 1, "pair": 2, "wrap": 1,
}

// checkArities verifies every constructor pattern carries the arity of
// its constructor.
func checkArities(p core.Pattern) error {
	q, ok := p.(*core.ConP)
	if !ok {
		return nil
	}
	if want := ctorArities[q.Ctor]; len(q.Args) != want {
		return fmt.Errorf("constructor %s has %d sub-patterns, want %d", q.Ctor, len(q.Args), want)
	}
	for _, a := range q.Args {
		if err := checkArities(a.Pat); err != nil {
			return err
		}
	}
	return nil
}
