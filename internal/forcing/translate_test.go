package forcing

import (
	"errors"
	"testing"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/pretty"
)

// Scenario: proj .(suc n) (fzero n) = n. The binding of n inside the
// forced fzero argument is dotted and relocated into the outer
// placeholder, yielding proj (suc n) (fzero .n) = n.
func TestTranslateRelocatesForcedBinding(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		parg(pcon("fzero", parg(pvar(0, "n")))),
	)
	out, err := f.Translate(in)
	if err != nil {
		t.Fatalf("Translate: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "(suc n) (fzero .n)"; got != want {
		t.Errorf("Translate: got=%q, want=%q", got, want)
	}
}

// Scenario: a forced argument whose position is already inaccessible
// needs no relocation; translation is a single round.
func TestTranslateAlreadyDotted(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		parg(pcon("fzero", parg(pdot(v(0, "n"))))),
	)
	out, err := f.Translate(in)
	if err != nil {
		t.Fatalf("Translate: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), pretty.PatArgs(in); got != want {
		t.Errorf("Translate should be the identity here: got=%q, want=%q", got, want)
	}
}

// Scenario: two placeholders carry the same term, and a real match must
// move into one of them.
func TestTranslateAmbiguous(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("zero"))),
		parg(pdot(con("zero"))),
		parg(pcon("fzero", parg(pcon("zero")))),
	)
	_, err := f.Translate(in)
	var ambiguous *AmbiguityError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Translate: got err=%v, want AmbiguityError", err)
	}
}

// A relocation can expose a new forced position; the driver keeps
// iterating until a round produces an empty worklist.
func TestTranslateFixpointCascade(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("fzero", arg(v(0, "k"))))),
		parg(pdot(v(0, "k"))),
		parg(pcon("wrap", parg(pcon("fzero", parg(pvar(0, "k")))))),
	)
	out, err := f.Translate(in)
	if err != nil {
		t.Fatalf("Translate: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "(fzero .k) k (wrap .(fzero k))"; got != want {
		t.Errorf("Translate: got=%q, want=%q", got, want)
	}
}

func TestTranslateIdempotent(t *testing.T) {
	f := testForcer()
	inputs := [][]core.PatArg{
		pats(
			parg(pdot(con("suc", arg(v(0, "n"))))),
			parg(pcon("fzero", parg(pvar(0, "n")))),
		),
		pats(
			parg(pdot(con("fzero", arg(v(0, "k"))))),
			parg(pdot(v(0, "k"))),
			parg(pcon("wrap", parg(pcon("fzero", parg(pvar(0, "k")))))),
		),
		pats(parg(pvar(0, "n"))),
	}
	for _, in := range inputs {
		once, err := f.Translate(in)
		if err != nil {
			t.Fatalf("Translate: unexpected error: %v", err)
		}
		twice, err := f.Translate(once)
		if err != nil {
			t.Fatalf("Translate (second run): unexpected error: %v", err)
		}
		if got, want := pretty.PatArgs(twice), pretty.PatArgs(once); got != want {
			t.Errorf("translation is not idempotent: got=%q, want=%q", got, want)
		}
	}
}

func TestTranslateShapePreservation(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		parg(pcon("fzero", parg(pvar(0, "n")))),
	)
	out, err := f.Translate(in)
	if err != nil {
		t.Fatalf("Translate: unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("pattern list length: got=%d, want=%d", len(out), len(in))
	}
	for _, a := range out {
		if err := checkArities(a.Pat); err != nil {
			t.Errorf("arity check: %v", err)
		}
	}
}

func TestTranslateDisabled(t *testing.T) {
	f := New(&config.Options{Forcing: false}, natFinLookup(), nil)
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		parg(pcon("fzero", parg(pvar(0, "n")))),
	)
	out, err := f.Translate(in)
	if err != nil {
		t.Fatalf("Translate: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), pretty.PatArgs(in); got != want {
		t.Errorf("disabled forcing must leave clauses untouched: got=%q, want=%q", got, want)
	}
}

// After translation n is bound by the outer suc argument, whose
// position carries the default modality; the telescope entry for n
// must follow.
func TestTranslateTelescopeRetypes(t *testing.T) {
	f := testForcer()
	irr := core.Modality{Relevance: core.Irrelevant}
	tel := core.Telescope{{Name: "n", Type: &core.Def{Name: "Nat"}, Mod: irr}}
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		core.PatArg{Pat: pcon("fzero", core.PatArg{Mod: irr, Pat: pvar(0, "n")})},
	)
	out, err := f.TranslateTelescope(tel, in)
	if err != nil {
		t.Fatalf("TranslateTelescope: unexpected error: %v", err)
	}
	if out[0].Mod != (core.Modality{}) {
		t.Errorf("telescope modality for n: got=%s, want=%s", out[0].Mod, core.Modality{})
	}
	if tel[0].Mod != irr {
		t.Errorf("input telescope was modified: got=%s", tel[0].Mod)
	}
}

func TestTranslateClause(t *testing.T) {
	f := testForcer()
	cl := core.Clause{
		Tel: core.Telescope{{Name: "n", Type: &core.Def{Name: "Nat"}}},
		Pats: pats(
			parg(pdot(con("suc", arg(v(0, "n"))))),
			parg(pcon("fzero", parg(pvar(0, "n")))),
		),
	}
	out, err := f.TranslateClause(cl)
	if err != nil {
		t.Fatalf("TranslateClause: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out.Pats), "(suc n) (fzero .n)"; got != want {
		t.Errorf("patterns: got=%q, want=%q", got, want)
	}
	if len(out.Tel) != 1 || out.Tel[0].Name != "n" {
		t.Errorf("telescope: got=%s", pretty.Telescope(out.Tel))
	}
}
