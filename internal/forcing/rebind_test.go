package forcing

import (
	"errors"
	"testing"

	"github.com/vela-lang/vela/internal/pretty"
)

func TestRebindDirect(t *testing.T) {
	f := testForcer()
	out, err := f.rebindForcedPattern(pats(parg(pdot(v(0, "n")))), pvar(0, "n"))
	if err != nil {
		t.Fatalf("rebindForcedPattern: unexpected error: %v", err)
	}
	if got := pretty.PatArgs(out); got != "n" {
		t.Errorf("rebind: got=%q, want=%q", got, "n")
	}
}

// A variable removed from a forced position is reconstructed inside the
// placeholder that carries a constructor application mentioning it.
func TestRebindPartialReconstruction(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pdot(con("suc", arg(v(0, "n"))))),
		parg(pcon("fzero", parg(pdot(v(0, "n"))))),
	)
	out, err := f.rebindForcedPattern(in, pvar(0, "n"))
	if err != nil {
		t.Fatalf("rebindForcedPattern: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "(suc n) (fzero .n)"; got != want {
		t.Errorf("rebind: got=%q, want=%q", got, want)
	}
}

// fzero's argument position is forced, so the dot inside it is not a
// candidate even though it carries the right term.
func TestRebindSkipsForcedPositions(t *testing.T) {
	f := testForcer()
	in := pats(
		parg(pcon("fzero", parg(pdot(v(0, "n"))))),
		parg(pdot(v(0, "n"))),
	)
	out, err := f.rebindForcedPattern(in, pvar(0, "n"))
	if err != nil {
		t.Fatalf("rebindForcedPattern: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "(fzero .n) n"; got != want {
		t.Errorf("rebind: got=%q, want=%q", got, want)
	}
}

func TestRebindIntoUnforcedSubPattern(t *testing.T) {
	f := testForcer()
	in := pats(parg(pcon("suc", parg(pdot(v(0, "n"))))))
	out, err := f.rebindForcedPattern(in, pvar(0, "n"))
	if err != nil {
		t.Fatalf("rebindForcedPattern: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "(suc n)"; got != want {
		t.Errorf("rebind: got=%q, want=%q", got, want)
	}
}

func TestRebindNoCandidate(t *testing.T) {
	f := testForcer()
	_, err := f.rebindForcedPattern(pats(parg(pdot(con("zero")))), pvar(0, "n"))
	var internal *InternalError
	if !errors.As(err, &internal) {
		t.Fatalf("rebindForcedPattern: got err=%v, want InternalError", err)
	}
}

// Two placeholders carry the same non-variable term: relocating a real
// match between them would be an arbitrary choice.
func TestRebindAmbiguous(t *testing.T) {
	f := testForcer()
	in := pats(parg(pdot(con("zero"))), parg(pdot(con("zero"))))
	_, err := f.rebindForcedPattern(in, pcon("zero"))
	var ambiguous *AmbiguityError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("rebindForcedPattern: got err=%v, want AmbiguityError", err)
	}
	if ambiguous.Rendered != "zero" {
		t.Errorf("rendered pattern: got=%q, want=%q", ambiguous.Rendered, "zero")
	}
}

// For a plain variable the candidates are textually identical, so the
// first placeholder wins without an error.
func TestRebindVariableToleratesDuplicates(t *testing.T) {
	f := testForcer()
	in := pats(parg(pdot(v(0, "n"))), parg(pdot(v(0, "n"))))
	out, err := f.rebindForcedPattern(in, pvar(0, "n"))
	if err != nil {
		t.Fatalf("rebindForcedPattern: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out), "n .n"; got != want {
		t.Errorf("rebind: got=%q, want=%q", got, want)
	}
}
