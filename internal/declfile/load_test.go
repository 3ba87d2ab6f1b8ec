package declfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/forcing"
	"github.com/vela-lang/vela/internal/pretty"
)

const natFinDecls = `
data:
  - name: Nat
    constructors:
      - name: zero
      - name: suc
        telescope: [{name: n, type: {def: Nat}}]
  - name: Fin
    constructors:
      - name: fzero
        telescope: [{name: n, type: {def: Nat}}]
        codomain: {def: Fin, args: [{con: suc, args: [{var: n}]}]}
functions:
  - name: proj
    clauses:
      - telescope: [{name: n, type: {def: Nat}}]
        patterns:
          - {dot: {con: suc, args: [{var: n}]}}
          - {con: fzero, args: [{var: n}]}
`

func parseDecls(t *testing.T, content string) *Set {
	t.Helper()
	set, diags := Parse([]byte(content), "test.yaml", &config.Options{Forcing: true}, nil)
	if len(diags) > 0 {
		t.Fatalf("Parse: unexpected diagnostics: %v", diags)
	}
	return set
}

func TestParseResolvesStructures(t *testing.T) {
	set := parseDecls(t, natFinDecls)

	fzero, ok := set.Table.Constructor("fzero")
	if !ok {
		t.Fatalf("constructor fzero was not registered")
	}
	wantType := core.CtorType{
		Tel: core.Telescope{{Name: "n", Type: &core.Def{Name: "Nat"}}},
		Codomain: &core.Def{Name: "Fin", Elims: core.Applies(core.Arg{
			Val: &core.Con{Ctor: "suc", Elims: core.Applies(core.Arg{Val: &core.Var{Index: 0, Name: "n"}})},
		})},
	}
	if diff := cmp.Diff(wantType, fzero.Type); diff != "" {
		t.Errorf("fzero type mismatch (-want +got):\n%s", diff)
	}
	if len(fzero.Forced) != 1 || fzero.Forced[0] != core.Forced {
		t.Errorf("fzero annotations: got=%v, want=[forced]", fzero.Forced)
	}

	// Constructors of non-indexed types default to the bare data type.
	zero, _ := set.Table.Constructor("zero")
	if diff := cmp.Diff(core.CtorType{Codomain: &core.Def{Name: "Nat"}}, zero.Type); diff != "" {
		t.Errorf("zero type mismatch (-want +got):\n%s", diff)
	}

	fn, ok := set.Table.Function("proj")
	if !ok || len(fn.Clauses) != 1 {
		t.Fatalf("function proj: got ok=%v clauses=%d, want 1 clause", ok, len(fn.Clauses))
	}
	wantPats := []core.PatArg{
		{Pat: &core.DotP{Term: &core.Con{Ctor: "suc", Elims: core.Applies(core.Arg{Val: &core.Var{Index: 0, Name: "n"}})}}},
		{Pat: &core.ConP{Ctor: "fzero", Args: []core.PatArg{{Pat: &core.VarP{Index: 0, Name: "n"}}}}},
	}
	if diff := cmp.Diff(wantPats, fn.Clauses[0].Pats); diff != "" {
		t.Errorf("clause patterns mismatch (-want +got):\n%s", diff)
	}
}

// Loading and translating the scenario file end to end.
func TestParseAndTranslate(t *testing.T) {
	set := parseDecls(t, natFinDecls)
	fn, _ := set.Table.Function("proj")
	forcer := forcing.New(set.Opts, set.Table, nil)
	out, err := forcer.TranslateClause(fn.Clauses[0])
	if err != nil {
		t.Fatalf("TranslateClause: unexpected error: %v", err)
	}
	if got, want := pretty.PatArgs(out.Pats), "(suc n) (fzero .n)"; got != want {
		t.Errorf("translated patterns: got=%q, want=%q", got, want)
	}
}

func TestParseOptionsOverride(t *testing.T) {
	set := parseDecls(t, "options: {forcing: false}\n"+natFinDecls)
	if set.Opts.Forcing {
		t.Fatalf("file options should override forcing")
	}
	fzero, _ := set.Table.Constructor("fzero")
	if fzero.Forced[0] != core.NotForced {
		t.Errorf("with forcing off annotations must be all not-forced: got=%v", fzero.Forced)
	}
}

// Writing a quantity pins it, which keeps the argument out of
// forcing's reach.
func TestParsePinnedQuantity(t *testing.T) {
	content := `
data:
  - name: Nat
    constructors:
      - name: zero
      - name: suc
        telescope: [{name: n, type: {def: Nat}}]
  - name: Fin
    constructors:
      - name: fzero
        telescope: [{name: n, type: {def: Nat}, quantity: "0"}]
        codomain: {def: Fin, args: [{con: suc, args: [{var: n}]}]}
`
	set := parseDecls(t, content)
	fzero, _ := set.Table.Constructor("fzero")
	want := core.Modality{Quantity: core.QuantityZero, UserQuantity: true}
	if fzero.Type.Tel[0].Mod != want {
		t.Fatalf("binding modality: got=%s, want=%s", fzero.Type.Tel[0].Mod, want)
	}
	if fzero.Forced[0] != core.NotForced {
		t.Errorf("pinned quantity must not be forced: got=%s", fzero.Forced[0])
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    diagnostics.ErrorCode
	}{
		{
			name:    "invalid yaml",
			content: "data: [",
			code:    diagnostics.ErrD001,
		},
		{
			name: "two tags on a term node",
			content: `
data:
  - name: Nat
    constructors:
      - name: suc
        telescope: [{name: n, type: {def: Nat, var: n}}]
`,
			code: diagnostics.ErrD002,
		},
		{
			name: "bad quantity",
			content: `
data:
  - name: Nat
    constructors:
      - name: suc
        telescope: [{name: n, type: {def: Nat}, quantity: "2"}]
`,
			code: diagnostics.ErrD002,
		},
		{
			name: "unknown constructor in pattern",
			content: `
functions:
  - name: proj
    clauses:
      - patterns: [{con: mystery}]
`,
			code: diagnostics.ErrD003,
		},
		{
			name: "unknown variable",
			content: `
data:
  - name: Nat
    constructors:
      - name: suc
        telescope: [{name: n, type: {def: Nat}}]
        codomain: {def: Nat, args: [{var: m}]}
`,
			code: diagnostics.ErrD003,
		},
		{
			name: "duplicate definition",
			content: `
data:
  - name: Nat
  - name: Nat
`,
			code: diagnostics.ErrD004,
		},
		{
			name: "eta data type with two constructors",
			content: `
data:
  - name: Unit
    eta: true
    constructors:
      - name: tt
      - name: tt2
`,
			code: diagnostics.ErrD005,
		},
		{
			name: "forced list arity mismatch",
			content: `
data:
  - name: Nat
functions:
  - name: proj
    forced: [false, true]
    clauses:
      - patterns: [{dot: {def: Nat}}]
`,
			code: diagnostics.ErrD006,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Parse([]byte(tt.content), "test.yaml", &config.Options{Forcing: true}, nil)
			if !hasCode(diags, tt.code) {
				t.Errorf("diagnostics: got=%v, want code %s", diags, tt.code)
			}
		})
	}
}

// A broken definition is reported, the rest of the file still loads.
func TestParseDefinitionsFailIndependently(t *testing.T) {
	content := natFinDecls + `
  - name: broken
    clauses:
      - patterns: [{con: mystery}]
`
	set, diags := Parse([]byte(content), "test.yaml", &config.Options{Forcing: true}, nil)
	if !hasCode(diags, diagnostics.ErrD003) {
		t.Fatalf("diagnostics: got=%v, want code D003", diags)
	}
	if _, ok := set.Table.Constructor("fzero"); !ok {
		t.Errorf("valid definitions should survive a broken sibling")
	}
	fn, ok := set.Table.Function("proj")
	if !ok || len(fn.Clauses) != 1 {
		t.Errorf("function proj should still carry its clause")
	}
}

func hasCode(diags []*diagnostics.DiagnosticError, code diagnostics.ErrorCode) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
