package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/declfile"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/forcing"
	"github.com/vela-lang/vela/internal/pretty"
	"github.com/vela-lang/vela/internal/trace"
)

// runner executes one annotate/translate pass over a declaration file
// and reports diagnostics. Definitions fail independently: every
// diagnostic is collected and the rest of the file is still processed.
type runner struct {
	command string
	file    string
	opts    *config.Options
	out     io.Writer
	errOut  io.Writer
	color   bool
}

func (r *runner) run() int {
	tr := trace.New(r.errOut, r.opts.Verbosity)

	set, diags := declfile.Load(r.file, r.opts, tr)
	if set == nil {
		diagnostics.Fprint(r.errOut, diags, r.color)
		return 1
	}

	r.printAnnotations(set)
	if r.command == "translate" {
		diags = append(diags, r.translate(set, tr)...)
	}

	if len(diags) > 0 {
		diagnostics.Sort(diags)
		diagnostics.Fprint(r.errOut, diagnostics.Dedup(diags), r.color)
		return 1
	}
	return 0
}

func (r *runner) printAnnotations(set *declfile.Set) {
	for _, name := range set.Table.Constructors() {
		c, _ := set.Table.Constructor(name)
		sig := pretty.Term(c.Type.Codomain)
		if len(c.Type.Tel) > 0 {
			sig = pretty.Telescope(c.Type.Tel) + " -> " + sig
		}
		fmt.Fprintf(r.out, "%s : %s\n  forcing: %s\n", name, sig, pretty.Annotations(c.Forced))
	}
}

func (r *runner) translate(set *declfile.Set, tr *trace.Tracer) []*diagnostics.DiagnosticError {
	var diags []*diagnostics.DiagnosticError
	forcer := forcing.New(set.Opts, set.Table, tr)

	for _, name := range set.Table.Functions() {
		fn, _ := set.Table.Function(name)
		for i, cl := range fn.Clauses {
			translated, err := forcer.TranslateClause(cl)
			if err != nil {
				diags = append(diags, translationError(err, r.file, name, i+1))
				// The enclosing definition fails; its remaining
				// clauses would elaborate against a broken context.
				break
			}
			fmt.Fprintf(r.out, "%s clause %d:\n", name, i+1)
			fmt.Fprintf(r.out, "  before: %s\n", pretty.PatArgs(cl.Pats))
			fmt.Fprintf(r.out, "  after:  %s\n", pretty.PatArgs(translated.Pats))
			fmt.Fprintf(r.out, "  context: %s\n", pretty.Telescope(translated.Tel))
		}
	}
	return diags
}

func translationError(err error, file, def string, clause int) *diagnostics.DiagnosticError {
	loc := diagnostics.Loc{File: file, Def: def, Clause: clause}
	var ambiguous *forcing.AmbiguityError
	if errors.As(err, &ambiguous) {
		return diagnostics.NewError(diagnostics.ErrF001, loc, ambiguous.Error())
	}
	return diagnostics.NewError(diagnostics.ErrF002, loc, err.Error())
}
