package declfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/defs"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/forcing"
	"github.com/vela-lang/vela/internal/trace"
)

// Set is a loaded declaration set: the populated definition table and
// the options in effect for it (project options plus any per-file
// override).
type Set struct {
	Table *defs.Table
	Opts  *config.Options
}

// Load reads a declaration-set file and registers its contents.
// Definitions fail independently: a bad constructor or clause is
// reported and skipped, everything else is still registered.
func Load(path string, opts *config.Options, tr *trace.Tracer) (*Set, []*diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrD001, diagnostics.Loc{File: path}, err.Error()),
		}
	}
	return Parse(data, path, opts, tr)
}

// Parse parses declaration-set content from bytes. The path argument
// is used for diagnostic locations only.
func Parse(data []byte, path string, opts *config.Options, tr *trace.Tracer) (*Set, []*diagnostics.DiagnosticError) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrD001, diagnostics.Loc{File: path}, err.Error()),
		}
	}

	effective := *opts
	if file.Options != nil && file.Options.Forcing != nil {
		effective.Forcing = *file.Options.Forcing
	}

	r := &resolver{file: path, table: defs.NewTable(&effective, tr)}
	r.registerData(file.Data)
	r.registerFunctions(file.Functions)

	diagnostics.Sort(r.errs)
	r.errs = diagnostics.Dedup(r.errs)
	return &Set{Table: r.table, Opts: &effective}, r.errs
}

type resolver struct {
	file  string
	table *defs.Table
	errs  []*diagnostics.DiagnosticError
}

func (r *resolver) errorf(code diagnostics.ErrorCode, loc diagnostics.Loc, format string, args ...interface{}) {
	r.errs = append(r.errs, diagnostics.NewError(code, loc, fmt.Sprintf(format, args...)))
}

func (r *resolver) registerData(decls []DataDecl) {
	for _, d := range decls {
		loc := diagnostics.Loc{File: r.file, Def: d.Name}
		if d.Name == "" {
			r.errorf(diagnostics.ErrD002, diagnostics.Loc{File: r.file}, "data declaration without a name")
			continue
		}
		if err := r.table.AddData(d.Name, d.Eta); err != nil {
			r.errorf(diagnostics.ErrD004, loc, "%s", err.Error())
			continue
		}
		for _, c := range d.Constructors {
			r.registerCtor(d.Name, c)
		}
	}
}

func (r *resolver) registerCtor(data string, c CtorDecl) {
	loc := diagnostics.Loc{File: r.file, Def: c.Name}
	if c.Name == "" {
		r.errorf(diagnostics.ErrD002, diagnostics.Loc{File: r.file, Def: data}, "constructor without a name")
		return
	}
	tel, scope, ok := r.telescope(c.Telescope, loc)
	if !ok {
		return
	}
	var codomain core.Term
	if c.Codomain == nil {
		codomain = &core.Def{Name: data}
	} else {
		t, ok := r.term(c.Codomain, scope, loc, 0)
		if !ok {
			return
		}
		codomain = t
	}
	if d, found := r.table.Data(data); found && d.Eta && len(d.Ctors) > 0 {
		r.errorf(diagnostics.ErrD005, loc, "eta data type %s already has constructor %s", data, d.Ctors[0])
		return
	}
	if err := r.table.AddConstructor(c.Name, data, core.CtorType{Tel: tel, Codomain: codomain}); err != nil {
		var internal *forcing.InternalError
		if errors.As(err, &internal) {
			r.errorf(diagnostics.ErrF002, loc, "%s", internal.Msg)
			return
		}
		r.errorf(diagnostics.ErrD004, loc, "%s", err.Error())
	}
}

func (r *resolver) registerFunctions(decls []FunDecl) {
	// Functions first, clauses second: a clause may match on any
	// declared function, not just earlier ones.
	for _, fn := range decls {
		loc := diagnostics.Loc{File: r.file, Def: fn.Name}
		if fn.Name == "" {
			r.errorf(diagnostics.ErrD002, diagnostics.Loc{File: r.file}, "function declaration without a name")
			continue
		}
		forced := make([]core.IsForced, len(fn.Forced))
		for i, f := range fn.Forced {
			if f {
				forced[i] = core.Forced
			}
		}
		if err := r.table.AddFunction(fn.Name, forced); err != nil {
			r.errorf(diagnostics.ErrD004, loc, "%s", err.Error())
		}
	}
	for _, fn := range decls {
		if _, ok := r.table.Function(fn.Name); !ok {
			continue
		}
		for i, cl := range fn.Clauses {
			r.registerClause(fn, i+1, cl)
		}
	}
}

func (r *resolver) registerClause(fn FunDecl, num int, cl ClauseDecl) {
	loc := diagnostics.Loc{File: r.file, Def: fn.Name, Clause: num}
	if len(fn.Forced) > 0 && len(cl.Patterns) != len(fn.Forced) {
		r.errorf(diagnostics.ErrD006, loc, "clause has %d patterns, forced list has %d entries", len(cl.Patterns), len(fn.Forced))
		return
	}
	tel, scope, ok := r.telescope(cl.Telescope, loc)
	if !ok {
		return
	}
	pats := make([]core.PatArg, len(cl.Patterns))
	for i := range cl.Patterns {
		arg, ok := r.patArg(&PatArgNode{PatNode: cl.Patterns[i]}, scope, loc, 0)
		if !ok {
			return
		}
		pats[i] = arg
	}
	if err := r.table.AddClause(fn.Name, core.Clause{Tel: tel, Pats: pats}); err != nil {
		r.errorf(diagnostics.ErrD003, loc, "%s", err.Error())
	}
}

// telescope resolves a binding list. Each binding's type is resolved
// in the scope of the binders before it; the returned scope lists all
// binder names in declaration order.
func (r *resolver) telescope(nodes []BindingNode, loc diagnostics.Loc) (core.Telescope, []string, bool) {
	if len(nodes) == 0 {
		return nil, nil, true
	}
	tel := make(core.Telescope, 0, len(nodes))
	scope := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Name == "" || n.Type == nil {
			r.errorf(diagnostics.ErrD002, loc, "telescope binding needs a name and a type")
			return nil, nil, false
		}
		mod, ok := r.modality(n.Quantity, n.Irrelevant, loc)
		if !ok {
			return nil, nil, false
		}
		typ, ok := r.term(n.Type, scope, loc, 0)
		if !ok {
			return nil, nil, false
		}
		tel = append(tel, core.Binding{Name: n.Name, Type: typ, Mod: mod})
		scope = append(scope, n.Name)
	}
	return tel, scope, true
}

// modality interprets the quantity/irrelevance fields of a node.
// Writing any quantity pins it.
func (r *resolver) modality(quantity string, irrelevant bool, loc diagnostics.Loc) (core.Modality, bool) {
	mod := core.Modality{}
	if irrelevant {
		mod.Relevance = core.Irrelevant
	}
	switch quantity {
	case "":
	case "0":
		mod.Quantity = core.QuantityZero
		mod.UserQuantity = true
	case "many":
		mod.UserQuantity = true
	default:
		r.errorf(diagnostics.ErrD002, loc, "quantity must be \"0\" or \"many\", got %q", quantity)
		return core.Modality{}, false
	}
	return mod, true
}

func (r *resolver) term(n *TermNode, scope []string, loc diagnostics.Loc, depth int) (core.Term, bool) {
	if depth > config.MaxNestingDepth {
		r.errorf(diagnostics.ErrD007, loc, "term nesting exceeds depth %d", config.MaxNestingDepth)
		return nil, false
	}
	tags := 0
	if n.Var != "" {
		tags++
	}
	if n.Con != "" {
		tags++
	}
	if n.Def != "" {
		tags++
	}
	if n.Lit != nil {
		tags++
	}
	if n.Path != nil {
		tags++
	}
	if tags != 1 {
		r.errorf(diagnostics.ErrD002, loc, "term node must set exactly one of var/con/def/lit/path")
		return nil, false
	}

	switch {
	case n.Var != "":
		index, ok := r.lookupVar(n.Var, scope, loc)
		if !ok {
			return nil, false
		}
		elims, ok := r.elims(n.Args, scope, loc, depth)
		if !ok {
			return nil, false
		}
		return &core.Var{Index: index, Name: n.Var, Elims: elims}, true
	case n.Con != "":
		if _, ok := r.table.Constructor(n.Con); !ok {
			r.errorf(diagnostics.ErrD003, loc, "unknown constructor %s", n.Con)
			return nil, false
		}
		elims, ok := r.elims(n.Args, scope, loc, depth)
		if !ok {
			return nil, false
		}
		return &core.Con{Ctor: n.Con, Elims: elims}, true
	case n.Def != "":
		_, isData := r.table.Data(n.Def)
		_, isFun := r.table.Function(n.Def)
		if !isData && !isFun {
			r.errorf(diagnostics.ErrD003, loc, "unknown definition %s", n.Def)
			return nil, false
		}
		elims, ok := r.elims(n.Args, scope, loc, depth)
		if !ok {
			return nil, false
		}
		return &core.Def{Name: n.Def, Elims: elims}, true
	case n.Lit != nil:
		lit, ok := r.literal(n.Lit, loc)
		if !ok {
			return nil, false
		}
		return &core.Lit{Value: lit}, true
	default:
		space, ok1 := r.subTerm(n.Path.Space, "path space", scope, loc, depth)
		lhs, ok2 := r.subTerm(n.Path.Lhs, "path lhs", scope, loc, depth)
		rhs, ok3 := r.subTerm(n.Path.Rhs, "path rhs", scope, loc, depth)
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return &core.Path{Space: space, Lhs: lhs, Rhs: rhs}, true
	}
}

func (r *resolver) subTerm(n *TermNode, what string, scope []string, loc diagnostics.Loc, depth int) (core.Term, bool) {
	if n == nil {
		r.errorf(diagnostics.ErrD002, loc, "missing %s", what)
		return nil, false
	}
	return r.term(n, scope, loc, depth+1)
}

func (r *resolver) elims(args []ArgNode, scope []string, loc diagnostics.Loc, depth int) ([]core.Elim, bool) {
	if len(args) == 0 {
		return nil, true
	}
	elims := make([]core.Elim, len(args))
	for i := range args {
		a := &args[i]
		mod, ok := r.modality(a.Quantity, a.Irrelevant, loc)
		if !ok {
			return nil, false
		}
		val, ok := r.term(&a.TermNode, scope, loc, depth+1)
		if !ok {
			return nil, false
		}
		elims[i] = &core.Apply{Arg: core.Arg{Mod: mod, Name: a.ArgName, Val: val}}
	}
	return elims, true
}

func (r *resolver) literal(n *LitNode, loc diagnostics.Loc) (core.Literal, bool) {
	tags := 0
	if n.Nat != nil {
		tags++
	}
	if n.Str != nil {
		tags++
	}
	if n.Char != nil {
		tags++
	}
	if tags != 1 {
		r.errorf(diagnostics.ErrD002, loc, "literal node must set exactly one of nat/str/char")
		return nil, false
	}
	switch {
	case n.Nat != nil:
		if *n.Nat < 0 {
			r.errorf(diagnostics.ErrD002, loc, "natural literal must not be negative")
			return nil, false
		}
		return core.Nat(*n.Nat), true
	case n.Str != nil:
		return &core.StringLit{Value: *n.Str}, true
	default:
		runes := []rune(*n.Char)
		if len(runes) != 1 {
			r.errorf(diagnostics.ErrD002, loc, "char literal must be a single character")
			return nil, false
		}
		return &core.CharLit{Value: runes[0]}, true
	}
}

func (r *resolver) patArg(n *PatArgNode, scope []string, loc diagnostics.Loc, depth int) (core.PatArg, bool) {
	mod, ok := r.modality(n.Quantity, n.Irrelevant, loc)
	if !ok {
		return core.PatArg{}, false
	}
	pat, ok := r.pattern(&n.PatNode, scope, loc, depth)
	if !ok {
		return core.PatArg{}, false
	}
	return core.PatArg{Mod: mod, Name: n.ArgName, Pat: pat}, true
}

func (r *resolver) pattern(n *PatNode, scope []string, loc diagnostics.Loc, depth int) (core.Pattern, bool) {
	if depth > config.MaxNestingDepth {
		r.errorf(diagnostics.ErrD007, loc, "pattern nesting exceeds depth %d", config.MaxNestingDepth)
		return nil, false
	}
	tags := 0
	for _, set := range []bool{n.Var != "", n.Dot != nil, n.Con != "", n.Fn != "", n.Lit != nil, n.Proj != "", n.Path != ""} {
		if set {
			tags++
		}
	}
	if tags != 1 {
		r.errorf(diagnostics.ErrD002, loc, "pattern node must set exactly one of var/dot/con/fn/lit/proj/path")
		return nil, false
	}
	if len(n.Args) > 0 && n.Con == "" && n.Fn == "" {
		r.errorf(diagnostics.ErrD002, loc, "pattern args are only valid on con and fn patterns")
		return nil, false
	}

	switch {
	case n.Var != "":
		index, ok := r.lookupVar(n.Var, scope, loc)
		if !ok {
			return nil, false
		}
		return &core.VarP{Index: index, Name: n.Var}, true
	case n.Dot != nil:
		t, ok := r.term(n.Dot, scope, loc, depth+1)
		if !ok {
			return nil, false
		}
		return &core.DotP{Term: t}, true
	case n.Con != "":
		if _, ok := r.table.Constructor(n.Con); !ok {
			r.errorf(diagnostics.ErrD003, loc, "unknown constructor %s", n.Con)
			return nil, false
		}
		args, ok := r.patArgs(n.Args, scope, loc, depth)
		if !ok {
			return nil, false
		}
		return &core.ConP{Ctor: n.Con, Args: args}, true
	case n.Fn != "":
		if _, ok := r.table.Function(n.Fn); !ok {
			r.errorf(diagnostics.ErrD003, loc, "unknown function %s", n.Fn)
			return nil, false
		}
		args, ok := r.patArgs(n.Args, scope, loc, depth)
		if !ok {
			return nil, false
		}
		return &core.DefP{Name: n.Fn, Args: args}, true
	case n.Lit != nil:
		lit, ok := r.literal(n.Lit, loc)
		if !ok {
			return nil, false
		}
		return &core.LitP{Lit: lit}, true
	case n.Proj != "":
		return &core.ProjP{Field: n.Proj}, true
	default:
		index, ok := r.lookupVar(n.Path, scope, loc)
		if !ok {
			return nil, false
		}
		return &core.PathP{Index: index, Name: n.Path}, true
	}
}

func (r *resolver) patArgs(args []PatArgNode, scope []string, loc diagnostics.Loc, depth int) ([]core.PatArg, bool) {
	out := make([]core.PatArg, len(args))
	for i := range args {
		arg, ok := r.patArg(&args[i], scope, loc, depth+1)
		if !ok {
			return nil, false
		}
		out[i] = arg
	}
	return out, true
}

// lookupVar resolves a binder name to its de Bruijn index. The last
// binder of that name is the one in scope.
func (r *resolver) lookupVar(name string, scope []string, loc diagnostics.Loc) (int, bool) {
	for pos := len(scope) - 1; pos >= 0; pos-- {
		if scope[pos] == name {
			return len(scope) - 1 - pos, true
		}
	}
	r.errorf(diagnostics.ErrD003, loc, "unknown variable %s", name)
	return 0, false
}
