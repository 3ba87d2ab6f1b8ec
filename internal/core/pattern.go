package core

// Pattern is the base interface for clause patterns. Patterns are
// de Bruijn-indexed against the clause telescope, like terms.
type Pattern interface {
	patternNode()
}

// VarP binds the clause variable with the given de Bruijn index.
type VarP struct {
	Index int
	Name  string
}

// DotP is an inaccessible pattern: a placeholder carrying the term whose
// value the position is already known to have. It matches anything and
// binds nothing.
type DotP struct {
	Term Term
}

// ConP matches one constructor applied to sub-patterns.
type ConP struct {
	Ctor string
	Args []PatArg
}

// LitP matches a literal.
type LitP struct {
	Lit Literal
}

// DefP matches on a defined symbol applied to sub-patterns, as produced
// for higher constructors and with-functions.
type DefP struct {
	Name string
	Args []PatArg
}

// ProjP is a copattern projection.
type ProjP struct {
	Field string
}

// PathP binds an interval variable of a path application.
type PathP struct {
	Index int
	Name  string
}

func (*VarP) patternNode()  {}
func (*DotP) patternNode()  {}
func (*ConP) patternNode()  {}
func (*LitP) patternNode()  {}
func (*DefP) patternNode()  {}
func (*ProjP) patternNode() {}
func (*PathP) patternNode() {}

// PatArg is a sub-pattern together with the modality of its position and
// an optional display name.
type PatArg struct {
	Mod  Modality
	Name string
	Pat  Pattern
}

// PatternToTerm converts a pattern to the term it matches. Dotted
// patterns yield their carried term; variable and path patterns yield the
// bound variable. Projection patterns have no term form and yield nil;
// callers never convert them.
func PatternToTerm(p Pattern) Term {
	switch q := p.(type) {
	case *VarP:
		return &Var{Index: q.Index, Name: q.Name}
	case *DotP:
		return q.Term
	case *ConP:
		return &Con{Ctor: q.Ctor, Elims: patArgSpine(q.Args)}
	case *LitP:
		return &Lit{Value: q.Lit}
	case *DefP:
		return &Def{Name: q.Name, Elims: patArgSpine(q.Args)}
	case *PathP:
		return &Var{Index: q.Index, Name: q.Name}
	}
	return nil
}

func patArgSpine(args []PatArg) []Elim {
	elims := make([]Elim, len(args))
	for i, a := range args {
		elims[i] = &Apply{Arg: Arg{Mod: a.Mod, Name: a.Name, Val: PatternToTerm(a.Pat)}}
	}
	return elims
}

// PatternVars returns the de Bruijn indices bound by p, left to right.
// Dotted patterns bind nothing.
func PatternVars(p Pattern) []int {
	var idx []int
	appendPatternVars(p, &idx)
	return idx
}

func appendPatternVars(p Pattern, idx *[]int) {
	switch q := p.(type) {
	case *VarP:
		*idx = append(*idx, q.Index)
	case *PathP:
		*idx = append(*idx, q.Index)
	case *ConP:
		for _, a := range q.Args {
			appendPatternVars(a.Pat, idx)
		}
	case *DefP:
		for _, a := range q.Args {
			appendPatternVars(a.Pat, idx)
		}
	}
}

// PatternSize counts the nodes of a pattern. Carried dot terms count as a
// single node.
func PatternSize(p Pattern) int {
	switch q := p.(type) {
	case *ConP:
		n := 1
		for _, a := range q.Args {
			n += PatternSize(a.Pat)
		}
		return n
	case *DefP:
		n := 1
		for _, a := range q.Args {
			n += PatternSize(a.Pat)
		}
		return n
	default:
		return 1
	}
}

// PatArgsSize counts the nodes of a pattern list.
func PatArgsSize(ps []PatArg) int {
	n := 0
	for _, a := range ps {
		n += PatternSize(a.Pat)
	}
	return n
}
