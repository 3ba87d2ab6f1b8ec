// Package core defines the term, pattern and telescope representation
// shared by the elaborator passes. Terms use de Bruijn indices; the names
// carried by variables and bindings are display-only and never affect
// structural equality.
package core

import "math/big"

// Term is the base interface for all internal term nodes.
type Term interface {
	termNode()
}

// Var is a variable occurrence, possibly applied to eliminations.
// A bare variable has an empty elimination spine.
type Var struct {
	Index int    // de Bruijn index
	Name  string // display name, may be empty
	Elims []Elim
}

// Con is a constructor applied to an elimination spine.
type Con struct {
	Ctor  string
	Elims []Elim
}

// Def is a defined constant or function applied to an elimination spine.
type Def struct {
	Name  string
	Elims []Elim
}

// Lit is a literal value.
type Lit struct {
	Value Literal
}

// Lam is a lambda abstraction. Opaque to the forcing passes.
type Lam struct {
	Name string
	Body Term
}

// Pi is a dependent function type. Opaque to the forcing passes.
type Pi struct {
	Dom Binding
	Cod Term
}

// Path is a path type in Space between Lhs and Rhs. Constructor codomains
// may be wrapped in path types; the codomain view unwraps them.
type Path struct {
	Space Term
	Lhs   Term
	Rhs   Term
}

// Sort is a universe.
type Sort struct {
	Level int
}

func (*Var) termNode()  {}
func (*Con) termNode()  {}
func (*Def) termNode()  {}
func (*Lit) termNode()  {}
func (*Lam) termNode()  {}
func (*Pi) termNode()   {}
func (*Path) termNode() {}
func (*Sort) termNode() {}

// Elim is one elimination applied to a head: a plain argument, a record
// field projection, or a path application.
type Elim interface {
	elimNode()
}

// Apply is application of a plain, modality-tagged argument.
type Apply struct {
	Arg Arg
}

// Proj is a record field projection.
type Proj struct {
	Field string
}

// PathApply applies a path to an interval argument between two endpoints.
type PathApply struct {
	Left  Term
	Right Term
	Arg   Term
}

func (*Apply) elimNode()     {}
func (*Proj) elimNode()      {}
func (*PathApply) elimNode() {}

// Arg is a term in argument position together with the modality of that
// position and an optional display name.
type Arg struct {
	Mod  Modality
	Name string
	Val  Term
}

// Applies wraps plain arguments as an elimination spine.
func Applies(args ...Arg) []Elim {
	elims := make([]Elim, len(args))
	for i, a := range args {
		elims[i] = &Apply{Arg: a}
	}
	return elims
}

// SpineArgs returns the plain arguments of an elimination spine. It
// reports false when the spine contains projections or path applications.
func SpineArgs(elims []Elim) ([]Arg, bool) {
	args := make([]Arg, 0, len(elims))
	for _, e := range elims {
		app, ok := e.(*Apply)
		if !ok {
			return nil, false
		}
		args = append(args, app.Arg)
	}
	return args, true
}

// Literal is the interface of literal payloads.
type Literal interface {
	literalNode()
}

// NatLit is a natural number literal of arbitrary size.
type NatLit struct {
	Value *big.Int
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// CharLit is a character literal.
type CharLit struct {
	Value rune
}

func (*NatLit) literalNode()    {}
func (*StringLit) literalNode() {}
func (*CharLit) literalNode()   {}

// Nat builds a natural number literal from an int64.
func Nat(v int64) *NatLit {
	return &NatLit{Value: big.NewInt(v)}
}

// LiteralEqual compares two literals by value.
func LiteralEqual(a, b Literal) bool {
	switch x := a.(type) {
	case *NatLit:
		y, ok := b.(*NatLit)
		return ok && x.Value.Cmp(y.Value) == 0
	case *StringLit:
		y, ok := b.(*StringLit)
		return ok && x.Value == y.Value
	case *CharLit:
		y, ok := b.(*CharLit)
		return ok && x.Value == y.Value
	}
	return false
}

// TermEqual reports structural equality of terms. Modalities and display
// names are ignored: two occurrences of the same de Bruijn spine are equal
// regardless of how their positions are annotated.
func TermEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Index == y.Index && ElimsEqual(x.Elims, y.Elims)
	case *Con:
		y, ok := b.(*Con)
		return ok && x.Ctor == y.Ctor && ElimsEqual(x.Elims, y.Elims)
	case *Def:
		y, ok := b.(*Def)
		return ok && x.Name == y.Name && ElimsEqual(x.Elims, y.Elims)
	case *Lit:
		y, ok := b.(*Lit)
		return ok && LiteralEqual(x.Value, y.Value)
	case *Lam:
		y, ok := b.(*Lam)
		return ok && TermEqual(x.Body, y.Body)
	case *Pi:
		y, ok := b.(*Pi)
		return ok && TermEqual(x.Dom.Type, y.Dom.Type) && TermEqual(x.Cod, y.Cod)
	case *Path:
		y, ok := b.(*Path)
		return ok && TermEqual(x.Space, y.Space) && TermEqual(x.Lhs, y.Lhs) && TermEqual(x.Rhs, y.Rhs)
	case *Sort:
		y, ok := b.(*Sort)
		return ok && x.Level == y.Level
	}
	return false
}

// ElimsEqual reports structural equality of elimination spines.
func ElimsEqual(a, b []Elim) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case *Apply:
			y, ok := b[i].(*Apply)
			if !ok || !TermEqual(x.Arg.Val, y.Arg.Val) {
				return false
			}
		case *Proj:
			y, ok := b[i].(*Proj)
			if !ok || x.Field != y.Field {
				return false
			}
		case *PathApply:
			y, ok := b[i].(*PathApply)
			if !ok || !TermEqual(x.Left, y.Left) || !TermEqual(x.Right, y.Right) || !TermEqual(x.Arg, y.Arg) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
