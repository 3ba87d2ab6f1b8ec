package core

// Binding is one telescope entry: a named, modality-tagged type.
type Binding struct {
	Name string
	Type Term
	Mod  Modality
}

// Telescope is an ordered list of bindings, earliest first. Within terms
// and patterns under a telescope of length n, the binding at position i
// is referred to by de Bruijn index n-1-i.
type Telescope []Binding

// DeBruijn returns the de Bruijn index of the binding at position pos.
func (t Telescope) DeBruijn(pos int) int {
	return len(t) - 1 - pos
}

// Position returns the telescope position of de Bruijn index i, or -1
// when the index is out of range.
func (t Telescope) Position(i int) int {
	pos := len(t) - 1 - i
	if pos < 0 || pos >= len(t) {
		return -1
	}
	return pos
}

// CtorType is a normalized constructor type as handed over by the type
// checker: the argument telescope and the fully instantiated codomain.
type CtorType struct {
	Tel      Telescope
	Codomain Term
}

// Clause is one pattern-matching clause: the telescope of its pattern
// variables and the left-hand-side pattern list. Right-hand sides are
// checked elsewhere and play no role here.
type Clause struct {
	Tel  Telescope
	Pats []PatArg
}
