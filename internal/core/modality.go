package core

// Relevance classifies whether a binding's value can be inspected at
// runtime or only mentioned in irrelevant positions.
type Relevance uint8

const (
	Relevant Relevance = iota
	Irrelevant
)

func (r Relevance) String() string {
	if r == Irrelevant {
		return "irrelevant"
	}
	return "relevant"
}

// Quantity records whether the usage count of a binding is constrained.
type Quantity uint8

const (
	// QuantityMany places no constraint on usage. It is the quantity of
	// every binding the user did not annotate.
	QuantityMany Quantity = iota
	// QuantityZero marks a binding as erased: it may not be used at runtime.
	QuantityZero
)

func (q Quantity) String() string {
	if q == QuantityZero {
		return "0"
	}
	return "ω"
}

// Modality is the usage attribute attached to bindings, argument positions
// and variable occurrences. The zero value is the default modality:
// relevant, unconstrained quantity, nothing pinned by the user.
//
// UserQuantity records that the quantity was written explicitly in the
// source. Erased bindings always carry it: there is no way to obtain
// quantity zero on a telescope binding by inference alone.
type Modality struct {
	Relevance    Relevance
	Quantity     Quantity
	UserQuantity bool
}

// Combine composes the modality of a position with the modality of an
// occurrence beneath it. It is associative and commutative; the zero
// Modality is its neutral element. Irrelevance and erasure are absorbing.
// Combined results describe occurrences, not declarations, so the pin
// flag is dropped.
func (m Modality) Combine(o Modality) Modality {
	c := Modality{}
	if m.Relevance == Irrelevant || o.Relevance == Irrelevant {
		c.Relevance = Irrelevant
	}
	if m.Quantity == QuantityZero || o.Quantity == QuantityZero {
		c.Quantity = QuantityZero
	}
	return c
}

// MoreUsableThan reports whether a binding of modality m can stand in for
// a binding of modality o: pointwise, a relevant binding serves anywhere
// and an unconstrained quantity serves any quantity.
func (m Modality) MoreUsableThan(o Modality) bool {
	relOK := m.Relevance == Relevant || o.Relevance == Irrelevant
	qtyOK := m.Quantity == QuantityMany || o.Quantity == QuantityZero
	return relOK && qtyOK
}

func (m Modality) String() string {
	s := m.Relevance.String() + "/" + m.Quantity.String()
	if m.UserQuantity {
		s += "!"
	}
	return s
}

// IsForced tags one constructor argument position: Forced positions are
// recoverable from the constructor's result type and need not be matched.
type IsForced uint8

const (
	NotForced IsForced = iota
	Forced
)

func (f IsForced) String() string {
	if f == Forced {
		return "forced"
	}
	return "not-forced"
}
