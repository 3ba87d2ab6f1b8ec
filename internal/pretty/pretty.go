// Package pretty renders terms, patterns and telescopes for
// diagnostics, trace output and the inspection commands. The rendering
// is for humans: display names are preferred over de Bruijn indices,
// which appear as @i only when no name was recorded.
package pretty

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/core"
)

// Term renders a term.
func Term(t core.Term) string {
	switch x := t.(type) {
	case *core.Var:
		return head(varName(x.Index, x.Name), x.Elims)
	case *core.Con:
		return head(x.Ctor, x.Elims)
	case *core.Def:
		return head(x.Name, x.Elims)
	case *core.Lit:
		return Literal(x.Value)
	case *core.Lam:
		return "\\" + x.Name + " -> " + Term(x.Body)
	case *core.Pi:
		return "(" + x.Dom.Name + " : " + Term(x.Dom.Type) + ") -> " + Term(x.Cod)
	case *core.Path:
		return "Path " + atom(Term(x.Space)) + " " + atom(Term(x.Lhs)) + " " + atom(Term(x.Rhs))
	case *core.Sort:
		if x.Level == 0 {
			return "Type"
		}
		return fmt.Sprintf("Type%d", x.Level)
	}
	return "_"
}

func head(name string, elims []core.Elim) string {
	if len(elims) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for _, e := range elims {
		switch el := e.(type) {
		case *core.Apply:
			b.WriteString(" " + atom(Term(el.Arg.Val)))
		case *core.Proj:
			b.WriteString(" ." + el.Field)
		case *core.PathApply:
			b.WriteString(" " + atom(Term(el.Arg)))
		}
	}
	return b.String()
}

// Literal renders a literal value.
func Literal(l core.Literal) string {
	switch x := l.(type) {
	case *core.NatLit:
		return x.Value.String()
	case *core.StringLit:
		return fmt.Sprintf("%q", x.Value)
	case *core.CharLit:
		return fmt.Sprintf("%q", string(x.Value))
	}
	return "_"
}

// Pattern renders a pattern.
func Pattern(p core.Pattern) string {
	switch q := p.(type) {
	case *core.VarP:
		return varName(q.Index, q.Name)
	case *core.DotP:
		return "." + atom(Term(q.Term))
	case *core.ConP:
		return patHead(q.Ctor, q.Args)
	case *core.LitP:
		return Literal(q.Lit)
	case *core.DefP:
		return patHead(q.Name, q.Args)
	case *core.ProjP:
		return "." + q.Field
	case *core.PathP:
		return varName(q.Index, q.Name)
	}
	return "_"
}

func patHead(name string, args []core.PatArg) string {
	if len(args) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString("(" + name)
	for _, a := range args {
		b.WriteString(" " + Pattern(a.Pat))
	}
	b.WriteString(")")
	return b.String()
}

// PatArgs renders a clause's pattern list, space separated.
func PatArgs(ps []core.PatArg) string {
	parts := make([]string, len(ps))
	for i, a := range ps {
		parts[i] = Pattern(a.Pat)
	}
	return strings.Join(parts, " ")
}

// Telescope renders a binding context. Non-default modalities show up
// as prefixes: @0 for erased bindings, a leading dot for irrelevant
// ones.
func Telescope(tel core.Telescope) string {
	parts := make([]string, len(tel))
	for i, b := range tel {
		name := b.Name
		if name == "" {
			name = "_"
		}
		prefix := ""
		if b.Mod.Quantity == core.QuantityZero {
			prefix = "@0 "
		}
		if b.Mod.Relevance == core.Irrelevant {
			name = "." + name
		}
		parts[i] = "(" + prefix + name + " : " + Term(b.Type) + ")"
	}
	return strings.Join(parts, " ")
}

// Annotations renders a forcing annotation list.
func Annotations(forced []core.IsForced) string {
	parts := make([]string, len(forced))
	for i, f := range forced {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func varName(index int, name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("@%d", index)
}

// atom wraps a rendering in parentheses when it is not a single token.
func atom(s string) string {
	if strings.ContainsRune(s, ' ') {
		return "(" + s + ")"
	}
	return s
}
