// Package defs keeps the definitions the forcing passes need: data
// types, their constructors and pattern-matching functions, keyed by
// name. It stands in for the compiler's definition repository at the
// granularity this subsystem consumes, and it enforces the pipeline
// ordering rule: a constructor's forcing annotations are computed once
// at registration time and cached, so every clause translated later
// sees stable annotations.
package defs

import (
	"fmt"
	"sort"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/core"
	"github.com/vela-lang/vela/internal/forcing"
	"github.com/vela-lang/vela/internal/trace"
)

// DataInfo is one registered data type.
type DataInfo struct {
	Name  string
	Eta   bool // record-like: single constructor, eta equality
	Ctors []string
}

// CtorInfo is one registered constructor with its cached forcing
// annotations.
type CtorInfo struct {
	Name   string
	Data   string
	Type   core.CtorType
	Forced []core.IsForced
}

// FunInfo is one registered pattern-matching function.
type FunInfo struct {
	Name    string
	Forced  []core.IsForced
	Clauses []core.Clause
}

// Table is the name-keyed definition table. It implements
// forcing.Lookup.
type Table struct {
	opts  *config.Options
	tr    *trace.Tracer
	data  map[string]*DataInfo
	ctors map[string]*CtorInfo
	funs  map[string]*FunInfo
}

// NewTable returns an empty definition table. The options decide how
// forcing annotations are computed at registration time; the tracer
// may be nil.
func NewTable(opts *config.Options, tr *trace.Tracer) *Table {
	return &Table{
		opts:  opts,
		tr:    tr,
		data:  make(map[string]*DataInfo),
		ctors: make(map[string]*CtorInfo),
		funs:  make(map[string]*FunInfo),
	}
}

// AddData registers a data type.
func (t *Table) AddData(name string, eta bool) error {
	if t.defined(name) {
		return fmt.Errorf("duplicate definition of %s", name)
	}
	t.data[name] = &DataInfo{Name: name, Eta: eta}
	return nil
}

// AddConstructor registers a constructor of an existing data type and
// computes its forcing annotations from the given normalized type. Eta
// data types admit exactly one constructor.
func (t *Table) AddConstructor(name, data string, ctorType core.CtorType) error {
	if t.defined(name) {
		return fmt.Errorf("duplicate definition of %s", name)
	}
	d, ok := t.data[data]
	if !ok {
		return fmt.Errorf("constructor %s: unknown data type %s", name, data)
	}
	if d.Eta && len(d.Ctors) > 0 {
		return fmt.Errorf("constructor %s: eta data type %s already has constructor %s", name, data, d.Ctors[0])
	}
	forced, err := forcing.ComputeAnnotations(t.opts, t.tr, name, ctorType)
	if err != nil {
		return err
	}
	d.Ctors = append(d.Ctors, name)
	t.ctors[name] = &CtorInfo{Name: name, Data: data, Type: ctorType, Forced: forced}
	return nil
}

// AddFunction registers a pattern-matching function together with the
// forcing annotations of its own argument positions, as computed by
// the type checker.
func (t *Table) AddFunction(name string, forced []core.IsForced) error {
	if t.defined(name) {
		return fmt.Errorf("duplicate definition of %s", name)
	}
	t.funs[name] = &FunInfo{Name: name, Forced: forced}
	return nil
}

// AddClause appends a clause to a registered function.
func (t *Table) AddClause(fun string, cl core.Clause) error {
	fn, ok := t.funs[fun]
	if !ok {
		return fmt.Errorf("clause for unknown function %s", fun)
	}
	fn.Clauses = append(fn.Clauses, cl)
	return nil
}

// Data returns a registered data type.
func (t *Table) Data(name string) (*DataInfo, bool) {
	d, ok := t.data[name]
	return d, ok
}

// Constructor returns a registered constructor.
func (t *Table) Constructor(name string) (*CtorInfo, bool) {
	c, ok := t.ctors[name]
	return c, ok
}

// Function returns a registered function.
func (t *Table) Function(name string) (*FunInfo, bool) {
	fn, ok := t.funs[name]
	return fn, ok
}

// Constructors returns all registered constructor names, sorted.
func (t *Table) Constructors() []string {
	names := make([]string, 0, len(t.ctors))
	for name := range t.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns all registered function names, sorted.
func (t *Table) Functions() []string {
	names := make([]string, 0, len(t.funs))
	for name := range t.funs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForcedArgs implements forcing.Lookup. The name must be a registered
// constructor or function; anything else means the pipeline ordering
// was violated.
func (t *Table) ForcedArgs(name string) ([]core.IsForced, error) {
	if c, ok := t.ctors[name]; ok {
		return c.Forced, nil
	}
	if fn, ok := t.funs[name]; ok {
		return fn.Forced, nil
	}
	return nil, &forcing.InternalError{Msg: fmt.Sprintf("no forcing annotations registered for %s", name)}
}

// IsEtaCon implements forcing.Lookup.
func (t *Table) IsEtaCon(ctor string) (bool, error) {
	c, ok := t.ctors[ctor]
	if !ok {
		return false, &forcing.InternalError{Msg: fmt.Sprintf("unknown constructor %s", ctor)}
	}
	return t.data[c.Data].Eta, nil
}

func (t *Table) defined(name string) bool {
	if _, ok := t.data[name]; ok {
		return true
	}
	if _, ok := t.ctors[name]; ok {
		return true
	}
	_, ok := t.funs[name]
	return ok
}
