// Package declfile reads declaration-set files: the structured YAML
// form of what the type checker hands the forcing subsystem, that is
// normalized constructor types, function annotations and clause
// pattern lists. There is no surface-syntax parser here; terms and
// patterns are tagged one-of nodes, and variables refer to telescope
// binders by name and are resolved to de Bruijn indices on load.
package declfile

// File is the top-level structure of a declaration-set file.
type File struct {
	// Options optionally overrides project options for this file.
	Options *OptionsNode `yaml:"options,omitempty"`

	// Data lists data types with their constructors, in dependency
	// order: a constructor type may only mention names declared before
	// it.
	Data []DataDecl `yaml:"data,omitempty"`

	// Functions lists pattern-matching functions and their clauses.
	Functions []FunDecl `yaml:"functions,omitempty"`
}

// OptionsNode carries per-file option overrides.
type OptionsNode struct {
	Forcing *bool `yaml:"forcing,omitempty"`
}

// DataDecl declares one data type.
type DataDecl struct {
	Name string `yaml:"name"`

	// Eta marks a record-like data type: a single constructor whose
	// values are determined by their fields.
	Eta bool `yaml:"eta,omitempty"`

	Constructors []CtorDecl `yaml:"constructors,omitempty"`
}

// CtorDecl declares one constructor by its normalized type: the
// argument telescope and the fully instantiated codomain. A codomain
// may be omitted for constructors of non-indexed types; it defaults to
// the bare data type.
type CtorDecl struct {
	Name      string        `yaml:"name"`
	Telescope []BindingNode `yaml:"telescope,omitempty"`
	Codomain  *TermNode     `yaml:"codomain,omitempty"`
}

// FunDecl declares one pattern-matching function.
type FunDecl struct {
	Name string `yaml:"name"`

	// Forced is the forcing annotation of the function's own argument
	// positions, one entry per argument, as the type checker computed
	// it. Omitted entries default to not forced.
	Forced []bool `yaml:"forced,omitempty"`

	Clauses []ClauseDecl `yaml:"clauses,omitempty"`
}

// ClauseDecl is one clause: the telescope its patterns bind into and
// the pattern list itself.
type ClauseDecl struct {
	Telescope []BindingNode `yaml:"telescope,omitempty"`
	Patterns  []PatNode     `yaml:"patterns"`
}

// BindingNode is one telescope entry. Writing a quantity pins it: an
// erased binding can only be obtained by writing quantity "0"
// explicitly, which is what keeps erasure out of forcing's reach.
type BindingNode struct {
	Name string    `yaml:"name"`
	Type *TermNode `yaml:"type"`

	// Quantity is "0" or "many". Empty means unconstrained and
	// unpinned.
	Quantity string `yaml:"quantity,omitempty"`

	Irrelevant bool `yaml:"irrelevant,omitempty"`
}

// TermNode is a term as a tagged one-of: exactly one of Var, Con, Def,
// Lit, Path must be set. Args is only meaningful for Var, Con and Def
// heads.
type TermNode struct {
	Var  string    `yaml:"var,omitempty"`
	Con  string    `yaml:"con,omitempty"`
	Def  string    `yaml:"def,omitempty"`
	Lit  *LitNode  `yaml:"lit,omitempty"`
	Path *PathNode `yaml:"path,omitempty"`
	Args []ArgNode `yaml:"args,omitempty"`
}

// ArgNode is a term in argument position with its modality.
type ArgNode struct {
	TermNode `yaml:",inline"`

	ArgName    string `yaml:"arg_name,omitempty"`
	Quantity   string `yaml:"quantity,omitempty"`
	Irrelevant bool   `yaml:"irrelevant,omitempty"`
}

// PathNode is a path type between two endpoints.
type PathNode struct {
	Space *TermNode `yaml:"space"`
	Lhs   *TermNode `yaml:"lhs"`
	Rhs   *TermNode `yaml:"rhs"`
}

// LitNode is a literal as a tagged one-of.
type LitNode struct {
	Nat  *int64  `yaml:"nat,omitempty"`
	Str  *string `yaml:"str,omitempty"`
	Char *string `yaml:"char,omitempty"`
}

// PatNode is a pattern as a tagged one-of: exactly one of Var, Dot,
// Con, Fn, Lit, Proj, Path must be set. Args is only meaningful for
// Con and Fn heads.
type PatNode struct {
	Var  string       `yaml:"var,omitempty"`
	Dot  *TermNode    `yaml:"dot,omitempty"`
	Con  string       `yaml:"con,omitempty"`
	Fn   string       `yaml:"fn,omitempty"`
	Lit  *LitNode     `yaml:"lit,omitempty"`
	Proj string       `yaml:"proj,omitempty"`
	Path string       `yaml:"path,omitempty"`
	Args []PatArgNode `yaml:"args,omitempty"`
}

// PatArgNode is a sub-pattern with the modality of its position.
type PatArgNode struct {
	PatNode `yaml:",inline"`

	ArgName    string `yaml:"arg_name,omitempty"`
	Quantity   string `yaml:"quantity,omitempty"`
	Irrelevant bool   `yaml:"irrelevant,omitempty"`
}
