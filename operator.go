package ple

import (
	"fmt"
	"slices"
)

// Kind is the fixed logical variant of an operator. It is set at
// construction and never changes afterwards.
type Kind string

const (
	// AlwaysTrue evaluates to true for any input.
	AlwaysTrue Kind = "always_true"

	// AlwaysFalse evaluates to false for any input.
	AlwaysFalse Kind = "always_false"

	// Regex is a leaf operator that is true if its pattern is found
	// anywhere in the input text.
	Regex Kind = "regex"

	// And is true if none of its parameters evaluate to false.
	// An And with no parameters is true.
	And Kind = "and"

	// Or is true if any of its parameters evaluates to true.
	// An Or with no parameters is false.
	Or Kind = "or"

	// Not negates its single parameter. A Not with no parameters is true.
	Not Kind = "not"

	// Xor requires exactly two parameters and is true if exactly one
	// of them is true.
	Xor Kind = "xor"

	// Nand requires exactly two parameters and is true unless both
	// are true.
	Nand Kind = "nand"

	// Nor accepts two or more parameters and is true only if all of
	// them are false.
	Nor Kind = "nor"
)

// kinds lists every valid operator kind, in display order.
var kinds = []Kind{AlwaysTrue, AlwaysFalse, Regex, And, Or, Not, Xor, Nand, Nor}

// Valid reports whether k is one of the defined operator kinds.
func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a stored kind string back to a Kind.
// Used by stores when loading operators.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown operator kind %q", s)
	}
	return k, nil
}

// An Operator is one node in a rule: either a constant, a regular
// expression match, or a logical combinator over its parameters.
// Operators compose into trees (strictly, DAGs: an operator may be a
// parameter of more than one parent).
//
// The parameter list is append-only; parameters are attached with
// AddParameter after construction and are evaluated in insertion order.
// Only direct self-reference is rejected. Indirect cycles (a → b → a)
// are not detected; see the package documentation.
type Operator struct {
	// ID identifies the operator within the store that created it.
	// Opaque to the engine. Empty for transient operators that have
	// never been persisted.
	ID string

	// Name is an optional, human-readable label. Names are not
	// guaranteed unique; Engine.OperatorNamed enforces uniqueness at
	// lookup time only.
	Name string

	// Kind is the logical variant. Fixed at construction.
	Kind Kind

	// Pattern is the regular expression source. Regex kind only.
	Pattern string

	// CaseSensitive controls pattern compilation. Regex kind only.
	// The default is a case-insensitive match.
	CaseSensitive bool

	params []*Operator
}

// OperatorOption configures an operator at construction.
type OperatorOption func(*Operator)

// Name sets the operator's label.
func Name(name string) OperatorOption {
	return func(o *Operator) {
		o.Name = name
	}
}

// Pattern sets the regular expression for a Regex operator.
func Pattern(pattern string) OperatorOption {
	return func(o *Operator) {
		o.Pattern = pattern
	}
}

// CaseSensitive makes a Regex operator match case-sensitively.
func CaseSensitive() OperatorOption {
	return func(o *Operator) {
		o.CaseSensitive = true
	}
}

// NewOperator initializes a transient operator of the given kind.
// The operator has no ID until a store creates it; use Engine.NewOperator
// to construct and persist in one step.
func NewOperator(kind Kind, opts ...OperatorOption) *Operator {
	o := &Operator{Kind: kind}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AddParameter appends child to the operator's parameter list.
// An operator can never be its own direct parameter; attempting it
// returns ErrSelfReference and leaves the list unchanged.
func (o *Operator) AddParameter(child *Operator) error {
	if child == nil {
		return fmt.Errorf("attempt to add nil parameter to %s", o.Kind)
	}
	if child == o {
		return ErrSelfReference
	}
	o.params = append(o.params, child)
	return nil
}

// Parameters returns the operator's parameters in insertion order.
// The returned slice is a copy; appending to it does not modify the
// operator.
func (o *Operator) Parameters() []*Operator {
	return slices.Clone(o.params)
}

// NumParameters returns the number of parameters.
func (o *Operator) NumParameters() int {
	return len(o.params)
}

// Walk applies f to the operator and its parameters, depth-first in
// insertion order. An operator shared by several parents is visited
// once per reference. Walk stops at the first error.
func Walk(o *Operator, f func(o *Operator) error) error {
	if o == nil {
		return nil
	}
	if err := f(o); err != nil {
		return err
	}
	for _, p := range o.params {
		if err := Walk(p, f); err != nil {
			return err
		}
	}
	return nil
}
