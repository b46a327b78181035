package fieldflow

import "regexp"

// CustomFunc is a caller-registered validation hook. A nil return means the
// value passed; a non-nil error supplies the validation message. A panicking
// CustomFunc is a programming error and is deliberately not recovered
// anywhere in this package.
type CustomFunc func(value any) error

// Rules carries the optional constraints a schema node may declare. Pointer
// fields distinguish "not set" from a zero bound. Which fields apply depends
// on the node kind; inapplicable fields are ignored.
type Rules struct {
	Required bool

	// Strings and arrays.
	MinLength *int
	MaxLength *int

	// Strings only. Compiled once at schema-definition time.
	Pattern *regexp.Regexp

	// Numbers only.
	Min *float64
	Max *float64

	// Dates and datetimes, in the node's own fixed format. Comparison is
	// lexical, which is order-preserving for both formats.
	MinDate string
	MaxDate string

	// AllowFuture lifts the default policy that rejects date/datetime values
	// after the moment of validation.
	AllowFuture bool

	Custom CustomFunc
}

// rulesOf returns the Rules declared on a node, which may be nil.
func rulesOf(node SchemaNode) *Rules {
	switch n := node.(type) {
	case *Primitive:
		return n.Rules
	case *Enum:
		return n.Rules
	case *Array:
		return n.Rules
	case *Object:
		return n.Rules
	case *UnionVariant:
		return n.Object.Rules
	case *Union:
		return n.Rules
	}
	return nil
}

// required reports whether a node declares the Required rule.
func required(node SchemaNode) bool {
	r := rulesOf(node)
	return r != nil && r.Required
}
