package fieldflow

// Kind identifies a schema node type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindEnum
	KindArray
	KindObject
	KindUnion
)

// String returns the lowercase name of the kind, matching the catalog vocabulary.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindUnion:
		return "union"
	}
	return "unknown"
}

// PrimitiveType distinguishes the scalar types a Primitive node can describe.
type PrimitiveType int

const (
	TypeString PrimitiveType = iota
	TypeNumber
	TypeBoolean
	TypeDate     // YYYY-MM-DD
	TypeDateTime // YYYY-MM-DD HH:MM:SS
)

func (t PrimitiveType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	}
	return "unknown"
}

// SchemaNode is the root interface of the recursive schema tree. The five
// implementations form a closed sum; every walker in this package dispatches
// on Kind exhaustively.
//
// Schema trees are built once at process start and never mutated afterwards;
// they are shared by reference across all operations and carry no per-request
// state, so concurrent readers need no coordination.
type SchemaNode interface {
	Kind() Kind
}

// ComputeFunc derives system-owned field values from an already validated
// value. It receives the value with children recomputed and returns a partial
// record that is merged over the value, overwriting any client-supplied keys.
type ComputeFunc func(value map[string]any) map[string]any

// SummarizeFunc renders a one-line description of a value. The result is
// stored under the reserved "description" key.
type SummarizeFunc func(value map[string]any) string

// Primitive describes a scalar field.
type Primitive struct {
	Type  PrimitiveType
	Label string
	Rules *Rules
	// Computed marks the field as system-derived. Computed fields are never
	// validated and client-supplied values for them are discarded; their value
	// is produced by the owning Object's or variant's ComputeFunc.
	Computed bool
}

func (p *Primitive) Kind() Kind { return KindPrimitive }

// EnumOption pairs a stored value with its display label. Option order is
// preserved from schema definition.
type EnumOption struct {
	Value string
	Label string
}

// Enum describes a closed set of string values.
type Enum struct {
	Options []EnumOption
	Label   string
	Rules   *Rules
}

func (e *Enum) Kind() Kind { return KindEnum }

// OptionLabel returns the display label for a stored value, or ok=false when
// the value is not a member of the option set.
func (e *Enum) OptionLabel(value string) (string, bool) {
	for _, o := range e.Options {
		if o.Value == value {
			return o.Label, true
		}
	}
	return "", false
}

// Array describes a homogeneous list.
type Array struct {
	Item  SchemaNode
	Label string
	Rules *Rules
}

func (a *Array) Kind() Kind { return KindArray }

// Field maps a name to its schema. Field order is preserved from schema
// definition and drives deterministic iteration in every walker.
type Field struct {
	Name   string
	Schema SchemaNode
}

// Object describes a record with a fixed set of named fields.
type Object struct {
	Fields []Field
	Label  string
	Rules  *Rules
	// Compute, when set, derives this object's computed fields after all
	// children have been recomputed.
	Compute ComputeFunc
	// Summarize, when set, runs after Compute and stores its result under the
	// reserved "description" key, so it may reference freshly computed fields.
	Summarize SummarizeFunc
}

func (o *Object) Kind() Kind { return KindObject }

// FieldSchema returns the schema of a declared field.
func (o *Object) FieldSchema(name string) (SchemaNode, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Schema, true
		}
	}
	return nil, false
}

// UnionVariant is one alternative shape of a Union: an object body plus the
// discriminator that selects it. DiscriminatorField must name a field present
// in the variant's own Fields.
type UnionVariant struct {
	Object
	DiscriminatorField string
	DiscriminatorValue any
}

// Union describes a discriminated union. Variant order is significant: the
// first variant is the deterministic fallback whenever a value carries no
// usable discriminator.
type Union struct {
	Variants []*UnionVariant
	Label    string
	Rules    *Rules
}

func (u *Union) Kind() Kind { return KindUnion }

// SelectVariant picks the variant whose discriminator matches the given
// value. When the value is not an object, lacks the discriminator, or no
// variant matches, it falls back to Variants[0]. This fallback is a
// documented policy, stable across calls; see MatchVariant for the strict
// form used by validation.
func (u *Union) SelectVariant(value any) *UnionVariant {
	if v, ok := u.MatchVariant(value); ok {
		return v
	}
	return u.Variants[0]
}

// MatchVariant returns the variant whose discriminator field/value pair is
// present in the given value, without any fallback.
func (u *Union) MatchVariant(value any) (*UnionVariant, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, v := range u.Variants {
		if discriminatorEqual(m[v.DiscriminatorField], v.DiscriminatorValue) {
			return v, true
		}
	}
	return nil, false
}

// discriminatorEqual compares a value against a discriminator literal.
// Discriminators are scalars (string/bool/number); numeric literals compare
// across int/float representations because JSON decoding yields float64.
func discriminatorEqual(got, want any) bool {
	if got == nil || want == nil {
		return got == want
	}
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return got == want
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
