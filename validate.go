package fieldflow

import (
	"strconv"
	"time"

	"github.com/arborcrm/fieldflow/i18n"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Result is the outcome of ValidateObject: the accumulated errors plus the
// value with computed fields applied. Value is what the persistence layer
// writes when IsValid is true.
type Result struct {
	IsValid bool
	Errors  ValidationErrors
	Value   any
}

// ValidateObject validates value against schema and applies the computed
// field derivations. Computed fields are derived even when validation fails,
// so a partially filled form still round-trips its derived summaries.
func ValidateObject(schema SchemaNode, value any) Result {
	errs := Validate(schema, value)
	return Result{
		IsValid: len(errs) == 0,
		Errors:  errs,
		Value:   ApplyComputed(schema, value),
	}
}

// Validate recursively checks value against schema and returns every
// violation found; it never short-circuits. Structural failures are
// accumulated, never raised. A panicking CustomFunc escapes: a broken
// registered validator is a programming error, not a validation failure.
func Validate(schema SchemaNode, value any) ValidationErrors {
	v := &validator{root: schema, now: time.Now()}
	v.walk(schema, value, nil, nil)
	return v.errs
}

type validator struct {
	root SchemaNode
	now  time.Time
	errs ValidationErrors
}

// add records a violation at path. enclosing is the nearest schema node whose
// fields contain the path's final segment; it backs the label fallback when
// the path is unreachable from the root's static view.
func (v *validator) add(path Path, enclosing SchemaNode, code string, data map[string]string) {
	v.errs = append(v.errs, ValidationError{
		Path:       path.String(),
		Message:    i18n.T(code, data),
		FieldLabel: labelFor(v.root, path, enclosing),
	})
}

func (v *validator) addCustom(path Path, enclosing SchemaNode, err error) {
	v.errs = append(v.errs, ValidationError{
		Path:       path.String(),
		Message:    err.Error(),
		FieldLabel: labelFor(v.root, path, enclosing),
	})
}

func (v *validator) walk(node SchemaNode, value any, path Path, enclosing SchemaNode) {
	switch n := node.(type) {
	case *Primitive:
		v.primitive(n, value, path, enclosing)
	case *Enum:
		v.enum(n, value, path, enclosing)
	case *Array:
		v.array(n, value, path, enclosing)
	case *Object:
		v.object(n, value, path, enclosing)
	case *Union:
		v.union(n, value, path, enclosing)
	}
	v.custom(node, value, path, enclosing)
}

// custom runs the node-level Custom hook for any present value.
func (v *validator) custom(node SchemaNode, value any, path Path, enclosing SchemaNode) {
	r := rulesOf(node)
	if r == nil || r.Custom == nil || value == nil {
		return
	}
	if err := r.Custom(value); err != nil {
		v.addCustom(path, enclosing, err)
	}
}

func (v *validator) primitive(n *Primitive, value any, path Path, enclosing SchemaNode) {
	r := n.Rules
	if value == nil {
		if r != nil && r.Required {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	switch n.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			v.add(path, enclosing, i18n.CodeInvalidType, nil)
			return
		}
		if s == "" {
			if r != nil && r.Required {
				v.add(path, enclosing, i18n.CodeRequired, nil)
			}
			return
		}
		if r == nil {
			return
		}
		if r.MinLength != nil && len(s) < *r.MinLength {
			v.add(path, enclosing, i18n.CodeTooShort, map[string]string{"min": strconv.Itoa(*r.MinLength)})
		}
		if r.MaxLength != nil && len(s) > *r.MaxLength {
			v.add(path, enclosing, i18n.CodeTooLong, map[string]string{"max": strconv.Itoa(*r.MaxLength)})
		}
		if r.Pattern != nil && !r.Pattern.MatchString(s) {
			v.add(path, enclosing, i18n.CodePattern, nil)
		}
	case TypeNumber:
		f, ok := toFloat(value)
		if !ok {
			v.add(path, enclosing, i18n.CodeInvalidType, nil)
			return
		}
		if r == nil {
			return
		}
		if r.Min != nil && f < *r.Min {
			v.add(path, enclosing, i18n.CodeTooSmall, map[string]string{"min": formatNumber(*r.Min)})
		}
		if r.Max != nil && f > *r.Max {
			v.add(path, enclosing, i18n.CodeTooBig, map[string]string{"max": formatNumber(*r.Max)})
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			v.add(path, enclosing, i18n.CodeInvalidType, nil)
		}
	case TypeDate:
		v.date(value, dateLayout, "YYYY-MM-DD", r, path, enclosing)
	case TypeDateTime:
		v.date(value, dateTimeLayout, "YYYY-MM-DD HH:MM:SS", r, path, enclosing)
	}
}

// date checks the fixed format, the min/max window, and the default policy
// that rejects values after the moment of validation unless AllowFuture is
// set. Window comparison is lexical, which both layouts preserve.
func (v *validator) date(value any, layout, display string, r *Rules, path Path, enclosing SchemaNode) {
	s, ok := value.(string)
	if !ok {
		v.add(path, enclosing, i18n.CodeInvalidType, nil)
		return
	}
	if s == "" {
		if r != nil && r.Required {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	if len(s) != len(layout) {
		v.add(path, enclosing, i18n.CodeInvalidFormat, map[string]string{"format": display})
		return
	}
	if _, err := time.Parse(layout, s); err != nil {
		v.add(path, enclosing, i18n.CodeInvalidFormat, map[string]string{"format": display})
		return
	}
	if r != nil && r.MinDate != "" && s < r.MinDate {
		v.add(path, enclosing, i18n.CodeBeforeMinDate, map[string]string{"min": r.MinDate})
	}
	if r != nil && r.MaxDate != "" && s > r.MaxDate {
		v.add(path, enclosing, i18n.CodeAfterMaxDate, map[string]string{"max": r.MaxDate})
	}
	if (r == nil || !r.AllowFuture) && s > v.now.Format(layout) {
		v.add(path, enclosing, i18n.CodeFutureDate, nil)
	}
}

func (v *validator) enum(n *Enum, value any, path Path, enclosing SchemaNode) {
	if value == nil {
		if required(n) {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	s, ok := value.(string)
	if !ok {
		v.add(path, enclosing, i18n.CodeInvalidType, nil)
		return
	}
	if s == "" {
		if required(n) {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	if _, ok := n.OptionLabel(s); !ok {
		v.add(path, enclosing, i18n.CodeInvalidEnum, nil)
	}
}

func (v *validator) array(n *Array, value any, path Path, enclosing SchemaNode) {
	if value == nil {
		if required(n) {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	items, ok := value.([]any)
	if !ok {
		v.add(path, enclosing, i18n.CodeInvalidType, nil)
		return
	}
	if r := n.Rules; r != nil {
		if r.MinLength != nil && len(items) < *r.MinLength {
			v.add(path, enclosing, i18n.CodeTooFewItems, map[string]string{"min": strconv.Itoa(*r.MinLength)})
		}
		if r.MaxLength != nil && len(items) > *r.MaxLength {
			v.add(path, enclosing, i18n.CodeTooManyItems, map[string]string{"max": strconv.Itoa(*r.MaxLength)})
		}
	}
	for i, item := range items {
		v.walk(n.Item, item, path.Index(i), enclosing)
	}
}

func (v *validator) object(n *Object, value any, path Path, enclosing SchemaNode) {
	if value == nil {
		if required(n) {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	m, ok := value.(map[string]any)
	if !ok {
		v.add(path, enclosing, i18n.CodeInvalidType, nil)
		return
	}
	for _, f := range n.Fields {
		if isComputed(f.Schema) {
			continue
		}
		v.walk(f.Schema, m[f.Name], path.Field(f.Name), n)
	}
}

// union validates by strict discriminator match. A value that carries the
// discriminator field with an unrecognized value yields a single
// "has an invalid type" error with no recursion; a value lacking the
// discriminator entirely falls back to Variants[0], the documented default.
func (v *validator) union(n *Union, value any, path Path, enclosing SchemaNode) {
	if value == nil {
		if required(n) {
			v.add(path, enclosing, i18n.CodeRequired, nil)
		}
		return
	}
	m, ok := value.(map[string]any)
	if !ok {
		v.add(path, enclosing, i18n.CodeInvalidType, nil)
		return
	}
	variant, ok := n.MatchVariant(m)
	if !ok {
		if _, present := m[n.Variants[0].DiscriminatorField]; present {
			v.add(path, enclosing, i18n.CodeInvalidType, nil)
			return
		}
		variant = n.Variants[0]
	}
	// The variant, not the root schema, is the label context for its own
	// fields: not all of them are reachable from the root's static view.
	v.object(&variant.Object, m, path, enclosing)
	v.custom(&variant.Object, m, path, enclosing)
}

// isComputed reports whether a field schema is a computed primitive, which
// validation skips entirely.
func isComputed(node SchemaNode) bool {
	p, ok := node.(*Primitive)
	return ok && p.Computed
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
