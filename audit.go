package fieldflow

import "reflect"

// AuditChange is one human-readable entry of a structural diff between two
// values of the same schema. Old and new values are display-formatted: enum
// stored values become their configured labels, absent values become nil.
type AuditChange struct {
	Label    string
	Path     string // dot/bracket formatted, e.g. "settings.[0].key"
	OldValue any
	NewValue any
}

// Diff recursively compares two values of the same schema and returns the
// changes in schema field order. Identical values produce an empty list.
//
// Union variants are chosen by the new value's discriminator, falling back to
// the old value's, falling back to Variants[0]. Arrays compare positionally
// over the longer of the two lengths, a missing side reading as absent. The
// reserved "description" key is skipped, as are fields absent on both sides.
func Diff(schema SchemaNode, oldValue, newValue any) []AuditChange {
	d := &differ{}
	d.walk(schema, oldValue, newValue, nil)
	return d.changes
}

type differ struct {
	changes []AuditChange
}

func (d *differ) walk(node SchemaNode, oldValue, newValue any, path Path) {
	switch n := node.(type) {
	case *Primitive:
		d.leaf(node, oldValue, newValue, path)
	case *Enum:
		d.leaf(node, oldValue, newValue, path)
	case *Array:
		oldItems, _ := oldValue.([]any)
		newItems, _ := newValue.([]any)
		max := len(oldItems)
		if len(newItems) > max {
			max = len(newItems)
		}
		for i := 0; i < max; i++ {
			var o, w any
			if i < len(oldItems) {
				o = oldItems[i]
			}
			if i < len(newItems) {
				w = newItems[i]
			}
			d.walk(n.Item, o, w, path.Index(i))
		}
	case *Object:
		d.object(n, oldValue, newValue, path)
	case *Union:
		variant := n.SelectVariant(newValue)
		if _, ok := n.MatchVariant(newValue); !ok {
			variant = n.SelectVariant(oldValue)
		}
		d.object(&variant.Object, oldValue, newValue, path)
	}
}

func (d *differ) object(n *Object, oldValue, newValue any, path Path) {
	oldMap, _ := oldValue.(map[string]any)
	newMap, _ := newValue.(map[string]any)
	for _, f := range n.Fields {
		if f.Name == DescriptionKey {
			continue
		}
		o, oldPresent := oldMap[f.Name]
		w, newPresent := newMap[f.Name]
		if !oldPresent && !newPresent {
			continue
		}
		d.walk(f.Schema, o, w, path.Field(f.Name))
	}
}

func (d *differ) leaf(node SchemaNode, oldValue, newValue any, path Path) {
	if leafEqual(oldValue, newValue) {
		return
	}
	label := NodeLabel(node)
	if label == "" {
		if last, ok := path.Last(); ok && !last.IsIndex() {
			label = Humanize(last.FieldName())
		}
	}
	d.changes = append(d.changes, AuditChange{
		Label:    label,
		Path:     path.String(),
		OldValue: displayValue(node, oldValue),
		NewValue: displayValue(node, newValue),
	})
}

// leafEqual is strict equality over scalars. Int/float representations of the
// same number compare equal because values may arrive from either JSON
// decoding or Go literals.
func leafEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// displayValue maps a stored value to its display form: enum values become
// their option labels, everything else passes through. An absent value stays
// nil.
func displayValue(node SchemaNode, value any) any {
	if value == nil {
		return nil
	}
	if e, ok := node.(*Enum); ok {
		if s, ok := value.(string); ok {
			if label, ok := e.OptionLabel(s); ok {
				return label
			}
		}
	}
	return value
}
