package fieldflow

import "strings"

// NodeLabel returns the display label declared on a node, or "" when the node
// has none.
func NodeLabel(node SchemaNode) string {
	switch n := node.(type) {
	case *Primitive:
		return n.Label
	case *Enum:
		return n.Label
	case *Array:
		return n.Label
	case *Object:
		return n.Label
	case *UnionVariant:
		return n.Object.Label
	case *Union:
		return n.Label
	}
	return ""
}

// Humanize turns a snake_case field name into a display label:
// "first_name" -> "First Name".
func Humanize(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// labelFor resolves the display label for an error at path. It tries full
// root-schema resolution first, then the final segment against the enclosing
// node the walker passed down (a union variant's fields are not all reachable
// from the root's static view), and finally degrades to the humanized raw
// segment text. It never fails.
func labelFor(root SchemaNode, path Path, enclosing SchemaNode) string {
	if node, err := Resolve(root, path, nil); err == nil {
		if l := NodeLabel(node); l != "" {
			return l
		}
	}
	last, ok := path.Last()
	if !ok {
		return NodeLabel(root)
	}
	if enclosing != nil && !last.IsIndex() {
		if node, err := Resolve(enclosing, Path{last}, nil); err == nil {
			if l := NodeLabel(node); l != "" {
				return l
			}
		}
	}
	if last.IsIndex() {
		return last.String()
	}
	return Humanize(last.FieldName())
}
