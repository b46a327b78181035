package fieldflow

// DescriptionKey is the reserved key Summarize results are stored under.
// The audit diff generator skips it.
const DescriptionKey = "description"

// ApplyComputed walks value bottom-up and applies the derivation functions
// attached to Object and Union nodes. Children are recomputed first, then the
// node's own Compute output is shallow-merged over the value, overwriting any
// client-supplied keys: client input for computed fields is always discarded.
// Summarize runs last so it can reference freshly computed sibling fields.
//
// The input is never mutated; the returned value shares only leaves with it.
// ApplyComputed is total: values that do not match the schema shape pass
// through unchanged.
func ApplyComputed(schema SchemaNode, value any) any {
	switch n := schema.(type) {
	case *Array:
		items, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = ApplyComputed(n.Item, item)
		}
		return out
	case *Object:
		return applyObject(n, value)
	case *Union:
		m, ok := value.(map[string]any)
		if !ok {
			return value
		}
		return applyObject(&n.SelectVariant(m).Object, m)
	default:
		return value
	}
}

func applyObject(n *Object, value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, f := range n.Fields {
		if isComputed(f.Schema) {
			// Derived only by this node's Compute; any client value is dropped.
			delete(out, f.Name)
			continue
		}
		if child, present := m[f.Name]; present {
			out[f.Name] = ApplyComputed(f.Schema, child)
		}
	}
	if n.Compute != nil {
		for k, v := range n.Compute(out) {
			out[k] = v
		}
	}
	if n.Summarize != nil {
		out[DescriptionKey] = n.Summarize(out)
	}
	return out
}
