package fieldflow

// Resolve walks the schema tree along path and returns the node it addresses.
// value is optional; when supplied it steers union resolution (discriminator
// match) and array indexing. Resolution rules:
//
//   - Union: select the variant whose discriminator matches the value at this
//     position, defaulting to Variants[0] when no value is available or no
//     variant matches. Union resolution consumes no path segment.
//   - Array: an index segment moves into the item schema, indexing the value
//     when one is present.
//   - Object: a field segment must name a declared field.
//   - Primitive/Enum: accept no further segments.
//
// A segment that cannot be matched fails with *PathResolutionError.
func Resolve(schema SchemaNode, path Path, value any) (SchemaNode, error) {
	node := schema
	cur := value
	for i := 0; i < len(path); i++ {
		seg := path[i]
		if u, ok := node.(*Union); ok {
			node = &u.SelectVariant(cur).Object
		}
		switch n := node.(type) {
		case *Object:
			if seg.IsIndex() {
				return nil, &PathResolutionError{Path: path, Segment: seg.String(), Node: n.Kind()}
			}
			fs, ok := n.FieldSchema(seg.FieldName())
			if !ok {
				return nil, &PathResolutionError{Path: path, Segment: seg.String(), Node: n.Kind()}
			}
			node = fs
			cur = childValue(cur, seg)
		case *Array:
			if !seg.IsIndex() {
				return nil, &PathResolutionError{Path: path, Segment: seg.String(), Node: n.Kind()}
			}
			node = n.Item
			cur = childValue(cur, seg)
		default:
			return nil, &PathResolutionError{Path: path, Segment: seg.String(), Node: node.Kind()}
		}
	}
	return node, nil
}

// childValue steps a value along one segment, returning nil when the value
// does not carry the child.
func childValue(value any, seg Segment) any {
	if value == nil {
		return nil
	}
	if seg.IsIndex() {
		arr, ok := value.([]any)
		if !ok {
			return nil
		}
		i := seg.ArrayIndex()
		if i < 0 || i >= len(arr) {
			return nil
		}
		return arr[i]
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[seg.FieldName()]
}
