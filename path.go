package fieldflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a field name or a non-negative array
// index. Construct segments with FieldSeg and IndexSeg.
type Segment struct {
	field string
	index int
}

// FieldSeg returns a field-name segment.
func FieldSeg(name string) Segment { return Segment{field: name, index: -1} }

// IndexSeg returns an array-index segment. i must be non-negative.
func IndexSeg(i int) Segment { return Segment{index: i} }

// IsIndex reports whether the segment is an array index.
func (s Segment) IsIndex() bool { return s.index >= 0 }

// FieldName returns the field name of a field segment, or "" for an index.
func (s Segment) FieldName() string { return s.field }

// ArrayIndex returns the index of an index segment, or -1 for a field.
func (s Segment) ArrayIndex() int {
	if s.field != "" {
		return -1
	}
	return s.index
}

// String renders a field segment as its name and an index segment as "[i]".
func (s Segment) String() string {
	if s.IsIndex() {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.field
}

// Path is an ordered sequence of segments addressing a location in a value
// tree. The zero value is the root. Field and Index are chain-safe: they
// return a fresh Path and never alias the receiver's backing array.
type Path []Segment

// Field appends a field-name segment.
func (p Path) Field(name string) Path {
	return append(append(Path{}, p...), FieldSeg(name))
}

// Index appends an array-index segment.
func (p Path) Index(i int) Path {
	return append(append(Path{}, p...), IndexSeg(i))
}

// Last returns the final segment, or ok=false for the root path.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// String renders the path in dot/bracket form: "addresses.[0].postcode".
// The root path renders as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// ParsePath parses the dot/bracket form back into a Path. Both "a.[0].b" and
// the compact "a[0].b" are accepted.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var p Path
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return nil, fmt.Errorf("fieldflow: empty segment in path %q", s)
		}
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				p = append(p, FieldSeg(part))
				break
			}
			if open > 0 {
				p = append(p, FieldSeg(part[:open]))
			}
			closeIdx := strings.IndexByte(part, ']')
			if closeIdx < open {
				return nil, fmt.Errorf("fieldflow: unbalanced brackets in path %q", s)
			}
			idx, err := strconv.Atoi(part[open+1 : closeIdx])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("fieldflow: invalid array index in path %q", s)
			}
			p = append(p, IndexSeg(idx))
			part = part[closeIdx+1:]
		}
	}
	return p, nil
}
