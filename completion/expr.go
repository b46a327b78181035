// Package completion resolves per-tenant "is this form section complete"
// checks. A master catalog maps field ids to path expressions over the schema
// tree; each tenant group enables a subset of field ids per section. Checking
// walks the expressions against the schema and the actual data simultaneously
// and reports every required field that is still missing.
package completion

import (
	"fmt"
	"strconv"
	"strings"
)

type segKind int

const (
	segField    segKind = iota
	segAllItems         // "[]": every present item of an array
	segIndex            // "[n]": a fixed array index
)

type exprSeg struct {
	kind  segKind
	field string
	index int
}

// Expr is a parsed path expression such as "addresses[].address.street".
// Expressions are parsed once at catalog-load time, not per check call.
type Expr struct {
	raw  string
	segs []exprSeg
}

// String returns the original expression text.
func (e Expr) String() string { return e.raw }

// ParseExpr parses a dot-separated path expression. "[]" expands to every
// item of an array, "[n]" addresses a fixed index, anything else is a field
// name: "addresses[].street", "settings[0].key", "first_name".
func ParseExpr(s string) (Expr, error) {
	if s == "" {
		return Expr{}, fmt.Errorf("completion: empty path expression")
	}
	e := Expr{raw: s}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return Expr{}, fmt.Errorf("completion: empty segment in expression %q", s)
		}
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				e.segs = append(e.segs, exprSeg{kind: segField, field: part})
				break
			}
			if open > 0 {
				e.segs = append(e.segs, exprSeg{kind: segField, field: part[:open]})
			}
			closeIdx := strings.IndexByte(part, ']')
			if closeIdx < open {
				return Expr{}, fmt.Errorf("completion: unbalanced brackets in expression %q", s)
			}
			inner := part[open+1 : closeIdx]
			if inner == "" {
				e.segs = append(e.segs, exprSeg{kind: segAllItems})
			} else {
				idx, err := strconv.Atoi(inner)
				if err != nil || idx < 0 {
					return Expr{}, fmt.Errorf("completion: invalid array index in expression %q", s)
				}
				e.segs = append(e.segs, exprSeg{kind: segIndex, index: idx})
			}
			part = part[closeIdx+1:]
		}
	}
	return e, nil
}

// MustParseExpr is ParseExpr for statically known expressions; it panics on
// malformed input.
func MustParseExpr(s string) Expr {
	e, err := ParseExpr(s)
	if err != nil {
		panic(err)
	}
	return e
}
