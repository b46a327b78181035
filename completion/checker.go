package completion

import (
	"github.com/rs/zerolog"

	fieldflow "github.com/arborcrm/fieldflow"
)

// FieldRequirement maps a stable field id to the path expression locating the
// field in a data instance. Requirements are defined once in the master
// catalog, independent of any one tenant.
type FieldRequirement struct {
	FieldID string
	Expr    Expr
}

// Section is a named group of field requirements.
type Section struct {
	ID     string
	Fields []FieldRequirement
}

// Catalog is the master list of sections.
type Catalog struct {
	Sections []Section
}

// Section returns the section with the given id.
func (c Catalog) Section(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// SectionConfig is one tenant group's selection of enabled field ids for a
// section.
type SectionConfig struct {
	SectionID       string
	EnabledFieldIDs []string
}

// GroupConfig is a tenant group's per-section configuration. Sections absent
// from the config are treated as having no enabled fields.
type GroupConfig struct {
	Sections []SectionConfig
}

// EnabledFields returns the enabled field ids for a section, or nil.
func (g GroupConfig) EnabledFields(sectionID string) []string {
	for _, s := range g.Sections {
		if s.SectionID == sectionID {
			return s.EnabledFieldIDs
		}
	}
	return nil
}

// MissingField is one required field a data instance does not carry.
type MissingField struct {
	Path       string
	FieldLabel string
}

// Result reports a section completion check. Missing is never nil.
type Result struct {
	Complete bool
	Missing  []MissingField
}

// Checker evaluates section completion against one schema and catalog.
// A Checker is immutable and safe for concurrent use.
type Checker struct {
	schema  fieldflow.SchemaNode
	catalog Catalog
	logger  zerolog.Logger
}

// NewChecker builds a Checker. The logger receives a warning for every
// catalog path that cannot be resolved against the schema; stale catalog
// entries degrade to "no matching paths" rather than failing the check.
func NewChecker(schema fieldflow.SchemaNode, catalog Catalog, logger zerolog.Logger) *Checker {
	return &Checker{schema: schema, catalog: catalog, logger: logger}
}

// Check resolves every enabled field requirement of the section against data
// and reports the fields still missing. A section with no enabled fields, or
// absent from the group's configuration entirely, is complete by definition.
//
// "[]" segments expand to one concrete path per present array item; an absent
// array surfaces as a single missing placeholder at index 0, while a present
// but empty array is vacuously complete for that requirement.
func (c *Checker) Check(data map[string]any, group GroupConfig, sectionID string) Result {
	missing := []MissingField{}
	enabled := group.EnabledFields(sectionID)
	if len(enabled) == 0 {
		return Result{Complete: true, Missing: missing}
	}
	section, ok := c.catalog.Section(sectionID)
	if !ok {
		c.logger.Warn().Str("section", sectionID).Msg("section not present in catalog")
		return Result{Complete: true, Missing: missing}
	}
	for _, fieldID := range enabled {
		req, ok := requirement(section, fieldID)
		if !ok {
			c.logger.Warn().Str("section", sectionID).Str("field_id", fieldID).Msg("enabled field id not present in catalog section")
			continue
		}
		for _, rp := range c.expand(c.schema, data, req.Expr, req.Expr.segs, nil) {
			if value := fetch(data, rp.path); isMissing(value) {
				missing = append(missing, MissingField{Path: rp.path.String(), FieldLabel: rp.label()})
			}
		}
	}
	return Result{Complete: len(missing) == 0, Missing: missing}
}

func requirement(s Section, fieldID string) (FieldRequirement, bool) {
	for _, f := range s.Fields {
		if f.FieldID == fieldID {
			return f, true
		}
	}
	return FieldRequirement{}, false
}

// resolvedPath is one concrete path an expression expanded to, together with
// the schema node it addresses for label rendering.
type resolvedPath struct {
	path fieldflow.Path
	node fieldflow.SchemaNode
}

func (r resolvedPath) label() string {
	if l := fieldflow.NodeLabel(r.node); l != "" {
		return l
	}
	if last, ok := r.path.Last(); ok && !last.IsIndex() {
		return fieldflow.Humanize(last.FieldName())
	}
	return r.path.String()
}

// expand walks the expression against schema and data simultaneously. A
// segment that cannot be matched against the schema yields no paths: an
// invalid or stale catalog path is non-fatal, logged, and otherwise ignored.
func (c *Checker) expand(node fieldflow.SchemaNode, data any, expr Expr, segs []exprSeg, prefix fieldflow.Path) []resolvedPath {
	if u, ok := node.(*fieldflow.Union); ok {
		node = &u.SelectVariant(data).Object
	}
	if len(segs) == 0 {
		return []resolvedPath{{path: prefix, node: node}}
	}
	seg := segs[0]
	rest := segs[1:]
	switch seg.kind {
	case segField:
		obj, ok := node.(*fieldflow.Object)
		if !ok {
			return c.degrade(expr, seg.field, node)
		}
		fs, ok := obj.FieldSchema(seg.field)
		if !ok {
			return c.degrade(expr, seg.field, node)
		}
		var child any
		if m, ok := data.(map[string]any); ok {
			child = m[seg.field]
		}
		return c.expand(fs, child, expr, rest, prefix.Field(seg.field))
	case segAllItems:
		arr, ok := node.(*fieldflow.Array)
		if !ok {
			return c.degrade(expr, "[]", node)
		}
		items, isSlice := data.([]any)
		if !isSlice {
			// Absent array: one placeholder so the missing collection still
			// surfaces as a missing field.
			return c.expand(arr.Item, nil, expr, rest, prefix.Index(0))
		}
		var out []resolvedPath
		for i, item := range items {
			out = append(out, c.expand(arr.Item, item, expr, rest, prefix.Index(i))...)
		}
		return out
	default: // segIndex
		arr, ok := node.(*fieldflow.Array)
		if !ok {
			return c.degrade(expr, fieldflow.IndexSeg(seg.index).String(), node)
		}
		var item any
		if items, ok := data.([]any); ok && seg.index < len(items) {
			item = items[seg.index]
		}
		return c.expand(arr.Item, item, expr, rest, prefix.Index(seg.index))
	}
}

func (c *Checker) degrade(expr Expr, segment string, node fieldflow.SchemaNode) []resolvedPath {
	c.logger.Warn().
		Str("expression", expr.String()).
		Str("segment", segment).
		Str("node_kind", node.Kind().String()).
		Msg("catalog path does not resolve against schema")
	return nil
}

// fetch walks data along a concrete path, returning nil when any step is
// absent.
func fetch(data any, p fieldflow.Path) any {
	cur := data
	for _, seg := range p {
		if cur == nil {
			return nil
		}
		if seg.IsIndex() {
			arr, ok := cur.([]any)
			if !ok || seg.ArrayIndex() >= len(arr) {
				return nil
			}
			cur = arr[seg.ArrayIndex()]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg.FieldName()]
	}
	return cur
}

// isMissing classifies a fetched value: nil, empty string, empty array, and
// object with zero keys all count as missing.
func isMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
