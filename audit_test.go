package fieldflow_test

import (
	"reflect"
	"testing"

	fieldflow "github.com/arborcrm/fieldflow"
	"github.com/arborcrm/fieldflow/internal/fixtures"
)

func validGroup() map[string]any {
	return map[string]any{
		"name": "Old Name",
		"settings": []any{
			map[string]any{"key": "theme", "value": "light"},
		},
	}
}

func TestDiff_Reflexive(t *testing.T) {
	for _, doc := range []map[string]any{validGroup(), validClient()} {
		schema := fixtures.GroupSchema()
		if _, ok := doc["first_name"]; ok {
			schema = fixtures.ClientSchema()
		}
		if changes := fieldflow.Diff(schema, doc, doc); len(changes) != 0 {
			t.Fatalf("diff of identical values not empty: %v", changes)
		}
	}
}

func TestDiff_Antisymmetric(t *testing.T) {
	schema := fixtures.ClientSchema()
	a := validClient()
	b := validClient()
	b["first_name"] = "Grace"
	b["employment_status"] = "retired"

	fwd := fieldflow.Diff(schema, a, b)
	rev := fieldflow.Diff(schema, b, a)
	if len(fwd) != len(rev) || len(fwd) == 0 {
		t.Fatalf("asymmetric lengths: %v vs %v", fwd, rev)
	}
	for i := range fwd {
		wantRev := fieldflow.AuditChange{
			Label:    fwd[i].Label,
			Path:     fwd[i].Path,
			OldValue: fwd[i].NewValue,
			NewValue: fwd[i].OldValue,
		}
		if !reflect.DeepEqual(rev[i], wantRev) {
			t.Fatalf("entry %d not swapped: %+v vs %+v", i, fwd[i], rev[i])
		}
	}
}

// Scenario: two group values differing only in name produce exactly one
// change record.
func TestDiff_GroupNameChange(t *testing.T) {
	old := validGroup()
	updated := validGroup()
	updated["name"] = "New Name"
	changes := fieldflow.Diff(fixtures.GroupSchema(), old, updated)
	want := []fieldflow.AuditChange{
		{Label: "Name", Path: "name", OldValue: "Old Name", NewValue: "New Name"},
	}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("got %+v, want %+v", changes, want)
	}
}

// Scenario: settings growing from empty to one entry surfaces each new leaf
// with an absent old side.
func TestDiff_SettingsGrowFromEmpty(t *testing.T) {
	old := validGroup()
	old["settings"] = []any{}
	updated := validGroup()
	updated["settings"] = []any{map[string]any{"key": "theme", "value": "dark"}}

	changes := fieldflow.Diff(fixtures.GroupSchema(), old, updated)
	want := []fieldflow.AuditChange{
		{Label: "Key", Path: "settings.[0].key", OldValue: nil, NewValue: "theme"},
		{Label: "Value", Path: "settings.[0].value", OldValue: nil, NewValue: "dark"},
	}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("got %+v, want %+v", changes, want)
	}
}

func TestDiff_ArrayShrinkSurfacesRemovedSide(t *testing.T) {
	old := validGroup()
	updated := validGroup()
	updated["settings"] = []any{}
	changes := fieldflow.Diff(fixtures.GroupSchema(), old, updated)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes[0].NewValue != nil || changes[0].OldValue != "theme" {
		t.Fatalf("unexpected first change: %+v", changes[0])
	}
}

func TestDiff_EnumValuesDisplayAsLabels(t *testing.T) {
	a := validClient()
	b := validClient()
	b["employment_status"] = "self_employed"
	changes := fieldflow.Diff(fixtures.ClientSchema(), a, b)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %v", changes)
	}
	ch := changes[0]
	if ch.Label != "Employment Status" || ch.OldValue != "Employed" || ch.NewValue != "Self Employed" {
		t.Fatalf("enum labels not applied: %+v", ch)
	}
}

func TestDiff_UnionVariantChosenByNewValue(t *testing.T) {
	a := validClient()
	b := validClient()
	b["addresses"] = []any{map[string]any{
		"is_uk":          false,
		"address_line_1": "1 Rue de Rivoli",
		"city":           "Paris",
		"country":        "France",
	}}
	changes := fieldflow.Diff(fixtures.ClientSchema(), a, b)
	var paths []string
	for _, ch := range changes {
		paths = append(paths, ch.Path)
	}
	// The overseas variant shapes the comparison: its fields appear, and the
	// shared discriminator flip is recorded.
	wantSome := []string{"addresses.[0].is_uk", "addresses.[0].city"}
	for _, want := range wantSome {
		found := false
		for _, p := range paths {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected change at %s, got %v", want, paths)
		}
	}
}

func TestDiff_SkipsDescriptionKey(t *testing.T) {
	schema := &fieldflow.Object{
		Fields: []fieldflow.Field{
			{Name: "name", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Name"}},
			{Name: "description", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Computed: true}},
		},
	}
	a := map[string]any{"name": "x", "description": "one"}
	b := map[string]any{"name": "x", "description": "two"}
	if changes := fieldflow.Diff(schema, a, b); len(changes) != 0 {
		t.Fatalf("description must be skipped, got %v", changes)
	}
}
