package completion_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arborcrm/fieldflow/completion"
	"github.com/arborcrm/fieldflow/internal/fixtures"
)

func newChecker() *completion.Checker {
	return completion.NewChecker(fixtures.ClientSchema(), fixtures.SectionCatalog(), zerolog.Nop())
}

func addressGroup(fieldIDs ...string) completion.GroupConfig {
	return completion.GroupConfig{Sections: []completion.SectionConfig{
		{SectionID: "addresses", EnabledFieldIDs: fieldIDs},
	}}
}

func TestCheck_ZeroEnabledFieldsIsComplete(t *testing.T) {
	c := newChecker()
	res := c.Check(map[string]any{}, addressGroup(), "addresses")
	if !res.Complete || len(res.Missing) != 0 {
		t.Fatalf("zero enabled fields must be complete: %+v", res)
	}
	if res.Missing == nil {
		t.Fatalf("missing list must be empty, not nil")
	}
}

func TestCheck_SectionAbsentFromGroupIsComplete(t *testing.T) {
	c := newChecker()
	res := c.Check(map[string]any{}, completion.GroupConfig{}, "addresses")
	if !res.Complete || len(res.Missing) != 0 {
		t.Fatalf("absent section must be complete: %+v", res)
	}
}

func TestCheck_EmptyArrayIsVacuouslyComplete(t *testing.T) {
	c := newChecker()
	data := map[string]any{"addresses": []any{}}
	res := c.Check(data, addressGroup("address_street", "address_town", "address_postcode"), "addresses")
	if !res.Complete || len(res.Missing) != 0 {
		t.Fatalf("empty array must be vacuously complete: %+v", res)
	}
}

func TestCheck_AbsentArraySurfacesPlaceholder(t *testing.T) {
	c := newChecker()
	res := c.Check(map[string]any{}, addressGroup("address_street"), "addresses")
	if res.Complete || len(res.Missing) != 1 {
		t.Fatalf("absent array must surface one placeholder: %+v", res)
	}
	m := res.Missing[0]
	if m.Path != "addresses.[0].street" || m.FieldLabel != "Street" {
		t.Fatalf("unexpected placeholder entry: %+v", m)
	}
}

// Scenario: three addresses, the first missing its town, the second missing
// its postcode, the third complete.
func TestCheck_ThreeAddresses(t *testing.T) {
	c := newChecker()
	data := map[string]any{
		"addresses": []any{
			map[string]any{"is_uk": true, "street": "1 A Road", "postcode": "AB1 2CD"},
			map[string]any{"is_uk": true, "street": "2 B Road", "town": "Leeds"},
			map[string]any{"is_uk": true, "street": "3 C Road", "town": "York", "postcode": "YO1 7HH"},
		},
	}
	res := c.Check(data, addressGroup("address_town", "address_postcode"), "addresses")
	if res.Complete || len(res.Missing) != 2 {
		t.Fatalf("expected exactly 2 missing fields: %+v", res)
	}
	var sawTown0, sawPostcode1 bool
	for _, m := range res.Missing {
		switch {
		case strings.Contains(m.Path, "[0]") && strings.HasSuffix(m.Path, "town"):
			sawTown0 = true
		case strings.Contains(m.Path, "[1]") && strings.HasSuffix(m.Path, "postcode"):
			sawPostcode1 = true
		}
	}
	if !sawTown0 || !sawPostcode1 {
		t.Fatalf("missing entries do not match scenario: %+v", res.Missing)
	}
}

func TestCheck_AllItemsChecksEveryItem(t *testing.T) {
	c := newChecker()
	data := map[string]any{
		"addresses": []any{
			map[string]any{"is_uk": true, "street": "1 A Road", "town": "Leeds", "postcode": "AB1 2CD"},
			map[string]any{"is_uk": true},
			map[string]any{"is_uk": true},
		},
	}
	res := c.Check(data, addressGroup("address_town"), "addresses")
	if len(res.Missing) != 2 {
		t.Fatalf("expected town missing on items 1 and 2: %+v", res)
	}
}

func TestCheck_EmptyStringCountsAsMissing(t *testing.T) {
	c := newChecker()
	group := completion.GroupConfig{Sections: []completion.SectionConfig{
		{SectionID: "personal_details", EnabledFieldIDs: []string{"client_first_name", "client_last_name"}},
	}}
	data := map[string]any{"first_name": "", "last_name": "Lovelace"}
	res := c.Check(data, group, "personal_details")
	if res.Complete || len(res.Missing) != 1 {
		t.Fatalf("empty string must count as missing: %+v", res)
	}
	if res.Missing[0].Path != "first_name" || res.Missing[0].FieldLabel != "First Name" {
		t.Fatalf("unexpected entry: %+v", res.Missing[0])
	}
}

// A stale catalog entry must not fail the check; it degrades to no paths.
func TestCheck_StaleCatalogPathDegrades(t *testing.T) {
	catalog := completion.Catalog{Sections: []completion.Section{
		{
			ID: "broken",
			Fields: []completion.FieldRequirement{
				{FieldID: "gone", Expr: completion.MustParseExpr("no_such_field.child")},
				{FieldID: "present", Expr: completion.MustParseExpr("first_name")},
			},
		},
	}}
	var buf strings.Builder
	logger := zerolog.New(&buf)
	c := completion.NewChecker(fixtures.ClientSchema(), catalog, logger)
	group := completion.GroupConfig{Sections: []completion.SectionConfig{
		{SectionID: "broken", EnabledFieldIDs: []string{"gone", "present"}},
	}}
	res := c.Check(map[string]any{"first_name": "Ada"}, group, "broken")
	if !res.Complete {
		t.Fatalf("stale path must not produce missing entries: %+v", res)
	}
	if !strings.Contains(buf.String(), "no_such_field") {
		t.Fatalf("degraded resolution should be logged, got %q", buf.String())
	}
}

func TestCheck_UnionVariantSelectedByData(t *testing.T) {
	catalog := completion.Catalog{Sections: []completion.Section{
		{
			ID: "overseas",
			Fields: []completion.FieldRequirement{
				{FieldID: "country", Expr: completion.MustParseExpr("addresses[].country")},
			},
		},
	}}
	c := completion.NewChecker(fixtures.ClientSchema(), catalog, zerolog.Nop())
	group := completion.GroupConfig{Sections: []completion.SectionConfig{
		{SectionID: "overseas", EnabledFieldIDs: []string{"country"}},
	}}
	data := map[string]any{
		"addresses": []any{
			map[string]any{"is_uk": false, "address_line_1": "1 Rue de Rivoli", "city": "Paris"},
		},
	}
	res := c.Check(data, group, "overseas")
	if res.Complete || len(res.Missing) != 1 {
		t.Fatalf("country should be missing on the overseas variant: %+v", res)
	}
	if res.Missing[0].FieldLabel != "Country" {
		t.Fatalf("unexpected label: %+v", res.Missing[0])
	}
}
