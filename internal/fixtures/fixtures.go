// Package fixtures defines the concrete schema trees and catalogs used by
// tests across the module: a client record with an address union, a tenant
// group record, and the section catalog over them. Production schemas are
// data fed into the engine; these are the reference shapes the engine is
// exercised against.
package fixtures

import (
	"regexp"
	"strings"

	fieldflow "github.com/arborcrm/fieldflow"
	"github.com/arborcrm/fieldflow/completion"
)

var ukPostcode = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9][A-Za-z0-9]? ?[0-9][A-Za-z]{2}$`)

// AddressSchema returns the address union: a UK variant and an overseas
// variant, discriminated by is_uk. Both variants derive formatted_address.
func AddressSchema() *fieldflow.Union {
	uk := &fieldflow.UnionVariant{
		Object: fieldflow.Object{
			Label: "UK Address",
			Fields: []fieldflow.Field{
				{Name: "is_uk", Schema: &fieldflow.Primitive{Type: fieldflow.TypeBoolean, Label: "UK Address", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "street", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Street", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "town", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Town", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "postcode", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Postcode", Rules: &fieldflow.Rules{Required: true, Pattern: ukPostcode}}},
				{Name: "formatted_address", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Formatted Address", Computed: true}},
			},
			Compute: formatAddress("street", "town", "postcode"),
		},
		DiscriminatorField: "is_uk",
		DiscriminatorValue: true,
	}
	overseas := &fieldflow.UnionVariant{
		Object: fieldflow.Object{
			Label: "Overseas Address",
			Fields: []fieldflow.Field{
				{Name: "is_uk", Schema: &fieldflow.Primitive{Type: fieldflow.TypeBoolean, Label: "UK Address", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "address_line_1", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Address Line 1", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "city", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "City", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "country", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Country", Rules: &fieldflow.Rules{Required: true}}},
				{Name: "formatted_address", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Formatted Address", Computed: true}},
			},
			Compute: formatAddress("address_line_1", "city", "country"),
		},
		DiscriminatorField: "is_uk",
		DiscriminatorValue: false,
	}
	return &fieldflow.Union{Label: "Address", Variants: []*fieldflow.UnionVariant{uk, overseas}}
}

// formatAddress derives formatted_address by joining the non-empty parts.
func formatAddress(parts ...string) fieldflow.ComputeFunc {
	return func(value map[string]any) map[string]any {
		var out []string
		for _, name := range parts {
			if s, ok := value[name].(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return map[string]any{"formatted_address": strings.Join(out, ", ")}
	}
}

// ClientSchema returns the client record schema: personal details, an
// employment enum, a date of birth that must not be in the future, and a
// list of addresses. The summary description is the client's full name.
func ClientSchema() *fieldflow.Object {
	maxName := 50
	return &fieldflow.Object{
		Label: "Client",
		Fields: []fieldflow.Field{
			{Name: "title", Schema: &fieldflow.Enum{
				Label: "Title",
				Options: []fieldflow.EnumOption{
					{Value: "mr", Label: "Mr"},
					{Value: "mrs", Label: "Mrs"},
					{Value: "ms", Label: "Ms"},
					{Value: "dr", Label: "Dr"},
				},
			}},
			{Name: "first_name", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "First Name", Rules: &fieldflow.Rules{Required: true, MaxLength: &maxName}}},
			{Name: "last_name", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Last Name", Rules: &fieldflow.Rules{Required: true, MaxLength: &maxName}}},
			{Name: "email", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Email", Rules: &fieldflow.Rules{Pattern: regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)}}},
			{Name: "date_of_birth", Schema: &fieldflow.Primitive{Type: fieldflow.TypeDate, Label: "Date of Birth", Rules: &fieldflow.Rules{Required: true}}},
			{Name: "next_review", Schema: &fieldflow.Primitive{Type: fieldflow.TypeDate, Label: "Next Review", Rules: &fieldflow.Rules{AllowFuture: true}}},
			{Name: "employment_status", Schema: &fieldflow.Enum{
				Label: "Employment Status",
				Options: []fieldflow.EnumOption{
					{Value: "employed", Label: "Employed"},
					{Value: "self_employed", Label: "Self Employed"},
					{Value: "retired", Label: "Retired"},
					{Value: "other", Label: "Other"},
				},
			}},
			{Name: "annual_income", Schema: &fieldflow.Primitive{Type: fieldflow.TypeNumber, Label: "Annual Income", Rules: &fieldflow.Rules{Min: float64Ptr(0)}}},
			{Name: "addresses", Schema: &fieldflow.Array{Item: AddressSchema(), Label: "Addresses"}},
		},
		Summarize: func(value map[string]any) string {
			first, _ := value["first_name"].(string)
			last, _ := value["last_name"].(string)
			return strings.TrimSpace(first + " " + last)
		},
	}
}

// GroupSchema returns the tenant group record schema.
func GroupSchema() *fieldflow.Object {
	return &fieldflow.Object{
		Label: "Group",
		Fields: []fieldflow.Field{
			{Name: "name", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Name", Rules: &fieldflow.Rules{Required: true}}},
			{Name: "settings", Schema: &fieldflow.Array{
				Label: "Settings",
				Item: &fieldflow.Object{
					Label: "Setting",
					Fields: []fieldflow.Field{
						{Name: "key", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Key", Rules: &fieldflow.Rules{Required: true}}},
						{Name: "value", Schema: &fieldflow.Primitive{Type: fieldflow.TypeString, Label: "Value"}},
					},
				},
			}},
		},
	}
}

// SectionCatalog returns the master section catalog over the client schema.
func SectionCatalog() completion.Catalog {
	return completion.Catalog{
		Sections: []completion.Section{
			{
				ID: "personal_details",
				Fields: []completion.FieldRequirement{
					{FieldID: "client_first_name", Expr: completion.MustParseExpr("first_name")},
					{FieldID: "client_last_name", Expr: completion.MustParseExpr("last_name")},
					{FieldID: "client_date_of_birth", Expr: completion.MustParseExpr("date_of_birth")},
				},
			},
			{
				ID: "addresses",
				Fields: []completion.FieldRequirement{
					{FieldID: "address_street", Expr: completion.MustParseExpr("addresses[].street")},
					{FieldID: "address_town", Expr: completion.MustParseExpr("addresses[].town")},
					{FieldID: "address_postcode", Expr: completion.MustParseExpr("addresses[].postcode")},
				},
			},
		},
	}
}

func float64Ptr(f float64) *float64 { return &f }
