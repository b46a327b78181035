package catalog_test

import (
	"strings"
	"testing"

	fieldflow "github.com/arborcrm/fieldflow"
	"github.com/arborcrm/fieldflow/catalog"
)

const clientYAML = `
kind: object
label: Client
fields:
  - name: first_name
    schema:
      kind: string
      label: First Name
      rules: {required: true, max_length: 50}
  - name: date_of_birth
    schema:
      kind: date
      label: Date of Birth
      rules: {required: true}
  - name: employment_status
    schema:
      kind: enum
      label: Employment Status
      options:
        - {value: employed, label: Employed}
        - {value: retired, label: Retired}
  - name: addresses
    schema:
      kind: array
      label: Addresses
      item:
        kind: union
        label: Address
        variants:
          - discriminator: {field: is_uk, value: true}
            label: UK Address
            fields:
              - name: is_uk
                schema: {kind: boolean, rules: {required: true}}
              - name: postcode
                schema:
                  kind: string
                  label: Postcode
                  rules: {required: true, pattern: "^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$"}
              - name: formatted_address
                schema: {kind: string, label: Formatted Address, computed: true}
          - discriminator: {field: is_uk, value: false}
            label: Overseas Address
            fields:
              - name: is_uk
                schema: {kind: boolean, rules: {required: true}}
              - name: country
                schema: {kind: string, label: Country, rules: {required: true}}
`

func TestLoadSchema(t *testing.T) {
	node, err := catalog.LoadSchema([]byte(clientYAML))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	obj, ok := node.(*fieldflow.Object)
	if !ok || obj.Label != "Client" {
		t.Fatalf("unexpected root: %#v", node)
	}

	errs := fieldflow.Validate(node, map[string]any{
		"first_name":    "",
		"date_of_birth": "1990-01-01",
		"addresses": []any{
			map[string]any{"is_uk": true, "postcode": "banana"},
		},
	})
	var paths []string
	for _, e := range errs {
		paths = append(paths, e.Path)
	}
	for _, want := range []string{"first_name", "addresses.[0].postcode"} {
		found := false
		for _, p := range paths {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected error at %s, got %v", want, paths)
		}
	}
}

func TestLoadSchema_EnumMembership(t *testing.T) {
	node, err := catalog.LoadSchema([]byte(clientYAML))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	errs := fieldflow.Validate(node, map[string]any{
		"first_name":        "Ada",
		"date_of_birth":     "1990-01-01",
		"employment_status": "astronaut",
	})
	found := false
	for _, e := range errs {
		if e.Path == "employment_status" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected enum membership error, got %v", errs)
	}
}

func TestLoadSchema_Rejections(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		frag string
	}{
		{"unknown kind", `{kind: widget}`, "unknown node kind"},
		{"missing kind", `{label: X}`, "no kind"},
		{"enum without options", `{kind: enum}`, "no options"},
		{"array without item", `{kind: array}`, "no item schema"},
		{"union without variants", `{kind: union}`, "no variants"},
		{"bad pattern", `{kind: string, rules: {pattern: "["}}`, "invalid pattern"},
		{
			"discriminator not declared",
			`
kind: union
variants:
  - discriminator: {field: type, value: a}
    fields:
      - name: other
        schema: {kind: string}
`,
			"not declared",
		},
	}
	for _, tc := range cases {
		_, err := catalog.LoadSchema([]byte(tc.yaml))
		if err == nil || !strings.Contains(err.Error(), tc.frag) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.frag, err)
		}
	}
}
