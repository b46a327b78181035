// Package catalog loads schema trees, section-requirement catalogs, and
// tenant group configuration from declarative documents. Schema and catalog
// definitions are YAML; value documents are JSON. Loading happens once at
// startup: everything returned is immutable afterwards.
package catalog

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	fieldflow "github.com/arborcrm/fieldflow"
)

// nodeDoc is the YAML shape of one schema node. Which fields apply depends on
// kind; LoadSchema rejects documents that mix vocabularies.
type nodeDoc struct {
	Kind     string       `yaml:"kind"` // string|number|boolean|date|datetime|enum|array|object|union
	Label    string       `yaml:"label"`
	Computed bool         `yaml:"computed"`
	Rules    *rulesDoc    `yaml:"rules"`
	Options  []optionDoc  `yaml:"options"`  // enum
	Item     *nodeDoc     `yaml:"item"`     // array
	Fields   []fieldDoc   `yaml:"fields"`   // object
	Variants []variantDoc `yaml:"variants"` // union
}

type optionDoc struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type fieldDoc struct {
	Name   string  `yaml:"name"`
	Schema nodeDoc `yaml:"schema"`
}

type variantDoc struct {
	Discriminator discriminatorDoc `yaml:"discriminator"`
	Label         string           `yaml:"label"`
	Rules         *rulesDoc        `yaml:"rules"`
	Fields        []fieldDoc       `yaml:"fields"`
}

type discriminatorDoc struct {
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
}

type rulesDoc struct {
	Required    bool     `yaml:"required"`
	MinLength   *int     `yaml:"min_length"`
	MaxLength   *int     `yaml:"max_length"`
	Pattern     string   `yaml:"pattern"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	MinDate     string   `yaml:"min_date"`
	MaxDate     string   `yaml:"max_date"`
	AllowFuture bool     `yaml:"allow_future"`
}

// LoadSchema parses a YAML schema definition document into a schema tree.
// Derivation functions cannot be expressed in YAML; attach them to the
// returned nodes programmatically before first use.
func LoadSchema(data []byte) (fieldflow.SchemaNode, error) {
	var doc nodeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: schema document: %w", err)
	}
	return buildNode(doc, "$")
}

// LoadSchemaFile reads and parses a YAML schema definition file.
func LoadSchemaFile(path string) (fieldflow.SchemaNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSchema(data)
}

func buildNode(doc nodeDoc, at string) (fieldflow.SchemaNode, error) {
	rules, err := buildRules(doc.Rules, at)
	if err != nil {
		return nil, err
	}
	switch doc.Kind {
	case "string", "number", "boolean", "date", "datetime":
		return &fieldflow.Primitive{
			Type:     primitiveType(doc.Kind),
			Label:    doc.Label,
			Rules:    rules,
			Computed: doc.Computed,
		}, nil
	case "enum":
		if len(doc.Options) == 0 {
			return nil, fmt.Errorf("catalog: enum at %s has no options", at)
		}
		e := &fieldflow.Enum{Label: doc.Label, Rules: rules}
		for _, o := range doc.Options {
			e.Options = append(e.Options, fieldflow.EnumOption{Value: o.Value, Label: o.Label})
		}
		return e, nil
	case "array":
		if doc.Item == nil {
			return nil, fmt.Errorf("catalog: array at %s has no item schema", at)
		}
		item, err := buildNode(*doc.Item, at+".item")
		if err != nil {
			return nil, err
		}
		return &fieldflow.Array{Item: item, Label: doc.Label, Rules: rules}, nil
	case "object":
		obj, err := buildObject(doc.Fields, doc.Label, rules, at)
		if err != nil {
			return nil, err
		}
		return obj, nil
	case "union":
		if len(doc.Variants) == 0 {
			return nil, fmt.Errorf("catalog: union at %s has no variants", at)
		}
		u := &fieldflow.Union{Label: doc.Label, Rules: rules}
		for i, vd := range doc.Variants {
			vat := fmt.Sprintf("%s.variants[%d]", at, i)
			vrules, err := buildRules(vd.Rules, vat)
			if err != nil {
				return nil, err
			}
			body, err := buildObject(vd.Fields, vd.Label, vrules, vat)
			if err != nil {
				return nil, err
			}
			if vd.Discriminator.Field == "" {
				return nil, fmt.Errorf("catalog: variant at %s has no discriminator field", vat)
			}
			if _, ok := body.FieldSchema(vd.Discriminator.Field); !ok {
				return nil, fmt.Errorf("catalog: discriminator field %q at %s is not declared by the variant", vd.Discriminator.Field, vat)
			}
			u.Variants = append(u.Variants, &fieldflow.UnionVariant{
				Object:             *body,
				DiscriminatorField: vd.Discriminator.Field,
				DiscriminatorValue: vd.Discriminator.Value,
			})
		}
		return u, nil
	case "":
		return nil, fmt.Errorf("catalog: node at %s has no kind", at)
	default:
		return nil, fmt.Errorf("catalog: unknown node kind %q at %s", doc.Kind, at)
	}
}

func buildObject(fields []fieldDoc, label string, rules *fieldflow.Rules, at string) (*fieldflow.Object, error) {
	obj := &fieldflow.Object{Label: label, Rules: rules}
	seen := map[string]bool{}
	for _, fd := range fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("catalog: unnamed field at %s", at)
		}
		if seen[fd.Name] {
			return nil, fmt.Errorf("catalog: duplicate field %q at %s", fd.Name, at)
		}
		seen[fd.Name] = true
		fs, err := buildNode(fd.Schema, at+"."+fd.Name)
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, fieldflow.Field{Name: fd.Name, Schema: fs})
	}
	return obj, nil
}

func buildRules(doc *rulesDoc, at string) (*fieldflow.Rules, error) {
	if doc == nil {
		return nil, nil
	}
	r := &fieldflow.Rules{
		Required:    doc.Required,
		MinLength:   doc.MinLength,
		MaxLength:   doc.MaxLength,
		Min:         doc.Min,
		Max:         doc.Max,
		MinDate:     doc.MinDate,
		MaxDate:     doc.MaxDate,
		AllowFuture: doc.AllowFuture,
	}
	if doc.Pattern != "" {
		re, err := regexp.Compile(doc.Pattern)
		if err != nil {
			return nil, fmt.Errorf("catalog: invalid pattern at %s: %w", at, err)
		}
		r.Pattern = re
	}
	return r, nil
}

func primitiveType(kind string) fieldflow.PrimitiveType {
	switch kind {
	case "number":
		return fieldflow.TypeNumber
	case "boolean":
		return fieldflow.TypeBoolean
	case "date":
		return fieldflow.TypeDate
	case "datetime":
		return fieldflow.TypeDateTime
	default:
		return fieldflow.TypeString
	}
}
