package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arborcrm/fieldflow/completion"
)

type sectionsDoc struct {
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	ID     string           `yaml:"id"`
	Fields []requirementDoc `yaml:"fields"`
}

type requirementDoc struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// LoadSections parses the master section-requirement catalog. Path
// expressions are parsed once here; a malformed expression fails the load
// rather than surfacing at check time.
func LoadSections(data []byte) (completion.Catalog, error) {
	var doc sectionsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return completion.Catalog{}, fmt.Errorf("catalog: sections document: %w", err)
	}
	var out completion.Catalog
	for _, sd := range doc.Sections {
		if sd.ID == "" {
			return completion.Catalog{}, fmt.Errorf("catalog: section with no id")
		}
		section := completion.Section{ID: sd.ID}
		for _, rd := range sd.Fields {
			if rd.ID == "" {
				return completion.Catalog{}, fmt.Errorf("catalog: section %q: field with no id", sd.ID)
			}
			expr, err := completion.ParseExpr(rd.Path)
			if err != nil {
				return completion.Catalog{}, fmt.Errorf("catalog: section %q field %q: %w", sd.ID, rd.ID, err)
			}
			section.Fields = append(section.Fields, completion.FieldRequirement{FieldID: rd.ID, Expr: expr})
		}
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}

// LoadSectionsFile reads and parses a section catalog file.
func LoadSectionsFile(path string) (completion.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return completion.Catalog{}, err
	}
	return LoadSections(data)
}

type groupDoc struct {
	Sections []groupSectionDoc `yaml:"sections"`
}

type groupSectionDoc struct {
	ID            string   `yaml:"id"`
	EnabledFields []string `yaml:"enabled_fields"`
}

// LoadGroupConfig parses one tenant group's per-section configuration.
func LoadGroupConfig(data []byte) (completion.GroupConfig, error) {
	var doc groupDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return completion.GroupConfig{}, fmt.Errorf("catalog: group document: %w", err)
	}
	var out completion.GroupConfig
	for _, sd := range doc.Sections {
		if sd.ID == "" {
			return completion.GroupConfig{}, fmt.Errorf("catalog: group section with no id")
		}
		out.Sections = append(out.Sections, completion.SectionConfig{
			SectionID:       sd.ID,
			EnabledFieldIDs: sd.EnabledFields,
		})
	}
	return out, nil
}

// LoadGroupConfigFile reads and parses a group configuration file.
func LoadGroupConfigFile(path string) (completion.GroupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return completion.GroupConfig{}, err
	}
	return LoadGroupConfig(data)
}
