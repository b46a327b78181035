// Command fieldflow drives the schema engine from the command line: validate
// a value document against a schema, diff two documents, or run a section
// completion check for a tenant group. Schemas and catalogs are YAML, value
// documents are JSON.
package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	fieldflow "github.com/arborcrm/fieldflow"
	"github.com/arborcrm/fieldflow/catalog"
	"github.com/arborcrm/fieldflow/completion"
)

var logger zerolog.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "fieldflow",
	Short:         "Schema-driven CRM field engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	rootCmd.AddCommand(validateCmd, diffCmd, sectionsCmd)

	validateCmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema definition file")
	validateCmd.Flags().StringVar(&inPath, "in", "", "JSON value document")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")

	diffCmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema definition file")
	diffCmd.Flags().StringVar(&oldPath, "old", "", "JSON value document (before)")
	diffCmd.Flags().StringVar(&newPath, "new", "", "JSON value document (after)")
	_ = diffCmd.MarkFlagRequired("schema")
	_ = diffCmd.MarkFlagRequired("old")
	_ = diffCmd.MarkFlagRequired("new")

	sectionsCmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema definition file")
	sectionsCmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML section catalog file")
	sectionsCmd.Flags().StringVar(&groupPath, "group", "", "YAML tenant group configuration file")
	sectionsCmd.Flags().StringVar(&inPath, "in", "", "JSON value document")
	sectionsCmd.Flags().StringVar(&sectionID, "section", "", "section id to check")
	_ = sectionsCmd.MarkFlagRequired("schema")
	_ = sectionsCmd.MarkFlagRequired("catalog")
	_ = sectionsCmd.MarkFlagRequired("group")
	_ = sectionsCmd.MarkFlagRequired("in")
	_ = sectionsCmd.MarkFlagRequired("section")
}

var (
	schemaPath  string
	inPath      string
	oldPath     string
	newPath     string
	catalogPath string
	groupPath   string
	sectionID   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a value document and print it with computed fields applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := catalog.LoadSchemaFile(schemaPath)
		if err != nil {
			return err
		}
		doc, err := catalog.LoadValueFile(inPath)
		if err != nil {
			return err
		}
		res := fieldflow.ValidateObject(schema, doc)
		for _, e := range res.Errors {
			fmt.Printf("%s: %s %s\n", e.Path, e.FieldLabel, e.Message)
		}
		out, err := json.MarshalIndent(res.Value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if !res.IsValid {
			return fmt.Errorf("document is invalid (%d errors)", len(res.Errors))
		}
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Print the audit trail between two value documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := catalog.LoadSchemaFile(schemaPath)
		if err != nil {
			return err
		}
		oldDoc, err := catalog.LoadValueFile(oldPath)
		if err != nil {
			return err
		}
		newDoc, err := catalog.LoadValueFile(newPath)
		if err != nil {
			return err
		}
		for _, ch := range fieldflow.Diff(schema, oldDoc, newDoc) {
			fmt.Printf("%s (%s): %v -> %v\n", ch.Label, ch.Path, ch.OldValue, ch.NewValue)
		}
		return nil
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Run a section completion check for a tenant group",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := catalog.LoadSchemaFile(schemaPath)
		if err != nil {
			return err
		}
		sections, err := catalog.LoadSectionsFile(catalogPath)
		if err != nil {
			return err
		}
		group, err := catalog.LoadGroupConfigFile(groupPath)
		if err != nil {
			return err
		}
		doc, err := catalog.LoadValueFile(inPath)
		if err != nil {
			return err
		}
		checker := completion.NewChecker(schema, sections, logger)
		res := checker.Check(doc, group, sectionID)
		if res.Complete {
			fmt.Printf("section %s is complete\n", sectionID)
			return nil
		}
		for _, m := range res.Missing {
			fmt.Printf("missing %s (%s)\n", m.FieldLabel, m.Path)
		}
		return fmt.Errorf("section %s is incomplete (%d missing)", sectionID, len(res.Missing))
	},
}
