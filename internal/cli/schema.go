package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/ariel-frischer/folio/internal/validation"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Show the expected fields of a content type",
	Long: `Print the schema of a content type: every field with its type, whether it
is required, allowed values and a description. Without a type, list the
content types and where their files live.

Types: profile, skills, project, publication, experience, education.
Plural names (projects, publications) are accepted.`,
	Example: `  folio schema
  folio schema project
  folio schema skills`,
	GroupID: GroupContent,
	Args:    maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			printContentTypes(out)
			return nil
		}
		t, err := content.ParseType(args[0])
		if err != nil {
			return apperrors.InvalidContentType(args[0], content.ValidTypes())
		}
		return printSchema(t, out)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func printContentTypes(out io.Writer) {
	fmt.Fprintf(out, "Content types:\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 40))
	for _, layout := range content.Layouts {
		note := "optional"
		if layout.Required {
			note = "required"
		}
		fmt.Fprintf(out, "%-12s %-24s %s\n", layout.Type, layout.Pattern, note)
	}
	fmt.Fprintf(out, "\nRun 'folio schema <type>' for the fields of a type.\n")
}

// printSchema prints the schema of a content type.
func printSchema(t content.Type, out io.Writer) error {
	schema, err := validation.GetSchema(t)
	if err != nil {
		return fmt.Errorf("getting schema for %s: %w", t, err)
	}

	fmt.Fprintf(out, "Schema for %s files\n", t)
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", 40))
	fmt.Fprintf(out, "%s\n", schema.Description)
	if layout, ok := content.LayoutFor(t); ok {
		fmt.Fprintf(out, "Location: %s\n", layout.Pattern)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Fields:\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 40))

	for _, field := range schema.Fields {
		printSchemaField(field, "", out)
	}

	if schema.HasBody {
		fmt.Fprintf(out, "\nThe Markdown body after the front matter is rendered on the page.\n")
	}
	return nil
}

// printSchemaField prints a single schema field with indentation.
func printSchemaField(field validation.SchemaField, indent string, out io.Writer) {
	required := ""
	if field.Required {
		required = " (required)"
	}

	fmt.Fprintf(out, "%s%s: %s%s\n", indent, field.Name, fieldTypeString(field), required)

	if field.Description != "" {
		fmt.Fprintf(out, "%s  # %s\n", indent, field.Description)
	}

	for _, child := range field.Children {
		printSchemaField(child, indent+"  ", out)
	}
}

func fieldTypeString(field validation.SchemaField) string {
	var b strings.Builder
	switch {
	case len(field.Enum) > 0:
		fmt.Fprintf(&b, "enum[%s]", strings.Join(field.Enum, ", "))
	case field.Type == validation.FieldTypeArray && field.Items != "":
		fmt.Fprintf(&b, "array[%s]", field.Items)
	default:
		b.WriteString(string(field.Type))
	}

	switch {
	case field.Asset:
		b.WriteString(", asset path")
	case field.Format != validation.FormatNone:
		fmt.Fprintf(&b, ", %s", field.Format)
	}
	if field.Range != nil {
		fmt.Fprintf(&b, ", %g..%g", field.Range.Min, field.Range.Max)
	}
	if field.MinLength > 0 {
		fmt.Fprintf(&b, ", min %d", field.MinLength)
	}
	return b.String()
}
