// Package cli — validate.go implements the "ipcard validate" command.
//
// The validate command is the primary user-facing operation. It runs the
// full pipeline over one IP card file and optionally exports the result:
//
//  1. Load the card file and strip JSONC comments (offsets preserved)
//  2. Parse the stripped text as strict JSON into a document tree
//  3. Load and compile the JSON Schema
//  4. Validate, collecting every violation in one pass
//  5. On violations: print the full report with locations and excerpts
//  6. On success: print the compliance message, then write any
//     requested ODS / LaTeX exports
//
// Exports run only after validation succeeds — a non-compliant card is
// never exported.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ipcard-tools/ipcard/internal/document"
	"github.com/ipcard-tools/ipcard/internal/export"
	"github.com/ipcard-tools/ipcard/internal/model"
	"github.com/ipcard-tools/ipcard/internal/schema"
	"github.com/ipcard-tools/ipcard/internal/source"
)

// DefaultSchemaPath is the schema used when --schema is not given.
// The repository ships the current IP card schema under this name.
const DefaultSchemaPath = "20251114.jsonschema"

// validateFlags holds the flag values for the validate command.
// These are bound to cobra flags in NewValidateCommand.
type validateFlags struct {
	ip          string // --ip: path to the IP card JSONC file
	schema      string // --schema: path to the JSON Schema file
	exportODS   string // --export-ods: spreadsheet output path
	exportLaTeX string // --export-latex: LaTeX output path
	longtable   bool   // --longtable: use a longtable environment
}

// NewValidateCommand creates the "validate" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate --ip <file>",
		Short: "Validate an IP card against its JSON Schema",
		Long: `Validate an IP Container description file against a JSON Schema.

All schema violations are collected and reported in one run, each with
the source line, column, and a context excerpt. When the card is
compliant it can be exported in the same invocation.

Examples:
  ipcard validate --ip axi_dma.jsonc
  ipcard validate --ip axi_dma.jsonc --schema 20251114.jsonschema
  ipcard validate --ip axi_dma.jsonc --export-ods card.ods --export-latex card.tex`,

		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(flags)
		},
	}

	cmd.Flags().StringVar(&flags.ip, "ip", "", "Path to the IP card JSONC file (required)")
	cmd.Flags().StringVar(&flags.schema, "schema", DefaultSchemaPath, "Path to the JSON Schema file")
	cmd.Flags().StringVar(&flags.exportODS, "export-ods", "", "Write the validated card as an ODS spreadsheet")
	cmd.Flags().StringVar(&flags.exportLaTeX, "export-latex", "", "Write the validated card as a LaTeX table")
	cmd.Flags().BoolVar(&flags.longtable, "longtable", false, "Use a longtable environment in the LaTeX export")
	_ = cmd.MarkFlagRequired("ip")

	return cmd
}

// runValidate is the main orchestration function for the validate
// command. It coordinates the pipeline steps and the optional exports.
func runValidate(flags *validateFlags) error {
	root, doc, err := loadAndParse(flags.ip)
	if err != nil {
		return err
	}

	VerboseLog("Loading schema: %s", flags.schema)
	sch, err := schema.Load(flags.schema)
	if err != nil {
		return err
	}

	issues := sch.Validate(root)
	if len(issues) > 0 {
		reportIssues(doc, root, issues)
		return model.NewCLIError(model.ExitValidationFailed,
			fmt.Sprintf("%d schema violation(s) in %s", len(issues), flags.ip))
	}

	printCompliant(doc)

	// Exports only run on a fully validated document.
	if flags.exportODS != "" || flags.exportLaTeX != "" {
		rows := export.Flatten(root)
		VerboseLog("Flattened %d row(s) for export", len(rows))

		if flags.exportODS != "" {
			if err := export.WriteODSFile(flags.exportODS, rows); err != nil {
				return err
			}
			VerboseLog("Spreadsheet written to: %s", flags.exportODS)
		}
		if flags.exportLaTeX != "" {
			opts := export.LaTeXOptions{
				Caption:   cardCaption(root),
				Longtable: flags.longtable,
			}
			if err := export.WriteLaTeXFile(flags.exportLaTeX, rows, opts); err != nil {
				return err
			}
			VerboseLog("LaTeX table written to: %s", flags.exportLaTeX)
		}
	}

	return nil
}

// loadAndParse runs the first half of the pipeline: load + strip + parse.
// It is shared with the show command. Returned errors are CLIErrors with
// the appropriate exit codes; syntax and parse failures are reported
// with location and excerpt before returning.
func loadAndParse(path string) (*document.Node, *source.Document, error) {
	VerboseLog("Loading IP card: %s", path)
	doc, err := source.Load(path)
	if err != nil {
		// A syntax error still yields a usable Document for location
		// reporting (see source.Load); anything else is terminal as-is.
		if doc != nil {
			reportOffsetError(doc, err)
		}
		return nil, nil, err
	}

	VerboseLog("Parsing %d byte(s)", len(doc.Stripped))
	root, err := document.Parse(doc.Stripped)
	if err != nil {
		reportOffsetError(doc, err)
		return nil, nil, model.WrapCLIError(model.ExitParseError,
			fmt.Sprintf("invalid JSON in %s", path), err)
	}

	return root, doc, nil
}

// cardCaption derives a LaTeX caption from the card's "name" property,
// falling back to the file-less generic caption when absent.
func cardCaption(root *document.Node) string {
	if name := root.Get("name"); name != nil && name.Kind == document.KindScalar {
		return fmt.Sprintf("IP card: %s", name.ScalarString())
	}
	return "IP card"
}
