// Package cli — show.go implements the "ipcard show" command.
//
// show validates an IP card and, when compliant, prints its flattened
// (label, value) rows as a terminal table — the same rows the ODS and
// LaTeX exporters render. A non-compliant card is reported exactly like
// "validate" and never displayed, keeping the rule that exporters only
// ever see validated documents.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipcard-tools/ipcard/internal/export"
	"github.com/ipcard-tools/ipcard/internal/model"
	"github.com/ipcard-tools/ipcard/internal/schema"
)

// showFlags holds the flag values for the show command.
type showFlags struct {
	ip     string // --ip: path to the IP card JSONC file
	schema string // --schema: path to the JSON Schema file
}

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show --ip <file>",
		Short: "Display a validated IP card as a table",
		Long: `Validate an IP Container description file and display its contents
as a flattened two-column table, grouped by nesting.

The displayed rows are identical, in content and order, to what the
--export-ods and --export-latex options of "validate" would write.

Examples:
  ipcard show --ip axi_dma.jsonc
  ipcard show --ip axi_dma.jsonc --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(flags)
		},
	}

	cmd.Flags().StringVar(&flags.ip, "ip", "", "Path to the IP card JSONC file (required)")
	cmd.Flags().StringVar(&flags.schema, "schema", DefaultSchemaPath, "Path to the JSON Schema file")
	_ = cmd.MarkFlagRequired("ip")

	return cmd
}

// runShow validates the card and renders its rows.
func runShow(flags *showFlags) error {
	root, doc, err := loadAndParse(flags.ip)
	if err != nil {
		return err
	}

	sch, err := schema.Load(flags.schema)
	if err != nil {
		return err
	}

	// show refuses non-compliant cards for the same reason the exporters
	// do: the flattened view of an invalid document is undefined.
	issues := sch.Validate(root)
	if len(issues) > 0 {
		reportIssues(doc, root, issues)
		return model.NewCLIError(model.ExitValidationFailed,
			fmt.Sprintf("%d schema violation(s) in %s", len(issues), flags.ip))
	}

	rows := export.Flatten(root)
	VerboseLog("Flattened %d row(s)", len(rows))

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	export.WriteTable(os.Stdout, rows)
	return nil
}
