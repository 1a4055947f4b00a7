package export

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// WriteTable renders the flattened rows as a plain-text table for the
// terminal. Identical consecutive group cells are merged, which is the
// text-mode equivalent of the spanned cells in the ODS and LaTeX
// exports.
func WriteTable(w io.Writer, rows []model.Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Group", "Field", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoMergeCells(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, row := range rows {
		table.Append([]string{row.Group, row.Label, row.Value})
	}

	table.Render()
}
