package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// LaTeXOptions controls the generated table environment.
type LaTeXOptions struct {
	// Caption is the table caption. Empty omits the caption line.
	Caption string

	// Longtable switches from a floating table/tabular pair to a
	// longtable environment, for cards too tall for one page.
	Longtable bool
}

// WriteLaTeX renders the flattened rows as a LaTeX table using booktabs
// rules and multirow group cells. The output requires \usepackage{booktabs}
// and \usepackage{multirow} (and longtable when that option is set).
//
// Layout: three physical columns — group, field, value. A group cell
// spans its run of rows via \multirow; ungrouped rows merge the group
// and field columns via \multicolumn so the label reads as one cell.
func WriteLaTeX(w io.Writer, rows []model.Row, opts LaTeXOptions) error {
	var b strings.Builder

	if opts.Longtable {
		b.WriteString("\\begin{longtable}{lll}\n")
		if opts.Caption != "" {
			fmt.Fprintf(&b, "\\caption{%s}\\\\\n", escapeLaTeX(opts.Caption))
		}
	} else {
		b.WriteString("\\begin{table}[ht]\n\\centering\n")
		if opts.Caption != "" {
			fmt.Fprintf(&b, "\\caption{%s}\n", escapeLaTeX(opts.Caption))
		}
		b.WriteString("\\begin{tabular}{lll}\n")
	}

	b.WriteString("\\toprule\n")
	b.WriteString("\\multicolumn{2}{l}{\\textbf{Field}} & \\textbf{Value} \\\\\n")
	b.WriteString("\\midrule\n")

	for _, row := range rows {
		b.WriteString(latexRow(row))
	}

	b.WriteString("\\bottomrule\n")
	if opts.Longtable {
		b.WriteString("\\end{longtable}\n")
	} else {
		b.WriteString("\\end{tabular}\n\\end{table}\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// latexRow renders one body row.
func latexRow(row model.Row) string {
	value := escapeLaTeX(row.Value)

	if row.Group == "" {
		// Ungrouped: label occupies both label columns.
		return fmt.Sprintf("\\multicolumn{2}{l}{%s} & %s \\\\\n",
			escapeLaTeX(row.Label), value)
	}

	if row.Span > 0 {
		// First row of a group: the group cell spans the whole run.
		return fmt.Sprintf("\\multirow{%d}{*}{%s} & %s & %s \\\\\n",
			row.Span, escapeLaTeX(row.Group), escapeLaTeX(row.Label), value)
	}

	// Continuation row: the group column is covered by the multirow.
	return fmt.Sprintf(" & %s & %s \\\\\n", escapeLaTeX(row.Label), value)
}

// escapeLaTeX escapes every LaTeX special character in s. Backslash,
// caret, and tilde have no single-character escape and map to their
// text-mode commands.
func escapeLaTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString("\\textbackslash{}")
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '^':
			b.WriteString("\\textasciicircum{}")
		case '~':
			b.WriteString("\\textasciitilde{}")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
