package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// renderLaTeX renders rows to a string with the given options.
func renderLaTeX(t *testing.T, rows []model.Row, opts LaTeXOptions) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, WriteLaTeX(&b, rows, opts))
	return b.String()
}

// TestWriteLaTeX_Structure verifies the booktabs frame and one body line
// per flattened row.
func TestWriteLaTeX_Structure(t *testing.T) {
	doc := parseDoc(t, `{"name": "axi_dma", "clock": {"frequency": 100, "unit": "MHz"}}`)
	rows := Flatten(doc)

	out := renderLaTeX(t, rows, LaTeXOptions{})

	assert.Contains(t, out, "\\begin{table}")
	assert.Contains(t, out, "\\begin{tabular}{lll}")
	assert.Contains(t, out, "\\toprule")
	assert.Contains(t, out, "\\midrule")
	assert.Contains(t, out, "\\bottomrule")

	// One \\ terminated line per row plus the header line.
	assert.Equal(t, len(rows)+1, strings.Count(out, "\\\\"), "body line count")
}

// TestWriteLaTeX_GroupSpanning verifies the multirow/multicolumn layout:
// group cells span their run, continuations leave the group column
// empty, ungrouped labels merge the two label columns.
func TestWriteLaTeX_GroupSpanning(t *testing.T) {
	doc := parseDoc(t, `{"name": "axi_dma", "clock": {"frequency": 100, "unit": "MHz"}}`)

	out := renderLaTeX(t, Flatten(doc), LaTeXOptions{})

	assert.Contains(t, out, "\\multicolumn{2}{l}{name} & axi\\_dma \\\\")
	assert.Contains(t, out, "\\multirow{2}{*}{clock} & frequency & 100 \\\\")
	assert.Contains(t, out, " & unit & MHz \\\\")
}

// TestWriteLaTeX_Escaping verifies that every LaTeX special character is
// escaped in labels and values, per the export contract.
func TestWriteLaTeX_Escaping(t *testing.T) {
	rows := []model.Row{{
		Label: "odd_&_label",
		Value: `100% of #1 {braces} \ ^ ~`,
		Span:  1,
	}}

	out := renderLaTeX(t, rows, LaTeXOptions{})

	assert.Contains(t, out, `odd\_\&\_label`)
	assert.Contains(t, out, `100\% of \#1 \{braces\}`)
	assert.Contains(t, out, `\textbackslash{}`)
	assert.Contains(t, out, `\textasciicircum{}`)
	assert.Contains(t, out, `\textasciitilde{}`)

	// No special character survives unescaped in the body.
	body := out[strings.Index(out, "\\midrule"):]
	assert.NotContains(t, body, " % ")
	assert.NotContains(t, body, "_&_")
}

// TestWriteLaTeX_RowCountMatchesLeafCount verifies the cross-format
// invariant: LaTeX emits exactly one row per scalar leaf, matching the
// ODS exporter's count.
func TestWriteLaTeX_RowCountMatchesLeafCount(t *testing.T) {
	doc := parseDoc(t, `{
		"a": "x & y",
		"b": {"c": "50%", "d": "under_score"},
		"e": [1, 2, 3]
	}`)
	rows := Flatten(doc)

	out := renderLaTeX(t, rows, LaTeXOptions{})

	bodyLines := strings.Count(out, "\\\\") - 1 // minus header
	assert.Equal(t, doc.LeafCount(), bodyLines)
	assert.Len(t, rows, doc.LeafCount())
}

// TestWriteLaTeX_Longtable verifies the longtable variant and caption.
func TestWriteLaTeX_Longtable(t *testing.T) {
	rows := []model.Row{{Label: "name", Value: "v", Span: 1}}

	out := renderLaTeX(t, rows, LaTeXOptions{Longtable: true, Caption: "IP & Card"})

	assert.Contains(t, out, "\\begin{longtable}{lll}")
	assert.Contains(t, out, "\\end{longtable}")
	assert.Contains(t, out, "\\caption{IP \\& Card}")
	assert.NotContains(t, out, "\\begin{table}")
}
