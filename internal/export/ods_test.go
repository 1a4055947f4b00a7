package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// writeODS renders rows into an in-memory ODS package and opens it as a
// zip archive.
func writeODS(t *testing.T, rows []model.Row) *zip.Reader {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, WriteODS(&buf, rows))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

// readPart returns the content of a named entry in the package.
func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer func() { _ = rc.Close() }()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("entry %s not found in package", name)
	return ""
}

// countTableRows decodes content.xml and counts table-row elements.
func countTableRows(t *testing.T, content string) int {
	t.Helper()

	dec := xml.NewDecoder(strings.NewReader(content))
	count := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "table-row" {
			count++
		}
	}
	return count
}

// TestWriteODS_PackageLayout verifies the ODF container contract: the
// mimetype is the first entry, stored uncompressed, and all required
// parts are present.
func TestWriteODS_PackageLayout(t *testing.T) {
	zr := writeODS(t, []model.Row{{Label: "name", Value: "axi_dma", Span: 1}})

	require.NotEmpty(t, zr.File)
	first := zr.File[0]
	assert.Equal(t, "mimetype", first.Name)
	assert.Equal(t, zip.Store, first.Method, "mimetype must be stored uncompressed")
	assert.Equal(t, odsMimetype, readPart(t, zr, "mimetype"))

	assert.Contains(t, readPart(t, zr, "META-INF/manifest.xml"), "manifest:file-entry")
	assert.Contains(t, readPart(t, zr, "styles.xml"), "office:document-styles")
	assert.Contains(t, readPart(t, zr, "content.xml"), "office:spreadsheet")
}

// TestWriteODS_RoundTripRowCount verifies the round-trip invariant:
// re-reading the exported spreadsheet yields one table row per scalar
// leaf, plus the header.
func TestWriteODS_RoundTripRowCount(t *testing.T) {
	doc := parseDoc(t, `{
		"name": "axi_dma",
		"clock": {"frequency": 100, "unit": "MHz"},
		"ports": [{"name": "s_axi", "width": 32}]
	}`)
	rows := Flatten(doc)
	zr := writeODS(t, rows)

	got := countTableRows(t, readPart(t, zr, "content.xml"))
	assert.Equal(t, doc.LeafCount()+1, got, "leaf rows plus header")
}

// TestWriteODS_GroupSpanning verifies merged group cells: a spanned cell
// with the run length, covered cells on continuation rows.
func TestWriteODS_GroupSpanning(t *testing.T) {
	doc := parseDoc(t, `{"clock": {"frequency": 100, "unit": "MHz"}}`)
	zr := writeODS(t, Flatten(doc))

	content := readPart(t, zr, "content.xml")
	assert.Contains(t, content, `table:number-rows-spanned="2"`)
	assert.Contains(t, content, "<text:p>clock</text:p>")
	assert.Contains(t, content, "<table:covered-table-cell/>")
}

// TestWriteODS_TypedCells verifies that numeric leaves become float
// cells carrying the exact source lexeme, while strings stay text.
func TestWriteODS_TypedCells(t *testing.T) {
	doc := parseDoc(t, `{"frequency": 1.50, "unit": "MHz"}`)
	zr := writeODS(t, Flatten(doc))

	content := readPart(t, zr, "content.xml")
	assert.Contains(t, content, `office:value-type="float" office:value="1.50"`)
	assert.Contains(t, content, "<text:p>MHz</text:p>")
}

// TestWriteODS_EscapesXML verifies XML-special characters in labels and
// values survive as escaped character data.
func TestWriteODS_EscapesXML(t *testing.T) {
	rows := []model.Row{{Label: "a<b", Value: `x & "y"`, Span: 1}}
	zr := writeODS(t, rows)

	content := readPart(t, zr, "content.xml")
	assert.Contains(t, content, "a&lt;b")
	assert.Contains(t, content, "x &amp;")
	assert.NotContains(t, content, "<text:p>a<b</text:p>")
}
