package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// odsMimetype is the ODF spreadsheet media type. Per the ODF packaging
// spec it must be the first zip entry and stored uncompressed, so that
// file-type sniffers can read it at a fixed location.
const odsMimetype = "application/vnd.oasis.opendocument.spreadsheet"

const odsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
 <manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/>
 <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const odsStyles = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" office:version="1.2"/>
`

// WriteODS renders the flattened rows as a minimal ODF spreadsheet: a
// zip container holding the mimetype marker, the package manifest, an
// empty styles part, and the content.xml with one three-column table
// (group, field, value). Group cells use table:number-rows-spanned with
// covered-table-cell continuations, mirroring the LaTeX \multirow
// layout; ungrouped label cells span the two label columns.
func WriteODS(w io.Writer, rows []model.Row) error {
	zw := zip.NewWriter(w)

	// mimetype: first entry, stored uncompressed.
	mt, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("failed to create mimetype entry: %w", err)
	}
	if _, err := io.WriteString(mt, odsMimetype); err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}

	parts := []struct {
		name    string
		content string
	}{
		{"META-INF/manifest.xml", odsManifest},
		{"styles.xml", odsStyles},
		{"content.xml", odsContent(rows)},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.content); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize spreadsheet: %w", err)
	}
	return nil
}

// odsContent builds the content.xml part.
func odsContent(rows []model.Row) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<office:document-content` +
		` xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"` +
		` xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"` +
		` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
		` office:version="1.2">` + "\n")
	b.WriteString(" <office:body>\n  <office:spreadsheet>\n")
	b.WriteString(`   <table:table table:name="IP Card">` + "\n")
	b.WriteString(`    <table:table-column table:number-columns-repeated="3"/>` + "\n")

	// Header row: "Field" spanning the two label columns, then "Value".
	b.WriteString("    <table:table-row>\n")
	b.WriteString(`     <table:table-cell office:value-type="string" table:number-columns-spanned="2" table:number-rows-spanned="1"><text:p>Field</text:p></table:table-cell>` + "\n")
	b.WriteString("     <table:covered-table-cell/>\n")
	b.WriteString(stringCell("Value"))
	b.WriteString("    </table:table-row>\n")

	for _, row := range rows {
		b.WriteString("    <table:table-row>\n")

		switch {
		case row.Group == "":
			// Ungrouped: label spans the group and field columns.
			fmt.Fprintf(&b,
				`     <table:table-cell office:value-type="string" table:number-columns-spanned="2" table:number-rows-spanned="1"><text:p>%s</text:p></table:table-cell>`+"\n",
				escapeXML(row.Label))
			b.WriteString("     <table:covered-table-cell/>\n")
		case row.Span > 0:
			// First row of a group: the group cell spans the run.
			fmt.Fprintf(&b,
				`     <table:table-cell office:value-type="string" table:number-rows-spanned="%d" table:number-columns-spanned="1"><text:p>%s</text:p></table:table-cell>`+"\n",
				row.Span, escapeXML(row.Group))
			b.WriteString(stringCell(row.Label))
		default:
			// Continuation row: group column is covered by the span above.
			b.WriteString("     <table:covered-table-cell/>\n")
			b.WriteString(stringCell(row.Label))
		}

		b.WriteString(valueCell(row))
		b.WriteString("    </table:table-row>\n")
	}

	b.WriteString("   </table:table>\n  </office:spreadsheet>\n </office:body>\n")
	b.WriteString("</office:document-content>\n")
	return b.String()
}

// stringCell renders a plain string cell.
func stringCell(s string) string {
	return fmt.Sprintf(
		`     <table:table-cell office:value-type="string"><text:p>%s</text:p></table:table-cell>`+"\n",
		escapeXML(s))
}

// valueCell renders the value column: typed float cells for numeric
// leaves so spreadsheet applications treat them as numbers, string
// cells for everything else.
func valueCell(row model.Row) string {
	if row.Numeric {
		return fmt.Sprintf(
			`     <table:table-cell office:value-type="float" office:value="%s"><text:p>%s</text:p></table:table-cell>`+"\n",
			escapeXML(row.Value), escapeXML(row.Value))
	}
	return stringCell(row.Value)
}

// escapeXML escapes text for embedding in XML character data or
// attribute values.
func escapeXML(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors; strings.Builder never errors.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
