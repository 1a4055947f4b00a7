package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWriteTable verifies the terminal rendering carries every row and
// the header.
func TestWriteTable(t *testing.T) {
	doc := parseDoc(t, `{"name": "axi_dma", "clock": {"frequency": 100, "unit": "MHz"}}`)

	var b strings.Builder
	WriteTable(&b, Flatten(doc))
	out := b.String()

	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "axi_dma")
	assert.Contains(t, out, "frequency")
	assert.Contains(t, out, "MHz")
}
