// Package source represents a loaded IP card source file and resolves
// byte offsets back to human-readable positions.
//
// The comment stripper (internal/jsonc) guarantees that stripped text
// has exactly the same byte layout as the original, so one line index
// built over the raw text serves both: offsets produced by the JSON
// parser and the validator (which see only the stripped text) map
// directly onto the file the user is actually looking at.
package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ipcard-tools/ipcard/internal/jsonc"
	"github.com/ipcard-tools/ipcard/internal/model"
)

// Document is an immutable, loaded source file: the raw bytes, the
// comment-stripped bytes, and a line-start index for offset resolution.
type Document struct {
	// Path is the filesystem path the document was loaded from, used in
	// error reports. May be a display name for in-memory documents.
	Path string

	// Raw is the original file content, untouched.
	Raw []byte

	// Stripped is Raw with JSONC comments blanked out. Same length as Raw.
	Stripped []byte

	// lineStarts holds the byte offset of the first character of each
	// line, in ascending order. lineStarts[0] is always 0. Built once at
	// construction; Position does a binary search over it.
	lineStarts []int
}

// Load reads the file at path and constructs a Document, stripping JSONC
// comments in the process.
//
// Returns a CLIError with ExitFileNotFound if the file does not exist,
// or with ExitSyntaxError if the stripper finds an unterminated block
// comment or string literal. In the syntax-error case the returned
// Document is still non-nil with Raw and the line index populated
// (Stripped is nil), so callers can resolve the error offset to a
// position and print a source excerpt.
func Load(path string) (*Document, error) {
	// os.ReadFile handles the open-read-close lifecycle in a single call.
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitFileNotFound,
				fmt.Sprintf("file not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path), err)
	}

	return New(path, raw)
}

// New constructs a Document from in-memory content. path is only used
// for display in error reports. See Load for the error contract.
func New(path string, raw []byte) (*Document, error) {
	doc := &Document{
		Path:       path,
		Raw:        raw,
		lineStarts: buildLineIndex(raw),
	}

	stripped, err := jsonc.Strip(raw)
	if err != nil {
		return doc, model.WrapCLIError(model.ExitSyntaxError,
			fmt.Sprintf("malformed JSONC in %s", path), err)
	}

	doc.Stripped = stripped
	return doc, nil
}

// buildLineIndex records the start offset of every line. A line starts
// at offset 0 and after every '\n'.
func buildLineIndex(raw []byte) []int {
	starts := []int{0}
	for i, c := range raw {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position maps a byte offset to a 1-based (line, column) pair.
// Offsets past the end of input clamp to the last position, which is
// how end-of-input errors (unterminated comments) get a location.
func (d *Document) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Raw) {
		offset = len(d.Raw)
	}

	// Find the last line start <= offset. sort.Search returns the first
	// index whose line start exceeds offset; the line we want is the one
	// before it.
	idx := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1

	return idx + 1, offset - d.lineStarts[idx] + 1
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Line returns the text of the 1-based line n, without its trailing
// newline. Out-of-range lines return the empty string.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[n-1]
	end := len(d.Raw)
	if n < len(d.lineStarts) {
		end = d.lineStarts[n] - 1 // drop the '\n'
	}
	return strings.TrimSuffix(string(d.Raw[start:end]), "\r")
}

// Context renders an excerpt of the source around the 1-based line,
// covering up to before lines above and after lines below. The error
// line is marked with ">>> "; all lines carry right-aligned numbers:
//
//	      3:   "frequency": 100,
//	>>>   4:   "unit": 12,
//	      5:   "domain": "soc"
func (d *Document) Context(line, before, after int) string {
	first := line - before
	if first < 1 {
		first = 1
	}
	last := line + after
	if last > d.LineCount() {
		last = d.LineCount()
	}

	var b strings.Builder
	for n := first; n <= last; n++ {
		marker := "    "
		if n == line {
			marker = ">>> "
		}
		fmt.Fprintf(&b, "%s%3d: %s\n", marker, n, d.Line(n))
	}
	return b.String()
}
