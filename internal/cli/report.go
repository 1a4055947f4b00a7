// Package cli — report.go formats validation outcomes for the terminal.
//
// All reports resolve byte offsets and instance paths back to 1-based
// line/column positions in the original file and attach a short excerpt
// of the surrounding source, with the offending line marked.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ipcard-tools/ipcard/internal/document"
	"github.com/ipcard-tools/ipcard/internal/jsonc"
	"github.com/ipcard-tools/ipcard/internal/model"
	"github.com/ipcard-tools/ipcard/internal/source"
)

// contextLines is the excerpt radius around an error line.
const contextLines = 2

// reportOffsetError prints a located report for failures that carry a
// raw byte offset: JSONC syntax errors and JSON parse errors.
//
// In JSON output mode nothing is printed here — the Execute handler in
// root.go emits the structured error object, and a context excerpt has
// no place in machine-readable output.
func reportOffsetError(doc *source.Document, err error) {
	if IsJSONOutput() {
		return
	}

	offset, msg, ok := errorOffset(err)
	if !ok {
		return
	}

	line, col := doc.Position(offset)
	fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", doc.Path, line, col, msg)
	fmt.Fprint(os.Stderr, doc.Context(line, contextLines, contextLines))
}

// errorOffset extracts the byte offset and message from the typed
// pipeline errors.
func errorOffset(err error) (offset int, msg string, ok bool) {
	var synErr *jsonc.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Offset, synErr.Msg, true
	}
	var parseErr *document.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Offset, parseErr.Msg, true
	}
	return 0, "", false
}

// locatedIssue is a ValidationIssue resolved to a source position, used
// for both text and JSON reports.
type locatedIssue struct {
	model.ValidationIssue
	Pointer string `json:"pointer"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// locateIssues resolves every issue's instance path to a position.
//
// Path elements that have no source span — a missing required property,
// or a cross-field violation with an empty path — fall back to the
// nearest enclosing container; for an empty path that is the document
// root itself.
func locateIssues(doc *source.Document, root *document.Node, issues []model.ValidationIssue) []locatedIssue {
	located := make([]locatedIssue, 0, len(issues))
	for _, issue := range issues {
		node, _ := root.Resolve(issue.Path)
		line, col := doc.Position(node.Offset)
		located = append(located, locatedIssue{
			ValidationIssue: issue,
			Pointer:         issue.PathString(),
			Line:            line,
			Column:          col,
		})
	}
	return located
}

// reportIssues prints the full violation report, one entry per issue,
// to stderr (text mode) or stdout (JSON mode).
//
// JSON-mode contract: the issues object here is the command's result and
// goes to stdout; the Execute handler in root.go then emits a separate
// error object on stderr carrying the exit-code message. Machine
// consumers should read the report from stdout and treat stderr as
// diagnostics, exactly as in text mode.
func reportIssues(doc *source.Document, root *document.Node, issues []model.ValidationIssue) {
	located := locateIssues(doc, root, issues)

	if IsJSONOutput() {
		result := struct {
			Compliant bool           `json:"compliant"`
			Issues    []locatedIssue `json:"issues"`
		}{Compliant: false, Issues: located}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Fprintln(os.Stderr, "JSON is NOT schema-compliant")
	for _, li := range located {
		fmt.Fprintf(os.Stderr, "\n%s:%d:%d: %s (at %s)\n",
			doc.Path, li.Line, li.Column, li.Message, li.Pointer)
		if li.Value != "" {
			fmt.Fprintf(os.Stderr, "  offending value: %q\n", li.Value)
		}
		fmt.Fprint(os.Stderr, doc.Context(li.Line, contextLines, contextLines))
	}
}

// printCompliant prints the success message in the appropriate format.
func printCompliant(doc *source.Document) {
	if IsJSONOutput() {
		result := struct {
			Compliant bool   `json:"compliant"`
			File      string `json:"file"`
		}{Compliant: true, File: doc.Path}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Println("JSON is schema-compliant")
}
