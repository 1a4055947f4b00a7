// Package model defines the domain types for the ipcard CLI.
//
// All entities in this package are pure value types shared between the
// validation pipeline (jsonc → document → schema) and the export layer.
// Nothing here touches the filesystem or any external library — the
// package exists so that the pipeline stages can exchange data without
// importing each other.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ExitCode defines the CLI exit codes for the ipcard tool.
// These codes allow scripts and CI systems to programmatically
// distinguish the failure stage of a validation run.
type ExitCode int

const (
	// ExitSuccess indicates the document is schema-compliant and all
	// requested exports were written.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFileNotFound indicates the IP card file or the schema file
	// does not exist at the given path.
	ExitFileNotFound ExitCode = 2

	// ExitSyntaxError indicates malformed JSONC: an unterminated block
	// comment or string literal reached end of input.
	ExitSyntaxError ExitCode = 3

	// ExitParseError indicates the text is not valid JSON after comment
	// removal (trailing commas, unquoted keys, and similar).
	ExitParseError ExitCode = 4

	// ExitSchemaLoadError indicates the schema file itself is malformed
	// or is not a valid JSON Schema document.
	ExitSchemaLoadError ExitCode = 5

	// ExitValidationFailed indicates the document parsed cleanly but
	// violates one or more schema constraints.
	ExitValidationFailed ExitCode = 6

	// ExitExportError indicates an export target could not be written.
	ExitExportError ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate pipeline errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ValidationIssue describes a single schema violation found in an IP card.
//
// A validation run produces zero or more issues; their order follows the
// validator's traversal order and is not globally sorted. Issues are
// collected exhaustively — the validator never stops at the first one.
type ValidationIssue struct {
	// Path is the sequence of object keys and array indices leading from
	// the document root to the offending value. Empty for root-level
	// violations (e.g. a failed top-level anyOf).
	Path []string `json:"path"`

	// Keyword is the JSON Schema keyword that was violated
	// (e.g. "type", "required", "enum", "pattern").
	Keyword string `json:"keyword"`

	// Message is the human-readable description of the violation.
	Message string `json:"message"`

	// Value is the rendering of the offending value, when one exists.
	// Synthetic violations (missing required property) leave it empty.
	Value string `json:"value,omitempty"`
}

// PathString renders the issue path in JSON-pointer-like form, e.g.
// "/clock/frequency" or "/ports/2/name". The root path renders as "/".
func (i *ValidationIssue) PathString() string {
	if len(i.Path) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range i.Path {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}

// Row is one exportable (label, value) pair derived from a leaf value in
// a validated document tree, with grouping metadata for nested structure.
//
// All exporters (ODS, LaTeX, terminal) consume the same []Row produced by
// the shared flattener, which guarantees that every output format shows
// the same logical rows in the same order.
type Row struct {
	// Group is the label of the enclosing container, with ancestor labels
	// joined by " / " for nesting deeper than one level. Empty for
	// top-level leaves.
	Group string `json:"group,omitempty"`

	// Label is the leaf's own label: its object key, or "#n" (1-based)
	// for sequence elements.
	Label string `json:"label"`

	// Value is the leaf's rendered value.
	Value string `json:"value"`

	// Span is the number of consecutive rows sharing this row's Group,
	// stamped on the first row of each run. Continuation rows carry 0.
	// Ungrouped rows always carry 1. Renderers use Span to emit merged
	// cells (ODS number-rows-spanned, LaTeX \multirow).
	Span int `json:"span"`

	// Numeric is true when the source scalar was a JSON number, letting
	// the spreadsheet exporter emit a typed float cell instead of text.
	Numeric bool `json:"-"`
}

// FullLabel returns the hierarchical label, e.g. "clock / frequency",
// or just the label for ungrouped rows.
func (r *Row) FullLabel() string {
	if r.Group == "" {
		return r.Label
	}
	return r.Group + " / " + r.Label
}

// SequenceLabel renders a 1-based ordinal label for the i-th element
// (0-based) of a sequence: "#1", "#2", ...
func SequenceLabel(i int) string {
	return "#" + strconv.Itoa(i+1)
}
