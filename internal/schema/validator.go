// Package schema loads JSON Schema documents and validates parsed IP
// card trees against them.
//
// Compilation and validation are delegated to
// github.com/santhosh-tekuri/jsonschema/v6. This package's own job is
// the glue: turning the library's tree of validation causes into the
// flat, ordered []model.ValidationIssue the reporting layer consumes,
// with every violation collected in a single pass (the library never
// short-circuits, and neither do we).
package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ipcard-tools/ipcard/internal/document"
	"github.com/ipcard-tools/ipcard/internal/model"
)

// messagePrinter renders the library's localized violation messages.
var messagePrinter = message.NewPrinter(language.English)

// Schema is a compiled JSON Schema ready for repeated validation.
type Schema struct {
	// Path is the file the schema was loaded from, for error reports.
	Path string

	compiled *jsonschema.Schema
}

// Load reads, parses, and compiles the JSON Schema at path.
//
// Returns a CLIError with ExitFileNotFound when the file is missing and
// ExitSchemaLoadError when the file is not valid JSON or not a valid
// schema document.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitFileNotFound,
				fmt.Sprintf("schema file not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read schema %s", path), err)
	}
	defer func() { _ = f.Close() }()

	// UnmarshalJSON decodes with number precision preserved, which is
	// what the compiler expects for numeric schema constraints.
	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitSchemaLoadError,
			fmt.Sprintf("invalid JSON in schema file %s", path), err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, doc); err != nil {
		return nil, model.WrapCLIError(model.ExitSchemaLoadError,
			fmt.Sprintf("failed to register schema %s", path), err)
	}

	compiled, err := compiler.Compile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitSchemaLoadError,
			fmt.Sprintf("failed to compile schema %s", path), err)
	}

	return &Schema{Path: path, compiled: compiled}, nil
}

// Validate runs the compiled schema over the document tree and returns
// every violation found, in validator traversal order. An empty slice
// signals compliance.
func (s *Schema) Validate(doc *document.Node) []model.ValidationIssue {
	err := s.compiled.Validate(doc.Interface())
	if err == nil {
		return nil
	}

	var valErr *jsonschema.ValidationError
	if !errors.As(err, &valErr) {
		// Not a validation outcome — surface as a single root issue so
		// the caller still reports something actionable.
		return []model.ValidationIssue{{
			Keyword: "schema",
			Message: err.Error(),
		}}
	}

	var issues []model.ValidationIssue
	collectLeaves(valErr, doc, &issues)
	return issues
}

// collectLeaves walks the cause tree depth-first and emits issues for
// leaf causes. Intermediate nodes (schema references, allOf grouping)
// carry no user-facing detail of their own.
func collectLeaves(e *jsonschema.ValidationError, doc *document.Node, issues *[]model.ValidationIssue) {
	if len(e.Causes) == 0 {
		*issues = append(*issues, newIssues(e, doc)...)
		return
	}
	for _, cause := range e.Causes {
		collectLeaves(cause, doc, issues)
	}
}

// newIssues converts one leaf cause into ValidationIssues, rewriting the
// most common violations into friendlier messages and attaching the
// offending value when the instance path resolves to a scalar.
//
// A required-properties violation expands into one issue per missing
// property, each with the property name appended to the path. The
// appended element never resolves to a source span (the property is
// absent), so location reporting falls back to the enclosing object —
// but the path itself names exactly what is missing.
func newIssues(e *jsonschema.ValidationError, doc *document.Node) []model.ValidationIssue {
	if req, ok := e.ErrorKind.(*kind.Required); ok {
		issues := make([]model.ValidationIssue, 0, len(req.Missing))
		for _, name := range req.Missing {
			path := append(append([]string(nil), e.InstanceLocation...), name)
			issues = append(issues, model.ValidationIssue{
				Path:    path,
				Keyword: "required",
				Message: fmt.Sprintf("missing required property '%s'", name),
			})
		}
		return issues
	}

	issue := model.ValidationIssue{
		// Copy the path: the library owns the backing array.
		Path:    append([]string(nil), e.InstanceLocation...),
		Keyword: keywordOf(e),
		Message: messageOf(e),
	}

	if node, exact := doc.Resolve(issue.Path); exact && node.Kind == document.KindScalar {
		issue.Value = node.ScalarString()
	}
	return []model.ValidationIssue{issue}
}

// keywordOf extracts the violated keyword: the last element of the error
// kind's keyword path (e.g. "type", "required", "pattern").
func keywordOf(e *jsonschema.ValidationError) string {
	if e.ErrorKind == nil {
		return ""
	}
	path := e.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// messageOf renders the violation message. Additional-property
// violations name the properties explicitly; everything else uses the
// library's localized message. (Required violations never reach here —
// newIssues expands them per property.)
func messageOf(e *jsonschema.ValidationError) string {
	switch k := e.ErrorKind.(type) {
	case *kind.AdditionalProperties:
		quoted := make([]string, len(k.Properties))
		for i, n := range k.Properties {
			quoted[i] = "'" + n + "'"
		}
		noun := "property"
		if len(k.Properties) > 1 {
			noun = "properties"
		}
		return fmt.Sprintf("unexpected %s %s", noun, strings.Join(quoted, ", "))
	case nil:
		return "schema violation"
	default:
		return e.ErrorKind.LocalizedString(messagePrinter)
	}
}
