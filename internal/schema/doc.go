// Package schema compiles JSON Schema documents and validates parsed IP
// card trees against them via github.com/santhosh-tekuri/jsonschema/v6.
//
// The validator collects every violation in one pass — it never stops at
// the first error — and flattens the library's nested cause tree into an
// ordered list of model.ValidationIssue values. Required-property
// violations are expanded one-per-property so that each issue's path
// names the exact property that is missing.
package schema
