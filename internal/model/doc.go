// Package model defines the domain types and value objects for the
// ipcard CLI.
//
// This package contains pure data structures with no external
// dependencies: validation issues, flattened export rows, exit codes,
// and a custom error type (CLIError) that carries exit codes for proper
// OS process exit handling. All values are created once per invocation
// and never mutated — the tool holds no state across runs.
package model
