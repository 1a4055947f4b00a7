// Package export flattens a validated IP card document into labelled
// rows and renders them to ODS spreadsheet, LaTeX table, and plain-text
// terminal formats.
//
// The depth-first flattening is factored into one shared traversal
// (Flatten) producing []model.Row; each renderer is only responsible for
// final-format output. Because all three renderers consume the same row
// slice, every format is guaranteed to present the same logical rows in
// the same deterministic order — one row per scalar leaf, grouped under
// their containers via row-spanning cells.
//
// Exporters must only be handed documents that already passed schema
// validation; the CLI enforces this ordering.
package export
