// Package document parses comment-stripped IP card text into an
// immutable tree of mapping, sequence, and scalar nodes.
//
// The tree is a tagged union (Kind discriminator) so that the validator
// glue, location resolution, and the exporters can all pattern-match
// exhaustively instead of type-asserting on dynamic values. Mappings
// preserve key insertion order — the order that drives deterministic
// export traversal — and every node records the byte offset of its first
// character, which maps one-to-one onto the original source because
// comment stripping preserves offsets.
//
// Parsing is strict: the grammar is delegated to encoding/json's token
// decoder, so trailing commas, unquoted keys, and other relaxed-JSON
// constructs are hard failures. JSONC support extends only to comments,
// which internal/jsonc has already removed by the time text reaches
// this package.
package document
