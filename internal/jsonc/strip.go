// Package jsonc implements offset-preserving comment removal for JSONC
// (JSON with Comments) text.
//
// The stripper recognizes // line comments and non-nesting /* */ block
// comments and blanks them out with spaces instead of deleting them.
// Newlines inside block comments are kept. The output therefore has
// exactly the same length and the same line/column geometry as the
// input, which is what lets parse and validation errors reported against
// the stripped text be mapped straight back to the original source.
//
// The scanner is string-literal aware: comment markers that appear
// inside JSON strings (e.g. {"url": "http://x"}) are left untouched.
// This matches the behavior of github.com/tidwall/jsonc, which the
// package tests use as a differential oracle.
package jsonc

import "fmt"

// SyntaxError reports malformed JSONC: an unterminated block comment or
// string literal that reached end of input. Offset is the byte offset at
// which the scanner gave up (always the end-of-input offset).
type SyntaxError struct {
	Offset int
	Msg    string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// scanner states. The stripper is a single-pass byte state machine;
// JSON string contents are the only place where UTF-8 multi-byte
// sequences occur, and those are copied through verbatim, so byte-wise
// scanning is sufficient.
const (
	stateNormal = iota
	stateString
	stateStringEscape
	stateLineComment
	stateBlockComment
)

// Strip removes // and /* */ comments from src, replacing every removed
// byte with a space while keeping CR, LF, and tab bytes in place. The returned
// slice always has the same length as src, so any byte offset into the
// stripped text is also a valid offset into the original.
//
// Strip returns a *SyntaxError if a block comment or a string literal is
// still open when end of input is reached. Everything else — including
// text that is not valid JSON at all — is passed through for the JSON
// parser to reject with its own, more precise diagnostics.
func Strip(src []byte) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)

	state := stateNormal
	// commentStart remembers where the currently open block comment or
	// string began, for the unterminated-at-EOF error message.
	commentStart := 0

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateNormal:
			switch {
			case c == '"':
				state = stateString
				commentStart = i
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				out[i], out[i+1] = ' ', ' '
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				commentStart = i
				out[i], out[i+1] = ' ', ' '
				i++
			}

		case stateString:
			switch c {
			case '\\':
				state = stateStringEscape
			case '"':
				state = stateNormal
			case '\n':
				// A raw newline inside a string is invalid JSON, but the
				// string is not unterminated yet — resync so that the rest
				// of the document still gets comment-stripped, and let the
				// parser produce the control-character error.
				state = stateNormal
			}

		case stateStringEscape:
			// The escaped byte is consumed blindly; only its role as a
			// potential closing quote or backslash matters here, and an
			// escaped byte is neither.
			state = stateString

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
			} else if c != '\r' && c != '\t' {
				out[i] = ' '
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateNormal
			} else if c != '\n' && c != '\r' && c != '\t' {
				out[i] = ' '
			}
		}
	}

	switch state {
	case stateBlockComment:
		return nil, &SyntaxError{
			Offset: len(src),
			Msg:    fmt.Sprintf("unterminated block comment opened at offset %d", commentStart),
		}
	case stateString, stateStringEscape:
		return nil, &SyntaxError{
			Offset: len(src),
			Msg:    fmt.Sprintf("unterminated string literal opened at offset %d", commentStart),
		}
	}

	return out, nil
}
