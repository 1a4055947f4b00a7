package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseError reports invalid JSON with the byte offset of the failure in
// the stripped text (equal to the original-source offset).
type ParseError struct {
	Offset int
	Msg    string
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parse reads one strict JSON value from the comment-stripped text and
// builds the document tree, recording the start offset of every node.
//
// The grammar is delegated to encoding/json's token decoder, so any
// deviation from standard JSON — trailing commas, unquoted keys, single
// quotes — is a hard parse failure. JSONC support extends only to the
// comments the stripper has already blanked out.
func Parse(stripped []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(stripped))
	// UseNumber keeps numeric lexemes intact (json.Number), so exports
	// can show "1.50" exactly as written instead of a float64 rendering.
	dec.UseNumber()

	p := &parser{dec: dec, data: stripped}

	node, err := p.value()
	if err != nil {
		return nil, p.convertErr(err)
	}

	// Exactly one top-level value is allowed. A second token here means
	// trailing garbage after the document.
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, p.convertErr(err)
		}
		return nil, &ParseError{
			Offset: int(dec.InputOffset()),
			Msg:    "unexpected data after top-level value",
		}
	}

	return node, nil
}

// parser wraps the token decoder with offset bookkeeping.
type parser struct {
	dec  *json.Decoder
	data []byte
}

// value parses the next JSON value and returns its node.
func (p *parser) value() (*Node, error) {
	// InputOffset before reading points at most at whitespace and
	// structural separators preceding the token; the token's true start
	// is found by skipping those (see tokenStart).
	before := p.dec.InputOffset()

	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}
	offset := p.tokenStart(before)

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.mapping(offset)
		case '[':
			return p.sequence(offset)
		default:
			// The decoder never hands a closing delimiter to a value
			// position; this is unreachable with a well-behaved decoder.
			return nil, &ParseError{Offset: offset, Msg: fmt.Sprintf("unexpected %q", t.String())}
		}
	default:
		// string, json.Number, bool, or nil.
		return &Node{Kind: KindScalar, Value: tok, Offset: offset}, nil
	}
}

// mapping parses object members after the opening '{' has been consumed.
// Key order is preserved; a duplicated key keeps its first position but
// takes the last value, matching encoding/json's last-wins behavior.
func (p *parser) mapping(offset int) (*Node, error) {
	node := &Node{
		Kind:     KindMapping,
		Children: make(map[string]*Node),
		Offset:   offset,
	}

	for p.dec.More() {
		keyTok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		// Inside an object the decoder only yields string keys.
		key, ok := keyTok.(string)
		if !ok {
			return nil, &ParseError{
				Offset: int(p.dec.InputOffset()),
				Msg:    fmt.Sprintf("object key is not a string: %v", keyTok),
			}
		}

		child, err := p.value()
		if err != nil {
			return nil, err
		}

		if _, exists := node.Children[key]; !exists {
			node.Keys = append(node.Keys, key)
		}
		node.Children[key] = child
	}

	// Consume the closing '}'.
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

// sequence parses array elements after the opening '[' has been consumed.
func (p *parser) sequence(offset int) (*Node, error) {
	node := &Node{Kind: KindSequence, Offset: offset}

	for p.dec.More() {
		child, err := p.value()
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, child)
	}

	// Consume the closing ']'.
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

// tokenStart returns the offset of the first byte of the token that was
// just read, given the decoder offset recorded before reading it. The
// region between the two may contain whitespace and the structural
// separators ',' and ':' — never token text — so the first byte outside
// that set is the token's start.
func (p *parser) tokenStart(before int64) int {
	i := int(before)
	for i < len(p.data) {
		switch p.data[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
		default:
			return i
		}
	}
	return i
}

// convertErr normalizes decoder errors into *ParseError with an offset.
func (p *parser) convertErr(err error) error {
	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		return &ParseError{
			Offset: int(synErr.Offset),
			Msg:    synErr.Error(),
		}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{
			Offset: len(p.data),
			Msg:    "unexpected end of input",
		}
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	return &ParseError{Offset: int(p.dec.InputOffset()), Msg: err.Error()}
}
