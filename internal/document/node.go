package document

import (
	"encoding/json"
	"strconv"
)

// Kind discriminates the three node variants of a parsed document tree.
// Every consumer (validator glue, location resolution, exporters)
// switches exhaustively on Kind rather than type-asserting on dynamic
// values.
type Kind int

const (
	// KindMapping is a JSON object with key insertion order preserved.
	KindMapping Kind = iota

	// KindSequence is a JSON array.
	KindSequence

	// KindScalar is a JSON string, number, boolean, or null.
	KindScalar
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Node is one node of a parsed IP card document tree. Exactly one of the
// variant field sets is populated, selected by Kind. Nodes are built once
// by Parse and never mutated afterwards.
type Node struct {
	// Kind selects the active variant.
	Kind Kind

	// Keys holds the mapping's keys in insertion order. Only for KindMapping.
	Keys []string

	// Children maps keys to child nodes. Only for KindMapping.
	Children map[string]*Node

	// Items holds the sequence elements in order. Only for KindSequence.
	Items []*Node

	// Value holds the scalar value: string, json.Number, bool, or nil.
	// Only for KindScalar.
	Value any

	// Offset is the byte offset of the node's first character ('{', '[',
	// '"', or the first digit/letter of the literal) in the stripped
	// text. Because comment stripping preserves offsets, this is also
	// the offset in the original source.
	Offset int
}

// Get returns the child node for key, or nil for non-mappings and
// missing keys.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	return n.Children[key]
}

// Index returns the i-th element, or nil for non-sequences and
// out-of-range indices.
func (n *Node) Index(i int) *Node {
	if n == nil || n.Kind != KindSequence || i < 0 || i >= len(n.Items) {
		return nil
	}
	return n.Items[i]
}

// Resolve walks the path of keys and decimal indices from n and returns
// the reached node. When a path element cannot be followed — a missing
// key, an out-of-range index, or a scalar in the middle of the path —
// Resolve returns the deepest node it did reach and false. That node is
// the nearest enclosing container, which is where synthetic violations
// (e.g. a missing required property) get reported.
func (n *Node) Resolve(path []string) (*Node, bool) {
	cur := n
	for _, seg := range path {
		var next *Node
		switch cur.Kind {
		case KindMapping:
			next = cur.Get(seg)
		case KindSequence:
			if i, err := strconv.Atoi(seg); err == nil {
				next = cur.Index(i)
			}
		}
		if next == nil {
			return cur, false
		}
		cur = next
	}
	return cur, true
}

// Interface converts the tree back into the generic any-typed shape the
// schema validator consumes: map[string]any, []any, and scalar values
// with numbers kept as json.Number.
func (n *Node) Interface() any {
	switch n.Kind {
	case KindMapping:
		m := make(map[string]any, len(n.Keys))
		for _, k := range n.Keys {
			m[k] = n.Children[k].Interface()
		}
		return m
	case KindSequence:
		items := make([]any, len(n.Items))
		for i, it := range n.Items {
			items[i] = it.Interface()
		}
		return items
	default:
		return n.Value
	}
}

// LeafCount returns the number of scalar leaves in the tree. The export
// flattener produces exactly one row per leaf, so this is the expected
// row count for every export format.
func (n *Node) LeafCount() int {
	switch n.Kind {
	case KindMapping:
		total := 0
		for _, k := range n.Keys {
			total += n.Children[k].LeafCount()
		}
		return total
	case KindSequence:
		total := 0
		for _, it := range n.Items {
			total += it.LeafCount()
		}
		return total
	default:
		return 1
	}
}

// ScalarString renders a scalar node's value for display and export.
// Numbers keep their source lexeme via json.Number, null renders as "-".
// Non-scalar nodes render as their kind name.
func (n *Node) ScalarString() string {
	if n.Kind != KindScalar {
		return n.Kind.String()
	}
	switch v := n.Value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "-"
	default:
		return ""
	}
}
