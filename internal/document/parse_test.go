package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_Scalars verifies the scalar variants and their offsets.
func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		value  any
		offset int
	}{
		{"string", `  "hello"`, "hello", 2},
		{"number", ` 42`, json.Number("42"), 1},
		{"decimal keeps lexeme", `1.50`, json.Number("1.50"), 0},
		{"true", `true`, true, 0},
		{"false", ` false`, false, 1},
		{"null", `null`, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, KindScalar, node.Kind)
			assert.Equal(t, tt.value, node.Value)
			assert.Equal(t, tt.offset, node.Offset)
		})
	}
}

// TestParse_MappingOrderAndOffsets verifies that key insertion order is
// preserved and every node records the offset of its first character.
func TestParse_MappingOrderAndOffsets(t *testing.T) {
	in := `{"zeta": 1, "alpha": {"nested": "v"}, "beta": [10, 20]}`
	node, err := Parse([]byte(in))
	require.NoError(t, err)

	require.Equal(t, KindMapping, node.Kind)
	assert.Equal(t, 0, node.Offset)
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, node.Keys)

	// Value offsets point at the first character of each value.
	assert.Equal(t, strings.Index(in, "1,"), node.Get("zeta").Offset)
	assert.Equal(t, strings.Index(in, `{"nested"`), node.Get("alpha").Offset)
	assert.Equal(t, strings.Index(in, `"v"`), node.Get("alpha").Get("nested").Offset)
	assert.Equal(t, strings.Index(in, "[10"), node.Get("beta").Offset)
	assert.Equal(t, strings.Index(in, "10"), node.Get("beta").Index(0).Offset)
	assert.Equal(t, strings.Index(in, "20"), node.Get("beta").Index(1).Offset)
}

// TestParse_StrictJSON verifies that relaxed-JSON constructs are hard
// parse failures — JSONC support covers comments only.
func TestParse_StrictJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"trailing comma in object", `{"a": 1,}`},
		{"trailing comma in array", `[1, 2,]`},
		{"unquoted key", `{a: 1}`},
		{"single quotes", `{'a': 1}`},
		{"bare word", `nope`},
		{"trailing garbage", `{"a": 1} extra`},
		{"unclosed object", `{"a": 1`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr, "all failures must be ParseError")
			assert.GreaterOrEqual(t, parseErr.Offset, 0)
			assert.LessOrEqual(t, parseErr.Offset, len(tt.in))
		})
	}
}

// TestParse_DuplicateKey verifies last-wins value with first-position key
// order, matching encoding/json behavior.
func TestParse_DuplicateKey(t *testing.T) {
	node, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, node.Keys)
	assert.Equal(t, json.Number("3"), node.Get("a").Value)
}

// TestResolve verifies path walking, including the nearest-container
// fallback for unresolvable path elements.
func TestResolve(t *testing.T) {
	node, err := Parse([]byte(`{"clock": {"frequency": 100}, "ports": [{"name": "axi"}]}`))
	require.NoError(t, err)

	// Exact hits.
	got, exact := node.Resolve([]string{"clock", "frequency"})
	require.True(t, exact)
	assert.Equal(t, json.Number("100"), got.Value)

	got, exact = node.Resolve([]string{"ports", "0", "name"})
	require.True(t, exact)
	assert.Equal(t, "axi", got.Value)

	// Missing key falls back to the enclosing mapping.
	got, exact = node.Resolve([]string{"clock", "missing"})
	assert.False(t, exact)
	assert.Same(t, node.Get("clock"), got)

	// Out-of-range index falls back to the sequence.
	got, exact = node.Resolve([]string{"ports", "7"})
	assert.False(t, exact)
	assert.Same(t, node.Get("ports"), got)

	// Scalar mid-path falls back to the scalar itself.
	got, exact = node.Resolve([]string{"clock", "frequency", "deeper"})
	assert.False(t, exact)
	assert.Equal(t, json.Number("100"), got.Value)

	// Empty path resolves to the root.
	got, exact = node.Resolve(nil)
	assert.True(t, exact)
	assert.Same(t, node, got)
}

// TestInterface verifies conversion to the generic shape the validator
// consumes.
func TestInterface(t *testing.T) {
	node, err := Parse([]byte(`{"a": [1, "x", true, null]}`))
	require.NoError(t, err)

	want := map[string]any{
		"a": []any{json.Number("1"), "x", true, nil},
	}
	assert.Equal(t, want, node.Interface())
}

// TestLeafCount verifies the leaf-per-row invariant the exporters rely on.
func TestLeafCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`"scalar"`, 1},
		{`{}`, 0},
		{`{"a": 1, "b": {"c": 2, "d": [3, 4]}}`, 4},
		{`[[1, 2], [3]]`, 3},
	}

	for _, tt := range tests {
		node, err := Parse([]byte(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, node.LeafCount(), "input: %s", tt.in)
	}
}

// TestScalarString verifies export rendering of scalar values.
func TestScalarString(t *testing.T) {
	node, err := Parse([]byte(`{"s": "txt", "n": 1.50, "t": true, "f": false, "z": null}`))
	require.NoError(t, err)

	assert.Equal(t, "txt", node.Get("s").ScalarString())
	assert.Equal(t, "1.50", node.Get("n").ScalarString(), "numeric lexeme must be preserved")
	assert.Equal(t, "true", node.Get("t").ScalarString())
	assert.Equal(t, "false", node.Get("f").ScalarString())
	assert.Equal(t, "-", node.Get("z").ScalarString())
}

// TestKind_String covers the Kind enum rendering.
func TestKind_String(t *testing.T) {
	assert.Equal(t, "mapping", KindMapping.String())
	assert.Equal(t, "sequence", KindSequence.String())
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
