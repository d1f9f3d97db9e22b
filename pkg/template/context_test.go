package template

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLookup(t *testing.T) {
	ctx := Context{
		"str":     "value",
		"yes":     true,
		"no":      false,
		"null":    nil,
		"list":    []string{"a", "b"},
		"anyList": []any{"a", 1, false},
		"float":   1.5,
		"int":     42,
		"number":  json.Number("7"),
		"time":    time.Duration(0),
	}

	tests := []struct {
		key  string
		want Value
	}{
		{"str", StringValue("value")},
		{"yes", StringValue("true")},
		{"no", StringValue("false")},
		{"null", StringValue("null")},
		{"list", ListValue("a", "b")},
		{"anyList", ListValue("a", "1", "false")},
		{"float", StringValue("1.5")},
		{"int", StringValue("42")},
		{"number", StringValue("7")},
		{"time", StringValue("0s")},
		{"missing", Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ctx.Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextLookup_Unsupported(t *testing.T) {
	ctx := Context{
		"map":    map[string]any{},
		"nested": []any{"a", []any{"b"}},
	}

	_, err := ctx.Lookup("map")
	var ve *ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "map", ve.Key)

	_, err = ctx.Lookup("nested")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nested[1]", ve.Key)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestNilContext(t *testing.T) {
	var ctx Context
	got, err := ctx.Lookup("anything")
	require.NoError(t, err)
	assert.Equal(t, KindUndefined, got.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "undefined", KindUndefined.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
