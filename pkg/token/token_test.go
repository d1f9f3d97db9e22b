package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		ok      bool
		delim   byte
		name    string
		data    string
		hasData bool
		source  Source
		ref     string
	}{
		{raw: "@key@", ok: true, delim: '@', name: "key", source: SourceNone},
		{raw: "$key$", ok: true, delim: '$', name: "key", source: SourceNone},
		{raw: "@key:#data@", ok: true, delim: '@', name: "key", data: "#data", hasData: true, source: SourceHeader, ref: "data"},
		{raw: `@key:{"padLeft": "a:b"}@`, ok: true, delim: '@', name: "key", data: `{"padLeft": "a:b"}`, hasData: true, source: SourceInline},
		{raw: "$key:invalid-json$", ok: true, delim: '$', name: "key", data: "invalid-json", hasData: true, source: SourceInline},
		{raw: "@key:@", ok: true, delim: '@', name: "key", source: SourceNone},
		{raw: "@@", ok: false},
		{raw: "@:data@", ok: false},
		{raw: "@key$", ok: false},
		{raw: "key", ok: false},
		{raw: "@a@b@", ok: false},
		{raw: "@a\nb@", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tok, ok := Parse(tt.raw)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.delim, tok.Delim)
			assert.Equal(t, tt.name, tok.Name)
			assert.Equal(t, tt.data, tok.Data)
			assert.Equal(t, tt.hasData, tok.HasData)
			assert.Equal(t, tt.source, tok.Source())
			assert.Equal(t, tt.ref, tok.Ref())
			assert.Equal(t, tt.raw, tok.Raw)
		})
	}
}

func TestScan(t *testing.T) {
	text := `My value is @key@, $other:#pad$ and @third:{"padLeft": "x"}@.`

	tokens := Scan(text)
	require.Len(t, tokens, 3)

	assert.Equal(t, "key", tokens[0].Name)
	assert.Equal(t, "other", tokens[1].Name)
	assert.Equal(t, DelimDollar, tokens[1].Delim)
	assert.Equal(t, "third", tokens[2].Name)

	for _, tok := range tokens {
		assert.Equal(t, tok.Raw, text[tok.Start:tok.End])
	}
	assert.Less(t, tokens[0].End, tokens[1].Start)
	assert.Less(t, tokens[1].End, tokens[2].Start)
}

func TestScan_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		names []string
	}{
		{"no tokens", "plain text", nil},
		{"single delimiter", "mail me @ home", nil},
		{"empty token skipped", "a@@b", nil},
		{"empty token then real token", "@@key@", nil},
		{"adjacent tokens", "@a@@b@", []string{"a", "b"}},
		{"unterminated token", "@a$ text", nil},
		{"dollar inside at token", "@price$@", []string{"price$"}},
		{"at inside dollar token", "$user@host$", []string{"user@host"}},
		{"tokens do not span lines", "@a\nb@", nil},
		{"first closing delimiter wins", "@a@b@c@", []string{"a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, tok := range Scan(tt.text) {
				names = append(names, tok.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "none", SourceNone.String())
	assert.Equal(t, "header", SourceHeader.String())
	assert.Equal(t, "inline", SourceInline.String())
	assert.Equal(t, "unknown", Source(42).String())
}
