package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNormalize_Defaults(t *testing.T) {
	for name, r := range map[string]*Rule{"nil rule": nil, "empty rule": {}} {
		t.Run(name, func(t *testing.T) {
			spec := Normalize(r)
			assert.Equal(t, "", spec.PadLeft)
			assert.Equal(t, "", spec.PadRight)
			assert.True(t, spec.IgnoreIfUndefined)
			assert.Equal(t, "", spec.IgnoreIfUndefinedReplacement)
			assert.Equal(t, "", spec.ArrayJoin)
			assert.Nil(t, spec.Switch)
		})
	}
}

func TestNormalize_ExplicitValues(t *testing.T) {
	r := &Rule{
		PadLeft:                      strPtr("<"),
		PadRight:                     strPtr(">"),
		IgnoreIfUndefined:            boolPtr(false),
		IgnoreIfUndefinedReplacement: strPtr("n/a"),
		ArrayJoin:                    strPtr(", "),
		Switch: &Switch{
			Cases:   map[string]string{"a": "A"},
			Default: strPtr("other"),
		},
	}

	spec := Normalize(r)
	assert.Equal(t, "<", spec.PadLeft)
	assert.Equal(t, ">", spec.PadRight)
	assert.False(t, spec.IgnoreIfUndefined)
	assert.Equal(t, "n/a", spec.IgnoreIfUndefinedReplacement)
	assert.Equal(t, ", ", spec.ArrayJoin)
	require.NotNil(t, spec.Switch)
	assert.Equal(t, "other", spec.Switch.Default)
	assert.Equal(t, "A", spec.Switch.Select("a"))
	assert.Equal(t, "other", spec.Switch.Select("b"))
}

func TestNormalize_SwitchDefaultIsEmpty(t *testing.T) {
	spec := Normalize(&Rule{Switch: &Switch{Cases: map[string]string{"a": "A"}}})
	require.NotNil(t, spec.Switch)
	assert.Equal(t, "", spec.Switch.Default)
	assert.Equal(t, "", spec.Switch.Select("missing"))
}

func TestNormalize_EmptyCaseValueIsSelected(t *testing.T) {
	spec := Normalize(&Rule{Switch: &Switch{
		Cases:   map[string]string{"off": ""},
		Default: strPtr("fallback"),
	}})
	assert.Equal(t, "", spec.Switch.Select("off"))
}

func TestNormalize_DoesNotModifyRule(t *testing.T) {
	r := &Rule{PadLeft: strPtr("x")}
	_ = Normalize(r)
	assert.Nil(t, r.PadRight)
	assert.Nil(t, r.IgnoreIfUndefined)
	assert.Equal(t, "x", *r.PadLeft)
}

func TestHeader_Lookup(t *testing.T) {
	h := Header{"pad": {PadLeft: strPtr("-")}}

	r, ok := h.Lookup("pad")
	require.True(t, ok)
	assert.Equal(t, "-", *r.PadLeft)

	_, ok = h.Lookup("missing")
	assert.False(t, ok)

	var empty Header
	_, ok = empty.Lookup("pad")
	assert.False(t, ok)
}
