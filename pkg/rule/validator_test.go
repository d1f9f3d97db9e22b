package rule

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ParseRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, r *Rule)
	}{
		{
			name: "empty object",
			data: `{}`,
			check: func(t *testing.T, r *Rule) {
				assert.Equal(t, Rule{}, *r)
			},
		},
		{
			name: "padding",
			data: `{"padLeft": "padLeft:", "padRight": ":padRight"}`,
			check: func(t *testing.T, r *Rule) {
				assert.Equal(t, "padLeft:", *r.PadLeft)
				assert.Equal(t, ":padRight", *r.PadRight)
			},
		},
		{
			name: "ignore settings",
			data: `{"ignoreIfUndefined": false, "ignoreIfUndefinedReplacement": "x"}`,
			check: func(t *testing.T, r *Rule) {
				assert.False(t, *r.IgnoreIfUndefined)
				assert.Equal(t, "x", *r.IgnoreIfUndefinedReplacement)
			},
		},
		{
			name: "array join",
			data: `{"arrayJoin": ","}`,
			check: func(t *testing.T, r *Rule) {
				assert.Equal(t, ",", *r.ArrayJoin)
			},
		},
		{
			name: "switch",
			data: `{"switch": {"cases": {"first": "first-case"}, "default": "default-case"}}`,
			check: func(t *testing.T, r *Rule) {
				require.NotNil(t, r.Switch)
				assert.Equal(t, map[string]string{"first": "first-case"}, r.Switch.Cases)
				assert.Equal(t, "default-case", *r.Switch.Default)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := v.ParseRule(tt.data)
			require.NoError(t, err)
			require.NotNil(t, r)
			tt.check(t, r)
		})
	}
}

func TestValidator_ParseRule_MalformedJSON(t *testing.T) {
	v := NewValidator()

	_, err := v.ParseRule("invalid-json")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, SourceToken, pe.Source)
	assert.Equal(t, "invalid-json", pe.Input)
	assert.GreaterOrEqual(t, pe.Offset, int64(0))
	assert.True(t, IsParseError(err))
	assert.False(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "parse error in token data")
}

func TestValidator_ParseRule_SchemaViolations(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		data       string
		wantFields []string
	}{
		{"unknown field", `{"invalidKey": "value"}`, []string{""}},
		{"wrong type", `{"padLeft": 1}`, []string{"padLeft"}},
		{"not an object", `"text"`, []string{""}},
		{"null", `null`, []string{""}},
		{"switch without cases", `{"switch": {"default": "x"}}`, []string{"switch"}},
		{"non-string case", `{"switch": {"cases": {"a": 1}}}`, []string{"switch.cases.a"}},
		{"two violations", `{"padLeft": 1, "padRight": true}`, []string{"padLeft", "padRight"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ParseRule(tt.data)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %T: %v", err, err)
			assert.Equal(t, SourceToken, ve.Source)

			fields := make([]string, len(ve.Errors))
			for i, fe := range ve.Errors {
				fields[i] = fe.Field
				assert.True(t, strings.HasPrefix(fe.Error(), "Validation failed with message: '"))
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Equal(t, len(ve.Errors)-1, strings.Count(err.Error(), ";"))
		})
	}
}

func TestValidator_ParseHeader(t *testing.T) {
	v := NewValidator()

	h, err := v.ParseHeader(`{"data": {"padLeft": "padLeft:"}, "empty": {}}`)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "padLeft:", *h["data"].PadLeft)
	assert.Equal(t, Rule{}, *h["empty"])
}

func TestValidator_ParseHeader_Errors(t *testing.T) {
	v := NewValidator()

	t.Run("malformed", func(t *testing.T) {
		_, err := v.ParseHeader(`{"data": `)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, SourceHeader, pe.Source)
	})

	t.Run("rule violates schema", func(t *testing.T) {
		_, err := v.ParseHeader(`{"data": {"bogus": true}}`)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, SourceHeader, ve.Source)
		require.Len(t, ve.Errors, 1)
		assert.Equal(t, "data", ve.Errors[0].Field)
		assert.Equal(t, "/data", ve.Errors[0].InstanceLocation)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := v.ParseHeader(`[1, 2]`)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rule is not an object", func(t *testing.T) {
		_, err := v.ParseHeader(`{"data": "x"}`)
		assert.True(t, IsValidationError(err))
	})
}

func TestValidator_ConcurrentUse(t *testing.T) {
	v := NewValidator()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.ParseRule(`{"padLeft": "x"}`)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestDefaultValidator(t *testing.T) {
	assert.Same(t, DefaultValidator(), DefaultValidator())
}

func TestFieldFromPointer(t *testing.T) {
	assert.Equal(t, "", fieldFromPointer(""))
	assert.Equal(t, "", fieldFromPointer("/"))
	assert.Equal(t, "switch.cases.a", fieldFromPointer("/switch/cases/a"))
}
