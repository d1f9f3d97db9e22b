package template

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Context holds the values available to tokens, keyed by name.
//
// Supported values are string, bool, nil, []string and, for data decoded
// from JSON or YAML, numbers and []any of scalars. Rendering never modifies
// a Context.
type Context map[string]any

// Kind classifies a looked-up context value.
type Kind int

const (
	// KindUndefined means the key is absent from the Context.
	KindUndefined Kind = iota
	// KindString is a single string (booleans, null and numbers included).
	KindString
	// KindList is a sequence of strings.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a context value coerced for rendering.
type Value struct {
	Kind Kind
	Str  string
	List []string
}

// Undefined is the value of an absent key.
var Undefined = Value{Kind: KindUndefined}

// StringValue returns a KindString value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// ListValue returns a KindList value.
func ListValue(items ...string) Value {
	return Value{Kind: KindList, List: items}
}

// ValueError reports a context value that cannot be rendered.
type ValueError struct {
	Key  string
	Type string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("context value %q has unsupported type %s", e.Key, e.Type)
}

// Lookup returns the coerced value for name. Absent keys yield Undefined.
func (c Context) Lookup(name string) (Value, error) {
	raw, ok := c[name]
	if !ok {
		return Undefined, nil
	}

	switch v := raw.(type) {
	case []string:
		return ListValue(v...), nil
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := formatScalar(item)
			if !ok {
				return Undefined, &ValueError{Key: fmt.Sprintf("%s[%d]", name, i), Type: fmt.Sprintf("%T", item)}
			}
			items[i] = s
		}
		return ListValue(items...), nil
	}

	s, ok := formatScalar(raw)
	if !ok {
		return Undefined, &ValueError{Key: name, Type: fmt.Sprintf("%T", raw)}
	}
	return StringValue(s), nil
}

// formatScalar converts a scalar value to its string representation.
func formatScalar(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "null", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		return v.String(), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
