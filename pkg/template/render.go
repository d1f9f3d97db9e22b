package template

import (
	"strings"

	"github.com/getmockd/configurator/pkg/rule"
	"github.com/getmockd/configurator/pkg/token"
)

// undefinedLiteral is rendered for undefined keys that are not ignored.
const undefinedLiteral = "undefined"

// renderValue produces the substitution text for one token.
// An ignored undefined value takes the replacement even when the rule has a
// switch; only a kept undefined value reaches the switch default.
func (e *Engine) renderValue(tok token.Token, value Value, spec rule.Spec, rules rule.Header, ctx Context, depth int) (string, error) {
	if value.Kind == KindUndefined && spec.IgnoreIfUndefined {
		return spec.IgnoreIfUndefinedReplacement, nil
	}

	if spec.Switch != nil && value.Kind != KindList {
		selected := spec.Switch.Default
		if value.Kind == KindString {
			selected = spec.Switch.Select(value.Str)
		}
		e.logger.Debug("switch case selected", "key", tok.Name, "value", value.Str, "kind", value.Kind.String(), "depth", depth)
		return e.render(selected, rules, ctx, depth+1)
	}

	switch value.Kind {
	case KindUndefined:
		return undefinedLiteral, nil

	case KindList:
		parts := make([]string, len(value.List))
		for i, item := range value.List {
			parts[i] = spec.PadLeft + item + spec.PadRight
		}
		return strings.Join(parts, spec.ArrayJoin), nil

	default:
		return spec.PadLeft + value.Str + spec.PadRight, nil
	}
}
