package template

import (
	"github.com/getmockd/configurator/pkg/rule"
	"github.com/getmockd/configurator/pkg/token"
)

// resolve builds the normalized rule for a token. Header references that do
// not exist resolve to the default rule.
func (e *Engine) resolve(tok token.Token, rules rule.Header) (rule.Spec, error) {
	switch tok.Source() {
	case token.SourceHeader:
		name := tok.Ref()
		r, ok := rules.Lookup(name)
		if !ok {
			e.logger.Debug("header rule not found, using defaults", "key", tok.Name, "rule", name)
		}
		return rule.Normalize(r), nil

	case token.SourceInline:
		r, err := e.validator.ParseRule(tok.Data)
		if err != nil {
			return rule.Spec{}, err
		}
		return rule.Normalize(r), nil

	default:
		return rule.Normalize(nil), nil
	}
}
