package template

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/getmockd/configurator/pkg/header"
	"github.com/getmockd/configurator/pkg/logging"
	"github.com/getmockd/configurator/pkg/rule"
	"github.com/getmockd/configurator/pkg/token"
)

// DefaultMaxDepth is the default limit for nested switch expansion.
const DefaultMaxDepth = 64

// ErrMaxDepth is returned when switch expansion nests deeper than the
// engine's MaxDepth, which normally means a case expands to itself.
var ErrMaxDepth = errors.New("maximum switch expansion depth exceeded")

// Engine renders configurator documents.
type Engine struct {
	validator *rule.Validator
	logger    *slog.Logger
	maxDepth  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithValidator sets the rule validator. The process-wide validator is used
// by default.
func WithValidator(v *rule.Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithMaxDepth limits nested switch expansion. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		e.maxDepth = depth
	}
}

// New creates a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		validator: rule.DefaultValidator(),
		logger:    logging.Nop(),
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the switch expansion limit.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// Process renders input against ctx: the header block is extracted and
// stripped, then every token in the body is replaced in a single pass.
func (e *Engine) Process(input string, ctx Context) (string, error) {
	h, err := header.Extract(input, e.validator)
	if err != nil {
		return "", err
	}
	return e.Render(h.Body(input), h.Rules, ctx)
}

// Render replaces the tokens of an already header-stripped body, resolving
// #name references against rules.
func (e *Engine) Render(body string, rules rule.Header, ctx Context) (string, error) {
	return e.render(body, rules, ctx, 0)
}

func (e *Engine) render(body string, rules rule.Header, ctx Context, depth int) (string, error) {
	if depth > e.maxDepth {
		e.logger.Warn("switch expansion too deep", "depth", depth, "maxDepth", e.maxDepth)
		return "", fmt.Errorf("%w (%d)", ErrMaxDepth, e.maxDepth)
	}

	tokens := token.Scan(body)
	if len(tokens) == 0 {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, tok := range tokens {
		spec, err := e.resolve(tok, rules)
		if err != nil {
			return "", fmt.Errorf("token %s: %w", tok.Raw, err)
		}

		value, err := ctx.Lookup(tok.Name)
		if err != nil {
			return "", fmt.Errorf("token %s: %w", tok.Raw, err)
		}

		out, err := e.renderValue(tok, value, spec, rules, ctx, depth)
		if err != nil {
			return "", err
		}

		b.WriteString(body[last:tok.Start])
		b.WriteString(out)
		last = tok.End
	}
	b.WriteString(body[last:])

	return b.String(), nil
}

// Summary describes a document that passed Check.
type Summary struct {
	// Rules is the number of rules declared in the header.
	Rules int

	// Tokens is the number of tokens in the body, not counting tokens
	// inside switch cases.
	Tokens int
}

// Check validates input without a context: the header must parse, every
// token rule must resolve, and every switch case and default must itself
// check. It reports ErrMaxDepth for cases that expand into themselves.
func (e *Engine) Check(input string) (*Summary, error) {
	h, err := header.Extract(input, e.validator)
	if err != nil {
		return nil, err
	}

	body := h.Body(input)
	if err := e.check(body, h.Rules, 0); err != nil {
		return nil, err
	}
	return &Summary{Rules: len(h.Rules), Tokens: len(token.Scan(body))}, nil
}

func (e *Engine) check(body string, rules rule.Header, depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("%w (%d)", ErrMaxDepth, e.maxDepth)
	}

	for _, tok := range token.Scan(body) {
		spec, err := e.resolve(tok, rules)
		if err != nil {
			return fmt.Errorf("token %s: %w", tok.Raw, err)
		}
		if spec.Switch == nil {
			continue
		}
		// Cases are checked in key order so the first error reported is stable.
		values := make([]string, 0, len(spec.Switch.Cases))
		for value := range spec.Switch.Cases {
			values = append(values, value)
		}
		sort.Strings(values)
		for _, value := range values {
			if err := e.check(spec.Switch.Cases[value], rules, depth+1); err != nil {
				return err
			}
		}
		if err := e.check(spec.Switch.Default, rules, depth+1); err != nil {
			return err
		}
	}
	return nil
}
