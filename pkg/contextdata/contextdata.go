package contextdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/configurator/pkg/template"
)

// Common errors for context loading.
var (
	ErrInvalidJSON   = errors.New("invalid JSON context")
	ErrInvalidYAML   = errors.New("invalid YAML context")
	ErrNotObject     = errors.New("context must be an object")
	ErrInvalidSet    = errors.New("expected key=value")
	ErrEmptyKey      = errors.New("context key cannot be empty")
	ErrEmptyFilePath = errors.New("context file path cannot be empty")
)

// Builder accumulates a template.Context.
type Builder struct {
	ctx template.Context
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ctx: template.Context{}}
}

// Context returns the accumulated context. The returned map is a copy.
func (b *Builder) Context() template.Context {
	out := make(template.Context, len(b.ctx))
	for k, v := range b.ctx {
		out[k] = v
	}
	return out
}

// Merge copies every top-level key of ctx into the builder.
func (b *Builder) Merge(ctx template.Context) *Builder {
	for k, v := range ctx {
		b.ctx[k] = v
	}
	return b
}

// LoadFile merges the object stored in a JSON or YAML file. The format is
// chosen by extension: .yaml and .yml are YAML, everything else is JSON.
func (b *Builder) LoadFile(path string) error {
	ctx, err := LoadFile(path)
	if err != nil {
		return err
	}
	b.Merge(ctx)
	return nil
}

// Set assigns a string value from a key=value pair.
func (b *Builder) Set(pair string) error {
	key, value, err := splitPair(pair)
	if err != nil {
		return err
	}
	b.ctx[key] = value
	return nil
}

// SetList assigns a list value from a key=a,b,c pair. An empty value
// assigns an empty list.
func (b *Builder) SetList(pair string) error {
	key, value, err := splitPair(pair)
	if err != nil {
		return err
	}
	items := []string{}
	if value != "" {
		items = strings.Split(value, ",")
	}
	b.ctx[key] = items
	return nil
}

// SetNull assigns null to key.
func (b *Builder) SetNull(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	b.ctx[key] = nil
	return nil
}

// LoadEnv merges environment entries whose name starts with prefix. The
// prefix is removed from the key. An empty prefix merges nothing.
func (b *Builder) LoadEnv(environ []string, prefix string) {
	for k, v := range FromEnviron(environ, prefix) {
		b.ctx[k] = v
	}
}

func splitPair(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSet, pair)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrEmptyKey, pair)
	}
	return key, value, nil
}

// LoadFile reads a context object from a JSON or YAML file.
func LoadFile(path string) (template.Context, error) {
	if path == "" {
		return nil, ErrEmptyFilePath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		ctx, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ctx, nil
	}

	ctx, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ctx, nil
}

// ParseJSON decodes a JSON object. Numbers keep their literal form.
func ParseJSON(data []byte) (template.Context, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return template.Context(obj), nil
}

// ParseYAML decodes a YAML mapping. An empty document is an empty context.
func ParseYAML(data []byte) (template.Context, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if raw == nil {
		return template.Context{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return template.Context(obj), nil
}

// FromEnviron returns the entries of environ (in os.Environ form) whose
// name starts with prefix, keyed by the remainder of the name.
func FromEnviron(environ []string, prefix string) template.Context {
	ctx := template.Context{}
	if prefix == "" {
		return ctx
	}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.TrimPrefix(name, prefix)
		if key == "" {
			continue
		}
		ctx[key] = value
	}
	return ctx
}
