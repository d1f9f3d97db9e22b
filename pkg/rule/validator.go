package rule

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "configurator.schema.json"

// Validator parses and validates rule JSON against the embedded schema.
// The schema is compiled on first use; a Validator is safe for concurrent use.
type Validator struct {
	once        sync.Once
	header      *jsonschema.Schema
	rule        *jsonschema.Schema
	schemaError error
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

var defaultValidator = NewValidator()

// DefaultValidator returns the process-wide Validator.
func DefaultValidator() *Validator {
	return defaultValidator
}

// ParseRule decodes inline token data into a validated Rule.
func (v *Validator) ParseRule(data string) (*Rule, error) {
	raw, err := decode(SourceToken, data)
	if err != nil {
		return nil, err
	}
	if err := v.ValidateRule(raw); err != nil {
		return nil, err
	}

	var r Rule
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, &ParseError{Source: SourceToken, Input: data, Offset: -1, Err: err}
	}
	return &r, nil
}

// ParseHeader decodes header block content into validated named rules.
func (v *Validator) ParseHeader(data string) (Header, error) {
	raw, err := decode(SourceHeader, data)
	if err != nil {
		return nil, err
	}
	if err := v.ValidateHeader(raw); err != nil {
		return nil, err
	}

	h := make(Header)
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		return nil, &ParseError{Source: SourceHeader, Input: data, Offset: -1, Err: err}
	}
	return h, nil
}

// ValidateRule validates a decoded JSON value as a single rule object.
func (v *Validator) ValidateRule(raw any) error {
	if err := v.compile(); err != nil {
		return err
	}
	return validate(v.rule, SourceToken, raw)
}

// ValidateHeader validates a decoded JSON value as a mapping of rule names
// to rule objects.
func (v *Validator) ValidateHeader(raw any) error {
	if err := v.compile(); err != nil {
		return err
	}
	return validate(v.header, SourceHeader, raw)
}

func (v *Validator) compile() error {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			v.schemaError = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		if v.header, v.schemaError = compiler.Compile(schemaURL); v.schemaError != nil {
			return
		}
		v.rule, v.schemaError = compiler.Compile(schemaURL + "#/$defs/rule")
	})
	if v.schemaError != nil {
		return fmt.Errorf("schema compilation error: %w", v.schemaError)
	}
	return nil
}

func decode(source, data string) (any, error) {
	var raw any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		pe := &ParseError{Source: source, Input: data, Offset: -1, Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			pe.Offset = syntaxErr.Offset
		}
		return nil, pe
	}
	return raw, nil
}

func validate(schema *jsonschema.Schema, source string, raw any) error {
	err := schema.Validate(raw)
	if err == nil {
		return nil
	}

	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return err
	}

	ve := &ValidationError{Source: source}
	collectSchemaErrors(schemaErr, ve)
	sort.SliceStable(ve.Errors, func(i, j int) bool {
		if ve.Errors[i].InstanceLocation != ve.Errors[j].InstanceLocation {
			return ve.Errors[i].InstanceLocation < ve.Errors[j].InstanceLocation
		}
		return ve.Errors[i].Constraint < ve.Errors[j].Constraint
	})
	return ve
}

// collectSchemaErrors flattens the cause tree into leaf violations.
func collectSchemaErrors(err *jsonschema.ValidationError, ve *ValidationError) {
	if len(err.Causes) == 0 {
		ve.Errors = append(ve.Errors, &FieldError{
			Field:            fieldFromPointer(err.InstanceLocation),
			InstanceLocation: err.InstanceLocation,
			Constraint:       err.KeywordLocation,
			Message:          err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, ve)
	}
}

// fieldFromPointer converts a JSON pointer to dot notation.
func fieldFromPointer(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	pointer = strings.TrimPrefix(pointer, "/")
	return strings.ReplaceAll(pointer, "/", ".")
}
