package rule

import (
	"errors"
	"fmt"
	"strings"
)

// Parse sources identify where malformed JSON was found.
const (
	SourceHeader = "header"
	SourceToken  = "token"
)

// ParseError reports malformed JSON in a header block or token data.
type ParseError struct {
	// Source is SourceHeader or SourceToken.
	Source string

	// Input is the JSON text that failed to parse.
	Input string

	// Offset is the byte offset of the syntax error within Input, or -1.
	Offset int64

	Err error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse error in %s data at offset %d: %v", e.Source, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse error in %s data: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError describes a single violated schema constraint.
type FieldError struct {
	// Field is the dotted path of the offending value ("" for the root).
	Field string `json:"field"`

	// InstanceLocation is the JSON pointer of the offending value.
	InstanceLocation string `json:"instanceLocation"`

	// Constraint is the schema keyword location that failed.
	Constraint string `json:"constraint"`

	// Message is the validator's description of the failure.
	Message string `json:"message"`
}

// Error returns the full formatted message for this violation.
func (e *FieldError) Error() string {
	return fmt.Sprintf("Validation failed with message: '%s'. Constraint '%s' failed for '%s'.",
		e.Message, e.Constraint, e.InstanceLocation)
}

// ValidationError reports one or more schema violations.
type ValidationError struct {
	// Source is SourceHeader or SourceToken.
	Source string

	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, ";")
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
