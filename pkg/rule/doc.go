// Package rule defines the per-key formatting rules used by the configurator
// template engine, and validates raw rule JSON against a fixed schema.
//
// A rule is authored as a JSON object, either inline in a token
// (@key:{"padLeft": "<"}@) or as a named entry of a document header
// ([header]{"name": {...}}[header]). All fields are optional:
//
//   - padLeft, padRight: strings placed around every rendered value
//   - ignoreIfUndefined: when true (default), an undefined key renders as
//     ignoreIfUndefinedReplacement instead of the literal "undefined"
//   - ignoreIfUndefinedReplacement: replacement for ignored keys (default "")
//   - arrayJoin: separator used when the context value is a list (default "")
//   - switch: {"cases": {"value": "replacement"}, "default": "fallback"}
//
// Unknown fields are rejected. Raw rules keep their optional fields as
// pointers; Normalize turns them into a Spec with every default filled in,
// and it is the only place defaults are applied.
//
// # Validation
//
// Validator compiles the embedded JSON Schema once and reports violations as
// a *ValidationError carrying one *FieldError per violated constraint.
// Malformed JSON is reported as a *ParseError.
package rule
