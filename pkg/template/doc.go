// Package template renders configurator documents: it strips the optional
// header block, finds every token in the remaining body and replaces it with
// a value from the caller's Context, formatted by the token's rule.
//
// # Tokens
//
//   - @key@ or $key$ - the context value with the default rule
//   - @key:#name@ - the value formatted by rule "name" from the header
//   - @key:{"padLeft": "<", "padRight": ">"}@ - an inline JSON rule
//
// # Values
//
// Context values may be strings, booleans, nil or string lists. Booleans
// render as "true"/"false" and nil as "null". Numbers decoded from JSON or
// YAML context files are rendered in their shortest decimal form. A key that
// is absent from the Context is undefined:
//
//   - with ignoreIfUndefined (the default) it renders as
//     ignoreIfUndefinedReplacement, which defaults to ""
//   - with "ignoreIfUndefined": false it renders as the literal "undefined"
//
// Lists render every element as padLeft+element+padRight and join the
// results with arrayJoin.
//
// # Switches
//
// A rule with a switch replaces a string value by switch.cases[value], or by
// switch.default when the value has no case or is undefined. The selected
// text is rendered again as a document body with the same Context and
// header, so a case may contain further tokens, including #name references.
// Lists ignore the switch. Nested switch expansion is limited to MaxDepth
// levels; deeper (usually cyclic) expansion fails with ErrMaxDepth.
//
// # Errors
//
// Malformed JSON in the header or in token data fails with a
// *rule.ParseError and schema violations with a *rule.ValidationError. Any
// error aborts the whole render; there is no partial output. A #name that
// is not declared in the header is not an error: the token uses the default
// rule.
//
// An Engine holds no per-render state and is safe for concurrent use.
package template
