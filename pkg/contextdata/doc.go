// Package contextdata builds the data context a template is rendered
// against from JSON or YAML files, key=value assignments and environment
// variables.
//
// Sources are merged in the order they are applied; a later source replaces
// top-level keys set by an earlier one. Nested objects are replaced, not
// merged.
package contextdata
