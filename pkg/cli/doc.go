// Package cli provides the command-line interface for configurator.
//
// Commands:
//   - render: Render templates to stdout, a file, or next to their inputs
//   - check: Validate template headers and rules without rendering
//   - config: Display effective configuration
//   - version: Show configurator version
//
// Configuration is layered: flags, CONFIGURATOR_* environment variables,
// a local .configuratorrc.yaml, a global config file, then defaults.
package cli
