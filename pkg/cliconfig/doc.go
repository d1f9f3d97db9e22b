// Package cliconfig provides configuration types and loading for the
// configurator CLI.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (CONFIGURATOR_* prefix)
//  3. Local config file (.configuratorrc.yaml in current directory)
//  4. Global config file (<user config dir>/configurator/config.yaml)
//  5. Default values
//
// The source of each value is tracked so `configurator config` can show
// where a setting came from.
package cliconfig
