package cliconfig

import (
	"errors"
	"fmt"

	"github.com/getmockd/configurator/pkg/loader"
	"github.com/getmockd/configurator/pkg/logging"
)

// MaxMaxDepth bounds the configurable switch expansion depth.
const MaxMaxDepth = 10000

// Validate checks the configuration for values the CLI cannot use.
func (c *CLIConfig) Validate() error {
	var errs []error

	if _, err := loader.Lookup(c.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("encoding: %w", err))
	}
	if c.MaxDepth < 1 || c.MaxDepth > MaxMaxDepth {
		errs = append(errs, fmt.Errorf("maxDepth %d is out of range (1-%d)", c.MaxDepth, MaxMaxDepth))
	}
	if c.Suffix == "" {
		errs = append(errs, errors.New("suffix cannot be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("logFormat: %w", err))
	}

	return errors.Join(errs...)
}
