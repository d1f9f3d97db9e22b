package cliconfig

import (
	"strconv"

	"github.com/getmockd/configurator/pkg/template"
)

// DefaultEncoding is the default template file encoding.
const DefaultEncoding = "utf-8"

// DefaultCache is whether template files are cached by default.
const DefaultCache = false

// DefaultMaxDepth is the default switch expansion depth limit.
const DefaultMaxDepth = template.DefaultMaxDepth

// DefaultSuffix is stripped from template names when writing output.
const DefaultSuffix = ".in"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

func itoa(i int) string {
	return strconv.Itoa(i)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Encoding:  DefaultEncoding,
		Cache:     DefaultCache,
		MaxDepth:  DefaultMaxDepth,
		Suffix:    DefaultSuffix,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	// Mark all as default source
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
