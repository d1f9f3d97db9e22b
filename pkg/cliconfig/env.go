package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig    = "CONFIGURATOR_CONFIG"
	EnvEncoding  = "CONFIGURATOR_ENCODING"
	EnvCache     = "CONFIGURATOR_CACHE"
	EnvMaxDepth  = "CONFIGURATOR_MAX_DEPTH"
	EnvSuffix    = "CONFIGURATOR_SUFFIX"
	EnvLogLevel  = "CONFIGURATOR_LOG_LEVEL"
	EnvLogFormat = "CONFIGURATOR_LOG_FORMAT"
	EnvLogFile   = "CONFIGURATOR_LOG_FILE"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvEncoding); v != "" {
		cfg.Encoding = v
		cfg.Sources["encoding"] = SourceEnv
	}

	if v := os.Getenv(EnvCache); v != "" {
		cfg.Cache = parseBool(v)
		cfg.Sources["cache"] = SourceEnv
	}

	if v := os.Getenv(EnvMaxDepth); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			cfg.MaxDepth = depth
			cfg.Sources["maxDepth"] = SourceEnv
		}
	}

	if v := os.Getenv(EnvSuffix); v != "" {
		cfg.Suffix = v
		cfg.Sources["suffix"] = SourceEnv
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
		cfg.Sources["logFile"] = SourceEnv
	}
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
