package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied, except for keys listed in
// source.SetFields, which are applied even when zero.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Encoding != "" {
		target.Encoding = source.Encoding
		target.Sources["encoding"] = sourceType
	}
	if boolIsSet(source, "cache") {
		target.Cache = source.Cache
		target.Sources["cache"] = sourceType
	}
	if source.MaxDepth != 0 || source.SetFields["maxDepth"] {
		target.MaxDepth = source.MaxDepth
		target.Sources["maxDepth"] = sourceType
	}
	if source.Suffix != "" {
		target.Suffix = source.Suffix
		target.Sources["suffix"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources["logFile"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields only true counts
// as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "cache":
		return cfg.Cache
	case "json":
		return cfg.JSON
	}
	return false
}
