package cliconfig

// CLIConfig represents the complete configuration for the configurator CLI.
type CLIConfig struct {
	// Template reading
	Encoding string `yaml:"encoding" json:"encoding"`
	Cache    bool   `yaml:"cache" json:"cache"`
	MaxDepth int    `yaml:"maxDepth" json:"maxDepth"`

	// Suffix is stripped from input names by `render --write`.
	Suffix string `yaml:"suffix" json:"suffix"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// ConfigFile is the explicit config path, if one was given.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were present in a loaded file, so an
	// explicit false or zero can be told apart from an absent key.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)

// Keys lists the config keys in display order.
var Keys = []string{
	"encoding",
	"cache",
	"maxDepth",
	"suffix",
	"logLevel",
	"logFormat",
	"logFile",
	"json",
}

// Value returns the display form of the value stored under key.
func (c *CLIConfig) Value(key string) string {
	switch key {
	case "encoding":
		return c.Encoding
	case "cache":
		return formatBool(c.Cache)
	case "maxDepth":
		return itoa(c.MaxDepth)
	case "suffix":
		return c.Suffix
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "logFile":
		return c.LogFile
	case "json":
		return formatBool(c.JSON)
	}
	return ""
}

// Source returns where the value under key came from.
func (c *CLIConfig) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
