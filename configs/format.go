package configs

import "os"

// EnvOutputFormat overrides the OutputFormat config item for the whole session.
const EnvOutputFormat = "DW_OUTPUT_FORMAT"

// GetGlobalOutputFormat returns the result set format name for directory commands.
// DW_OUTPUT_FORMAT wins over the config file. An empty name selects the default rendering.
func (c *Config) GetGlobalOutputFormat() string {
	if name, ok := os.LookupEnv(EnvOutputFormat); ok && name != "" {
		return name
	}
	if c == nil {
		return ""
	}
	return c.OutputFormat
}
