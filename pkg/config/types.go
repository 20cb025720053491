package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent skald CLI configuration stored as
// config.toml in the .skald/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Client  ClientConfig `toml:"client"`
	Output  OutputConfig `toml:"output"`
}

// APIConfig holds connection settings for the Skald API.
type APIConfig struct {
	Key     string `toml:"key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// ClientConfig holds request behavior settings.
type ClientConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds,omitempty"`
}

// OutputConfig holds terminal output preferences.
type OutputConfig struct {
	// Markdown renders chat and generate responses through glamour when
	// true; raw text otherwise. A pointer so an explicit false survives
	// the round trip through config.toml; nil means unset.
	Markdown *bool `toml:"markdown,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter
// on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.key": {
		get: func(c *Config) string { return c.API.Key },
		set: func(c *Config, v string) error { c.API.Key = v; return nil },
	},
	"api.base_url": {
		get: func(c *Config) string { return c.API.BaseURL },
		set: func(c *Config, v string) error { c.API.BaseURL = v; return nil },
	},
	"client.timeout_seconds": {
		get: func(c *Config) string {
			if c.Client.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.Itoa(c.Client.TimeoutSeconds)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value for client.timeout_seconds: %q", v)
			}
			c.Client.TimeoutSeconds = n
			return nil
		},
	},
	"output.markdown": {
		get: func(c *Config) string {
			if c.Output.Markdown == nil {
				return ""
			}
			return strconv.FormatBool(*c.Output.Markdown)
		},
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for output.markdown: %q", v)
			}
			c.Output.Markdown = &b
			return nil
		},
	},
}
