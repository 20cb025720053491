package config

import "github.com/useskald/skald-go/pkg/skald"

// NewDefaultConfig returns a fully-populated Config with sane defaults.
// The API key has no default; it must come from the config file, the
// SKALD_API_KEY environment variable or a flag.
func NewDefaultConfig() *Config {
	markdown := true
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			BaseURL: skald.DefaultBaseURL,
		},
		Client: ClientConfig{
			TimeoutSeconds: int(skald.DefaultTimeout.Seconds()),
		},
		Output: OutputConfig{
			Markdown: &markdown,
		},
	}
}
