package config

import (
	"fmt"
	"strings"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// placeholderLiveKitHost is the sentinel host left in sample env files by the
// hosted-LiveKit onboarding docs. A URL still pointing at it means the
// deployment was never configured.
const placeholderLiveKitHost = "your-project.livekit.cloud"

// IsPlaceholderURL reports whether the real-time server URL is unset or still
// the onboarding placeholder. Session start must short-circuit on this before
// any network call.
func IsPlaceholderURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return true
	}
	return strings.Contains(url, placeholderLiveKitHost)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		LiveKit: LiveKitConfig{
			URL: "ws://localhost:7880",
		},
		Store: StoreConfig{
			Cache: "sqlite",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}

// EndOnClose resolves the session end behavior, defaulting to true.
func (c SessionConfig) EndOnCloseEnabled() bool {
	if c.EndOnClose == nil {
		return true
	}
	return *c.EndOnClose
}

// boolOr resolves an optional boolean against its default.
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
