package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.API.BaseURL != "" {
		if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, ValidationIssue{
				Path:    "api.baseUrl",
				Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.API.BaseURL),
			})
		}
	}
	if cfg.API.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "api.timeoutSeconds",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.API.TimeoutSeconds),
		})
	}

	// A placeholder LiveKit URL is not a validation error: the session
	// controller reports it as a configuration failure at start time so
	// every other command still works.
	if cfg.LiveKit.URL != "" && !IsPlaceholderURL(cfg.LiveKit.URL) {
		if u, err := url.Parse(cfg.LiveKit.URL); err != nil || (u.Scheme != "ws" && u.Scheme != "wss" && u.Scheme != "http" && u.Scheme != "https") {
			issues = append(issues, ValidationIssue{
				Path:    "livekit.url",
				Message: fmt.Sprintf("must be a ws(s) or http(s) URL, got %q", cfg.LiveKit.URL),
			})
		}
	}

	validCaches := []string{"sqlite", "memory"}
	if cfg.Store.Cache != "" && !slices.Contains(validCaches, cfg.Store.Cache) {
		issues = append(issues, ValidationIssue{
			Path:    "store.cache",
			Message: fmt.Sprintf("must be one of %v, got %q", validCaches, cfg.Store.Cache),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	for i, h := range cfg.Hooks.SessionStart {
		if h.Command == "" {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("hooks.sessionStart[%d].command", i),
				Message: "command is required",
			})
		}
	}
	for i, h := range cfg.Hooks.SessionEnd {
		if h.Command == "" {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("hooks.sessionEnd[%d].command", i),
				Message: "command is required",
			})
		}
	}

	return issues
}
