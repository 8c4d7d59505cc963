package config

// Config is the root configuration for the Voice AI Studio client.
type Config struct {
	API      APIConfig      `yaml:"api,omitempty"`
	LiveKit  LiveKitConfig  `yaml:"livekit,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Controls ControlsConfig `yaml:"controls,omitempty"`
	Store    StoreConfig    `yaml:"store,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Hooks    HooksConfig    `yaml:"hooks,omitempty"`
}

// APIConfig points the client at the studio backend.
type APIConfig struct {
	BaseURL        string `yaml:"baseUrl,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
	Token          string `yaml:"token,omitempty"` // bearer token, may be ${ENV_VAR}
}

// LiveKitConfig locates the real-time media server.
type LiveKitConfig struct {
	URL string `yaml:"url,omitempty"`
}

// SessionConfig controls voice test session behavior.
type SessionConfig struct {
	// EndOnClose makes teardown call the backend end endpoint instead of
	// relying on server-side room cleanup. Defaults to true.
	EndOnClose *bool `yaml:"endOnClose,omitempty"`
	// SaveTranscripts writes the session transcript under the transcripts dir.
	SaveTranscripts bool `yaml:"saveTranscripts,omitempty"`
}

// ControlsConfig fixes which session controls the deployment exposes.
// Camera and screen share are shipped disabled in this product.
type ControlsConfig struct {
	Leave       *bool `yaml:"leave,omitempty"`
	Microphone  *bool `yaml:"microphone,omitempty"`
	Camera      *bool `yaml:"camera,omitempty"`
	ScreenShare *bool `yaml:"screenShare,omitempty"`
	Chat        *bool `yaml:"chat,omitempty"`
}

// StoreConfig selects the local cache backend.
type StoreConfig struct {
	Cache string `yaml:"cache,omitempty"` // "sqlite" | "memory"
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}

// HooksConfig defines shell hooks for session lifecycle events.
type HooksConfig struct {
	SessionStart []HookEntry `yaml:"sessionStart,omitempty"`
	SessionEnd   []HookEntry `yaml:"sessionEnd,omitempty"`
}

// HookEntry defines a single hook action.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // seconds
}
