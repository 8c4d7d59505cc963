package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "ws://localhost:7880", cfg.LiveKit.URL)
	assert.Equal(t, "sqlite", cfg.Store.Cache)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.ConsoleStyle)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
api:
  baseUrl: https://studio.example.com
  timeoutSeconds: 10
livekit:
  url: wss://media.example.com
session:
  endOnClose: false
  saveTranscripts: true
controls:
  camera: true
logging:
  level: debug
  consoleStyle: json
hooks:
  sessionStart:
    - command: "notify-send 'session started'"
      timeout: 2000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://studio.example.com", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, "wss://media.example.com", cfg.LiveKit.URL)
	assert.False(t, cfg.Session.EndOnCloseEnabled())
	assert.True(t, cfg.Session.SaveTranscripts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.ConsoleStyle)

	controls := cfg.Controls.Resolve()
	assert.True(t, controls.Leave)
	assert.True(t, controls.Microphone)
	assert.True(t, controls.Camera) // explicitly enabled above
	assert.False(t, controls.ScreenShare)
	assert.True(t, controls.Chat)

	require.Len(t, cfg.Hooks.SessionStart, 1)
	assert.Equal(t, 2000, cfg.Hooks.SessionStart[0].Timeout)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VOICESTUDIO_API_URL", "http://10.0.0.5:9000")
	t.Setenv("VOICESTUDIO_LIVEKIT_URL", "wss://lk.internal")
	t.Setenv("VOICESTUDIO_LOG_LEVEL", "TRACE")
	t.Setenv("VOICESTUDIO_API_TIMEOUT", "5")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, "wss://lk.internal", cfg.LiveKit.URL)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
}

func TestExpandSensitiveFields(t *testing.T) {
	t.Setenv("STUDIO_TOKEN", "s3cret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  token: ${STUDIO_TOKEN}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.API.Token)
}

func TestExpandUnsetVarLeftAlone(t *testing.T) {
	assert.Equal(t, "${NOT_SET_ANYWHERE}", expandEnvVars("${NOT_SET_ANYWHERE}"))
}

func TestIsPlaceholderURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"placeholder cloud host", "wss://your-project.livekit.cloud", true},
		{"placeholder embedded", "wss://your-project.livekit.cloud:443", true},
		{"localhost", "ws://localhost:7880", false},
		{"real cloud host", "wss://acme-prod.livekit.cloud", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlaceholderURL(tt.url))
		})
	}
}

func TestEndOnCloseDefaultsTrue(t *testing.T) {
	var sc SessionConfig
	assert.True(t, sc.EndOnCloseEnabled())

	f := false
	sc.EndOnClose = &f
	assert.False(t, sc.EndOnCloseEnabled())
}
