package hooks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
)

func testManager() *Manager {
	return NewManager(logging.New(io.Discard, "silent"))
}

func TestEmitCallsHandlersInOrder(t *testing.T) {
	m := testManager()
	var calls []string

	m.On(EventSessionStart, "first", func(_ context.Context, p Payload) error {
		calls = append(calls, "first:"+p.Event)
		return nil
	})
	m.On(EventSessionStart, "second", func(_ context.Context, _ Payload) error {
		calls = append(calls, "second")
		return nil
	})

	m.Emit(context.Background(), EventSessionStart, map[string]any{"agent_id": "a1"})
	assert.Equal(t, []string{"first:session_start", "second"}, calls)
}

func TestEmitContinuesPastFailedHandler(t *testing.T) {
	m := testManager()
	var ran bool

	m.On(EventSessionEnd, "broken", func(_ context.Context, _ Payload) error {
		return errors.New("boom")
	})
	m.On(EventSessionEnd, "after", func(_ context.Context, _ Payload) error {
		ran = true
		return nil
	})

	m.Emit(context.Background(), EventSessionEnd, nil)
	assert.True(t, ran)
}

func TestOffRemovesByName(t *testing.T) {
	m := testManager()
	var calls int

	m.On(EventSessionStart, "h", func(_ context.Context, _ Payload) error {
		calls++
		return nil
	})
	m.Off(EventSessionStart, "h")
	m.Emit(context.Background(), EventSessionStart, nil)
	assert.Zero(t, calls)
}

func TestConfiguredCommandReceivesEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hook.out")
	m := testManager()
	m.RegisterConfigured(config.HooksConfig{
		SessionStart: []config.HookEntry{
			{Command: `printf '%s %s %s' "$VOICESTUDIO_EVENT" "$VOICESTUDIO_AGENT_ID" "$VOICESTUDIO_SESSION_ID" > ` + out},
		},
	})

	m.Emit(context.Background(), EventSessionStart, map[string]any{
		"agent_id":   "a1",
		"session_id": "s1",
	})

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "session_start a1 s1", strings.TrimSpace(string(data)))
}

func TestConfiguredCommandTimeout(t *testing.T) {
	m := testManager()
	m.RegisterConfigured(config.HooksConfig{
		SessionEnd: []config.HookEntry{{Command: "sleep 5", Timeout: 1}},
	})

	done := make(chan struct{})
	go func() {
		m.Emit(context.Background(), EventSessionEnd, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("hook command was not killed at its timeout")
	}
}
