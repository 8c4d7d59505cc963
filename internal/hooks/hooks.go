// Package hooks runs user-configured shell commands on session
// lifecycle events.
package hooks

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
)

// Event names for the hook system.
const (
	EventSessionStart = "session_start"
	EventSessionEnd   = "session_end"
)

// AllEvents lists all known hook event names.
var AllEvents = []string{
	EventSessionStart,
	EventSessionEnd,
}

// Payload carries event data to hook handlers.
type Payload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler handles one hook event. Returning an error logs the failure
// but does not stop processing.
type Handler func(ctx context.Context, p Payload) error

// Manager manages hook registrations and dispatches events.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for the given event. The name identifies the
// handler for logging and debugging.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// Off removes all handlers with the given name from the event.
func (m *Manager) Off(event, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	handlers := m.handlers[event]
	filtered := make([]namedHandler, 0, len(handlers))
	for _, h := range handlers {
		if h.name != name {
			filtered = append(filtered, h)
		}
	}
	m.handlers[event] = filtered
}

// Emit dispatches an event to all registered handlers synchronously, in
// registration order. Errors are logged but do not prevent subsequent
// handlers from running.
func (m *Manager) Emit(ctx context.Context, event string, data map[string]any) {
	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[event]))
	copy(handlers, m.handlers[event])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	payload := Payload{Event: event, Data: data}

	for _, h := range handlers {
		if err := h.handler(ctx, payload); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// RegisterConfigured wires configured shell commands into the manager:
// session_start and session_end entries each become one command handler.
func (m *Manager) RegisterConfigured(cfg config.HooksConfig) {
	for i, entry := range cfg.SessionStart {
		m.On(EventSessionStart, commandHandlerName(EventSessionStart, i), commandHandler(entry, m.log))
	}
	for i, entry := range cfg.SessionEnd {
		m.On(EventSessionEnd, commandHandlerName(EventSessionEnd, i), commandHandler(entry, m.log))
	}
}

func commandHandlerName(event string, index int) string {
	return event + "_cmd_" + strconv.Itoa(index)
}

// commandHandler runs one shell command with the event data mapped into
// VOICESTUDIO_* environment variables.
func commandHandler(entry config.HookEntry, log *logging.Logger) Handler {
	timeout := time.Duration(entry.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return func(ctx context.Context, p Payload) error {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(runCtx, "sh", "-c", entry.Command)
		cmd.Env = append(os.Environ(), hookEnv(p)...)
		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			log.Debug().Str("event", p.Event).Str("output", string(out)).Msg("hook command output")
		}
		return err
	}
}

func hookEnv(p Payload) []string {
	env := []string{"VOICESTUDIO_EVENT=" + p.Event}
	if v, ok := p.Data["agent_id"].(string); ok {
		env = append(env, "VOICESTUDIO_AGENT_ID="+v)
	}
	if v, ok := p.Data["agent_name"].(string); ok {
		env = append(env, "VOICESTUDIO_AGENT_NAME="+v)
	}
	if v, ok := p.Data["session_id"].(string); ok {
		env = append(env, "VOICESTUDIO_SESSION_ID="+v)
	}
	return env
}
