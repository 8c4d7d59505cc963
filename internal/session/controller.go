// Package session owns the lifecycle of a voice test session: backend
// start/end calls, the room connection, and the state machine the UI
// renders from.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
	"github.com/Ashish-Jain-dev/voicestudio/internal/realtime"
)

var (
	// ErrAlreadyActive is returned when Start is called while a session
	// is connecting or connected.
	ErrAlreadyActive = errors.New("session: already active")

	// ErrControllerClosed is returned when an operation races with
	// Close and loses.
	ErrControllerClosed = errors.New("session: controller closed")

	// ErrNoActiveSession is returned by operations that need a live
	// room connection.
	ErrNoActiveSession = errors.New("session: no active session")
)

// Gateway is the slice of the backend API the controller needs.
// *api.Client satisfies it.
type Gateway interface {
	StartSession(ctx context.Context, agentID string) (api.StartSessionResponse, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Notifier observes state transitions. Called without the controller
// lock held, in transition order.
type Notifier interface {
	SessionStateChanged(state domain.SessionState)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(domain.SessionState)

func (f NotifierFunc) SessionStateChanged(state domain.SessionState) { f(state) }

type nopNotifier struct{}

func (nopNotifier) SessionStateChanged(domain.SessionState) {}

// Options configures a Controller.
type Options struct {
	Gateway  Gateway
	Dialer   realtime.Dialer
	Notifier Notifier
	Log      *logging.Logger

	// ServerURL is the room server endpoint from configuration. A
	// placeholder value fails Start before any network call.
	ServerURL string

	// EndOnClose makes Close tell the backend to end the session.
	// Disabled, the backend's idle timeout is left to clean up.
	EndOnClose bool

	// OnClose runs exactly once when the controller closes, after
	// teardown completes.
	OnClose func()
}

// Controller drives one voice test session at a time through
// idle → connecting → connected → disconnecting → idle, or into
// failed on error. All methods are safe for concurrent use.
type Controller struct {
	gateway  Gateway
	dialer   realtime.Dialer
	notifier Notifier
	log      *logging.Logger

	serverURL  string
	endOnClose bool
	onClose    func()

	mu        sync.Mutex
	state     domain.SessionState
	details   *domain.ConnectionDetails
	sess      realtime.Session
	agent     domain.Agent
	sessionID string
	lastErr   error
	gen       uint64
	closed    bool
	closeOnce sync.Once
}

func NewController(opts Options) *Controller {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	log := opts.Log
	if log == nil {
		log = logging.New(io.Discard, "silent")
	}
	return &Controller{
		gateway:    opts.Gateway,
		dialer:     opts.Dialer,
		notifier:   notifier,
		log:        log.Sub("session"),
		serverURL:  opts.ServerURL,
		endOnClose: opts.EndOnClose,
		onClose:    opts.OnClose,
		state:      domain.SessionIdle,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Details returns the connection credentials, present only while a
// session is connecting, connected, or disconnecting.
func (c *Controller) Details() *domain.ConnectionDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.details == nil {
		return nil
	}
	d := *c.details
	return &d
}

// Err returns the error that put the controller into the failed state,
// or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Agent returns the agent of the current or last session.
func (c *Controller) Agent() domain.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

// SessionID returns the backend session id, empty when idle.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Session returns the live room session, or nil when not connected.
func (c *Controller) Session() realtime.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Start begins a voice test against agent: it validates configuration,
// asks the backend for credentials, and joins the room. It blocks until
// the session is connected or the attempt fails.
//
// If Close runs while Start is in flight, the late result is discarded
// and any half-started backend session is ended.
func (c *Controller) Start(ctx context.Context, agent domain.Agent) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.state == domain.SessionConnecting || c.state == domain.SessionConnected {
		c.mu.Unlock()
		return ErrAlreadyActive
	}

	// Configuration problems fail fast, before the backend hears
	// anything about this attempt.
	if config.IsPlaceholderURL(c.serverURL) {
		err := &config.ConfigError{
			Message: "livekit.url is unset or still the placeholder; set it before starting a session",
		}
		c.agent = agent
		c.lastErr = err
		c.setStateLocked(domain.SessionFailed)
		c.mu.Unlock()
		c.notify(domain.SessionFailed)
		return err
	}

	c.gen++
	gen := c.gen
	c.agent = agent
	c.lastErr = nil
	c.sessionID = ""
	c.details = nil
	c.setStateLocked(domain.SessionConnecting)
	c.mu.Unlock()
	c.notify(domain.SessionConnecting)

	start, err := c.gateway.StartSession(ctx, agent.ID)
	if err != nil {
		return c.failStart(gen, fmt.Errorf("start session: %w", err))
	}

	details := domain.ConnectionDetails{Token: start.Token, ServerURL: c.serverURL}
	sess, err := c.dialer.Dial(ctx, realtime.DialOptions{
		ServerURL: c.serverURL,
		Token:     start.Token,
		RoomName:  start.RoomName,
		Identity:  "user_" + start.SessionID,
	})
	if err != nil {
		c.endBackendSession(start.SessionID)
		return c.failStart(gen, fmt.Errorf("join room: %w", err))
	}

	c.mu.Lock()
	if c.closed || c.gen != gen {
		c.mu.Unlock()
		// Lost the race with Close: tear down what we just built.
		sess.Close()
		c.endBackendSession(start.SessionID)
		return ErrControllerClosed
	}
	c.sess = sess
	c.sessionID = start.SessionID
	c.details = &details
	c.setStateLocked(domain.SessionConnected)
	c.mu.Unlock()
	c.notify(domain.SessionConnected)
	return nil
}

// failStart records err and moves to failed, unless the attempt was
// superseded while the call was in flight.
func (c *Controller) failStart(gen uint64, err error) error {
	c.mu.Lock()
	if c.closed || c.gen != gen {
		c.mu.Unlock()
		c.log.Debug().Err(err).Msg("discarding stale session start error")
		return ErrControllerClosed
	}
	c.lastErr = err
	c.details = nil
	c.setStateLocked(domain.SessionFailed)
	c.mu.Unlock()
	c.notify(domain.SessionFailed)
	return err
}

// End tears down the active session: the room connection closes, and
// when configured the backend is told to end the session. Safe to call
// in any state; repeat calls are no-ops.
func (c *Controller) End(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.SessionConnected && c.state != domain.SessionConnecting {
		// Nothing live. Clear a failed state back to idle.
		if c.state == domain.SessionFailed {
			c.details = nil
			c.setStateLocked(domain.SessionIdle)
			c.mu.Unlock()
			c.notify(domain.SessionIdle)
			return nil
		}
		c.mu.Unlock()
		return nil
	}

	c.gen++ // invalidate any in-flight Start
	sess := c.sess
	sessionID := c.sessionID
	c.sess = nil
	c.setStateLocked(domain.SessionDisconnecting)
	c.mu.Unlock()
	c.notify(domain.SessionDisconnecting)

	if sess != nil {
		if err := sess.Close(); err != nil {
			c.log.Warn().Err(err).Msg("room close failed")
		}
	}
	if c.endOnClose && sessionID != "" {
		if err := c.gateway.EndSession(ctx, sessionID); err != nil {
			// Best effort: the backend's idle timeout is the backstop.
			c.log.Warn().Err(err).Str("sessionId", sessionID).Msg("end session failed")
		}
	}

	c.mu.Lock()
	c.details = nil
	c.sessionID = ""
	c.setStateLocked(domain.SessionIdle)
	c.mu.Unlock()
	c.notify(domain.SessionIdle)
	return nil
}

// Close ends any active session and retires the controller. The OnClose
// callback runs exactly once, after teardown.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.End(ctx)
	c.closeOnce.Do(func() {
		if c.onClose != nil {
			c.onClose()
		}
	})
	return err
}

// ToggleTrack flips a local media track on the live session. This is a
// room-level operation: the backend is not involved.
func (c *Controller) ToggleTrack(source domain.TrackSource) error {
	c.mu.Lock()
	sess := c.sess
	state := c.state
	c.mu.Unlock()
	if sess == nil || state != domain.SessionConnected {
		return ErrNoActiveSession
	}
	return sess.Track(source).Toggle()
}

// TrackEnabled reports whether a local track is currently published.
func (c *Controller) TrackEnabled(source domain.TrackSource) bool {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess == nil {
		return false
	}
	return sess.Track(source).Enabled()
}

// endBackendSession ends a session the backend started but the
// controller never surfaced.
func (c *Controller) endBackendSession(sessionID string) {
	if !c.endOnClose || sessionID == "" {
		return
	}
	if err := c.gateway.EndSession(context.Background(), sessionID); err != nil {
		c.log.Warn().Err(err).Str("sessionId", sessionID).Msg("end orphaned session failed")
	}
}

func (c *Controller) setStateLocked(state domain.SessionState) {
	c.state = state
}

func (c *Controller) notify(state domain.SessionState) {
	c.notifier.SessionStateChanged(state)
}
