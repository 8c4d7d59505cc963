// Package realtime is the boundary with the voice room infrastructure.
// The backend hands out a room name and token; this package turns them
// into a live Session the rest of the app can observe.
package realtime

import (
	"context"
	"errors"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

var ErrSessionClosed = errors.New("realtime: session closed")

// Session is a live connection to a voice room.
//
// Implementations must be safe for concurrent use: the UI reads state
// while the reader goroutine applies incoming events.
type Session interface {
	// IsConnected reports whether the room connection is currently up.
	IsConnected() bool

	// Messages returns a snapshot of the transcript so far, oldest first.
	Messages() []domain.TranscriptMessage

	// RemoteParticipants returns the non-local participants currently
	// in the room.
	RemoteParticipants() []domain.Participant

	// Track returns the toggle for a local media track.
	Track(source domain.TrackSource) TrackToggle

	// Events delivers state-change notifications. The channel is closed
	// when the session ends.
	Events() <-chan Event

	// Close tears down the connection. Safe to call more than once.
	Close() error
}

// TrackToggle controls publication of one local media track.
type TrackToggle interface {
	Enabled() bool
	Toggle() error
}

// Dialer opens sessions. The production implementation speaks
// WebSocket; tests substitute a fake.
type Dialer interface {
	Dial(ctx context.Context, opts DialOptions) (Session, error)
}

// DialOptions carries the credentials issued by the backend for one
// voice test session.
type DialOptions struct {
	ServerURL string
	Token     string
	RoomName  string
	Identity  string
}

// EventKind discriminates Event values.
type EventKind string

const (
	EventConnected    EventKind = "connected"
	EventDisconnected EventKind = "disconnected"
	EventMessage      EventKind = "message"
	EventParticipant  EventKind = "participant"
)

// Event is one state change from the room. Exactly one of the optional
// fields is set, matching Kind.
type Event struct {
	Kind        EventKind
	Message     *domain.TranscriptMessage
	Participant *domain.Participant
	Err         error
}
