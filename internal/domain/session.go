package domain

import "time"

// SessionState is the lifecycle state of one voice test session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionConnecting
	SessionConnected
	SessionDisconnecting
	SessionFailed
)

// String returns the lowercase state name.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionConnecting:
		return "connecting"
	case SessionConnected:
		return "connected"
	case SessionDisconnecting:
		return "disconnecting"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ConnectionDetails carries the credentials for one connection attempt.
// It is created once per attempt, never mutated, and discarded on session
// end. It exists if and only if the session is connecting, connected, or
// disconnecting.
type ConnectionDetails struct {
	Token     string
	ServerURL string
}

// Session records one voice interaction as the backend reports it.
type Session struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agent_id"`
	RoomName  string     `json:"livekit_room_name"`
	Status    string     `json:"status"` // "active" | "completed"
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Participant identifies one member of a real-time room.
type Participant struct {
	Identity string `json:"identity"`
	Name     string `json:"name,omitempty"`
	IsLocal  bool   `json:"isLocal"`
	IsAgent  bool   `json:"isAgent"`
}

// TranscriptMessage is one exchanged message during a session. The
// real-time client is the only producer; the rest of the core observes.
type TranscriptMessage struct {
	From      Participant `json:"from"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// TrackSource names a publishable media source.
type TrackSource string

const (
	TrackMicrophone TrackSource = "microphone"
	TrackCamera     TrackSource = "camera"
)

// Controls is the per-deployment control bar visibility record.
// It is fixed at startup and never user-mutable at runtime.
type Controls struct {
	Leave       bool
	Microphone  bool
	Camera      bool
	ScreenShare bool
	Chat        bool
}
