package realtime

import "encoding/json"

// Frame types on the room signaling socket.
const (
	FrameTypeJoin        = "join"
	FrameTypeJoined      = "joined"
	FrameTypeMessage     = "message"
	FrameTypeParticipant = "participant"
	FrameTypeTrack       = "track"
	FrameTypeLeave       = "leave"
)

// Frame is the envelope for all signaling messages. Type discriminates;
// Payload holds the type-specific body.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinPayload is sent by the client immediately after the socket opens.
type JoinPayload struct {
	Token    string `json:"token"`
	Room     string `json:"room"`
	Identity string `json:"identity"`
}

// JoinedPayload is the server's acknowledgement of a join.
type JoinedPayload struct {
	Room         string            `json:"room"`
	Participants []ParticipantInfo `json:"participants,omitempty"`
}

// MessagePayload carries one transcript segment.
type MessagePayload struct {
	From      ParticipantInfo `json:"from"`
	Text      string          `json:"text"`
	Timestamp int64           `json:"timestamp"` // unix millis
}

// ParticipantInfo identifies a room participant on the wire.
type ParticipantInfo struct {
	Identity string `json:"identity"`
	Name     string `json:"name,omitempty"`
	IsAgent  bool   `json:"is_agent,omitempty"`
}

// ParticipantPayload announces a join or leave.
type ParticipantPayload struct {
	Participant ParticipantInfo `json:"participant"`
	Joined      bool            `json:"joined"`
}

// TrackPayload toggles publication of a local track.
type TrackPayload struct {
	Source  string `json:"source"`
	Enabled bool   `json:"enabled"`
}

// NewFrame marshals payload into a Frame of the given type.
func NewFrame(frameType string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: frameType, Payload: raw}, nil
}
