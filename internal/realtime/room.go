package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
)

const eventBufferSize = 64

// WebsocketDialer opens room sessions over the signaling WebSocket.
type WebsocketDialer struct {
	log *logging.Logger
}

func NewWebsocketDialer(log *logging.Logger) *WebsocketDialer {
	return &WebsocketDialer{log: log.Sub("realtime")}
}

// Dial connects to the room server, sends the join frame, and starts
// the reader. The returned session is connected once the server
// acknowledges the join.
func (d *WebsocketDialer) Dial(ctx context.Context, opts DialOptions) (Session, error) {
	u, err := url.Parse(opts.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial room server: %w", err)
	}

	join, err := NewFrame(FrameTypeJoin, JoinPayload{
		Token:    opts.Token,
		Room:     opts.RoomName,
		Identity: opts.Identity,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send join: %w", err)
	}

	r := &Room{
		conn:     conn,
		identity: opts.Identity,
		events:   make(chan Event, eventBufferSize),
		tracks:   make(map[domain.TrackSource]*roomTrack),
		log:      d.log,
	}
	// Microphone starts published, camera does not.
	r.tracks[domain.TrackMicrophone] = &roomTrack{room: r, source: domain.TrackMicrophone, enabled: true}
	r.tracks[domain.TrackCamera] = &roomTrack{room: r, source: domain.TrackCamera}

	if err := r.awaitJoined(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	go r.readLoop()
	return r, nil
}

// Room is the WebSocket-backed Session.
type Room struct {
	conn     *websocket.Conn
	identity string
	events   chan Event
	log      *logging.Logger

	// writeMu serializes socket writes; gorilla allows one writer.
	writeMu sync.Mutex

	mu           sync.Mutex
	connected    bool
	closed       bool
	messages     []domain.TranscriptMessage
	participants map[string]domain.Participant
	tracks       map[domain.TrackSource]*roomTrack
}

func (r *Room) awaitJoined(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		r.conn.SetReadDeadline(deadline)
		defer r.conn.SetReadDeadline(time.Time{})
	}
	var f Frame
	if err := r.conn.ReadJSON(&f); err != nil {
		return fmt.Errorf("await join ack: %w", err)
	}
	if f.Type != FrameTypeJoined {
		return fmt.Errorf("unexpected frame %q before join ack", f.Type)
	}
	var joined JoinedPayload
	if err := json.Unmarshal(f.Payload, &joined); err != nil {
		return fmt.Errorf("decode join ack: %w", err)
	}

	r.mu.Lock()
	r.connected = true
	r.participants = make(map[string]domain.Participant)
	for _, p := range joined.Participants {
		if p.Identity == r.identity {
			continue
		}
		r.participants[p.Identity] = toParticipant(p)
	}
	r.mu.Unlock()
	return nil
}

func (r *Room) readLoop() {
	defer func() {
		r.mu.Lock()
		wasConnected := r.connected
		r.connected = false
		r.mu.Unlock()
		if wasConnected {
			r.emit(Event{Kind: EventDisconnected})
		}
		close(r.events)
	}()

	for {
		var f Frame
		if err := r.conn.ReadJSON(&f); err != nil {
			r.mu.Lock()
			closed := r.closed
			r.mu.Unlock()
			if !closed {
				r.log.Warn().Err(err).Msg("room socket read failed")
			}
			return
		}
		r.handleFrame(f)
	}
}

func (r *Room) handleFrame(f Frame) {
	switch f.Type {
	case FrameTypeMessage:
		var p MessagePayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			r.log.Warn().Err(err).Msg("bad message frame")
			return
		}
		msg := domain.TranscriptMessage{
			From:      toParticipantLocal(p.From, r.identity),
			Text:      p.Text,
			Timestamp: time.UnixMilli(p.Timestamp),
		}
		r.mu.Lock()
		r.messages = append(r.messages, msg)
		r.mu.Unlock()
		r.emit(Event{Kind: EventMessage, Message: &msg})
	case FrameTypeParticipant:
		var p ParticipantPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			r.log.Warn().Err(err).Msg("bad participant frame")
			return
		}
		part := toParticipant(p.Participant)
		r.mu.Lock()
		if p.Joined {
			r.participants[part.Identity] = part
		} else {
			delete(r.participants, part.Identity)
		}
		r.mu.Unlock()
		r.emit(Event{Kind: EventParticipant, Participant: &part})
	case FrameTypeLeave:
		r.Close()
	default:
		r.log.Debug().Str("type", f.Type).Msg("ignoring frame")
	}
}

// emit delivers without blocking the reader; a stalled consumer drops
// the oldest buffered event instead of wedging the socket.
func (r *Room) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		select {
		case <-r.events:
		default:
		}
		select {
		case r.events <- ev:
		default:
		}
	}
}

func (r *Room) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

func (r *Room) Messages() []domain.TranscriptMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TranscriptMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *Room) RemoteParticipants() []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	return out
}

func (r *Room) Track(source domain.TrackSource) TrackToggle {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tracks[source]
	if !ok {
		t = &roomTrack{room: r, source: source}
		r.tracks[source] = t
	}
	return t
}

func (r *Room) Events() <-chan Event {
	return r.events
}

func (r *Room) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	// Best effort; the server also notices the socket drop.
	leave, err := NewFrame(FrameTypeLeave, nil)
	if err == nil {
		r.writeFrame(leave)
	}
	return r.conn.Close()
}

func (r *Room) writeFrame(f Frame) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.conn.WriteJSON(f)
}

type roomTrack struct {
	room    *Room
	source  domain.TrackSource
	enabled bool
}

func (t *roomTrack) Enabled() bool {
	t.room.mu.Lock()
	defer t.room.mu.Unlock()
	return t.enabled
}

func (t *roomTrack) Toggle() error {
	t.room.mu.Lock()
	if t.room.closed {
		t.room.mu.Unlock()
		return ErrSessionClosed
	}
	next := !t.enabled
	t.room.mu.Unlock()

	f, err := NewFrame(FrameTypeTrack, TrackPayload{Source: string(t.source), Enabled: next})
	if err != nil {
		return err
	}
	if err := t.room.writeFrame(f); err != nil {
		return fmt.Errorf("toggle %s: %w", t.source, err)
	}

	t.room.mu.Lock()
	t.enabled = next
	t.room.mu.Unlock()
	return nil
}

func toParticipant(p ParticipantInfo) domain.Participant {
	return domain.Participant{
		Identity: p.Identity,
		Name:     p.Name,
		IsAgent:  p.IsAgent,
	}
}

func toParticipantLocal(p ParticipantInfo, localIdentity string) domain.Participant {
	out := toParticipant(p)
	out.IsLocal = p.Identity == localIdentity
	return out
}
