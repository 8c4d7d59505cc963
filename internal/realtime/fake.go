package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

// FakeDialer hands out scripted sessions for tests. DialErr, when set,
// makes Dial fail; otherwise each Dial returns a fresh FakeSession and
// records the options it was called with.
type FakeDialer struct {
	mu       sync.Mutex
	DialErr  error
	sessions []*FakeSession
	calls    []DialOptions
}

func (d *FakeDialer) Dial(_ context.Context, opts DialOptions) (Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, opts)
	if d.DialErr != nil {
		return nil, d.DialErr
	}
	s := NewFakeSession()
	d.sessions = append(d.sessions, s)
	return s, nil
}

func (d *FakeDialer) Calls() []DialOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DialOptions, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *FakeDialer) Sessions() []*FakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*FakeSession, len(d.sessions))
	copy(out, d.sessions)
	return out
}

// FakeSession is an in-memory Session that tests drive directly.
type FakeSession struct {
	mu           sync.Mutex
	connected    bool
	closed       bool
	closeCount   int
	messages     []domain.TranscriptMessage
	participants []domain.Participant
	tracks       map[domain.TrackSource]*fakeTrack
	events       chan Event
}

func NewFakeSession() *FakeSession {
	s := &FakeSession{
		connected: true,
		tracks:    make(map[domain.TrackSource]*fakeTrack),
		events:    make(chan Event, eventBufferSize),
	}
	s.tracks[domain.TrackMicrophone] = &fakeTrack{enabled: true}
	s.tracks[domain.TrackCamera] = &fakeTrack{}
	return s
}

func (s *FakeSession) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *FakeSession) Messages() []domain.TranscriptMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TranscriptMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *FakeSession) RemoteParticipants() []domain.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Participant, len(s.participants))
	copy(out, s.participants)
	return out
}

func (s *FakeSession) Track(source domain.TrackSource) TrackToggle {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tracks[source]
	if !ok {
		t = &fakeTrack{}
		s.tracks[source] = t
	}
	return t
}

func (s *FakeSession) Events() <-chan Event {
	return s.events
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.closeCount++
	s.connected = false
	close(s.events)
	return nil
}

// CloseCount reports how many times Close actually tore down the
// session (repeat calls do not increment it).
func (s *FakeSession) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}

func (s *FakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// PushMessage appends a transcript message and emits the event.
func (s *FakeSession) PushMessage(from domain.Participant, text string) {
	msg := domain.TranscriptMessage{From: from, Text: text, Timestamp: time.Now()}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.events <- Event{Kind: EventMessage, Message: &msg}
}

// PushParticipant adds a remote participant and emits the event.
func (s *FakeSession) PushParticipant(p domain.Participant) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.participants = append(s.participants, p)
	s.mu.Unlock()
	s.events <- Event{Kind: EventParticipant, Participant: &p}
}

// Drop simulates the server side going away.
func (s *FakeSession) Drop() {
	s.mu.Lock()
	if s.closed || !s.connected {
		s.mu.Unlock()
		return
	}
	s.connected = false
	s.mu.Unlock()
	s.events <- Event{Kind: EventDisconnected}
}

type fakeTrack struct {
	mu      sync.Mutex
	enabled bool
	err     error
	toggles int
}

func (t *fakeTrack) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *fakeTrack) Toggle() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.enabled = !t.enabled
	t.toggles++
	return nil
}
