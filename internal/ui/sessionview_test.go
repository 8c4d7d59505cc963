package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/realtime"
	"github.com/Ashish-Jain-dev/voicestudio/internal/session"
)

type stubGateway struct {
	endCalls int
}

func (g *stubGateway) StartSession(context.Context, string) (api.StartSessionResponse, error) {
	return api.StartSessionResponse{SessionID: "s1", RoomName: "voice_test_s1", Token: "jwt"}, nil
}

func (g *stubGateway) EndSession(context.Context, string) error {
	g.endCalls++
	return nil
}

func allControls() domain.Controls {
	return domain.Controls{Leave: true, Microphone: true, Camera: true, Chat: true}
}

// startedView returns a view whose controller already holds a live
// fake session.
func startedView(t *testing.T) (SessionView, *stubGateway, *realtime.FakeDialer) {
	t.Helper()
	gw := &stubGateway{}
	dialer := &realtime.FakeDialer{}
	ctrl := session.NewController(session.Options{
		Gateway:    gw,
		Dialer:     dialer,
		ServerURL:  "ws://localhost:7880",
		EndOnClose: true,
	})
	agent := domain.Agent{ID: "a1", Name: "Helper"}
	require.NoError(t, ctrl.Start(context.Background(), agent))

	m := NewSessionView(ctrl, agent, allControls())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(SessionView), gw, dialer
}

func messageEvent(text string, local bool) roomEventMsg {
	msg := domain.TranscriptMessage{
		From:      domain.Participant{Identity: "agent", IsAgent: !local, IsLocal: local},
		Text:      text,
		Timestamp: time.Now(),
	}
	if local {
		msg.From.Identity = "user_s1"
	}
	return roomEventMsg(realtime.Event{Kind: realtime.EventMessage, Message: &msg})
}

func TestViewShowsAgentAndConnectedStatus(t *testing.T) {
	m, _, _ := startedView(t)
	out := m.View()
	assert.Contains(t, out, "Voice test · Helper")
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "end call")
}

func TestTranscriptAccumulatesMessages(t *testing.T) {
	m, _, _ := startedView(t)

	next, _ := m.Update(messageEvent("hello there", false))
	m = next.(SessionView)
	next, _ = m.Update(messageEvent("hi", true))
	m = next.(SessionView)

	require.Len(t, m.transcript, 2)
	out := m.View()
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "you:")
}

func TestAutoScrollOnlyOnLocalMessages(t *testing.T) {
	m, _, _ := startedView(t)

	// Fill beyond the viewport, then scroll to the top.
	for i := 0; i < 40; i++ {
		next, _ := m.Update(messageEvent("line from the agent", false))
		m = next.(SessionView)
	}
	m.viewport.GotoTop()
	require.False(t, m.viewport.AtBottom())

	// Remote messages must not steal the scroll position.
	next, _ := m.Update(messageEvent("more agent output", false))
	m = next.(SessionView)
	assert.False(t, m.viewport.AtBottom())

	// The user speaking snaps the view back to the latest message.
	next, _ = m.Update(messageEvent("my turn", true))
	m = next.(SessionView)
	assert.True(t, m.viewport.AtBottom())
}

func TestTranscriptToggleIsLocalOnly(t *testing.T) {
	m, _, _ := startedView(t)
	next, _ := m.Update(messageEvent("hello", false))
	m = next.(SessionView)

	assert.Contains(t, m.View(), "hello")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(SessionView)
	assert.NotContains(t, m.View(), "hello", "hidden transcript must not render")
	require.Len(t, m.transcript, 1, "hiding the transcript must not drop messages")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(SessionView)
	assert.Contains(t, m.View(), "hello")
}

func TestMicKeyTogglesTrackWithoutGatewayCalls(t *testing.T) {
	m, gw, dialer := startedView(t)
	sess := dialer.Sessions()[0]

	require.True(t, sess.Track(domain.TrackMicrophone).Enabled())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = next.(SessionView)
	assert.False(t, sess.Track(domain.TrackMicrophone).Enabled())
	assert.Zero(t, gw.endCalls)
	assert.Contains(t, m.View(), "mic off")
}

func TestMicMutedOnConnectWhenControlHidden(t *testing.T) {
	gw := &stubGateway{}
	dialer := &realtime.FakeDialer{}
	ctrl := session.NewController(session.Options{
		Gateway:   gw,
		Dialer:    dialer,
		ServerURL: "ws://localhost:7880",
	})
	agent := domain.Agent{ID: "a1", Name: "Helper"}
	require.NoError(t, ctrl.Start(context.Background(), agent))

	controls := allControls()
	controls.Microphone = false
	m := NewSessionView(ctrl, agent, controls)

	_, _ = m.Update(sessionStartedMsg{})
	sess := dialer.Sessions()[0]
	assert.False(t, sess.Track(domain.TrackMicrophone).Enabled())
}

func TestQuitKeyEndsSessionOnce(t *testing.T) {
	m, gw, dialer := startedView(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(SessionView)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, sessionEndedMsg{}, msg)

	// A second quit while teardown is pending does nothing.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)

	assert.Equal(t, 1, gw.endCalls)
	assert.Equal(t, 1, dialer.Sessions()[0].CloseCount())

	// The ended message quits the program.
	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRoomDropTearsDownSession(t *testing.T) {
	m, gw, dialer := startedView(t)

	drop := roomEventMsg(realtime.Event{
		Kind: realtime.EventDisconnected,
		Err:  assert.AnError,
	})
	next, cmd := m.Update(drop)
	m = next.(SessionView)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, sessionEndedMsg{}, msg)

	// Teardown matches a user end: backend session closed, controller
	// back to idle.
	assert.Equal(t, domain.SessionIdle, m.controller.State())
	assert.Equal(t, 1, gw.endCalls)
	assert.Equal(t, 1, dialer.Sessions()[0].CloseCount())
	assert.Contains(t, m.View(), "error:")

	// The closing event stream must not end the session a second time.
	_, cmd = m.Update(roomClosedMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, gw.endCalls)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClosedEventStreamTearsDownSession(t *testing.T) {
	m, gw, _ := startedView(t)

	next, cmd := m.Update(roomClosedMsg{})
	m = next.(SessionView)
	require.NotNil(t, cmd)
	assert.IsType(t, sessionEndedMsg{}, cmd())
	assert.Equal(t, domain.SessionIdle, m.controller.State())
	assert.Equal(t, 1, gw.endCalls)
}

func TestStartFailureRendersError(t *testing.T) {
	gw := &stubGateway{}
	ctrl := session.NewController(session.Options{
		Gateway:   gw,
		Dialer:    &realtime.FakeDialer{},
		ServerURL: "wss://your-project.livekit.cloud",
	})
	m := NewSessionView(ctrl, domain.Agent{ID: "a1", Name: "Helper"}, allControls())

	cmd := m.startSession()
	msg := cmd()
	failed, ok := msg.(sessionFailedMsg)
	require.True(t, ok)

	next, _ := m.Update(failed)
	m = next.(SessionView)
	out := m.View()
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "placeholder")
}

func TestControlBarRendering(t *testing.T) {
	tests := []struct {
		name     string
		state    ControlBarState
		contains []string
		excludes []string
	}{
		{
			name: "all controls connected",
			state: ControlBarState{
				Controls:   allControls(),
				Connected:  true,
				MicEnabled: true,
			},
			contains: []string{"mic on", "camera off", "transcript", "end call"},
		},
		{
			name: "hidden controls are omitted",
			state: ControlBarState{
				Controls:  domain.Controls{Leave: true, Microphone: true},
				Connected: true,
			},
			contains: []string{"mic off", "end call"},
			excludes: []string{"camera", "transcript"},
		},
		{
			name:     "nothing visible",
			state:    ControlBarState{},
			excludes: []string{"mic", "end call"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderControlBar(tt.state)
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(out, want), "missing %q in %q", want, out)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, out, not)
			}
		})
	}
}
