// Package ui renders the interactive voice test session in the
// terminal.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/realtime"
	"github.com/Ashish-Jain-dev/voicestudio/internal/session"
)

// sessionStartedMsg reports that Start completed.
type sessionStartedMsg struct{}

// sessionFailedMsg reports that Start failed.
type sessionFailedMsg struct{ err error }

// roomEventMsg wraps one realtime event for the update loop.
type roomEventMsg realtime.Event

// roomClosedMsg reports that the event stream ended.
type roomClosedMsg struct{}

// sessionEndedMsg reports that teardown finished and the view can exit.
type sessionEndedMsg struct{}

// SessionView is the live voice test screen: connection status,
// transcript, and the control bar.
type SessionView struct {
	controller *session.Controller
	agent      domain.Agent
	controls   domain.Controls

	spinner    spinner.Model
	viewport   viewport.Model
	transcript []domain.TranscriptMessage

	width          int
	height         int
	ready          bool
	showTranscript bool
	ending         bool
	err            error
}

func NewSessionView(controller *session.Controller, agent domain.Agent, controls domain.Controls) SessionView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return SessionView{
		controller:     controller,
		agent:          agent,
		controls:       controls,
		spinner:        sp,
		showTranscript: true,
	}
}

func (m SessionView) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSession())
}

func (m SessionView) startSession() tea.Cmd {
	return func() tea.Msg {
		if err := m.controller.Start(context.Background(), m.agent); err != nil {
			return sessionFailedMsg{err: err}
		}
		return sessionStartedMsg{}
	}
}

// waitForEvent blocks on the room event stream.
func (m SessionView) waitForEvent() tea.Cmd {
	sess := m.controller.Session()
	if sess == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-sess.Events()
		if !ok {
			return roomClosedMsg{}
		}
		return roomEventMsg(ev)
	}
}

func (m SessionView) endSession() tea.Cmd {
	return func() tea.Msg {
		m.controller.End(context.Background())
		return sessionEndedMsg{}
	}
}

func (m SessionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionStartedMsg:
		// Without a mic control the user cannot unmute, so do not
		// publish audio at all.
		if !m.controls.Microphone && m.controller.TrackEnabled(domain.TrackMicrophone) {
			m.controller.ToggleTrack(domain.TrackMicrophone)
		}
		return m, m.waitForEvent()

	case sessionFailedMsg:
		m.err = msg.err
		return m, nil

	case roomEventMsg:
		return m.handleRoomEvent(realtime.Event(msg))

	case roomClosedMsg:
		if m.ending {
			return m, nil
		}
		m.ending = true
		return m, m.endSession()

	case sessionEndedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m SessionView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if m.ending {
			return m, nil
		}
		m.ending = true
		return m, m.endSession()
	case "m":
		if m.controls.Microphone && m.connected() {
			m.controller.ToggleTrack(domain.TrackMicrophone)
		}
		return m, nil
	case "c":
		if m.controls.Camera && m.connected() {
			m.controller.ToggleTrack(domain.TrackCamera)
		}
		return m, nil
	case "t":
		if m.controls.Chat {
			m.showTranscript = !m.showTranscript
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SessionView) handleRoomEvent(ev realtime.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case realtime.EventMessage:
		if ev.Message != nil {
			m.transcript = append(m.transcript, *ev.Message)
			if m.ready {
				m.viewport.SetContent(m.renderTranscript())
				// Follow the conversation only when the local user just
				// spoke; otherwise leave the scroll position alone.
				if ev.Message.From.IsLocal {
					m.viewport.GotoBottom()
				}
			}
		}
	case realtime.EventDisconnected:
		// The room dropped out from under us. Tear down the same way a
		// user end does so the backend session is closed too.
		if ev.Err != nil {
			m.err = ev.Err
		}
		if m.ending {
			return m, nil
		}
		m.ending = true
		return m, m.endSession()
	}
	return m, m.waitForEvent()
}

// Transcript returns the messages collected during the session, for
// saving after the view exits.
func (m SessionView) Transcript() []domain.TranscriptMessage {
	out := make([]domain.TranscriptMessage, len(m.transcript))
	copy(out, m.transcript)
	return out
}

func (m SessionView) connected() bool {
	return m.controller.State() == domain.SessionConnected
}

func (m SessionView) renderTranscript() string {
	if len(m.transcript) == 0 {
		return statusStyle.Render("No messages yet. Start talking.")
	}
	var b strings.Builder
	for _, msg := range m.transcript {
		speaker := msg.From.Name
		if speaker == "" {
			speaker = msg.From.Identity
		}
		style := agentSpeakerStyle
		if msg.From.IsLocal {
			style = localSpeakerStyle
			speaker = "you"
		}
		fmt.Fprintf(&b, "%s %s\n", style.Render(speaker+":"), msg.Text)
	}
	return b.String()
}

func (m SessionView) statusLine() string {
	state := m.controller.State()
	switch state {
	case domain.SessionConnecting:
		return m.spinner.View() + statusStyle.Render(" connecting…")
	case domain.SessionConnected:
		remotes := 0
		if sess := m.controller.Session(); sess != nil {
			remotes = len(sess.RemoteParticipants())
		}
		return statusStyle.Render(fmt.Sprintf("connected · %d participant(s)", remotes))
	case domain.SessionDisconnecting:
		return statusStyle.Render("ending session…")
	case domain.SessionFailed:
		return errorStyle.Render("failed")
	default:
		return statusStyle.Render("idle")
	}
}

func (m SessionView) View() string {
	var sections []string
	sections = append(sections,
		titleStyle.Render("Voice test · "+m.agent.Name),
		m.statusLine(),
	)

	if m.err != nil {
		sections = append(sections, errorStyle.Render("error: "+m.err.Error()))
	}

	if m.showTranscript && m.ready {
		sections = append(sections, transcriptBorderStyle.Render(m.viewport.View()))
	}

	bar := RenderControlBar(ControlBarState{
		Controls:       m.controls,
		Connected:      m.connected(),
		MicEnabled:     m.controller.TrackEnabled(domain.TrackMicrophone),
		CameraEnabled:  m.controller.TrackEnabled(domain.TrackCamera),
		ShowTranscript: m.showTranscript,
	})
	if bar != "" {
		sections = append(sections, bar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
