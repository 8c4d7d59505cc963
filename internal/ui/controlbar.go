package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

// ControlBarState is everything the control bar needs to render. The
// bar itself holds no state: visibility comes from deployment config,
// the rest from the live session.
type ControlBarState struct {
	Controls       domain.Controls
	Connected      bool
	MicEnabled     bool
	CameraEnabled  bool
	ShowTranscript bool
}

// RenderControlBar renders the session control row. Controls hidden by
// configuration are omitted entirely; the end-call control renders
// disabled while the room is not connected.
func RenderControlBar(s ControlBarState) string {
	var parts []string

	if s.Controls.Microphone {
		if s.MicEnabled {
			parts = append(parts, controlActiveStyle.Render("[m] mic on"))
		} else {
			parts = append(parts, controlMutedStyle.Render("[m] mic off"))
		}
	}
	if s.Controls.Camera {
		if s.CameraEnabled {
			parts = append(parts, controlActiveStyle.Render("[c] camera on"))
		} else {
			parts = append(parts, controlStyle.Render("[c] camera off"))
		}
	}
	if s.Controls.Chat {
		if s.ShowTranscript {
			parts = append(parts, controlActiveStyle.Render("[t] transcript"))
		} else {
			parts = append(parts, controlStyle.Render("[t] transcript"))
		}
	}
	if s.Controls.Leave {
		if s.Connected {
			parts = append(parts, errorStyle.Padding(0, 1).Render("[q] end call"))
		} else {
			parts = append(parts, controlDisabledStyle.Render("[q] end call"))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, " "))
}
