package config

import "github.com/Ashish-Jain-dev/voicestudio/internal/domain"

// Resolve applies deployment defaults to the control visibility record:
// leave, microphone, and chat are on; camera and screen share stay off
// unless a deployment explicitly enables them.
func (c ControlsConfig) Resolve() domain.Controls {
	return domain.Controls{
		Leave:       boolOr(c.Leave, true),
		Microphone:  boolOr(c.Microphone, true),
		Camera:      boolOr(c.Camera, false),
		ScreenShare: boolOr(c.ScreenShare, false),
		Chat:        boolOr(c.Chat, true),
	}
}
