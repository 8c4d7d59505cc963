package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SessionState tests ---

func TestSessionStateString(t *testing.T) {
	tests := []struct {
		state SessionState
		want  string
	}{
		{SessionIdle, "idle"},
		{SessionConnecting, "connecting"},
		{SessionConnected, "connected"},
		{SessionDisconnecting, "disconnecting"},
		{SessionFailed, "failed"},
		{SessionState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

// --- Agent wire format tests ---

func TestAgentUnmarshalSnakeCase(t *testing.T) {
	payload := `{
		"id": "a1",
		"name": "Helper",
		"template_id": "project",
		"system_prompt": "You are a helper.",
		"created_at": "2026-01-15T10:00:00Z",
		"updated_at": "2026-01-15T10:00:00Z",
		"query_count": 156,
		"document_count": 3,
		"status": "active"
	}`

	var a Agent
	require.NoError(t, json.Unmarshal([]byte(payload), &a))
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "Helper", a.Name)
	assert.Equal(t, "project", a.TemplateID)
	assert.Equal(t, 156, a.QueryCount)
	assert.Equal(t, AgentStatusActive, a.Status)
	assert.Nil(t, a.LastUsed)
	assert.Equal(t, "alloy", a.VoiceID())
}

func TestTemplateIcon(t *testing.T) {
	assert.Equal(t, "🚀", TemplateIcon(TemplateProject))
	assert.Equal(t, "⚡", TemplateIcon(TemplateTechStack))
	assert.Equal(t, "🤝", TemplateIcon(TemplateClient))
	assert.Equal(t, "🤖", TemplateIcon(TemplateGeneral))
	assert.Equal(t, "🤖", TemplateIcon("something-else"))
}

// --- Transcript tests ---

func TestTranscriptMessageOrigin(t *testing.T) {
	local := TranscriptMessage{
		From:      Participant{Identity: "user_s1", IsLocal: true},
		Text:      "hi",
		Timestamp: time.Now(),
	}
	remote := TranscriptMessage{
		From: Participant{Identity: "agent", IsAgent: true},
		Text: "hello",
	}

	assert.True(t, local.From.IsLocal)
	assert.False(t, local.From.IsAgent)
	assert.True(t, remote.From.IsAgent)
	assert.False(t, remote.From.IsLocal)
}
