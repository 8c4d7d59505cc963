package api

import "github.com/Ashish-Jain-dev/voicestudio/internal/domain"

// StartSessionRequest begins a voice test session against an agent.
type StartSessionRequest struct {
	AgentID string `json:"agent_id"`
}

// StartSessionResponse carries the credentials needed to join the room.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	RoomName  string `json:"room_name"`
	Token     string `json:"token"`
}

type QueryRequest struct {
	Question string `json:"question"`
}

type QueryResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id,omitempty"`
}

type CreateAgentRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	TemplateID   string `json:"template_id"`
	SystemPrompt string `json:"system_prompt"`
	Color        string `json:"color,omitempty"`
	VoiceID      string `json:"voice_id,omitempty"`
}

type UpdateAgentRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
	Color        *string `json:"color,omitempty"`
	VoiceID      *string `json:"voice_id,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type AgentListResponse struct {
	Agents []domain.Agent `json:"agents"`
}

type TemplateListResponse struct {
	Templates []domain.Template `json:"templates"`
}

type DocumentListResponse struct {
	Documents []domain.Document `json:"documents"`
}

type RecentSessionsResponse struct {
	Sessions []domain.Session `json:"sessions"`
}

type UploadResponse struct {
	Document domain.Document `json:"document"`
}
