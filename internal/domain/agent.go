package domain

import "time"

// Agent statuses as reported by the backend.
const (
	AgentStatusActive   = "active"
	AgentStatusInactive = "inactive"
	AgentStatusDraft    = "draft"
)

// Agent is a configured AI persona managed by the backend.
// JSON field names follow the backend's snake_case wire format.
type Agent struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	TemplateID    string     `json:"template_id"`
	SystemPrompt  string     `json:"system_prompt"`
	Color         string     `json:"color,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	QueryCount    int        `json:"query_count"`
	DocumentCount int        `json:"document_count"`
	Status        string     `json:"status"`
	LastUsed      *time.Time `json:"last_used,omitempty"`
	AvatarID      string     `json:"avatar_id,omitempty"`
}

// VoiceID returns the agent's voice, falling back to the product default.
// Voice selection is a client-side concern; the backend does not store it.
func (a Agent) VoiceID() string {
	return DefaultVoiceID
}

// DefaultVoiceID is the voice used when an agent has no explicit selection.
const DefaultVoiceID = "alloy"

// Template is a pre-configured agent blueprint.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Color        string `json:"color"`
}

// Built-in template identifiers.
const (
	TemplateGeneral   = "general"
	TemplateProject   = "project"
	TemplateTechStack = "techstack"
	TemplateClient    = "client"
)

// TemplateIcon maps a template ID to its display glyph.
func TemplateIcon(templateID string) string {
	switch templateID {
	case TemplateProject:
		return "🚀"
	case TemplateTechStack:
		return "⚡"
	case TemplateClient:
		return "🤝"
	default:
		return "🤖"
	}
}

// Document is a knowledge file attached to an agent.
type Document struct {
	ID         string    `json:"id"`
	AgentID    string    `json:"agent_id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	ChunkCount int       `json:"chunk_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}
