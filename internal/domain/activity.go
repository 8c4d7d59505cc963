package domain

import "time"

// Activity statuses for the dashboard feed.
const (
	ActivityStatusSuccess = "success"
	ActivityStatusError   = "error"
	ActivityStatusPending = "pending"
)

// Activity is one query event in the recent-activity feed.
type Activity struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	AgentName string    `json:"agent_name"`
	Query     string    `json:"query"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsOverview holds platform-wide counters.
type AnalyticsOverview struct {
	TotalAgents    int `json:"total_agents"`
	TotalQueries   int `json:"total_queries"`
	TotalDocuments int `json:"total_documents"`
	TotalSessions  int `json:"total_sessions"`
}

// AgentAnalytics holds per-agent usage counters.
type AgentAnalytics struct {
	AgentName        string     `json:"agent_name"`
	TotalSessions    int        `json:"total_sessions"`
	TotalQueries     int        `json:"total_queries"`
	DocumentsIndexed int        `json:"documents_indexed"`
	LastUsed         *time.Time `json:"last_used,omitempty"`
}

// User identifies the signed-in studio user. Authentication is handled
// elsewhere; this is display data only.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// UsageStats tracks plan limits shown on the dashboard.
type UsageStats struct {
	AgentsUsed   int `json:"agentsUsed"`
	AgentsLimit  int `json:"agentsLimit"`
	QueriesUsed  int `json:"queriesUsed"`
	QueriesLimit int `json:"queriesLimit"`
}
