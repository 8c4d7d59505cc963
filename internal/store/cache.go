package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

// Cache is the offline mirror of backend state: the last-seen agent
// list, saved transcripts, and the local activity feed.
type Cache struct {
	db *DB
}

func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// SaveAgents replaces the cached agent list.
func (c *Cache) SaveAgents(agents []domain.Agent) error {
	tx, err := c.db.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin agent cache update: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM agents`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear agent cache: %w", err)
	}
	now := time.Now().Format(time.DateTime)
	for _, a := range agents {
		payload, err := json.Marshal(a)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode agent %s: %w", a.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO agents (id, payload, cached_at) VALUES (?, ?, ?)`,
			a.ID, string(payload), now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("cache agent %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// LoadAgents returns the cached agent list, empty when nothing is cached.
func (c *Cache) LoadAgents() ([]domain.Agent, error) {
	rows, err := c.db.sql.Query(`SELECT payload FROM agents`)
	if err != nil {
		return nil, fmt.Errorf("read agent cache: %w", err)
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var a domain.Agent
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			c.db.log.Warn().Err(err).Msg("dropping corrupt cached agent")
			continue
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// SaveTranscript stores the full transcript of a finished session.
func (c *Cache) SaveTranscript(sessionID, agentID string, startedAt time.Time, messages []domain.TranscriptMessage) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = c.db.sql.Exec(
		`INSERT OR REPLACE INTO transcripts (session_id, agent_id, started_at, payload)
		 VALUES (?, ?, ?, ?)`,
		sessionID, agentID, startedAt.Format(time.DateTime), string(payload),
	)
	if err != nil {
		return fmt.Errorf("save transcript %s: %w", sessionID, err)
	}
	return nil
}

// LoadTranscript returns a saved transcript, nil when absent.
func (c *Cache) LoadTranscript(sessionID string) ([]domain.TranscriptMessage, error) {
	var payload string
	err := c.db.sql.QueryRow(
		`SELECT payload FROM transcripts WHERE session_id = ?`, sessionID,
	).Scan(&payload)
	if err != nil {
		return nil, nil
	}
	var messages []domain.TranscriptMessage
	if err := json.Unmarshal([]byte(payload), &messages); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", sessionID, err)
	}
	return messages, nil
}

// RecordActivity appends one entry to the local activity feed.
func (c *Cache) RecordActivity(a domain.Activity) error {
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := c.db.sql.Exec(
		`INSERT OR REPLACE INTO activities (id, agent_id, agent_name, query, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.AgentID, a.AgentName, a.Query, a.Status, ts.Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// RecentActivities returns the newest entries first, up to limit.
func (c *Cache) RecentActivities(limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.sql.Query(
		`SELECT id, agent_id, agent_name, query, status, created_at
		 FROM activities ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read activity feed: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var ts string
		if err := rows.Scan(&a.ID, &a.AgentID, &a.AgentName, &a.Query, &a.Status, &ts); err != nil {
			continue
		}
		a.Timestamp, _ = time.Parse(time.DateTime, ts)
		out = append(out, a)
	}
	return out, rows.Err()
}
