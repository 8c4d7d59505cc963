package store

// Migration is a single schema change, applied once in version order.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE agents (
				id TEXT PRIMARY KEY,
				payload TEXT NOT NULL,
				cached_at TEXT NOT NULL
			);

			CREATE TABLE transcripts (
				session_id TEXT PRIMARY KEY,
				agent_id TEXT NOT NULL,
				started_at TEXT NOT NULL,
				payload TEXT NOT NULL
			);

			CREATE INDEX idx_transcripts_agent ON transcripts(agent_id);

			CREATE TABLE activities (
				id TEXT PRIMARY KEY,
				agent_id TEXT,
				agent_name TEXT,
				query TEXT NOT NULL,
				status TEXT NOT NULL,
				created_at TEXT NOT NULL
			);

			CREATE INDEX idx_activities_created ON activities(created_at DESC);
		`,
	},
}
