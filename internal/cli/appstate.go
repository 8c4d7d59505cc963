package cli

import (
	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/store"
)

// appState mirrors backend results into the application store and the
// on-disk agent cache, so `agent list` keeps working when the backend
// is down.
type appState struct {
	app   *store.App
	db    *store.DB
	cache *store.Cache
}

// openAppState builds the store and, when the sqlite cache is enabled,
// opens it. A broken cache degrades to memory-only with a warning.
func openAppState(cfg config.Config) *appState {
	s := &appState{app: store.NewApp()}
	if cfg.Store.Cache != "sqlite" {
		return s
	}
	db, err := store.Open(paths.CacheDB(), log)
	if err != nil {
		log.Warn().Err(err).Msg("agent cache unavailable")
		return s
	}
	s.db = db
	s.cache = store.NewCache(db)

	// Prime the store from the last mirrored list so a mutation never
	// writes back a partial one.
	if agents, err := s.cache.LoadAgents(); err == nil {
		s.app.SetAgents(agents)
	}
	return s
}

func (s *appState) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *appState) saveAgents() {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveAgents(s.app.Agents()); err != nil {
		log.Warn().Err(err).Msg("agent cache save failed")
	}
}

// SetAgents replaces the agent list with a fresh backend result.
func (s *appState) SetAgents(agents []domain.Agent) {
	s.app.SetAgents(agents)
	s.saveAgents()
}

func (s *appState) AddAgent(a domain.Agent) {
	s.app.AddAgent(a)
	s.saveAgents()
}

func (s *appState) UpdateAgent(a domain.Agent) {
	if _, ok := s.app.Agent(a.ID); ok {
		s.app.UpdateAgent(a)
	} else {
		s.app.AddAgent(a)
	}
	s.saveAgents()
}

func (s *appState) DeleteAgent(id string) {
	s.app.DeleteAgent(id)
	s.saveAgents()
}

// CachedAgents loads the last mirrored agent list from disk.
func (s *appState) CachedAgents() ([]domain.Agent, bool) {
	if s.cache == nil {
		return nil, false
	}
	agents, err := s.cache.LoadAgents()
	if err != nil || len(agents) == 0 {
		return nil, false
	}
	return agents, true
}
