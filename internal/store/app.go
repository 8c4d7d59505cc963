package store

import (
	"sync"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

// maxActivities caps the in-memory activity feed.
const maxActivities = 20

// Plan limits shown on the dashboard.
const (
	defaultAgentsLimit  = 10
	defaultQueriesLimit = 1000
)

// App is the in-process application store: agents, activity feed, user,
// and usage counters, with change notification for the UI. All methods
// are safe for concurrent use.
type App struct {
	mu         sync.Mutex
	agents     []domain.Agent
	activities []domain.Activity
	documents  map[string][]domain.Document // agentID → documents
	user       *domain.User
	usage      domain.UsageStats

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

func NewApp() *App {
	return &App{
		documents: make(map[string][]domain.Document),
		subs:      make(map[int]func()),
		usage: domain.UsageStats{
			AgentsLimit:  defaultAgentsLimit,
			QueriesLimit: defaultQueriesLimit,
		},
	}
}

// Subscribe registers fn to run after every mutation. The returned
// function unsubscribes.
func (s *App) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *App) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// --- agents ---

func (s *App) Agents() []domain.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

func (s *App) Agent(id string) (domain.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agents {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Agent{}, false
}

// SetAgents replaces the agent list and refreshes the usage counter.
func (s *App) SetAgents(agents []domain.Agent) {
	s.mu.Lock()
	s.agents = make([]domain.Agent, len(agents))
	copy(s.agents, agents)
	s.usage.AgentsUsed = len(s.agents)
	s.mu.Unlock()
	s.notify()
}

func (s *App) AddAgent(a domain.Agent) {
	s.mu.Lock()
	s.agents = append(s.agents, a)
	s.usage.AgentsUsed = len(s.agents)
	s.mu.Unlock()
	s.notify()
}

func (s *App) UpdateAgent(a domain.Agent) {
	s.mu.Lock()
	for i := range s.agents {
		if s.agents[i].ID == a.ID {
			s.agents[i] = a
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *App) DeleteAgent(id string) {
	s.mu.Lock()
	kept := s.agents[:0]
	for _, a := range s.agents {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.agents = kept
	s.usage.AgentsUsed = len(s.agents)
	delete(s.documents, id)
	s.mu.Unlock()
	s.notify()
}

// --- activity feed ---

func (s *App) Activities() []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

func (s *App) SetActivities(activities []domain.Activity) {
	s.mu.Lock()
	n := len(activities)
	if n > maxActivities {
		n = maxActivities
	}
	s.activities = make([]domain.Activity, n)
	copy(s.activities, activities[:n])
	s.mu.Unlock()
	s.notify()
}

// AddActivity prepends one entry, trimming the feed to its cap, and
// counts the query against usage.
func (s *App) AddActivity(a domain.Activity) {
	s.mu.Lock()
	s.activities = append([]domain.Activity{a}, s.activities...)
	if len(s.activities) > maxActivities {
		s.activities = s.activities[:maxActivities]
	}
	s.usage.QueriesUsed++
	s.mu.Unlock()
	s.notify()
}

// --- documents ---

func (s *App) Documents(agentID string) []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.documents[agentID]
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	return out
}

func (s *App) SetDocuments(agentID string, docs []domain.Document) {
	s.mu.Lock()
	s.documents[agentID] = append([]domain.Document(nil), docs...)
	s.syncDocumentCountLocked(agentID)
	s.mu.Unlock()
	s.notify()
}

func (s *App) AddDocument(agentID string, doc domain.Document) {
	s.mu.Lock()
	s.documents[agentID] = append(s.documents[agentID], doc)
	s.syncDocumentCountLocked(agentID)
	s.mu.Unlock()
	s.notify()
}

func (s *App) RemoveDocument(agentID, documentID string) {
	s.mu.Lock()
	docs := s.documents[agentID]
	kept := docs[:0]
	for _, d := range docs {
		if d.ID != documentID {
			kept = append(kept, d)
		}
	}
	s.documents[agentID] = kept
	s.syncDocumentCountLocked(agentID)
	s.mu.Unlock()
	s.notify()
}

func (s *App) syncDocumentCountLocked(agentID string) {
	for i := range s.agents {
		if s.agents[i].ID == agentID {
			s.agents[i].DocumentCount = len(s.documents[agentID])
			return
		}
	}
}

// --- user & usage ---

func (s *App) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *App) SetUser(u *domain.User) {
	s.mu.Lock()
	if u == nil {
		s.user = nil
	} else {
		copied := *u
		s.user = &copied
	}
	s.mu.Unlock()
	s.notify()
}

func (s *App) Usage() domain.UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}
