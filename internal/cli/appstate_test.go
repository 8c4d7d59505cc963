package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
)

func testAppStateConfig(t *testing.T) config.Config {
	t.Helper()
	base := t.TempDir()
	paths = config.Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Data:   base,
		Logs:   base,
	}
	log = logging.New(io.Discard, "silent")

	cfg := config.Defaults()
	cfg.Store.Cache = "sqlite"
	return cfg
}

func TestAppStateMirrorsAgentsThroughCache(t *testing.T) {
	cfg := testAppStateConfig(t)

	state := openAppState(cfg)
	state.SetAgents([]domain.Agent{
		{ID: "a1", Name: "Helper"},
		{ID: "a2", Name: "Planner"},
	})
	state.Close()

	// A fresh state sees the mirrored list without a backend.
	state = openAppState(cfg)
	defer state.Close()
	cached, ok := state.CachedAgents()
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, "Helper", cached[0].Name)

	// The store is primed from the cache too.
	assert.Len(t, state.app.Agents(), 2)
}

func TestAppStateMutationsPersist(t *testing.T) {
	cfg := testAppStateConfig(t)

	state := openAppState(cfg)
	state.SetAgents([]domain.Agent{{ID: "a1", Name: "Helper"}})
	state.Close()

	state = openAppState(cfg)
	state.AddAgent(domain.Agent{ID: "a2", Name: "Planner"})
	state.UpdateAgent(domain.Agent{ID: "a1", Name: "Helper v2"})
	state.DeleteAgent("a2")
	state.Close()

	state = openAppState(cfg)
	defer state.Close()
	cached, ok := state.CachedAgents()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "Helper v2", cached[0].Name)
}

func TestAppStateMemoryOnlyHasNoCache(t *testing.T) {
	cfg := testAppStateConfig(t)
	cfg.Store.Cache = "memory"

	state := openAppState(cfg)
	defer state.Close()
	state.SetAgents([]domain.Agent{{ID: "a1", Name: "Helper"}})

	_, ok := state.CachedAgents()
	assert.False(t, ok)
	assert.Len(t, state.app.Agents(), 1)
}
