package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/realtime"
)

type fakeGateway struct {
	mu         sync.Mutex
	startResp  api.StartSessionResponse
	startErr   error
	startCalls []string
	endCalls   []string
	endErr     error

	// startGate, when set, blocks StartSession until released.
	startGate chan struct{}
}

func (g *fakeGateway) StartSession(ctx context.Context, agentID string) (api.StartSessionResponse, error) {
	g.mu.Lock()
	g.startCalls = append(g.startCalls, agentID)
	gate := g.startGate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return api.StartSessionResponse{}, ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.startErr != nil {
		return api.StartSessionResponse{}, g.startErr
	}
	return g.startResp, nil
}

func (g *fakeGateway) EndSession(_ context.Context, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endCalls = append(g.endCalls, sessionID)
	return g.endErr
}

func (g *fakeGateway) StartCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.startCalls))
	copy(out, g.startCalls)
	return out
}

func (g *fakeGateway) EndCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.endCalls))
	copy(out, g.endCalls)
	return out
}

type stateRecorder struct {
	mu     sync.Mutex
	states []domain.SessionState
}

func (r *stateRecorder) SessionStateChanged(state domain.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) States() []domain.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SessionState, len(r.states))
	copy(out, r.states)
	return out
}

func newTestController(gw *fakeGateway, dialer realtime.Dialer, rec Notifier) *Controller {
	return NewController(Options{
		Gateway:    gw,
		Dialer:     dialer,
		Notifier:   rec,
		ServerURL:  "ws://localhost:7880",
		EndOnClose: true,
	})
}

func defaultStart() api.StartSessionResponse {
	return api.StartSessionResponse{SessionID: "s1", RoomName: "voice_test_s1", Token: "jwt"}
}

func testAgent() domain.Agent {
	return domain.Agent{ID: "a1", Name: "Helper"}
}

func TestStartHappyPath(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	dialer := &realtime.FakeDialer{}
	rec := &stateRecorder{}
	c := newTestController(gw, dialer, rec)

	require.NoError(t, c.Start(context.Background(), testAgent()))

	assert.Equal(t, domain.SessionConnected, c.State())
	assert.Equal(t, "s1", c.SessionID())
	require.NotNil(t, c.Details())
	assert.Equal(t, "jwt", c.Details().Token)
	assert.Equal(t, "ws://localhost:7880", c.Details().ServerURL)
	require.NotNil(t, c.Session())
	assert.Equal(t, []domain.SessionState{domain.SessionConnecting, domain.SessionConnected}, rec.States())

	calls := dialer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "voice_test_s1", calls[0].RoomName)
	assert.Equal(t, "user_s1", calls[0].Identity)
}

func TestStartRejectsPlaceholderURLBeforeAnyNetworkCall(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	dialer := &realtime.FakeDialer{}
	rec := &stateRecorder{}
	c := NewController(Options{
		Gateway:    gw,
		Dialer:     dialer,
		Notifier:   rec,
		ServerURL:  "wss://your-project.livekit.cloud",
		EndOnClose: true,
	})

	err := c.Start(context.Background(), testAgent())
	require.Error(t, err)

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, domain.SessionFailed, c.State())
	assert.Nil(t, c.Details())
	assert.Empty(t, gw.StartCalls(), "backend must not hear about a misconfigured attempt")
	assert.Empty(t, dialer.Calls())
	assert.Equal(t, []domain.SessionState{domain.SessionFailed}, rec.States())
}

func TestStartEmptyURLIsAlsoConfigFailure(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(Options{Gateway: gw, Dialer: &realtime.FakeDialer{}, ServerURL: "  "})

	err := c.Start(context.Background(), testAgent())
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, gw.StartCalls())
}

func TestStartBackendErrorPropagatesDetail(t *testing.T) {
	gw := &fakeGateway{startErr: &api.RequestError{StatusCode: http.StatusInternalServerError, Detail: "agent pool exhausted"}}
	rec := &stateRecorder{}
	c := newTestController(gw, &realtime.FakeDialer{}, rec)

	err := c.Start(context.Background(), testAgent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent pool exhausted")

	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)

	assert.Equal(t, domain.SessionFailed, c.State())
	assert.ErrorContains(t, c.Err(), "agent pool exhausted")
	assert.Nil(t, c.Details())
	assert.Equal(t, []domain.SessionState{domain.SessionConnecting, domain.SessionFailed}, rec.States())
}

func TestStartDialFailureEndsOrphanedBackendSession(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	dialer := &realtime.FakeDialer{DialErr: errors.New("room unreachable")}
	c := newTestController(gw, dialer, &stateRecorder{})

	err := c.Start(context.Background(), testAgent())
	require.Error(t, err)
	assert.Equal(t, domain.SessionFailed, c.State())
	assert.Equal(t, []string{"s1"}, gw.EndCalls(), "backend session started but never joined must be ended")
}

func TestStartWhileActiveIsRejected(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	c := newTestController(gw, &realtime.FakeDialer{}, &stateRecorder{})

	require.NoError(t, c.Start(context.Background(), testAgent()))
	err := c.Start(context.Background(), testAgent())
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Len(t, gw.StartCalls(), 1)
}

func TestCloseDuringInFlightStartDiscardsLateResult(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{startResp: defaultStart(), startGate: gate}
	dialer := &realtime.FakeDialer{}
	c := newTestController(gw, dialer, &stateRecorder{})

	startErr := make(chan error, 1)
	go func() {
		startErr <- c.Start(context.Background(), testAgent())
	}()

	// Wait for the start call to be in flight, then close underneath it.
	require.Eventually(t, func() bool { return len(gw.StartCalls()) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close(context.Background()))
	close(gate)

	err := <-startErr
	assert.ErrorIs(t, err, ErrControllerClosed)
	assert.Nil(t, c.Session(), "late session must not be surfaced")

	// The orphaned backend session gets ended and the dialed room closed.
	require.Eventually(t, func() bool { return len(gw.EndCalls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"s1"}, gw.EndCalls())
	sessions := dialer.Sessions()
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Closed())
}

func TestEndTearsDownExactlyOnce(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	dialer := &realtime.FakeDialer{}
	rec := &stateRecorder{}
	c := newTestController(gw, dialer, rec)

	require.NoError(t, c.Start(context.Background(), testAgent()))
	require.NoError(t, c.End(context.Background()))
	require.NoError(t, c.End(context.Background()))
	require.NoError(t, c.End(context.Background()))

	assert.Equal(t, domain.SessionIdle, c.State())
	assert.Nil(t, c.Details())
	assert.Empty(t, c.SessionID())
	assert.Equal(t, []string{"s1"}, gw.EndCalls(), "repeat End calls must not re-end the session")

	sessions := dialer.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].CloseCount())
	assert.Equal(t, []domain.SessionState{
		domain.SessionConnecting,
		domain.SessionConnected,
		domain.SessionDisconnecting,
		domain.SessionIdle,
	}, rec.States())
}

func TestEndSkipsBackendWhenEndOnCloseDisabled(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	c := NewController(Options{
		Gateway:   gw,
		Dialer:    &realtime.FakeDialer{},
		ServerURL: "ws://localhost:7880",
	})

	require.NoError(t, c.Start(context.Background(), testAgent()))
	require.NoError(t, c.End(context.Background()))
	assert.Empty(t, gw.EndCalls())
	assert.Equal(t, domain.SessionIdle, c.State())
}

func TestEndSurvivesBackendFailure(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart(), endErr: errors.New("backend down")}
	c := newTestController(gw, &realtime.FakeDialer{}, &stateRecorder{})

	require.NoError(t, c.Start(context.Background(), testAgent()))
	require.NoError(t, c.End(context.Background()), "backend end failure is logged, not surfaced")
	assert.Equal(t, domain.SessionIdle, c.State())
}

func TestEndClearsFailedState(t *testing.T) {
	gw := &fakeGateway{startErr: errors.New("boom")}
	c := newTestController(gw, &realtime.FakeDialer{}, &stateRecorder{})

	require.Error(t, c.Start(context.Background(), testAgent()))
	require.Equal(t, domain.SessionFailed, c.State())

	require.NoError(t, c.End(context.Background()))
	assert.Equal(t, domain.SessionIdle, c.State())
}

func TestCloseRunsCallbackExactlyOnce(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	var closes int
	c := NewController(Options{
		Gateway:    gw,
		Dialer:     &realtime.FakeDialer{},
		ServerURL:  "ws://localhost:7880",
		EndOnClose: true,
		OnClose:    func() { closes++ },
	})

	require.NoError(t, c.Start(context.Background(), testAgent()))
	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))

	assert.Equal(t, 1, closes)
	assert.Equal(t, []string{"s1"}, gw.EndCalls())
	assert.ErrorIs(t, c.Start(context.Background(), testAgent()), ErrControllerClosed)
}

func TestToggleTrackNeverTouchesGateway(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	c := newTestController(gw, &realtime.FakeDialer{}, &stateRecorder{})

	require.NoError(t, c.Start(context.Background(), testAgent()))
	startsBefore := len(gw.StartCalls())
	endsBefore := len(gw.EndCalls())

	assert.True(t, c.TrackEnabled(domain.TrackMicrophone))
	require.NoError(t, c.ToggleTrack(domain.TrackMicrophone))
	assert.False(t, c.TrackEnabled(domain.TrackMicrophone))
	require.NoError(t, c.ToggleTrack(domain.TrackMicrophone))
	assert.True(t, c.TrackEnabled(domain.TrackMicrophone))

	assert.Len(t, gw.StartCalls(), startsBefore)
	assert.Len(t, gw.EndCalls(), endsBefore)
}

func TestToggleTrackWithoutSession(t *testing.T) {
	c := newTestController(&fakeGateway{}, &realtime.FakeDialer{}, &stateRecorder{})
	assert.ErrorIs(t, c.ToggleTrack(domain.TrackMicrophone), ErrNoActiveSession)
	assert.False(t, c.TrackEnabled(domain.TrackMicrophone))
}

func TestDetailsReturnsCopy(t *testing.T) {
	gw := &fakeGateway{startResp: defaultStart()}
	c := newTestController(gw, &realtime.FakeDialer{}, &stateRecorder{})
	require.NoError(t, c.Start(context.Background(), testAgent()))

	d := c.Details()
	d.Token = "mutated"
	assert.Equal(t, "jwt", c.Details().Token)
}
