package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore-dev/agentcore/agent"
)

func TestSaveStateRoundTrip(t *testing.T) {
	ctx := context.Background()

	src := newTestRuntime(t)
	spy := newAgentSpy()
	require.NoError(t, src.RegisterFactory("counter", spy.factory()))

	a1 := agent.ID{Type: "counter", Key: "k1"}
	a2 := agent.ID{Type: "counter", Key: "k2"}
	require.NoError(t, src.LoadAgentState(ctx, a1, agent.State{"count": 3}))
	require.NoError(t, src.LoadAgentState(ctx, a2, agent.State{"count": 7}))

	doc, err := src.SaveState(ctx)
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Contains(t, doc, "counter/k1")
	assert.Contains(t, doc, "counter/k2")

	dst := newTestRuntime(t)
	require.NoError(t, dst.RegisterFactory("counter", newAgentSpy().factory()))
	require.NoError(t, dst.LoadState(ctx, doc))

	state, err := dst.SaveAgentState(ctx, a1)
	require.NoError(t, err)
	assert.Equal(t, agent.State{"count": 3}, state)

	state, err = dst.SaveAgentState(ctx, a2)
	require.NoError(t, err)
	assert.Equal(t, agent.State{"count": 7}, state)
}

func TestLoadStateSkipsUnknownTypes(t *testing.T) {
	rt := newTestRuntime(t)

	doc := map[string]any{"ghost/k1": map[string]any{"x": 1}}
	require.NoError(t, rt.LoadState(context.Background(), doc))
	assert.Equal(t, 0, rt.AgentCount())
}

func TestLoadStateRejectsMalformedKeys(t *testing.T) {
	rt := newTestRuntime(t)
	spy := newAgentSpy()
	require.NoError(t, rt.RegisterFactory("counter", spy.factory()))

	doc := map[string]any{"no-separator": map[string]any{}}
	err := rt.LoadState(context.Background(), doc)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Equal(t, 0, rt.AgentCount())
}

func TestLoadStateRejectsMalformedValues(t *testing.T) {
	rt := newTestRuntime(t)
	spy := newAgentSpy()
	require.NoError(t, rt.RegisterFactory("counter", spy.factory()))

	doc := map[string]any{"counter/k1": "not an object"}
	err := rt.LoadState(context.Background(), doc)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Equal(t, 0, rt.AgentCount())
}

func TestSaveAgentStateInstantiates(t *testing.T) {
	rt := newTestRuntime(t)
	spy := newAgentSpy()
	require.NoError(t, rt.RegisterFactory("counter", spy.factory()))

	state, err := rt.SaveAgentState(context.Background(), agent.ID{Type: "counter", Key: "k1"})
	require.NoError(t, err)
	assert.Equal(t, agent.State{}, state)
	assert.Equal(t, 1, rt.AgentCount())

	_, err = rt.SaveAgentState(context.Background(), agent.ID{Type: "ghost", Key: "g1"})
	assert.ErrorIs(t, err, ErrFactoryNotFound)
}
