package runtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/agentcore-dev/agentcore/agent"
)

// testAgent is an instrumented agent used across the runtime tests. It
// records every handled payload and counts Close calls; handleFn overrides
// the default echo behavior.
type testAgent struct {
	id agent.ID

	mu      sync.Mutex
	state   agent.State
	handled []any
	closed  int

	handleFn func(ctx context.Context, payload any, mc agent.MessageContext) (any, error)
}

func (a *testAgent) Metadata() agent.Metadata {
	return agent.Metadata{Type: a.id.Type, Key: a.id.Key, Description: "instrumented test agent"}
}

func (a *testAgent) HandleMessage(ctx context.Context, payload any, mc agent.MessageContext) (any, error) {
	a.mu.Lock()
	a.handled = append(a.handled, payload)
	a.mu.Unlock()

	if a.handleFn != nil {
		return a.handleFn(ctx, payload, mc)
	}
	return payload, nil
}

func (a *testAgent) SaveState(ctx context.Context) (agent.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == nil {
		return agent.State{}, nil
	}
	return a.state, nil
}

func (a *testAgent) LoadState(ctx context.Context, state agent.State) error {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
	return nil
}

func (a *testAgent) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed++
	a.mu.Unlock()
	return nil
}

func (a *testAgent) handledPayloads() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]any, len(a.handled))
	copy(out, a.handled)
	return out
}

func (a *testAgent) closeCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// agentSpy builds testAgents and remembers every instance its factory
// produced, so tests can inspect agents the runtime owns.
type agentSpy struct {
	mu      sync.Mutex
	created map[agent.ID]*testAgent
	builds  int

	handleFn func(ctx context.Context, payload any, mc agent.MessageContext) (any, error)
}

func newAgentSpy() *agentSpy {
	return &agentSpy{created: make(map[agent.ID]*testAgent)}
}

func (s *agentSpy) factory() agent.Factory {
	return func(ctx context.Context, id agent.ID, h agent.Runtime) (agent.Agent, error) {
		a := &testAgent{id: id, handleFn: s.handleFn}
		s.mu.Lock()
		s.builds++
		s.created[id] = a
		s.mu.Unlock()
		return a, nil
	}
}

func (s *agentSpy) get(id agent.ID) *testAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created[id]
}

func (s *agentSpy) buildCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds
}

func newTestRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(append([]Option{WithLogger(quiet)}, opts...)...)
}
