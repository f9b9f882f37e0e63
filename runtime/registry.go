package runtime

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/agentcore-dev/agentcore/agent"
)

// agentRegistry owns every live agent instance and the factories used to
// construct them. Construction is lazy: ensure builds an instance on first
// reference and is the only path through which agents come to exist.
type agentRegistry struct {
	mu        sync.RWMutex
	factories map[string]agent.Factory
	agents    map[agent.ID]agent.Agent

	// flight collapses concurrent first references to the same identity so
	// the factory runs exactly once per ID.
	flight singleflight.Group

	// handle is the runtime handle passed to factories.
	handle agent.Runtime
}

func newAgentRegistry(handle agent.Runtime) *agentRegistry {
	return &agentRegistry{
		factories: make(map[string]agent.Factory),
		agents:    make(map[agent.ID]agent.Agent),
		handle:    handle,
	}
}

func (r *agentRegistry) registerFactory(agentType string, factory agent.Factory) error {
	if agentType == "" {
		return fmt.Errorf("agent type must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for type %s must not be nil", agentType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[agentType]; exists {
		return fmt.Errorf("%w: %s", ErrFactoryExists, agentType)
	}
	r.factories[agentType] = factory
	return nil
}

func (r *agentRegistry) hasFactory(agentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[agentType]
	return ok
}

func (r *agentRegistry) factoryTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}

// get returns the live instance for id without constructing one.
func (r *agentRegistry) get(id agent.ID) (agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[id]
	return a, ok
}

// ensure returns the live instance for id, constructing it on first
// reference. Concurrent calls for the same never-before-seen identity result
// in exactly one factory invocation.
func (r *agentRegistry) ensure(ctx context.Context, id agent.ID) (agent.Agent, error) {
	if a, ok := r.get(id); ok {
		return a, nil
	}

	v, err, _ := r.flight.Do(id.String(), func() (any, error) {
		if a, ok := r.get(id); ok {
			return a, nil
		}

		r.mu.RLock()
		factory, ok := r.factories[id.Type]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: type %s", ErrFactoryNotFound, id.Type)
		}

		a, err := factory(ctx, id, r.handle)
		if err != nil {
			return nil, fmt.Errorf("factory for %s failed: %w", id, err)
		}
		if a == nil {
			return nil, fmt.Errorf("factory for %s returned nil agent", id)
		}

		r.mu.Lock()
		r.agents[id] = a
		r.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(agent.Agent), nil
}

// live returns a snapshot of every live instance keyed by identity.
func (r *agentRegistry) live() map[agent.ID]agent.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[agent.ID]agent.Agent, len(r.agents))
	for id, a := range r.agents {
		snapshot[id] = a
	}
	return snapshot
}

func (r *agentRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// drain removes and returns every live instance. Used by the shutdown close
// pass; factories and subscriptions survive so the runtime can be restarted.
func (r *agentRegistry) drain() map[agent.ID]agent.Agent {
	r.mu.Lock()
	defer r.mu.Unlock()

	drained := r.agents
	r.agents = make(map[agent.ID]agent.Agent)
	return drained
}
