package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentcore-dev/agentcore/agent"
)

// SaveAgentState returns the state document of a single agent, constructing
// it if necessary.
func (r *Runtime) SaveAgentState(ctx context.Context, id agent.ID) (agent.State, error) {
	a, err := r.registry.ensure(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.SaveState(ctx)
}

// LoadAgentState restores the state document of a single agent, constructing
// it if necessary.
func (r *Runtime) LoadAgentState(ctx context.Context, id agent.ID, state agent.State) error {
	a, err := r.registry.ensure(ctx, id)
	if err != nil {
		return err
	}
	return a.LoadState(ctx, state)
}

// SaveState collects the state document of every live agent into one
// snapshot keyed by the textual form of each identity. Agents are visited in
// sorted identity order so snapshots are deterministic.
func (r *Runtime) SaveState(ctx context.Context) (map[string]any, error) {
	live := r.registry.live()

	keys := make([]string, 0, len(live))
	byKey := make(map[string]agent.Agent, len(live))
	for id, a := range live {
		k := id.String()
		keys = append(keys, k)
		byKey[k] = a
	}
	sort.Strings(keys)

	doc := make(map[string]any, len(keys))
	for _, k := range keys {
		state, err := byKey[k].SaveState(ctx)
		if err != nil {
			return nil, fmt.Errorf("save state of %s: %w", k, err)
		}
		doc[k] = state
	}
	return doc, nil
}

// LoadState restores agents from a snapshot produced by SaveState. Each key
// must parse back into an identity and each value must be a structured
// object. Identities whose type has no registered factory are silently
// skipped, so snapshots containing unknown agent types load cleanly.
func (r *Runtime) LoadState(ctx context.Context, doc map[string]any) error {
	for key, value := range doc {
		id, err := agent.ParseID(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}

		state, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: entry %s is not a structured object", ErrInvalidSnapshot, key)
		}

		if !r.registry.hasFactory(id.Type) {
			continue
		}

		a, err := r.registry.ensure(ctx, id)
		if err != nil {
			return err
		}
		if err := a.LoadState(ctx, state); err != nil {
			return fmt.Errorf("load state of %s: %w", key, err)
		}
	}
	return nil
}
