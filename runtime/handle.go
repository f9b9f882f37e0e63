package runtime

import (
	"context"

	"github.com/agentcore-dev/agentcore/agent"
)

// handle is the runtime handle passed to factories and agents. It adapts the
// runtime's asynchronous surface to the blocking form of agent.Runtime:
// deliveries run as independent units of work, so an agent may block on a
// nested send without stalling the dispatch loop.
type handle struct {
	r *Runtime
}

var _ agent.Runtime = handle{}

func (h handle) Send(ctx context.Context, payload any, receiver agent.ID, opts ...agent.MessageOption) (any, error) {
	c, err := h.r.Send(ctx, payload, receiver, opts...)
	if err != nil {
		return nil, err
	}
	return c.Wait(ctx)
}

func (h handle) Publish(ctx context.Context, payload any, topic agent.TopicID, opts ...agent.MessageOption) error {
	c, err := h.r.Publish(ctx, payload, topic, opts...)
	if err != nil {
		return err
	}
	_, err = c.Wait(ctx)
	return err
}

func (h handle) AgentMetadata(ctx context.Context, id agent.ID) (agent.Metadata, error) {
	return h.r.AgentMetadata(ctx, id)
}
