package runtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentcore-dev/agentcore/agent"
)

// Envelope is the immutable description of one message occurrence: payload,
// unique identifier, optional sender, and exactly one of receiver (send) or
// topic (publish). The caller's cancellation signal travels with it so a
// queued delivery can still be aborted before or during dispatch.
type Envelope struct {
	// MessageID uniquely identifies this occurrence.
	MessageID string

	// Payload is the message content. The runtime never inspects it.
	Payload any

	// Sender is the originating agent, if any.
	Sender *agent.ID

	// Receiver is the single target of a send; nil for publishes.
	Receiver *agent.ID

	// Topic is the publish channel; nil for sends.
	Topic *agent.TopicID

	ctx context.Context
}

// Context returns the caller's cancellation signal for this envelope.
func (e *Envelope) Context() context.Context {
	return e.ctx
}

func newSendEnvelope(ctx context.Context, payload any, receiver agent.ID, opts []agent.MessageOption) (*Envelope, error) {
	if receiver.IsZero() {
		return nil, ErrMissingReceiver
	}
	env := newEnvelope(ctx, payload, opts)
	env.Receiver = &receiver
	return env, nil
}

func newPublishEnvelope(ctx context.Context, payload any, topic agent.TopicID, opts []agent.MessageOption) (*Envelope, error) {
	if topic.IsZero() {
		return nil, ErrMissingTopic
	}
	if topic.Source == "" {
		topic.Source = agent.DefaultTopicSource
	}
	env := newEnvelope(ctx, payload, opts)
	env.Topic = &topic
	return env, nil
}

func newEnvelope(ctx context.Context, payload any, opts []agent.MessageOption) *Envelope {
	if ctx == nil {
		ctx = context.Background()
	}

	var o agent.MessageOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.MessageID == "" {
		o.MessageID = uuid.NewString()
	}

	return &Envelope{
		MessageID: o.MessageID,
		Payload:   payload,
		Sender:    o.Sender,
		ctx:       ctx,
	}
}
