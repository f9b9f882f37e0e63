package agent

import "context"

// Metadata describes an agent instance.
type Metadata struct {
	// Type is the agent type the instance was constructed for.
	Type string
	// Key is the instance key within the type.
	Key string
	// Description is a human-readable summary of the agent's behavior.
	Description string
}

// State is the opaque structured document an agent persists and restores.
// The runtime never inspects its contents beyond top-level keying in
// snapshots; agents own the schema.
type State = map[string]any

// Agent is the interface all agents must implement. Instances are owned
// exclusively by the runtime's registry: callers hold an ID and reach
// behavior through the runtime, never through a retained reference.
type Agent interface {
	// Metadata returns static information about this instance.
	Metadata() Metadata

	// HandleMessage processes one delivery attempt. For point-to-point sends
	// the returned value resolves the sender's completion handle; for
	// published messages the value is discarded. The ctx is the linked
	// cancellation signal for this specific attempt and handlers must not
	// block indefinitely, the runtime imposes no internal timeout.
	HandleMessage(ctx context.Context, payload any, mc MessageContext) (any, error)

	// SaveState returns the agent's opaque state document.
	SaveState(ctx context.Context) (State, error)

	// LoadState restores the agent from a previously saved document.
	LoadState(ctx context.Context, state State) error

	// Close releases the agent's resources. It must be idempotent; the
	// runtime calls it once per instance during graceful shutdown.
	Close(ctx context.Context) error
}

// Factory constructs an agent instance for an identity. The runtime
// guarantees a factory is invoked at most once per ID, so implementations
// need no duplicate-construction guards. The handle lets the new agent send
// and publish through the runtime that owns it.
type Factory func(ctx context.Context, id ID, h Runtime) (Agent, error)

// Runtime is the handle passed to factories and agents. It exposes the
// blocking form of the runtime's messaging surface: Send waits for the
// receiver's result, Publish waits until every matched subscriber settled.
type Runtime interface {
	// Send routes payload to receiver and waits for its result or failure.
	Send(ctx context.Context, payload any, receiver ID, opts ...MessageOption) (any, error)

	// Publish fans payload out to every agent subscribed to topic and waits
	// until all attempts settled. Subscriber failures are aggregated.
	Publish(ctx context.Context, payload any, topic TopicID, opts ...MessageOption) error

	// AgentMetadata returns metadata for id, instantiating the agent if
	// needed.
	AgentMetadata(ctx context.Context, id ID) (Metadata, error)
}

// MessageOptions collects optional per-message settings.
type MessageOptions struct {
	// Sender identifies the agent originating the message. Published
	// messages are not delivered back to their sender unless the runtime
	// has self-delivery enabled.
	Sender *ID
	// MessageID overrides the generated unique message identifier.
	MessageID string
}

// MessageOption configures a single Send or Publish call.
type MessageOption func(*MessageOptions)

// WithSender marks the message as originating from the given agent.
func WithSender(id ID) MessageOption {
	return func(o *MessageOptions) { o.Sender = &id }
}

// WithMessageID sets an explicit message identifier instead of a generated
// one.
func WithMessageID(messageID string) MessageOption {
	return func(o *MessageOptions) { o.MessageID = messageID }
}
