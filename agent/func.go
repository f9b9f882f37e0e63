package agent

import "context"

// HandlerFunc is the signature of a message handler.
type HandlerFunc func(ctx context.Context, payload any, mc MessageContext) (any, error)

// FuncAgent adapts a HandlerFunc into a stateless Agent. It is convenient in
// tests and for agents whose behavior needs no persistent state.
type FuncAgent struct {
	meta Metadata
	fn   HandlerFunc
}

// NewFuncAgent returns an agent that delegates HandleMessage to fn.
func NewFuncAgent(id ID, description string, fn HandlerFunc) *FuncAgent {
	return &FuncAgent{
		meta: Metadata{Type: id.Type, Key: id.Key, Description: description},
		fn:   fn,
	}
}

// Metadata returns the agent's metadata.
func (a *FuncAgent) Metadata() Metadata { return a.meta }

// HandleMessage invokes the wrapped handler.
func (a *FuncAgent) HandleMessage(ctx context.Context, payload any, mc MessageContext) (any, error) {
	return a.fn(ctx, payload, mc)
}

// SaveState returns an empty document; FuncAgent holds no state.
func (a *FuncAgent) SaveState(ctx context.Context) (State, error) { return State{}, nil }

// LoadState is a no-op.
func (a *FuncAgent) LoadState(ctx context.Context, state State) error { return nil }

// Close is a no-op.
func (a *FuncAgent) Close(ctx context.Context) error { return nil }
