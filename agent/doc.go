// Package agent provides the public contracts for building agents on top of
// the agentcore runtime.
//
// This package exports the core Agent, ID, TopicID, and Runtime types that
// external projects need to implement custom agents or interact with the
// dispatch engine.
//
// # Basic Usage
//
// To create a custom agent, implement the Agent interface:
//
//	type EchoAgent struct {
//	    id agent.ID
//	}
//
//	func (a *EchoAgent) Metadata() agent.Metadata {
//	    return agent.Metadata{Type: a.id.Type, Key: a.id.Key, Description: "echoes its input"}
//	}
//
//	func (a *EchoAgent) HandleMessage(ctx context.Context, payload any, mc agent.MessageContext) (any, error) {
//	    return payload, nil
//	}
//
//	func (a *EchoAgent) SaveState(ctx context.Context) (agent.State, error) { return agent.State{}, nil }
//	func (a *EchoAgent) LoadState(ctx context.Context, state agent.State) error { return nil }
//	func (a *EchoAgent) Close(ctx context.Context) error { return nil }
//
// Agents are never constructed directly by callers. A Factory is registered
// for an agent type, and the runtime instantiates the agent lazily on the
// first message addressed to one of its identities:
//
//	rt.RegisterFactory("echo", func(ctx context.Context, id agent.ID, h agent.Runtime) (agent.Agent, error) {
//	    return &EchoAgent{id: id}, nil
//	})
//
// For small handlers, NewFuncAgent adapts a plain function into an Agent.
package agent
