// Package agentcore is the top-level entry point for the agentcore message
// dispatch runtime. It re-exports the types most callers need so simple
// programs can depend on a single import:
//
//	rt := agentcore.New()
//	rt.RegisterFactory("echo", func(ctx context.Context, id agentcore.ID, h agentcore.Handle) (agentcore.Agent, error) {
//	    return agentcore.NewFuncAgent(id, "echoes its input",
//	        func(ctx context.Context, payload any, mc agentcore.MessageContext) (any, error) {
//	            return payload, nil
//	        }), nil
//	})
//
//	rt.Start(ctx)
//	c, _ := rt.Send(ctx, "ping", agentcore.ID{Type: "echo", Key: "e1"})
//	result, _ := c.Wait(ctx)
//	rt.Stop(ctx)
//
// The agent package holds the contracts for implementing agents, the runtime
// package holds the dispatch engine, and the config package loads YAML
// configuration.
package agentcore

import (
	"github.com/agentcore-dev/agentcore/agent"
	"github.com/agentcore-dev/agentcore/config"
	"github.com/agentcore-dev/agentcore/runtime"
)

// Core contracts re-exported from the agent package.
type (
	Agent          = agent.Agent
	Factory        = agent.Factory
	Handle         = agent.Runtime
	HandlerFunc    = agent.HandlerFunc
	ID             = agent.ID
	Metadata       = agent.Metadata
	MessageContext = agent.MessageContext
	MessageOption  = agent.MessageOption
	State          = agent.State
	TopicID        = agent.TopicID
)

// Engine types re-exported from the runtime package.
type (
	Completion   = runtime.Completion
	Runtime      = runtime.Runtime
	Subscription = runtime.Subscription
)

// New creates a runtime with the given options.
func New(opts ...runtime.Option) *Runtime {
	return runtime.New(opts...)
}

// NewFromConfig creates a runtime from a YAML configuration file. Explicit
// options take precedence over file settings; subscriptions declared in the
// file are registered on the returned runtime.
func NewFromConfig(path string, opts ...runtime.Option) (*Runtime, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	rt := runtime.New(append(cfg.Options(), opts...)...)
	if err := cfg.Apply(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// NewFuncAgent adapts a plain handler function into an Agent.
func NewFuncAgent(id ID, description string, fn HandlerFunc) *agent.FuncAgent {
	return agent.NewFuncAgent(id, description, fn)
}
