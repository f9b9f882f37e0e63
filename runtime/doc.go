// Package runtime implements the in-process dispatch engine that routes
// messages between agents.
//
// A Runtime owns three registries (factories, live agents, subscriptions) and
// a pending-delivery queue. Callers enqueue work through Send and Publish and
// receive a Completion handle that resolves once the delivery has been
// processed. A single background loop drains the queue in FIFO order and fans
// each delivery out as its own unit of work, so enqueue order determines
// dispatch order but not completion order.
//
// # Usage
//
//	rt := runtime.New()
//	rt.RegisterFactory("echo", echoFactory)
//
//	if err := rt.Start(ctx); err != nil {
//	    return err
//	}
//
//	c, err := rt.Send(ctx, "ping", agent.ID{Type: "echo", Key: "k1"})
//	if err != nil {
//	    return err
//	}
//	result, err := c.Wait(ctx)
//
//	// Publish fan-out with topic subscriptions
//	rt.AddSubscription(runtime.NewTypeSubscription("task.created", "worker"))
//	c, _ = rt.Publish(ctx, task, agent.NewTopicID("task.created", "session-1"))
//
//	rt.Stop(ctx)
//
// Agents are instantiated lazily: the first delivery addressed to an identity
// invokes the factory registered for its type. Construction is guaranteed to
// happen exactly once per identity even under concurrent first references.
package runtime
