package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/agentcore-dev/agentcore/agent"
)

type lifecycleState int

const (
	stateStopped lifecycleState = iota
	stateRunning
	stateDraining
)

// Runtime routes messages between lazily instantiated agents. Callers
// enqueue work through Send and Publish; a single background loop drains the
// queue in FIFO order and dispatches each delivery as an independent unit of
// work.
//
// A Runtime is safe for concurrent use and reusable across Start/Stop runs:
// factories and subscriptions survive a stop, live agent instances are closed
// and recreated lazily on the next run.
type Runtime struct {
	cfg    *Config
	logger *slog.Logger

	registry *agentRegistry
	subs     *subscriptionSet
	queue    *pendingQueue
	tracker  *workTracker

	mu         sync.Mutex
	state      lifecycleState
	loopCtx    context.Context
	loopCancel context.CancelFunc
	loopDone   chan struct{}
	drainCh    chan struct{}

	inflight sync.WaitGroup
}

// New creates a Runtime with the given options.
func New(opts ...Option) *Runtime {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Runtime{
		cfg:     cfg,
		logger:  cfg.Logger,
		subs:    newSubscriptionSet(),
		queue:   newPendingQueue(cfg.QueueCapacity),
		tracker: newWorkTracker(),
	}
	r.registry = newAgentRegistry(handle{r})
	return r
}

// RegisterFactory registers the constructor for an agent type. Registering a
// type twice fails with ErrFactoryExists; the first registration stays
// intact.
func (r *Runtime) RegisterFactory(agentType string, factory agent.Factory) error {
	return r.registry.registerFactory(agentType, factory)
}

// RegisteredTypes returns the agent types that have a factory.
func (r *Runtime) RegisteredTypes() []string {
	return r.registry.factoryTypes()
}

// AgentCount returns the number of live agent instances.
func (r *Runtime) AgentCount() int {
	return r.registry.count()
}

// AddSubscription registers a subscription. Duplicate ids fail with
// ErrSubscriptionExists.
func (r *Runtime) AddSubscription(sub Subscription) error {
	return r.subs.add(sub)
}

// RemoveSubscription removes a subscription by id. Unknown ids fail with
// ErrSubscriptionNotFound.
func (r *Runtime) RemoveSubscription(id string) error {
	return r.subs.remove(id)
}

// Agent returns the live instance for id, constructing it if necessary.
// Instances remain owned by the runtime; callers must not retain them past
// Stop.
func (r *Runtime) Agent(ctx context.Context, id agent.ID) (agent.Agent, error) {
	return r.registry.ensure(ctx, id)
}

// TryAgent returns the live instance for id without constructing one.
func (r *Runtime) TryAgent(id agent.ID) (agent.Agent, bool) {
	return r.registry.get(id)
}

// AgentMetadata returns metadata for id, constructing the agent if needed.
func (r *Runtime) AgentMetadata(ctx context.Context, id agent.ID) (agent.Metadata, error) {
	a, err := r.registry.ensure(ctx, id)
	if err != nil {
		return agent.Metadata{}, err
	}
	return a.Metadata(), nil
}

// Send enqueues a point-to-point delivery to receiver and returns its
// completion handle. The enqueue never blocks; the handle resolves with the
// receiver's result once the delivery has been processed. Malformed
// envelopes fail here, before anything is queued.
func (r *Runtime) Send(ctx context.Context, payload any, receiver agent.ID, opts ...agent.MessageOption) (*Completion, error) {
	env, err := newSendEnvelope(ctx, payload, receiver, opts)
	if err != nil {
		return nil, err
	}
	c := r.enqueue(&delivery{env: env, comp: newCompletion(), kind: kindSend})
	r.logger.Debug("send enqueued",
		slog.String("message_id", env.MessageID),
		slog.String("receiver", receiver.String()))
	return c, nil
}

// Publish enqueues a fan-out delivery on topic and returns its completion
// handle. The handle resolves with nil once every matched subscriber has
// been attempted, or with an aggregate error enumerating every subscriber
// failure.
func (r *Runtime) Publish(ctx context.Context, payload any, topic agent.TopicID, opts ...agent.MessageOption) (*Completion, error) {
	env, err := newPublishEnvelope(ctx, payload, topic, opts)
	if err != nil {
		return nil, err
	}
	c := r.enqueue(&delivery{env: env, comp: newCompletion(), kind: kindPublish})
	r.logger.Debug("publish enqueued",
		slog.String("message_id", env.MessageID),
		slog.String("topic", env.Topic.String()))
	return c, nil
}

func (r *Runtime) enqueue(d *delivery) *Completion {
	r.tracker.add()
	r.queue.enqueue(d)
	return d.comp
}

// Start spawns the dispatch loop. It fails with ErrAlreadyStarted if the
// runtime is running or draining. Cancelling ctx acts as the engine-level
// shutdown signal: it aborts in-flight attempts and stops the loop.
func (r *Runtime) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateStopped {
		return ErrAlreadyStarted
	}

	r.loopCtx, r.loopCancel = context.WithCancel(ctx)
	r.loopDone = make(chan struct{})
	r.drainCh = make(chan struct{})
	r.state = stateRunning

	go r.processLoop(r.loopCtx, r.drainCh, r.loopDone)

	r.logger.Debug("runtime started")
	return nil
}

// Stop drains the runtime and shuts it down: the loop keeps dispatching
// until no deliveries are pending or in flight, then every live agent is
// closed exactly once. Deliveries enqueued while the drain is underway are
// still dispatched before shutdown completes.
//
// Cancelling ctx requests immediate shutdown instead: in-flight attempts are
// aborted through their linked contexts and agent closes are skipped.
func (r *Runtime) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.mu.Lock()
	switch r.state {
	case stateStopped:
		r.mu.Unlock()
		return ErrNotStarted
	case stateDraining:
		r.mu.Unlock()
		return ErrStopInProgress
	}
	r.state = stateDraining
	loopDone := r.loopDone
	loopCancel := r.loopCancel
	close(r.drainCh)
	r.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		<-loopDone
		r.inflight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		loopCancel()
		<-loopDone
		r.inflight.Wait()
		r.setStopped()
		return ctx.Err()
	}

	err := r.closeAgents(ctx)
	loopCancel()
	r.setStopped()
	r.logger.Debug("runtime stopped")
	return err
}

// Kill shuts the runtime down immediately: the engine shutdown signal aborts
// every in-flight attempt and agent Close calls are skipped. Pending
// deliveries stay queued.
func (r *Runtime) Kill() error {
	r.mu.Lock()
	if r.state == stateStopped {
		r.mu.Unlock()
		return ErrNotStarted
	}
	loopDone := r.loopDone
	loopCancel := r.loopCancel
	if r.state == stateRunning {
		r.state = stateDraining
		close(r.drainCh)
	}
	r.mu.Unlock()

	loopCancel()
	<-loopDone
	r.inflight.Wait()
	r.setStopped()
	r.logger.Debug("runtime killed")
	return nil
}

func (r *Runtime) setStopped() {
	r.mu.Lock()
	r.state = stateStopped
	r.mu.Unlock()
}

// WaitIdle blocks until the runtime reaches a quiescent point: no pending
// deliveries and no in-flight work. It leaves the dispatch loop running.
func (r *Runtime) WaitIdle(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-r.tracker.idle():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runtime) closeAgents(ctx context.Context) error {
	agents := r.registry.drain()
	if len(agents) == 0 {
		return nil
	}

	var g errgroup.Group
	for id, a := range agents {
		id, a := id, a
		g.Go(func() error {
			if err := a.Close(ctx); err != nil {
				r.logger.Warn("agent close failed",
					slog.String("agent_id", id.String()),
					slog.String("error", err.Error()))
				return fmt.Errorf("close %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// processLoop is the single consumer of the pending queue. It dequeues in
// strict FIFO order and dispatches each delivery on its own goroutine, so
// enqueue order fixes dispatch order but not completion order.
func (r *Runtime) processLoop(loopCtx context.Context, drainCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	draining := false
	drain := drainCh
	for {
		if d, ok := r.queue.dequeue(); ok {
			r.dispatch(loopCtx, d)
			continue
		}

		if draining && r.tracker.quiet() {
			return
		}

		var idle <-chan struct{}
		if draining {
			idle = r.tracker.idle()
		}

		select {
		case <-loopCtx.Done():
			return
		case <-drain:
			draining = true
			drain = nil
		case <-r.queue.wake():
		case <-idle:
		}
	}
}

func (r *Runtime) dispatch(loopCtx context.Context, d *delivery) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer r.tracker.done()

		switch d.kind {
		case kindSend:
			r.settleSend(loopCtx, d)
		case kindPublish:
			r.settlePublish(loopCtx, d)
		}
	}()
}

func (r *Runtime) settleSend(loopCtx context.Context, d *delivery) {
	env := d.env

	ctx, cancel := linkedContext(env.Context(), loopCtx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		d.comp.settle(nil, err)
		return
	}

	a, err := r.registry.ensure(ctx, *env.Receiver)
	if err != nil {
		d.comp.settle(nil, err)
		return
	}

	mc := agent.MessageContext{
		MessageID: env.MessageID,
		Sender:    env.Sender,
		IsRPC:     true,
	}
	result, err := a.HandleMessage(ctx, env.Payload, mc)
	if err != nil {
		r.logger.Debug("send failed",
			slog.String("message_id", env.MessageID),
			slog.String("receiver", env.Receiver.String()),
			slog.String("error", err.Error()))
	}
	d.comp.settle(result, err)
}

// settlePublish attempts every matched subscriber and aggregates failures.
// A failing subscriber never prevents the others from being attempted, and a
// publish has no atomicity across subscribers.
func (r *Runtime) settlePublish(loopCtx context.Context, d *delivery) {
	env := d.env
	topic := *env.Topic

	if err := env.Context().Err(); err != nil {
		d.comp.settle(nil, err)
		return
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		agg *multierror.Error
	)
	collect := func(err error) {
		mu.Lock()
		agg = multierror.Append(agg, err)
		mu.Unlock()
	}

	for _, sub := range r.subs.matches(topic) {
		target, err := sub.MapTo(topic)
		if err != nil {
			collect(err)
			continue
		}
		if env.Sender != nil && target == *env.Sender && !r.cfg.DeliverToSelf {
			continue
		}

		wg.Add(1)
		go func(target agent.ID) {
			defer wg.Done()

			ctx, cancel := linkedContext(env.Context(), loopCtx)
			defer cancel()

			a, err := r.registry.ensure(ctx, target)
			if err != nil {
				collect(err)
				return
			}

			mc := agent.MessageContext{
				MessageID: env.MessageID,
				Sender:    env.Sender,
				Topic:     &topic,
				IsRPC:     false,
			}
			if _, err := a.HandleMessage(ctx, env.Payload, mc); err != nil {
				collect(fmt.Errorf("subscriber %s: %w", target, err))
			}
		}(target)
	}
	wg.Wait()

	err := agg.ErrorOrNil()
	if err != nil {
		r.logger.Debug("publish failed for some subscribers",
			slog.String("message_id", env.MessageID),
			slog.String("topic", topic.String()),
			slog.Int("failures", len(agg.Errors)))
	}
	d.comp.settle(nil, err)
}
