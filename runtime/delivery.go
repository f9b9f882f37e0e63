package runtime

import (
	"context"
	"sync"
)

// Completion is the handle returned by Send and Publish. It resolves exactly
// once: with the receiver's result for a send, or with nil for a publish
// (failed publishes resolve with an aggregate of subscriber errors).
type Completion struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// settle resolves the handle. Calls after the first are ignored.
func (c *Completion) settle(value any, err error) {
	c.once.Do(func() {
		c.value = value
		c.err = err
		close(c.done)
	})
}

// Done returns a channel closed when the handle has resolved.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the handle resolves or ctx is cancelled.
func (c *Completion) Wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the resolved value and error. It must only be called after
// Done is closed.
func (c *Completion) Result() (any, error) {
	return c.value, c.err
}

type deliveryKind int

const (
	kindSend deliveryKind = iota
	kindPublish
)

// delivery is one queued unit of dispatch work. It is owned by the queue
// until dequeued, then by the dispatch loop until its completion settles.
type delivery struct {
	env  *Envelope
	comp *Completion
	kind deliveryKind
}
