package runtime

import "sync"

// pendingQueue is an unbounded concurrency-safe FIFO. Enqueue never blocks;
// the single consumer parks on wake() when the queue is empty. The one-slot
// wake channel retains a missed notification, so an enqueue racing an empty
// dequeue cannot strand the consumer.
type pendingQueue struct {
	mu    sync.Mutex
	items []*delivery
	wakeC chan struct{}
}

func newPendingQueue(capacity int) *pendingQueue {
	if capacity <= 0 {
		capacity = 64
	}
	return &pendingQueue{
		items: make([]*delivery, 0, capacity),
		wakeC: make(chan struct{}, 1),
	}
}

func (q *pendingQueue) enqueue(d *delivery) {
	q.mu.Lock()
	q.items = append(q.items, d)
	q.mu.Unlock()

	select {
	case q.wakeC <- struct{}{}:
	default:
	}
}

func (q *pendingQueue) dequeue() (*delivery, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	d := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return d, true
}

func (q *pendingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// wake returns the notification channel the consumer parks on.
func (q *pendingQueue) wake() <-chan struct{} {
	return q.wakeC
}
