package runtime

import "sync"

// workTracker counts outstanding work: deliveries that are queued plus
// deliveries in flight. It publishes a channel that closes when the count
// reaches zero, which is the runtime's quiescent point.
type workTracker struct {
	mu     sync.Mutex
	n      int
	idleCh chan struct{}
}

func newWorkTracker() *workTracker {
	ch := make(chan struct{})
	close(ch)
	return &workTracker{idleCh: ch}
}

func (t *workTracker) add() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.n++
	if t.n == 1 {
		t.idleCh = make(chan struct{})
	}
}

func (t *workTracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.n--
	if t.n == 0 {
		close(t.idleCh)
	}
}

// quiet reports whether no work is outstanding.
func (t *workTracker) quiet() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n == 0
}

// idle returns a channel closed once the current work count drains to zero.
func (t *workTracker) idle() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idleCh
}
