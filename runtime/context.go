package runtime

import "context"

// linkedContext derives a context that is cancelled when either parent is.
// Values are inherited from primary only. The returned cancel func must be
// called to release the link.
func linkedContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(primary)
	if secondary == nil {
		return ctx, cancel
	}
	stop := context.AfterFunc(secondary, func() { cancel() })
	return ctx, func() {
		stop()
		cancel()
	}
}
