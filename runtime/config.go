package runtime

import (
	"log/slog"
)

// Config contains tuning options for a Runtime.
type Config struct {
	// DeliverToSelf controls whether a published message is delivered to the
	// agent that sent it when a subscription maps the topic back to the
	// sender. Default: false (senders never receive their own publishes).
	DeliverToSelf bool

	// QueueCapacity is the initial capacity hint for the pending delivery
	// queue. The queue grows beyond it without blocking enqueues.
	// Default: 64.
	QueueCapacity int

	// Logger receives structured runtime events. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		QueueCapacity: 64,
		Logger:        slog.Default(),
	}
}

// Option is a functional option for configuring a Runtime.
type Option func(*Config)

// WithDeliverToSelf enables or disables delivery of published messages back
// to their sender.
func WithDeliverToSelf(enabled bool) Option {
	return func(cfg *Config) {
		cfg.DeliverToSelf = enabled
	}
}

// WithQueueCapacity sets the initial pending queue capacity.
func WithQueueCapacity(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.QueueCapacity = n
		}
	}
}

// WithLogger sets the structured logger used by the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}
