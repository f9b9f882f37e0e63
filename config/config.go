// Package config loads runtime configuration from YAML files: engine
// settings plus declarative subscriptions, so deployments can rewire topic
// routing without recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agentcore-dev/agentcore/runtime"
)

// Config is the top-level configuration document.
type Config struct {
	Runtime       RuntimeConfig        `yaml:"runtime"`
	Subscriptions []SubscriptionConfig `yaml:"subscriptions"`
}

// RuntimeConfig holds engine settings.
type RuntimeConfig struct {
	// DeliverToSelf lets published messages reach their own sender.
	DeliverToSelf bool `yaml:"deliver_to_self"`

	// QueueCapacity is the initial capacity of the pending queue. Zero
	// means the engine default.
	QueueCapacity int `yaml:"queue_capacity"`
}

// SubscriptionConfig declares one subscription. Exactly one of TopicType and
// TopicTypePrefix must be set.
type SubscriptionConfig struct {
	TopicType       string `yaml:"topic_type,omitempty"`
	TopicTypePrefix string `yaml:"topic_type_prefix,omitempty"`
	AgentType       string `yaml:"agent_type"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the document for structural errors.
func (c *Config) Validate() error {
	if c.Runtime.QueueCapacity < 0 {
		return fmt.Errorf("runtime.queue_capacity must not be negative")
	}
	for i, sub := range c.Subscriptions {
		if sub.AgentType == "" {
			return fmt.Errorf("subscriptions[%d]: agent_type is required", i)
		}
		hasType := sub.TopicType != ""
		hasPrefix := sub.TopicTypePrefix != ""
		if hasType == hasPrefix {
			return fmt.Errorf("subscriptions[%d]: exactly one of topic_type and topic_type_prefix must be set", i)
		}
	}
	return nil
}

// Options translates the engine settings into runtime options.
func (c *Config) Options() []runtime.Option {
	var opts []runtime.Option
	if c.Runtime.DeliverToSelf {
		opts = append(opts, runtime.WithDeliverToSelf(true))
	}
	if c.Runtime.QueueCapacity > 0 {
		opts = append(opts, runtime.WithQueueCapacity(c.Runtime.QueueCapacity))
	}
	return opts
}

// Apply registers the declared subscriptions on rt.
func (c *Config) Apply(rt *runtime.Runtime) error {
	for i, sub := range c.Subscriptions {
		var s runtime.Subscription
		if sub.TopicType != "" {
			s = runtime.NewTypeSubscription(sub.TopicType, sub.AgentType)
		} else {
			s = runtime.NewTypePrefixSubscription(sub.TopicTypePrefix, sub.AgentType)
		}
		if err := rt.AddSubscription(s); err != nil {
			return fmt.Errorf("subscriptions[%d]: %w", i, err)
		}
	}
	return nil
}
