package runtime

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agentcore-dev/agentcore/agent"
)

// Subscription maps topics to target agent identities. Match decides whether
// a topic belongs to the subscription; MapTo deterministically derives the
// identity that should receive messages published on a matched topic.
type Subscription interface {
	// ID uniquely identifies the subscription within a runtime.
	ID() string

	// Match reports whether the subscription applies to topic.
	Match(topic agent.TopicID) bool

	// MapTo returns the agent identity that receives messages on topic.
	// It fails with ErrTopicNotMatched when Match(topic) is false.
	MapTo(topic agent.TopicID) (agent.ID, error)
}

// TypeSubscription matches one exact topic type and maps the topic source to
// the instance key, so each source gets its own agent instance of the
// configured type.
type TypeSubscription struct {
	id        string
	topicType string
	agentType string
}

// NewTypeSubscription builds a subscription from topicType to agentType.
func NewTypeSubscription(topicType, agentType string) *TypeSubscription {
	return &TypeSubscription{
		id:        uuid.NewString(),
		topicType: topicType,
		agentType: agentType,
	}
}

// ID returns the subscription id.
func (s *TypeSubscription) ID() string { return s.id }

// Match reports whether topic's type equals the subscribed type.
func (s *TypeSubscription) Match(topic agent.TopicID) bool {
	return topic.Type == s.topicType
}

// MapTo maps a matched topic to (agentType, topic.Source).
func (s *TypeSubscription) MapTo(topic agent.TopicID) (agent.ID, error) {
	if !s.Match(topic) {
		return agent.ID{}, fmt.Errorf("%w: topic %s, subscribed type %s", ErrTopicNotMatched, topic, s.topicType)
	}
	return agent.ID{Type: s.agentType, Key: topic.Source}, nil
}

// TypePrefixSubscription matches every topic whose type starts with a prefix
// and maps the topic source to the instance key.
type TypePrefixSubscription struct {
	id              string
	topicTypePrefix string
	agentType       string
}

// NewTypePrefixSubscription builds a prefix subscription to agentType.
func NewTypePrefixSubscription(topicTypePrefix, agentType string) *TypePrefixSubscription {
	return &TypePrefixSubscription{
		id:              uuid.NewString(),
		topicTypePrefix: topicTypePrefix,
		agentType:       agentType,
	}
}

// ID returns the subscription id.
func (s *TypePrefixSubscription) ID() string { return s.id }

// Match reports whether topic's type starts with the subscribed prefix.
func (s *TypePrefixSubscription) Match(topic agent.TopicID) bool {
	return strings.HasPrefix(topic.Type, s.topicTypePrefix)
}

// MapTo maps a matched topic to (agentType, topic.Source).
func (s *TypePrefixSubscription) MapTo(topic agent.TopicID) (agent.ID, error) {
	if !s.Match(topic) {
		return agent.ID{}, fmt.Errorf("%w: topic %s, subscribed prefix %s", ErrTopicNotMatched, topic, s.topicTypePrefix)
	}
	return agent.ID{Type: s.agentType, Key: topic.Source}, nil
}

// NewDefaultSubscription subscribes agentType to the conventional "default"
// topic type, the catch-all channel for runtimes that do not partition
// topics.
func NewDefaultSubscription(agentType string) *TypeSubscription {
	return NewTypeSubscription("default", agentType)
}

// subscriptionSet holds subscriptions in insertion order. Resolution order
// follows insertion order; removal compacts the slice, so order across
// removals is not stable.
type subscriptionSet struct {
	mu   sync.RWMutex
	subs []Subscription
	ids  map[string]struct{}
}

func newSubscriptionSet() *subscriptionSet {
	return &subscriptionSet{ids: make(map[string]struct{})}
}

func (s *subscriptionSet) add(sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[sub.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrSubscriptionExists, sub.ID())
	}
	s.ids[sub.ID()] = struct{}{}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *subscriptionSet) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[id]; !exists {
		return fmt.Errorf("%w: %s", ErrSubscriptionNotFound, id)
	}
	delete(s.ids, id)
	for i, sub := range s.subs {
		if sub.ID() == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
	return nil
}

// matches returns the subscriptions matching topic in insertion order.
func (s *subscriptionSet) matches(topic agent.TopicID) []Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Subscription
	for _, sub := range s.subs {
		if sub.Match(topic) {
			matched = append(matched, sub)
		}
	}
	return matched
}
