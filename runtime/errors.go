package runtime

import (
	"errors"
)

var (
	// ErrFactoryNotFound is returned when an identity references an agent
	// type with no registered factory.
	ErrFactoryNotFound = errors.New("agent factory not found")

	// ErrFactoryExists is returned when registering a factory for a type
	// that already has one.
	ErrFactoryExists = errors.New("agent factory already registered")

	// ErrSubscriptionExists is returned when adding a subscription whose id
	// is already registered.
	ErrSubscriptionExists = errors.New("subscription already registered")

	// ErrSubscriptionNotFound is returned when removing an unknown
	// subscription id.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrTopicNotMatched is returned by a subscription asked to map a topic
	// it does not match.
	ErrTopicNotMatched = errors.New("subscription does not match topic")

	// ErrMissingReceiver is returned when a send is built without a receiver.
	ErrMissingReceiver = errors.New("send requires a receiver")

	// ErrMissingTopic is returned when a publish is built without a topic.
	ErrMissingTopic = errors.New("publish requires a topic")

	// ErrAlreadyStarted is returned when starting a runtime that is running.
	ErrAlreadyStarted = errors.New("runtime already started")

	// ErrNotStarted is returned when stopping a runtime that is not running.
	ErrNotStarted = errors.New("runtime not started")

	// ErrStopInProgress is returned when stopping a runtime that is already
	// draining.
	ErrStopInProgress = errors.New("runtime stop already in progress")

	// ErrInvalidSnapshot is returned when restoring a state document whose
	// shape is not a per-identity map of structured objects.
	ErrInvalidSnapshot = errors.New("invalid state snapshot")
)
