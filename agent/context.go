package agent

// MessageContext carries per-invocation metadata into HandleMessage.
//
// Cancellation for the attempt travels as the ctx argument of HandleMessage,
// not here: the runtime links the caller's signal with its own shutdown
// signal so either can abort one attempt without affecting others.
type MessageContext struct {
	// MessageID is the unique identifier of the envelope being delivered.
	MessageID string

	// Sender is the originating agent, if the message carried one.
	Sender *ID

	// Topic is set for published messages and nil for direct sends.
	Topic *TopicID

	// IsRPC is true for point-to-point sends whose result resolves a
	// caller-visible handle. It is informational only; the dispatch logic
	// never branches on it.
	IsRPC bool
}
