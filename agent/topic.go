package agent

// DefaultTopicSource is used when a topic is published without an explicit
// source.
const DefaultTopicSource = "default"

// TopicID identifies a publish channel. Type describes the kind of event
// carried on the topic; Source scopes it to a particular origin (for example
// a session or tenant). Subscriptions typically match on Type and derive the
// target agent key from Source.
type TopicID struct {
	Type   string
	Source string
}

// NewTopicID builds a TopicID, substituting DefaultTopicSource for an empty
// source.
func NewTopicID(topicType, source string) TopicID {
	if source == "" {
		source = DefaultTopicSource
	}
	return TopicID{Type: topicType, Source: source}
}

// String returns the textual form "type/source".
func (t TopicID) String() string {
	return t.Type + "/" + t.Source
}

// IsZero reports whether the TopicID is the zero value.
func (t TopicID) IsZero() bool {
	return t.Type == "" && t.Source == ""
}
