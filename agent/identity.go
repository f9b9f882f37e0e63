package agent

import (
	"fmt"
	"strings"
)

// ID uniquely identifies one agent instance within a runtime.
//
// Type selects the factory used to construct the instance; Key distinguishes
// instances of the same type. IDs are value types and compare with ==. The
// runtime guarantees at most one live instance per ID.
type ID struct {
	Type string
	Key  string
}

// NewID builds an ID after validating both components. Type must not contain
// the "/" separator because it would make the textual form ambiguous.
func NewID(agentType, key string) (ID, error) {
	if agentType == "" {
		return ID{}, fmt.Errorf("agent type must not be empty")
	}
	if strings.Contains(agentType, "/") {
		return ID{}, fmt.Errorf("agent type %q must not contain '/'", agentType)
	}
	if key == "" {
		return ID{}, fmt.Errorf("agent key must not be empty")
	}
	return ID{Type: agentType, Key: key}, nil
}

// ParseID is the inverse of String. The input must be of the form "type/key".
func ParseID(s string) (ID, error) {
	agentType, key, ok := strings.Cut(s, "/")
	if !ok {
		return ID{}, fmt.Errorf("invalid agent id %q: expected type/key", s)
	}
	return NewID(agentType, key)
}

// String returns the textual form "type/key" used as the snapshot document key.
func (id ID) String() string {
	return id.Type + "/" + id.Key
}

// IsZero reports whether the ID is the zero value.
func (id ID) IsZero() bool {
	return id.Type == "" && id.Key == ""
}
