package entities

import (
	"encoding/json"
	"time"
)

// ElectionState is the lifecycle position of an election.
type ElectionState string

const (
	StateCreated   ElectionState = "created"
	StateOpen      ElectionState = "open"
	StateClosed    ElectionState = "closed"
	StatePublished ElectionState = "published"
)

// Valid reports whether the state is one of the known lifecycle states.
func (s ElectionState) Valid() bool {
	switch s {
	case StateCreated, StateOpen, StateClosed, StatePublished:
		return true
	}
	return false
}

// CanTransition reports whether the forward-only transition table allows
// moving from s to next. Skipping states or moving backward requires the
// caller to pass force explicitly.
func (s ElectionState) CanTransition(next ElectionState) bool {
	switch s {
	case StateCreated:
		return next == StateOpen
	case StateOpen:
		return next == StateClosed
	case StateClosed:
		return next == StatePublished
	}
	return false
}

// Election binds an immutable manifest and its ciphertext election context to
// a lifecycle state. Context and Manifest stay in serialized form; the
// manifest-hash invariant is enforced once at submission and the documents are
// never rewritten afterwards.
type Election struct {
	ElectionID string
	TenantID   string
	State      ElectionState
	Context    json.RawMessage
	Manifest   json.RawMessage
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
