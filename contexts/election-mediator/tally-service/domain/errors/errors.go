package errors

import (
	"errors"
	"fmt"
)

var (
	ErrBallotsRequired    = errors.New("at least one submitted ballot is required")
	ErrTallyNotFound      = errors.New("tally not found")
	ErrMalformedPayload   = errors.New("malformed tally payload")
	ErrTallyInconsistent  = errors.New("tally does not match the supplied manifest and context")
	ErrInsufficientShares = errors.New("not enough distinct guardian shares to reach the quorum")
	ErrDuplicateGuardian  = errors.New("duplicate guardian share")
	ErrInvalidShare       = errors.New("guardian share failed verification")
	ErrInvalidGuardian    = errors.New("guardian key material is invalid")
)

// ShareVerificationError identifies the guardian whose share failed, so the
// caller knows whose contribution to discard and re-collect. It unwraps to
// ErrInvalidShare.
type ShareVerificationError struct {
	GuardianID string
	Reason     error
}

func (e *ShareVerificationError) Error() string {
	return fmt.Sprintf("share from guardian %s failed verification: %v", e.GuardianID, e.Reason)
}

func (e *ShareVerificationError) Unwrap() error { return ErrInvalidShare }
