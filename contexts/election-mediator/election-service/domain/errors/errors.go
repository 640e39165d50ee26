package errors

import "errors"

var (
	ErrElectionNotFound     = errors.New("election not found")
	ErrManifestNotFound     = errors.New("manifest not found")
	ErrManifestHashMismatch = errors.New("manifest hash does not match provided context hash")
	ErrInvalidQuorum        = errors.New("quorum is out of range for the number of guardians")
	ErrInvalidRequest       = errors.New("invalid election request")
	ErrMalformedPayload     = errors.New("malformed election payload")
	ErrIllegalTransition    = errors.New("illegal election state transition")
	ErrVersionConflict      = errors.New("election version conflict")
)
