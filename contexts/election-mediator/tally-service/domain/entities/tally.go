package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TallySchemaVersion is the wire schema carried by serialized tallies and
// shares. Unversioned or unknown payloads are rejected at the boundary.
const TallySchemaVersion = 1

// Ciphertext is a serialized exponential ElGamal pair. The crypto engine is
// the only place the underlying group elements are materialized.
type Ciphertext struct {
	Pad  string `json:"pad"`
	Data string `json:"data"`
}

// SelectionTally is the homomorphic accumulation for one ballot selection.
type SelectionTally struct {
	ObjectID   string     `json:"object_id"`
	Ciphertext Ciphertext `json:"ciphertext"`
}

// ContestTally groups the selection accumulators of one contest.
type ContestTally struct {
	ObjectID   string                    `json:"object_id"`
	Selections map[string]SelectionTally `json:"selections"`
}

// CiphertextTally is the mutable accumulator of encrypted totals for an
// election. It is only ever extended by append operations; decryption
// produces a derived plaintext result and leaves the ciphertext intact for
// audits.
type CiphertextTally struct {
	ObjectID     string                  `json:"object_id"`
	TenantID     string                  `json:"-"`
	ElectionID   string                  `json:"election_id,omitempty"`
	ManifestHash string                  `json:"manifest_hash"`
	CastBallots  int                     `json:"cast_ballots"`
	Contests     map[string]ContestTally `json:"contests"`
	Version      int64                   `json:"version"`
	CreatedAt    time.Time               `json:"-"`
	UpdatedAt    time.Time               `json:"-"`
}

// tallyEnvelope is the versioned wire wrapper around a serialized tally.
type tallyEnvelope struct {
	SchemaVersion int              `json:"schema_version"`
	Kind          string           `json:"kind"`
	Tally         *CiphertextTally `json:"tally"`
}

const tallyKind = "tally.v1"

// DecodeTally parses a versioned encrypted-tally envelope.
func DecodeTally(raw json.RawMessage) (CiphertextTally, error) {
	if len(raw) == 0 {
		return CiphertextTally{}, errors.New("tally document is empty")
	}
	var envelope tallyEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return CiphertextTally{}, fmt.Errorf("decode tally: %w", err)
	}
	if envelope.SchemaVersion != TallySchemaVersion || envelope.Kind != tallyKind {
		return CiphertextTally{}, fmt.Errorf("unsupported tally payload %q version %d",
			envelope.Kind, envelope.SchemaVersion)
	}
	if envelope.Tally == nil || envelope.Tally.ObjectID == "" {
		return CiphertextTally{}, errors.New("tally payload is missing the accumulator")
	}
	return *envelope.Tally, nil
}

// Encode wraps the tally in its versioned envelope.
func (t CiphertextTally) Encode() (json.RawMessage, error) {
	raw, err := json.Marshal(tallyEnvelope{
		SchemaVersion: TallySchemaVersion,
		Kind:          tallyKind,
		Tally:         &t,
	})
	if err != nil {
		return nil, fmt.Errorf("encode tally: %w", err)
	}
	return raw, nil
}
