package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ShareProof is the serialized Chaum-Pedersen proof attached to one partial
// decryption.
type ShareProof struct {
	Challenge   string `json:"challenge"`
	Response    string `json:"response"`
	CommitmentG string `json:"commitment_g"`
	CommitmentH string `json:"commitment_h"`
}

// SelectionShare is a guardian's partial decryption of one selection total.
type SelectionShare struct {
	ObjectID string     `json:"object_id"`
	Partial  string     `json:"partial"`
	Proof    ShareProof `json:"proof"`
}

// ContestShare groups the selection partials of one contest.
type ContestShare struct {
	ObjectID   string                    `json:"object_id"`
	Selections map[string]SelectionShare `json:"selections"`
}

// DecryptionShare is one guardian's full contribution toward decrypting a
// ciphertext tally, identified by (guardian, tally).
type DecryptionShare struct {
	GuardianID     string                  `json:"guardian_id"`
	Sequence       int                     `json:"sequence"`
	SharePublicKey string                  `json:"share_public_key"`
	TallyID        string                  `json:"tally_id"`
	Contests       map[string]ContestShare `json:"contests"`
}

type shareEnvelope struct {
	SchemaVersion int              `json:"schema_version"`
	Kind          string           `json:"kind"`
	Share         *DecryptionShare `json:"share"`
}

const shareKind = "share.v1"

// DecodeShare parses a versioned decryption-share envelope.
func DecodeShare(raw json.RawMessage) (DecryptionShare, error) {
	if len(raw) == 0 {
		return DecryptionShare{}, errors.New("share document is empty")
	}
	var envelope shareEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return DecryptionShare{}, fmt.Errorf("decode share: %w", err)
	}
	if envelope.SchemaVersion != TallySchemaVersion || envelope.Kind != shareKind {
		return DecryptionShare{}, fmt.Errorf("unsupported share payload %q version %d",
			envelope.Kind, envelope.SchemaVersion)
	}
	if envelope.Share == nil || envelope.Share.GuardianID == "" {
		return DecryptionShare{}, errors.New("share payload is missing the guardian contribution")
	}
	return *envelope.Share, nil
}

// Encode wraps the share in its versioned envelope.
func (s DecryptionShare) Encode() (json.RawMessage, error) {
	raw, err := json.Marshal(shareEnvelope{
		SchemaVersion: TallySchemaVersion,
		Kind:          shareKind,
		Share:         &s,
	})
	if err != nil {
		return nil, fmt.Errorf("encode share: %w", err)
	}
	return raw, nil
}
