package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ElectionContext is the tally-side view of a ciphertext election context.
// Wire-compatible with the context documents the election module produces.
type ElectionContext struct {
	SchemaVersion     int    `json:"schema_version"`
	NumberOfGuardians int    `json:"number_of_guardians"`
	Quorum            int    `json:"quorum"`
	ElGamalPublicKey  string `json:"elgamal_public_key"`
	CommitmentHash    string `json:"commitment_hash"`
	ManifestHash      string `json:"manifest_hash"`
}

// DecodeElectionContext parses and structurally validates a serialized
// context.
func DecodeElectionContext(raw json.RawMessage) (ElectionContext, error) {
	if len(raw) == 0 {
		return ElectionContext{}, errors.New("context document is empty")
	}
	var context ElectionContext
	if err := json.Unmarshal(raw, &context); err != nil {
		return ElectionContext{}, fmt.Errorf("decode context: %w", err)
	}
	if context.NumberOfGuardians < 1 {
		return ElectionContext{}, errors.New("context declares no guardians")
	}
	if context.Quorum < 1 || context.Quorum > context.NumberOfGuardians {
		return ElectionContext{}, fmt.Errorf("context quorum %d out of range for %d guardians",
			context.Quorum, context.NumberOfGuardians)
	}
	if strings.TrimSpace(context.ElGamalPublicKey) == "" {
		return ElectionContext{}, errors.New("context is missing the joint public key")
	}
	if strings.TrimSpace(context.ManifestHash) == "" {
		return ElectionContext{}, errors.New("context is missing the manifest hash")
	}
	return context, nil
}
