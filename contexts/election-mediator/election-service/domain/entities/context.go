package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ContextSchemaVersion is the wire schema carried by serialized contexts.
const ContextSchemaVersion = 1

// CiphertextElectionContext carries the cryptographic parameters binding an
// election to a manifest and a key ceremony. Immutable once constructed.
type CiphertextElectionContext struct {
	SchemaVersion     int    `json:"schema_version"`
	NumberOfGuardians int    `json:"number_of_guardians"`
	Quorum            int    `json:"quorum"`
	ElGamalPublicKey  string `json:"elgamal_public_key"`
	CommitmentHash    string `json:"commitment_hash"`
	ManifestHash      string `json:"manifest_hash"`
}

// DecodeContext parses a serialized context and checks structural
// completeness. Cryptographic validation of the public key is left to the
// crypto layer.
func DecodeContext(raw json.RawMessage) (CiphertextElectionContext, error) {
	if len(raw) == 0 {
		return CiphertextElectionContext{}, errors.New("context document is empty")
	}
	var context CiphertextElectionContext
	if err := json.Unmarshal(raw, &context); err != nil {
		return CiphertextElectionContext{}, fmt.Errorf("decode context: %w", err)
	}
	if context.SchemaVersion != ContextSchemaVersion {
		return CiphertextElectionContext{}, fmt.Errorf("unsupported context schema version %d", context.SchemaVersion)
	}
	if context.NumberOfGuardians < 1 {
		return CiphertextElectionContext{}, errors.New("context declares no guardians")
	}
	if context.Quorum < 1 || context.Quorum > context.NumberOfGuardians {
		return CiphertextElectionContext{}, fmt.Errorf("context quorum %d out of range for %d guardians",
			context.Quorum, context.NumberOfGuardians)
	}
	if strings.TrimSpace(context.ElGamalPublicKey) == "" {
		return CiphertextElectionContext{}, errors.New("context is missing the joint public key")
	}
	if strings.TrimSpace(context.ManifestHash) == "" {
		return CiphertextElectionContext{}, errors.New("context is missing the manifest hash")
	}
	return context, nil
}

// Encode serializes the context for storage and transport.
func (c CiphertextElectionContext) Encode() (json.RawMessage, error) {
	c.SchemaVersion = ContextSchemaVersion
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode context: %w", err)
	}
	return raw, nil
}
