package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "pericles/contexts/election-mediator/election-service/application"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/ports"
	"pericles/internal/platform/crypto"
)

// MakeContextCommand requests construction of a ciphertext election context.
// The manifest to build against comes either from the store (by hash) or
// inline; the resulting context always carries the resolved manifest's own
// crypto hash, not whatever the caller supplied.
type MakeContextCommand struct {
	TenantID          string
	ManifestHash      string
	Manifest          json.RawMessage
	ElGamalPublicKey  string
	CommitmentHash    string
	NumberOfGuardians int
	Quorum            int
}

// ContextUseCase builds ciphertext election contexts.
type ContextUseCase struct {
	Manifests ports.ManifestStore
	Logger    *slog.Logger
}

// MakeContext resolves the manifest and binds the key-ceremony outputs to its
// crypto hash.
func (uc ContextUseCase) MakeContext(ctx context.Context, cmd MakeContextCommand) (entities.CiphertextElectionContext, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	if tenantID == "" {
		return entities.CiphertextElectionContext{}, domainerrors.ErrInvalidRequest
	}
	if cmd.NumberOfGuardians < 1 || cmd.Quorum < 1 || cmd.Quorum > cmd.NumberOfGuardians {
		logger.Warn("context build quorum rejected",
			"event", "election_context_quorum_rejected",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"number_of_guardians", cmd.NumberOfGuardians,
			"quorum", cmd.Quorum,
		)
		return entities.CiphertextElectionContext{}, domainerrors.ErrInvalidQuorum
	}
	if _, err := crypto.DecodePoint(cmd.ElGamalPublicKey); err != nil {
		return entities.CiphertextElectionContext{}, domainerrors.ErrMalformedPayload
	}
	if strings.TrimSpace(cmd.CommitmentHash) == "" {
		return entities.CiphertextElectionContext{}, domainerrors.ErrInvalidRequest
	}

	manifest := cmd.Manifest
	if manifestHash := strings.TrimSpace(cmd.ManifestHash); manifestHash != "" {
		stored, err := uc.Manifests.GetManifest(ctx, tenantID, manifestHash)
		if err != nil {
			logger.Warn("context build manifest lookup failed",
				"event", "election_context_manifest_missing",
				"module", "election-mediator/election-service",
				"layer", "application",
				"tenant_id", tenantID,
				"manifest_hash", manifestHash,
				"error", err.Error(),
			)
			return entities.CiphertextElectionContext{}, err
		}
		manifest = stored
	}
	if len(manifest) == 0 {
		return entities.CiphertextElectionContext{}, domainerrors.ErrInvalidRequest
	}

	resolvedHash, err := crypto.HashManifest(manifest)
	if err != nil {
		return entities.CiphertextElectionContext{}, domainerrors.ErrMalformedPayload
	}

	logger.Info("context built",
		"event", "election_context_built",
		"module", "election-mediator/election-service",
		"layer", "application",
		"tenant_id", tenantID,
		"manifest_hash", resolvedHash,
		"number_of_guardians", cmd.NumberOfGuardians,
		"quorum", cmd.Quorum,
	)
	return entities.CiphertextElectionContext{
		SchemaVersion:     entities.ContextSchemaVersion,
		NumberOfGuardians: cmd.NumberOfGuardians,
		Quorum:            cmd.Quorum,
		ElGamalPublicKey:  cmd.ElGamalPublicKey,
		CommitmentHash:    cmd.CommitmentHash,
		ManifestHash:      resolvedHash,
	}, nil
}
