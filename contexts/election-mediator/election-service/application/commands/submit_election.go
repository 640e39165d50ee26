package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "pericles/contexts/election-mediator/election-service/application"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/ports"
	"pericles/internal/platform/crypto"
)

// SubmitElectionCommand is the write-model input for election submission.
// Manifest is optional; when absent the manifest is resolved from the store
// by the hash the context declares.
type SubmitElectionCommand struct {
	TenantID   string
	ElectionID string
	Context    json.RawMessage
	Manifest   json.RawMessage
}

// SubmitElectionResult returns the persisted (possibly generated) identifier.
type SubmitElectionResult struct {
	ElectionID string
}

// ElectionUseCase orchestrates election writes: submission with the
// manifest-hash trust boundary, and versioned lifecycle transitions.
type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Manifests ports.ManifestStore
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// SubmitElection validates that the supplied context was built against the
// manifest actually in force and persists the election in state created.
// An explicit manifest in the request overrides any stored manifest looked up
// by the context's manifest hash.
func (uc ElectionUseCase) SubmitElection(ctx context.Context, cmd SubmitElectionCommand) (SubmitElectionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	logger.Info("election submit started",
		"event", "election_submit_started",
		"module", "election-mediator/election-service",
		"layer", "application",
		"tenant_id", tenantID,
		"election_id", strings.TrimSpace(cmd.ElectionID),
	)
	if tenantID == "" || len(cmd.Context) == 0 {
		return SubmitElectionResult{}, domainerrors.ErrInvalidRequest
	}

	electionContext, err := entities.DecodeContext(cmd.Context)
	if err != nil {
		logger.Warn("election submit context decode failed",
			"event", "election_submit_context_malformed",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"error", err.Error(),
		)
		return SubmitElectionResult{}, domainerrors.ErrMalformedPayload
	}

	manifest := cmd.Manifest
	if len(manifest) == 0 {
		manifest, err = uc.Manifests.GetManifest(ctx, tenantID, electionContext.ManifestHash)
		if err != nil {
			logger.Warn("election submit manifest lookup failed",
				"event", "election_submit_manifest_missing",
				"module", "election-mediator/election-service",
				"layer", "application",
				"tenant_id", tenantID,
				"manifest_hash", electionContext.ManifestHash,
				"error", err.Error(),
			)
			return SubmitElectionResult{}, err
		}
	}

	manifestHash, err := crypto.HashManifest(manifest)
	if err != nil {
		return SubmitElectionResult{}, domainerrors.ErrMalformedPayload
	}
	if manifestHash != electionContext.ManifestHash {
		// The trust boundary: a context must never be bound to a manifest it
		// was not built against.
		logger.Warn("election submit manifest hash mismatch",
			"event", "election_submit_hash_mismatch",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"context_manifest_hash", electionContext.ManifestHash,
			"resolved_manifest_hash", manifestHash,
		)
		return SubmitElectionResult{}, domainerrors.ErrManifestHashMismatch
	}

	electionID := strings.TrimSpace(cmd.ElectionID)
	if electionID == "" {
		electionID, err = uc.IDGen.NewID(ctx)
		if err != nil {
			return SubmitElectionResult{}, err
		}
	}

	now := uc.now()
	election := entities.Election{
		ElectionID: electionID,
		TenantID:   tenantID,
		State:      entities.StateCreated,
		Context:    cmd.Context,
		Manifest:   manifest,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		logger.Error("election submit persist failed",
			"event", "election_submit_persist_failed",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"election_id", electionID,
			"error", err.Error(),
		)
		return SubmitElectionResult{}, err
	}

	uc.appendEvent(ctx, logger, "election.submitted", election, map[string]any{
		"election_id":   electionID,
		"tenant_id":     tenantID,
		"state":         string(entities.StateCreated),
		"manifest_hash": manifestHash,
	})

	logger.Info("election submitted",
		"event", "election_submitted",
		"module", "election-mediator/election-service",
		"layer", "application",
		"tenant_id", tenantID,
		"election_id", electionID,
		"manifest_hash", manifestHash,
	)
	return SubmitElectionResult{ElectionID: electionID}, nil
}

// RegisterManifest stores an immutable manifest under its own crypto hash and
// returns that hash. Re-registering the same document is a no-op.
func (uc ElectionUseCase) RegisterManifest(ctx context.Context, tenantID string, manifest json.RawMessage) (string, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || len(manifest) == 0 {
		return "", domainerrors.ErrInvalidRequest
	}
	manifestHash, err := crypto.HashManifest(manifest)
	if err != nil {
		return "", domainerrors.ErrMalformedPayload
	}
	if err := uc.Manifests.PutManifest(ctx, tenantID, manifestHash, manifest); err != nil {
		logger.Error("manifest register persist failed",
			"event", "election_manifest_register_failed",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"manifest_hash", manifestHash,
			"error", err.Error(),
		)
		return "", err
	}
	logger.Info("manifest registered",
		"event", "election_manifest_registered",
		"module", "election-mediator/election-service",
		"layer", "application",
		"tenant_id", tenantID,
		"manifest_hash", manifestHash,
	)
	return manifestHash, nil
}

func (uc ElectionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
