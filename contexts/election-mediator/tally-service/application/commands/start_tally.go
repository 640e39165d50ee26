package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "pericles/contexts/election-mediator/tally-service/application"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
)

// StartTallyCommand opens a fresh tally accumulator for an election and folds
// the first batch of submitted ballots into it.
type StartTallyCommand struct {
	TenantID   string
	ElectionID string
	ObjectID   string
	Ballots    []entities.SubmittedBallot
	Manifest   json.RawMessage
	Context    json.RawMessage
}

// TallyResult carries the accumulator after a start or append operation.
type TallyResult struct {
	Tally entities.CiphertextTally
}

// TallyUseCase orchestrates tally writes: request translation, homomorphic
// accumulation through the engine, and persistence of accumulators and
// decryption results.
type TallyUseCase struct {
	Tallies ports.TallyRepository
	Engine  ports.TallyEngine
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// StartTally validates the request, builds the empty accumulator shaped by
// the manifest, and accumulates the submitted ballots.
func (uc TallyUseCase) StartTally(ctx context.Context, cmd StartTallyCommand) (TallyResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	if tenantID == "" {
		return TallyResult{}, domainerrors.ErrMalformedPayload
	}
	if len(cmd.Ballots) == 0 {
		return TallyResult{}, domainerrors.ErrBallotsRequired
	}

	request, err := translate(cmd.Manifest, cmd.Context)
	if err != nil {
		logger.Warn("tally start translation failed",
			"event", "tally_start_translation_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"election_id", strings.TrimSpace(cmd.ElectionID),
			"error", err.Error(),
		)
		return TallyResult{}, err
	}

	objectID := strings.TrimSpace(cmd.ObjectID)
	if objectID == "" {
		objectID, err = uc.IDGen.NewID(ctx)
		if err != nil {
			return TallyResult{}, err
		}
	}

	tally := uc.Engine.EmptyTally(objectID, request.manifestHash, request.manifest)
	tally.TenantID = tenantID
	tally.ElectionID = strings.TrimSpace(cmd.ElectionID)

	accumulated, err := uc.Engine.Accumulate(tally, request.manifest, cmd.Ballots)
	if err != nil {
		logger.Warn("tally start accumulation failed",
			"event", "tally_start_accumulation_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", objectID,
			"error", err.Error(),
		)
		return TallyResult{}, domainerrors.ErrMalformedPayload
	}

	now := uc.now()
	accumulated.TenantID = tenantID
	accumulated.Version = 1
	accumulated.CreatedAt = now
	accumulated.UpdatedAt = now
	if err := uc.Tallies.SaveTally(ctx, accumulated); err != nil {
		return TallyResult{}, err
	}

	logger.Info("tally started",
		"event", "tally_started",
		"module", "election-mediator/tally-service",
		"layer", "application",
		"tenant_id", tenantID,
		"tally_id", accumulated.ObjectID,
		"cast_ballots", accumulated.CastBallots,
	)
	return TallyResult{Tally: accumulated}, nil
}

func (uc TallyUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
