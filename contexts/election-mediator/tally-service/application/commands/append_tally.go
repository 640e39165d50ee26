package commands

import (
	"context"
	"encoding/json"
	"strings"

	application "pericles/contexts/election-mediator/tally-service/application"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
)

// AppendTallyCommand folds additional submitted ballots into an existing
// encrypted tally. The existing tally must have been accumulated against the
// same manifest and context supplied with the request.
type AppendTallyCommand struct {
	TenantID       string
	Ballots        []entities.SubmittedBallot
	EncryptedTally json.RawMessage
	Manifest       json.RawMessage
	Context        json.RawMessage
}

// AppendTally validates consistency between the supplied tally and the
// manifest/context pair, then extends the accumulator.
func (uc TallyUseCase) AppendTally(ctx context.Context, cmd AppendTallyCommand) (TallyResult, error) {
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
		return TallyResult{}, err
	}
	tally, err := translateTally(cmd.EncryptedTally, request)
	if err != nil {
		logger.Warn("tally append rejected",
			"event", "tally_append_rejected",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"error", err.Error(),
		)
		return TallyResult{}, err
	}

	accumulated, err := uc.Engine.Accumulate(tally, request.manifest, cmd.Ballots)
	if err != nil {
		return TallyResult{}, domainerrors.ErrMalformedPayload
	}

	accumulated.TenantID = tenantID
	accumulated.Version = tally.Version + 1
	accumulated.UpdatedAt = uc.now()
	if err := uc.Tallies.SaveTally(ctx, accumulated); err != nil {
		return TallyResult{}, err
	}

	logger.Info("tally appended",
		"event", "tally_appended",
		"module", "election-mediator/tally-service",
		"layer", "application",
		"tenant_id", tenantID,
		"tally_id", accumulated.ObjectID,
		"cast_ballots", accumulated.CastBallots,
	)
	return TallyResult{Tally: accumulated}, nil
}
