package commands

import (
	"context"
	"strings"

	application "pericles/contexts/election-mediator/election-service/application"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
)

// TransitionCommand moves an election through its lifecycle. Force restores
// the legacy unconditional overwrite used for operator corrections; otherwise
// the forward-only transition table applies. ExpectedVersion, when positive,
// pins the write to the version the caller read.
type TransitionCommand struct {
	TenantID        string
	ElectionID      string
	Force           bool
	ExpectedVersion int64
}

// TransitionResult reports the stored state after a successful transition.
type TransitionResult struct {
	ElectionID string
	State      entities.ElectionState
	Version    int64
}

// OpenElection transitions an election to open.
func (uc ElectionUseCase) OpenElection(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.transition(ctx, cmd, entities.StateOpen)
}

// CloseElection transitions an election to closed.
func (uc ElectionUseCase) CloseElection(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.transition(ctx, cmd, entities.StateClosed)
}

// PublishElection transitions an election to published.
func (uc ElectionUseCase) PublishElection(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	return uc.transition(ctx, cmd, entities.StatePublished)
}

func (uc ElectionUseCase) transition(
	ctx context.Context,
	cmd TransitionCommand,
	target entities.ElectionState,
) (TransitionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	electionID := strings.TrimSpace(cmd.ElectionID)
	if tenantID == "" || electionID == "" {
		return TransitionResult{}, domainerrors.ErrInvalidRequest
	}

	election, err := uc.Elections.GetElection(ctx, tenantID, electionID)
	if err != nil {
		return TransitionResult{}, err
	}

	if !cmd.Force && !election.State.CanTransition(target) {
		logger.Warn("election transition rejected",
			"event", "election_transition_rejected",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"election_id", electionID,
			"from_state", string(election.State),
			"to_state", string(target),
		)
		return TransitionResult{}, domainerrors.ErrIllegalTransition
	}

	expectedVersion := cmd.ExpectedVersion
	if expectedVersion <= 0 {
		expectedVersion = election.Version
	}

	updated, err := uc.Elections.UpdateElectionState(ctx, tenantID, electionID, target, expectedVersion)
	if err != nil {
		logger.Warn("election transition write failed",
			"event", "election_transition_write_failed",
			"module", "election-mediator/election-service",
			"layer", "application",
			"tenant_id", tenantID,
			"election_id", electionID,
			"to_state", string(target),
			"expected_version", expectedVersion,
			"error", err.Error(),
		)
		return TransitionResult{}, err
	}

	uc.appendEvent(ctx, logger, "election.state_changed", updated, map[string]any{
		"election_id": electionID,
		"tenant_id":   tenantID,
		"from_state":  string(election.State),
		"to_state":    string(updated.State),
		"version":     updated.Version,
		"forced":      cmd.Force,
	})

	logger.Info("election transitioned",
		"event", "election_transitioned",
		"module", "election-mediator/election-service",
		"layer", "application",
		"tenant_id", tenantID,
		"election_id", electionID,
		"from_state", string(election.State),
		"to_state", string(updated.State),
		"version", updated.Version,
	)
	return TransitionResult{
		ElectionID: electionID,
		State:      updated.State,
		Version:    updated.Version,
	}, nil
}
