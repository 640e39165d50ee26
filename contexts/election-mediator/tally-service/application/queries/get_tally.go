package queries

import (
	"context"
	"log/slog"
	"strings"

	application "pericles/contexts/election-mediator/tally-service/application"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
)

// TallyQueries serves read access to persisted accumulators and decryption
// results.
type TallyQueries struct {
	Tallies ports.TallyRepository
	Logger  *slog.Logger
}

// GetTally loads a persisted encrypted tally by object id within the tenant.
func (q TallyQueries) GetTally(ctx context.Context, tenantID, tallyID string) (entities.CiphertextTally, error) {
	logger := application.ResolveLogger(q.Logger)
	tenantID = strings.TrimSpace(tenantID)
	tallyID = strings.TrimSpace(tallyID)
	if tenantID == "" || tallyID == "" {
		return entities.CiphertextTally{}, domainerrors.ErrMalformedPayload
	}

	tally, err := q.Tallies.GetTally(ctx, tenantID, tallyID)
	if err != nil {
		logger.Warn("tally lookup failed",
			"event", "tally_lookup_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", tallyID,
			"error", err.Error(),
		)
		return entities.CiphertextTally{}, err
	}
	return tally, nil
}

// GetResult loads a persisted plaintext result by tally object id.
func (q TallyQueries) GetResult(ctx context.Context, tenantID, tallyID string) (entities.PlaintextTally, error) {
	logger := application.ResolveLogger(q.Logger)
	tenantID = strings.TrimSpace(tenantID)
	tallyID = strings.TrimSpace(tallyID)
	if tenantID == "" || tallyID == "" {
		return entities.PlaintextTally{}, domainerrors.ErrMalformedPayload
	}

	result, err := q.Tallies.GetResult(ctx, tenantID, tallyID)
	if err != nil {
		logger.Warn("tally result lookup failed",
			"event", "tally_result_lookup_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", tallyID,
			"error", err.Error(),
		)
		return entities.PlaintextTally{}, err
	}
	return result, nil
}
