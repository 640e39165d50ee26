package commands

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	application "pericles/contexts/election-mediator/tally-service/application"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
)

// DecryptTallyCommand combines collected guardian shares into the plaintext
// tally. Shares arrive as a mapping from guardian identifier to that
// guardian's contribution.
type DecryptTallyCommand struct {
	TenantID       string
	EncryptedTally json.RawMessage
	Shares         map[string]entities.DecryptionShare
	Manifest       json.RawMessage
	Context        json.RawMessage
}

// DecryptTallyResult carries the plaintext totals and audit trail.
type DecryptTallyResult struct {
	Plaintext entities.PlaintextTally
}

// DecryptTally enforces the quorum guarantee: every supplied share must
// verify against its guardian's announced key, distinct proof-valid shares
// must reach the context's quorum, and one bad share fails the whole attempt
// rather than being dropped. Given the same share set, the combined result is
// deterministic regardless of map iteration order.
func (uc TallyUseCase) DecryptTally(ctx context.Context, cmd DecryptTallyCommand) (DecryptTallyResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	if tenantID == "" {
		return DecryptTallyResult{}, domainerrors.ErrMalformedPayload
	}

	request, err := translate(cmd.Manifest, cmd.Context)
	if err != nil {
		return DecryptTallyResult{}, err
	}
	tally, err := translateTally(cmd.EncryptedTally, request)
	if err != nil {
		return DecryptTallyResult{}, err
	}

	shares, err := orderShares(tally, cmd.Shares, request.context.NumberOfGuardians)
	if err != nil {
		logger.Warn("tally decrypt share set rejected",
			"event", "tally_decrypt_share_set_rejected",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", tally.ObjectID,
			"shares", len(cmd.Shares),
			"error", err.Error(),
		)
		return DecryptTallyResult{}, err
	}

	if len(shares) < request.context.Quorum {
		logger.Warn("tally decrypt below quorum",
			"event", "tally_decrypt_below_quorum",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", tally.ObjectID,
			"shares", len(shares),
			"quorum", request.context.Quorum,
		)
		return DecryptTallyResult{}, domainerrors.ErrInsufficientShares
	}

	// Fail closed: a single bad share aborts the decrypt attempt, it is never
	// silently dropped in favor of the remaining shares.
	for _, share := range shares {
		if err := uc.Engine.VerifyShare(tally, share); err != nil {
			logger.Warn("tally decrypt share verification failed",
				"event", "tally_decrypt_share_invalid",
				"module", "election-mediator/tally-service",
				"layer", "application",
				"tenant_id", tenantID,
				"tally_id", tally.ObjectID,
				"guardian_id", share.GuardianID,
				"error", err.Error(),
			)
			return DecryptTallyResult{}, &domainerrors.ShareVerificationError{
				GuardianID: share.GuardianID,
				Reason:     err,
			}
		}
	}

	plaintext, err := uc.Engine.CombineShares(request.context, tally, shares)
	if err != nil {
		logger.Error("tally decrypt combination failed",
			"event", "tally_decrypt_combine_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"tally_id", tally.ObjectID,
			"error", err.Error(),
		)
		return DecryptTallyResult{}, err
	}

	if uc.Tallies != nil {
		if err := uc.Tallies.SaveResult(ctx, tenantID, plaintext); err != nil {
			// The decrypt itself succeeded; persistence of the derived result
			// is reported but does not invalidate the response.
			logger.Error("tally decrypt result persist failed",
				"event", "tally_decrypt_result_persist_failed",
				"module", "election-mediator/tally-service",
				"layer", "application",
				"tenant_id", tenantID,
				"tally_id", tally.ObjectID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("tally decrypted",
		"event", "tally_decrypted",
		"module", "election-mediator/tally-service",
		"layer", "application",
		"tenant_id", tenantID,
		"tally_id", tally.ObjectID,
		"shares", len(shares),
		"quorum", request.context.Quorum,
	)
	return DecryptTallyResult{Plaintext: plaintext}, nil
}

// orderShares validates the share mapping and returns the shares in guardian
// sequence order so combination is independent of map iteration.
func orderShares(
	tally entities.CiphertextTally,
	input map[string]entities.DecryptionShare,
	numberOfGuardians int,
) ([]entities.DecryptionShare, error) {
	shares := make([]entities.DecryptionShare, 0, len(input))
	seen := make(map[int]string, len(input))
	for guardianID, share := range input {
		if share.GuardianID != "" && share.GuardianID != guardianID {
			return nil, domainerrors.ErrMalformedPayload
		}
		share.GuardianID = guardianID
		if share.TallyID != "" && share.TallyID != tally.ObjectID {
			return nil, domainerrors.ErrTallyInconsistent
		}
		if share.Sequence < 1 || share.Sequence > numberOfGuardians {
			return nil, domainerrors.ErrInvalidGuardian
		}
		if _, duplicate := seen[share.Sequence]; duplicate {
			return nil, domainerrors.ErrDuplicateGuardian
		}
		seen[share.Sequence] = guardianID
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Sequence < shares[j].Sequence })
	return shares, nil
}
