package commands

import (
	"context"
	"encoding/json"
	"strings"

	application "pericles/contexts/election-mediator/tally-service/application"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
)

// DecryptShareCommand asks for one guardian's partial decryption of an
// encrypted tally. The guardian's secret share lives only inside this request.
type DecryptShareCommand struct {
	TenantID       string
	Guardian       ports.GuardianKeyMaterial
	EncryptedTally json.RawMessage
	Manifest       json.RawMessage
	Context        json.RawMessage
}

// DecryptShareResult carries the produced share.
type DecryptShareResult struct {
	Share entities.DecryptionShare
}

// DecryptShare translates the request and delegates partial decryption to the
// engine. The guardian's sequence must lie inside the ceremony range the
// context declares.
func (uc TallyUseCase) DecryptShare(ctx context.Context, cmd DecryptShareCommand) (DecryptShareResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tenantID := strings.TrimSpace(cmd.TenantID)
	if tenantID == "" {
		return DecryptShareResult{}, domainerrors.ErrMalformedPayload
	}

	request, err := translate(cmd.Manifest, cmd.Context)
	if err != nil {
		return DecryptShareResult{}, err
	}
	tally, err := translateTally(cmd.EncryptedTally, request)
	if err != nil {
		return DecryptShareResult{}, err
	}

	guardianID := strings.TrimSpace(cmd.Guardian.GuardianID)
	if guardianID == "" ||
		cmd.Guardian.Sequence < 1 ||
		cmd.Guardian.Sequence > request.context.NumberOfGuardians {
		logger.Warn("decrypt share guardian rejected",
			"event", "tally_share_guardian_rejected",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"guardian_id", guardianID,
			"sequence", cmd.Guardian.Sequence,
		)
		return DecryptShareResult{}, domainerrors.ErrInvalidGuardian
	}

	guardian := cmd.Guardian
	guardian.GuardianID = guardianID
	share, err := uc.Engine.ComputeShare(guardian, tally)
	if err != nil {
		logger.Warn("decrypt share computation failed",
			"event", "tally_share_compute_failed",
			"module", "election-mediator/tally-service",
			"layer", "application",
			"tenant_id", tenantID,
			"guardian_id", guardianID,
			"tally_id", tally.ObjectID,
			"error", err.Error(),
		)
		return DecryptShareResult{}, domainerrors.ErrInvalidGuardian
	}

	logger.Info("decryption share produced",
		"event", "tally_share_produced",
		"module", "election-mediator/tally-service",
		"layer", "application",
		"tenant_id", tenantID,
		"guardian_id", guardianID,
		"tally_id", tally.ObjectID,
	)
	return DecryptShareResult{Share: share}, nil
}
