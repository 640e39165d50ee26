package httpadapter

import (
	"context"
	"log/slog"

	"pericles/contexts/election-mediator/tally-service/application/commands"
	"pericles/contexts/election-mediator/tally-service/application/queries"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
	httptransport "pericles/contexts/election-mediator/tally-service/transport/http"
)

// Handler adapts transport DTOs to the tally use cases.
type Handler struct {
	Tallies commands.TallyUseCase
	Queries queries.TallyQueries
	Logger  *slog.Logger
}

func (h Handler) StartTallyHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.StartTallyRequest,
) (httptransport.TallyResponse, error) {
	result, err := h.Tallies.StartTally(ctx, commands.StartTallyCommand{
		TenantID:   tenantID,
		ElectionID: req.ElectionID,
		ObjectID:   req.ObjectID,
		Ballots:    toBallots(req.Ballots),
		Manifest:   req.Manifest,
		Context:    req.Context,
	})
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return toTallyResponse(result.Tally)
}

func (h Handler) AppendTallyHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.AppendTallyRequest,
) (httptransport.TallyResponse, error) {
	result, err := h.Tallies.AppendTally(ctx, commands.AppendTallyCommand{
		TenantID:       tenantID,
		Ballots:        toBallots(req.Ballots),
		EncryptedTally: req.EncryptedTally,
		Manifest:       req.Manifest,
		Context:        req.Context,
	})
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return toTallyResponse(result.Tally)
}

func (h Handler) DecryptShareHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.DecryptShareRequest,
) (httptransport.DecryptShareResponse, error) {
	result, err := h.Tallies.DecryptShare(ctx, commands.DecryptShareCommand{
		TenantID: tenantID,
		Guardian: ports.GuardianKeyMaterial{
			GuardianID:     req.Guardian.GuardianID,
			Sequence:       req.Guardian.Sequence,
			SecretShare:    req.Guardian.SecretShare,
			SharePublicKey: req.Guardian.SharePublicKey,
		},
		EncryptedTally: req.EncryptedTally,
		Manifest:       req.Manifest,
		Context:        req.Context,
	})
	if err != nil {
		return httptransport.DecryptShareResponse{}, err
	}
	raw, err := result.Share.Encode()
	if err != nil {
		return httptransport.DecryptShareResponse{}, err
	}
	return httptransport.DecryptShareResponse{Share: raw}, nil
}

func (h Handler) DecryptTallyHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.DecryptTallyRequest,
) (httptransport.DecryptTallyResponse, error) {
	shares := make(map[string]entities.DecryptionShare, len(req.Shares))
	for guardianID, raw := range req.Shares {
		share, err := entities.DecodeShare(raw)
		if err != nil {
			return httptransport.DecryptTallyResponse{}, domainerrors.ErrMalformedPayload
		}
		shares[guardianID] = share
	}
	result, err := h.Tallies.DecryptTally(ctx, commands.DecryptTallyCommand{
		TenantID:       tenantID,
		EncryptedTally: req.EncryptedTally,
		Shares:         shares,
		Manifest:       req.Manifest,
		Context:        req.Context,
	})
	if err != nil {
		return httptransport.DecryptTallyResponse{}, err
	}
	return toPlaintextResponse(result.Plaintext), nil
}

func (h Handler) GetTallyHandler(ctx context.Context, tenantID, tallyID string) (httptransport.TallyResponse, error) {
	tally, err := h.Queries.GetTally(ctx, tenantID, tallyID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return toTallyResponse(tally)
}

func (h Handler) GetResultHandler(ctx context.Context, tenantID, tallyID string) (httptransport.DecryptTallyResponse, error) {
	result, err := h.Queries.GetResult(ctx, tenantID, tallyID)
	if err != nil {
		return httptransport.DecryptTallyResponse{}, err
	}
	return toPlaintextResponse(result), nil
}

func toBallots(in []httptransport.BallotRequest) []entities.SubmittedBallot {
	ballots := make([]entities.SubmittedBallot, 0, len(in))
	for _, ballot := range in {
		contests := make([]entities.BallotContest, 0, len(ballot.Contests))
		for _, contest := range ballot.Contests {
			selections := make([]entities.BallotSelection, 0, len(contest.Selections))
			for _, selection := range contest.Selections {
				selections = append(selections, entities.BallotSelection{
					ObjectID: selection.ObjectID,
					Ciphertext: entities.Ciphertext{
						Pad:  selection.Ciphertext.Pad,
						Data: selection.Ciphertext.Data,
					},
				})
			}
			contests = append(contests, entities.BallotContest{
				ObjectID:   contest.ObjectID,
				Selections: selections,
			})
		}
		ballots = append(ballots, entities.SubmittedBallot{
			ObjectID: ballot.ObjectID,
			State:    ballot.State,
			Contests: contests,
		})
	}
	return ballots
}

func toTallyResponse(tally entities.CiphertextTally) (httptransport.TallyResponse, error) {
	raw, err := tally.Encode()
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		TallyID:        tally.ObjectID,
		CastBallots:    tally.CastBallots,
		EncryptedTally: raw,
	}, nil
}

func toPlaintextResponse(result entities.PlaintextTally) httptransport.DecryptTallyResponse {
	contests := make(map[string]httptransport.PlaintextContestResponse, len(result.Contests))
	for contestID, contest := range result.Contests {
		selections := make(map[string]httptransport.PlaintextSelectionResponse, len(contest.Selections))
		for selectionID, selection := range contest.Selections {
			selections[selectionID] = httptransport.PlaintextSelectionResponse{
				ObjectID: selection.ObjectID,
				Tally:    selection.Tally,
				Value:    selection.Value,
			}
		}
		contests[contestID] = httptransport.PlaintextContestResponse{
			ObjectID:   contest.ObjectID,
			Selections: selections,
		}
	}
	shares := make([]httptransport.AcceptedShareResponse, 0, len(result.Shares))
	for _, share := range result.Shares {
		shares = append(shares, httptransport.AcceptedShareResponse{
			GuardianID:     share.GuardianID,
			Sequence:       share.Sequence,
			SharePublicKey: share.SharePublicKey,
		})
	}
	return httptransport.DecryptTallyResponse{
		TallyID:     result.ObjectID,
		CastBallots: result.CastBallots,
		Contests:    contests,
		Shares:      shares,
	}
}
