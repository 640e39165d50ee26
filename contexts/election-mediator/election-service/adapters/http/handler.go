package httpadapter

import (
	"context"
	"log/slog"

	"pericles/contexts/election-mediator/election-service/application/commands"
	"pericles/contexts/election-mediator/election-service/application/queries"
	httptransport "pericles/contexts/election-mediator/election-service/transport/http"
)

// Handler adapts transport DTOs to the election use cases.
type Handler struct {
	Elections commands.ElectionUseCase
	Contexts  commands.ContextUseCase
	Queries   queries.ElectionQueries
	Logger    *slog.Logger
}

func (h Handler) SubmitElectionHandler(
	ctx context.Context,
	tenantID string,
	electionID string,
	req httptransport.SubmitElectionRequest,
) (httptransport.SubmitElectionResponse, error) {
	if electionID == "" {
		electionID = req.ElectionID
	}
	result, err := h.Elections.SubmitElection(ctx, commands.SubmitElectionCommand{
		TenantID:   tenantID,
		ElectionID: electionID,
		Context:    req.Context,
		Manifest:   req.Manifest,
	})
	if err != nil {
		return httptransport.SubmitElectionResponse{}, err
	}
	return httptransport.SubmitElectionResponse{ElectionID: result.ElectionID}, nil
}

func (h Handler) GetElectionHandler(ctx context.Context, tenantID string, electionID string) (httptransport.ElectionQueryResponse, error) {
	election, err := h.Queries.GetElection(ctx, tenantID, electionID)
	if err != nil {
		return httptransport.ElectionQueryResponse{}, err
	}
	return httptransport.ElectionQueryResponse{
		Elections: []httptransport.ElectionResponse{{
			ElectionID: election.ElectionID,
			State:      string(election.State),
			Context:    election.Context,
			Manifest:   election.Manifest,
			Version:    election.Version,
		}},
	}, nil
}

func (h Handler) FindElectionsHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.FindElectionsRequest,
	skip int,
	limit int,
) (httptransport.ElectionQueryResponse, error) {
	elections, err := h.Queries.FindElections(ctx, queries.FindElectionsQuery{
		TenantID:     tenantID,
		State:        req.State,
		ManifestHash: req.ManifestHash,
		Skip:         skip,
		Limit:        limit,
	})
	if err != nil {
		return httptransport.ElectionQueryResponse{}, err
	}
	items := make([]httptransport.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		items = append(items, httptransport.ElectionResponse{
			ElectionID: election.ElectionID,
			State:      string(election.State),
			Context:    election.Context,
			Manifest:   election.Manifest,
			Version:    election.Version,
		})
	}
	return httptransport.ElectionQueryResponse{Elections: items}, nil
}

func (h Handler) OpenElectionHandler(
	ctx context.Context,
	tenantID string,
	electionID string,
	force bool,
	expectedVersion int64,
) (httptransport.TransitionResponse, error) {
	return mapTransition(h.Elections.OpenElection(ctx, commands.TransitionCommand{
		TenantID:        tenantID,
		ElectionID:      electionID,
		Force:           force,
		ExpectedVersion: expectedVersion,
	}))
}

func (h Handler) CloseElectionHandler(
	ctx context.Context,
	tenantID string,
	electionID string,
	force bool,
	expectedVersion int64,
) (httptransport.TransitionResponse, error) {
	return mapTransition(h.Elections.CloseElection(ctx, commands.TransitionCommand{
		TenantID:        tenantID,
		ElectionID:      electionID,
		Force:           force,
		ExpectedVersion: expectedVersion,
	}))
}

func (h Handler) PublishElectionHandler(
	ctx context.Context,
	tenantID string,
	electionID string,
	force bool,
	expectedVersion int64,
) (httptransport.TransitionResponse, error) {
	return mapTransition(h.Elections.PublishElection(ctx, commands.TransitionCommand{
		TenantID:        tenantID,
		ElectionID:      electionID,
		Force:           force,
		ExpectedVersion: expectedVersion,
	}))
}

func (h Handler) MakeContextHandler(
	ctx context.Context,
	tenantID string,
	manifestHash string,
	req httptransport.MakeContextRequest,
) (httptransport.MakeContextResponse, error) {
	if manifestHash == "" {
		manifestHash = req.ManifestHash
	}
	electionContext, err := h.Contexts.MakeContext(ctx, commands.MakeContextCommand{
		TenantID:          tenantID,
		ManifestHash:      manifestHash,
		Manifest:          req.Manifest,
		ElGamalPublicKey:  req.ElGamalPublicKey,
		CommitmentHash:    req.CommitmentHash,
		NumberOfGuardians: req.NumberOfGuardians,
		Quorum:            req.Quorum,
	})
	if err != nil {
		return httptransport.MakeContextResponse{}, err
	}
	raw, err := electionContext.Encode()
	if err != nil {
		return httptransport.MakeContextResponse{}, err
	}
	return httptransport.MakeContextResponse{Context: raw}, nil
}

func (h Handler) RegisterManifestHandler(
	ctx context.Context,
	tenantID string,
	req httptransport.RegisterManifestRequest,
) (httptransport.RegisterManifestResponse, error) {
	manifestHash, err := h.Elections.RegisterManifest(ctx, tenantID, req.Manifest)
	if err != nil {
		return httptransport.RegisterManifestResponse{}, err
	}
	return httptransport.RegisterManifestResponse{ManifestHash: manifestHash}, nil
}

func (h Handler) GetManifestHandler(ctx context.Context, tenantID string, manifestHash string) (httptransport.ManifestResponse, error) {
	manifest, err := h.Queries.GetManifest(ctx, tenantID, manifestHash)
	if err != nil {
		return httptransport.ManifestResponse{}, err
	}
	return httptransport.ManifestResponse{
		ManifestHash: manifestHash,
		Manifest:     manifest,
	}, nil
}

// ConstantsHandler describes the group every election runs in, for external
// verifiers.
func (h Handler) ConstantsHandler(_ context.Context) httptransport.ConstantsResponse {
	return httptransport.ConstantsResponse{
		Group:       "edwards25519",
		CurveOrder:  "2^252 + 27742317777372353535851937790883648493",
		Cofactor:    8,
		Description: "exponential ElGamal over the edwards25519 prime-order subgroup",
	}
}

func mapTransition(result commands.TransitionResult, err error) (httptransport.TransitionResponse, error) {
	if err != nil {
		return httptransport.TransitionResponse{}, err
	}
	return httptransport.TransitionResponse{
		ElectionID: result.ElectionID,
		State:      string(result.State),
		Version:    result.Version,
	}, nil
}
