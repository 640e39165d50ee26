package commands

import (
	"encoding/json"

	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/internal/platform/crypto"
)

// translatedRequest is the internal representation shared by every tally
// operation after wire payloads pass the boundary checks: decoded manifest,
// decoded context, and the manifest's own crypto hash.
type translatedRequest struct {
	manifest     entities.Manifest
	context      entities.ElectionContext
	manifestHash string
}

// translate converts the wire-level manifest and context into internal types.
// Malformed documents surface as ErrMalformedPayload; a context whose declared
// manifest hash disagrees with the supplied manifest surfaces as
// ErrTallyInconsistent before any crypto runs.
func translate(rawManifest, rawContext json.RawMessage) (translatedRequest, error) {
	manifest, err := entities.DecodeManifest(rawManifest)
	if err != nil {
		return translatedRequest{}, domainerrors.ErrMalformedPayload
	}
	electionContext, err := entities.DecodeElectionContext(rawContext)
	if err != nil {
		return translatedRequest{}, domainerrors.ErrMalformedPayload
	}
	manifestHash, err := crypto.HashManifest(rawManifest)
	if err != nil {
		return translatedRequest{}, domainerrors.ErrMalformedPayload
	}
	if electionContext.ManifestHash != manifestHash {
		return translatedRequest{}, domainerrors.ErrTallyInconsistent
	}
	return translatedRequest{
		manifest:     manifest,
		context:      electionContext,
		manifestHash: manifestHash,
	}, nil
}

// translateTally decodes an encrypted-tally envelope and checks it belongs to
// the translated manifest/context pair.
func translateTally(raw json.RawMessage, request translatedRequest) (entities.CiphertextTally, error) {
	tally, err := entities.DecodeTally(raw)
	if err != nil {
		return entities.CiphertextTally{}, domainerrors.ErrMalformedPayload
	}
	if tally.ManifestHash != request.manifestHash {
		return entities.CiphertextTally{}, domainerrors.ErrTallyInconsistent
	}
	return tally, nil
}
