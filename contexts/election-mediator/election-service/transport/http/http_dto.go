package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitElectionRequest struct {
	ElectionID string          `json:"election_id,omitempty"`
	Context    json.RawMessage `json:"context"`
	Manifest   json.RawMessage `json:"manifest,omitempty"`
}

type SubmitElectionResponse struct {
	ElectionID string `json:"election_id"`
}

type ElectionResponse struct {
	ElectionID string          `json:"election_id"`
	State      string          `json:"state"`
	Context    json.RawMessage `json:"context"`
	Manifest   json.RawMessage `json:"manifest"`
	Version    int64           `json:"version"`
}

type ElectionQueryResponse struct {
	Elections []ElectionResponse `json:"elections"`
}

type FindElectionsRequest struct {
	State        string `json:"state,omitempty"`
	ManifestHash string `json:"manifest_hash,omitempty"`
}

type MakeContextRequest struct {
	ManifestHash      string          `json:"manifest_hash,omitempty"`
	Manifest          json.RawMessage `json:"manifest,omitempty"`
	ElGamalPublicKey  string          `json:"elgamal_public_key"`
	CommitmentHash    string          `json:"commitment_hash"`
	NumberOfGuardians int             `json:"number_of_guardians"`
	Quorum            int             `json:"quorum"`
}

type MakeContextResponse struct {
	Context json.RawMessage `json:"context"`
}

type TransitionResponse struct {
	ElectionID string `json:"election_id"`
	State      string `json:"state"`
	Version    int64  `json:"version"`
}

type RegisterManifestRequest struct {
	Manifest json.RawMessage `json:"manifest"`
}

type RegisterManifestResponse struct {
	ManifestHash string `json:"manifest_hash"`
}

type ManifestResponse struct {
	ManifestHash string          `json:"manifest_hash"`
	Manifest     json.RawMessage `json:"manifest"`
}

type ConstantsResponse struct {
	Group       string `json:"group"`
	CurveOrder  string `json:"curve_order"`
	Cofactor    int    `json:"cofactor"`
	Description string `json:"description"`
}
