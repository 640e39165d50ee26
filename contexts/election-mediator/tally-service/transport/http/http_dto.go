package http

import "encoding/json"

// ErrorResponse is the uniform error body for the tally endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BallotRequest mirrors a submitted ballot on the wire. Contests and
// selections carry the same identifiers the manifest declares.
type BallotRequest struct {
	ObjectID string                 `json:"object_id"`
	State    string                 `json:"state"`
	Contests []BallotContestRequest `json:"contests"`
}

type BallotContestRequest struct {
	ObjectID   string                   `json:"object_id"`
	Selections []BallotSelectionRequest `json:"ballot_selections"`
}

type BallotSelectionRequest struct {
	ObjectID   string            `json:"object_id"`
	Ciphertext CiphertextRequest `json:"ciphertext"`
}

type CiphertextRequest struct {
	Pad  string `json:"pad"`
	Data string `json:"data"`
}

// StartTallyRequest opens a tally accumulator from the first ballot batch.
type StartTallyRequest struct {
	ObjectID   string          `json:"object_id,omitempty"`
	ElectionID string          `json:"election_id,omitempty"`
	Ballots    []BallotRequest `json:"ballots"`
	Manifest   json.RawMessage `json:"manifest"`
	Context    json.RawMessage `json:"context"`
}

// AppendTallyRequest folds more ballots into an existing accumulator.
type AppendTallyRequest struct {
	Ballots        []BallotRequest `json:"ballots"`
	EncryptedTally json.RawMessage `json:"encrypted_tally"`
	Manifest       json.RawMessage `json:"manifest"`
	Context        json.RawMessage `json:"context"`
}

// TallyResponse returns the accumulator in its versioned envelope.
type TallyResponse struct {
	TallyID        string          `json:"tally_id"`
	CastBallots    int             `json:"cast_ballots"`
	EncryptedTally json.RawMessage `json:"encrypted_tally"`
}

// GuardianRequest is the key material one guardian submits for a partial
// decryption.
type GuardianRequest struct {
	GuardianID     string `json:"guardian_id"`
	Sequence       int    `json:"sequence_order"`
	SecretShare    string `json:"secret_share"`
	SharePublicKey string `json:"share_public_key,omitempty"`
}

// DecryptShareRequest asks for one guardian's partial decryption of a tally.
type DecryptShareRequest struct {
	Guardian       GuardianRequest `json:"guardian"`
	EncryptedTally json.RawMessage `json:"encrypted_tally"`
	Manifest       json.RawMessage `json:"manifest"`
	Context        json.RawMessage `json:"context"`
}

// DecryptShareResponse returns the share in its versioned envelope.
type DecryptShareResponse struct {
	Share json.RawMessage `json:"share"`
}

// DecryptTallyRequest combines collected shares into the plaintext result.
// Shares map guardian identifier to that guardian's versioned share envelope.
type DecryptTallyRequest struct {
	Shares         map[string]json.RawMessage `json:"shares"`
	EncryptedTally json.RawMessage            `json:"encrypted_tally"`
	Manifest       json.RawMessage            `json:"manifest"`
	Context        json.RawMessage            `json:"context"`
}

// PlaintextSelectionResponse is one decrypted selection total.
type PlaintextSelectionResponse struct {
	ObjectID string `json:"object_id"`
	Tally    uint64 `json:"tally"`
	Value    string `json:"value"`
}

type PlaintextContestResponse struct {
	ObjectID   string                                `json:"object_id"`
	Selections map[string]PlaintextSelectionResponse `json:"selections"`
}

// AcceptedShareResponse names one guardian whose share went into the result.
type AcceptedShareResponse struct {
	GuardianID     string `json:"guardian_id"`
	Sequence       int    `json:"sequence_order"`
	SharePublicKey string `json:"share_public_key"`
}

// DecryptTallyResponse is the plaintext result plus its audit trail.
type DecryptTallyResponse struct {
	TallyID     string                              `json:"tally_id"`
	CastBallots int                                 `json:"cast_ballots"`
	Contests    map[string]PlaintextContestResponse `json:"contests"`
	Shares      []AcceptedShareResponse             `json:"shares"`
}
