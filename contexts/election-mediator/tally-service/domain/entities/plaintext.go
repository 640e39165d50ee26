package entities

// PlaintextSelection is the decrypted total for one selection: the recovered
// count plus the plaintext group element it was recovered from.
type PlaintextSelection struct {
	ObjectID string `json:"object_id"`
	Tally    uint64 `json:"tally"`
	Value    string `json:"value"`
}

type PlaintextContest struct {
	ObjectID   string                        `json:"object_id"`
	Selections map[string]PlaintextSelection `json:"selections"`
}

// AcceptedShare records one verified guardian contribution in the audit
// trail of a decryption.
type AcceptedShare struct {
	GuardianID     string `json:"guardian_id"`
	Sequence       int    `json:"sequence"`
	SharePublicKey string `json:"share_public_key"`
}

// PlaintextTally is the decrypted election result together with the audit
// trail needed for independent verification: results are only useful if a
// verifier can recheck every accepted share.
type PlaintextTally struct {
	ObjectID    string                      `json:"object_id"`
	CastBallots int                         `json:"cast_ballots"`
	Contests    map[string]PlaintextContest `json:"contests"`
	Shares      []AcceptedShare             `json:"shares"`
}
