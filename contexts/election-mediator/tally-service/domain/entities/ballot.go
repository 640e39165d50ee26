package entities

// Ballot states mirror the submission box: only cast ballots count toward the
// tally, spoiled ballots are challenge material and stay out of accumulation.
const (
	BallotStateCast    = "cast"
	BallotStateSpoiled = "spoiled"
)

// SubmittedBallot is an encrypted ballot as accepted by the ballot box.
type SubmittedBallot struct {
	ObjectID string          `json:"object_id"`
	State    string          `json:"state"`
	Contests []BallotContest `json:"contests"`
}

type BallotContest struct {
	ObjectID   string            `json:"object_id"`
	Selections []BallotSelection `json:"ballot_selections"`
}

type BallotSelection struct {
	ObjectID   string     `json:"object_id"`
	Ciphertext Ciphertext `json:"ciphertext"`
}
