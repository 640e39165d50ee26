package ports

import (
	"context"
	"time"

	"pericles/contexts/election-mediator/tally-service/domain/entities"
)

// GuardianKeyMaterial is the key material one guardian submits when producing
// a partial decryption share. The secret share never leaves the request scope.
type GuardianKeyMaterial struct {
	GuardianID     string
	Sequence       int
	SecretShare    string
	SharePublicKey string
}

// TallyEngine is the contract to the cryptographic primitives: homomorphic
// accumulation, partial decryption, proof verification, and quorum
// combination. All methods are pure computations over their inputs.
type TallyEngine interface {
	EmptyTally(objectID string, manifestHash string, manifest entities.Manifest) entities.CiphertextTally
	Accumulate(
		tally entities.CiphertextTally,
		manifest entities.Manifest,
		ballots []entities.SubmittedBallot,
	) (entities.CiphertextTally, error)
	ComputeShare(
		guardian GuardianKeyMaterial,
		tally entities.CiphertextTally,
	) (entities.DecryptionShare, error)
	VerifyShare(tally entities.CiphertextTally, share entities.DecryptionShare) error
	CombineShares(
		electionContext entities.ElectionContext,
		tally entities.CiphertextTally,
		shares []entities.DecryptionShare,
	) (entities.PlaintextTally, error)
}

// TallyRepository owns persisted tally accumulators and decryption results,
// scoped per tenant.
type TallyRepository interface {
	SaveTally(ctx context.Context, tally entities.CiphertextTally) error
	GetTally(ctx context.Context, tenantID string, tallyID string) (entities.CiphertextTally, error)
	SaveResult(ctx context.Context, tenantID string, result entities.PlaintextTally) error
	GetResult(ctx context.Context, tenantID string, tallyID string) (entities.PlaintextTally, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
