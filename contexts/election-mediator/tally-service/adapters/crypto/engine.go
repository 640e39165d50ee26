package cryptoadapter

import (
	"fmt"
	"sort"

	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
	"pericles/internal/platform/crypto"

	"go.dedis.ch/kyber/v3"
)

// Engine adapts the platform cryptography to the tally-service engine port.
type Engine struct{}

func NewEngine() Engine { return Engine{} }

// EmptyTally builds a fresh accumulator shaped by the manifest's contest and
// selection tree, every total seeded with the additive identity.
func (Engine) EmptyTally(objectID string, manifestHash string, manifest entities.Manifest) entities.CiphertextTally {
	zero := encodeCiphertext(crypto.ZeroCiphertext())
	contests := make(map[string]entities.ContestTally, len(manifest.Contests))
	for _, contest := range manifest.Contests {
		selections := make(map[string]entities.SelectionTally, len(contest.Selections))
		for _, selection := range contest.Selections {
			selections[selection.ObjectID] = entities.SelectionTally{
				ObjectID:   selection.ObjectID,
				Ciphertext: zero,
			}
		}
		contests[contest.ObjectID] = entities.ContestTally{
			ObjectID:   contest.ObjectID,
			Selections: selections,
		}
	}
	return entities.CiphertextTally{
		ObjectID:     objectID,
		ManifestHash: manifestHash,
		Contests:     contests,
	}
}

// Accumulate folds cast ballots into the tally. Spoiled ballots are skipped;
// ballots referencing selections outside the manifest tree are rejected.
func (Engine) Accumulate(
	tally entities.CiphertextTally,
	manifest entities.Manifest,
	ballots []entities.SubmittedBallot,
) (entities.CiphertextTally, error) {
	for _, ballot := range ballots {
		if ballot.State == entities.BallotStateSpoiled {
			continue
		}
		if ballot.State != entities.BallotStateCast {
			return entities.CiphertextTally{}, fmt.Errorf("ballot %s has unknown state %q", ballot.ObjectID, ballot.State)
		}
		for _, contest := range ballot.Contests {
			contestTally, ok := tally.Contests[contest.ObjectID]
			if !ok {
				return entities.CiphertextTally{}, fmt.Errorf("ballot %s references unknown contest %s", ballot.ObjectID, contest.ObjectID)
			}
			for _, selection := range contest.Selections {
				selectionTally, ok := contestTally.Selections[selection.ObjectID]
				if !ok {
					return entities.CiphertextTally{}, fmt.Errorf("ballot %s references unknown selection %s/%s",
						ballot.ObjectID, contest.ObjectID, selection.ObjectID)
				}
				total, err := decodeCiphertext(selectionTally.Ciphertext)
				if err != nil {
					return entities.CiphertextTally{}, err
				}
				vote, err := decodeCiphertext(selection.Ciphertext)
				if err != nil {
					return entities.CiphertextTally{}, err
				}
				selectionTally.Ciphertext = encodeCiphertext(total.Add(vote))
				contestTally.Selections[selection.ObjectID] = selectionTally
			}
		}
		tally.CastBallots++
	}
	return tally, nil
}

// ComputeShare produces one guardian's partial decryption of every selection
// total, each carrying a Chaum-Pedersen proof bound to the guardian's share.
func (Engine) ComputeShare(
	guardian ports.GuardianKeyMaterial,
	tally entities.CiphertextTally,
) (entities.DecryptionShare, error) {
	secret, err := crypto.DecodeScalar(guardian.SecretShare)
	if err != nil {
		return entities.DecryptionShare{}, fmt.Errorf("guardian secret share: %w", err)
	}
	sharePublic := crypto.Suite.Point().Mul(secret, nil)
	encodedPublic, err := crypto.EncodePoint(sharePublic)
	if err != nil {
		return entities.DecryptionShare{}, err
	}

	contests := make(map[string]entities.ContestShare, len(tally.Contests))
	for contestID, contestTally := range tally.Contests {
		selections := make(map[string]entities.SelectionShare, len(contestTally.Selections))
		for selectionID, selectionTally := range contestTally.Selections {
			ciphertext, err := decodeCiphertext(selectionTally.Ciphertext)
			if err != nil {
				return entities.DecryptionShare{}, err
			}
			partial, err := crypto.ComputePartial(secret, ciphertext)
			if err != nil {
				return entities.DecryptionShare{}, err
			}
			encodedPartial, err := crypto.EncodePoint(partial.Partial)
			if err != nil {
				return entities.DecryptionShare{}, err
			}
			wireProof, err := crypto.EncodeProof(partial.Proof)
			if err != nil {
				return entities.DecryptionShare{}, err
			}
			selections[selectionID] = entities.SelectionShare{
				ObjectID: selectionID,
				Partial:  encodedPartial,
				Proof: entities.ShareProof{
					Challenge:   wireProof.Challenge,
					Response:    wireProof.Response,
					CommitmentG: wireProof.CommitmentG,
					CommitmentH: wireProof.CommitmentH,
				},
			}
		}
		contests[contestID] = entities.ContestShare{
			ObjectID:   contestID,
			Selections: selections,
		}
	}
	return entities.DecryptionShare{
		GuardianID:     guardian.GuardianID,
		Sequence:       guardian.Sequence,
		SharePublicKey: encodedPublic,
		TallyID:        tally.ObjectID,
		Contests:       contests,
	}, nil
}

// VerifyShare checks every selection partial against the guardian's announced
// share public key. The first failed proof aborts verification.
func (Engine) VerifyShare(tally entities.CiphertextTally, share entities.DecryptionShare) error {
	sharePublic, err := crypto.DecodePoint(share.SharePublicKey)
	if err != nil {
		return fmt.Errorf("share public key: %w", err)
	}
	for contestID, contestTally := range tally.Contests {
		contestShare, ok := share.Contests[contestID]
		if !ok {
			return fmt.Errorf("share is missing contest %s", contestID)
		}
		for selectionID, selectionTally := range contestTally.Selections {
			selectionShare, ok := contestShare.Selections[selectionID]
			if !ok {
				return fmt.Errorf("share is missing selection %s/%s", contestID, selectionID)
			}
			ciphertext, err := decodeCiphertext(selectionTally.Ciphertext)
			if err != nil {
				return err
			}
			partialPoint, err := crypto.DecodePoint(selectionShare.Partial)
			if err != nil {
				return fmt.Errorf("selection %s/%s partial: %w", contestID, selectionID, err)
			}
			proof, err := crypto.DecodeProof(crypto.WireProof{
				Challenge:   selectionShare.Proof.Challenge,
				Response:    selectionShare.Proof.Response,
				CommitmentG: selectionShare.Proof.CommitmentG,
				CommitmentH: selectionShare.Proof.CommitmentH,
			})
			if err != nil {
				return fmt.Errorf("selection %s/%s proof: %w", contestID, selectionID, err)
			}
			partial := crypto.PartialDecryption{Partial: partialPoint, Proof: proof}
			if err := crypto.VerifyPartial(sharePublic, ciphertext, partial); err != nil {
				return fmt.Errorf("selection %s/%s: %w", contestID, selectionID, err)
			}
		}
	}
	return nil
}

// CombineShares interpolates the verified shares into plaintext totals. The
// result only depends on the set of shares, not their order: combination
// iterates the tally tree and addresses partials by guardian sequence.
func (Engine) CombineShares(
	electionContext entities.ElectionContext,
	tally entities.CiphertextTally,
	shares []entities.DecryptionShare,
) (entities.PlaintextTally, error) {
	if err := verifyAnnouncedKeys(electionContext, shares); err != nil {
		return entities.PlaintextTally{}, err
	}
	maxCount := uint64(tally.CastBallots)

	contests := make(map[string]entities.PlaintextContest, len(tally.Contests))
	for contestID, contestTally := range tally.Contests {
		selections := make(map[string]entities.PlaintextSelection, len(contestTally.Selections))
		for selectionID, selectionTally := range contestTally.Selections {
			ciphertext, err := decodeCiphertext(selectionTally.Ciphertext)
			if err != nil {
				return entities.PlaintextTally{}, err
			}
			partials := make(map[int]kyber.Point, len(shares))
			for _, share := range shares {
				selectionShare := share.Contests[contestID].Selections[selectionID]
				point, err := crypto.DecodePoint(selectionShare.Partial)
				if err != nil {
					return entities.PlaintextTally{}, fmt.Errorf("guardian %s partial %s/%s: %w",
						share.GuardianID, contestID, selectionID, err)
				}
				partials[share.Sequence] = point
			}
			plaintext, err := crypto.CombinePartials(ciphertext, partials,
				electionContext.Quorum, electionContext.NumberOfGuardians)
			if err != nil {
				return entities.PlaintextTally{}, err
			}
			count, err := crypto.RecoverCount(plaintext, maxCount)
			if err != nil {
				return entities.PlaintextTally{}, err
			}
			value, err := crypto.EncodePoint(plaintext)
			if err != nil {
				return entities.PlaintextTally{}, err
			}
			selections[selectionID] = entities.PlaintextSelection{
				ObjectID: selectionID,
				Tally:    count,
				Value:    value,
			}
		}
		contests[contestID] = entities.PlaintextContest{
			ObjectID:   contestID,
			Selections: selections,
		}
	}

	audit := make([]entities.AcceptedShare, 0, len(shares))
	for _, share := range shares {
		audit = append(audit, entities.AcceptedShare{
			GuardianID:     share.GuardianID,
			Sequence:       share.Sequence,
			SharePublicKey: share.SharePublicKey,
		})
	}
	sort.Slice(audit, func(i, j int) bool { return audit[i].Sequence < audit[j].Sequence })

	return entities.PlaintextTally{
		ObjectID:    tally.ObjectID,
		CastBallots: tally.CastBallots,
		Contests:    contests,
		Shares:      audit,
	}, nil
}

// verifyAnnouncedKeys binds the shares' announced public keys to the ceremony
// the context advertises: interpolating them must reproduce the election joint
// key. A share's DLEQ proofs only show internal consistency with whatever key
// it announces, so this is the check that anchors the share set to this
// election.
func verifyAnnouncedKeys(electionContext entities.ElectionContext, shares []entities.DecryptionShare) error {
	electionKey, err := crypto.DecodePoint(electionContext.ElGamalPublicKey)
	if err != nil {
		return fmt.Errorf("election public key: %w", err)
	}
	announced := make(map[int]kyber.Point, len(shares))
	for _, share := range shares {
		point, err := crypto.DecodePoint(share.SharePublicKey)
		if err != nil {
			return fmt.Errorf("guardian %s share public key: %w", share.GuardianID, err)
		}
		announced[share.Sequence] = point
	}
	recovered, err := crypto.RecoverJointKey(announced, electionContext.Quorum, electionContext.NumberOfGuardians)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrInvalidShare, err)
	}
	if !recovered.Equal(electionKey) {
		return fmt.Errorf("%w: announced guardian keys do not reproduce the election public key", domainerrors.ErrInvalidShare)
	}
	return nil
}

func encodeCiphertext(ciphertext crypto.Ciphertext) entities.Ciphertext {
	pad, _ := crypto.EncodePoint(ciphertext.Pad)
	data, _ := crypto.EncodePoint(ciphertext.Data)
	return entities.Ciphertext{Pad: pad, Data: data}
}

func decodeCiphertext(wire entities.Ciphertext) (crypto.Ciphertext, error) {
	pad, err := crypto.DecodePoint(wire.Pad)
	if err != nil {
		return crypto.Ciphertext{}, fmt.Errorf("ciphertext pad: %w", err)
	}
	data, err := crypto.DecodePoint(wire.Data)
	if err != nil {
		return crypto.Ciphertext{}, fmt.Errorf("ciphertext data: %w", err)
	}
	return crypto.Ciphertext{Pad: pad, Data: data}, nil
}
