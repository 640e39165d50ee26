package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/share"
)

// GuardianKey is one guardian's key material from a key ceremony. Sequence is
// the guardian's 1-based position used during Lagrange recovery.
type GuardianKey struct {
	GuardianID  string
	Sequence    int
	SecretShare kyber.Scalar
	SharePublic kyber.Point
}

// Ceremony is the outcome of a trusted-dealer key ceremony: a joint public
// key, the polynomial commitment hash published for verifiers, and each
// guardian's share.
type Ceremony struct {
	NumberOfGuardians int
	Quorum            int
	JointPublicKey    kyber.Point
	CommitmentHash    string
	Guardians         []GuardianKey
}

// NewKeyCeremony deals quorum-of-n Shamir shares of a fresh election secret.
// Production deployments run a distributed ceremony between guardian hosts;
// the dealer variant produces identically shaped material for the mediator
// and for tests.
func NewKeyCeremony(guardianIDs []string, quorum int) (*Ceremony, error) {
	n := len(guardianIDs)
	if n < 1 {
		return nil, errors.New("crypto: at least one guardian is required")
	}
	if quorum < 1 || quorum > n {
		return nil, fmt.Errorf("crypto: quorum %d out of range for %d guardians", quorum, n)
	}

	priPoly := share.NewPriPoly(Suite, quorum, nil, Suite.RandomStream())
	pubPoly := priPoly.Commit(nil)

	guardians := make([]GuardianKey, 0, n)
	for i, priShare := range priPoly.Shares(n) {
		guardians = append(guardians, GuardianKey{
			GuardianID:  guardianIDs[i],
			Sequence:    priShare.I + 1,
			SecretShare: priShare.V,
			SharePublic: pubPoly.Eval(priShare.I).V,
		})
	}

	commitmentHash, err := hashCommitments(pubPoly)
	if err != nil {
		return nil, err
	}

	return &Ceremony{
		NumberOfGuardians: n,
		Quorum:            quorum,
		JointPublicKey:    pubPoly.Commit(),
		CommitmentHash:    commitmentHash,
		Guardians:         guardians,
	}, nil
}

func hashCommitments(pubPoly *share.PubPoly) (string, error) {
	hasher := sha256.New()
	_, commits := pubPoly.Info()
	for _, commit := range commits {
		raw, err := commit.MarshalBinary()
		if err != nil {
			return "", fmt.Errorf("marshal commitment: %w", err)
		}
		hasher.Write(raw)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
