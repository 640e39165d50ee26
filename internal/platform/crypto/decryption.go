package crypto

import (
	"fmt"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/proof/dleq"
	"go.dedis.ch/kyber/v3/share"
)

// PartialDecryption is one guardian's contribution toward decrypting a single
// ciphertext: the partial M = s_i * Pad and a Chaum-Pedersen proof that it was
// computed with the same share the guardian committed to during the ceremony.
type PartialDecryption struct {
	Partial kyber.Point
	Proof   *dleq.Proof
}

// ComputePartial produces a guardian's partial decryption of a ciphertext
// along with its correctness proof.
func ComputePartial(secretShare kyber.Scalar, ciphertext Ciphertext) (PartialDecryption, error) {
	proof, _, partial, err := dleq.NewDLEQProof(Suite, Suite.Point().Base(), ciphertext.Pad, secretShare)
	if err != nil {
		return PartialDecryption{}, fmt.Errorf("dleq proof: %w", err)
	}
	return PartialDecryption{Partial: partial, Proof: proof}, nil
}

// VerifyPartial checks a partial decryption against the guardian's announced
// share public key. A valid proof shows log_G(sharePublic) == log_Pad(partial),
// i.e. the partial really is the committed share applied to this ciphertext.
func VerifyPartial(sharePublic kyber.Point, ciphertext Ciphertext, partial PartialDecryption) error {
	if partial.Proof == nil {
		return fmt.Errorf("dleq verify: missing proof")
	}
	if err := partial.Proof.Verify(Suite, Suite.Point().Base(), ciphertext.Pad, sharePublic, partial.Partial); err != nil {
		return fmt.Errorf("dleq verify: %w", err)
	}
	return nil
}

// CombinePartials interpolates quorum-many partial decryptions into the shared
// secret s*Pad and strips it from the ciphertext, returning the plaintext
// point m*G. Sequences are the guardians' 1-based ceremony positions; the
// result is independent of the order partials are supplied in.
func CombinePartials(
	ciphertext Ciphertext,
	partials map[int]kyber.Point,
	quorum int,
	numberOfGuardians int,
) (kyber.Point, error) {
	shares := make([]*share.PubShare, numberOfGuardians)
	for sequence, partial := range partials {
		if sequence < 1 || sequence > numberOfGuardians {
			return nil, fmt.Errorf("guardian sequence %d out of range", sequence)
		}
		shares[sequence-1] = &share.PubShare{I: sequence - 1, V: partial}
	}
	sharedSecret, err := share.RecoverCommit(Suite, shares, quorum, numberOfGuardians)
	if err != nil {
		return nil, fmt.Errorf("recover shared secret: %w", err)
	}
	return ciphertext.Decrypt(sharedSecret), nil
}

// RecoverJointKey interpolates guardians' announced share public keys back to
// the joint election key the ceremony committed to. Keys are indexed by the
// guardians' 1-based ceremony positions.
func RecoverJointKey(sharePublics map[int]kyber.Point, quorum int, numberOfGuardians int) (kyber.Point, error) {
	shares := make([]*share.PubShare, numberOfGuardians)
	for sequence, public := range sharePublics {
		if sequence < 1 || sequence > numberOfGuardians {
			return nil, fmt.Errorf("guardian sequence %d out of range", sequence)
		}
		shares[sequence-1] = &share.PubShare{I: sequence - 1, V: public}
	}
	joint, err := share.RecoverCommit(Suite, shares, quorum, numberOfGuardians)
	if err != nil {
		return nil, fmt.Errorf("recover joint key: %w", err)
	}
	return joint, nil
}

// WireProof is the serialized form of a Chaum-Pedersen proof.
type WireProof struct {
	Challenge   string `json:"challenge"`
	Response    string `json:"response"`
	CommitmentG string `json:"commitment_g"`
	CommitmentH string `json:"commitment_h"`
}

// EncodeProof serializes a Chaum-Pedersen proof for wire transport.
func EncodeProof(proof *dleq.Proof) (WireProof, error) {
	if proof == nil {
		return WireProof{}, fmt.Errorf("encode proof: nil proof")
	}
	challenge, err := EncodeScalar(proof.C)
	if err != nil {
		return WireProof{}, err
	}
	response, err := EncodeScalar(proof.R)
	if err != nil {
		return WireProof{}, err
	}
	commitmentG, err := EncodePoint(proof.VG)
	if err != nil {
		return WireProof{}, err
	}
	commitmentH, err := EncodePoint(proof.VH)
	if err != nil {
		return WireProof{}, err
	}
	return WireProof{
		Challenge:   challenge,
		Response:    response,
		CommitmentG: commitmentG,
		CommitmentH: commitmentH,
	}, nil
}

// DecodeProof rebuilds a proof from its wire form.
func DecodeProof(wire WireProof) (*dleq.Proof, error) {
	c, err := DecodeScalar(wire.Challenge)
	if err != nil {
		return nil, err
	}
	r, err := DecodeScalar(wire.Response)
	if err != nil {
		return nil, err
	}
	vg, err := DecodePoint(wire.CommitmentG)
	if err != nil {
		return nil, err
	}
	vh, err := DecodePoint(wire.CommitmentH)
	if err != nil {
		return nil, err
	}
	return &dleq.Proof{C: c, R: r, VG: vg, VH: vh}, nil
}
