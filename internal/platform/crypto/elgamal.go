// Package crypto provides the election cryptography primitives used by the
// election-mediator modules: exponential ElGamal over edwards25519, guardian
// key ceremonies, partial decryption shares with Chaum-Pedersen (DLEQ) proofs,
// and quorum recovery through Lagrange interpolation.
//
// The orchestration layers treat this package the way they would an external
// SDK: all operations are pure, synchronous computations over their inputs.
package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

// Suite is the cyclic group every Pericles election operates in.
var Suite = edwards25519.NewBlakeSHA256Ed25519()

// ErrCountNotRecovered is returned when a decrypted tally point does not map
// back to a counter within the configured search bound.
var ErrCountNotRecovered = errors.New("crypto: plaintext count exceeds recovery bound")

// Ciphertext is an exponential ElGamal ciphertext (Pad, Data) where
// Pad = r*G and Data = r*P + m*G for message counter m, public key P.
// Ciphertexts of counters add homomorphically component-wise.
type Ciphertext struct {
	Pad  kyber.Point
	Data kyber.Point
}

// ZeroCiphertext is the additive identity, used to seed tally accumulators.
func ZeroCiphertext() Ciphertext {
	return Ciphertext{
		Pad:  Suite.Point().Null(),
		Data: Suite.Point().Null(),
	}
}

// EncryptCounter encrypts a small non-negative counter under the joint public
// key. Counters are encoded in the exponent so that ciphertext addition adds
// the underlying counts.
func EncryptCounter(publicKey kyber.Point, count uint64) Ciphertext {
	message := Suite.Point().Mul(Suite.Scalar().SetInt64(int64(count)), nil)
	nonce := Suite.Scalar().Pick(Suite.RandomStream())
	pad := Suite.Point().Mul(nonce, nil)
	blind := Suite.Point().Mul(nonce, publicKey)
	return Ciphertext{
		Pad:  pad,
		Data: Suite.Point().Add(blind, message),
	}
}

// Add returns the homomorphic sum of two ciphertexts.
func (c Ciphertext) Add(other Ciphertext) Ciphertext {
	return Ciphertext{
		Pad:  Suite.Point().Add(c.Pad, other.Pad),
		Data: Suite.Point().Add(c.Data, other.Data),
	}
}

// Decrypt removes the shared secret recovered from a quorum of guardians and
// returns the plaintext point m*G.
func (c Ciphertext) Decrypt(sharedSecret kyber.Point) kyber.Point {
	return Suite.Point().Sub(c.Data, sharedSecret)
}

// RecoverCount maps a plaintext point m*G back to the counter m by bounded
// exhaustive search. Tallies count ballots, so bounds stay small.
func RecoverCount(plaintext kyber.Point, maxCount uint64) (uint64, error) {
	accumulator := Suite.Point().Null()
	base := Suite.Point().Base()
	for count := uint64(0); count <= maxCount; count++ {
		if accumulator.Equal(plaintext) {
			return count, nil
		}
		accumulator = Suite.Point().Add(accumulator, base)
	}
	return 0, ErrCountNotRecovered
}

// EncodePoint serializes a group element for wire and storage use.
func EncodePoint(point kyber.Point) (string, error) {
	raw, err := point.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("marshal point: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePoint deserializes a group element produced by EncodePoint.
func DecodePoint(encoded string) (kyber.Point, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode point: %w", err)
	}
	point := Suite.Point()
	if err := point.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("unmarshal point: %w", err)
	}
	return point, nil
}

// EncodeScalar serializes a field element.
func EncodeScalar(scalar kyber.Scalar) (string, error) {
	raw, err := scalar.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("marshal scalar: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeScalar deserializes a field element produced by EncodeScalar.
func DecodeScalar(encoded string) (kyber.Scalar, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode scalar: %w", err)
	}
	scalar := Suite.Scalar()
	if err := scalar.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("unmarshal scalar: %w", err)
	}
	return scalar, nil
}
