// Package tallyservice implements the election mediator's tally module inside
// the election-mediator context.
//
// The module translates wire-level tally requests into the internal
// accumulator representation, folds submitted ballots into ciphertext tallies,
// produces per-guardian partial decryption shares, and coordinates threshold
// decryption once a quorum of proof-valid shares is available. The
// cryptographic primitives themselves live behind the engine port.
package tallyservice
