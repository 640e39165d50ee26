package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	cryptoadapter "pericles/contexts/election-mediator/tally-service/adapters/crypto"
	"pericles/contexts/election-mediator/tally-service/adapters/memory"
	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	"pericles/contexts/election-mediator/tally-service/ports"
	"pericles/internal/platform/crypto"
)

const testManifestJSON = `{
	"election_scope_id": "e1",
	"spec_version": "1.0",
	"contests": [
		{
			"object_id": "c1",
			"ballot_selections": [
				{"object_id": "s1"},
				{"object_id": "s2"}
			]
		}
	]
}`

// electionFixture holds everything a tally test needs: a dealt key ceremony
// and the manifest/context documents built against it.
type electionFixture struct {
	ceremony *crypto.Ceremony
	manifest json.RawMessage
	context  json.RawMessage
}

func newFixture(t *testing.T) electionFixture {
	t.Helper()
	ceremony, err := crypto.NewKeyCeremony([]string{"guardian-1", "guardian-2", "guardian-3"}, 2)
	if err != nil {
		t.Fatalf("NewKeyCeremony: %v", err)
	}
	manifest := json.RawMessage(testManifestJSON)
	manifestHash, err := crypto.HashManifest(manifest)
	if err != nil {
		t.Fatalf("HashManifest: %v", err)
	}
	publicKey, err := crypto.EncodePoint(ceremony.JointPublicKey)
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}
	contextRaw, err := json.Marshal(entities.ElectionContext{
		SchemaVersion:     1,
		NumberOfGuardians: ceremony.NumberOfGuardians,
		Quorum:            ceremony.Quorum,
		ElGamalPublicKey:  publicKey,
		CommitmentHash:    ceremony.CommitmentHash,
		ManifestHash:      manifestHash,
	})
	if err != nil {
		t.Fatalf("marshal context: %v", err)
	}
	return electionFixture{ceremony: ceremony, manifest: manifest, context: contextRaw}
}

func newTallyUseCase() (TallyUseCase, *memory.Store) {
	store := memory.NewStore()
	return TallyUseCase{
		Tallies: store,
		Engine:  cryptoadapter.NewEngine(),
		Clock:   store,
		IDGen:   store,
	}, store
}

// ballot encrypts a vote for s1 (selected) and s2 (not selected) under the
// joint key.
func (f electionFixture) ballot(t *testing.T, objectID, state string, selectS1 bool) entities.SubmittedBallot {
	t.Helper()
	encrypt := func(count uint64) entities.Ciphertext {
		ciphertext := crypto.EncryptCounter(f.ceremony.JointPublicKey, count)
		pad, err := crypto.EncodePoint(ciphertext.Pad)
		if err != nil {
			t.Fatalf("EncodePoint(pad): %v", err)
		}
		data, err := crypto.EncodePoint(ciphertext.Data)
		if err != nil {
			t.Fatalf("EncodePoint(data): %v", err)
		}
		return entities.Ciphertext{Pad: pad, Data: data}
	}
	s1, s2 := uint64(0), uint64(1)
	if selectS1 {
		s1, s2 = 1, 0
	}
	return entities.SubmittedBallot{
		ObjectID: objectID,
		State:    state,
		Contests: []entities.BallotContest{{
			ObjectID: "c1",
			Selections: []entities.BallotSelection{
				{ObjectID: "s1", Ciphertext: encrypt(s1)},
				{ObjectID: "s2", Ciphertext: encrypt(s2)},
			},
		}},
	}
}

func (f electionFixture) guardian(index int) ports.GuardianKeyMaterial {
	guardian := f.ceremony.Guardians[index]
	secret, _ := crypto.EncodeScalar(guardian.SecretShare)
	return ports.GuardianKeyMaterial{
		GuardianID:  guardian.GuardianID,
		Sequence:    guardian.Sequence,
		SecretShare: secret,
	}
}

func TestStartTallyAccumulatesCastBallots(t *testing.T) {
	fixture := newFixture(t)
	uc, store := newTallyUseCase()

	result, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID:   "tenant-a",
		ElectionID: "e1",
		ObjectID:   "t1",
		Ballots: []entities.SubmittedBallot{
			fixture.ballot(t, "b1", entities.BallotStateCast, true),
			fixture.ballot(t, "b2", entities.BallotStateCast, false),
			fixture.ballot(t, "b3", entities.BallotStateSpoiled, true),
		},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	if result.Tally.CastBallots != 2 {
		t.Fatalf("cast ballots = %d, want 2 (spoiled excluded)", result.Tally.CastBallots)
	}
	if result.Tally.Version != 1 {
		t.Fatalf("version = %d, want 1", result.Tally.Version)
	}

	stored, err := store.GetTally(context.Background(), "tenant-a", "t1")
	if err != nil {
		t.Fatalf("GetTally: %v", err)
	}
	if stored.ObjectID != "t1" || len(stored.Contests) != 1 {
		t.Fatalf("stored tally = %+v, want t1 with one contest", stored)
	}
}

func TestStartTallyRequiresBallots(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	_, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrBallotsRequired) {
		t.Fatalf("error = %v, want ErrBallotsRequired", err)
	}
}

func TestStartTallyRejectsContextManifestMismatch(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	otherManifest := json.RawMessage(`{
		"election_scope_id": "other",
		"contests": [{"object_id": "c1", "ballot_selections": [{"object_id": "s1"}]}]
	}`)
	_, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: otherManifest,
		Context:  fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrTallyInconsistent) {
		t.Fatalf("error = %v, want ErrTallyInconsistent", err)
	}
}

func TestAppendTallyExtendsAccumulator(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := entities.DecodeTally(encoded)
	if err != nil {
		t.Fatalf("DecodeTally: %v", err)
	}
	if decoded.Version != 1 {
		t.Fatalf("version after wire roundtrip = %d, want 1", decoded.Version)
	}

	appended, err := uc.AppendTally(context.Background(), AppendTallyCommand{
		TenantID:       "tenant-a",
		Ballots:        []entities.SubmittedBallot{fixture.ballot(t, "b2", entities.BallotStateCast, true)},
		EncryptedTally: encoded,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if err != nil {
		t.Fatalf("AppendTally: %v", err)
	}
	if appended.Tally.CastBallots != 2 {
		t.Fatalf("cast ballots after append = %d, want 2", appended.Tally.CastBallots)
	}
	if appended.Tally.Version != 2 {
		t.Fatalf("version after append = %d, want 2", appended.Tally.Version)
	}
}

func TestAppendTallyRejectsForeignAccumulator(t *testing.T) {
	fixtureA := newFixture(t)
	fixtureB := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixtureA.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixtureA.manifest,
		Context:  fixtureA.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Same manifest bytes would hash identically, so damage the binding by
	// presenting the accumulator against a context for another manifest.
	otherManifest := json.RawMessage(`{
		"election_scope_id": "parallel",
		"contests": [{"object_id": "c1", "ballot_selections": [{"object_id": "s1"}, {"object_id": "s2"}]}]
	}`)
	otherHash, err := crypto.HashManifest(otherManifest)
	if err != nil {
		t.Fatalf("HashManifest: %v", err)
	}
	var otherContext entities.ElectionContext
	if err := json.Unmarshal(fixtureB.context, &otherContext); err != nil {
		t.Fatalf("unmarshal context: %v", err)
	}
	otherContext.ManifestHash = otherHash
	otherContextRaw, err := json.Marshal(otherContext)
	if err != nil {
		t.Fatalf("marshal context: %v", err)
	}

	_, err = uc.AppendTally(context.Background(), AppendTallyCommand{
		TenantID:       "tenant-a",
		Ballots:        []entities.SubmittedBallot{fixtureB.ballot(t, "b2", entities.BallotStateCast, true)},
		EncryptedTally: encoded,
		Manifest:       otherManifest,
		Context:        otherContextRaw,
	})
	if !errors.Is(err, domainerrors.ErrTallyInconsistent) {
		t.Fatalf("error = %v, want ErrTallyInconsistent", err)
	}
}

func TestDecryptFlowRecoversCounts(t *testing.T) {
	fixture := newFixture(t)
	uc, store := newTallyUseCase()

	// Three cast ballots: two select s1, one selects s2.
	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots: []entities.SubmittedBallot{
			fixture.ballot(t, "b1", entities.BallotStateCast, true),
			fixture.ballot(t, "b2", entities.BallotStateCast, true),
			fixture.ballot(t, "b3", entities.BallotStateCast, false),
		},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	shares := make(map[string]entities.DecryptionShare)
	for _, index := range []int{0, 2} {
		guardian := fixture.guardian(index)
		result, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
			TenantID:       "tenant-a",
			Guardian:       guardian,
			EncryptedTally: encoded,
			Manifest:       fixture.manifest,
			Context:        fixture.context,
		})
		if err != nil {
			t.Fatalf("DecryptShare(%s): %v", guardian.GuardianID, err)
		}
		shares[guardian.GuardianID] = result.Share
	}

	decrypted, err := uc.DecryptTally(context.Background(), DecryptTallyCommand{
		TenantID:       "tenant-a",
		EncryptedTally: encoded,
		Shares:         shares,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if err != nil {
		t.Fatalf("DecryptTally: %v", err)
	}

	selections := decrypted.Plaintext.Contests["c1"].Selections
	if got := selections["s1"].Tally; got != 2 {
		t.Fatalf("s1 tally = %d, want 2", got)
	}
	if got := selections["s2"].Tally; got != 1 {
		t.Fatalf("s2 tally = %d, want 1", got)
	}
	if len(decrypted.Plaintext.Shares) != 2 {
		t.Fatalf("audit trail has %d shares, want 2", len(decrypted.Plaintext.Shares))
	}
	if decrypted.Plaintext.Shares[0].Sequence > decrypted.Plaintext.Shares[1].Sequence {
		t.Fatal("audit trail is not ordered by guardian sequence")
	}

	persisted, err := store.GetResult(context.Background(), "tenant-a", "t1")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if persisted.Contests["c1"].Selections["s1"].Tally != 2 {
		t.Fatal("persisted result disagrees with returned result")
	}
}

func TestDecryptTallyRequiresQuorum(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	guardian := fixture.guardian(0)
	share, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
		TenantID:       "tenant-a",
		Guardian:       guardian,
		EncryptedTally: encoded,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if err != nil {
		t.Fatalf("DecryptShare: %v", err)
	}

	_, err = uc.DecryptTally(context.Background(), DecryptTallyCommand{
		TenantID:       "tenant-a",
		EncryptedTally: encoded,
		Shares:         map[string]entities.DecryptionShare{guardian.GuardianID: share.Share},
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientShares) {
		t.Fatalf("error = %v, want ErrInsufficientShares", err)
	}
}

func TestDecryptTallyFailsClosedOnInvalidShare(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	shares := make(map[string]entities.DecryptionShare)
	for _, index := range []int{0, 1} {
		guardian := fixture.guardian(index)
		result, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
			TenantID:       "tenant-a",
			Guardian:       guardian,
			EncryptedTally: encoded,
			Manifest:       fixture.manifest,
			Context:        fixture.context,
		})
		if err != nil {
			t.Fatalf("DecryptShare: %v", err)
		}
		shares[guardian.GuardianID] = result.Share
	}

	// Corrupt guardian-2's partial for one selection; the whole decrypt must
	// abort, not fall back to the remaining shares.
	basePoint, err := crypto.EncodePoint(crypto.Suite.Point().Base())
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}
	tampered := shares["guardian-2"]
	selection := tampered.Contests["c1"].Selections["s1"]
	selection.Partial = basePoint
	tampered.Contests["c1"].Selections["s1"] = selection
	shares["guardian-2"] = tampered

	_, err = uc.DecryptTally(context.Background(), DecryptTallyCommand{
		TenantID:       "tenant-a",
		EncryptedTally: encoded,
		Shares:         shares,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrInvalidShare) {
		t.Fatalf("error = %v, want ErrInvalidShare", err)
	}
	var shareErr *domainerrors.ShareVerificationError
	if !errors.As(err, &shareErr) || shareErr.GuardianID != "guardian-2" {
		t.Fatalf("error does not name the offending guardian: %v", err)
	}
}

func TestDecryptTallyRejectsForgedGuardianKey(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// guardian-2's share is built from a fresh secret instead of the ceremony
	// share. Its proofs are self-consistent with the key it announces, so only
	// the binding of announced keys to the election key can catch it.
	forgedSecret, err := crypto.EncodeScalar(crypto.Suite.Scalar().Pick(crypto.Suite.RandomStream()))
	if err != nil {
		t.Fatalf("EncodeScalar: %v", err)
	}
	guardians := []ports.GuardianKeyMaterial{
		fixture.guardian(0),
		{GuardianID: "guardian-2", Sequence: 2, SecretShare: forgedSecret},
	}
	shares := make(map[string]entities.DecryptionShare)
	for _, guardian := range guardians {
		result, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
			TenantID:       "tenant-a",
			Guardian:       guardian,
			EncryptedTally: encoded,
			Manifest:       fixture.manifest,
			Context:        fixture.context,
		})
		if err != nil {
			t.Fatalf("DecryptShare(%s): %v", guardian.GuardianID, err)
		}
		shares[guardian.GuardianID] = result.Share
	}

	_, err = uc.DecryptTally(context.Background(), DecryptTallyCommand{
		TenantID:       "tenant-a",
		EncryptedTally: encoded,
		Shares:         shares,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrInvalidShare) {
		t.Fatalf("error = %v, want ErrInvalidShare", err)
	}
}

func TestDecryptTallyIsDeterministic(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots: []entities.SubmittedBallot{
			fixture.ballot(t, "b1", entities.BallotStateCast, true),
			fixture.ballot(t, "b2", entities.BallotStateCast, false),
		},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	collected := make([]entities.DecryptionShare, 0, 2)
	ids := make([]string, 0, 2)
	for _, index := range []int{0, 2} {
		guardian := fixture.guardian(index)
		result, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
			TenantID:       "tenant-a",
			Guardian:       guardian,
			EncryptedTally: encoded,
			Manifest:       fixture.manifest,
			Context:        fixture.context,
		})
		if err != nil {
			t.Fatalf("DecryptShare(%s): %v", guardian.GuardianID, err)
		}
		collected = append(collected, result.Share)
		ids = append(ids, guardian.GuardianID)
	}

	decrypt := func(shares map[string]entities.DecryptionShare) []byte {
		result, err := uc.DecryptTally(context.Background(), DecryptTallyCommand{
			TenantID:       "tenant-a",
			EncryptedTally: encoded,
			Shares:         shares,
			Manifest:       fixture.manifest,
			Context:        fixture.context,
		})
		if err != nil {
			t.Fatalf("DecryptTally: %v", err)
		}
		raw, err := json.Marshal(result.Plaintext)
		if err != nil {
			t.Fatalf("marshal plaintext: %v", err)
		}
		return raw
	}

	forward := map[string]entities.DecryptionShare{
		ids[0]: collected[0],
		ids[1]: collected[1],
	}
	reversed := map[string]entities.DecryptionShare{
		ids[1]: collected[1],
		ids[0]: collected[0],
	}

	first := decrypt(forward)
	second := decrypt(forward)
	permuted := decrypt(reversed)
	if !bytes.Equal(first, second) {
		t.Fatal("repeated decrypt with the same share set produced different plaintexts")
	}
	if !bytes.Equal(first, permuted) {
		t.Fatal("decrypt result depends on share map insertion order")
	}
}

func TestDecryptTallyRejectsDuplicateSequence(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	guardian := fixture.guardian(0)
	result, err := uc.DecryptShare(context.Background(), DecryptShareCommand{
		TenantID:       "tenant-a",
		Guardian:       guardian,
		EncryptedTally: encoded,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if err != nil {
		t.Fatalf("DecryptShare: %v", err)
	}

	// The same sequence submitted under two guardian identifiers.
	duplicate := result.Share
	duplicate.GuardianID = "impostor"
	_, err = uc.DecryptTally(context.Background(), DecryptTallyCommand{
		TenantID:       "tenant-a",
		EncryptedTally: encoded,
		Shares: map[string]entities.DecryptionShare{
			guardian.GuardianID: result.Share,
			"impostor":          duplicate,
		},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateGuardian) {
		t.Fatalf("error = %v, want ErrDuplicateGuardian", err)
	}
}

func TestDecryptShareRejectsOutOfRangeSequence(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	started, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		ObjectID: "t1",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	encoded, err := started.Tally.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	guardian := fixture.guardian(0)
	guardian.Sequence = fixture.ceremony.NumberOfGuardians + 1
	_, err = uc.DecryptShare(context.Background(), DecryptShareCommand{
		TenantID:       "tenant-a",
		Guardian:       guardian,
		EncryptedTally: encoded,
		Manifest:       fixture.manifest,
		Context:        fixture.context,
	})
	if !errors.Is(err, domainerrors.ErrInvalidGuardian) {
		t.Fatalf("error = %v, want ErrInvalidGuardian", err)
	}
}

func TestStartTallyGeneratesObjectID(t *testing.T) {
	fixture := newFixture(t)
	uc, _ := newTallyUseCase()

	first, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b1", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	second, err := uc.StartTally(context.Background(), StartTallyCommand{
		TenantID: "tenant-a",
		Ballots:  []entities.SubmittedBallot{fixture.ballot(t, "b2", entities.BallotStateCast, true)},
		Manifest: fixture.manifest,
		Context:  fixture.context,
	})
	if err != nil {
		t.Fatalf("StartTally: %v", err)
	}
	if first.Tally.ObjectID == "" || first.Tally.ObjectID == second.Tally.ObjectID {
		t.Fatalf("generated object ids not distinct: %q vs %q", first.Tally.ObjectID, second.Tally.ObjectID)
	}
}
