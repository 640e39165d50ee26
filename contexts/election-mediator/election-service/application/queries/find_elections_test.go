package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"pericles/contexts/election-mediator/election-service/adapters/memory"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
)

func contextWithHash(hash string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"schema_version":1,"number_of_guardians":3,"quorum":2,"elgamal_public_key":"pk","commitment_hash":"ch","manifest_hash":%q}`,
		hash))
}

func seededQueries() ElectionQueries {
	seed := []entities.Election{
		{ElectionID: "e1", TenantID: "tenant-a", State: entities.StateCreated, Context: contextWithHash("h1"), Version: 1},
		{ElectionID: "e2", TenantID: "tenant-a", State: entities.StateOpen, Context: contextWithHash("h1"), Version: 2},
		{ElectionID: "e3", TenantID: "tenant-a", State: entities.StateOpen, Context: contextWithHash("h2"), Version: 1},
		{ElectionID: "e4", TenantID: "tenant-b", State: entities.StateOpen, Context: contextWithHash("h1"), Version: 1},
	}
	store := memory.NewStore(seed)
	return ElectionQueries{Elections: store, Manifests: store}
}

func TestFindElectionsEmptyFilterReturnsTenantScope(t *testing.T) {
	q := seededQueries()
	elections, err := q.FindElections(context.Background(), FindElectionsQuery{TenantID: "tenant-a"})
	if err != nil {
		t.Fatalf("FindElections: %v", err)
	}
	if len(elections) != 3 {
		t.Fatalf("matched %d elections, want 3 in tenant scope", len(elections))
	}
}

func TestFindElectionsFiltersByStateAndHash(t *testing.T) {
	q := seededQueries()

	open, err := q.FindElections(context.Background(), FindElectionsQuery{TenantID: "tenant-a", State: "open"})
	if err != nil {
		t.Fatalf("FindElections(state): %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open matches = %d, want 2", len(open))
	}

	both, err := q.FindElections(context.Background(), FindElectionsQuery{
		TenantID:     "tenant-a",
		State:        "open",
		ManifestHash: "h1",
	})
	if err != nil {
		t.Fatalf("FindElections(state+hash): %v", err)
	}
	if len(both) != 1 || both[0].ElectionID != "e2" {
		t.Fatalf("state+hash matches = %v, want exactly e2", both)
	}
}

func TestFindElectionsPagination(t *testing.T) {
	q := seededQueries()
	page, err := q.FindElections(context.Background(), FindElectionsQuery{
		TenantID: "tenant-a",
		Skip:     1,
		Limit:    1,
	})
	if err != nil {
		t.Fatalf("FindElections: %v", err)
	}
	if len(page) != 1 || page[0].ElectionID != "e2" {
		t.Fatalf("page = %v, want exactly e2", page)
	}
}

func TestFindElectionsRejectsInvalidInput(t *testing.T) {
	q := seededQueries()
	if _, err := q.FindElections(context.Background(), FindElectionsQuery{TenantID: "tenant-a", State: "bogus"}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("invalid state error = %v, want ErrInvalidRequest", err)
	}
	if _, err := q.FindElections(context.Background(), FindElectionsQuery{TenantID: "tenant-a", Skip: -1}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("negative skip error = %v, want ErrInvalidRequest", err)
	}
	if _, err := q.FindElections(context.Background(), FindElectionsQuery{}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("missing tenant error = %v, want ErrInvalidRequest", err)
	}
}
