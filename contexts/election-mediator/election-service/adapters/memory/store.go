package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type electionKey struct {
	tenantID   string
	electionID string
}

type manifestKey struct {
	tenantID     string
	manifestHash string
}

// Store is the in-memory adapter backing tests and local runs. It implements
// every election-service port, including version-checked state updates.
type Store struct {
	mu sync.RWMutex

	elections map[electionKey]entities.Election
	manifests map[manifestKey]json.RawMessage
	outbox    map[string]outboxRecord
}

func NewStore(seed []entities.Election) *Store {
	elections := make(map[electionKey]entities.Election, len(seed))
	for _, election := range seed {
		elections[electionKey{election.TenantID, election.ElectionID}] = election
	}
	return &Store{
		elections: elections,
		manifests: make(map[manifestKey]json.RawMessage),
		outbox:    make(map[string]outboxRecord),
	}
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[electionKey{election.TenantID, election.ElectionID}] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, tenantID string, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionKey{strings.TrimSpace(tenantID), strings.TrimSpace(electionID)}]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) UpdateElectionState(
	_ context.Context,
	tenantID string,
	electionID string,
	state entities.ElectionState,
	expectedVersion int64,
) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := electionKey{strings.TrimSpace(tenantID), strings.TrimSpace(electionID)}
	election, ok := s.elections[key]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	if election.Version != expectedVersion {
		return entities.Election{}, domainerrors.ErrVersionConflict
	}
	election.State = state
	election.Version++
	election.UpdatedAt = time.Now().UTC()
	s.elections[key] = election
	return election, nil
}

func (s *Store) FindElections(
	_ context.Context,
	tenantID string,
	filter ports.ElectionFilter,
	skip int,
	limit int,
) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Election, 0)
	for key, election := range s.elections {
		if key.tenantID != strings.TrimSpace(tenantID) {
			continue
		}
		if filter.State != "" && election.State != filter.State {
			continue
		}
		if filter.ManifestHash != "" {
			electionContext, err := entities.DecodeContext(election.Context)
			if err != nil || electionContext.ManifestHash != filter.ManifestHash {
				continue
			}
		}
		matched = append(matched, election)
	}
	// map iteration is unordered; sort for a stable scan order in tests
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ElectionID < matched[j].ElectionID
	})

	if skip >= len(matched) {
		return []entities.Election{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) GetManifest(_ context.Context, tenantID string, manifestHash string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifest, ok := s.manifests[manifestKey{strings.TrimSpace(tenantID), strings.TrimSpace(manifestHash)}]
	if !ok {
		return nil, domainerrors.ErrManifestNotFound
	}
	return manifest, nil
}

func (s *Store) PutManifest(_ context.Context, tenantID string, manifestHash string, manifest json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifestKey{strings.TrimSpace(tenantID), strings.TrimSpace(manifestHash)}] = manifest
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if !record.published {
			pending = append(pending, record.message)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}

// PendingOutboxCount reports unpublished rows, used by worker tests.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.outbox {
		if !record.published {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
