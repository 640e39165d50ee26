package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
)

type tallyKey struct {
	tenantID string
	tallyID  string
}

// Store is the in-memory tally repository used by tests and local bootstrap.
type Store struct {
	mu      sync.RWMutex
	tallies map[tallyKey]entities.CiphertextTally
	results map[tallyKey]entities.PlaintextTally
}

func NewStore() *Store {
	return &Store{
		tallies: make(map[tallyKey]entities.CiphertextTally),
		results: make(map[tallyKey]entities.PlaintextTally),
	}
}

func (s *Store) SaveTally(_ context.Context, tally entities.CiphertextTally) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[tallyKey{tenantID: tally.TenantID, tallyID: tally.ObjectID}] = tally
	return nil
}

func (s *Store) GetTally(_ context.Context, tenantID, tallyID string) (entities.CiphertextTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tally, ok := s.tallies[tallyKey{tenantID: tenantID, tallyID: tallyID}]
	if !ok {
		return entities.CiphertextTally{}, domainerrors.ErrTallyNotFound
	}
	return tally, nil
}

func (s *Store) SaveResult(_ context.Context, tenantID string, result entities.PlaintextTally) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[tallyKey{tenantID: tenantID, tallyID: result.ObjectID}] = result
	return nil
}

func (s *Store) GetResult(_ context.Context, tenantID, tallyID string) (entities.PlaintextTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[tallyKey{tenantID: tenantID, tallyID: tallyID}]
	if !ok {
		return entities.PlaintextTally{}, domainerrors.ErrTallyNotFound
	}
	return result, nil
}

// Now satisfies the clock port.
func (s *Store) Now() time.Time { return time.Now().UTC() }

// NewID satisfies the id generator port.
func (s *Store) NewID(_ context.Context) (string, error) { return uuid.NewString(), nil }
