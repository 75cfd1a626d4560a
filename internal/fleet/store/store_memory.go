// Package store serves the fleet records. The dataset is fixed at startup.
package store

import (
	"context"
	"slices"
	"sync"

	"auditarmor/internal/fleet/models"
	"auditarmor/pkg/platform/sentinel"
)

// InMemoryStore keeps fleet records in memory. Every read returns a copy so
// callers cannot mutate the dataset.
type InMemoryStore struct {
	mu         sync.RWMutex
	ships      []models.Ship
	tasks      []models.Task
	updates    []models.Update
	alerts     []models.Alert
	governance models.Governance
}

// NewSeededStore returns a store loaded with the demo fleet.
func NewSeededStore() *InMemoryStore {
	return &InMemoryStore{
		ships:      seedShips(),
		tasks:      seedTasks(),
		updates:    seedUpdates(),
		alerts:     seedAlerts(),
		governance: seedGovernance(),
	}
}

func (s *InMemoryStore) ListShips(_ context.Context) ([]models.Ship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ships), nil
}

// FindShip returns sentinel.ErrNotFound for an unknown ID.
func (s *InMemoryStore) FindShip(_ context.Context, id string) (*models.Ship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ship := range s.ships {
		if ship.ID == id {
			return &ship, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListTasks(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks), nil
}

func (s *InMemoryStore) ListUpdates(_ context.Context) ([]models.Update, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.updates), nil
}

func (s *InMemoryStore) ListAlerts(_ context.Context) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.alerts), nil
}

func (s *InMemoryStore) Governance(_ context.Context) (models.Governance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.governance, nil
}
