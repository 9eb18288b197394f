package storage

import (
	"context"
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// MemoryStore es el doble de test en memoria de BudgetLedger y StateStore.
// Misma semántica que FileStore, sin disco.
type MemoryStore struct {
	budget domain.BudgetState
	state  domain.RunState
}

// NewMemoryStore crea un store vacío con status inicial "stopped".
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: domain.RunState{Status: "stopped"}}
}

func (s *MemoryStore) Spent(_ context.Context) (float64, error) {
	return s.budget.TotalSpent, nil
}

func (s *MemoryStore) AddSpend(_ context.Context, amount float64) (float64, error) {
	s.budget.TotalSpent += amount
	s.budget.UpdatedAt = time.Now().UTC()
	return s.budget.TotalSpent, nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.budget = domain.BudgetState{UpdatedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryStore) LoadState(_ context.Context) (domain.RunState, error) {
	return s.state, nil
}

func (s *MemoryStore) SaveState(_ context.Context, state domain.RunState) error {
	s.state = state
	return nil
}
