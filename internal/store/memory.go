package store

import (
	"context"
	"sync"
	"time"

	"github.com/pointpay/backend/internal/models"
)

// MemoryBalanceStore is the default balance backend: a mutex-guarded map
// keyed by user id. Unknown users read as balance 0.
type MemoryBalanceStore struct {
	mu       sync.RWMutex
	balances map[int64]int64
	updated  map[int64]int64 // epoch millis of last write
}

func NewMemoryBalanceStore() *MemoryBalanceStore {
	return &MemoryBalanceStore{
		balances: make(map[int64]int64),
		updated:  make(map[int64]int64),
	}
}

func (s *MemoryBalanceStore) GetBalance(_ context.Context, userID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[userID], nil
}

func (s *MemoryBalanceStore) SetBalance(_ context.Context, userID int64, newBalance int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] = newBalance
	s.updated[userID] = time.Now().UnixMilli()
	return nil
}

// MemoryHistoryStore is the default history backend: one append-only slice
// per user plus a global monotonic record id.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64][]models.PointHistory
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		nextID:  1,
		records: make(map[int64][]models.PointHistory),
	}
}

func (s *MemoryHistoryStore) Append(_ context.Context, userID int64, amount int64, txType models.TransactionType, timeMillis int64) (models.PointHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.PointHistory{
		ID:         s.nextID,
		UserID:     userID,
		Amount:     amount,
		Type:       txType,
		TimeMillis: timeMillis,
	}
	s.nextID++
	s.records[userID] = append(s.records[userID], record)
	return record, nil
}

func (s *MemoryHistoryStore) ListByUser(_ context.Context, userID int64) ([]models.PointHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[userID]
	out := make([]models.PointHistory, len(stored))
	copy(out, stored)
	return out, nil
}
