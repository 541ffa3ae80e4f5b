package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pointpay/backend/internal/models"
	"github.com/pointpay/backend/internal/store"
)

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrLimitExceeded     = errors.New("charge exceeds maximum point limit")
	ErrInsufficientFunds = errors.New("insufficient points")
)

// PointService orchestrates the balance and history stores. Operations on
// the same account are serialized through a per-account lock; operations on
// distinct accounts never contend.
type PointService struct {
	balances store.BalanceStore
	history  store.HistoryStore
	maxPoint int64
	locks    *accountLocks
}

func NewPointService(balances store.BalanceStore, history store.HistoryStore, maxPoint int64) *PointService {
	return &PointService{
		balances: balances,
		history:  history,
		maxPoint: maxPoint,
		locks:    newAccountLocks(),
	}
}

// GetBalance is a read-through to the balance store.
func (s *PointService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.balances.GetBalance(ctx, userID)
}

// GetHistory is a read-through to the history store, in append order.
func (s *PointService) GetHistory(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	return s.history.ListByUser(ctx, userID)
}

// Charge increases the balance by amount, bounded above by maxPoint, and
// records a CHARGE entry. Returns the resulting balance.
func (s *PointService) Charge(ctx context.Context, userID, amount, timeMillis int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.apply(ctx, userID, amount, models.TransactionCharge, timeMillis)
}

// Use decreases the balance by amount, bounded below by zero, and records a
// USE entry with a negative amount. Returns the resulting balance.
func (s *PointService) Use(ctx context.Context, userID, amount, timeMillis int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.apply(ctx, userID, -amount, models.TransactionUse, timeMillis)
}

// apply runs the read-check-write-append sequence under the account's
// exclusion lock. The bound and sufficiency checks run against the balance
// read inside the lock: a check done before acquiring it can go stale when
// two operations on the same account race.
func (s *PointService) apply(ctx context.Context, userID, delta int64, txType models.TransactionType, timeMillis int64) (int64, error) {
	release := s.locks.acquire(userID)
	defer release()

	current, err := s.balances.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}

	newBalance := current + delta
	if newBalance > s.maxPoint {
		return 0, ErrLimitExceeded
	}
	if newBalance < 0 {
		return 0, ErrInsufficientFunds
	}

	if err := s.balances.SetBalance(ctx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("write balance: %w", err)
	}

	if _, err := s.history.Append(ctx, userID, delta, txType, timeMillis); err != nil {
		// Every balance change must have a matching record; undo the write
		// before surfacing the failure.
		if restoreErr := s.balances.SetBalance(ctx, userID, current); restoreErr != nil {
			log.Printf("[POINT] balance restore failed for user %d: %v", userID, restoreErr)
			return 0, fmt.Errorf("append history: %w (balance restore failed: %v)", err, restoreErr)
		}
		return 0, fmt.Errorf("append history: %w", err)
	}

	return newBalance, nil
}
