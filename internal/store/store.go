package store

import (
	"context"

	"github.com/pointpay/backend/internal/models"
)

// BalanceStore holds the current point balance per user. Implementations
// perform no validation: callers own the correctness of newBalance.
type BalanceStore interface {
	// GetBalance returns the stored balance, or 0 for a user never seen.
	GetBalance(ctx context.Context, userID int64) (int64, error)
	// SetBalance unconditionally overwrites the stored balance.
	SetBalance(ctx context.Context, userID int64, newBalance int64) error
}

// HistoryStore is the append-only transaction log. Records are immutable
// once appended and are returned in insertion order.
type HistoryStore interface {
	Append(ctx context.Context, userID int64, amount int64, txType models.TransactionType, timeMillis int64) (models.PointHistory, error)
	ListByUser(ctx context.Context, userID int64) ([]models.PointHistory, error)
}
