package services

import (
	"context"

	"github.com/pointpay/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockBalanceStore struct {
	mock.Mock
}

func (m *MockBalanceStore) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceStore) SetBalance(ctx context.Context, userID int64, newBalance int64) error {
	args := m.Called(ctx, userID, newBalance)
	return args.Error(0)
}

type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Append(ctx context.Context, userID int64, amount int64, txType models.TransactionType, timeMillis int64) (models.PointHistory, error) {
	args := m.Called(ctx, userID, amount, txType, timeMillis)
	return args.Get(0).(models.PointHistory), args.Error(1)
}

func (m *MockHistoryStore) ListByUser(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointHistory), args.Error(1)
}
