package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pointpay/backend/internal/models"
)

// PostgresBalanceStore keeps one row per user in user_points.
type PostgresBalanceStore struct {
	db *sql.DB
}

func NewPostgresBalanceStore(db *sql.DB) *PostgresBalanceStore {
	return &PostgresBalanceStore{db: db}
}

func (s *PostgresBalanceStore) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		`SELECT point FROM user_points WHERE user_id = $1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select balance for user %d: %w", userID, err)
	}
	return balance, nil
}

func (s *PostgresBalanceStore) SetBalance(ctx context.Context, userID int64, newBalance int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_points (user_id, point, update_millis)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET point = $2, update_millis = $3`,
		userID, newBalance, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert balance for user %d: %w", userID, err)
	}
	return nil
}

// PostgresHistoryStore appends to point_histories; the BIGSERIAL id column
// provides the monotonic record identity.
type PostgresHistoryStore struct {
	db *sql.DB
}

func NewPostgresHistoryStore(db *sql.DB) *PostgresHistoryStore {
	return &PostgresHistoryStore{db: db}
}

func (s *PostgresHistoryStore) Append(ctx context.Context, userID int64, amount int64, txType models.TransactionType, timeMillis int64) (models.PointHistory, error) {
	record := models.PointHistory{
		UserID:     userID,
		Amount:     amount,
		Type:       txType,
		TimeMillis: timeMillis,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO point_histories (user_id, amount, type, time_millis)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		userID, amount, string(txType), timeMillis).Scan(&record.ID)
	if err != nil {
		return models.PointHistory{}, fmt.Errorf("insert history for user %d: %w", userID, err)
	}
	return record, nil
}

func (s *PostgresHistoryStore) ListByUser(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, type, time_millis
		FROM point_histories
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select histories for user %d: %w", userID, err)
	}
	defer rows.Close()

	var records []models.PointHistory
	for rows.Next() {
		var record models.PointHistory
		var txType string
		if err := rows.Scan(&record.ID, &record.UserID, &record.Amount, &txType, &record.TimeMillis); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		record.Type = models.TransactionType(txType)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return records, nil
}
