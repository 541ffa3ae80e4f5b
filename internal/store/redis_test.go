package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
)

func TestRedisBalanceStore_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reads as zero", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisBalanceStore(client)

		mock.ExpectGet("point:balance:42").RedisNil()

		balance, err := s.GetBalance(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing balance", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisBalanceStore(client)

		mock.ExpectGet("point:balance:1").SetVal("750")

		balance, err := s.GetBalance(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(750), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure propagates", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisBalanceStore(client)

		mock.ExpectGet("point:balance:1").SetErr(errors.New("connection refused"))

		_, err := s.GetBalance(ctx, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis get balance")
	})
}

func TestRedisBalanceStore_SetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("successful set", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisBalanceStore(client)

		mock.ExpectSet("point:balance:1", int64(500), 0).SetVal("OK")

		err := s.SetBalance(ctx, 1, 500)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure propagates", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisBalanceStore(client)

		mock.ExpectSet("point:balance:1", int64(500), 0).SetErr(errors.New("connection refused"))

		err := s.SetBalance(ctx, 1, 500)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis set balance")
	})
}
