package config

import (
	"github.com/spf13/viper"
)

// Balance/history backend selectors.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type PointConfig struct {
	MaxPoint     int64  // upper bound for any account balance, fixed for the process
	BalanceStore string // memory | redis
	HistoryStore string // memory | postgres
}

func LoadPointConfig() *PointConfig {
	viper.SetDefault("point.max_point", 10000)
	viper.SetDefault("point.balance_store", BackendMemory)
	viper.SetDefault("point.history_store", BackendMemory)

	return &PointConfig{
		MaxPoint:     viper.GetInt64("point.max_point"),
		BalanceStore: viper.GetString("point.balance_store"),
		HistoryStore: viper.GetString("point.history_store"),
	}
}
