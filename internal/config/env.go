package config

import (
	"strconv"
	"strings"
)

// Environment variables that override config file values.
const (
	EnvStorageBackend = "QUIZDECK_STORAGE_BACKEND"
	EnvStorageDSN     = "QUIZDECK_STORAGE_DSN"
	EnvStoragePath    = "QUIZDECK_STORAGE_PATH"
	EnvRedisAddr      = "QUIZDECK_REDIS_ADDR"
	EnvRedisPassword  = "QUIZDECK_REDIS_PASSWORD"
	EnvRedisDB        = "QUIZDECK_REDIS_DB"
	EnvLogLevel       = "QUIZDECK_LOG_LEVEL"
)

// ApplyEnv overlays non-empty environment values onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(EnvStorageBackend, &cfg.Storage.Backend)
	set(EnvStorageDSN, &cfg.Storage.DSN)
	set(EnvStoragePath, &cfg.Storage.Path)
	set(EnvRedisAddr, &cfg.Storage.Redis.Addr)
	set(EnvRedisPassword, &cfg.Storage.Redis.Password)
	set(EnvLogLevel, &cfg.Log.Level)

	if value, ok := lookup(EnvRedisDB); ok {
		if db, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			cfg.Storage.Redis.DB = db
		}
	}
}
