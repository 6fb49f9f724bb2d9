package config

import (
	"fmt"
	"strings"

	"quizdeck/internal/kv"
	"quizdeck/internal/logging"
	"quizdeck/internal/validation"
)

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := validation.NewCollector("config")

	if cfg.Version == 0 {
		collector.Add("version", "is required")
	} else if cfg.Version != 1 {
		collector.Add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateStorage(cfg.Storage, collector.Under("storage"))

	switch cfg.UI.Mode {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		collector.Add("ui.mode", fmt.Sprintf("must be %s, %s, or %s", UIModeAuto, UIModeLive, UIModePlain))
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		collector.Add("log.level", fmt.Sprintf("must be one of %s", strings.Join(logging.Levels, ", ")))
	}

	return collector.Err()
}

func validateStorage(storage StorageConfig, add validation.Adder) {
	backend, err := kv.ParseBackend(storage.Backend)
	if err != nil {
		names := make([]string, 0, len(kv.Backends))
		for _, b := range kv.Backends {
			names = append(names, string(b))
		}
		add("backend", fmt.Sprintf("must be one of %s", strings.Join(names, ", ")))
		return
	}
	switch backend {
	case kv.BackendFile:
		if storage.Path == "" {
			add("path", "is required for the file backend")
		}
	case kv.BackendPostgres:
		if storage.DSN == "" {
			add("dsn", "is required for the postgres backend")
		}
	case kv.BackendRedis:
		if storage.Redis.DB < 0 {
			add("redis.db", "must be >= 0")
		}
	}
}
