package config

import "quizdeck/internal/kv"

// StoreOptions maps the storage section to kv options.
func (cfg Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend: kv.Backend(cfg.Storage.Backend),
		Path:    cfg.Storage.Path,
		DSN:     cfg.Storage.DSN,
		Redis: kv.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		},
	}
}
