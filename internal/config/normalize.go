package config

import (
	"path/filepath"
	"strings"
)

// UI modes accepted by ui.mode.
const (
	UIModeAuto  = "auto"
	UIModeLive  = "live"
	UIModePlain = "plain"
)

// Normalize trims values and fills defaults.
func Normalize(cfg *Config) {
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	cfg.Storage.Path = strings.TrimSpace(cfg.Storage.Path)
	if cfg.Storage.Backend == "file" && cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStateRel
	}
	cfg.Storage.DSN = strings.TrimSpace(cfg.Storage.DSN)
	cfg.Storage.Redis.Addr = strings.TrimSpace(cfg.Storage.Redis.Addr)
	if cfg.Storage.Backend == "redis" && cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = "localhost:6379"
	}

	dirs := make([]string, 0, len(cfg.Catalog.Dirs))
	for _, dir := range cfg.Catalog.Dirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			dirs = append(dirs, trimmed)
		}
	}
	cfg.Catalog.Dirs = dirs

	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeAuto
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
}

// resolvePaths anchors relative file locations at root.
func resolvePaths(cfg *Config, root string) {
	anchor := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(root, path)
	}
	cfg.Storage.Path = anchor(cfg.Storage.Path)
	for i, dir := range cfg.Catalog.Dirs {
		cfg.Catalog.Dirs[i] = anchor(dir)
	}
	cfg.Log.File = anchor(cfg.Log.File)
	if cfg.Storage.DSN != "" && (cfg.Storage.Backend == "sqlite" || cfg.Storage.Backend == "duckdb") {
		if !strings.Contains(cfg.Storage.DSN, ":") {
			cfg.Storage.DSN = anchor(cfg.Storage.DSN)
		}
	}
}
