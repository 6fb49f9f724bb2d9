package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Loaded is a resolved configuration together with where it came from.
type Loaded struct {
	Config Config
	// Path is the config file, empty when defaults were used.
	Path string
	// Root is the directory relative paths resolve against.
	Root string
}

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	root := RootFromConfigPath(path)
	if err := loadEnvFile(root); err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg, os.LookupEnv)
	Normalize(&cfg)
	resolvePaths(&cfg, root)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads explicitPath when set, otherwise the nearest config above
// startDir. Without a config file the defaults apply, rooted at startDir.
func Resolve(explicitPath, startDir string) (Loaded, error) {
	if explicitPath != "" {
		cfg, err := Load(explicitPath)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Config: cfg, Path: explicitPath, Root: RootFromConfigPath(explicitPath)}, nil
	}
	path, err := FindConfigPath(startDir)
	if err == nil {
		cfg, err := Load(path)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Config: cfg, Path: path, Root: RootFromConfigPath(path)}, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return Loaded{}, err
	}

	root, err := filepath.Abs(startDir)
	if err != nil {
		return Loaded{}, fmt.Errorf("resolve start directory: %w", err)
	}
	if err := loadEnvFile(root); err != nil {
		return Loaded{}, err
	}
	cfg := Config{Version: 1}
	ApplyEnv(&cfg, os.LookupEnv)
	Normalize(&cfg)
	resolvePaths(&cfg, root)
	if err := Validate(&cfg); err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Root: root}, nil
}

// loadEnvFile exports variables from root/.env without overriding ones
// already set.
func loadEnvFile(root string) error {
	path := filepath.Join(root, DefaultEnvFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
