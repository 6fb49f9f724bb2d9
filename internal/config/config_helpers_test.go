package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes payload to root/.quizdeck/config.yml.
func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		prev, had := os.LookupEnv(key)
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func clearQuizdeckEnv(t *testing.T) {
	t.Helper()
	unsetEnv(t, EnvStorageBackend, EnvStorageDSN, EnvStoragePath, EnvRedisAddr, EnvRedisPassword, EnvRedisDB, EnvLogLevel)
}
