package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// errCorruptFile marks a store file that exists but does not parse.
var errCorruptFile = errors.New("kv: store file is corrupt")

// File stores all keys in one JSON object on disk. Writes go through a
// temporary file and an atomic rename.
type File struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFile returns a file store rooted at path. The file is created on the
// first Set.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: file path is required")
	}
	return &File{path: path, logger: slog.New(slog.DiscardHandler)}, nil
}

// Get reads the value for key. A missing file reads as empty.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set rewrites the file with key set to value. A store file that no longer
// parses is moved aside to <path>.corrupt and replaced.
func (f *File) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if errors.Is(err, errCorruptFile) {
		values, err = f.quarantine(err)
	}
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) quarantine(cause error) (map[string]string, error) {
	aside := f.path + ".corrupt"
	if err := os.Rename(f.path, aside); err != nil {
		return nil, fmt.Errorf("move corrupt store aside: %w", err)
	}
	f.logger.Warn("replacing unreadable store file", "path", f.path, "moved_to", aside, "error", cause)
	return map[string]string{}, nil
}

// Close is a no-op.
func (f *File) Close() error {
	return nil
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errCorruptFile, f.path, err)
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmpPath := f.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
