package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/kv"
	"quizdeck/internal/logging"
	"quizdeck/internal/quiz"
	"quizdeck/internal/session"
)

// Overridable in tests.
var (
	workingDir = os.Getwd
	clock      = time.Now
)

// runtime bundles what a command needs to drive a session.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	catalog  *quiz.Catalog
	store    kv.Store
	session  *session.Session
	closeLog func() error
}

// openRuntime resolves config, logging, and the catalog. The store and the
// session are opened only when withStore is set.
func openRuntime(ctx context.Context, configPath string, withStore bool, stderr io.Writer) (*runtime, error) {
	wd, err := workingDir()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	explicit := strings.TrimSpace(configPath)
	if explicit != "" && !filepath.IsAbs(explicit) {
		explicit = filepath.Join(wd, explicit)
	}
	loaded, err := config.Resolve(explicit, wd)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, stderr)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger, closeLog: closeLog}
	if loaded.Path != "" {
		logger.Debug("config loaded", "path", loaded.Path)
	}

	catalog, err := quiz.LoadCatalog(cfg.Catalog.Dirs...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	rt.catalog = catalog

	if !withStore {
		return rt, nil
	}
	storeOpts := cfg.StoreOptions()
	storeOpts.Logger = logger
	store, err := kv.Open(ctx, storeOpts)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "backend", cfg.Storage.Backend)
	rt.store = store
	rt.session = session.New(session.Config{
		Catalog: catalog,
		Store:   store,
		Now:     clock,
		Logger:  logger,
	})
	return rt, nil
}

// Close releases the store and the log file.
func (rt *runtime) Close() error {
	var errs []error
	if rt.store != nil {
		errs = append(errs, rt.store.Close())
	}
	if rt.closeLog != nil {
		errs = append(errs, rt.closeLog())
	}
	return errors.Join(errs...)
}
