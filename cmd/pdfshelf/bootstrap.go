package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/filesystem/local"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/filesystem/objectstore"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/picker"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/platform"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/share"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/storage/bolt"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/watcher"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfshelf/internal/config"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/core/services"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// stagedPickMaxAge bounds how long staged picker copies survive.
const stagedPickMaxAge = 24 * time.Hour

// bootstrap is the composition root: it loads configuration and wires every
// adapter into the core services.
func bootstrap(ctx context.Context, configPath string) (*cli.Services, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("cleanup: %v", err)
			}
		}
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		return nil, nil, err
	}
	if logPath != "" {
		closer, err := logger.OpenFile(logPath)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closer)
	}

	svc, more, err := wire(ctx, cfg)
	closers = append(closers, more...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func wire(ctx context.Context, cfg config.Config) (*cli.Services, []io.Closer, error) {
	var closers []io.Closer

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, closers, err
	}
	areas, err := platform.NewAreas(dataDir)
	if err != nil {
		return nil, closers, err
	}
	logger.Section("pdfshelf")
	logger.Debug("data directory %s (%s mode, %s store)", dataDir, cfg.Platform.Mode, cfg.Store.Backend)

	selection, closer, err := openSelectionStore(cfg.Store.Backend, dataDir)
	if err != nil {
		return nil, closers, err
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	plat, err := platform.New(cfg.PlatformMode(), areas, selection)
	if err != nil {
		return nil, closers, err
	}

	fs := filesystem.NewRouter(local.New())
	if cfg.HasRemote() {
		remote, err := objectstore.New(ctx, objectstore.Config{
			Endpoint:  cfg.Remote.Endpoint,
			Region:    cfg.Remote.Region,
			AccessKey: cfg.Remote.AccessKey,
			SecretKey: cfg.Remote.SecretKey,
		})
		if err != nil {
			return nil, closers, fmt.Errorf("connecting to object store: %w", err)
		}
		fs.Register(remote)
	}

	queue := picker.NewQueue()
	pick := picker.New(plat.PickerArea(), queue)
	if err := pick.Prune(stagedPickMaxAge); err != nil {
		logger.Warn("pruning staged picks: %v", err)
	}

	engine := services.NewDiscoveryEngine(fs, plat, selection)

	return &cli.Services{
		Config:    cfg,
		Library:   services.NewLibraryService(engine, fs, plat, pick, share.New(cfg.Share.Command)),
		Folder:    services.NewFolderService(fs, plat, selection),
		Presenter: services.NewPresenter(cfg.Display.Locale),
		Picks:     queue,
		Platform:  plat,
		Watcher:   watcher.New(cfg.WatchInterval()),
	}, closers, nil
}

// openSelectionStore opens the configured backend. The closer is nil for
// the in-memory store.
func openSelectionStore(backend, dataDir string) (driven.SelectionStore, io.Closer, error) {
	switch backend {
	case config.BackendSQLite, "":
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store.SelectionStore(), store, nil
	case config.BackendBolt:
		store, err := bolt.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store.SelectionStore(), store, nil
	case config.BackendMemory:
		return memory.NewSelectionStore(), nil, nil
	default:
		return nil, nil, errors.New("unknown store backend: " + backend)
	}
}
