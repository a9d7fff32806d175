package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/wordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wordbook/internal/adapters/driven/watch"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/cli"
	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driven"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
	"github.com/custodia-labs/wordbook/internal/core/services"
	"github.com/custodia-labs/wordbook/internal/logger"
)

// newWordsOpener returns the opener the CLI uses to build the word service
// from the stored settings and the global flags.
func newWordsOpener(settings driving.SettingsService) cli.WordsOpener {
	return func(ctx context.Context, opts cli.OpenOptions) (driving.WordService, func() error, error) {
		cfg, err := settings.Get()
		if err != nil {
			return nil, nil, fmt.Errorf("loading settings: %w", err)
		}
		applyFlags(cfg, opts)

		if !cfg.Storage.Backend.IsDurable() {
			logger.Debug("using volatile word store")
			svc, err := services.NewWordService(ctx, memory.NewWordStore())
			if err != nil {
				return nil, nil, err
			}
			return svc, svc.Close, nil
		}

		store, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using word store at %s", store.Path())

		svc, err := services.NewWordService(ctx, store.WordStore())
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}

		stopFollowing := func() {}
		if opts.Follow && cfg.WatchActive() {
			notifier, err := watch.New(watch.Config{
				Paths:        store.WatchPaths(),
				Debounce:     cfg.Watch.Debounce,
				MaxPerSecond: cfg.Watch.MaxRefreshPerSecond,
			})
			if err != nil {
				logger.Warn("not following other processes: %v", err)
			} else {
				stopFollowing = follow(ctx, notifier, svc)
			}
		}

		closer := func() error {
			stopFollowing()
			return errors.Join(svc.Close(), store.Close())
		}
		return svc, closer, nil
	}
}

// applyFlags lets command-line flags override stored settings.
func applyFlags(cfg *domain.AppSettings, opts cli.OpenOptions) {
	if opts.Memory {
		cfg.Storage.Backend = domain.StorageBackendMemory
	}
	if opts.DataDir != "" {
		cfg.Storage.DataDir = opts.DataDir
	}
}

// follow refreshes svc whenever notifier reports an outside change.
// The returned func stops the notifier and waits for it to exit.
func follow(ctx context.Context, notifier driven.ChangeNotifier, svc driving.WordService) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := notifier.Watch(ctx, func() {
			if err := svc.Refresh(ctx); err != nil {
				logger.Warn("refreshing words: %v", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watching word store: %v", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
