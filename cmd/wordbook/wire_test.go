package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/cli"
	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/services"
)

func newSettings(t *testing.T, kv ...string) *services.SettingsService {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	for i := 0; i+1 < len(kv); i += 2 {
		require.NoError(t, settings.Set(kv[i], kv[i+1]))
	}
	return settings
}

func TestApplyFlags(t *testing.T) {
	cfg := domain.DefaultAppSettings()

	applyFlags(&cfg, cli.OpenOptions{})
	assert.Equal(t, domain.StorageBackendSQLite, cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.DataDir)

	applyFlags(&cfg, cli.OpenOptions{DataDir: "/srv/words", Memory: true})
	assert.Equal(t, domain.StorageBackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "/srv/words", cfg.Storage.DataDir)
}

func TestWordsOpener_Memory(t *testing.T) {
	open := newWordsOpener(newSettings(t, "storage.backend", "memory"))
	ctx := context.Background()

	svc, closer, err := open(ctx, cli.OpenOptions{Follow: true})
	require.NoError(t, err)

	require.NoError(t, svc.Insert(ctx, "ephemeral"))
	require.NoError(t, closer())

	assert.ErrorIs(t, svc.Insert(ctx, "late"), domain.ErrClosed)
}

func TestWordsOpener_MemoryFlagOverridesSettings(t *testing.T) {
	dir := t.TempDir()
	open := newWordsOpener(newSettings(t, "storage.data_dir", dir))
	ctx := context.Background()

	svc, closer, err := open(ctx, cli.OpenOptions{Memory: true})
	require.NoError(t, err)
	require.NoError(t, svc.Insert(ctx, "gone"))
	require.NoError(t, closer())

	svc, closer, err = open(ctx, cli.OpenOptions{})
	require.NoError(t, err)
	defer func() { _ = closer() }()

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.Len())
}

func TestWordsOpener_SQLitePersists(t *testing.T) {
	open := newWordsOpener(newSettings(t))
	ctx := context.Background()
	opts := cli.OpenOptions{DataDir: t.TempDir()}

	svc, closer, err := open(ctx, opts)
	require.NoError(t, err)
	require.NoError(t, svc.Insert(ctx, "durable"))
	require.NoError(t, closer())

	svc, closer, err = open(ctx, opts)
	require.NoError(t, err)
	defer func() { _ = closer() }()

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"durable"}, snap.Strings())
}

func TestWordsOpener_FollowsOtherProcess(t *testing.T) {
	dir := t.TempDir()
	open := newWordsOpener(newSettings(t,
		"watch.debounce", "20ms",
		"watch.max_refresh_per_second", "0",
	))
	ctx := context.Background()

	watcher, stopWatcher, err := open(ctx, cli.OpenOptions{DataDir: dir, Follow: true})
	require.NoError(t, err)
	defer func() { _ = stopWatcher() }()

	writer, stopWriter, err := open(ctx, cli.OpenOptions{DataDir: dir})
	require.NoError(t, err)
	defer func() { _ = stopWriter() }()

	sub, err := watcher.ObserveAlphabetized(ctx)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, writer.Insert(ctx, "from-elsewhere"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-sub.Updates():
			if snap.Contains("from-elsewhere") {
				return
			}
		case <-deadline:
			t.Fatal("watching service never saw the other writer's word")
		}
	}
}

// fakeNotifier reports one change and then waits for cancellation.
type fakeNotifier struct {
	err error
}

func (f *fakeNotifier) Watch(ctx context.Context, onChange func()) error {
	onChange()
	<-ctx.Done()
	if f.err != nil {
		return f.err
	}
	return ctx.Err()
}

// countingWordService counts Refresh calls.
type countingWordService struct {
	*services.WordService
	refreshes atomic.Int32
	err       error
}

func (c *countingWordService) Refresh(ctx context.Context) error {
	c.refreshes.Add(1)
	if c.err != nil {
		return c.err
	}
	return c.WordService.Refresh(ctx)
}

func TestFollow_RefreshesOnChange(t *testing.T) {
	tests := []struct {
		name       string
		notifyErr  error
		refreshErr error
	}{
		{"clean", nil, nil},
		{"refresh fails", nil, errors.New("disk gone")},
		{"notifier fails", errors.New("watch limit reached"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, err := services.NewWordService(context.Background(), memory.NewWordStore())
			require.NoError(t, err)
			defer func() { _ = inner.Close() }()
			svc := &countingWordService{WordService: inner, err: tt.refreshErr}

			stop := follow(context.Background(), &fakeNotifier{err: tt.notifyErr}, svc)

			require.Eventually(t, func() bool {
				return svc.refreshes.Load() == 1
			}, time.Second, 5*time.Millisecond)

			stop()
		})
	}
}
