package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
)

const receiveTimeout = 2 * time.Second

// faultyWordStore wraps the memory store with injectable failures.
type faultyWordStore struct {
	*memory.WordStore

	mu        sync.Mutex
	insertErr map[string]error
	listErr   error
	deleteErr error
	listCalls int
}

func newFaultyWordStore() *faultyWordStore {
	return &faultyWordStore{
		WordStore: memory.NewWordStore(),
		insertErr: make(map[string]error),
	}
}

func (f *faultyWordStore) failInsert(word string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertErr[word] = err
}

func (f *faultyWordStore) failList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *faultyWordStore) failDelete(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteErr = err
}

func (f *faultyWordStore) ListAlphabetized(ctx context.Context) ([]domain.Word, error) {
	f.mu.Lock()
	f.listCalls++
	err := f.listErr
	f.mu.Unlock()
	if err != nil {
		return nil, domain.NewStorageError("listing words", err)
	}
	return f.WordStore.ListAlphabetized(ctx)
}

func (f *faultyWordStore) Insert(ctx context.Context, word domain.Word) (bool, error) {
	f.mu.Lock()
	err := f.insertErr[word.Text]
	f.mu.Unlock()
	if err != nil {
		return false, domain.NewStorageError("inserting word", err)
	}
	return f.WordStore.Insert(ctx, word)
}

func (f *faultyWordStore) DeleteAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return 0, domain.NewStorageError("deleting words", err)
	}
	return f.WordStore.DeleteAll(ctx)
}

func newTestService(t *testing.T) (*WordService, *faultyWordStore) {
	t.Helper()
	store := newFaultyWordStore()
	svc, err := NewWordService(context.Background(), store)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = svc.Close()
	})
	return svc, store
}

func subscribe(t *testing.T, svc *WordService, opts ...driving.SubscribeOption) driving.Subscription {
	t.Helper()
	sub, err := svc.ObserveAlphabetized(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(sub.Close)
	return sub
}

// next receives one snapshot or fails the test.
func next(t *testing.T, sub driving.Subscription) domain.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(receiveTimeout):
		t.Fatal("timed out waiting for snapshot")
		return domain.Snapshot{}
	}
}

// receiveUntil drains snapshots until one holds exactly want.
func receiveUntil(t *testing.T, sub driving.Subscription, want ...string) domain.Snapshot {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	deadline := time.After(receiveTimeout)
	for {
		select {
		case snap, ok := <-sub.Updates():
			require.True(t, ok, "subscription closed before %v arrived", want)
			if assert.ObjectsAreEqual(want, snap.Strings()) {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot %v", want)
			return domain.Snapshot{}
		}
	}
}

// assertQuiet fails if the subscription delivers anything within a short window.
func assertQuiet(t *testing.T, sub driving.Subscription) {
	t.Helper()
	select {
	case snap := <-sub.Updates():
		t.Fatalf("unexpected snapshot %v (version %d)", snap.Strings(), snap.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewWordService_LoadsInitialSnapshot(t *testing.T) {
	store := newFaultyWordStore()
	_, _ = store.WordStore.Insert(context.Background(), domain.NewWord("seed"))

	svc, err := NewWordService(context.Background(), store)
	require.NoError(t, err)
	defer svc.Close()

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"seed"}, snap.Strings())
	assert.Equal(t, uint64(1), snap.Version)
}

func TestNewWordService_LoadError(t *testing.T) {
	store := newFaultyWordStore()
	store.failList(errors.New("database is locked"))

	svc, err := NewWordService(context.Background(), store)

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Contains(t, err.Error(), "loading words")
}

func TestWordService_Insert_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc)

	assert.Empty(t, next(t, sub).Words)

	require.NoError(t, svc.Insert(ctx, "w"))
	require.NoError(t, svc.Insert(ctx, "w"))

	assert.Equal(t, []string{"w"}, next(t, sub).Strings())
	assertQuiet(t, sub)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"w"}, snap.Strings())
}

func TestWordService_Insert_RoundTripOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, w := range []string{"banana", "apple", "cherry"} {
		require.NoError(t, svc.Insert(ctx, w))
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, snap.Strings())
}

func TestWordService_Insert_EmptyStringAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, "b"))
	require.NoError(t, svc.Insert(ctx, ""))

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "b"}, snap.Strings())
}

func TestWordService_DeleteAll_ThenInsert(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc)

	require.NoError(t, svc.Insert(ctx, "one"))
	require.NoError(t, svc.Insert(ctx, "two"))
	require.NoError(t, svc.DeleteAll(ctx))
	receiveUntil(t, sub)

	require.NoError(t, svc.Insert(ctx, "x"))
	receiveUntil(t, sub, "x")
}

func TestWordService_DeleteAll_EmptyStorePublishes(t *testing.T) {
	svc, _ := newTestService(t)
	sub := subscribe(t, svc)

	first := next(t, sub)
	require.NoError(t, svc.DeleteAll(context.Background()))
	second := next(t, sub)

	assert.Empty(t, first.Words)
	assert.Empty(t, second.Words)
	assert.NotNil(t, second.Words)
	assert.Greater(t, second.Version, first.Version)
}

func TestWordService_NewSubscriberReplay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, "zebra"))
	require.NoError(t, svc.Insert(ctx, "ant"))

	sub := subscribe(t, svc)
	assert.Equal(t, []string{"ant", "zebra"}, next(t, sub).Strings())
	assertQuiet(t, sub)
}

func TestWordService_Insert_FailureAtomicity(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, "old"))
	sub := subscribe(t, svc)
	assert.Equal(t, []string{"old"}, next(t, sub).Strings())

	store.failInsert("new", errors.New("disk full"))
	err := svc.Insert(ctx, "new")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Contains(t, err.Error(), "disk full")
	assertQuiet(t, sub)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, snap.Strings())

	persisted, err := store.WordStore.ListAlphabetized(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, domain.Snapshot{Words: persisted}.Strings())
}

func TestWordService_DeleteAll_Failure(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, "keep"))
	store.failDelete(errors.New("permission denied"))

	err := svc.DeleteAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)

	snap, _ := svc.Snapshot(ctx)
	assert.Equal(t, []string{"keep"}, snap.Strings())
}

func TestWordService_Insert_RequeryFailureDerivesSnapshot(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, "b"))
	store.failList(errors.New("transient read error"))

	require.NoError(t, svc.Insert(ctx, "a"), "commit succeeded so the call succeeds")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, snap.Strings())
}

func TestWordService_ConcurrentInserts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, w := range []string{"b", "a"} {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			errs <- svc.Insert(ctx, word)
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, snap.Strings())
}

func TestWordService_SubscribersSeeSameOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	subA := subscribe(t, svc)
	subB := subscribe(t, svc)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, svc.Insert(ctx, fmt.Sprintf("w%d", n)))
		}(i)
	}
	wg.Wait()

	collect := func(sub driving.Subscription) []uint64 {
		var versions []uint64
		for i := 0; i < writers+1; i++ {
			versions = append(versions, next(t, sub).Version)
		}
		return versions
	}

	versionsA := collect(subA)
	versionsB := collect(subB)

	assert.Equal(t, versionsA, versionsB)
	for i := 1; i < len(versionsA); i++ {
		assert.Greater(t, versionsA[i], versionsA[i-1])
	}
}

func TestWordService_SnapshotsGrowMonotonically(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc)
	next(t, sub)

	for _, w := range []string{"c", "a", "b"} {
		require.NoError(t, svc.Insert(ctx, w))
	}

	assert.Equal(t, []string{"c"}, next(t, sub).Strings())
	assert.Equal(t, []string{"a", "c"}, next(t, sub).Strings())
	assert.Equal(t, []string{"a", "b", "c"}, next(t, sub).Strings())
}

func TestWordService_Unsubscribe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	leaving := subscribe(t, svc)
	staying := subscribe(t, svc)
	next(t, leaving)
	next(t, staying)
	assert.Equal(t, 2, svc.Subscribers())

	leaving.Close()
	leaving.Close()

	_, ok := <-leaving.Updates()
	assert.False(t, ok, "closed subscription must close its channel")
	assert.Equal(t, 1, svc.Subscribers())

	require.NoError(t, svc.Insert(ctx, "after"))
	assert.Equal(t, []string{"after"}, next(t, staying).Strings())
}

func TestWordService_SubscriptionEndsWithContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := svc.ObserveAlphabetized(ctx)
	require.NoError(t, err)
	next(t, sub)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.Updates():
			return !ok
		default:
			return false
		}
	}, receiveTimeout, 10*time.Millisecond)
	assert.Equal(t, 0, svc.Subscribers())
}

func TestWordService_SlowSubscriberDoesNotBlockWriters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			assert.NoError(t, svc.Insert(ctx, fmt.Sprintf("word-%03d", i)))
		}
	}()

	select {
	case <-done:
	case <-time.After(receiveTimeout):
		t.Fatal("writers blocked by a subscriber that never reads")
	}

	// Lossless delivery: the initial snapshot plus one per insert.
	for i := 0; i <= 100; i++ {
		snap := next(t, sub)
		assert.Equal(t, i, snap.Len())
	}
}

func TestWordService_ConflatedSubscriberSkipsToLatest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc, driving.WithConflation())

	for i := 0; i < 20; i++ {
		require.NoError(t, svc.Insert(ctx, fmt.Sprintf("w%02d", i)))
	}

	last := receiveUntil(t, sub,
		"w00", "w01", "w02", "w03", "w04", "w05", "w06", "w07", "w08", "w09",
		"w10", "w11", "w12", "w13", "w14", "w15", "w16", "w17", "w18", "w19")
	assert.Equal(t, uint64(21), last.Version)
	assertQuiet(t, sub)
}

func TestWordService_Refresh(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	sub := subscribe(t, svc)
	next(t, sub)

	// Simulates a commit by another process sharing the medium.
	_, err := store.WordStore.Insert(ctx, domain.NewWord("external"))
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, []string{"external"}, next(t, sub).Strings())

	require.NoError(t, svc.Refresh(ctx))
	assertQuiet(t, sub)
}

func TestWordService_Refresh_Failure(t *testing.T) {
	svc, store := newTestService(t)
	store.failList(errors.New("I/O error"))

	err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestWordService_Close(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.ObserveAlphabetized(ctx)
	require.NoError(t, err)
	next(t, sub)

	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())

	_, ok := <-sub.Updates()
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Insert(ctx, "late"), domain.ErrClosed)
	assert.ErrorIs(t, svc.DeleteAll(ctx), domain.ErrClosed)
	assert.ErrorIs(t, svc.Refresh(ctx), domain.ErrClosed)

	_, err = svc.ObserveAlphabetized(ctx)
	assert.ErrorIs(t, err, domain.ErrClosed)
}

func TestWordService_SnapshotsAreIndependentCopies(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Insert(ctx, "a"))

	subA := subscribe(t, svc)
	subB := subscribe(t, svc)

	snapA := next(t, subA)
	snapA.Words[0] = domain.NewWord("mutated")

	assert.Equal(t, []string{"a"}, next(t, subB).Strings())
	latest, _ := svc.Snapshot(ctx)
	assert.Equal(t, []string{"a"}, latest.Strings())
}
