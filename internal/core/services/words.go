package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driven"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
	"github.com/custodia-labs/wordbook/internal/logger"
)

// Ensure WordService implements the interface.
var _ driving.WordService = (*WordService)(nil)

// WordService is the observable word store.
//
// Every mutation holds writeMu from the durable commit until the resulting
// snapshot has been queued on the feed, so snapshots are published in
// commit order. The feed lock is never held while the store is called.
type WordService struct {
	store driven.WordStore
	feed  *feed

	writeMu sync.Mutex
	closed  bool
}

// NewWordService opens the observable store over a durable medium.
// The initial ordered scan seeds the snapshot that new subscribers replay.
func NewWordService(ctx context.Context, store driven.WordStore) (*WordService, error) {
	words, err := store.ListAlphabetized(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}

	logger.Debug("word service: loaded %d words", len(words))
	return &WordService{
		store: store,
		feed:  newFeed(words),
	}, nil
}

// Insert adds word if absent. A duplicate is a silent no-op and publishes nothing.
func (s *WordService) Insert(ctx context.Context, word string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}

	added, err := s.store.Insert(ctx, domain.NewWord(word))
	if err != nil {
		return fmt.Errorf("inserting %q: %w", word, err)
	}
	if !added {
		logger.Debug("word service: %q already present", word)
		return nil
	}

	s.publishLocked(ctx, func(latest []domain.Word) []domain.Word {
		return domain.SortWords(append(latest, domain.NewWord(word)))
	})
	return nil
}

// DeleteAll removes every word and always publishes a (possibly unchanged) empty snapshot.
func (s *WordService) DeleteAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}

	removed, err := s.store.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("deleting words: %w", err)
	}
	logger.Debug("word service: deleted %d words", removed)

	s.publishLocked(ctx, func([]domain.Word) []domain.Word {
		return []domain.Word{}
	})
	return nil
}

// ObserveAlphabetized subscribes to the live ordered view.
func (s *WordService) ObserveAlphabetized(
	ctx context.Context,
	opts ...driving.SubscribeOption,
) (driving.Subscription, error) {
	sub, err := s.feed.subscribe(ctx, driving.ApplySubscribeOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("subscribing: %w", err)
	}
	return sub, nil
}

// Snapshot returns the latest published snapshot.
func (s *WordService) Snapshot(_ context.Context) (domain.Snapshot, error) {
	return s.feed.snapshot(), nil
}

// Refresh re-reads the store and publishes only if the contents changed.
// Used when another process may have committed to the same medium.
func (s *WordService) Refresh(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}

	words, err := s.store.ListAlphabetized(ctx)
	if err != nil {
		return fmt.Errorf("refreshing words: %w", err)
	}

	current := domain.Snapshot{Words: words}
	if current.SameWords(s.feed.snapshot()) {
		logger.Debug("word service: refresh found no changes")
		return nil
	}

	logger.Info("Word list changed externally (%d words)", len(words))
	s.feed.publish(words)
	return nil
}

// Subscribers returns the number of active subscriptions.
func (s *WordService) Subscribers() int {
	return s.feed.count()
}

// Close ends every subscription. Later mutations fail with domain.ErrClosed.
// The durable medium is owned by the caller and is not closed.
func (s *WordService) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.feed.close()
	return nil
}

// publishLocked re-queries the committed state and publishes it. If the
// re-query fails the commit has still happened, so the snapshot is derived
// from the latest one instead. Caller must hold writeMu.
func (s *WordService) publishLocked(ctx context.Context, derive func([]domain.Word) []domain.Word) {
	words, err := s.store.ListAlphabetized(ctx)
	if err != nil {
		logger.Warn("word service: re-query after commit failed, deriving snapshot: %v", err)
		words = derive(s.feed.snapshot().Words)
	}
	s.feed.publish(words)
}
