package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driven"
)

// Ensure WordStore implements the interface.
var _ driven.WordStore = (*WordStore)(nil)

// WordStore is an in-memory implementation of driven.WordStore.
type WordStore struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// NewWordStore creates a new in-memory word store.
func NewWordStore() *WordStore {
	return &WordStore{
		words: make(map[string]struct{}),
	}
}

// ListAlphabetized returns every word sorted ascending.
func (s *WordStore) ListAlphabetized(ctx context.Context) ([]domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("listing words", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Word, 0, len(s.words))
	for text := range s.words {
		result = append(result, domain.NewWord(text))
	}
	return domain.SortWords(result), nil
}

// Insert adds word unless it is already present.
func (s *WordStore) Insert(ctx context.Context, word domain.Word) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.NewStorageError("inserting word", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word.Text]; ok {
		return false, nil
	}
	s.words[word.Text] = struct{}{}
	return true, nil
}

// DeleteAll removes every word.
func (s *WordStore) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.NewStorageError("deleting words", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.words))
	clear(s.words)
	return removed, nil
}
