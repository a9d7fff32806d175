package mcp

import (
	"context"

	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
)

// mockWordService is a mock implementation of driving.WordService.
type mockWordService struct {
	snapshot domain.Snapshot
	inserted []string
	cleared  int

	insertErr   error
	deleteErr   error
	snapshotErr error
}

var _ driving.WordService = (*mockWordService)(nil)

func newMockWordService(words ...string) *mockWordService {
	m := &mockWordService{snapshot: domain.Snapshot{Version: 1, Words: []domain.Word{}}}
	for _, w := range words {
		m.snapshot.Words = append(m.snapshot.Words, domain.NewWord(w))
	}
	m.snapshot.Words = domain.SortWords(m.snapshot.Words)
	return m
}

func (m *mockWordService) Insert(_ context.Context, word string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, word)
	if !m.snapshot.Contains(word) {
		m.snapshot.Version++
		m.snapshot.Words = domain.SortWords(append(m.snapshot.Words, domain.NewWord(word)))
	}
	return nil
}

func (m *mockWordService) DeleteAll(_ context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.cleared++
	m.snapshot.Version++
	m.snapshot.Words = []domain.Word{}
	return nil
}

func (m *mockWordService) ObserveAlphabetized(
	_ context.Context,
	_ ...driving.SubscribeOption,
) (driving.Subscription, error) {
	return nil, domain.ErrClosed
}

func (m *mockWordService) Snapshot(_ context.Context) (domain.Snapshot, error) {
	return m.snapshot.Clone(), m.snapshotErr
}

func (m *mockWordService) Refresh(_ context.Context) error {
	return nil
}
