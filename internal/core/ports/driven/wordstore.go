package driven

import (
	"context"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

// WordStore is the durable medium behind the observable word store.
// It holds a single table with one unique text column and supports
// exactly three logical operations. Implementations must make each call
// atomic and report medium faults as errors matching domain.ErrStorageFailure.
type WordStore interface {
	// ListAlphabetized returns every word sorted ascending by code-point order.
	ListAlphabetized(ctx context.Context) ([]domain.Word, error)

	// Insert adds word unless it is already present.
	// Returns true if a row was added, false if the word already existed.
	Insert(ctx context.Context, word domain.Word) (bool, error)

	// DeleteAll removes every word and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// ChangeNotifier reports that the durable medium may have been modified
// by another process. Notifications carry no payload; the receiver
// re-reads the store to find out what changed.
type ChangeNotifier interface {
	// Watch calls onChange whenever an external modification is suspected.
	// It blocks until ctx is cancelled or an unrecoverable error occurs.
	Watch(ctx context.Context, onChange func()) error
}
