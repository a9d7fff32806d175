package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driven"
)

const (
	listWordsSQL   = `SELECT word FROM word_table ORDER BY word ASC`
	insertWordSQL  = `INSERT INTO word_table (word) VALUES (?) ON CONFLICT(word) DO NOTHING`
	deleteWordsSQL = `DELETE FROM word_table`
)

// wordStore implements driven.WordStore.
// Each statement runs in its own autocommit transaction.
type wordStore struct {
	store *Store
}

var _ driven.WordStore = (*wordStore)(nil)

// ListAlphabetized returns every word in ascending order.
func (s *wordStore) ListAlphabetized(ctx context.Context) ([]domain.Word, error) {
	rows, err := s.store.db.QueryContext(ctx, listWordsSQL)
	if err != nil {
		return nil, domain.NewStorageError("listing words", err)
	}
	defer rows.Close()

	words := []domain.Word{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, domain.NewStorageError("scanning word", err)
		}
		words = append(words, domain.NewWord(text))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("listing words", err)
	}

	return words, nil
}

// Insert stores word unless it is already present.
// Reports whether a row was added.
func (s *wordStore) Insert(ctx context.Context, word domain.Word) (bool, error) {
	result, err := s.store.db.ExecContext(ctx, insertWordSQL, word.Text)
	if err != nil {
		return false, domain.NewStorageError("inserting word", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("inserting word", fmt.Errorf("rows affected: %w", err))
	}
	return affected > 0, nil
}

// DeleteAll removes every word and reports how many were removed.
func (s *wordStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.store.db.ExecContext(ctx, deleteWordsSQL)
	if err != nil {
		return 0, domain.NewStorageError("deleting words", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("deleting words", fmt.Errorf("rows affected: %w", err))
	}
	return affected, nil
}
