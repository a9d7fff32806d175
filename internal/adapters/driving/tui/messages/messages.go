// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
)

// Subscribed carries a new subscription to the model.
type Subscribed struct {
	Subscription driving.Subscription
	Err          error
}

// SnapshotReceived carries the latest ordered word list.
type SnapshotReceived struct {
	Snapshot domain.Snapshot
}

// SubscriptionClosed signals that the feed ended.
type SubscriptionClosed struct{}

// WordAdded reports the outcome of an insert.
type WordAdded struct {
	Word string
	Err  error
}

// WordsCleared reports the outcome of a clear.
type WordsCleared struct {
	Err error
}

// Focus identifies which component receives key presses.
type Focus int

const (
	// FocusInput routes keys to the word input.
	FocusInput Focus = iota
	// FocusList routes keys to the word list.
	FocusList
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusList:
		return "list"
	default:
		return "unknown"
	}
}
