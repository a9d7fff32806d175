package driving

import (
	"context"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

// WordService is the observable word store: a durable, deduplicated,
// alphabetically ordered collection of strings with a live subscription feed.
type WordService interface {
	// Insert adds word if it is not already present. A duplicate is a silent no-op.
	// Blocks until the word is durably committed. On success every active
	// subscriber receives the updated snapshot.
	Insert(ctx context.Context, word string) error

	// DeleteAll removes every word. Idempotent; always publishes a snapshot.
	DeleteAll(ctx context.Context) error

	// ObserveAlphabetized subscribes to the live ordered view. The subscription
	// immediately delivers the current snapshot and then every later snapshot
	// in commit order, until it is closed or ctx is cancelled.
	ObserveAlphabetized(ctx context.Context, opts ...SubscribeOption) (Subscription, error)

	// Snapshot returns the latest published snapshot.
	Snapshot(ctx context.Context) (domain.Snapshot, error)

	// Refresh re-reads the durable medium and publishes a snapshot if the
	// contents differ from the latest one.
	Refresh(ctx context.Context) error
}

// Subscription is one subscriber's view of the snapshot feed.
type Subscription interface {
	// ID identifies the subscription in logs.
	ID() string

	// Updates delivers snapshots. The channel is closed when the
	// subscription ends.
	Updates() <-chan domain.Snapshot

	// Close ends the subscription. Safe to call more than once.
	Close()
}

// SubscribeOptions configures delivery for a subscription.
type SubscribeOptions struct {
	// Conflate keeps only the newest undelivered snapshot instead of
	// queueing every snapshot for a slow reader.
	Conflate bool
}

// SubscribeOption mutates SubscribeOptions.
type SubscribeOption func(*SubscribeOptions)

// WithConflation makes a slow subscriber skip to the newest snapshot.
func WithConflation() SubscribeOption {
	return func(o *SubscribeOptions) {
		o.Conflate = true
	}
}

// ApplySubscribeOptions folds opts into a SubscribeOptions value.
func ApplySubscribeOptions(opts ...SubscribeOption) SubscribeOptions {
	var o SubscribeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
