package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordbook/internal/core/domain"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
	"github.com/custodia-labs/wordbook/internal/logger"
)

// feed is a replay-latest, multi-subscriber snapshot broadcaster.
// Registration and publication happen under one lock, so a new subscriber
// sees the latest snapshot followed by exactly the snapshots published after it.
type feed struct {
	mu     sync.Mutex
	latest domain.Snapshot
	subs   map[string]*subscriber
	closed bool
}

func newFeed(initial []domain.Word) *feed {
	return &feed{
		latest: domain.Snapshot{Version: 1, Words: nonNil(initial)},
		subs:   make(map[string]*subscriber),
	}
}

// publish records words as the newest snapshot and queues it for every subscriber.
func (f *feed) publish(words []domain.Word) domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = domain.Snapshot{Version: f.latest.Version + 1, Words: nonNil(words)}
	for _, sub := range f.subs {
		sub.enqueue(f.latest.Clone())
	}
	logger.Debug("feed: published version %d (%d words) to %d subscribers",
		f.latest.Version, len(words), len(f.subs))
	return f.latest.Clone()
}

// snapshot returns a copy of the latest snapshot.
func (f *feed) snapshot() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest.Clone()
}

// subscribe registers a subscriber and queues the latest snapshot for it.
func (f *feed) subscribe(ctx context.Context, opts driving.SubscribeOptions) (*subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, domain.ErrClosed
	}

	sub := &subscriber{
		id:       uuid.New().String(),
		conflate: opts.Conflate,
		feed:     f,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		out:      make(chan domain.Snapshot),
	}
	sub.enqueue(f.latest.Clone())
	f.subs[sub.id] = sub

	go sub.run()
	go sub.watchContext(ctx)

	logger.Debug("feed: subscriber %s registered (conflate=%t, total=%d)", sub.id, sub.conflate, len(f.subs))
	return sub, nil
}

// remove unregisters a subscriber. Safe to call for unknown IDs.
func (f *feed) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; ok {
		delete(f.subs, id)
		logger.Debug("feed: subscriber %s removed (total=%d)", id, len(f.subs))
	}
}

// count returns the number of active subscribers.
func (f *feed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// close terminates every subscription and rejects new ones.
func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, sub := range f.subs {
		sub.terminate()
		delete(f.subs, id)
	}
}

// nonNil keeps empty snapshots encoding as [] rather than null.
func nonNil(words []domain.Word) []domain.Word {
	if words == nil {
		return []domain.Word{}
	}
	return words
}

// subscriber owns an unbounded FIFO of pending snapshots drained by its own
// goroutine, so publishing never blocks on a slow reader.
type subscriber struct {
	id       string
	conflate bool
	feed     *feed

	mu    sync.Mutex
	queue []domain.Snapshot

	wake      chan struct{}
	done      chan struct{}
	out       chan domain.Snapshot
	closeOnce sync.Once
}

var _ driving.Subscription = (*subscriber)(nil)

// ID identifies the subscription in logs.
func (s *subscriber) ID() string {
	return s.id
}

// Updates delivers snapshots until the subscription ends.
func (s *subscriber) Updates() <-chan domain.Snapshot {
	return s.out
}

// Close ends the subscription and unregisters it from the feed.
func (s *subscriber) Close() {
	s.terminate()
	s.feed.remove(s.id)
}

func (s *subscriber) terminate() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *subscriber) enqueue(snap domain.Snapshot) {
	s.mu.Lock()
	if s.conflate {
		s.queue = append(s.queue[:0], snap)
	} else {
		s.queue = append(s.queue, snap)
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// run forwards queued snapshots to the output channel in order.
func (s *subscriber) run() {
	defer close(s.out)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		next := s.queue[0]
		s.queue[0] = domain.Snapshot{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-s.done:
			return
		}
	}
}

func (s *subscriber) watchContext(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.Close()
	case <-s.done:
	}
}
