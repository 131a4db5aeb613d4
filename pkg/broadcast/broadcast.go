package broadcast

import (
	"context"
	"sync"
)

// Subscription receives messages from a Broadcaster.
type Subscription[T any] struct {
	ch     chan T
	closed bool
	mu     sync.Mutex
}

// C returns the receive channel. It is closed when the subscription ends.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close ends the subscription. Idempotent.
func (s *Subscription[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// send delivers without blocking; a full buffer drops the message.
func (s *Subscription[T]) send(msg T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- msg:
	default:
	}
}

// Broadcaster fans messages out to all active subscriptions.
// All methods are safe for concurrent use.
type Broadcaster[T any] struct {
	subs   map[*Subscription[T]]struct{}
	buffer int
	closed bool
	mu     sync.RWMutex
}

// New creates a broadcaster. Each subscription gets a buffered channel of
// the given size; a minimum of 1 is enforced so sends stay non-blocking.
func New[T any](buffer int) *Broadcaster[T] {
	return &Broadcaster[T]{
		subs:   make(map[*Subscription[T]]struct{}),
		buffer: max(buffer, 1),
	}
}

// Subscribe registers a new subscription. It is removed automatically
// when ctx is cancelled. Subscribing to a closed broadcaster returns an
// already-closed subscription.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription[T]{ch: make(chan T, b.buffer)}
	if b.closed {
		sub.Close()
		return sub
	}

	b.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			b.remove(sub)
		}()
	}

	return sub
}

// Publish delivers msg to every active subscription without blocking.
func (b *Broadcaster[T]) Publish(msg T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for sub := range b.subs {
		sub.send(msg)
	}
}

// Close shuts down the broadcaster and all subscriptions. Idempotent.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()
}

func (b *Broadcaster[T]) remove(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, sub)
	sub.Close()
}
