package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/learnkit/pkg/broadcast"
)

func recv[T any](t *testing.T, sub *broadcast.Subscription[T]) T {
	t.Helper()

	select {
	case msg, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		panic("unreachable")
	}
}

func TestBroadcaster_Publish(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all subscribers", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[string](4)
		defer bus.Close()

		a := bus.Subscribe(context.Background())
		b := bus.Subscribe(context.Background())

		bus.Publish("hello")

		assert.Equal(t, "hello", recv(t, a))
		assert.Equal(t, "hello", recv(t, b))
	})

	t.Run("slow subscriber drops instead of blocking", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[int](1)
		defer bus.Close()

		sub := bus.Subscribe(context.Background())

		// Nothing is draining sub: the second publish must not block.
		done := make(chan struct{})
		go func() {
			bus.Publish(1)
			bus.Publish(2)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}

		assert.Equal(t, 1, recv(t, sub))
	})

	t.Run("publish after close is a no-op", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[int](1)
		sub := bus.Subscribe(context.Background())
		bus.Close()

		bus.Publish(1)

		_, ok := <-sub.C()
		assert.False(t, ok, "subscription channel should be closed")
	})
}

func TestBroadcaster_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("context cancellation ends the subscription", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[int](1)
		defer bus.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := bus.Subscribe(ctx)
		cancel()

		select {
		case _, ok := <-sub.C():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("subscription did not close after context cancellation")
		}
	})

	t.Run("subscribe on closed broadcaster", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[int](1)
		bus.Close()

		sub := bus.Subscribe(context.Background())
		_, ok := <-sub.C()
		assert.False(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[int](1)
		bus.Close()
		bus.Close()

		sub := broadcast.New[int](1).Subscribe(context.Background())
		sub.Close()
		sub.Close()
	})
}
