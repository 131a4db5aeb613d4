package async

import (
	"context"
)

// Future is the pending result of a Run call.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Run executes fn in a new goroutine and returns its Future.
// A pre-cancelled context short-circuits without invoking fn.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the work completes, or until ctx is cancelled.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the work completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports completion without blocking.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
