package grape

import "context"

// Future is resolved once with the service of type T.
type Future[T any] struct {
	done  chan struct{}
	sub   *Subscription
	value T
}

// Returns Future resolved with service of type T.
// If T is already registered Future is resolved before Await returns,
// otherwise it is resolved on the goroutine that registers T.
// Future never fails on its own: use Wait with a deadline to bound waiting.
func Await[T any](r *Registry) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.sub = Get(r, f.resolve)

	return f
}

func (f *Future[T]) resolve(service T) {
	f.value = service
	close(f.done)
}

// Returns channel closed once Future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Returns service and true if Future is resolved, zero value and false otherwise.
func (f *Future[T]) Value() (T, bool) {
	select {
	case <-f.done:
		return f.value, true
	default:
		var zero T
		return zero, false
	}
}

// Blocks until Future is resolved or ctx is done.
// Giving up on ctx does not cancel Future, call Cancel for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	if ctx == nil {
		var zero T
		return zero, ErrNilContext
	}

	select {
	case <-f.done:
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Stops waiting for the service and releases the callback held by Registry.
// Cancelled Future is never resolved.
// Returns false if Future was already resolved, cancelled or dropped after a panicking callback.
func (f *Future[T]) Cancel() bool {
	return f.sub.Cancel()
}
