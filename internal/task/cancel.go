package task

import (
	"sync"
	"sync/atomic"
)

// CancellationToken is a single-shot stop signal shared between the
// supervisor, which cancels it, and the worker, which observes it.
// The zero value is not usable; create tokens with NewCancellationToken.
type CancellationToken struct {
	once      sync.Once
	cancelled atomic.Bool
	done      chan struct{}
}

// NewCancellationToken returns a token that has not been cancelled.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{done: make(chan struct{})}
}

// Cancel sets the token. Calling it more than once has no further effect.
func (t *CancellationToken) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.done)
	})
}

// IsCancelled reports whether Cancel has been called. It never blocks.
func (t *CancellationToken) IsCancelled() bool {
	return t.cancelled.Load()
}

// Done returns a channel that is closed once the token is cancelled.
func (t *CancellationToken) Done() <-chan struct{} {
	return t.done
}
