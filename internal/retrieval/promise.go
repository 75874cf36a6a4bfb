package retrieval

import (
	"context"
	"fmt"
	"time"
)

// Promise is the eventual result of a computation started by Defer.
type Promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Defer runs fn in its own goroutine once delay has elapsed. A panic in fn
// rejects the promise instead of crashing the process.
func Defer[T any](delay time.Duration, fn func() (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("retrieval panicked: %v", r)
			}
		}()
		if delay > 0 {
			timer := time.NewTimer(delay)
			<-timer.C
		}
		p.val, p.err = fn()
	}()
	return p
}

// Done is closed once the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Then calls onOK or onErr after the promise settles. The returned channel is
// closed after the continuation has returned.
func (p *Promise[T]) Then(onOK func(T), onErr func(error)) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		<-p.done
		if p.err != nil {
			onErr(p.err)
			return
		}
		onOK(p.val)
	}()
	return finished
}

// Await blocks until the promise settles or ctx is done.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
