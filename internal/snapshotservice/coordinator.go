package snapshotservice

import (
	"context"
	"sync"
)

// coordinator serializes rebuild requests so at most one rebuild runs at a
// time. Requests arriving while a rebuild is in flight collapse into a single
// follow-up rebuild that starts as soon as the current one finishes, so the
// cache always ends up reflecting the store state after the last mutation.
type coordinator struct {
	rebuild func(ctx context.Context) error

	mu      sync.Mutex
	running bool
	pending bool
	waiters []chan error
}

func newCoordinator(rebuild func(ctx context.Context) error) *coordinator {
	return &coordinator{rebuild: rebuild}
}

// Invalidate requests a rebuild that observes every mutation applied before
// the call, and returns once that rebuild has completed. A caller joining
// while a rebuild is already reading the store is served by the follow-up
// rebuild, never by the stale in-flight one.
func (c *coordinator) Invalidate(ctx context.Context) error {
	ch := make(chan error, 1)

	c.mu.Lock()
	c.waiters = append(c.waiters, ch)

	if c.running {
		c.pending = true
		c.mu.Unlock()
	} else {
		c.running = true
		c.mu.Unlock()

		go c.run()
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		// The rebuild itself keeps going: it serves every other waiter.
		return ctx.Err()
	}
}

func (c *coordinator) run() {
	for {
		c.mu.Lock()
		waiters := c.waiters
		c.waiters = nil
		c.pending = false
		c.mu.Unlock()

		// Background context: the rebuild is shared between waiters, so a
		// single caller's cancellation must not abort it for the rest.
		err := c.rebuild(context.Background())

		for _, ch := range waiters {
			ch <- err
		}

		c.mu.Lock()
		if !c.pending && len(c.waiters) == 0 {
			c.running = false
			c.mu.Unlock()

			return
		}
		c.mu.Unlock()
	}
}
