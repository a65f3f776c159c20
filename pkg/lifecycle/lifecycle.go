// Package lifecycle coordinates subsystem startup and graceful shutdown.
// Subsystems register shutdown hooks and startup tracking against a shared
// Coordinator; the service entrypoint drives Shutdown with a deadline.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether all tracked subsystems finished startup.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator owns the service-wide context and the set of registered
// shutdown hooks. A single Coordinator is shared by all subsystems.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	hooks   sync.WaitGroup
	startup sync.WaitGroup
	pending atomic.Int64
}

// New creates a Coordinator with a fresh root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context returns the service-wide context. It is canceled when Shutdown
// begins; hooks typically block on it.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnShutdown runs fn in its own goroutine and waits for it during Shutdown.
// Hooks usually block on Context().Done() before cleaning up.
func (c *Coordinator) OnShutdown(fn func()) {
	c.hooks.Add(1)
	go func() {
		defer c.hooks.Done()
		fn()
	}()
}

// TrackStartup registers a subsystem whose startup completion should gate
// readiness. The returned function must be called exactly once when the
// subsystem is ready.
func (c *Coordinator) TrackStartup() func() {
	c.startup.Add(1)
	c.pending.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.pending.Add(-1)
			c.startup.Done()
		})
	}
}

// WaitForStartup blocks until every tracked subsystem reported readiness.
func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()
}

// Ready reports whether all tracked subsystems completed startup.
func (c *Coordinator) Ready() bool {
	return c.pending.Load() == 0
}

// Shutdown cancels the service context and waits for all shutdown hooks to
// finish, up to the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.hooks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
