package server

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ShutdownHook manages graceful teardown of receiver resources (mDNS
// advertisement, listeners, HTTP server). Cleanup functions run in the order
// they were registered.
type ShutdownHook struct {
	mu    sync.RWMutex
	hooks []namedHook
}

type namedHook struct {
	name string
	fn   func() error
}

// NewShutdownHook creates a new shutdown hook registry
func NewShutdownHook() *ShutdownHook {
	return &ShutdownHook{
		hooks: make([]namedHook, 0),
	}
}

// Register adds a cleanup function to be called during shutdown.
func (s *ShutdownHook) Register(name string, cleanupFn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, namedHook{name: name, fn: cleanupFn})
	log.WithField("hook", name).Debug("registered shutdown hook")
}

// Shutdown executes all registered cleanup functions. It returns an error if
// any cleanup fails but keeps going so teardown is best effort.
func (s *ShutdownHook) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hooks) == 0 {
		return nil
	}

	var errs []error
	for _, hook := range s.hooks {
		log.WithField("hook", hook.name).Debug("running shutdown hook")
		if err := hook.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}

	// clear hooks after shutdown
	s.hooks = make([]namedHook, 0)

	if len(errs) > 0 {
		return fmt.Errorf("shutdown failed with %d error(s): %v", len(errs), errs)
	}
	return nil
}

// Count returns the number of registered hooks (useful for testing)
func (s *ShutdownHook) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hooks)
}
