// Package safe_close coordinates graceful shutdown of long-running
// components. Components Attach a run function that must exit when the
// close signal fires; SendCloseSignal broadcasts once, WaitClosed blocks
// until every attached component reported done.
package safe_close

import "sync"

// SafeClose is the shutdown coordinator.
type SafeClose struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	closeCh  chan struct{}
	closed   bool
	closeErr error
}

// NewSafeClose creates a SafeClose.
func NewSafeClose() *SafeClose {
	return &SafeClose{closeCh: make(chan struct{})}
}

// Attach starts fn on its own goroutine. fn must call done() when it has
// fully stopped and must return promptly once closeSignal is closed.
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeCh)
}

// SendCloseSignal broadcasts the close signal. The first non-nil err is
// kept and returned by WaitClosed. Safe to call multiple times.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeCh)
}

// WaitClosed blocks until every attached component is done and returns
// the error passed to the first SendCloseSignal, if any.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
