// Package writequeue serializes write operations per document. Appends
// to the same document id are processed in FIFO order by a dedicated
// worker while appends to different documents proceed independently,
// which also keeps concurrent sqlite writers from tripping over
// "database is locked".
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned when a document's queue is at capacity.
	ErrQueueFull = errors.New("write queue is full")
	// ErrQueueClosed is returned after the manager shut down.
	ErrQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout is returned when an operation exceeds the write timeout.
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config tunes the write queue manager.
type Config struct {
	// QueueCapacity is the per-document queue capacity, default 100.
	QueueCapacity int
	// WriteTimeout bounds a single operation, default 30s.
	WriteTimeout time.Duration
	// IdleTimeout controls reclamation of idle document queues, default 10m.
	IdleTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// docWriteQueue is the queue for a single document id.
type docWriteQueue struct {
	key      string
	ch       chan writeOp
	lastUsed atomic.Int64
	closed   atomic.Bool
	workerWg sync.WaitGroup
	stopCh   chan struct{}
}

// Manager owns the per-document write queues.
type Manager struct {
	config Config
	logger *zap.Logger

	queues sync.Map // map[string]*docWriteQueue

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	cleanupWg   sync.WaitGroup
	cleanupDone chan struct{}
}

// New creates a write queue manager. A nil cfg uses DefaultConfig, a nil
// logger uses a nop logger.
func New(cfg *Config, logger *zap.Logger) *Manager {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 100
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		config:      *cfg,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}

	m.cleanupWg.Add(1)
	go m.cleanupIdleQueues()

	m.logger.Info("write queue manager started",
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Duration("writeTimeout", cfg.WriteTimeout),
		zap.Duration("idleTimeout", cfg.IdleTimeout))

	return m
}

// Execute runs fn on the worker for the given document id. Operations
// for the same id run serially in FIFO order.
func (m *Manager) Execute(ctx context.Context, docID string, fn func() error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrQueueClosed
	}
	m.mu.RUnlock()

	queue := m.getOrCreateQueue(docID)
	if queue == nil {
		return ErrQueueClosed
	}

	result := make(chan error, 1)
	op := writeOp{
		ctx:    ctx,
		fn:     fn,
		result: result,
	}

	select {
	case queue.ch <- op:
	default:
		return ErrQueueFull
	}

	timeout := m.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return ErrWriteTimeout
	case <-m.ctx.Done():
		return ErrQueueClosed
	}
}

func (m *Manager) getOrCreateQueue(docID string) *docWriteQueue {
	if v, ok := m.queues.Load(docID); ok {
		queue := v.(*docWriteQueue)
		if !queue.closed.Load() {
			queue.lastUsed.Store(time.Now().UnixNano())
			return queue
		}
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil
	}
	m.mu.RUnlock()

	queue := &docWriteQueue{
		key:    docID,
		ch:     make(chan writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
	}
	queue.lastUsed.Store(time.Now().UnixNano())

	actual, loaded := m.queues.LoadOrStore(docID, queue)
	if loaded {
		existing := actual.(*docWriteQueue)
		if !existing.closed.Load() {
			// discard the new queue, the live one wins
			close(queue.stopCh)
			existing.lastUsed.Store(time.Now().UnixNano())
			return existing
		}
		// existing queue already stopped, replace it with the new one,
		// whose stopCh must stay open for its worker
		m.queues.Store(docID, queue)
	}

	queue.workerWg.Add(1)
	go m.worker(queue)

	m.logger.Debug("created write queue for document",
		zap.String("docId", docID),
		zap.Int("capacity", m.config.QueueCapacity))

	return queue
}

func (m *Manager) worker(queue *docWriteQueue) {
	defer queue.workerWg.Done()
	defer func() {
		queue.closed.Store(true)
		m.logger.Debug("write queue worker stopped", zap.String("docId", queue.key))
	}()

	for {
		select {
		case <-m.ctx.Done():
			m.drainQueue(queue)
			return
		case <-queue.stopCh:
			m.drainQueue(queue)
			return
		case op, ok := <-queue.ch:
			if !ok {
				return
			}
			m.executeOp(queue, op)
		}
	}
}

func (m *Manager) executeOp(queue *docWriteQueue, op writeOp) {
	queue.lastUsed.Store(time.Now().UnixNano())

	select {
	case <-op.ctx.Done():
		op.result <- op.ctx.Err()
		return
	default:
	}

	err := op.fn()

	select {
	case op.result <- err:
	default:
	}
}

func (m *Manager) drainQueue(queue *docWriteQueue) {
	for {
		select {
		case op, ok := <-queue.ch:
			if !ok {
				return
			}
			op.result <- ErrQueueClosed
		default:
			return
		}
	}
}

// cleanupIdleQueues periodically stops workers for documents that have
// not been written to within IdleTimeout.
func (m *Manager) cleanupIdleQueues() {
	defer m.cleanupWg.Done()

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			close(m.cleanupDone)
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.config.IdleTimeout).UnixNano()
			m.queues.Range(func(key, value any) bool {
				queue := value.(*docWriteQueue)
				if queue.lastUsed.Load() < cutoff && len(queue.ch) == 0 {
					if queue.closed.CompareAndSwap(false, true) {
						close(queue.stopCh)
						m.queues.Delete(key)
					}
				}
				return true
			})
		}
	}
}

// Shutdown stops all workers and waits for in-flight operations, bounded
// by ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()

	done := make(chan struct{})
	go func() {
		m.queues.Range(func(_, value any) bool {
			value.(*docWriteQueue).workerWg.Wait()
			return true
		})
		m.cleanupWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
