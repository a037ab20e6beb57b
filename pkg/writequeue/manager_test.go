package writequeue

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestExecute_SerializesSameDocument(t *testing.T) {
	m := New(nil, zap.NewNop())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	const workers = 20
	var current, max, counter int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "doc-1", func() error {
				mu.Lock()
				current++
				if current > max {
					max = current
				}
				counter++
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				current--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("Execute failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if max != 1 {
		t.Errorf("operations on the same document overlapped: max concurrency %d", max)
	}
	if counter != workers {
		t.Errorf("executed %d operations, want %d", counter, workers)
	}
}

func TestExecute_DifferentDocumentsDoNotBlock(t *testing.T) {
	m := New(nil, zap.NewNop())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Execute(context.Background(), "doc-slow", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	done := make(chan error, 1)
	go func() {
		done <- m.Execute(context.Background(), "doc-fast", func() error { return nil })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Execute on independent document failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("write to an independent document was blocked")
	}
	close(release)
}

func TestExecute_ReplacesIdleStoppedQueue(t *testing.T) {
	m := New(nil, zap.NewNop())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	ran := 0
	if err := m.Execute(context.Background(), "doc-1", func() error {
		ran++
		return nil
	}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// The idle cleaner marks a queue closed before it deletes the map
	// entry; a caller can load the stopped queue inside that window.
	v, ok := m.queues.Load("doc-1")
	if !ok {
		t.Fatal("queue for doc-1 not found")
	}
	queue := v.(*docWriteQueue)
	if !queue.closed.CompareAndSwap(false, true) {
		t.Fatal("queue unexpectedly already closed")
	}

	if err := m.Execute(context.Background(), "doc-1", func() error {
		ran++
		return nil
	}); err != nil {
		t.Fatalf("Execute through replacement queue failed: %v", err)
	}
	if ran != 2 {
		t.Errorf("executed %d operations, want 2", ran)
	}
}

func TestExecute_AfterShutdown(t *testing.T) {
	m := New(nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if err := m.Execute(context.Background(), "doc-1", func() error { return nil }); err != ErrQueueClosed {
		t.Errorf("Execute after shutdown = %v, want ErrQueueClosed", err)
	}
}
