package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func shutdownPool(t *testing.T, p *Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.Shutdown(ctx)
}

func TestSubmit_RunsTaskAndReturnsItsError(t *testing.T) {
	p := New(nil, zap.NewNop())
	defer shutdownPool(t, p)

	var ran atomic.Bool
	if err := p.Submit(context.Background(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !ran.Load() {
		t.Fatal("task did not run")
	}

	wantErr := errors.New("task failed")
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Submit() error = %v, want %v", err, wantErr)
	}
}

func TestSubmit_ConcurrentTasksAllComplete(t *testing.T) {
	p := New(&Config{MaxWorkers: 4, QueueSize: 64}, zap.NewNop())
	defer shutdownPool(t, p)

	const tasks = 32
	var completed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < tasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Submit(context.Background(), func(ctx context.Context) error {
				completed.Add(1)
				return nil
			})
			if err != nil {
				t.Errorf("Submit() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := completed.Load(); got != tasks {
		t.Fatalf("completed = %d, want %d", got, tasks)
	}
	if got := p.ActiveCount(); got != 0 {
		t.Fatalf("ActiveCount() after drain = %d, want 0", got)
	}
}

func TestSubmitAsync_FullQueueReturnsError(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, zap.NewNop())
	defer shutdownPool(t, p)

	block := make(chan struct{})
	release := func() { close(block) }
	defer release()

	// occupy the single worker
	if err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		<-block
		return nil
	}); err != nil {
		t.Fatalf("SubmitAsync() error = %v", err)
	}

	// fill the queue, then expect rejection
	var sawFull bool
	for i := 0; i < 10; i++ {
		err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
		if errors.Is(err, ErrWorkerPoolFull) {
			sawFull = true
			break
		}
	}
	if !sawFull {
		t.Fatal("expected ErrWorkerPoolFull once queue and worker are saturated")
	}
}

func TestShutdown_RejectsNewSubmissions(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 8}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !p.IsClosed() {
		t.Fatal("IsClosed() = false after Shutdown")
	}

	err := p.Submit(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrWorkerPoolClosed) {
		t.Fatalf("Submit() after shutdown error = %v, want %v", err, ErrWorkerPoolClosed)
	}

	// second shutdown is a no-op
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
}

func TestGetMetrics(t *testing.T) {
	p := New(&Config{MaxWorkers: 3, QueueSize: 16}, zap.NewNop())
	defer shutdownPool(t, p)

	m := p.GetMetrics()
	if m.MaxWorkers != 3 {
		t.Errorf("MaxWorkers = %d, want 3", m.MaxWorkers)
	}
	if m.QueueCapacity != 16 {
		t.Errorf("QueueCapacity = %d, want 16", m.QueueCapacity)
	}
	if m.IsClosed {
		t.Error("IsClosed = true for a running pool")
	}
}
