package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	executed *int32
	block    chan struct{}
}

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		<-j.block
	}
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}

func TestPool_TryEnqueueBackpressure(t *testing.T) {
	var executed int32
	block := make(chan struct{})

	// One worker, queue of one: the first job occupies the worker, the
	// second fills the queue, the third must be rejected.
	pool := NewPool(1, 1)
	pool.Start()

	busy := &testJob{executed: &executed, block: block}
	pool.Enqueue(busy)

	// Give the worker time to pick up the blocking job.
	time.Sleep(50 * time.Millisecond)

	if !pool.TryEnqueue(&testJob{executed: &executed}) {
		t.Fatal("queue had capacity, TryEnqueue should succeed")
	}
	if pool.TryEnqueue(&testJob{executed: &executed}) {
		t.Fatal("queue was full, TryEnqueue should report false")
	}

	close(block)
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)
	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}
