package lspserver

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsScheduledJobs(t *testing.T) {
	p := NewWorkerPool()
	defer p.Stop()

	var n int64
	for i := 0; i < 50; i++ {
		p.Schedule(func() { atomic.AddInt64(&n, 1) })
	}

	p.WaitForAll()

	if got := atomic.LoadInt64(&n); got != 50 {
		t.Fatalf("ran %d jobs, want 50", got)
	}
}

func TestWorkerPool_WaitForAllBlocksUntilDrained(t *testing.T) {
	p := NewWorkerPool()
	defer p.Stop()

	var done int32
	p.Schedule(func() {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&done, 1)
	})

	p.WaitForAll()

	if atomic.LoadInt32(&done) != 1 {
		t.Fatalf("WaitForAll returned before job finished")
	}
}

func TestWorkerPool_EmptyInitially(t *testing.T) {
	p := NewWorkerPool()
	defer p.Stop()

	if !p.Empty() {
		t.Fatalf("new pool should be empty")
	}
}
