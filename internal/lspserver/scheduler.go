package lspserver

import (
	"sync"

	"github.com/nitrate-lang/no3/internal/rpc"
)

// Scheduler is the two-tier cooperative dispatcher described in
// Scheduler.cc: messages on the concurrent-safe allowlist run on the
// worker pool immediately; everything else first drains the pool to
// quiescence, then runs serialized inline on the calling goroutine (the
// reader loop), guarded by fruition so two serialized messages can
// never race each other either.
type Scheduler struct {
	ctx      *Context
	pool     *WorkerPool
	fruition sync.Mutex
}

// NewScheduler creates a Scheduler executing against ctx.
func NewScheduler(ctx *Context) *Scheduler {
	return &Scheduler{ctx: ctx, pool: NewWorkerPool()}
}

// Schedule dispatches msg per IsConcurrencySafe. It does not block for
// concurrency-safe messages; it blocks until prior work drains, and
// until msg itself finishes, for everything else.
func (s *Scheduler) Schedule(msg *rpc.Message) {
	if s.ctx.IsExitRequested() {
		return
	}

	if IsConcurrencySafe(msg.Method) {
		s.fruition.Lock()
		defer s.fruition.Unlock()

		s.pool.Schedule(func() {
			s.ctx.ExecuteRPC(msg)
		})

		return
	}

	s.fruition.Lock()
	defer s.fruition.Unlock()

	s.pool.WaitForAll()
	s.ctx.ExecuteRPC(msg)
}

// IsExitRequested reports whether the underlying Context has processed
// an "exit" notification.
func (s *Scheduler) IsExitRequested() bool {
	return s.ctx.IsExitRequested()
}

// Stop shuts down the worker pool. Call once the reader loop exits.
func (s *Scheduler) Stop() {
	s.pool.Stop()
}
