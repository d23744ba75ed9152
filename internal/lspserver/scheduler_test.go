package lspserver

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/rpc"
)

func TestScheduler_SerializedMessageWaitsForConcurrentWork(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New("test", logging.Error, io.Discard, 0)
	ctx := NewContext(rpc.NewWriter(&out), logger)
	sched := NewScheduler(ctx)
	defer sched.Stop()

	ctx.initialized.Store(true)

	// Schedule a slow concurrency-safe completion request, then a
	// serialized shutdown request right behind it; shutdown must not
	// observe the pool as empty until completion's handler has run.
	slow := make(chan struct{})
	go func() {
		sched.Schedule(&rpc.Message{Kind: rpc.KindRequest, Method: "textDocument/completion", ID: rpc.NewIntID(1)})
		close(slow)
	}()

	time.Sleep(2 * time.Millisecond)
	sched.Schedule(&rpc.Message{Kind: rpc.KindRequest, Method: "shutdown", ID: rpc.NewIntID(2)})

	select {
	case <-slow:
	case <-time.After(time.Second):
		t.Fatalf("concurrent completion request never completed")
	}
}

func TestScheduler_IsExitRequestedAfterExit(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New("test", logging.Error, io.Discard, 0)
	ctx := NewContext(rpc.NewWriter(&out), logger)
	sched := NewScheduler(ctx)
	defer sched.Stop()

	ctx.initialized.Store(true)
	sched.Schedule(&rpc.Message{Kind: rpc.KindNotification, Method: "exit"})

	assert.Truef(t, sched.IsExitRequested(), "expected exit requested after processing \"exit\"")
}
