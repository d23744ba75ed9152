package lspserver

import (
	"errors"
	"io"

	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/rpc"
)

// maxConsecutiveFailures is the desync threshold from spec.md §4.3:
// after this many malformed frames in a row, the reader loop gives up
// rather than spin forever on a corrupted stream.
const maxConsecutiveFailures = 3

// Serve runs the LSP reader loop against r, dispatching every message
// through a Scheduler and writing responses/notifications to w, until
// the stream ends, exit is requested, or the stream desyncs.
func Serve(r io.Reader, w io.Writer, logger *logging.Logger) error {
	reader := rpc.NewReader(r)
	writer := rpc.NewWriter(w)

	ctx := NewContext(writer, logger)
	sched := NewScheduler(ctx)
	defer sched.Stop()

	failures := 0

	for {
		msg, err := reader.ReadMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			failures++
			logger.Warningf("Serve: malformed message (%d/%d): %v", failures, maxConsecutiveFailures, err)

			if failures >= maxConsecutiveFailures {
				return err
			}

			continue
		}

		failures = 0

		sched.Schedule(msg)

		if sched.IsExitRequested() {
			return nil
		}
	}
}
