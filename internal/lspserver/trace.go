package lspserver

import (
	"regexp"

	"github.com/nitrate-lang/no3/internal/logging"
)

// traceValue is the $/setTrace verbosity level, mirroring
// Context::TraceValue (off/messages/verbose) in Context.hh.
type traceValue int

const (
	traceOff traceValue = iota
	traceMessages
	traceVerbose
)

func parseTraceValue(s string) traceValue {
	switch s {
	case "messages":
		return traceMessages
	case "verbose":
		return traceVerbose
	default:
		return traceOff
	}
}

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// logTraceParams is the $/logTrace notification payload (LSP §Trace
// value): a free-form message plus an optional verbose counterpart.
// glsp's protocol_3_16 package does not expose this type directly, so
// it is defined locally with the wire shape the LSP spec fixes.
type logTraceParams struct {
	Message string `json:"message"`
	Verbose string `json:"verbose,omitempty"`
}

// installTraceBridge subscribes logger to mirror every record at Trace
// level or above into a $/logTrace notification, gated by ctx's current
// trace setting, matching the subscriber Context installs in its
// constructor (Context.cc). Subscription only takes effect once
// canSendTrace is true, i.e. after "initialize" completes.
func installTraceBridge(ctx *Context, logger *logging.Logger) {
	logger.Subscribe(func(rec logging.Record) {
		if !ctx.canSendTrace.Load() {
			return
		}

		tv := traceValue(ctx.trace.Load())
		switch tv {
		case traceOff:
			return
		case traceMessages:
			if rec.Level <= logging.Trace {
				return
			}
		case traceVerbose:
		}

		msg := stripANSI(rec.Message)
		ctx.sendNotification("$/logTrace", logTraceParams{Message: msg})
	})
}
