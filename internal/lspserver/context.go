// Package lspserver implements the LSP Context and cooperative
// scheduler: request/notification routing, lifecycle gating, and the
// worker pool that lets $/setTrace and textDocument/completion run
// concurrently with everything else, generalized from
// lsp/server/Context.cc and lsp/server/Scheduler.cc.
package lspserver

import (
	"encoding/json"
	"sync/atomic"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/nitrate-lang/no3/internal/document"
	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/rpc"
)

// statusCode mirrors the JSON-RPC/LSP error codes a response can carry.
type statusCode int

const (
	statusOK                   statusCode = 0
	statusMethodNotFound       statusCode = rpc.CodeMethodNotFound
	statusInvalidRequest       statusCode = rpc.CodeInvalidRequest
	statusServerNotInitialized statusCode = rpc.CodeServerNotInitialized
)

// Context holds all per-connection server state: the document store,
// logger, trace configuration and lifecycle flags. One Context backs
// one LSP session.
type Context struct {
	writer *rpc.Writer
	logger *logging.Logger
	docs   *document.Store

	initialized   atomic.Bool
	canSendTrace  atomic.Bool
	exitRequested atomic.Bool
	trace         atomic.Int32
}

// NewContext creates a Context writing responses/notifications through
// w and logging through logger. The document store always runs in
// incremental sync mode (spec.md §4.1's negotiated capability set).
func NewContext(w *rpc.Writer, logger *logging.Logger) *Context {
	ctx := &Context{
		writer: w,
		logger: logger,
		docs:   document.NewStore(document.SyncIncremental),
	}
	ctx.trace.Store(int32(traceMessages))

	installTraceBridge(ctx, logger)

	return ctx
}

// IsExitRequested reports whether an "exit" notification has been
// processed.
func (c *Context) IsExitRequested() bool {
	return c.exitRequested.Load()
}

func (c *Context) sendNotification(method string, params any) {
	if err := c.writer.Write(rpc.NewNotification(method, params)); err != nil {
		c.logger.Errorf("sendNotification(%q): write: %v", method, err)
	}
}

func (c *Context) sendResult(id rpc.ID, result any) {
	if err := c.writer.Write(rpc.NewResultResponse(id, result)); err != nil {
		c.logger.Errorf("sendResult: write: %v", err)
	}
}

func (c *Context) sendError(id rpc.ID, code statusCode, message string) {
	if err := c.writer.Write(rpc.NewErrorResponse(id, int(code), message)); err != nil {
		c.logger.Errorf("sendError: write: %v", err)
	}
}

// concurrentSafeMethods is the allowlist the scheduler dispatches to
// the worker pool; every other message drains the pool and runs inline
// (Scheduler::PImpl::IsConcurrentRequest in Scheduler.cc).
var concurrentSafeMethods = map[string]bool{
	"$/setTrace":              true,
	"textDocument/completion": true,
}

// IsConcurrencySafe reports whether method may run on the worker pool
// concurrently with other in-flight work.
func IsConcurrencySafe(method string) bool {
	return concurrentSafeMethods[method]
}

// ExecuteRPC routes message to its handler, gated by the lifecycle
// table: initialize/initialized/exit always run; other requests before
// initialize get ServerNotInitialized; other notifications before
// initialize are dropped with a warning (Context::ExecuteRPC).
func (c *Context) ExecuteRPC(msg *rpc.Message) {
	switch msg.Kind {
	case rpc.KindNotification:
		c.executeNotification(msg)
	case rpc.KindRequest:
		c.executeRequest(msg)
	case rpc.KindResponse:
		// Clients do not normally send responses to a server; ignore.
	}
}

func (c *Context) executeRequest(msg *rpc.Message) {
	isInitialize := msg.Method == "initialize"

	if !c.initialized.Load() && !isInitialize {
		c.logger.Warningf("executeRequest(%q): not initialized, rejecting", msg.Method)
		c.sendError(msg.ID, statusServerNotInitialized, "server not initialized")
		return
	}

	switch msg.Method {
	case "initialize":
		c.handleInitialize(msg)
	case "shutdown":
		c.handleShutdown(msg)
	case "textDocument/completion":
		c.handleCompletion(msg)
	default:
		if isDollarMethod(msg.Method) {
			c.logger.Debugf("executeRequest(%q): ignoring unroutable $/ request", msg.Method)
		} else {
			c.logger.Infof("executeRequest(%q): no route, MethodNotFound", msg.Method)
		}
		c.sendError(msg.ID, statusMethodNotFound, "method not found: "+msg.Method)
	}
}

func (c *Context) executeNotification(msg *rpc.Message) {
	isLifecycle := msg.Method == "initialized" || msg.Method == "exit"

	if !c.initialized.Load() && !isLifecycle {
		if isDollarMethod(msg.Method) {
			c.logger.Debugf("executeNotification(%q): not initialized, dropping $/ notification", msg.Method)
		} else {
			c.logger.Warningf("executeNotification(%q): not initialized, dropping", msg.Method)
		}
		return
	}

	switch msg.Method {
	case "initialized":
		c.handleInitialized(msg)
	case "exit":
		c.handleExit(msg)
	case "$/setTrace":
		c.handleSetTrace(msg)
	case "textDocument/didOpen":
		c.handleDidOpen(msg)
	case "textDocument/didChange":
		c.handleDidChange(msg)
	case "textDocument/didClose":
		c.handleDidClose(msg)
	case "textDocument/didSave":
		c.handleDidSave(msg)
	default:
		if isDollarMethod(msg.Method) {
			c.logger.Debugf("executeNotification(%q): ignoring unroutable $/ notification", msg.Method)
		} else {
			c.logger.Infof("executeNotification(%q): no route, dropping", msg.Method)
		}
	}
}

func isDollarMethod(method string) bool {
	return len(method) >= 2 && method[:2] == "$/"
}

// initializeParams only extracts the one field VerifyInitializeRequest
// / RequestInitialize in initialize.cc actually reads: "trace". The
// rest of the real InitializeParams payload (capabilities, workspace
// folders, etc.) is accepted but unused, matching this spec's scope.
type initializeParams struct {
	Trace *string `json:"trace,omitempty"`
}

func (c *Context) handleInitialize(msg *rpc.Message) {
	var params initializeParams
	if msg.Params != nil {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			c.sendError(msg.ID, statusInvalidRequest, "invalid initialize params: "+err.Error())
			return
		}
	}

	if params.Trace != nil {
		c.trace.Store(int32(parseTraceValue(*params.Trace)))
	}

	c.logger.Debugf("handleInitialize: initialize requested")
	c.initialized.Store(true)
	c.canSendTrace.Store(true)

	c.sendResult(msg.ID, buildInitializeResult())
}

func (c *Context) handleInitialized(_ *rpc.Message) {
	c.logger.Debugf("handleInitialized: client ready")
}

func (c *Context) handleShutdown(msg *rpc.Message) {
	c.logger.Debugf("handleShutdown: shutdown requested")
	c.sendResult(msg.ID, nil)
}

func (c *Context) handleExit(_ *rpc.Message) {
	c.logger.Debugf("handleExit: exit requested")
	c.exitRequested.Store(true)
}

type setTraceParams struct {
	Value string `json:"value"`
}

func (c *Context) handleSetTrace(msg *rpc.Message) {
	var params setTraceParams
	if msg.Params != nil {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			c.logger.Warningf("handleSetTrace: invalid params: %v", err)
			return
		}
	}

	c.trace.Store(int32(parseTraceValue(params.Value)))
}

func (c *Context) handleCompletion(msg *rpc.Message) {
	// Completion has no language-aware backend in this driver (the
	// compiler frontend is out of scope); an empty, non-incomplete list
	// correctly tells the client completion is supported but currently
	// has nothing to offer for the position requested.
	c.sendResult(msg.ID, &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}})
}

func (c *Context) handleDidOpen(msg *rpc.Message) {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.logger.Warningf("handleDidOpen: invalid params: %v", err)
		return
	}

	uri := string(params.TextDocument.URI)
	if err := c.docs.DidOpen(uri, int(params.TextDocument.Version), []byte(params.TextDocument.Text)); err != nil {
		c.logger.Warningf("handleDidOpen: %v", err)
	}
}

func (c *Context) handleDidChange(msg *rpc.Message) {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.logger.Warningf("handleDidChange: invalid params: %v", err)
		return
	}

	uri := string(params.TextDocument.URI)
	version := int(params.TextDocument.Version)

	changes := make([]document.Change, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		if ev, ok := raw.(protocol.TextDocumentContentChangeEvent); ok {
			changes = append(changes, toDocumentChange(ev))
		}
	}

	if len(changes) == 0 {
		return
	}

	var err error
	if c.docs.SyncKind() == document.SyncFull {
		err = c.docs.DidChangeFull(uri, version, []byte(changes[len(changes)-1].Text))
	} else {
		// DidChangeIncremental applies each change in order, and itself
		// treats a range-less change as a full-document replacement
		// mid-batch (spec.md §4.4.3's per-change dispatch).
		err = c.docs.DidChangeIncremental(uri, version, changes)
	}

	if err != nil {
		c.logger.Warningf("handleDidChange: %v", err)
	}
}

func toDocumentChange(ev protocol.TextDocumentContentChangeEvent) document.Change {
	if ev.Range == nil {
		return document.Change{HasRange: false, Text: ev.Text}
	}

	return document.Change{
		HasRange:  true,
		StartLine: int(ev.Range.Start.Line),
		StartCol:  int(ev.Range.Start.Character),
		EndLine:   int(ev.Range.End.Line),
		EndCol:    int(ev.Range.End.Character),
		Text:      ev.Text,
	}
}

func (c *Context) handleDidClose(msg *rpc.Message) {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.logger.Warningf("handleDidClose: invalid params: %v", err)
		return
	}

	if err := c.docs.DidClose(string(params.TextDocument.URI)); err != nil {
		c.logger.Warningf("handleDidClose: %v", err)
	}
}

func (c *Context) handleDidSave(msg *rpc.Message) {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.logger.Warningf("handleDidSave: invalid params: %v", err)
		return
	}

	var full []byte
	if params.Text != nil {
		full = []byte(*params.Text)
	}

	if warned := c.docs.DidSave(string(params.TextDocument.URI), full); warned {
		c.logger.Warningf("handleDidSave: %q is not open, ignoring", params.TextDocument.URI)
	}
}
