// Package rpc implements JSON-RPC 2.0 framing over the HTTP-style
// length-prefixed byte stream used by the Language Server Protocol:
// reading and classifying inbound messages, and writing framed outbound
// responses/notifications.
package rpc

import "encoding/json"

// Standard JSON-RPC 2.0 / LSP error codes used by the dispatcher.
const (
	CodeParseError           = -32700
	CodeInvalidRequest       = -32600
	CodeMethodNotFound       = -32601
	CodeInvalidParams        = -32602
	CodeInternalError        = -32603
	CodeServerNotInitialized = -32002
)

// Kind classifies a parsed message.
type Kind int

const (
	// KindRequest carries an id and expects a Response.
	KindRequest Kind = iota
	// KindNotification carries no id and is never responded to.
	KindNotification
	// KindResponse is an inbound reply to a request this server sent
	// (not generally produced by LSP clients, but must not crash the
	// reader loop if one arrives).
	KindResponse
)

// ID is either a JSON-RPC integer or string request id.
type ID struct {
	str      string
	num      int64
	isString bool
}

// NewIntID builds an integer ID.
func NewIntID(v int64) ID { return ID{num: v} }

// NewStringID builds a string ID.
func NewStringID(v string) ID { return ID{str: v, isString: true} }

// IsString reports whether the ID was carried as a JSON string.
func (id ID) IsString() bool { return id.isString }

// Int returns the integer value (valid only if !IsString()).
func (id ID) Int() int64 { return id.num }

// String returns the string value (valid only if IsString()).
func (id ID) String() string { return id.str }

// MarshalJSON emits the ID in whichever wire form it was constructed with.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isString {
		return json.Marshal(id.str)
	}

	return json.Marshal(id.num)
}

// Message is the tagged union of {Request, Notification, Response} read
// off the wire, per spec.md §3/§4.3.
type Message struct {
	Kind   Kind
	Method string
	ID     ID
	Params json.RawMessage

	// Result/Err are only populated for KindResponse.
	Result json.RawMessage
	Err    *ErrorObject
}

// ErrorObject is the JSON-RPC {code, message} error shape.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// IsRequest reports whether m expects a Response.
func (m *Message) IsRequest() bool { return m.Kind == KindRequest }

// IsNotification reports whether m must never be responded to.
func (m *Message) IsNotification() bool { return m.Kind == KindNotification }

// wireEnvelope is the outbound wire envelope for a response or notification
// body assembled by handlers (the server never originates requests in
// this spec, but notifications such as $/logTrace use this shape).
type wireEnvelope struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      *ID          `json:"id,omitempty"`
	Method  string       `json:"method,omitempty"`
	Params  any          `json:"params,omitempty"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// NewNotification builds the wire body for an outbound notification.
func NewNotification(method string, params any) any {
	return wireEnvelope{JSONRPC: "2.0", Method: method, Params: params}
}

// NewResultResponse builds the wire body for a successful response to id.
func NewResultResponse(id ID, result any) any {
	return wireEnvelope{JSONRPC: "2.0", ID: &id, Result: result}
}

// NewErrorResponse builds the wire body for a failed response to id.
func NewErrorResponse(id ID, code int, message string) any {
	return wireEnvelope{JSONRPC: "2.0", ID: &id, Error: &ErrorObject{Code: code, Message: message}}
}
