package lspserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "no3"
const serverVersion = "0.1.0"

func boolPtr(b bool) *bool { return &b }

// capabilities embeds protocol.ServerCapabilities (LSP 3.16, the version
// glsp's type package targets) and adds positionEncoding, a 3.17
// addition the spec requires advertising but the embedded struct has no
// field for; anonymous embedding flattens it into the same JSON object.
type capabilities struct {
	protocol.ServerCapabilities
	PositionEncoding string `json:"positionEncoding"`
}

// initializeResult is the initialize response body; it mirrors
// protocol.InitializeResult's shape but swaps in our extended
// capabilities type.
type initializeResult struct {
	Capabilities capabilities                         `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// buildInitializeResult mirrors the capability set sent by
// RequestInitialize in lsp/support/route/initialize.cc: UTF-16 position
// encoding, incremental sync with save.includeText, and completion with
// "." and "::" as trigger characters. This deliberately omits hover,
// definition, references, rename, semantic tokens, and code actions —
// those are out of scope here even though the teacher's InitializeResult
// advertises them.
func buildInitializeResult() initializeResult {
	changeKind := protocol.TextDocumentSyncKindIncremental
	version := serverVersion

	return initializeResult{
		Capabilities: capabilities{
			PositionEncoding: "utf-16",
			ServerCapabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncOptions{
					OpenClose: boolPtr(true),
					Change:    &changeKind,
					Save: &protocol.SaveOptions{
						IncludeText: boolPtr(true),
					},
				},
				CompletionProvider: &protocol.CompletionOptions{
					TriggerCharacters: []string{".", "::"},
				},
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}
}
