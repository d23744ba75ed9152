// Package document implements the Document Store: the URI -> Buffer
// mapping that backs the LSP server's open documents, and the five
// lifecycle events (open/change/save/close/get) that mutate it.
package document

import (
	"fmt"
	"sync"

	"github.com/nitrate-lang/no3/internal/buffer"
)

// SyncKind selects whether didChange carries full-document replacements
// or incremental range edits, mirroring TextDocumentSyncKind.
type SyncKind int

const (
	// SyncFull means every didChange replaces the whole document.
	SyncFull SyncKind = iota
	// SyncIncremental means didChange carries (range, text) edits.
	SyncIncremental
)

// Change is a single incremental edit: replace [Start, End) with Text in
// UTF-16 line/column coordinates. A Change with HasRange false is a
// full-document replacement of the working text (see DidChangeIncremental).
type Change struct {
	HasRange  bool
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Text      string
}

// Store is the URI -> Buffer mapping. A single mutex serializes every
// operation, per spec.md §4.2.
type Store struct {
	mu   sync.Mutex
	sync SyncKind
	docs map[string]*buffer.Buffer
}

// NewStore creates an empty Document Store configured with the given
// synchronization kind.
func NewStore(kind SyncKind) *Store {
	return &Store{
		sync: kind,
		docs: make(map[string]*buffer.Buffer),
	}
}

// SyncKind reports the store's configured synchronization kind.
func (s *Store) SyncKind() SyncKind {
	return s.sync
}

// DidOpen inserts a new buffer for uri, normalizing CR/CRLF to LF. Fails
// if uri is already open.
func (s *Store) DidOpen(uri string, version int, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; exists {
		return fmt.Errorf("document: didOpen: %q is already open", uri)
	}

	s.docs[uri] = buffer.NewNormalized(uri, version, raw)

	return nil
}

// DidChangeFull replaces the buffer for uri with new content, always
// normalizing on ingest — spec.md's §9 design note treats the teacher's
// asymmetric (normalize-on-open-only) behavior as a bug and specifies
// normalizing on every ingest path.
func (s *Store) DidChangeFull(uri string, version int, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; !exists {
		return fmt.Errorf("document: didChange: %q is not open", uri)
	}

	s.docs[uri] = buffer.NewNormalized(uri, version, raw)

	return nil
}

// DidChangeIncremental applies a sequence of range edits in order against
// a single mutable working copy, then installs the result as a new buffer
// at version. The version bump is atomic with the final state: if any
// edit fails to resolve, the store is left unchanged.
func (s *Store) DidChangeIncremental(uri string, version int, changes []Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.docs[uri]
	if !exists {
		return fmt.Errorf("document: didChange: %q is not open", uri)
	}

	working := current.Bytes()

	for i, change := range changes {
		if !change.HasRange {
			working = buffer.Normalize([]byte(change.Text))
			continue
		}

		start, ok := buffer.Offset(working, change.StartLine, change.StartCol)
		if !ok {
			return fmt.Errorf("document: didChange: %q: edit %d: start position (%d,%d) out of range",
				uri, i, change.StartLine, change.StartCol)
		}

		end, ok := buffer.Offset(working, change.EndLine, change.EndCol)
		if !ok {
			return fmt.Errorf("document: didChange: %q: edit %d: end position (%d,%d) out of range",
				uri, i, change.EndLine, change.EndCol)
		}

		next, err := buffer.Splice(working, start, end, change.Text)
		if err != nil {
			return fmt.Errorf("document: didChange: %q: edit %d: %w", uri, i, err)
		}

		working = buffer.Normalize(next)
	}

	s.docs[uri] = buffer.New(uri, version, working)

	return nil
}

// DidSave installs full content as a new buffer, keeping the previous
// version number, when content is non-nil. If uri is not open this is a
// no-op: the caller is expected to log a warning, not treat it as an
// error (spec.md §4.2).
func (s *Store) DidSave(uri string, fullContent []byte) (warned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.docs[uri]
	if !exists {
		return true
	}

	if fullContent == nil {
		return false
	}

	s.docs[uri] = buffer.NewNormalized(uri, current.Version(), fullContent)

	return false
}

// DidClose removes uri's entry. Fails if uri is not open.
func (s *Store) DidClose(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; !exists {
		return fmt.Errorf("document: didClose: %q is not open", uri)
	}

	delete(s.docs, uri)

	return nil
}

// Get returns the current buffer for uri, or ok=false if it is not open.
func (s *Store) Get(uri string) (*buffer.Buffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.docs[uri]

	return b, ok
}

// Len returns the number of currently open documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.docs)
}
