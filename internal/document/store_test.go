package document

import "testing"

func TestDidOpen_Normalizes(t *testing.T) {
	s := NewStore(SyncIncremental)

	if err := s.DidOpen("file:///a", 1, []byte("a\r\nb")); err != nil {
		t.Fatalf("DidOpen returned error: %v", err)
	}

	buf, ok := s.Get("file:///a")
	if !ok {
		t.Fatalf("Get() after DidOpen returned ok=false")
	}

	if buf.Text() != "a\nb" {
		t.Errorf("buffer text = %q, want %q", buf.Text(), "a\nb")
	}
}

func TestDidOpen_AlreadyOpen(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 1, []byte("x"))

	if err := s.DidOpen("file:///a", 2, []byte("y")); err == nil {
		t.Fatalf("DidOpen() on an already-open uri should fail")
	}
}

func TestDidChangeIncremental_Sequential(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 1, []byte("hello\nworld"))

	err := s.DidChangeIncremental("file:///a", 2, []Change{
		{HasRange: true, StartLine: 0, StartCol: 5, EndLine: 0, EndCol: 5, Text: ","},
	})
	if err != nil {
		t.Fatalf("DidChangeIncremental returned error: %v", err)
	}

	buf, _ := s.Get("file:///a")
	if buf.Text() != "hello,\nworld" {
		t.Errorf("buffer text = %q, want %q", buf.Text(), "hello,\nworld")
	}

	if buf.Version() != 2 {
		t.Errorf("buffer version = %d, want 2", buf.Version())
	}
}

func TestDidChangeIncremental_MultipleEditsAppliedInOrder(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 1, []byte("abc"))

	err := s.DidChangeIncremental("file:///a", 2, []Change{
		{HasRange: true, StartLine: 0, StartCol: 0, EndLine: 0, EndCol: 1, Text: "X"},
		{HasRange: true, StartLine: 0, StartCol: 2, EndLine: 0, EndCol: 3, Text: "Y"},
	})
	if err != nil {
		t.Fatalf("DidChangeIncremental returned error: %v", err)
	}

	buf, _ := s.Get("file:///a")
	if buf.Text() != "XbY" {
		t.Errorf("buffer text = %q, want %q", buf.Text(), "XbY")
	}
}

func TestDidChangeIncremental_FailureLeavesStoreUnchanged(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 1, []byte("abc"))

	err := s.DidChangeIncremental("file:///a", 2, []Change{
		{HasRange: true, StartLine: 9, StartCol: 0, EndLine: 9, EndCol: 0, Text: "x"},
	})
	if err == nil {
		t.Fatalf("DidChangeIncremental with an out-of-range edit should fail")
	}

	buf, _ := s.Get("file:///a")
	if buf.Text() != "abc" || buf.Version() != 1 {
		t.Errorf("store mutated after failed edit: text=%q version=%d", buf.Text(), buf.Version())
	}
}

func TestDidChangeFull_NormalizesOnIngest(t *testing.T) {
	s := NewStore(SyncFull)
	_ = s.DidOpen("file:///a", 1, []byte("a"))

	if err := s.DidChangeFull("file:///a", 2, []byte("x\r\ny")); err != nil {
		t.Fatalf("DidChangeFull returned error: %v", err)
	}

	buf, _ := s.Get("file:///a")
	if buf.Text() != "x\ny" {
		t.Errorf("buffer text = %q, want %q (full replacements must normalize too)", buf.Text(), "x\ny")
	}
}

func TestDidSave_MissingURI_IsNoopWarning(t *testing.T) {
	s := NewStore(SyncIncremental)

	warned := s.DidSave("file:///missing", []byte("x"))
	if !warned {
		t.Errorf("DidSave on missing uri should report warned=true, not an error")
	}

	if _, ok := s.Get("file:///missing"); ok {
		t.Errorf("DidSave on missing uri must not create an entry")
	}
}

func TestDidSave_KeepsVersion(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 5, []byte("old"))

	s.DidSave("file:///a", []byte("new"))

	buf, _ := s.Get("file:///a")
	if buf.Text() != "new" || buf.Version() != 5 {
		t.Errorf("after DidSave: text=%q version=%d, want text=\"new\" version=5", buf.Text(), buf.Version())
	}
}

func TestDidClose_RemovesEntry(t *testing.T) {
	s := NewStore(SyncIncremental)
	_ = s.DidOpen("file:///a", 1, []byte("x"))

	if err := s.DidClose("file:///a"); err != nil {
		t.Fatalf("DidClose returned error: %v", err)
	}

	if _, ok := s.Get("file:///a"); ok {
		t.Errorf("document still present after DidClose")
	}
}

func TestDidClose_Missing(t *testing.T) {
	s := NewStore(SyncIncremental)

	if err := s.DidClose("file:///missing"); err == nil {
		t.Fatalf("DidClose on a missing uri should fail")
	}
}

func TestGet_BeforeOpen(t *testing.T) {
	s := NewStore(SyncIncremental)

	if _, ok := s.Get("file:///a"); ok {
		t.Errorf("Get() before didOpen should report ok=false")
	}
}
