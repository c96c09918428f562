package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStore_InitLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.json")

	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := s.Put("steps", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A fresh store instance must see the persisted blob.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	value, ok, err := reopened.Get("steps")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected steps blob to exist after reopen")
	}
	if string(value) != `[{"id":"a"}]` {
		t.Errorf("unexpected blob content: %s", value)
	}
}

func TestJSONStore_InitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.json")

	if err := NewJSONStore(path).Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("expected second Init to fail on existing file")
	}
}

func TestJSONStore_MissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.json")

	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	_, ok, err := s.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected missing key to report ok=false")
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.json")

	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected Load to fail when storage was never initialized")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.db")

	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Put("settings", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("settings")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected settings blob to exist after reopen")
	}
	if string(value) != `{"theme":"dark"}` {
		t.Errorf("unexpected blob content: %s", value)
	}
}

func TestSQLiteStore_InitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.db")

	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Put("steps", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := NewSQLiteStore(path).Init(); err == nil {
		t.Fatal("expected second Init to fail on existing file")
	}

	// The refused re-init must not have touched the stored data.
	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("steps")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":"a"}]` {
		t.Errorf("blob changed after refused re-init: %s", value)
	}
}

func TestSQLiteStore_PutAllIsAtomicBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.db")

	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	blobs := map[string][]byte{
		"steps": []byte(`[]`),
		"days":  []byte(`{}`),
	}
	if err := s.PutAll(blobs); err != nil {
		t.Fatalf("PutAll failed: %v", err)
	}

	for key, want := range blobs {
		value, ok, err := s.Get(key)
		if err != nil || !ok {
			t.Fatalf("Get(%q) = ok=%v err=%v", key, ok, err)
		}
		if string(value) != string(want) {
			t.Errorf("blob %q: expected %s, got %s", key, want, value)
		}
	}
}

func TestSQLiteStore_LoadRejectsForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.db")

	// An empty file is a valid (schemaless) sqlite database.
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	s := NewSQLiteStore(path)
	if err := s.Load(); err == nil {
		s.Close()
		t.Error("expected Load to reject a database without the kv table")
	}
}

func TestMemoryStore_CopiesOnWriteAndRead(t *testing.T) {
	s := NewMemoryStore()

	value := []byte(`{"a":1}`)
	if err := s.Put("settings", value); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value[0] = 'x' // mutate the caller's slice after Put

	got, ok, err := s.Get("settings")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("stored blob aliased caller memory: %s", got)
	}

	got[0] = 'y' // mutate the returned slice
	again, _, _ := s.Get("settings")
	if string(again) != `{"a":1}` {
		t.Errorf("returned blob aliased store memory: %s", again)
	}
}
