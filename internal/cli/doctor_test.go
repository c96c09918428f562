package cli

import (
	"path/filepath"
	"testing"

	"ritual/internal/storage"
	"ritual/internal/store"
)

func TestCheckStoreReachable_SQLitePassesIntegrityCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.db")

	s := store.New(storage.NewSQLiteStore(path))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	if err := checkStoreReachable(&Context{Store: s}); err != nil {
		t.Errorf("expected a healthy store to pass, got: %v", err)
	}
}

func TestCheckStoreReachable_FailsWithoutInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritual.db")

	ctx := &Context{Store: store.New(storage.NewSQLiteStore(path))}
	if err := checkStoreReachable(ctx); err == nil {
		t.Error("expected an uninitialized store to fail the check")
	}
}
