package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func managerForTest(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "ritual.db"))
}

func validPayload(t *testing.T) []byte {
	t.Helper()
	data, err := Encode(sampleEnvelope())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return data
}

func TestWriteBackup_CreatesTimestampedFile(t *testing.T) {
	mgr := managerForTest(t)

	path, err := mgr.WriteBackup(validPayload(t))
	if err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
		t.Errorf("unexpected backup filename: %s", name)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestWriteBackup_UniqueNamesWithinOneMinute(t *testing.T) {
	mgr := managerForTest(t)
	payload := validPayload(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.WriteBackup(payload)
		if err != nil {
			t.Fatalf("WriteBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path: %s", path)
		}
		seen[path] = true
	}
}

func TestListBackups_NewestFirstAndSkipsForeignFiles(t *testing.T) {
	mgr := managerForTest(t)
	if _, err := mgr.WriteBackup(validPayload(t)); err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}

	// Foreign files in the backup dir are ignored.
	foreign := filepath.Join(mgr.GetBackupDir(), "notes.txt")
	if err := os.WriteFile(foreign, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write foreign file: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
}

func TestWriteBackup_RotatesBeyondLimit(t *testing.T) {
	mgr := managerForTest(t)
	payload := validPayload(t)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.WriteBackup(payload); err != nil {
			t.Fatalf("WriteBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("expected at most %d backups after rotation, got %d", MaxBackups, len(backups))
	}
}

func TestReadBackup_ResolvesBareNameAndValidates(t *testing.T) {
	mgr := managerForTest(t)
	payload := validPayload(t)

	path, err := mgr.WriteBackup(payload)
	if err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}

	data, err := mgr.ReadBackup(filepath.Base(path))
	if err != nil {
		t.Fatalf("ReadBackup by bare name failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("ReadBackup returned different bytes")
	}

	// A file that does not decode as a backup must be rejected.
	bad := filepath.Join(mgr.GetBackupDir(), BackupFilePrefix+"20250310-0900"+BackupFileSuffix)
	if err := os.WriteFile(bad, []byte("{nope"), 0600); err != nil {
		t.Fatalf("failed to write bad file: %v", err)
	}
	if _, err := mgr.ReadBackup(bad); err == nil {
		t.Error("expected ReadBackup to reject an invalid payload")
	}
}
