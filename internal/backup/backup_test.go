package backup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T, content []byte) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "PROFSAVE_profile")
	if content != nil {
		if err := os.WriteFile(source, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(filepath.Join(dir, "backups"), source, nil), source
}

func TestManager_Create_ByteExactCopy(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 2048)
	m, _ := newTestManager(t, content)

	rec, err := m.Create("manual")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if rec.SizeBytes != 2048 {
		t.Errorf("SizeBytes = %d, want 2048", rec.SizeBytes)
	}
	if rec.Label != "manual" {
		t.Errorf("Label = %q, want %q", rec.Label, "manual")
	}

	got, err := os.ReadFile(rec.Path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("backup content differs from source")
	}
}

func TestManager_Create_SourceMissing(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, err := m.Create("")
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("error = %v, want ErrSourceMissing", err)
	}
}

func TestManager_Create_LabelSanitized(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	rec, err := m.Create("my save/../.. evil")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.Label != "my-save-evil" {
		t.Errorf("Label = %q", rec.Label)
	}
	if filepath.Dir(rec.Path) != m.dir {
		t.Errorf("backup escaped its directory: %s", rec.Path)
	}
}

func TestManager_List_NewestFirst(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		m.now = func() time.Time { return base.Add(offset) }
		if _, err := m.Create(""); err != nil {
			t.Fatal(err)
		}
	}

	records, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List returned %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records not sorted newest-first: %v", records)
		}
	}
	if !records[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("newest record CreatedAt = %v", records[0].CreatedAt)
	}
}

func TestManager_Prune(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		offset := time.Duration(i) * time.Minute
		m.now = func() time.Time { return base.Add(offset) }
		if _, err := m.Create(""); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d, want 3", removed)
	}

	records, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records after prune, want 2", len(records))
	}
	// The newest backups survive.
	if !records[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("newest surviving record CreatedAt = %v", records[0].CreatedAt)
	}

	// Under the limit, Prune is a no-op.
	if removed, err := m.Prune(10); err != nil || removed != 0 {
		t.Errorf("Prune under limit = %d, %v", removed, err)
	}
	if removed, err := m.Prune(0); err != nil || removed != 0 {
		t.Errorf("Prune(0) = %d, %v", removed, err)
	}
}

func TestManager_List_EmptyWhenDirMissing(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	records, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List = %d records, want 0", len(records))
	}
}

func TestManager_List_IgnoresForeignFiles(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))
	if _, err := m.Create(""); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("List = %d records, want 1", len(records))
	}
}

func TestManager_Restore_BackupBeforeDestroy(t *testing.T) {
	m, source := newTestManager(t, []byte("original content"))

	rec, err := m.Create("good")
	if err != nil {
		t.Fatal(err)
	}

	// Simulate a bad edit to the live profile.
	if err := os.WriteFile(source, []byte("broken content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(rec); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	live, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(live, []byte("original content")) {
		t.Errorf("live profile = %q, want restored content", live)
	}

	// The pre-restore state must itself have been snapshotted.
	records, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	var preRestore *Record
	for i := range records {
		if records[i].Label == LabelBeforeRestore {
			preRestore = &records[i]
		}
	}
	if preRestore == nil {
		t.Fatal("no before-restore snapshot found")
	}
	snap, err := os.ReadFile(preRestore.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(snap, []byte("broken content")) {
		t.Errorf("before-restore snapshot = %q, want pre-restore live content", snap)
	}
}

func TestManager_Restore_MissingArtifact(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	err := m.Restore(Record{Path: filepath.Join(m.dir, "gone.bak")})
	if !errors.Is(err, ErrBackupMissing) {
		t.Errorf("error = %v, want ErrBackupMissing", err)
	}
}

func TestManager_Restore_AbortsWhenPreBackupFails(t *testing.T) {
	m, source := newTestManager(t, []byte("data"))

	rec, err := m.Create("keep")
	if err != nil {
		t.Fatal(err)
	}

	// Remove the live profile: the pre-restore snapshot cannot be taken, so
	// the restore must refuse to proceed.
	if err := os.Remove(source); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(rec); !errors.Is(err, ErrSourceMissing) {
		t.Errorf("error = %v, want ErrSourceMissing", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("live profile should still be absent after aborted restore")
	}
}

func TestManager_Delete(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	rec, err := m.Create("")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(rec); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(rec.Path); !os.IsNotExist(err) {
		t.Error("artifact still exists after Delete")
	}
	if err := m.Delete(rec); !errors.Is(err, ErrBackupMissing) {
		t.Errorf("second Delete error = %v, want ErrBackupMissing", err)
	}
}

func TestManager_Find(t *testing.T) {
	m, _ := newTestManager(t, []byte("data"))

	rec, err := m.Create("tagged")
	if err != nil {
		t.Fatal(err)
	}

	byName, err := m.Find(rec.Name())
	if err != nil || byName.Path != rec.Path {
		t.Errorf("Find by name = %+v, %v", byName, err)
	}
	byID, err := m.Find(rec.ID)
	if err != nil || byID.Path != rec.Path {
		t.Errorf("Find by id = %+v, %v", byID, err)
	}
	if _, err := m.Find("nope"); !errors.Is(err, ErrBackupMissing) {
		t.Errorf("Find(nope) error = %v, want ErrBackupMissing", err)
	}
}
