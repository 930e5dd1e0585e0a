// Package backup manages byte-exact snapshots of the game profile.
//
// A backup is created immediately before every destructive operation (save,
// restore). Restoring is itself destructive, so it always snapshots the
// current profile first; a bad restore is therefore always recoverable.
// The manager imposes no retention policy: listing and deleting are offered
// to callers, expiry is their decision.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldtuner/fieldtuner/internal/app"
)

// Errors returned by backup operations.
var (
	// ErrSourceMissing indicates the live profile does not exist.
	ErrSourceMissing = errors.New("profile file does not exist")

	// ErrBackupMissing indicates the referenced backup artifact is gone.
	ErrBackupMissing = errors.New("backup file does not exist")
)

// Extension is the suffix for backup artifacts.
const Extension = ".bak"

// LabelBeforeRestore marks the automatic snapshot taken before a restore.
const LabelBeforeRestore = "before-restore"

// timestampLayout is the ISO-like timestamp embedded in backup filenames.
const timestampLayout = "20060102_150405"

// Record describes one backup artifact.
type Record struct {
	// ID is the short unique suffix embedded in the filename.
	ID string

	// Path is the artifact location.
	Path string

	// Label is the optional label the backup was created with.
	Label string

	// CreatedAt is the backup creation time.
	CreatedAt time.Time

	// SizeBytes is the artifact size.
	SizeBytes int64
}

// Name returns the artifact filename.
func (r Record) Name() string {
	return filepath.Base(r.Path)
}

// Manager creates, lists, restores, and deletes profile backups.
type Manager struct {
	dir    string
	source string
	log    *app.Logger

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a backup manager for the given profile path, storing
// artifacts in dir.
func New(dir, source string, log *app.Logger) *Manager {
	if log == nil {
		log = app.NullLogger
	}
	return &Manager{
		dir:    dir,
		source: source,
		log:    log.WithComponent("backup"),
		now:    time.Now,
	}
}

// Create copies the live profile byte-for-byte into the backup directory.
// The artifact name embeds a timestamp, the optional label, and a short
// unique id. Fails when the source is missing or the directory cannot be
// written; it never leaves a partial artifact behind.
func (m *Manager) Create(label string) (Record, error) {
	info, err := os.Stat(m.source)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, fmt.Errorf("%w: %s", ErrSourceMissing, m.source)
		}
		return Record{}, fmt.Errorf("stat profile: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("create backup directory: %w", err)
	}

	id := uuid.NewString()[:8]
	createdAt := m.now()
	name := buildName(createdAt, label, id)
	dest := filepath.Join(m.dir, name)

	if err := copyFile(m.source, dest); err != nil {
		return Record{}, fmt.Errorf("copy profile to backup: %w", err)
	}

	rec := Record{
		ID:        id,
		Path:      dest,
		Label:     sanitizeLabel(label),
		CreatedAt: createdAt,
		SizeBytes: info.Size(),
	}
	m.log.Info("backup created: %s (%d bytes)", rec.Name(), rec.SizeBytes)
	return rec, nil
}

// List returns all backups in the directory, newest first. The directory
// is rescanned on every call so externally added or removed artifacts are
// reflected. A missing directory yields an empty list.
func (m *Manager) List() ([]Record, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, parseRecord(filepath.Join(m.dir, entry.Name()), info))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Find returns the backup whose filename or ID matches name.
func (m *Manager) Find(name string) (Record, error) {
	records, err := m.List()
	if err != nil {
		return Record{}, err
	}
	for _, rec := range records {
		if rec.Name() == name || rec.ID == name {
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrBackupMissing, name)
}

// Restore copies rec's bytes over the live profile. It always snapshots
// the current profile first, labeled "before-restore"; if that snapshot
// cannot be taken the restore is aborted. The live file is replaced
// atomically.
func (m *Manager) Restore(rec Record) error {
	if _, err := os.Stat(rec.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupMissing, rec.Path)
		}
		return fmt.Errorf("stat backup: %w", err)
	}

	if _, err := m.Create(LabelBeforeRestore); err != nil {
		return fmt.Errorf("pre-restore backup failed, aborting restore: %w", err)
	}

	data, err := os.ReadFile(rec.Path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if err := AtomicWrite(m.source, data); err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}

	m.log.Info("restored backup: %s", rec.Name())
	return nil
}

// Delete removes the backup artifact. Irreversible; the caller is expected
// to have confirmed with the user.
func (m *Manager) Delete(rec Record) error {
	if err := os.Remove(rec.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupMissing, rec.Path)
		}
		return fmt.Errorf("delete backup: %w", err)
	}
	m.log.Info("deleted backup: %s", rec.Name())
	return nil
}

// Prune deletes the oldest backups beyond max and reports how many were
// removed. max <= 0 keeps everything.
func (m *Manager) Prune(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}
	recs, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(recs) <= max {
		return 0, nil
	}

	removed := 0
	for _, rec := range recs[max:] {
		if err := m.Delete(rec); err != nil {
			return removed, err
		}
		removed++
	}
	m.log.Info("pruned %d backups (keeping %d)", removed, max)
	return removed, nil
}

// buildName assembles "profile_<timestamp>[_label]_<id>.bak".
func buildName(t time.Time, label, id string) string {
	parts := []string{"profile", t.Format(timestampLayout)}
	if s := sanitizeLabel(label); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, id)
	return strings.Join(parts, "_") + Extension
}

// parseRecord reconstructs a Record from an artifact filename, falling back
// to file metadata where the name does not parse.
func parseRecord(path string, info os.FileInfo) Record {
	rec := Record{
		Path:      path,
		CreatedAt: info.ModTime(),
		SizeBytes: info.Size(),
	}

	name := strings.TrimSuffix(filepath.Base(path), Extension)
	parts := strings.Split(name, "_")
	// profile_<date>_<time>[_label...]_<id>
	if len(parts) >= 4 && parts[0] == "profile" {
		if t, err := time.ParseInLocation(timestampLayout, parts[1]+"_"+parts[2], time.Local); err == nil {
			rec.CreatedAt = t
		}
		rec.ID = parts[len(parts)-1]
		if len(parts) > 4 {
			rec.Label = strings.Join(parts[3:len(parts)-1], "_")
		}
	}
	return rec
}

// sanitizeLabel keeps labels filename-safe.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// copyFile copies src to dest through a temporary file so a failed copy
// never leaves a truncated artifact.
func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return AtomicWrite(dest, data)
}

// AtomicWrite writes data to a temporary file in the target directory and
// renames it over path, so path is never observed in a partially-written
// state. Exported because the settings store uses the same discipline for
// profile saves.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
