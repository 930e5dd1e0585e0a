package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "preferences.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Defaults() {
		t.Errorf("Load on missing file = %+v, want defaults", p)
	}
	if p.Log.Level != "info" {
		t.Errorf("default log level = %q", p.Log.Level)
	}
	if !p.Backup.AutoBackup || p.Backup.MaxBackups != 50 {
		t.Errorf("default backup prefs = %+v", p.Backup)
	}
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	partial := "[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", p.Log.Level)
	}
	// Keys absent from the file keep their defaults.
	if p.Backup.MaxBackups != 50 {
		t.Errorf("MaxBackups = %d, want default 50", p.Backup.MaxBackups)
	}
	if !p.Display.ShowDescriptions {
		t.Error("ShowDescriptions lost its default")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, err := Load(path)
	if err == nil {
		t.Fatal("Load of malformed file succeeded")
	}
	if p != Defaults() {
		t.Errorf("malformed load = %+v, want defaults", p)
	}
}

func TestPreferences_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.toml")

	p := Defaults()
	p.Log.Level = "warn"
	p.Backup.MaxBackups = 10
	p.Display.ShowTechnicalNames = true
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != p {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestFavorites_MissingFileStartsEmpty(t *testing.T) {
	f := LoadFavorites(filepath.Join(t.TempDir(), "favorites.json"), nil)
	if f.Len() != 0 {
		t.Errorf("Len = %d", f.Len())
	}
}

func TestFavorites_AddRemoveToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	f := LoadFavorites(path, nil)

	if err := f.Add("GstRender.Dx12Enabled"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := f.Add("GstRender.Dx12Enabled"); err != nil {
		t.Fatalf("repeated Add: %v", err)
	}
	if !f.Contains("GstRender.Dx12Enabled") {
		t.Error("Contains after Add = false")
	}
	if f.Len() != 1 {
		t.Errorf("Len = %d", f.Len())
	}

	on, err := f.Toggle("GstRender.MotionBlurWorld")
	if err != nil || !on {
		t.Fatalf("Toggle on = %v, %v", on, err)
	}
	on, err = f.Toggle("GstRender.MotionBlurWorld")
	if err != nil || on {
		t.Fatalf("Toggle off = %v, %v", on, err)
	}

	if err := f.Remove("GstRender.Dx12Enabled"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Len after removals = %d", f.Len())
	}
}

func TestFavorites_PersistAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	f := LoadFavorites(path, nil)
	for _, key := range []string{"b.two", "a.one", "c.three"} {
		if err := f.Add(key); err != nil {
			t.Fatalf("Add(%q): %v", key, err)
		}
	}

	reloaded := LoadFavorites(path, nil)
	got := reloaded.All()
	want := []string{"a.one", "b.two", "c.three"}
	if len(got) != len(want) {
		t.Fatalf("All = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFavorites_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f := LoadFavorites(path, nil)
	if f.Len() != 0 {
		t.Errorf("corrupt file produced %d favorites", f.Len())
	}
	// The next mutation rewrites a valid file.
	if err := f.Add("GstRender.Dx12Enabled"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := LoadFavorites(path, nil).Len(); got != 1 {
		t.Errorf("reloaded favorites = %d", got)
	}
}
