package locate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLocate_ReturnsFirstExisting(t *testing.T) {
	dir := t.TempDir()
	third := filepath.Join(dir, "third")
	writeFile(t, third, []byte("GstRender.ResolutionScale 1.0\n"))

	candidates := []string{
		filepath.Join(dir, "first"),
		filepath.Join(dir, "second"),
		third,
		filepath.Join(dir, "fourth"),
	}

	got, ok := Locate(candidates)
	if !ok {
		t.Fatal("Locate returned not found")
	}
	if got != third {
		t.Errorf("Locate = %q, want %q", got, third)
	}
}

func TestLocate_NoneExist(t *testing.T) {
	dir := t.TempDir()
	candidates := []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "b"),
	}

	got, ok := Locate(candidates)
	if ok {
		t.Errorf("Locate = %q, want not found", got)
	}
	if got != "" {
		t.Errorf("Locate path = %q, want empty", got)
	}
}

func TestLocate_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "profile")
	writeFile(t, file, []byte("GstRender.VSyncMode 0\n"))

	got, ok := Locate([]string{sub, file})
	if !ok || got != file {
		t.Errorf("Locate = %q, %v; want %q, true", got, ok, file)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	pad := bytes.Repeat([]byte("x"), 200)

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"text signature", append([]byte("GstRender.Dx12Enabled 1\n"), pad...), true},
		{"binary magic", append([]byte("PROFSAVE\x01\x00\x00\x00"), pad...), true},
		{"too small", []byte("GstRender"), false},
		{"no signature", append([]byte("some unrelated file content\n"), pad...), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.data)
			if got := Validate(path); got != tt.want {
				t.Errorf("Validate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_MissingFile(t *testing.T) {
	if Validate(filepath.Join(t.TempDir(), "nope")) {
		t.Error("Validate returned true for missing file")
	}
}

func TestDetect_SkipsInvalidCandidate(t *testing.T) {
	dir := t.TempDir()

	bogus := filepath.Join(dir, "bogus")
	writeFile(t, bogus, []byte("not a profile"))

	real := filepath.Join(dir, "real")
	content := append([]byte("GstRender.ResolutionScale 1.0\n"), bytes.Repeat([]byte("# pad\n"), 30)...)
	writeFile(t, real, content)

	got, ok := Detect([]string{bogus, real})
	if !ok || got != real {
		t.Errorf("Detect = %q, %v; want %q, true", got, ok, real)
	}
}
