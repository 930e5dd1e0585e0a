package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fieldtuner/fieldtuner/internal/config/registry"
	"github.com/fieldtuner/fieldtuner/internal/config/store"
)

const scriptProfile = "GstRender.Dx12Enabled 0\n" +
	"GstRender.ResolutionScale 1.000000\n" +
	"GstAudio.MasterVolume 0.800000\n"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.LoadBytes("mem", []byte(scriptProfile))
	return s
}

func TestRun_GetAndSet(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s)

	code := `
if tuner.get("GstRender.Dx12Enabled") == "0" then
	tuner.set("GstRender.Dx12Enabled", "1")
end
`
	if err := r.Run("toggle", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, _ := s.Lookup("GstRender.Dx12Enabled"); got != "1" {
		t.Errorf("Dx12Enabled = %q", got)
	}
}

func TestRun_ValueConversions(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s)

	code := `
tuner.set("GstRender.FrameRateLimit", 144.5)
tuner.set("GstRender.MotionBlurAmount", 2)
tuner.set("GstRender.VSyncEnabled", false)
`
	if err := r.Run("convert", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, _ := s.Lookup("GstRender.FrameRateLimit"); got != "144.5" {
		t.Errorf("float value = %q", got)
	}
	if got, _ := s.Lookup("GstRender.MotionBlurAmount"); got != "2" {
		t.Errorf("integer value = %q", got)
	}
	if got, _ := s.Lookup("GstRender.VSyncEnabled"); got != "0" {
		t.Errorf("bool value = %q", got)
	}
}

func TestRun_HasAndKeys(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s)

	code := `
assert(tuner.has("GstAudio.MasterVolume"))
assert(not tuner.has("GstAudio.Missing"))
local keys = tuner.keys()
assert(#keys == 3, "key count " .. #keys)
assert(keys[1] == "GstRender.Dx12Enabled", "first key " .. keys[1])
`
	if err := r.Run("inspect", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_Apply(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s)

	code := `
tuner.apply({
	["GstRender.Dx12Enabled"] = "1",
	["GstAudio.MasterVolume"] = "0.5",
})
`
	if err := r.Run("batch", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, _ := s.Lookup("GstAudio.MasterVolume"); got != "0.5" {
		t.Errorf("MasterVolume = %q", got)
	}
}

func TestRun_SetRejectedByRegistry(t *testing.T) {
	reg := registry.New()
	reg.MustRegister(registry.Setting{Key: "GstRender.Dx12Enabled", Type: registry.TypeBool})

	s := store.New(store.WithRegistry(reg))
	s.LoadBytes("mem", []byte(scriptProfile))
	r := NewRunner(s)

	err := r.Run("bad", `tuner.set("GstRender.Dx12Enabled", "maybe")`)
	if err == nil {
		t.Fatal("invalid value accepted")
	}
	if got, _ := s.Lookup("GstRender.Dx12Enabled"); got != "0" {
		t.Errorf("value changed by failed set: %q", got)
	}
}

func TestRun_SandboxBlocksUnsafeLibraries(t *testing.T) {
	r := NewRunner(newTestStore(t))

	for _, code := range []string{
		`os.execute("true")`,
		`io.open("/etc/passwd")`,
		`loadstring("return 1")()`,
		`dofile("x.lua")`,
	} {
		if err := r.Run("escape", code); err == nil {
			t.Errorf("sandbox allowed %q", code)
		}
	}
}

func TestRun_Timeout(t *testing.T) {
	r := NewRunner(newTestStore(t), WithTimeout(100*time.Millisecond))

	err := r.Run("spin", `while true do end`)
	if err == nil {
		t.Fatal("infinite loop returned")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestRunFile(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s)

	path := filepath.Join(t.TempDir(), "tweak.lua")
	code := `tuner.set("GstRender.ResolutionScale", "0.9")`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := r.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got, _ := s.Lookup("GstRender.ResolutionScale"); got != "0.9" {
		t.Errorf("ResolutionScale = %q", got)
	}
}

func TestRun_SyntaxErrorNamesScript(t *testing.T) {
	r := NewRunner(newTestStore(t))
	err := r.Run("broken", `this is not lua`)
	if err == nil {
		t.Fatal("syntax error accepted")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error does not name the script: %v", err)
	}
}
