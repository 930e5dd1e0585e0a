package profsave

import (
	"testing"
)

func TestParse_TextSpaceSeparated(t *testing.T) {
	raw := []byte("GstRender.Dx12Enabled 0\nGstRender.ResolutionScale 1.0\n# comment\n")

	res := Parse(raw)
	if res.Strategy != StrategyText {
		t.Fatalf("Strategy = %v, want text", res.Strategy)
	}
	if res.Len() != 2 {
		t.Fatalf("Len = %d, want 2", res.Len())
	}
	if got := res.Entries["GstRender.Dx12Enabled"]; got != "0" {
		t.Errorf("Dx12Enabled = %q, want %q", got, "0")
	}
	if got := res.Entries["GstRender.ResolutionScale"]; got != "1.0" {
		t.Errorf("ResolutionScale = %q, want %q", got, "1.0")
	}
}

func TestParse_TextEqualsSeparated(t *testing.T) {
	raw := []byte("GstInput.MouseSensitivity=0.5\nGstAudio.Device=\"Headphones\"\nGstAudio.Mode='stereo'\n")

	res := Parse(raw)
	if res.Strategy != StrategyText {
		t.Fatalf("Strategy = %v, want text", res.Strategy)
	}

	tests := []struct {
		key, want string
	}{
		{"GstInput.MouseSensitivity", "0.5"},
		{"GstAudio.Device", "Headphones"},
		{"GstAudio.Mode", "stereo"},
	}
	for _, tt := range tests {
		if got := res.Entries[tt.key]; got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	raw := []byte("# hash comment\n// slash comment\n\n   \nGstRender.VSyncMode 0\n")

	res := Parse(raw)
	if res.Len() != 1 {
		t.Errorf("Len = %d, want 1", res.Len())
	}
}

func TestParse_UnparsableLinesAreNotErrors(t *testing.T) {
	raw := []byte("GstRender.VSyncMode 0\nthisisnotasetting\nGstRender.Dx12Enabled 1\n")

	res := Parse(raw)
	if res.Len() != 2 {
		t.Errorf("Len = %d, want 2 (unparsable line skipped, not fatal)", res.Len())
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	raw := []byte("b.Key 2\na.Key 1\nc.Key 3\n")

	res := Parse(raw)
	want := []string{"b.Key", "a.Key", "c.Key"}
	if len(res.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", res.Order, want)
	}
	for i, k := range want {
		if res.Order[i] != k {
			t.Errorf("Order[%d] = %q, want %q", i, res.Order[i], k)
		}
	}
}

func TestParse_DuplicateKeyKeepsLastValueFirstPosition(t *testing.T) {
	raw := []byte("a.Key 1\nb.Key 2\na.Key 3\n")

	res := Parse(raw)
	if got := res.Entries["a.Key"]; got != "3" {
		t.Errorf("a.Key = %q, want %q", got, "3")
	}
	if len(res.Order) != 2 || res.Order[0] != "a.Key" {
		t.Errorf("Order = %v, want [a.Key b.Key]", res.Order)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	res := Parse(nil)
	if res.Len() != 0 {
		t.Errorf("Len = %d, want 0", res.Len())
	}
	if res.Strategy != StrategyNone {
		t.Errorf("Strategy = %v, want none", res.Strategy)
	}
}

func TestParse_GarbageInput(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0x00, 0x01, 0x02}

	res := Parse(raw) // must not panic
	if res.Len() != 0 {
		t.Errorf("Len = %d, want 0", res.Len())
	}
}

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{StrategyNone, "none"},
		{StrategyText, "text"},
		{StrategyBinary, "binary"},
		{StrategyHybrid, "hybrid"},
		{StrategyFallback, "fallback"},
		{Strategy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestParseFallback_LooserRules(t *testing.T) {
	raw := []byte("key=value with = signs\nother key2\n")

	entries, _ := parseFallback(raw)
	if got := entries["key"]; got != "value with = signs" {
		t.Errorf("key = %q", got)
	}
	if got := entries["other"]; got != "key2" {
		t.Errorf("other = %q", got)
	}
}
