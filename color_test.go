package vtcore

import "testing"

func TestColor_DefaultIsDefault(t *testing.T) {
	if !DefaultForeground.IsDefault() {
		t.Error("DefaultForeground.IsDefault() = false, want true")
	}
	if PaletteColor(4).IsDefault() {
		t.Error("PaletteColor(4).IsDefault() = true, want false")
	}
}

func TestPalette_ResolveDefaults(t *testing.T) {
	p := DefaultPalette()
	if p.Resolve(DefaultForeground, true) != p.Foreground {
		t.Error("Resolve(default fg) did not return palette's Foreground")
	}
	if p.Resolve(DefaultBackground, false) != p.Background {
		t.Error("Resolve(default bg) did not return palette's Background")
	}
}

func TestPalette_ResolveIndexed(t *testing.T) {
	p := DefaultPalette()
	red := p.Resolve(PaletteColor(1), true)
	if red != p.Entries[1] {
		t.Errorf("Resolve(index 1) = %v, want %v", red, p.Entries[1])
	}
}

func TestDefaultPalette_16ColorRampPopulated(t *testing.T) {
	p := DefaultPalette()
	if p.Entries[1] == (RGB{}) {
		t.Error("index 1 (red) is zero-valued, want the ANSI red entry")
	}
	if p.Entries[231] == p.Entries[16] {
		t.Error("color cube entries 16 and 231 should differ")
	}
}

func TestDefaultPalette_GreyscaleRamp(t *testing.T) {
	p := DefaultPalette()
	if p.Entries[232].R >= p.Entries[255].R {
		t.Errorf("greyscale ramp should increase: entries[232]=%v entries[255]=%v", p.Entries[232], p.Entries[255])
	}
}
