package vtcore

import "testing"

func TestGlyph_EmptyIsEmpty(t *testing.T) {
	if !EmptyGlyph().IsEmpty() {
		t.Error("EmptyGlyph().IsEmpty() = false, want true")
	}
}

func TestGlyph_NonEmpty(t *testing.T) {
	g := Glyph{Codepoint: 'x'}
	if g.IsEmpty() {
		t.Error("glyph carrying a codepoint reported IsEmpty() = true")
	}
}

func TestEmptyGlyphWithStyle_RetainsStyle(t *testing.T) {
	fg, bg := PaletteColor(1), PaletteColor(2)
	g := EmptyGlyphWithStyle(fg, bg, AttrBold)
	if !g.IsEmpty() {
		t.Error("EmptyGlyphWithStyle should still be empty (no codepoint)")
	}
	if g.Fg != fg || g.Bg != bg || g.Attr != AttrBold {
		t.Errorf("got fg=%v bg=%v attr=%v, want %v %v %v", g.Fg, g.Bg, g.Attr, fg, bg, AttrBold)
	}
}

func TestAttrMask_Has(t *testing.T) {
	m := AttrBold | AttrUnderline
	if !m.Has(AttrBold) {
		t.Error("Has(AttrBold) = false, want true")
	}
	if m.Has(AttrBlink) {
		t.Error("Has(AttrBlink) = true, want false")
	}
	if !m.Has(AttrBold | AttrUnderline) {
		t.Error("Has(combined) = false, want true")
	}
}
