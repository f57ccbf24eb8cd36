package vtcore

import "testing"

func TestNewGrid_Dimensions(t *testing.T) {
	g := NewGrid(10, 5, 8, true)
	if g.Cols() != 10 || g.Rows() != 5 {
		t.Fatalf("got (%d,%d), want (10,5)", g.Cols(), g.Rows())
	}
}

func TestNewGrid_StartsBlank(t *testing.T) {
	g := NewGrid(4, 3, 8, true)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if !g.CellAt(x, y).IsEmpty() {
				t.Fatalf("CellAt(%d,%d) not empty on a fresh grid", x, y)
			}
		}
	}
}

func TestNewGrid_CursorAtOrigin(t *testing.T) {
	g := NewGrid(10, 5, 8, true)
	x, y := g.CursorPageXY()
	if x != 0 || y != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", x, y)
	}
}

func TestGrid_MoveCursorClampsToPage(t *testing.T) {
	g := NewGrid(10, 5, 8, true)
	g.moveCursorTo(100, 100)
	x, y := g.CursorPageXY()
	if x != 9 || y != 4 {
		t.Fatalf("cursor = (%d,%d), want clamped to (9,4)", x, y)
	}
}

func TestGrid_MoveCursorClearsWrapNext(t *testing.T) {
	g := NewGrid(3, 3, 8, true)
	g.wrapNext = true
	g.moveCursorTo(1, 1)
	if g.wrapNext {
		t.Error("moveCursorTo should always clear wrap_next")
	}
}

func TestGrid_SetScrollRegion(t *testing.T) {
	g := NewGrid(10, 10, 8, true)
	g.SetScrollRegion(2, 5) // 1-based -> rows 1..4
	if g.marginTop != 1 || g.marginBottom != 4 {
		t.Fatalf("margins = (%d,%d), want (1,4)", g.marginTop, g.marginBottom)
	}
}

func TestGrid_SetScrollRegionRejectsInverted(t *testing.T) {
	g := NewGrid(10, 10, 8, true)
	g.SetScrollRegion(5, 2)
	if g.marginTop != 0 || g.marginBottom != 9 {
		t.Error("inverted scroll region request should be a no-op")
	}
}

func TestGrid_OriginModeConfinesPage(t *testing.T) {
	g := NewGrid(10, 10, 8, true)
	g.SetScrollRegion(3, 7) // rows 2..6
	g.SetOriginMode(true)
	top, bottom := g.pageBounds()
	if top != 2 || bottom != 6 {
		t.Fatalf("pageBounds = (%d,%d), want (2,6)", top, bottom)
	}
	g.moveCursorTo(0, 100)
	_, y := g.CursorPageXY()
	if y != 4 { // clamped to bottom margin, 0-based within page
		t.Errorf("cursor y = %d, want 4 (page height - 1)", y)
	}
}

// TestGrid_ScrollUpEndToEnd mirrors spec §8 scenario 2: a 2-line scroll
// region with origin mode on, writing three lines, should leave row 1 = '2'
// and row 2 = '3' with row 0 blank.
func TestGrid_ScrollUpEndToEnd(t *testing.T) {
	g := NewGrid(10, 4, 8, true)
	g.SetScrollRegion(2, 3) // rows 1..2 (0-based)
	g.SetOriginMode(true)

	write := func(ch rune) {
		x, y := g.CursorPageXY()
		gl := Glyph{Codepoint: ch, Fg: DefaultForeground, Bg: DefaultBackground}
		g.writeAtScreenRow(x, y+g.marginTop, gl)
	}
	newline := func() {
		if g.cursorY == g.marginBottom {
			g.scrollUp(1)
		} else if g.cursorY < g.rows-1 {
			g.cursorY++
		}
		g.cursorX = 0
	}

	write('1')
	newline()
	write('2')
	newline()
	write('3')

	if g.CellAt(0, 1).Codepoint != '2' {
		t.Errorf("row 1 = %q, want '2'", g.CellAt(0, 1).Codepoint)
	}
	if g.CellAt(0, 2).Codepoint != '3' {
		t.Errorf("row 2 = %q, want '3'", g.CellAt(0, 2).Codepoint)
	}
	if !g.CellAt(0, 0).IsEmpty() {
		t.Error("row 0 (outside scroll region) should be untouched/blank")
	}
}

func TestGrid_AlignPreservesContent(t *testing.T) {
	g := NewGrid(3, 4, 8, true)
	g.SetScrollRegion(1, 4)
	for i := 0; i < 3; i++ {
		g.scrollUp(1)
	}
	g.writeAtScreenRow(0, 0, Glyph{Codepoint: 'x'})
	before := g.CellAt(0, 0).Codepoint
	g.align()
	after := g.CellAt(0, 0).Codepoint
	if before != after {
		t.Errorf("align() changed cell content: before=%q after=%q", before, after)
	}
	if g.ringTop != 0 {
		t.Error("align() should reset ringTop to 0")
	}
}

func TestGrid_Resize(t *testing.T) {
	g := NewGrid(5, 5, 8, true)
	g.writeAtScreenRow(0, 0, Glyph{Codepoint: 'x'})
	g.Resize(10, 8)
	if g.Cols() != 10 || g.Rows() != 8 {
		t.Fatalf("got (%d,%d), want (10,8)", g.Cols(), g.Rows())
	}
	if g.CellAt(0, 0).Codepoint != 'x' {
		t.Error("Resize should preserve the overlapping region")
	}
}

func TestGrid_Reset(t *testing.T) {
	g := NewGrid(5, 5, 8, true)
	g.writeAtScreenRow(0, 0, Glyph{Codepoint: 'x'})
	g.attr = AttrBold
	g.Reset(8)
	if !g.CellAt(0, 0).IsEmpty() {
		t.Error("Reset should clear the grid")
	}
	if g.attr != 0 {
		t.Error("Reset should clear style attributes")
	}
	if g.originMode {
		t.Error("Reset should leave origin mode off")
	}
	x, y := g.CursorPageXY()
	if x != 0 || y != 0 {
		t.Errorf("cursor after Reset = (%d,%d), want (0,0)", x, y)
	}
}

func TestGrid_TabStopsDefaultInterval(t *testing.T) {
	g := NewGrid(20, 3, 8, true)
	for _, x := range []int{0, 8, 16} {
		if !g.tabStops[x] {
			t.Errorf("expected tab stop at column %d", x)
		}
	}
	if g.tabStops[1] {
		t.Error("column 1 should not be a tab stop")
	}
}
