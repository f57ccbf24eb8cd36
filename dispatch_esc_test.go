package vtcore

import "testing"

func TestDispatchEsc_IND(t *testing.T) {
	e := newTestEngine(5, 3)
	e.grid.moveCursorTo(0, 0)
	e.dispatchEsc('D', 0)
	_, y := e.grid.CursorPageXY()
	if y != 1 {
		t.Errorf("IND moved cursor to row %d, want 1", y)
	}
}

func TestDispatchEsc_NEL_AlsoReturnsToColumnZero(t *testing.T) {
	e := newTestEngine(5, 3)
	e.grid.moveCursorTo(3, 0)
	e.dispatchEsc('E', 0)
	x, y := e.grid.CursorPageXY()
	if x != 0 || y != 1 {
		t.Errorf("NEL -> (%d,%d), want (0,1)", x, y)
	}
}

func TestDispatchEsc_RI_ScrollsAtTopMargin(t *testing.T) {
	e := newTestEngine(5, 3)
	e.grid.moveCursorTo(0, 0)
	e.grid.writeAtScreenRow(0, 0, Glyph{Codepoint: 'z'})
	e.dispatchEsc('M', 0)
	if e.grid.CellAt(0, 1).Codepoint != 'z' {
		t.Errorf("RI at the top margin should scroll the line down; row1 = %q", e.grid.CellAt(0, 1).Codepoint)
	}
}

func TestDispatchEsc_HTS_SetsTabStopAtCursor(t *testing.T) {
	e := newTestEngine(10, 3)
	e.grid.moveCursorTo(5, 0)
	e.dispatchEsc('H', 0)
	if !e.grid.tabStops[5] {
		t.Error("HTS should set a tab stop at the cursor column")
	}
}

func TestDispatchEsc_SingleShiftConsumesExactlyOneCodepoint(t *testing.T) {
	e := newTestEngine(5, 3)
	e.grid.banks[G2] = CharsetDECSpecialGraphics
	e.dispatchEsc('N', 0) // SS2
	e.Write([]byte("a"))
	if e.singleShift != nil {
		t.Error("SS2 should be cleared after exactly one codepoint")
	}
	e.Write([]byte("a"))
	if e.grid.CellAt(0, 0).Codepoint == e.grid.CellAt(1, 0).Codepoint {
		t.Error("only the first 'a' should have been translated via the single-shifted bank")
	}
}

func TestDispatchEsc_DECID_RepliesLikeDA(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }
	e.dispatchEsc('Z', 0)
	if string(got) != "\x1b[?1;0c" {
		t.Errorf("DECID reply = %q, want %q", got, "\x1b[?1;0c")
	}
}

func TestDispatchEsc_RIS_ResetsEverything(t *testing.T) {
	e := newTestEngine(5, 3)
	e.Write([]byte("abc"))
	e.crlf = true
	e.dispatchEsc('c', 0)
	if !e.grid.CellAt(0, 0).IsEmpty() {
		t.Error("RIS should clear the grid")
	}
	if e.crlf {
		t.Error("RIS should reset LNM")
	}
}

func TestDispatchEsc_DECSC_DECRC_RoundTrip(t *testing.T) {
	e := newTestEngine(10, 5)
	e.grid.moveCursorTo(4, 3)
	e.grid.attr = AttrUnderline
	e.dispatchEsc('7', 0) // DECSC

	e.grid.moveCursorTo(0, 0)
	e.grid.attr = 0
	e.dispatchEsc('8', 0) // DECRC

	x, y := e.grid.CursorPageXY()
	if x != 4 || y != 3 {
		t.Errorf("cursor after DECRC = (%d,%d), want (4,3)", x, y)
	}
	if e.grid.attr != AttrUnderline {
		t.Error("DECRC should restore the saved SGR attribute state")
	}
}

func TestDispatchEsc_DECALN_FillsPageWithE(t *testing.T) {
	e := newTestEngine(3, 2)
	e.dispatchEsc('8', '#')
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if e.grid.CellAt(x, y).Codepoint != 'E' {
				t.Fatalf("cell (%d,%d) = %q, want 'E'", x, y, e.grid.CellAt(x, y).Codepoint)
			}
		}
	}
}

func TestDispatchEsc_CharsetDesignation(t *testing.T) {
	e := newTestEngine(5, 3)
	e.dispatchEsc('0', '(') // designate DEC special graphics into G0
	if e.grid.banks[G0] != CharsetDECSpecialGraphics {
		t.Error("ESC ( 0 should designate DEC special graphics into G0")
	}
	e.dispatchEsc('B', ')') // designate US ASCII into G1
	if e.grid.banks[G1] != CharsetUS {
		t.Error("ESC ) B should designate US ASCII into G1")
	}
}

func TestDispatchEsc_UnknownFinalIsNoop(t *testing.T) {
	e := newTestEngine(5, 3)
	e.grid.moveCursorTo(2, 2)
	e.dispatchEsc('!', 0)
	x, y := e.grid.CursorPageXY()
	if x != 2 || y != 2 {
		t.Error("an unrecognized ESC final should not move the cursor")
	}
}
