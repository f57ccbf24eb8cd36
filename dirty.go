package vtcore

import "time"

// dirty.go implements term_flush() per §4.7: blink-phase toggling, per-row
// run coalescing into write_line/clear_line callbacks, cursor repaint, and
// the write_finished signal. Grounded on original_source/src/terminal.c's
// term_flush and on phroun-purfecterm's per-cell compositing (inverse/
// reverse-video swap, blink suppression), generalized to this core's single
// active-page grid rather than phroun-purfecterm's layered sprite/window
// stack.

// Flush walks every dirty row, emits coalesced runs to the callbacks, then
// repaints the cursor, per §4.7. now drives the blink-phase toggle; pass
// the current monotonic time from the surrounding scheduler.
func (e *Engine) Flush(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.grid
	painted := false

	if e.blinkCursor || e.hasBlinkAttr() {
		if e.nextBlinkDeadline.IsZero() {
			e.nextBlinkDeadline = now.Add(e.tunables.BlinkInterval)
		} else if !now.Before(e.nextBlinkDeadline) {
			e.blinked = !e.blinked
			e.nextBlinkDeadline = now.Add(e.tunables.BlinkInterval)
			g.invalidateBlinking()
		}
	}

	for y := 0; y < g.rows; y++ {
		span := g.dirty[y]
		if span.Left >= span.Right {
			continue
		}
		e.flushRow(y, span.Left, span.Right)
		g.dirty[y] = dirtySpan{}
		painted = true
	}

	cursorMoved := e.paintCursor()
	if painted || cursorMoved {
		if e.cb.WriteFinished != nil {
			e.cb.WriteFinished()
		}
	}
}

func (e *Engine) hasBlinkAttr() bool {
	for _, c := range e.grid.cells {
		if c.Attr.Has(AttrBlink) {
			return true
		}
	}
	return false
}

// effectiveColors resolves a glyph's fg/bg to RGB, applying inverse XOR
// reverse-video swap and blink/invisible suppression, per §4.7 step 3.
func (e *Engine) effectiveColors(gl Glyph) (fg, bg RGB, hidden bool) {
	inverse := gl.Attr.Has(AttrInverse) != e.reverseVideo
	fgColor, bgColor := gl.Fg, gl.Bg
	if inverse {
		fgColor, bgColor = bgColor, fgColor
	}
	fg = e.palette.Resolve(fgColor, true)
	bg = e.palette.Resolve(bgColor, false)
	hidden = gl.Attr.Has(AttrInvisible) || (gl.Attr.Has(AttrBlink) && e.blinked)
	return fg, bg, hidden
}

// flushRow coalesces [left, right) of row y into runs, emitting write_line
// for non-empty/visible runs and clear_line for empty or hidden runs,
// splitting whenever empty-vs-nonempty, fg, bg, or attr bits change.
func (e *Engine) flushRow(y, left, right int) {
	g := e.grid
	col := left
	for col < right {
		start := col
		gl := g.CellAt(col, y)
		fg, bg, hidden := e.effectiveColors(gl)
		empty := gl.IsEmpty() || hidden
		runText := make([]rune, 0, right-left)
		if !empty {
			runText = append(runText, gl.Codepoint)
		}
		col++
		for col < right {
			next := g.CellAt(col, y)
			nfg, nbg, nhidden := e.effectiveColors(next)
			nempty := next.IsEmpty() || nhidden
			if nempty != empty || nfg != fg || nbg != bg || next.Attr != gl.Attr {
				break
			}
			if !empty {
				runText = append(runText, next.Codepoint)
			}
			col++
		}
		if empty {
			if e.cb.ClearLine != nil {
				e.cb.ClearLine(start, y, col-start, bg)
			}
		} else {
			if e.cb.WriteLine != nil {
				e.cb.WriteLine(start, y, runText, fg, bg, gl.Attr.Has(AttrBold), gl.Attr.Has(AttrUnderline))
			}
		}
	}
}

// paintCursor re-paints the previous cursor cell with its underlying style
// and over-paints the current one with fg/bg swapped, when visible and not
// in a blinked-off phase, per §4.7 step 4. Returns whether anything moved.
func (e *Engine) paintCursor() bool {
	g := e.grid
	x, y := g.CursorScreenXY()
	moved := !e.haveLastCursor || e.lastCursorX != x || e.lastCursorY != y

	if e.haveLastCursor && (e.lastCursorX != x || e.lastCursorY != y) {
		e.flushRow(e.lastCursorY, e.lastCursorX, e.lastCursorX+1)
	}

	if e.showCursor && !(e.blinkCursor && e.blinked) {
		gl := g.CellAt(x, y)
		fg, bg, hidden := e.effectiveColors(gl)
		if !hidden {
			fg, bg = bg, fg
		}
		text := []rune{gl.Codepoint}
		if gl.IsEmpty() {
			text = []rune{' '}
		}
		if e.cb.WriteLine != nil {
			e.cb.WriteLine(x, y, text, fg, bg, gl.Attr.Has(AttrBold), gl.Attr.Has(AttrUnderline))
		}
		moved = moved || g.cursorDirty
	}

	e.lastCursorX, e.lastCursorY = x, y
	e.haveLastCursor = true
	wasDirty := g.cursorDirty
	g.cursorDirty = false
	return moved || wasDirty
}

// invalidateBlinking marks every cell carrying the blink attribute dirty,
// per §4.7 step 1.
func (g *Grid) invalidateBlinking() {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if g.cells[g.SCREEN(x, y)].Attr.Has(AttrBlink) {
				g.markDirty(y, x, x+1)
			}
		}
	}
}
