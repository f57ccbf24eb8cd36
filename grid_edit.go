package vtcore

// This file holds the grid's linear-index editing primitives: fill, erase,
// insert, and delete, plus the higher-level line/character operations CSI
// dispatch drives. Grounded on original_source/src/terminal.c's
// term_fill/term_erase/term_delete/term_insert and, for the Go
// per-operation shape, on phroun-purfecterm/buffer_edit.go's
// InsertLines/DeleteLines/DeleteChars (whose ragged-row bodies are not
// reused, only the operation breakdown).

// CellAt returns the glyph at screen-relative (x, y).
func (g *Grid) CellAt(x, y int) Glyph {
	return g.cells[g.SCREEN(x, y)]
}

// writeAtScreenRow stores gl at (x, screenY) and marks it dirty. screenY is
// the absolute screen row the caller already resolved (callers pass
// g.cursorY directly, which is stored in screen coordinates per §3).
func (g *Grid) writeAtScreenRow(x, screenY int, gl Glyph) {
	idx := g.SCREEN(x, screenY)
	g.cells[idx] = gl
	g.markDirty(screenY, x, x+1)
}

// fillPage fills every row of the active page with gl, used by DECALN.
func (g *Grid) fillPage(gl Glyph) {
	top, bottom := g.pageBounds()
	for y := top; y <= bottom; y++ {
		for x := 0; x < g.cols; x++ {
			g.cells[g.SCREEN(x, y)] = gl
		}
		g.markDirty(y, 0, g.cols)
	}
}

// eraseInLine implements EL. mode: 0 = cursor..end, 1 = start..cursor
// (inclusive), 2 = entire line.
func (g *Grid) eraseInLine(screenY, cursorX, mode int) {
	blank := g.blankGlyph()
	var from, to int
	switch mode {
	case 1:
		from, to = 0, cursorX
	case 2:
		from, to = 0, g.cols-1
	default:
		from, to = cursorX, g.cols-1
	}
	for x := from; x <= to; x++ {
		g.cells[g.SCREEN(x, screenY)] = blank
	}
	g.markDirty(screenY, from, to+1)
}

// eraseInDisplay implements ED. mode: 0 = cursor..end of screen, 1 =
// start..cursor, 2 = entire screen.
func (g *Grid) eraseInDisplay(cursorX, cursorScreenY, mode int) {
	switch mode {
	case 0:
		g.eraseInLine(cursorScreenY, cursorX, 0)
		for y := cursorScreenY + 1; y < g.rows; y++ {
			g.eraseInLine(y, 0, 2)
		}
	case 1:
		g.eraseInLine(cursorScreenY, cursorX, 1)
		for y := 0; y < cursorScreenY; y++ {
			g.eraseInLine(y, 0, 2)
		}
	case 2:
		for y := 0; y < g.rows; y++ {
			g.eraseInLine(y, 0, 2)
		}
	}
}

// eraseChars implements ECH: erase n cells starting at the cursor, no
// shift.
func (g *Grid) eraseChars(screenY, cursorX, n int) {
	to := cursorX + n - 1
	if to > g.cols-1 {
		to = g.cols - 1
	}
	if to < cursorX {
		return
	}
	blank := g.blankGlyph()
	for x := cursorX; x <= to; x++ {
		g.cells[g.SCREEN(x, screenY)] = blank
	}
	g.markDirty(screenY, cursorX, to+1)
}

// insertChars implements ICH: shift [cursorX, cols-1) right by n within the
// row, filling the gap with blanks, discarding anything pushed past EOL.
func (g *Grid) insertChars(screenY, cursorX, n int) {
	if n > g.cols-cursorX {
		n = g.cols - cursorX
	}
	if n <= 0 {
		return
	}
	for x := g.cols - 1; x >= cursorX+n; x-- {
		g.cells[g.SCREEN(x, screenY)] = g.cells[g.SCREEN(x-n, screenY)]
	}
	blank := g.blankGlyph()
	for x := cursorX; x < cursorX+n; x++ {
		g.cells[g.SCREEN(x, screenY)] = blank
	}
	g.markDirty(screenY, cursorX, g.cols)
}

// deleteChars implements DCH: shift [cursorX+n, cols) left by n within the
// row, erasing the tail.
func (g *Grid) deleteChars(screenY, cursorX, n int) {
	if n > g.cols-cursorX {
		n = g.cols - cursorX
	}
	if n <= 0 {
		return
	}
	for x := cursorX; x < g.cols-n; x++ {
		g.cells[g.SCREEN(x, screenY)] = g.cells[g.SCREEN(x+n, screenY)]
	}
	blank := g.blankGlyph()
	for x := g.cols - n; x < g.cols; x++ {
		g.cells[g.SCREEN(x, screenY)] = blank
	}
	g.markDirty(screenY, cursorX, g.cols)
}

// insertLines implements IL: insert n blank lines at cursor row, shifting
// rows [cursorRow, marginBottom] down and discarding the tail. Always
// realigns first, trading the O(1) ring optimization (which only serves
// whole-margin scroll) for simple contiguous row copying, per §4.3.
func (g *Grid) insertLines(cursorScreenY, n int) {
	if cursorScreenY < g.marginTop || cursorScreenY > g.marginBottom {
		return
	}
	g.align()
	if n > g.marginBottom-cursorScreenY+1 {
		n = g.marginBottom - cursorScreenY + 1
	}
	for y := g.marginBottom; y >= cursorScreenY+n; y-- {
		g.copyRow(y, y-n)
	}
	blank := g.blankGlyph()
	for y := cursorScreenY; y < cursorScreenY+n; y++ {
		g.fillRowPhysical(y, blank)
	}
	g.invalidateRange(cursorScreenY, g.marginBottom)
}

// deleteLines implements DL: delete n lines at cursor row, shifting
// [cursorRow+n, marginBottom] up and erasing the tail.
func (g *Grid) deleteLines(cursorScreenY, n int) {
	if cursorScreenY < g.marginTop || cursorScreenY > g.marginBottom {
		return
	}
	g.align()
	if n > g.marginBottom-cursorScreenY+1 {
		n = g.marginBottom - cursorScreenY + 1
	}
	for y := cursorScreenY; y <= g.marginBottom-n; y++ {
		g.copyRow(y, y+n)
	}
	blank := g.blankGlyph()
	for y := g.marginBottom - n + 1; y <= g.marginBottom; y++ {
		g.fillRowPhysical(y, blank)
	}
	g.invalidateRange(cursorScreenY, g.marginBottom)
}

func (g *Grid) copyRow(dstScreenY, srcScreenY int) {
	dst := g.physicalRow(dstScreenY) * g.cols
	src := g.physicalRow(srcScreenY) * g.cols
	copy(g.cells[dst:dst+g.cols], g.cells[src:src+g.cols])
}

func (g *Grid) fillRowPhysical(screenY int, gl Glyph) {
	p := g.physicalRow(screenY) * g.cols
	for i := p; i < p+g.cols; i++ {
		g.cells[i] = gl
	}
}
