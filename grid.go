package vtcore

// dirtySpan is a half-open column range, [Left, Right), needing repaint.
type dirtySpan struct {
	Left, Right int
}

// savedCursor is the DECSC/DECRC snapshot: cursor position, autowrap,
// current style, and charset banks/mode. Origin mode is deliberately
// excluded, per spec §3 and original_source's saved_cur (which declares but
// never populates an origin_mode field) — see DESIGN.md.
type savedCursor struct {
	x, y          int
	autowrap      bool
	fg, bg        Color
	attr          AttrMask
	banks         [4]Charset
	activeBank    Bank
	valid         bool
}

// Grid is the styled character matrix: a ring buffer over the rows inside
// the scroll margin, plus cursor, style, charset, tab-stop, and dirty-span
// state (§3). Dispatch code reaches cells only through the PAGE/SCREEN
// address functions and the Grid's own methods (this file, grid_edit.go,
// dirty.go).
//
// Grounded on original_source/src/terminal.c's PAGE/SCREEN/term_align
// (ring addressing and realignment) and on phroun-purfecterm's per-method
// sync.RWMutex-guarded mutator idiom (buffer_cursor.go, buffer_edit.go),
// generalized to this module's margin/ring/origin-mode model, which the
// teacher's ragged-row Buffer does not have.
type Grid struct {
	cols, rows int
	cells      []Glyph

	marginTop, marginBottom int // 0-indexed, inclusive
	ringTop                 int

	originMode bool

	cursorX, cursorY int
	wrapNext         bool

	fg, bg   Color
	attr     AttrMask
	autowrap bool
	insert   bool

	banks      [4]Charset
	activeBank Bank

	tabStops []bool

	dirty       []dirtySpan
	cursorDirty bool

	saved savedCursor

	bce bool
}

// NewGrid builds a Grid of the given size with default scroll region
// (whole screen), origin mode off, autowrap on, UTF-8 charsets, and a tab
// stop every tabInterval columns, per original_source/src/types.h's config_t
// defaults (tabsize=8) and term_reset's autowrap=true/origin_mode
// defaulting.
func NewGrid(cols, rows int, tabInterval int, bce bool) *Grid {
	g := &Grid{}
	g.cols, g.rows = cols, rows
	g.cells = make([]Glyph, cols*rows)
	g.dirty = make([]dirtySpan, rows)
	g.fg, g.bg = DefaultForeground, DefaultBackground
	g.autowrap = true
	g.bce = bce
	g.resetScrollRegion()
	g.resetTabStops(tabInterval)
	g.invalidateAll()
	return g
}

func (g *Grid) marginHeight() int {
	return g.marginBottom - g.marginTop + 1
}

func (g *Grid) resetScrollRegion() {
	g.marginTop, g.marginBottom = 0, g.rows-1
	g.ringTop = 0
}

// SetScrollRegion implements DECSTBM. top/bottom are 1-based inclusive; -1
// for either requests the default. A region with bottom<=top is a no-op.
// Grounded on original_source's term_setscrollregion, which realigns the
// ring first and then re-derives the page from the current origin mode.
func (g *Grid) SetScrollRegion(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom < 1 {
		bottom = g.rows
	}
	t, b := top-1, bottom-1
	if b <= t || b >= g.rows {
		return
	}
	g.align()
	g.marginTop, g.marginBottom = t, b
	g.ringTop = 0
	g.invalidateAll()
}

// SetOriginMode implements DECOM. When on, cursor addressing and clamping
// are confined to the scroll margin.
func (g *Grid) SetOriginMode(on bool) {
	g.originMode = on
	g.moveCursorTo(0, 0)
}

func (g *Grid) pageBounds() (top, bottom int) {
	if g.originMode {
		return g.marginTop, g.marginBottom
	}
	return 0, g.rows - 1
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// physicalRow translates an absolute (screen) row into its backing storage
// row, applying the ring rotation only to rows inside the scroll margin;
// rows above and below it are addressed directly, per §3.
func (g *Grid) physicalRow(absRow int) int {
	absRow = clampInt(absRow, 0, g.rows-1)
	if absRow < g.marginTop || absRow > g.marginBottom {
		return absRow
	}
	h := g.marginHeight()
	logical := absRow - g.marginTop
	return g.marginTop + (logical+g.ringTop)%h
}

// PAGE returns the linear cell index for (x, y), y given relative to the
// active page's origin (whole screen, or the margin under DECOM).
func (g *Grid) PAGE(x, y int) int {
	top, bottom := g.pageBounds()
	abs := clampInt(top+y, top, bottom)
	return g.physicalRow(abs)*g.cols + clampInt(x, 0, g.cols-1)
}

// SCREEN returns the linear cell index for (x, y), y given relative to the
// physical screen regardless of margins or origin mode.
func (g *Grid) SCREEN(x, y int) int {
	abs := clampInt(y, 0, g.rows-1)
	return g.physicalRow(abs)*g.cols + clampInt(x, 0, g.cols-1)
}

// PageHeight and PageWidth report the active page's dimensions.
func (g *Grid) PageHeight() int {
	top, bottom := g.pageBounds()
	return bottom - top + 1
}
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// align rotates the ring back to offset 0 by reallocating the backing
// array and copying the pre-margin, margin, and post-margin regions in
// correct physical order, per §4.3. This is the only place that pays
// O(margin height) to flatten the ring; scrollUp/scrollDown never call it.
func (g *Grid) align() {
	if g.ringTop == 0 {
		return
	}
	h := g.marginHeight()
	next := make([]Glyph, len(g.cells))
	rowBytes := g.cols

	copy(next[0:g.marginTop*rowBytes], g.cells[0:g.marginTop*rowBytes])

	for l := 0; l < h; l++ {
		src := g.marginTop + (l+g.ringTop)%h
		dst := g.marginTop + l
		copy(next[dst*rowBytes:(dst+1)*rowBytes], g.cells[src*rowBytes:(src+1)*rowBytes])
	}

	postStart := (g.marginBottom + 1) * rowBytes
	copy(next[postStart:], g.cells[postStart:])

	g.cells = next
	g.ringTop = 0
}

func (g *Grid) eraseRowPhysical(physRow int) {
	start := physRow * g.cols
	blank := g.blankGlyph()
	for i := start; i < start+g.cols; i++ {
		g.cells[i] = blank
	}
}

// blankGlyph returns the glyph an erase should leave behind: background-
// colour-erase (BCE) retains the current fg/bg/attr when enabled, matching
// original_source's term_erase/term_fill; when disabled it's the plain
// default-colour empty cell.
func (g *Grid) blankGlyph() Glyph {
	if g.bce {
		return EmptyGlyphWithStyle(g.fg, g.bg, 0)
	}
	return EmptyGlyph()
}

// scrollUp advances the ring by n, recycling the rows that scroll off the
// top of the margin as fresh blank rows at the bottom — O(n), not
// O(margin height), per §4.3's newline().
func (g *Grid) scrollUp(n int) {
	h := g.marginHeight()
	for i := 0; i < n; i++ {
		recycled := g.marginTop + g.ringTop%h
		g.eraseRowPhysical(recycled)
		g.ringTop = (g.ringTop + 1) % h
	}
	g.invalidateAll()
}

// scrollDown is the mirror of scrollUp, used by reverse index at the top
// margin.
func (g *Grid) scrollDown(n int) {
	h := g.marginHeight()
	for i := 0; i < n; i++ {
		g.ringTop = (g.ringTop - 1 + h) % h
		recycled := g.marginTop + g.ringTop%h
		g.eraseRowPhysical(recycled)
	}
	g.invalidateAll()
}

// moveCursorTo sets the cursor to page-relative (x, y), clamping to the
// page, and always clears wrap_next — every cursor-movement primitive
// funnels through here, per original_source's term_cursor and §9's note
// that wrap_next must never be folded into cursor.x.
func (g *Grid) moveCursorTo(x, y int) {
	top, bottom := g.pageBounds()
	g.cursorX = clampInt(x, 0, g.cols-1)
	g.cursorY = clampInt(top+y, top, bottom)
	g.wrapNext = false
	g.cursorDirty = true
}

// CursorPageXY returns the cursor position relative to the active page.
func (g *Grid) CursorPageXY() (x, y int) {
	top, _ := g.pageBounds()
	return g.cursorX, g.cursorY - top
}

// CursorScreenXY returns the cursor position relative to the physical
// screen, used by DSR's cursor-position report.
func (g *Grid) CursorScreenXY() (x, y int) {
	return g.cursorX, g.cursorY
}

func (g *Grid) markDirty(y, left, right int) {
	if y < 0 || y >= g.rows {
		return
	}
	if left < 0 {
		left = 0
	}
	if right > g.cols {
		right = g.cols
	}
	if left >= right {
		return
	}
	d := &g.dirty[y]
	if d.Left == d.Right {
		d.Left, d.Right = left, right
		return
	}
	if left < d.Left {
		d.Left = left
	}
	if right > d.Right {
		d.Right = right
	}
}

func (g *Grid) invalidateAll() {
	for y := 0; y < g.rows; y++ {
		g.dirty[y] = dirtySpan{0, g.cols}
	}
	g.cursorDirty = true
}

func (g *Grid) invalidateRange(top, bottom int) {
	for y := top; y <= bottom && y < g.rows; y++ {
		g.markDirty(y, 0, g.cols)
	}
}

// Resize reallocates the matrix to the new size, copying the overlap from
// (0,0), clearing the remainder, and resetting the scroll region to full
// screen, per §3 invariant 5 and original_source's term_resize.
func (g *Grid) Resize(cols, rows int) {
	if cols < 1 || rows < 1 || (cols == g.cols && rows == g.rows) {
		return
	}
	g.align()
	next := make([]Glyph, cols*rows)
	for i := range next {
		next[i] = EmptyGlyph()
	}
	copyRows := rows
	if g.rows < copyRows {
		copyRows = g.rows
	}
	copyCols := cols
	if g.cols < copyCols {
		copyCols = g.cols
	}
	for y := 0; y < copyRows; y++ {
		srcStart := y * g.cols
		dstStart := y * cols
		copy(next[dstStart:dstStart+copyCols], g.cells[srcStart:srcStart+copyCols])
	}
	g.cells = next
	g.cols, g.rows = cols, rows
	g.resetScrollRegion()
	g.dirty = make([]dirtySpan, rows)
	g.moveCursorTo(g.cursorX, 0)
	g.invalidateAll()
}

// resetTabStops rebuilds the tab-stop vector with a stop every interval
// columns, 0-indexed.
func (g *Grid) resetTabStops(interval int) {
	if interval < 1 {
		interval = 8
	}
	g.tabStops = make([]bool, g.cols)
	for x := 0; x < g.cols; x += interval {
		g.tabStops[x] = true
	}
}

// Reset implements RIS (ESC c): restores style, modes, charset banks, tab
// stops and clears the grid, matching original_source's term_reset.
func (g *Grid) Reset(tabInterval int) {
	g.fg, g.bg = DefaultForeground, DefaultBackground
	g.attr = 0
	g.autowrap = true
	g.insert = false
	// DECOM defaults off (full-screen addressing) on reset, the common
	// VT100 power-on behavior; original_source's term_reset sets its
	// origin_mode field true here, but that field's sense is inverted at
	// its call sites (see DESIGN.md) and this is the less surprising
	// reading of "reset to initial state".
	g.originMode = false
	g.banks = [4]Charset{CharsetUTF8, CharsetUTF8, CharsetUTF8, CharsetUTF8}
	g.activeBank = G0
	g.saved = savedCursor{}
	g.resetScrollRegion()
	g.resetTabStops(tabInterval)
	for i := range g.cells {
		g.cells[i] = EmptyGlyph()
	}
	if g.dirty == nil {
		g.dirty = make([]dirtySpan, g.rows)
	}
	g.moveCursorTo(0, 0)
	g.invalidateAll()
}
