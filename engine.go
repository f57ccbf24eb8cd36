package vtcore

import (
	"log/slog"
	"sync"
	"time"
)

// Callbacks are the push-style collaborators the core drives, per §6.
// WriteHost sends reply bytes back to the child; WriteLine/ClearLine paint
// the display; WriteFinished signals the end of a flush; ResChange reports
// a resize so the backend can resize its pixmap and the child's window
// size.
type Callbacks struct {
	WriteHost     func(data []byte)
	WriteLine     func(col, row int, text []rune, fg, bg RGB, bold, underline bool)
	ClearLine     func(col, row, n int, bg RGB)
	WriteFinished func()
	ResChange     func(cols, rows int)
}

// Tunables are the caller-supplied knobs named in §6: default tab
// interval, background-colour-erase on/off, blink interval, and the
// active/passive redraw rates a surrounding scheduler uses to throttle
// Flush. Grounded on original_source/src/types.h's config_t.
type Tunables struct {
	TabInterval     int
	BCE             bool
	BlinkInterval   time.Duration
	ActiveRedrawHz  float64
	PassiveRedrawHz float64
}

// DefaultTunables mirrors original_source's config_t defaults (tabsize 8)
// plus reasonable VT220-class redraw rates.
func DefaultTunables() Tunables {
	return Tunables{
		TabInterval:     8,
		BCE:             true,
		BlinkInterval:   500 * time.Millisecond,
		ActiveRedrawHz:  60,
		PassiveRedrawHz: 4,
	}
}

// Engine is the terminal core: it owns the Grid, the Parser, and the modes
// and callbacks the dispatch tables in dispatch_esc.go/dispatch_csi.go/
// dispatch_sgr.go/dispatch_osc.go act on. A sync.RWMutex guards all mutable
// state so Flush/Resize/HandleKeypress can be called safely from a
// supervising goroutine while Write is driven from a reader goroutine
// (§5; see also SPEC_FULL.md's Ambient Stack on why the guard exists despite
// single-threaded cooperative scheduling of the hot path).
type Engine struct {
	mu sync.RWMutex

	grid   *Grid
	parser *Parser
	cb     Callbacks

	palette  Palette
	tunables Tunables
	log      *slog.Logger

	lastWritten rune

	crlf                   bool // LNM
	reverseVideo           bool // DECSCNM
	showCursor             bool
	blinkCursor            bool
	allowDECCOLM           bool
	noClearOnColModeChange bool // DECNCSM
	col132                 bool

	singleShift *Bank

	blinked           bool
	nextBlinkDeadline time.Time

	haveLastCursor     bool
	lastCursorX        int
	lastCursorY        int
}

// Init builds an Engine with the given initial size, palette, tunables,
// and callbacks, per §6's init(callbacks). A nil logger installs
// slog.Default(), per the Ambient Stack.
func Init(cols, rows int, palette Palette, tunables Tunables, cb Callbacks, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		grid:        NewGrid(cols, rows, tunables.TabInterval, tunables.BCE),
		parser:      NewParser(log),
		cb:          cb,
		palette:     palette,
		tunables:    tunables,
		log:         log,
		showCursor:  true,
		blinked:     false,
	}
	return e
}

// Destroy releases any resources the Engine owns. The core holds nothing
// the Go garbage collector doesn't already reclaim; this exists to satisfy
// §6's init/destroy pairing for symmetry with callers that expect it.
func (e *Engine) Destroy() {}

func (e *Engine) writeHost(b []byte) {
	if e.cb.WriteHost != nil {
		e.cb.WriteHost(b)
	}
}

// Write pushes bytes from the child into the engine, returning the number
// of bytes consumed — always len(data) in this implementation, since the
// parser internally carries any incomplete trailing UTF-8 sequence across
// calls (§5's term_write(bytes) → consumed_count contract).
func (e *Engine) Write(data []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	consumed := 0
	for consumed < len(data) {
		n := e.parser.Feed(data[consumed:], e.dispatchEvent)
		if n == 0 {
			break
		}
		consumed += n
	}
	return consumed
}

func (e *Engine) dispatchEvent(ev Event) {
	switch ev.Kind {
	case EventPrint:
		e.writeCodepoint(ev.Rune)
	case EventExecute:
		e.controlChar(byte(ev.Rune))
	case EventEsc:
		e.dispatchEsc(ev.EscFinal, ev.EscIntermediate)
	case EventCsi:
		e.dispatchCsi(ev.CsiFinal, ev.CsiParams, ev.CsiPrivate, ev.CsiIntermediate)
	case EventOsc:
		e.dispatchOsc(ev.OscPayload)
	}
}

// controlChar handles a single C0 control byte that fell through the
// parser unhandled, per §4.4's intermediate-\0 ESC table plus the plain C0
// set BS/HT/LF/VT/FF/CR/SO/SI, grounded on original_source's
// term_do_control_char.
func (e *Engine) controlChar(c byte) {
	g := e.grid
	switch c {
	case 0x08: // BS
		if g.cursorX > 0 {
			g.cursorX--
		}
		g.wrapNext = false
		g.cursorDirty = true
	case 0x09: // HT
		e.tabMove(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		e.newline(e.crlf)
	case 0x0D: // CR
		g.cursorX = 0
		g.wrapNext = false
		g.cursorDirty = true
	case 0x0E: // SO
		g.activeBank = G1
	case 0x0F: // SI
		g.activeBank = G0
	case 0x07: // BEL outside any sequence: no-op
	default:
	}
}

// writeCodepoint implements §4.3's write_codepoint algorithm.
func (e *Engine) writeCodepoint(cp rune) {
	g := e.grid

	bank := g.activeBank
	if e.singleShift != nil {
		bank = *e.singleShift
		e.singleShift = nil
	}
	cp = translate(g.banks[bank], cp)

	if g.insert {
		g.insertChars(g.cursorY, g.cursorX, 1)
	}
	if g.wrapNext && g.autowrap {
		e.newline(true)
	}

	gl := Glyph{Codepoint: cp, Fg: g.fg, Bg: g.bg, Attr: g.attr}
	g.writeAtScreenRow(g.cursorX, g.cursorY, gl)

	if g.cursorX < g.cols-1 {
		g.cursorX++
		g.wrapNext = false
	} else {
		g.wrapNext = true
	}
	g.cursorDirty = true
	e.lastWritten = cp
}

// newline implements §4.3's newline(cr): scroll only triggers exactly at
// the bottom scroll margin; rows outside the margin (full-screen/origin-
// off addressing) simply advance or clamp at the physical screen edge.
func (e *Engine) newline(cr bool) {
	g := e.grid
	switch {
	case g.cursorY == g.marginBottom:
		g.scrollUp(1)
	case g.cursorY < g.rows-1:
		g.cursorY++
	}
	if cr {
		g.cursorX = 0
	}
	g.wrapNext = false
	g.cursorDirty = true
}

// reverseIndex is RI's mirror of newline: scrolls down at the top margin.
func (e *Engine) reverseIndex() {
	g := e.grid
	switch {
	case g.cursorY == g.marginTop:
		g.scrollDown(1)
	case g.cursorY > 0:
		g.cursorY--
	}
	g.wrapNext = false
	g.cursorDirty = true
}

// tabMove advances the cursor forward by n tab stops, clamping at the
// right edge if it runs out of stops.
func (e *Engine) tabMove(n int) {
	g := e.grid
	for i := 0; i < n; i++ {
		next := -1
		for x := g.cursorX + 1; x < g.cols; x++ {
			if g.tabStops[x] {
				next = x
				break
			}
		}
		if next < 0 {
			g.cursorX = g.cols - 1
			break
		}
		g.cursorX = next
	}
	g.wrapNext = false
	g.cursorDirty = true
}

func (e *Engine) saveCursor() {
	g := e.grid
	x, y := g.CursorPageXY()
	g.saved = savedCursor{
		x: x, y: y,
		autowrap:   g.autowrap,
		fg:         g.fg,
		bg:         g.bg,
		attr:       g.attr,
		banks:      g.banks,
		activeBank: g.activeBank,
		valid:      true,
	}
}

func (e *Engine) restoreCursor() {
	g := e.grid
	if !g.saved.valid {
		return
	}
	s := g.saved
	g.autowrap = s.autowrap
	g.fg, g.bg, g.attr = s.fg, s.bg, s.attr
	g.banks = s.banks
	g.activeBank = s.activeBank
	g.moveCursorTo(s.x, s.y)
}

// ris implements RIS (ESC c): resets the grid and every mode to the same
// state Init leaves them in, per §8's invariant.
func (e *Engine) ris() {
	e.grid.Reset(e.tunables.TabInterval)
	e.lastWritten = 0
	e.crlf = false
	e.reverseVideo = false
	e.showCursor = true
	e.blinkCursor = false
	e.allowDECCOLM = false
	e.noClearOnColModeChange = false
	e.col132 = false
	e.singleShift = nil
	e.blinked = false
}

// Resize reallocates the grid and notifies the child of the new window
// size via ResChange, per §3 invariant 5.
func (e *Engine) Resize(cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeLocked(cols, rows)
}

func (e *Engine) resizeLocked(cols, rows int) {
	if cols == e.grid.cols && rows == e.grid.rows {
		return
	}
	e.grid.Resize(cols, rows)
	if e.cb.ResChange != nil {
		e.cb.ResChange(cols, rows)
	}
}

// Invalidate marks the entire grid and cursor dirty, forcing the next
// Flush to repaint everything.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.invalidateAll()
}

// GC performs opportunistic housekeeping: realigning the ring while the
// engine is otherwise idle so a later operation that must realign (insert/
// delete spanning the discontinuity) doesn't pay for it under load, per
// §5's term_gc().
func (e *Engine) GC() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.align()
}
