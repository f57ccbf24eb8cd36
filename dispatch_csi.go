package vtcore

// dispatch_csi.go turns a completed CSI dispatch Event into grid/engine
// mutations, per §4.5. Grounded on original_source/src/terminal.c's
// term_do_csi_sequence and its per-final-byte case table.

// csiParam reads the idx'th parameter, treating both "never supplied" and
// an explicit 0 as "use def" — the convention the count and position
// finals below rely on (§4.5's "omitted parameters default"); ED, EL, TBC,
// DSR and DECSTBM use csiParamRaw instead.
func csiParam(params []int32, idx, def int) int {
	if idx >= len(params) || params[idx] == unsetParam || params[idx] == 0 {
		return def
	}
	return int(params[idx])
}

// csiParamRaw reads the idx'th parameter verbatim, with unsetParam mapped to
// def but an explicit 0 preserved — used where 0 and "missing" differ (mode
// numbers, SGR handled separately in dispatch_sgr.go).
func csiParamRaw(params []int32, idx, def int) int {
	if idx >= len(params) || params[idx] == unsetParam {
		return def
	}
	return int(params[idx])
}

func (e *Engine) dispatchCsi(final byte, params []int32, private, intermediate byte) {
	g := e.grid

	if intermediate == '"' && final == 'q' {
		return // DECSCA, not modeled
	}

	if private == '?' {
		e.dispatchCsiPrivate(final, params)
		return
	}

	switch final {
	case 'A': // CUU
		x, y := g.CursorPageXY()
		g.moveCursorTo(x, y-csiParam(params, 0, 1))
	case 'B': // CUD
		x, y := g.CursorPageXY()
		g.moveCursorTo(x, y+csiParam(params, 0, 1))
	case 'C': // CUF
		x, y := g.CursorPageXY()
		g.moveCursorTo(x+csiParam(params, 0, 1), y)
	case 'D': // CUB
		x, y := g.CursorPageXY()
		g.moveCursorTo(x-csiParam(params, 0, 1), y)
	case 'E': // CNL
		_, y := g.CursorPageXY()
		g.moveCursorTo(0, y+csiParam(params, 0, 1))
	case 'F': // CPL
		_, y := g.CursorPageXY()
		g.moveCursorTo(0, y-csiParam(params, 0, 1))
	case 'G', '`': // CHA / HPA
		_, y := g.CursorPageXY()
		g.moveCursorTo(csiParam(params, 0, 1)-1, y)
	case 'd': // VPA
		x, _ := g.CursorPageXY()
		g.moveCursorTo(x, csiParam(params, 0, 1)-1)
	case 'H', 'f': // CUP / HVP
		row := csiParam(params, 0, 1)
		col := csiParam(params, 1, 1)
		g.moveCursorTo(col-1, row-1)
	case 'I': // CHT
		e.tabMove(csiParam(params, 0, 1))
	case 'Z': // CBT
		e.tabMoveBack(csiParam(params, 0, 1))
	case 'J': // ED
		x, y := g.CursorPageXY()
		g.eraseInDisplay(x, y+pageTop(g), csiParamRaw(params, 0, 0))
	case 'K': // EL
		x, y := g.CursorPageXY()
		g.eraseInLine(y+pageTop(g), x, csiParamRaw(params, 0, 0))
	case 'L': // IL
		_, y := g.CursorPageXY()
		g.insertLines(y+pageTop(g), csiParam(params, 0, 1))
	case 'M': // DL
		_, y := g.CursorPageXY()
		g.deleteLines(y+pageTop(g), csiParam(params, 0, 1))
	case 'P': // DCH
		x, y := g.CursorPageXY()
		g.deleteChars(y+pageTop(g), x, csiParam(params, 0, 1))
	case '@': // ICH
		x, y := g.CursorPageXY()
		g.insertChars(y+pageTop(g), x, csiParam(params, 0, 1))
	case 'X': // ECH
		x, y := g.CursorPageXY()
		g.eraseChars(y+pageTop(g), x, csiParam(params, 0, 1))
	case 'S', 'T': // SU/SD: ignored, per §4.5's table
	case 'b': // REP: repeat the last printed codepoint n times
		n := csiParam(params, 0, 1)
		for i := 0; i < n; i++ {
			e.writeCodepoint(e.lastWritten)
		}
	case 'c': // DA
		e.writeHost([]byte(replyDA))
	case 'r': // DECSTBM
		top := csiParamRaw(params, 0, -1)
		bottom := csiParamRaw(params, 1, -1)
		g.SetScrollRegion(top, bottom)
		g.moveCursorTo(0, 0)
	case 'g': // TBC
		e.tabClear(csiParamRaw(params, 0, 0))
	case 'm': // SGR
		e.dispatchSGR(params)
	case 'n': // DSR
		e.dispatchDSR(csiParamRaw(params, 0, 0))
	case 's': // save cursor (ANSI.SYS form)
		e.saveCursor()
	case 'u': // restore cursor (ANSI.SYS form)
		e.restoreCursor()
	case 'h': // SM
		e.setMode(params, true)
	case 'l': // RM
		e.setMode(params, false)
	case 't': // window manipulation: accepted, no-op per §1's non-goals
	default:
	}
}

func pageTop(g *Grid) int {
	top, _ := g.pageBounds()
	return top
}

// tabMoveBack moves the cursor to the nth previous tab stop (CBT).
func (e *Engine) tabMoveBack(n int) {
	g := e.grid
	for i := 0; i < n; i++ {
		prev := -1
		for x := g.cursorX - 1; x >= 0; x-- {
			if g.tabStops[x] {
				prev = x
				break
			}
		}
		if prev < 0 {
			g.cursorX = 0
			break
		}
		g.cursorX = prev
	}
	g.wrapNext = false
	g.cursorDirty = true
}

// tabClear implements TBC. mode 0 clears the stop at the cursor, mode 3
// clears every stop.
func (e *Engine) tabClear(mode int) {
	g := e.grid
	switch mode {
	case 3:
		for i := range g.tabStops {
			g.tabStops[i] = false
		}
	default:
		if g.cursorX >= 0 && g.cursorX < len(g.tabStops) {
			g.tabStops[g.cursorX] = false
		}
	}
}

// dispatchDSR implements Device Status Report: 5 reports terminal status
// OK, 6 reports the cursor position (screen-relative, 1-based), 15 reports
// the (stubbed, always-ready) printer status.
func (e *Engine) dispatchDSR(code int) {
	switch code {
	case 5:
		e.writeHost([]byte(replyDSRStatus()))
	case 6:
		x, y := e.grid.CursorScreenXY()
		e.writeHost([]byte(replyDSRCursor(y+1, x+1)))
	case 15:
		e.writeHost([]byte(replyDSRPrinter()))
	}
}

// setMode implements SM/RM for the (non-DEC) ANSI mode numbers this core
// models: 4 is IRM (insert/replace), 20 is LNM (linefeed/newline).
func (e *Engine) setMode(params []int32, on bool) {
	for _, raw := range params {
		if raw == unsetParam {
			continue
		}
		switch raw {
		case 4:
			e.grid.insert = on
		case 20:
			e.crlf = on
		}
	}
}

// dispatchCsiPrivate implements the DEC private mode family (CSI ? Pm h/l),
// per §4.5.2, grounded on original_source's term_do_csi_sequence private-
// mode branch.
func (e *Engine) dispatchCsiPrivate(final byte, params []int32) {
	if final == 'W' { // DECST8C: p1=5 resets tab stops to every 8th column, whatever TabInterval is
		if csiParam(params, 0, 0) == 5 {
			e.grid.resetTabStops(8)
		}
		return
	}
	on := final == 'h'
	if final != 'h' && final != 'l' {
		return
	}
	g := e.grid
	for _, raw := range params {
		if raw == unsetParam {
			continue
		}
		switch raw {
		case 1: // DECCKM: application cursor keys, not modeled beyond acceptance
		case 3: // DECCOLM: 80/132 column switch
			if e.allowDECCOLM {
				cols := 80
				if on {
					cols = 132
				}
				e.col132 = on
				e.resizeLocked(cols, g.rows)
				if !e.noClearOnColModeChange {
					g.Reset(e.tunables.TabInterval)
				}
			}
		case 5: // DECSCNM: reverse video
			e.reverseVideo = on
		case 6: // DECOM: origin mode
			g.SetOriginMode(on)
		case 7: // DECAWM: autowrap
			g.autowrap = on
		case 8: // DECARM: autorepeat, not modeled, accepted
		case 9, 1000, 1002, 1003, 1006: // mouse reporting: non-goal, accepted as no-op
		case 12: // blinking cursor (att610)
			e.blinkCursor = on
		case 25: // DECTCEM: cursor visibility
			e.showCursor = on
		case 40: // allow 80/132 switch
			e.allowDECCOLM = on
		case 45: // reverse-wraparound, not modeled, accepted
		case 47, 1047, 1049: // alternate screen buffer: non-goal, accepted as no-op
		case 1048:
			if on {
				e.saveCursor()
			} else {
				e.restoreCursor()
			}
		case 95: // DECNCSM: no clear on column mode change
			e.noClearOnColModeChange = on
		default:
		}
	}
}
