package vtcore

// dispatch_esc.go turns a completed ESC dispatch Event into grid/engine
// mutations, per §4.4's table. The forms carrying an intermediate are
// handled first: "#" (DECALN), then charset designation (intermediate one of
// "()*+-./" plus a final from charsetForFinal); the plain finals follow,
// grounded on original_source/src/terminal.c's term_do_escape_sequence.
func (e *Engine) dispatchEsc(final, intermediate byte) {
	if intermediate == '#' {
		e.dispatchEscHash(final)
		return
	}
	if intermediate != 0 {
		if bank, ok := bankForIntermediate(intermediate); ok {
			if cs, ok := charsetForFinal(final); ok {
				e.grid.banks[bank] = cs
			}
		}
		return
	}

	switch final {
	case 'D': // IND
		e.newline(false)
	case 'E': // NEL
		e.newline(true)
	case 'H': // HTS
		x, _ := e.grid.CursorPageXY()
		if x >= 0 && x < len(e.grid.tabStops) {
			e.grid.tabStops[x] = true
		}
	case 'M': // RI
		e.reverseIndex()
	case 'N': // SS2
		b := G2
		e.singleShift = &b
	case 'O': // SS3
		b := G3
		e.singleShift = &b
	case 'Z': // DECID, answer like DA
		e.writeHost([]byte(replyDA))
	case 'c': // RIS
		e.ris()
	case '7': // DECSC
		e.saveCursor()
	case '8': // DECRC
		e.restoreCursor()
	case '=': // DECKPAM, application keypad: no local state to track
	case '>': // DECKPNM, normal keypad: no local state to track
	default:
	}
}

// dispatchEscHash handles the "ESC # n" family; currently only DECALN (n='8')
// is meaningful.
func (e *Engine) dispatchEscHash(final byte) {
	if final == '8' {
		gl := Glyph{Codepoint: 'E', Fg: DefaultForeground, Bg: DefaultBackground}
		e.grid.fillPage(gl)
		e.grid.invalidateAll()
	}
}
