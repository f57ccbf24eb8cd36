package vtcore

// dispatch_sgr.go implements Select Graphic Rendition, §4.5.1. True-colour
// (38;2;r;g;b / 48;2;r;g;b) is out of scope per the non-goals; the 256-
// colour indexed forms (38;5;n / 48;5;n) are the only extended SGR this
// core understands, grounded on original_source/src/terminal.c's
// term_do_sgr and the xterm 256-colour convention it follows.
func (e *Engine) dispatchSGR(params []int32) {
	g := e.grid

	if len(params) == 0 || allUnset(params) {
		g.fg, g.bg, g.attr = DefaultForeground, DefaultBackground, 0
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		if p == unsetParam {
			p = 0
		}
		switch p {
		case 0:
			g.fg, g.bg, g.attr = DefaultForeground, DefaultBackground, 0
		case 1:
			g.attr |= AttrBold
		case 4:
			g.attr |= AttrUnderline
		case 5:
			g.attr |= AttrBlink
		case 7:
			g.attr |= AttrInverse
		case 8:
			g.attr |= AttrInvisible
		case 21:
			// Kept as "clear bold" rather than "double underline": §8's
			// open-question decision (see DESIGN.md).
			g.attr &^= AttrBold
		case 22:
			g.attr &^= AttrBold
		case 24:
			g.attr &^= AttrUnderline
		case 25:
			g.attr &^= AttrBlink
		case 27:
			g.attr &^= AttrInverse
		case 28:
			g.attr &^= AttrInvisible
		case 30, 31, 32, 33, 34, 35, 36, 37:
			g.fg = PaletteColor(uint8(p - 30))
		case 39:
			g.fg = DefaultForeground
		case 40, 41, 42, 43, 44, 45, 46, 47:
			g.bg = PaletteColor(uint8(p - 40))
		case 49:
			g.bg = DefaultBackground
		case 90, 91, 92, 93, 94, 95, 96, 97:
			g.fg = PaletteColor(uint8(p-90) + 8)
		case 100, 101, 102, 103, 104, 105, 106, 107:
			g.bg = PaletteColor(uint8(p-100) + 8)
		case 38, 48:
			n, consumed := sgrExtendedColor(params, i)
			if consumed == 0 {
				continue
			}
			if params[i+1] != 5 {
				// 2;r;g;b true-colour: skipped without changing the colour.
				i += consumed
				continue
			}
			if p == 38 {
				g.fg = PaletteColor(n)
			} else {
				g.bg = PaletteColor(n)
			}
			i += consumed
		default:
		}
	}
}

func allUnset(params []int32) bool {
	for _, p := range params {
		if p != unsetParam {
			return false
		}
	}
	return true
}

// sgrExtendedColor parses the "5;n" indexed-colour subsequence starting at
// params[i+1]. It returns the palette index and the number of extra
// parameters consumed. For the unsupported "2;r;g;b" true-colour form it
// returns index 0 and the count of the "2" plus the components present, so
// the caller can skip them. If the subsequence is malformed it returns 0
// consumed, and the caller's loop reads params[i+1] onward as ordinary SGR
// codes.
func sgrExtendedColor(params []int32, i int) (uint8, int) {
	if i+1 >= len(params) {
		return 0, 0
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) || params[i+2] == unsetParam {
			return 0, 0
		}
		return uint8(params[i+2]), 2
	case 2:
		// True-colour: consume the 3 component parameters that follow
		// without acting on them, per the non-goal on 24-bit SGR.
		n := 1
		for k := i + 2; k < len(params) && k < i+5; k++ {
			if params[k] == unsetParam {
				break
			}
			n++
		}
		return 0, n
	default:
		return 0, 0
	}
}
