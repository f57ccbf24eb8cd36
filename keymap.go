package vtcore

// Keysym identifies an abstract key, independent of any host keyboard
// library — the external keyboard-mapping collaborator (§1) is expected to
// have already turned raw input into one of these plus a ModMask before
// calling HandleKeypress.
type Keysym uint32

const (
	KeyUnknown Keysym = iota
	KeyReturn
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask is a bitset of modifier keys held during a keypress.
type ModMask uint32

const (
	ModShift ModMask = 1 << iota
	ModControl
	ModAlt
)

type keymapEntry struct {
	key Keysym
	mod ModMask
	out string
}

// keymap is the static (keysym, modifier) → byte-sequence table, grounded
// on original_source/src/types.h's keymap_t and the VT220/xterm-standard
// sequences for cursor and editing keys. Application-cursor-keys mode
// (DECCKM) and similar mode-dependent remaps are out of scope here: only a
// static table is modeled (§2, §4.6).
var keymap = []keymapEntry{
	{KeyUp, 0, "\x1b[A"},
	{KeyDown, 0, "\x1b[B"},
	{KeyRight, 0, "\x1b[C"},
	{KeyLeft, 0, "\x1b[D"},
	{KeyHome, 0, "\x1b[H"},
	{KeyEnd, 0, "\x1b[F"},
	{KeyPageUp, 0, "\x1b[5~"},
	{KeyPageDown, 0, "\x1b[6~"},
	{KeyInsert, 0, "\x1b[2~"},
	{KeyDelete, 0, "\x1b[3~"},
	{KeyBackspace, 0, "\x7f"},
	{KeyTab, 0, "\t"},
	{KeyTab, ModShift, "\x1b[Z"},
	{KeyEscape, 0, "\x1b"},
	{KeyF1, 0, "\x1bOP"},
	{KeyF2, 0, "\x1bOQ"},
	{KeyF3, 0, "\x1bOR"},
	{KeyF4, 0, "\x1bOS"},
	{KeyF5, 0, "\x1b[15~"},
	{KeyF6, 0, "\x1b[17~"},
	{KeyF7, 0, "\x1b[18~"},
	{KeyF8, 0, "\x1b[19~"},
	{KeyF9, 0, "\x1b[20~"},
	{KeyF10, 0, "\x1b[21~"},
	{KeyF11, 0, "\x1b[23~"},
	{KeyF12, 0, "\x1b[24~"},
}

// HandleKeypress implements §6's handle_keypress(keysym, modifier_mask):
// Alt always prefixes the translated bytes with ESC (the classic "meta"
// convention), Enter is special-cased to respect LNM, and everything else
// is a linear scan of the static keymap, matching original_source's
// term_handle_keypress.
func (e *Engine) HandleKeypress(key Keysym, mod ModMask) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	altPrefix := mod&ModAlt != 0
	baseMod := mod &^ ModAlt

	var out string
	switch {
	case key == KeyReturn:
		if e.crlf {
			out = "\r\n"
		} else {
			out = "\r"
		}
	default:
		found := false
		for _, ent := range keymap {
			if ent.key == key && ent.mod == baseMod {
				out = ent.out
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if altPrefix {
		e.writeHost([]byte{0x1b})
	}
	e.writeHost([]byte(out))
	return true
}
