package vtcore

import (
	"log/slog"
	"unicode/utf8"
)

// decoder turns a UTF-8 octet stream into code points, keeping a small
// carry buffer across Feed calls so a multi-byte sequence split across two
// reads resumes cleanly instead of being treated as malformed. Grounded on
// other_examples' terminal_state.go Write/utf8NeedBytes carry-buffer idiom
// and on phroun-purfecterm's parser.go utf8Buf/utf8Need fields.
type decoder struct {
	carry  [utf8.UTFMax]byte
	nCarry int
	log    *slog.Logger
}

func newDecoder(log *slog.Logger) *decoder {
	if log == nil {
		log = slog.Default()
	}
	return &decoder{log: log}
}

// decodeNext extracts the next rune from buf, combining it with any
// carried-over bytes from a previous call. It returns the rune, the number
// of bytes of buf consumed (not counting carried bytes), and whether a
// complete code point was produced. If the tail of buf is a genuine partial
// multi-byte sequence, it is copied into the carry buffer, ok is false, and
// consumed equals len(buf) (the caller should stop for now and resume on
// the next Feed). A malformed lead byte consumes one byte and yields
// utf8.RuneError, never hanging.
func (d *decoder) decodeNext(buf []byte) (r rune, consumed int, ok bool) {
	if d.nCarry > 0 {
		// Try to complete the carried sequence with bytes from buf.
		need := utf8NeedBytes(d.carry[0]) - d.nCarry
		if need < 0 {
			need = 0
		}
		take := need
		if take > len(buf) {
			take = len(buf)
		}
		combined := append(append([]byte{}, d.carry[:d.nCarry]...), buf[:take]...)
		if utf8.FullRune(combined) {
			r, size := utf8.DecodeRune(combined)
			d.nCarry = 0
			if r == utf8.RuneError && size <= 1 {
				// The carried lead byte itself was invalid; none of the new
				// buf bytes belonged to it, so nothing from buf is consumed
				// here and they are reprocessed fresh on the next call.
				d.log.Debug("discarding invalid UTF-8 carry byte")
				return utf8.RuneError, 0, true
			}
			return r, size - (len(combined) - take), true
		}
		if len(combined) >= utf8.UTFMax {
			// Can never complete; drop the lead byte and resync.
			d.nCarry = 0
			d.log.Debug("discarding invalid UTF-8 lead byte")
			return utf8.RuneError, 0, true
		}
		copy(d.carry[:], combined)
		d.nCarry = len(combined)
		return 0, len(buf), false
	}

	if len(buf) == 0 {
		return 0, 0, false
	}
	if utf8.FullRune(buf) {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			d.log.Debug("skipping invalid UTF-8 byte")
			return utf8.RuneError, 1, true
		}
		return r, size, true
	}
	// Partial sequence at end of buf: is it genuinely incomplete, or
	// simply malformed?
	need := utf8NeedBytes(buf[0])
	if need <= 1 {
		d.log.Debug("skipping invalid UTF-8 lead byte")
		return utf8.RuneError, 1, true
	}
	if len(buf) < need {
		d.nCarry = copy(d.carry[:], buf)
		return 0, len(buf), false
	}
	// Enough bytes were present but DecodeRune still rejected it: malformed.
	d.log.Debug("skipping invalid UTF-8 lead byte")
	return utf8.RuneError, 1, true
}

// utf8NeedBytes returns how many bytes a UTF-8 sequence starting with lead
// should occupy, or 1 if lead cannot start a multi-byte sequence.
func utf8NeedBytes(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
