package vtcore

import (
	"log/slog"
	"strings"
)

// parserState is one of the five states named in §4.1.
type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateWaitForST
)

// Parser is the DEC/ANSI escape-sequence state machine. It classifies each
// byte of a UTF-8 octet stream as print, execute, collect, or dispatch and
// emits structured Events, per §4.1 and the tagged-event design note in §9.
// It owns the byte decoder (component 1 of §2) since code-point assembly
// only ever matters in GROUND state.
//
// Grounded on original_source/src/escparse.c's esc_handle/esc_state_*
// state machine (the poisoning-vs-canceling rules, the 1024-byte collected-
// byte cap, and the 16-parameter cap all come from there and its test
// suite), and on phroun-purfecterm/parser.go's Go state-machine shape.
type Parser struct {
	state parserState
	dec   *decoder
	log   *slog.Logger

	escIntermediate byte
	escPoisoned     bool

	csiParams       [maxCSIParams]int32
	csiNParams      int
	csiCurrent      int32
	csiPrivate      byte
	csiIntermediate byte
	csiPoisoned     bool
	csiCollected    int

	oscActive bool
	oscBuf    strings.Builder
}

// NewParser builds a Parser in GROUND state. A nil logger installs
// slog.Default().
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	p := &Parser{log: log, dec: newDecoder(log)}
	p.resetCSI()
	return p
}

// Feed processes as much of data as forms complete UTF-8 code points and
// complete (or cleanly poisoned) escape sequences, calling emit for every
// Event produced, and returns the number of bytes consumed. A trailing
// partial UTF-8 sequence is held internally and completed by a later Feed
// call (§4.2, §5's term_write contract).
func (p *Parser) Feed(data []byte, emit func(Event)) int {
	i := 0
	for i < len(data) {
		c := data[i]

		switch c {
		case 0x1B: // ESC: universal cancel-and-enter-ESCAPE
			p.fireAndClear(emit)
			p.state = stateEscape
			i++
			continue
		case 0x18, 0x1A: // CAN, SUB: universal cancel
			p.fireAndClear(emit)
			p.state = stateGround
			i++
			continue
		}

		if p.state == stateGround {
			// C0 and C1 controls are classified on the raw byte, before
			// UTF-8 decoding: in this protocol C1 codes are the single
			// bytes 0x80-0x9F (original_source's term_do_control_char),
			// not the two-byte UTF-8 encoding of those code points — and
			// 0x80-0x9F are not valid standalone UTF-8 lead bytes anyway.
			// While the decoder holds a partial sequence, such a byte is its
			// continuation and goes to the decoder instead.
			switch {
			case c < 0x20 || c == 0x7F:
				emit(Event{Kind: EventExecute, Rune: rune(c)})
				i++
				continue
			case c >= 0x80 && c <= 0x9F && p.dec.nCarry == 0:
				p.fireAndClear(emit)
				p.state = stateEscape
				p.stepEscape(c-0x40, emit)
				i++
				continue
			}

			r, n, ok := p.dec.decodeNext(data[i:])
			if !ok {
				i += n
				break
			}
			i += n
			emit(Event{Kind: EventPrint, Rune: r})
			continue
		}

		handled := p.stepNonGround(c, emit)
		i++
		if !handled {
			if c < 0x20 || c == 0x7F {
				emit(Event{Kind: EventExecute, Rune: rune(c)})
			} else if c < 0x80 {
				emit(Event{Kind: EventPrint, Rune: rune(c)})
			}
		}
	}
	return i
}

func (p *Parser) stepNonGround(c byte, emit func(Event)) bool {
	switch p.state {
	case stateEscape:
		return p.stepEscape(c, emit)
	case stateCSI:
		return p.stepCSI(c, emit)
	case stateOSC:
		return p.stepOSC(c, emit)
	case stateWaitForST:
		return true
	default:
		return false
	}
}

func (p *Parser) stepEscape(c byte, emit func(Event)) bool {
	switch {
	case c == '[':
		p.fireAndClear(emit)
		p.state = stateCSI
		return true
	case c == ']':
		p.fireAndClear(emit)
		p.oscActive = true
		p.oscBuf.Reset()
		p.state = stateOSC
		return true
	case c == 'P' || c == 'X' || c == '^' || c == '_':
		p.state = stateWaitForST
		return true
	case c == '\\':
		p.fireAndClear(emit)
		p.state = stateGround
		return true
	case c >= 0x20 && c <= 0x2F:
		if p.escIntermediate != 0 {
			p.escPoisoned = true
			p.log.Debug("vtcore: duplicate ESC intermediate, poisoning sequence")
		} else {
			p.escIntermediate = c
		}
		return true
	case c >= 0x30 && c <= 0x7E:
		if !p.escPoisoned {
			emit(Event{Kind: EventEsc, EscFinal: c, EscIntermediate: p.escIntermediate})
		}
		p.escIntermediate = 0
		p.escPoisoned = false
		p.state = stateGround
		return true
	default:
		return false
	}
}

func (p *Parser) stepCSI(c byte, emit func(Event)) bool {
	switch {
	case c == 0x7F:
		return true
	case c >= '0' && c <= '9':
		p.csiCollected++
		if p.csiCollected <= maxCollectedBytes {
			p.csiCurrent = p.csiCurrent*10 + int32(c-'0')
		} else {
			p.log.Debug("vtcore: CSI parameter buffer exceeded, dropping byte")
		}
		return true
	case c == ';':
		p.csiCollected++
		if p.csiCollected <= maxCollectedBytes {
			p.pushCSIParam()
		}
		return true
	case c == ':':
		p.csiPoisoned = true
		p.log.Debug("vtcore: colon in CSI parameters, poisoning sequence")
		return true
	case c >= 0x3C && c <= 0x3F:
		p.csiCollected++
		if p.csiCollected <= maxCollectedBytes {
			if p.csiPrivate != 0 {
				p.csiPoisoned = true
				p.log.Debug("vtcore: duplicate CSI private marker, poisoning sequence")
			} else {
				p.csiPrivate = c
			}
		}
		return true
	case c >= 0x20 && c <= 0x2F:
		p.csiCollected++
		if p.csiCollected <= maxCollectedBytes {
			if p.csiIntermediate != 0 {
				p.csiPoisoned = true
				p.log.Debug("vtcore: duplicate CSI intermediate, poisoning sequence")
			} else {
				p.csiIntermediate = c
			}
		}
		return true
	case c >= 0x40 && c <= 0x7E:
		p.pushCSIParam()
		if !p.csiPoisoned {
			params := make([]int32, p.csiNParams)
			copy(params, p.csiParams[:p.csiNParams])
			emit(Event{
				Kind:            EventCsi,
				CsiFinal:        c,
				CsiParams:       params[:],
				CsiPrivate:      p.csiPrivate,
				CsiIntermediate: p.csiIntermediate,
			})
		} else {
			p.log.Debug("vtcore: dropping poisoned CSI sequence", "final", string(c))
		}
		p.resetCSI()
		p.state = stateGround
		return true
	default:
		return false
	}
}

func (p *Parser) pushCSIParam() {
	if p.csiNParams >= maxCSIParams {
		p.csiPoisoned = true
		p.log.Debug("vtcore: too many CSI parameters, poisoning sequence")
		return
	}
	p.csiParams[p.csiNParams] = p.csiCurrent
	p.csiNParams++
	p.csiCurrent = 0
}

func (p *Parser) stepOSC(c byte, emit func(Event)) bool {
	if c == 0x07 {
		emit(Event{Kind: EventOsc, OscPayload: p.oscBuf.String()})
		p.oscActive = false
		p.oscBuf.Reset()
		p.state = stateGround
		return true
	}
	if c <= 0x1F {
		return true
	}
	p.oscBuf.WriteByte(c)
	return true
}

// fireAndClear dispatches a pending OSC payload (if any) and resets every
// accumulator, matching original_source's esc_clear firing its onexit hook
// before resetting state. It is called on every path that abandons the
// current sequence: ESC/CAN/SUB, entering CSI or OSC afresh, and ST.
func (p *Parser) fireAndClear(emit func(Event)) {
	if p.oscActive {
		emit(Event{Kind: EventOsc, OscPayload: p.oscBuf.String()})
		p.oscActive = false
		p.oscBuf.Reset()
	}
	p.resetCSI()
	p.escIntermediate = 0
	p.escPoisoned = false
}

func (p *Parser) resetCSI() {
	for i := range p.csiParams {
		p.csiParams[i] = unsetParam
	}
	p.csiNParams = 0
	p.csiCurrent = 0
	p.csiPrivate = 0
	p.csiIntermediate = 0
	p.csiPoisoned = false
	p.csiCollected = 0
}
