// Package tokenizer implements the escape-sequence state machine: it
// consumes decoded runes one at a time and produces token.Token values
// for the dispatcher. See DESIGN.md for the reference state machines
// this is grounded on.
package tokenizer

import (
	"github.com/javanhut/vtcore/token"
)

const (
	// MaxArgs bounds the number of CSI parameters tracked per
	// sequence; additional separators are swallowed without growing
	// past the last slot.
	MaxArgs = 15
	// MaxArgument clamps any single numeric parameter.
	MaxArgument = 40960
	// MaxTokenLength bounds the in-progress buffer kept for
	// diagnostics; once full, newest runes overwrite the last slot
	// rather than growing.
	MaxTokenLength = 4096
)

const (
	bel = 0x07
	bs  = 0x08
	can = 0x18
	sub = 0x1a
	esc = 0x1b
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateCSI
	stateDCS
	stateDCSEsc
	stateOSC
	stateOSCEsc
	stateVt52Escape
	stateVt52Y1
	stateVt52Y2
)

// cpn is the set of CSI final bytes dispatched with up to two bare
// numeric arguments (CsiPn).
var cpn = map[byte]bool{}

func init() {
	for _, b := range []byte("@ABCDEFGHILMPSTXZbcdfry") {
		cpn[b] = true
	}
}

// ChecksumRequester receives a DECRQCRA request directly with its full
// parameter list, bypassing the two-value Token shape: the request
// needs five parameters (Pp, Pt, Pl, Pb, Pr), more than a Token carries.
type ChecksumRequester interface {
	RequestChecksum(args []int)
}

// Tokenizer turns a rune stream into tokens. It is not safe for
// concurrent use; the core it belongs to is single-threaded.
type Tokenizer struct {
	// Emit receives every token produced. Required.
	Emit func(token.Token)
	// ApplyCharset filters plain printable characters through the
	// active G-set before they become Chr tokens. Optional; the
	// identity function is used if nil.
	ApplyCharset func(rune) rune
	// OnOSC receives a terminated OSC payload (the text between
	// "ESC ]" and its terminator) and the terminator byte (BEL, the
	// backslash of ST, or ESC when ESC and some other byte ended it).
	OnOSC func(params string, terminator byte)
	// Checksum receives DECRQCRA requests. Optional.
	Checksum ChecksumRequester
	// Errors receives decoding-error diagnostics. Optional.
	Errors token.ErrorReporter

	ansiMode bool
	state    state
	buf      []rune

	argv          [MaxArgs]int
	argc          int
	sawParam      bool
	csiFirstByte  bool
	privatePrefix byte
	intermediate  byte

	oscBuf []rune

	vt52Row int
}

// New returns a Tokenizer in ANSI mode, ready to receive runes.
func New() *Tokenizer {
	return &Tokenizer{ansiMode: true}
}

// SetAnsiMode switches between ANSI and VT52 grammar (DECANM). It does
// not reset in-progress state; callers normally only flip this at
// sequence boundaries.
func (t *Tokenizer) SetAnsiMode(ansi bool) { t.ansiMode = ansi }

// Reset aborts any in-progress sequence and returns to ground state,
// without emitting a token for the aborted sequence.
func (t *Tokenizer) Reset() {
	t.buf = t.buf[:0]
	t.resetCSIAccum()
	t.oscBuf = t.oscBuf[:0]
	t.state = stateGround
}

// Feed consumes one decoded rune.
func (t *Tokenizer) Feed(c rune) {
	switch t.state {
	case stateOSC, stateOSCEsc:
		t.feedOSC(c)
		return
	case stateDCS, stateDCSEsc:
		t.feedDCS(c)
		return
	}

	if c < 0x20 {
		t.control(c)
		return
	}

	if !t.ansiMode {
		t.feedVt52(c)
		return
	}

	t.appendBuf(c)
	p := len(t.buf)

	switch t.state {
	case stateGround:
		t.classifyGround(c)
	case stateEscape:
		t.classifyEscape(p)
	case stateCSI:
		t.classifyCSI(c)
	}
}

// control implements the general control-character rule: a control
// byte outside an OSC is dispatched as its own Ctl token immediately;
// CAN/SUB/ESC additionally abort any sequence in progress (the DEC
// quirk of passing controls transparently through an ongoing escape).
func (t *Tokenizer) control(c rune) {
	if byte(c) == esc {
		if len(t.buf) == 0 {
			t.buf = append(t.buf, c)
			if t.ansiMode {
				t.state = stateEscape
			} else {
				t.state = stateVt52Escape
			}
			return
		}
		t.emit(token.Ctl, byte(c), 0, 0, 0)
		t.Reset()
		t.buf = append(t.buf, c)
		if t.ansiMode {
			t.state = stateEscape
		} else {
			t.state = stateVt52Escape
		}
		return
	}

	t.emit(token.Ctl, byte(c), 0, 0, 0)
	if byte(c) == can || byte(c) == sub {
		t.Reset()
	}
}

func (t *Tokenizer) classifyGround(c rune) {
	if byte(c) == 0x9b { // ESC+128: 8-bit CSI introducer
		t.buf = t.buf[:0]
		t.state = stateCSI
		t.resetCSIAccum()
		return
	}
	ch := c
	if t.ApplyCharset != nil {
		ch = t.ApplyCharset(c)
	}
	t.emit(token.Chr, 0, int(ch), 0, 0)
	t.Reset()
}

func (t *Tokenizer) classifyEscape(p int) {
	switch p {
	case 2:
		s1 := byte(t.buf[1])
		switch s1 {
		case '[':
			t.state = stateCSI
			t.resetCSIAccum()
		case ']':
			t.state = stateOSC
			t.oscBuf = t.oscBuf[:0]
		case 'P':
			t.state = stateDCS
		case '(', ')', '+', '*', '%', '#':
			// select-charset or DEC intermediate: wait for final.
		default:
			t.emit(token.Esc, s1, 0, 0, 0)
			t.Reset()
		}
	case 3:
		s1 := byte(t.buf[1])
		final := byte(t.buf[2])
		switch s1 {
		case '(', ')', '+', '*', '%':
			t.emit(token.EscCs, final, int(s1), 0, 0)
		case '#':
			t.emit(token.EscDe, final, 0, 0, 0)
		default:
			t.reportError()
		}
		t.Reset()
	default:
		t.reportError()
		t.Reset()
	}
}

func (t *Tokenizer) resetCSIAccum() {
	t.argv = [MaxArgs]int{}
	t.argc = 0
	t.sawParam = false
	t.csiFirstByte = true
	t.privatePrefix = 0
	t.intermediate = 0
}

func (t *Tokenizer) classifyCSI(c rune) {
	b := byte(c)

	if t.csiFirstByte {
		t.csiFirstByte = false
		switch b {
		case '?', '=', '>', '!':
			t.privatePrefix = b
			return
		}
	}

	switch {
	case b >= '0' && b <= '9':
		t.sawParam = true
		v := t.argv[t.argc]*10 + int(b-'0')
		if v > MaxArgument {
			v = MaxArgument
		}
		t.argv[t.argc] = v
		return
	case b == ';':
		t.sawParam = true
		if t.argc < MaxArgs-1 {
			t.argc++
		}
		return
	case b >= 0x20 && b <= 0x2f:
		t.intermediate = b
		return
	case b >= 0x40 && b <= 0x7e:
		t.finishCSI(b)
		return
	default:
		t.reportError()
		t.Reset()
	}
}

func (t *Tokenizer) finishCSI(final byte) {
	defer t.Reset()

	switch t.privatePrefix {
	case '!':
		t.emit(token.CsiPe, final, t.argv[0], 0, 0)
		return
	case '?', '=', '>':
		kind := token.CsiPr
		if t.privatePrefix == '=' {
			kind = token.CsiPq
		} else if t.privatePrefix == '>' {
			kind = token.CsiPg
		}
		for i := 0; i <= t.argc; i++ {
			t.emit(kind, final, t.argv[i], 0, 0)
		}
		return
	}

	switch {
	case final == 'y' && t.intermediate == '*':
		if t.Checksum != nil {
			args := make([]int, t.argc+1)
			copy(args, t.argv[:t.argc+1])
			t.Checksum.RequestChecksum(args)
		}
	case final == 't' && t.intermediate == 0:
		t.emit(token.CsiPs, final, t.argv[0], t.argv[1], t.argv[2])
	case t.intermediate == ' ':
		if !t.sawParam {
			t.emit(token.CsiSp, final, 0, 0, 0)
		} else {
			t.emit(token.CsiPsp, final, t.argv[0], 0, 0)
		}
	case cpn[final]:
		t.emit(token.CsiPn, final, t.argv[0], t.argv[1], 0)
	default:
		t.emitSGRorPlain(final)
	}
}

// emitSGRorPlain implements the "otherwise CSI plain final" bucket.
// Every final not claimed by a more specific rule dispatches one
// CsiPs token per parameter; final 'm' (SGR) additionally recognizes
// the 38/48;2;r;g;b and 38/48;5;i extended-color sub-sequences instead
// of dispatching their components as independent plain parameters.
func (t *Tokenizer) emitSGRorPlain(final byte) {
	if final != 'm' {
		for i := 0; i <= t.argc; i++ {
			t.emit(token.CsiPs, final, t.argv[i], token.PlainSGR, 0)
		}
		return
	}

	for i := 0; i <= t.argc; {
		channel := t.argv[i]
		if channel != 38 && channel != 48 {
			t.emit(token.CsiPs, final, channel, token.PlainSGR, 0)
			i++
			continue
		}
		switch {
		case i+4 <= t.argc && t.argv[i+1] == 2:
			r, g, b := t.argv[i+2], t.argv[i+3], t.argv[i+4]
			payload := (r&0xff)<<16 | (g&0xff)<<8 | (b & 0xff)
			t.emit(token.CsiPs, final, channel, 2, payload)
			i += 5
		case i+2 <= t.argc && t.argv[i+1] == 5:
			t.emit(token.CsiPs, final, channel, 5, t.argv[i+2])
			i += 3
		default:
			t.emit(token.CsiPs, final, channel, token.PlainSGR, 0)
			i++
		}
	}
}

// feedDCS swallows a Device Control String; DCS is "consumed and
// ignored by this core" (GLOSSARY). It still recognizes ST (ESC \) so
// a later sequence is not mistaken for DCS content.
func (t *Tokenizer) feedDCS(c rune) {
	if t.state == stateDCSEsc {
		if byte(c) == '\\' {
			t.Reset()
			return
		}
		t.state = stateDCS
		if byte(c) == esc {
			t.state = stateDCSEsc
		}
		return
	}
	if byte(c) == esc {
		t.state = stateDCSEsc
		return
	}
	// everything else inside a DCS is discarded.
}

// feedOSC accumulates an OSC payload and watches for its terminator:
// BEL, or ESC '\' (ST). ESC followed by any other byte also
// terminates the OSC (xterm's lenient behavior) and that byte is fed
// straight into a freshly started escape sequence rather than being
// dropped.
func (t *Tokenizer) feedOSC(c rune) {
	if t.state == stateOSCEsc {
		if byte(c) == '\\' {
			t.finishOSC('\\')
			return
		}
		// xterm leniency: ESC followed by anything but '\' still
		// terminates the OSC, and that byte starts a fresh sequence
		// rather than being dropped.
		t.finishOSC(esc)
		t.Feed(esc)
		t.Feed(c)
		return
	}
	if byte(c) == esc {
		t.state = stateOSCEsc
		return
	}
	if byte(c) == bel {
		t.finishOSC(bel)
		return
	}
	if c < 0x20 {
		// other controls are swallowed inside an OSC, not flushed.
		return
	}
	if len(t.oscBuf) < MaxTokenLength {
		t.oscBuf = append(t.oscBuf, c)
	} else if len(t.oscBuf) > 0 {
		t.oscBuf[len(t.oscBuf)-1] = c
	}
}

func (t *Tokenizer) finishOSC(terminator byte) {
	if t.OnOSC != nil {
		t.OnOSC(string(t.oscBuf), terminator)
	}
	t.oscBuf = t.oscBuf[:0]
	t.Reset()
}

// feedVt52 implements VT52 mode's much smaller grammar: "ESC <final>"
// or "ESC Y <row> <col>". Controls are handled uniformly by control()
// before reaching here.
func (t *Tokenizer) feedVt52(c rune) {
	switch t.state {
	case stateGround:
		ch := c
		if t.ApplyCharset != nil {
			ch = t.ApplyCharset(c)
		}
		t.emit(token.Chr, 0, int(ch), 0, 0)
	case stateVt52Escape:
		if byte(c) == 'Y' {
			t.state = stateVt52Y1
			return
		}
		t.emit(token.Vt52, byte(c), 0, 0, 0)
		t.Reset()
	case stateVt52Y1:
		t.vt52Row = int(c)
		t.state = stateVt52Y2
	case stateVt52Y2:
		t.emit(token.Vt52, 'Y', t.vt52Row, int(c), 0)
		t.Reset()
	}
}

func (t *Tokenizer) appendBuf(c rune) {
	if len(t.buf) < MaxTokenLength {
		t.buf = append(t.buf, c)
	} else if len(t.buf) > 0 {
		t.buf[len(t.buf)-1] = c
	}
}

func (t *Tokenizer) emit(kind token.Kind, final byte, p0, p1, p2 int) {
	if t.Emit != nil {
		t.Emit(token.New(kind, final, p0, p1, p2))
	}
}

func (t *Tokenizer) reportError() {
	if t.Errors != nil {
		buf := make([]rune, len(t.buf))
		copy(buf, t.buf)
		t.Errors.DecodingError(buf)
	}
}
