// Package mouse implements the mouse/focus encoder: encoding pointer
// events and focus changes per the active xterm mouse protocol
// variant. See DESIGN.md for the reference parsers this is grounded
// on.
package mouse

import (
	"fmt"

	"github.com/javanhut/vtcore/modes"
)

// EventType is the kind of pointer event being encoded.
type EventType int

const (
	Press EventType = iota
	Drag
	Release
)

// Sink is where encoded bytes go.
type Sink interface {
	SendData(b []byte)
}

// Encoder encodes mouse and focus events according to the active
// mouse-tracking and mouse-encoding modes.
type Encoder struct {
	Modes       *modes.Set
	Sink        Sink
	ReportFocus bool
}

// Encode implements the mouse-protocol priority rules: SGR (1006)
// over urxvt (1015) over UTF-8 (1005) over the plain X10 encoding. cb
// is the raw button/wheel code, cx/cy are 1-based screen coordinates.
func (e *Encoder) Encode(cb, cx, cy int, ev EventType) {
	if cx < 1 || cy < 1 {
		return
	}

	if ev == Drag && e.Modes.Get(modes.Mouse1000) && !e.Modes.Get(modes.Mouse1002) && !e.Modes.Get(modes.Mouse1003) {
		return
	}

	if cb == 3 && ev == Release && e.Modes.Get(modes.Mouse1002) && !e.Modes.Get(modes.Mouse1003) {
		return
	}

	code := cb
	if ev == Release && !e.Modes.Get(modes.Mouse1006) {
		code = 3
	}
	if cb >= 4 {
		code += 0x3c
	}
	if ev == Drag && (e.Modes.Get(modes.Mouse1002) || e.Modes.Get(modes.Mouse1003)) {
		code += 0x20
	}

	var out []byte
	switch {
	case e.Modes.Get(modes.Mouse1006):
		final := byte('M')
		if ev == Release {
			final = 'm'
		}
		out = []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, cx, cy, final))
	case e.Modes.Get(modes.Mouse1015):
		out = []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, cx, cy))
	case e.Modes.Get(modes.Mouse1005):
		if cx > 2015 || cy > 2015 {
			return
		}
		out = append([]byte("\x1b[M"), byte(code+32))
		out = append(out, encodeUTF8Coord(cx+32)...)
		out = append(out, encodeUTF8Coord(cy+32)...)
	default:
		if cx > 223 || cy > 223 {
			return
		}
		out = []byte{0x1b, '[', 'M', byte(code + 32), byte(cx + 32), byte(cy + 32)}
	}

	e.send(out)
}

// encodeUTF8Coord encodes a mouse coordinate as UTF-8 per the 1005
// extended encoding: values above 127 are encoded as multi-byte UTF-8
// rather than raw bytes.
func encodeUTF8Coord(v int) []byte {
	r := rune(v)
	buf := make([]byte, 0, 4)
	if r < 0x80 {
		return append(buf, byte(r))
	}
	if r < 0x800 {
		return append(buf, byte(0xC0|(r>>6)), byte(0x80|(r&0x3F)))
	}
	return append(buf, byte(0xE0|(r>>12)), byte(0x80|((r>>6)&0x3F)), byte(0x80|(r&0x3F)))
}

// Focus encodes a focus in/out event, gated on ReportFocus.
func (e *Encoder) Focus(gained bool) {
	if !e.ReportFocus {
		return
	}
	if gained {
		e.send([]byte("\x1b[I"))
	} else {
		e.send([]byte("\x1b[O"))
	}
}

func (e *Encoder) send(b []byte) {
	if e.Sink != nil {
		e.Sink.SendData(b)
	}
}
