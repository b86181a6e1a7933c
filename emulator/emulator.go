// Package emulator is the top-level session type: it owns one
// Tokenizer, the dispatcher's mode/charset/screen state, and the
// keyboard/mouse encoders, wiring PTY bytes in to Screen calls and
// key/mouse events out to wire bytes. Emulator follows a
// single-threaded, no-internal-locking concurrency model and carries
// no lock of its own; see DESIGN.md.
package emulator

import (
	"github.com/javanhut/vtcore/codec"
	"github.com/javanhut/vtcore/dispatch"
	"github.com/javanhut/vtcore/keyboard"
	"github.com/javanhut/vtcore/modes"
	"github.com/javanhut/vtcore/mouse"
	"github.com/javanhut/vtcore/report"
	"github.com/javanhut/vtcore/screen"
	"github.com/javanhut/vtcore/token"
	"github.com/javanhut/vtcore/tokenizer"
)

// Emulator is a single terminal session's worth of state. Create one
// with New, feed it child output with ReceiveChars, and feed it UI
// input with SendKey/SendMouse/SendFocus.
type Emulator struct {
	Tokenizer  *tokenizer.Tokenizer
	Dispatcher *dispatch.Dispatcher
	Keyboard   *keyboard.Encoder
	Mouse      *mouse.Encoder
	Sink       OutputSink
}

// OutputSink is where bytes bound for the child process go.
type OutputSink interface {
	SendData(b []byte)
}

type sinkAdapter struct{ OutputSink }

func (s sinkAdapter) SendData(b []byte) {
	if s.OutputSink != nil {
		s.OutputSink.SendData(b)
	}
}

// New builds an Emulator over the given primary/alternate screens,
// default modes, US-ASCII charsets on both screens, and a UTF-8 codec.
// keyTable and sink must be supplied by the caller; events/hyperlink/
// errors may be nil if the host doesn't care about those
// notifications.
func New(primary, alternate screen.Screen, keyTable keyboard.Table, sink OutputSink, events dispatch.Events, hyperlink dispatch.HyperlinkSink, errors token.ErrorReporter) *Emulator {
	d := dispatch.New()
	d.Screens[0] = primary
	d.Screens[1] = alternate
	d.Modes = modes.New(d)
	d.Reporter = &report.Reporter{Sink: sinkAdapter{sink}}
	d.Events = events
	d.Hyperlink = hyperlink
	d.Errors = errors

	tk := tokenizer.New()
	tk.ApplyCharset = d.ApplyCharset
	tk.OnOSC = d.OnOSC
	tk.Checksum = d
	tk.Errors = errors
	tk.Emit = d.Dispatch
	d.OnAnsiModeChanged = tk.SetAnsiMode

	e := &Emulator{
		Tokenizer:  tk,
		Dispatcher: d,
		Sink:       sink,
	}
	e.Keyboard = &keyboard.Encoder{
		Table: keyTable,
		Modes: d.Modes,
		Codec: keyboard.Utf8Codec{},
		Sink:  sinkAdapter{sink},
	}
	e.Mouse = &mouse.Encoder{Modes: d.Modes, Sink: sinkAdapter{sink}}
	return e
}

// ReceiveChars decodes raw child-process bytes through the active
// codec and feeds the resulting code points to the tokenizer, one at
// a time, in order.
func (e *Emulator) ReceiveChars(b []byte) {
	for _, raw := range b {
		r, ok := e.Dispatcher.Codec.Feed(raw)
		if ok {
			e.Tokenizer.Feed(r)
		}
	}
}

// SendKey encodes and sends a keyboard event.
func (e *Emulator) SendKey(ev keyboard.Event) {
	e.Keyboard.Encode(ev)
}

// SendMouse encodes and sends a pointer event.
func (e *Emulator) SendMouse(cb, cx, cy int, ev mouse.EventType) {
	e.Mouse.Encode(cb, cx, cy, ev)
}

// SendFocus encodes a focus in/out event.
func (e *Emulator) SendFocus(gained bool) {
	e.Mouse.Focus(gained)
}

// Resize updates both screens' dimensions. It does not itself notify
// the child process; callers that need SIGWINCH-equivalent behavior
// do that at the PTY layer, outside this module's scope.
func (e *Emulator) Resize(rows, cols int) {
	e.Dispatcher.Screens[0].SetImageSize(rows, cols)
	e.Dispatcher.Screens[1].SetImageSize(rows, cols)
}

// Reset implements a full terminal reset (RIS, "ESC c", or an
// explicit host-requested reset): aborts any in-progress sequence,
// resets the tokenizer and ANSI/VT52 mode, and resets the dispatcher's
// modes/screens/charsets.
func (e *Emulator) Reset() {
	e.Tokenizer.Reset()
	e.Tokenizer.SetAnsiMode(true)
	e.Dispatcher.Reset()
}

// SetCodec swaps the active decode codec; ordinarily driven by the
// "ESC % G"/"ESC % @" escape sequences through the dispatcher, but
// exposed for a host that negotiates locale out of band (e.g. before
// any child output has arrived).
func (e *Emulator) SetCodec(c codec.Codec) {
	e.Dispatcher.Codec = c
}
