// Package keyboard translates an abstract key event into a byte
// sequence, given the active mode set and an external key-binding
// table.
package keyboard

import "github.com/javanhut/vtcore/modes"

// Key is an abstract, toolkit-independent key identifier, so the
// encoder never depends on a particular GUI toolkit's key enum.
type Key int

const (
	KeyUnknown Key = iota
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
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
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

// Modifiers is a bitset of the modifier keys held during a key event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
	ModKeypad // numeric keypad origin, gates AppKeyPad
)

// Command is the set of binding-table actions that are not plain byte
// emission.
type Command uint8

const (
	CommandNone Command = iota
	CommandErase
	CommandScrollPageUp
	CommandScrollPageDown
	CommandScrollLineUp
	CommandScrollLineDown
	CommandScrollUpToTop
	CommandScrollDownToBottom
)

// Event is one abstract key press, as delivered by the host UI.
type Event struct {
	Key  Key
	Mods Modifiers
	Text string // the key's plain text, if it has one
}

// Binding is one entry in the external key-binding table: either
// literal text to expand, or a Command to dispatch.
type Binding struct {
	Text    string
	Command Command
	// ClaimsAlt/ClaimsMeta suppress the encoder's own Alt/Meta
	// modifier prefixing when the binding itself already accounts for
	// that modifier.
	ClaimsAlt  bool
	ClaimsMeta bool
}

// StateMask is the bitset a binding table entry is keyed on, built
// from the active mode set.
type StateMask uint8

const (
	StateNewLine StateMask = 1 << iota
	StateAnsi
	StateAppCuKeys
	StateAppScreen
	StateAppKeyPad
)

// Table resolves a (key, modifiers, state mask) triple to a Binding.
// The concrete table (loaded from a keymap file, see package keymap)
// is supplied by the host; the encoder never hardcodes key sequences
// itself — it always goes through a lookup.
type Table interface {
	Lookup(key Key, mods Modifiers, state StateMask) (Binding, bool)
}

// Scroller receives the view-scrolling commands a binding can
// request; implemented by whatever owns the scrollback view.
type Scroller interface {
	ScrollPageUp()
	ScrollPageDown()
	ScrollLineUp()
	ScrollLineDown()
	ScrollToTop()
	ScrollToBottom()
}

// FlowControl receives the Ctrl+S/Ctrl+Q/Ctrl+C side-channel signal;
// it does not suppress further processing of the key.
type FlowControl interface {
	FlowControlKeyPressed(stop bool)
}

// Sink is where the encoder's output bytes go; ReadOnly gates whether
// Encode emits anything at all.
type Sink interface {
	SendData(b []byte)
}

// Codec encodes a key's plain text payload. In the common case this
// is just []byte(s), but a LocaleCodec session may need to re-encode
// to the host's legacy 8-bit charset, so this stays pluggable rather
// than assuming UTF-8.
type Codec interface {
	EncodeText(s string) []byte
}

// Utf8Codec is the default Codec, round-tripping s as UTF-8 bytes.
type Utf8Codec struct{}

func (Utf8Codec) EncodeText(s string) []byte { return []byte(s) }

// Encoder ties a Table, a set of modes, a Scroller, a FlowControl
// sink, a Sink, and a Codec together to implement Encode.
type Encoder struct {
	Table       Table
	Modes       *modes.Set
	Scroller    Scroller
	FlowControl FlowControl
	Sink        Sink
	Codec       Codec
	// ReadOnly suppresses SendData entirely.
	ReadOnly bool
	// EraseSequence is what CommandErase appends: taken from the
	// backspace binding, or \b if unset.
	EraseSequence []byte
}

// NoKeyTranslatorText is the error text Encode sends through Sink when
// Table is nil. It goes out on the same outbound channel as key bytes;
// Encode does not feed it into the incoming data stream and does not
// reset anything. The string is deliberately plain English; localizing
// it is a host concern.
const NoKeyTranslatorText = "no key translator available\r\n"

// MissingTranslator reports whether Encode would hit the no-translator
// path for the next event.
func (e *Encoder) MissingTranslator() bool { return e.Table == nil }

func (e *Encoder) buildStateMask() StateMask {
	var m StateMask
	if e.Modes.Get(modes.NewLine) {
		m |= StateNewLine
	}
	if e.Modes.Get(modes.Ansi) {
		m |= StateAnsi
	}
	if e.Modes.Get(modes.AppCuKeys) {
		m |= StateAppCuKeys
	}
	if e.Modes.Get(modes.AppScreen) {
		m |= StateAppScreen
	}
	return m
}

// Encode translates ev into bytes and sends them through Sink.
func (e *Encoder) Encode(ev Event) {
	if e.Table == nil {
		if e.Sink != nil {
			e.Sink.SendData([]byte(NoKeyTranslatorText))
		}
		return
	}

	state := e.buildStateMask()
	if ev.Mods&ModKeypad != 0 && e.Modes.Get(modes.AppKeyPad) {
		state |= StateAppKeyPad
	}

	if e.FlowControl != nil && ev.Mods&ModCtrl != 0 {
		switch ev.Text {
		case "s", "S":
			e.FlowControl.FlowControlKeyPressed(true)
		case "q", "Q", "c", "C":
			e.FlowControl.FlowControlKeyPressed(false)
		}
	}

	var out []byte
	binding, found := e.Table.Lookup(ev.Key, ev.Mods, state)

	switch {
	case found && binding.Command != CommandNone:
		out = e.encodeCommand(binding)
	case found && binding.Text != "":
		out = e.Codec.EncodeText(binding.Text)
	case !found && ev.Text != "":
		out = e.Codec.EncodeText(ev.Text)
	default:
		return
	}

	out = e.applyModifierPrefix(out, ev.Mods, binding, found)
	e.send(out)
}

func (e *Encoder) encodeCommand(b Binding) []byte {
	switch b.Command {
	case CommandErase:
		if len(e.EraseSequence) > 0 {
			return e.EraseSequence
		}
		return []byte{'\b'}
	case CommandScrollPageUp:
		if e.Scroller != nil {
			e.Scroller.ScrollPageUp()
		}
	case CommandScrollPageDown:
		if e.Scroller != nil {
			e.Scroller.ScrollPageDown()
		}
	case CommandScrollLineUp:
		if e.Scroller != nil {
			e.Scroller.ScrollLineUp()
		}
	case CommandScrollLineDown:
		if e.Scroller != nil {
			e.Scroller.ScrollLineDown()
		}
	case CommandScrollUpToTop:
		if e.Scroller != nil {
			e.Scroller.ScrollToTop()
		}
	case CommandScrollDownToBottom:
		if e.Scroller != nil {
			e.Scroller.ScrollToBottom()
		}
	}
	return nil
}

func (e *Encoder) applyModifierPrefix(out []byte, mods Modifiers, b Binding, found bool) []byte {
	claimsAlt := found && b.ClaimsAlt
	claimsMeta := found && b.ClaimsMeta

	if mods&ModMeta != 0 && !claimsMeta {
		out = append([]byte("\x18@s"), out...)
	}
	if mods&ModAlt != 0 && !claimsAlt {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

func (e *Encoder) send(b []byte) {
	if len(b) == 0 || e.ReadOnly || e.Sink == nil {
		return
	}
	e.Sink.SendData(b)
}
