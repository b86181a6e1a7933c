// Package dispatch implements the Dispatcher: it takes tokens from the
// tokenizer and applies them as Screen calls, mode transitions, device
// reports, or core self-mutations. It is written as one exhaustive
// switch over token.Kind and then over the final byte, kept as a
// tagged-union switch rather than a dynamic registry so the compiler
// catches missing cases; see DESIGN.md for the grounding of each part.
package dispatch

import (
	"strconv"
	"strings"
	"time"

	"github.com/javanhut/vtcore/charset"
	"github.com/javanhut/vtcore/codec"
	"github.com/javanhut/vtcore/modes"
	"github.com/javanhut/vtcore/report"
	"github.com/javanhut/vtcore/screen"
	"github.com/javanhut/vtcore/token"
)

// osdAttrProfileChange is the attribute id the special "CursorShape="
// case is recognized on. Not a standardized OSC number; vtcore
// reserves it the way OSC 7 (cwd) and OSC 8 (hyperlink) reserve theirs.
const osdAttrProfileChange = 50

// CursorShape is the cursor rendering style requested by a
// "ProfileChange" attribute or by DECSCUSR (CSI Ps SP q).
type CursorShape int

const (
	ShapeBlock CursorShape = iota
	ShapeUnderline
	ShapeBar
)

// HyperlinkSink receives OSC 8 begin/end framing.
type HyperlinkSink interface {
	BeginHyperlink(url string)
	EndHyperlink()
}

// Events receives the discrete host-facing notifications the core
// emits: bell, resize requests, cursor style, mouse/paste/scrolling
// mode changes, and session attribute updates.
type Events interface {
	Bell()
	ImageResizeRequest(cols, rows int)
	SetCursorStyleRequest(shape CursorShape)
	ResetCursorStyleRequest()
	ProgramRequestsMouseTracking(enabled bool)
	ProgramBracketedPasteModeChanged(enabled bool)
	EnableAlternateScrolling(enabled bool)
	SessionAttributeChanged(id int, text string)
	SessionAttributeRequest(id int, terminator byte)
}

// Clock abstracts the 20ms OSC coalescing timer so tests can fire it
// deterministically instead of sleeping.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// RealClock uses the standard library's wall-clock timer.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// CoalesceDelay is the OSC attribute coalescing window.
const CoalesceDelay = 20 * time.Millisecond

// Dispatcher owns the mode/charset singletons and the two Screens the
// tokenizer's output is applied against.
type Dispatcher struct {
	Screens  [2]screen.Screen
	Charsets [2]*charset.State
	current  int

	Modes *modes.Set

	Codec codec.Codec

	Reporter  *report.Reporter
	Hyperlink HyperlinkSink
	Events    Events
	Errors    token.ErrorReporter
	Clock     Clock

	// OnAnsiModeChanged, if set, is notified whenever ANSI/VT52 mode
	// changes, so the tokenizer (which tracks its own ansiMode flag
	// independently of modes.Set) stays in sync.
	OnAnsiModeChanged func(on bool)

	inHyperlink bool

	pendingOrder []int
	pendingVals  map[int]string
	timer        Timer
}

// New returns a Dispatcher over two freshly built screens. Callers set
// Screens, Charsets and Modes before feeding it tokens; see
// NewDefault for the common wiring.
func New() *Dispatcher {
	d := &Dispatcher{
		Codec:       codec.NewUtf8Codec(),
		Clock:       RealClock{},
		pendingVals: make(map[int]string),
	}
	d.Charsets[0] = charset.New()
	d.Charsets[1] = charset.New()
	return d
}

// CurrentScreen returns the active Screen (primary unless the
// alternate screen is selected).
func (d *Dispatcher) CurrentScreen() screen.Screen { return d.Screens[d.current] }

// CurrentCharset returns the charset state for the active screen.
func (d *Dispatcher) CurrentCharset() *charset.State { return d.Charsets[d.current] }

// ApplyCharset is wired to the tokenizer as its ApplyCharset hook.
func (d *Dispatcher) ApplyCharset(c rune) rune { return d.CurrentCharset().Apply(c) }

// Dispatch applies one token. Exhaustive over token.Kind.
func (d *Dispatcher) Dispatch(t token.Token) {
	switch t.Kind {
	case token.Chr:
		d.CurrentScreen().DisplayCharacter(rune(t.P0))
	case token.Ctl:
		d.dispatchCtl(t.Final)
	case token.Esc:
		d.dispatchEsc(t.Final)
	case token.EscCs:
		d.dispatchEscCs(byte(t.P0), t.Final)
	case token.EscDe:
		d.dispatchEscDe(t.Final)
	case token.CsiPs:
		d.dispatchCsiPs(t)
	case token.CsiPn:
		d.dispatchCsiPn(t)
	case token.CsiPr:
		d.dispatchPrivate('?', t)
	case token.CsiPq:
		d.dispatchPrivate('=', t)
	case token.CsiPg:
		d.dispatchPrivate('>', t)
	case token.CsiPe:
		d.dispatchCsiPe(t)
	case token.CsiSp:
		d.dispatchCsiSp(t.Final, 0, false)
	case token.CsiPsp:
		d.dispatchCsiSp(t.Final, t.P0, true)
	case token.Vt52:
		d.dispatchVt52(t)
	}
}

func (d *Dispatcher) reportUnknown() {
	if d.Errors != nil {
		d.Errors.DecodingError(nil)
	}
}

// --- Ctl (C0 controls) ---

func (d *Dispatcher) dispatchCtl(c byte) {
	s := d.CurrentScreen()
	switch c {
	case 0x07: // BEL
		if d.Events != nil {
			d.Events.Bell()
		}
	case 0x08: // BS
		s.Backspace()
	case 0x09: // TAB
		s.Tab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		if d.Modes.Get(modes.NewLine) {
			s.NewLine()
		} else {
			s.Index()
		}
	case 0x0D: // CR
		s.ToStartOfLine()
	case 0x0E: // SO: select G1
		d.CurrentCharset().Use(1)
	case 0x0F: // SI: select G0
		d.CurrentCharset().Use(0)
	}
}

// --- Esc (plain) ---

func (d *Dispatcher) dispatchEsc(final byte) {
	s := d.CurrentScreen()
	switch final {
	case '7': // DECSC
		s.SaveCursor()
		d.CurrentCharset().Save()
	case '8': // DECRC
		s.RestoreCursor()
		d.CurrentCharset().Restore()
	case 'D': // IND
		s.Index()
	case 'M': // RI
		s.ReverseIndex()
	case 'E': // NEL
		s.NextLine()
	case 'H': // HTS
		s.ChangeTabStop(true)
	case 'n': // LS2
		d.CurrentCharset().Use(2)
	case 'o': // LS3
		d.CurrentCharset().Use(3)
	case '=': // DECKPAM
		d.Modes.SetMode(modes.AppKeyPad)
	case '>': // DECKPNM
		d.Modes.ResetMode(modes.AppKeyPad)
	case 'c': // RIS
		d.Reset()
	default:
		d.reportUnknown()
	}
}

func (d *Dispatcher) dispatchEscCs(intermediate, final byte) {
	switch intermediate {
	case '(':
		d.setCharset(0, final)
	case ')':
		d.setCharset(1, final)
	case '+':
		d.setCharset(2, final)
	case '*':
		d.setCharset(3, final)
	case '%':
		switch final {
		case 'G':
			d.Codec = codec.NewUtf8Codec()
		case '@':
			d.Codec = codec.NewLocaleCodec()
		default:
			d.reportUnknown()
		}
	default:
		d.reportUnknown()
	}
}

// setCharset designates slot to cs on both screens.
func (d *Dispatcher) setCharset(slot int, final byte) {
	cs := charset.Designator(final)
	d.Charsets[0].Designate(slot, cs)
	d.Charsets[1].Designate(slot, cs)
}

func (d *Dispatcher) dispatchEscDe(final byte) {
	s := d.CurrentScreen()
	switch final {
	case '8': // DECALN
		s.HelpAlign()
	case '3':
		s.SetLineProperty(screen.LineDoubleHeightTop, true)
	case '4':
		s.SetLineProperty(screen.LineDoubleHeightBottom, true)
	case '5':
		s.SetLineProperty(screen.LineSingleWidth, true)
	case '6':
		s.SetLineProperty(screen.LineDoubleWidth, true)
	default:
		d.reportUnknown()
	}
}

// --- CSI parametric (CPN class): up to two bare numeric args ---

func def1(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

func (d *Dispatcher) dispatchCsiPn(t token.Token) {
	s := d.CurrentScreen()
	n := def1(t.P0)
	switch t.Final {
	case '@':
		s.InsertChars(n)
	case 'A':
		s.CursorUp(n)
	case 'B':
		s.CursorDown(n)
	case 'C':
		s.CursorRight(n)
	case 'D':
		s.CursorLeft(n)
	case 'E':
		for i := 0; i < n; i++ {
			s.NextLine()
		}
	case 'F':
		s.CursorUp(n)
		s.ToStartOfLine()
	case 'G':
		s.SetCursorX(n - 1)
	case 'H', 'f':
		s.SetCursorYX(def1(t.P0)-1, def1(t.P1)-1)
	case 'I':
		s.Tab(n)
	case 'L':
		s.InsertLines(n)
	case 'M':
		s.DeleteLines(n)
	case 'P':
		s.DeleteChars(n)
	case 'S':
		s.ScrollUp(n)
	case 'T':
		s.ScrollDown(n)
	case 'X':
		s.EraseChars(n)
	case 'Z':
		s.Backtab(n)
	case 'b':
		s.RepeatChars(n)
	case 'c':
		if t.P0 == 0 {
			d.Reporter.PrimaryAttributes()
		}
	case 'd':
		s.SetCursorY(n - 1)
	case 'r':
		if t.P0 == 0 && t.P1 == 0 {
			s.SetDefaultMargins()
		} else {
			s.SetMargins(def1(t.P0), t.P1)
		}
	case 'y':
		// plain 'y' with no preceding '*' intermediate: no defined op.
	default:
		d.reportUnknown()
	}
}

// --- CSI space intermediate ---

func (d *Dispatcher) dispatchCsiSp(final byte, param int, hasParam bool) {
	if final != 'q' {
		d.reportUnknown()
		return
	}
	shape := ShapeBlock
	if hasParam {
		switch param {
		case 3, 4:
			shape = ShapeUnderline
		case 5, 6:
			shape = ShapeBar
		}
	}
	if d.Events != nil {
		d.Events.SetCursorStyleRequest(shape)
	}
}

// --- CSI '!' private ---

func (d *Dispatcher) dispatchCsiPe(t token.Token) {
	if t.Final == 'p' { // DECSTR soft reset
		d.softReset()
		return
	}
	d.reportUnknown()
}

func (d *Dispatcher) softReset() {
	d.Modes.ResetMode(modes.Insert)
	d.CurrentScreen().SetDefaultMargins()
	d.CurrentScreen().SetDefaultRendition()
}

// --- CSI plain final (otherwise bucket): one token per parameter ---

func (d *Dispatcher) dispatchCsiPs(t token.Token) {
	switch t.Final {
	case 'm':
		d.dispatchSGR(t)
	case 'h':
		d.setAnsiMode(t.P0, true)
	case 'l':
		d.setAnsiMode(t.P0, false)
	case 'n':
		d.dispatchDSR(t.P0)
	case 'J':
		d.dispatchED(t.P0)
	case 'K':
		d.dispatchEL(t.P0)
	case 'g':
		d.dispatchTBC(t.P0)
	case 't':
		d.dispatchWindowOp(t.P0, t.P1, t.P2)
	case 'x':
		d.Reporter.TerminalParams(t.P0)
	default:
		d.reportUnknown()
	}
}

func (d *Dispatcher) setAnsiMode(n int, on bool) {
	var m modes.Mode
	switch n {
	case 4:
		m = modes.Insert
	case 20:
		m = modes.NewLine
	default:
		d.reportUnknown()
		return
	}
	if on {
		d.Modes.SetMode(m)
	} else {
		d.Modes.ResetMode(m)
	}
}

func (d *Dispatcher) dispatchDSR(n int) {
	switch n {
	case 5:
		d.Reporter.Status()
	case 6:
		d.Reporter.CursorPosition(d.CurrentScreen())
	}
}

func (d *Dispatcher) dispatchED(n int) {
	s := d.CurrentScreen()
	switch n {
	case 0:
		s.ClearToEndOfScreen()
	case 1:
		s.ClearToBeginOfScreen()
	case 2, 3:
		s.ClearEntireScreen()
	}
}

func (d *Dispatcher) dispatchEL(n int) {
	s := d.CurrentScreen()
	switch n {
	case 0:
		s.ClearToEndOfLine()
	case 1:
		s.ClearToBeginOfLine()
	case 2:
		s.ClearEntireLine()
	}
}

func (d *Dispatcher) dispatchTBC(n int) {
	s := d.CurrentScreen()
	switch n {
	case 0:
		s.ChangeTabStop(false)
	case 3:
		s.ClearTabStops()
	}
}

func (d *Dispatcher) dispatchWindowOp(op, p1, p2 int) {
	s := d.CurrentScreen()
	switch op {
	case 8:
		if d.Events != nil {
			d.Events.ImageResizeRequest(p2, p1)
		}
		s.SetImageSize(p1, p2)
	case 18:
		d.Reporter.WindowSize(s)
	}
}

// dispatchSGR implements Select Graphic Rendition. The extended color
// sub-sequence has already been collapsed by the tokenizer into a
// single token carrying (channel, subId, payload); everything else
// arrives as one plain parameter per token.
func (d *Dispatcher) dispatchSGR(t token.Token) {
	s := d.CurrentScreen()

	if t.P1 != token.PlainSGR {
		var space screen.ColorSpace
		var value int
		if t.P1 == 2 {
			space, value = screen.ColorSpaceRGB, t.P2
		} else {
			space, value = screen.ColorSpace256, t.P2
		}
		if t.P0 == 38 {
			s.SetForeColor(space, value)
		} else {
			s.SetBackColor(space, value)
		}
		return
	}

	n := t.P0
	switch {
	case n == 0:
		s.SetDefaultRendition()
	case n == 1:
		s.SetRendition(screen.Bold)
	case n == 2:
		s.SetRendition(screen.Faint)
	case n == 3:
		s.SetRendition(screen.Italic)
	case n == 4:
		s.SetRendition(screen.Underline)
	case n == 5 || n == 6:
		s.SetRendition(screen.Blink)
	case n == 7:
		s.SetRendition(screen.Inverse)
	case n == 8:
		s.SetRendition(screen.Conceal)
	case n == 9:
		s.SetRendition(screen.Strikethrough)
	case n == 53:
		// overline: not modeled as a Rendition bit; ignored.
	case n == 21 || n == 22:
		s.ResetRendition(screen.Bold | screen.Faint)
	case n == 23:
		s.ResetRendition(screen.Italic)
	case n == 24:
		s.ResetRendition(screen.Underline)
	case n == 25:
		s.ResetRendition(screen.Blink)
	case n == 27:
		s.ResetRendition(screen.Inverse)
	case n == 28:
		s.ResetRendition(screen.Conceal)
	case n == 29:
		s.ResetRendition(screen.Strikethrough)
	case n == 39:
		s.SetForeColor(screen.ColorSpaceDefault, 0)
	case n == 49:
		s.SetBackColor(screen.ColorSpaceDefault, 0)
	case n >= 30 && n <= 37:
		s.SetForeColor(screen.ColorSpaceSystem, n-30)
	case n >= 40 && n <= 47:
		s.SetBackColor(screen.ColorSpaceSystem, n-40)
	case n >= 90 && n <= 97:
		s.SetForeColor(screen.ColorSpaceSystem, n-90+8)
	case n >= 100 && n <= 107:
		s.SetBackColor(screen.ColorSpaceSystem, n-100+8)
	case n == 38 || n == 48:
		// extended-color introducer with no recognizable sub-sequence;
		// nothing to apply.
	default:
		d.reportUnknown()
	}
}

// --- CSI private (?, =, >): one token per parameter, iterate handled
// by the tokenizer; dispatch maps each parameter to a mode or query. ---

var decPrivate = map[int]modes.Mode{
	1:    modes.AppCuKeys,
	3:    modes.Columns132,
	5:    modes.ScreenReverse,
	6:    modes.Origin,
	7:    modes.Wrap,
	25:   modes.Cursor,
	40:   modes.Allow132Columns,
	1000: modes.Mouse1000,
	1001: modes.Mouse1001,
	1002: modes.Mouse1002,
	1003: modes.Mouse1003,
	1005: modes.Mouse1005,
	1006: modes.Mouse1006,
	1007: modes.Mouse1007,
	1015: modes.Mouse1015,
	1047: modes.AppScreen,
	1049: modes.AppScreen,
	2004: modes.BracketedPaste,
}

// setAnsi toggles DECANM and notifies OnAnsiModeChanged, since the
// tokenizer's ANSI/VT52 grammar switch lives outside modes.Set.
func (d *Dispatcher) setAnsi(on bool) {
	if on {
		d.Modes.SetMode(modes.Ansi)
	} else {
		d.Modes.ResetMode(modes.Ansi)
	}
	if d.OnAnsiModeChanged != nil {
		d.OnAnsiModeChanged(on)
	}
}

func (d *Dispatcher) dispatchPrivate(prefix byte, t token.Token) {
	n := t.P0

	if prefix == '>' {
		if t.Final == 'c' && n == 0 {
			d.Reporter.SecondaryAttributes()
		}
		return
	}
	if prefix == '=' {
		if t.Final == 'c' && n == 0 {
			d.Reporter.TertiaryAttributes()
		}
		return
	}

	if t.Final != 'h' && t.Final != 'l' {
		d.reportUnknown()
		return
	}
	on := t.Final == 'h'

	if n == 2 { // DECANM: ANSI/VT52 mode switch
		d.setAnsi(on)
		return
	}

	m, ok := decPrivate[n]
	if !ok {
		d.reportUnknown()
		return
	}

	if n == 1049 {
		if on {
			d.CurrentScreen().SaveCursor()
			d.Modes.SetMode(m)
		} else {
			d.Modes.ResetMode(m)
			d.CurrentScreen().RestoreCursor()
		}
		return
	}

	if on {
		d.Modes.SetMode(m)
	} else {
		d.Modes.ResetMode(m)
	}
}

// --- VT52 ---

func (d *Dispatcher) dispatchVt52(t token.Token) {
	s := d.CurrentScreen()
	switch t.Final {
	case 'A':
		s.CursorUp(1)
	case 'B':
		s.CursorDown(1)
	case 'C':
		s.CursorRight(1)
	case 'D':
		s.CursorLeft(1)
	case 'H':
		s.SetCursorYX(0, 0)
	case 'I':
		s.ReverseIndex()
	case 'J':
		s.ClearToEndOfScreen()
	case 'K':
		s.ClearToEndOfLine()
	case 'Y':
		s.SetCursorYX(t.P0-32, t.P1-32)
	case 'Z':
		d.Reporter.PrimaryAttributesVT52()
	case '<':
		d.setAnsi(true)
	default:
		d.reportUnknown()
	}
}

// --- modes.Observer ---

func (d *Dispatcher) MouseTrackingRequested(enabled bool) {
	if d.Events != nil {
		d.Events.ProgramRequestsMouseTracking(enabled)
	}
}

func (d *Dispatcher) AlternateScrollingChanged(enabled bool) {
	if d.Events != nil {
		d.Events.EnableAlternateScrolling(enabled)
	}
}

func (d *Dispatcher) BracketedPasteChanged(enabled bool) {
	if d.Events != nil {
		d.Events.ProgramBracketedPasteModeChanged(enabled)
	}
}

func (d *Dispatcher) ColumnsChanged(columns int) {
	s := d.CurrentScreen()
	s.ClearEntireScreen()
	s.SetImageSize(s.Rows(), columns)
}

func (d *Dispatcher) AppScreenChanged(enabled bool) {
	if enabled {
		d.current = 1
		d.CurrentScreen().ClearSelection()
		d.CurrentScreen().SetDefaultRendition()
	} else {
		d.Screens[0].ClearSelection()
		d.current = 0
	}
}

func (d *Dispatcher) SetScreenMode(m modes.Mode, on bool) {
	sm, ok := toScreenMode(m)
	if !ok {
		return
	}
	d.Screens[0].SetScreenMode(sm, on)
	d.Screens[1].SetScreenMode(sm, on)
}

func toScreenMode(m modes.Mode) (screen.ScreenMode, bool) {
	switch m {
	case modes.Cursor:
		return screen.ModeCursor, true
	case modes.Insert:
		return screen.ModeInsert, true
	case modes.Origin:
		return screen.ModeOrigin, true
	case modes.Wrap:
		return screen.ModeWrap, true
	case modes.ScreenReverse:
		return screen.ModeReverse, true
	case modes.NewLine:
		return screen.ModeNewLine, true
	}
	return 0, false
}

// --- tokenizer.ChecksumRequester ---

func (d *Dispatcher) RequestChecksum(args []int) {
	get := func(i int) int {
		if i < len(args) {
			return args[i]
		}
		return 0
	}
	d.Reporter.Checksum(d.CurrentScreen(), get(0), get(1), get(2), get(3), get(4))
}

// --- OSC (session attributes) ---

// OnOSC is wired to the tokenizer as its OnOSC hook; terminator is the
// byte that ended the sequence (BEL, the backslash of ST, or ESC when
// ESC and some other byte ended it).
func (d *Dispatcher) OnOSC(body string, terminator byte) {
	pa, pv := splitOSC(body)
	id, err := strconv.Atoi(pa)
	if err != nil {
		d.reportUnknown()
		return
	}

	if id == 8 {
		d.dispatchHyperlink(pv)
		return
	}

	if pv == "?" {
		if d.Events != nil {
			d.Events.SessionAttributeRequest(id, terminator)
		}
		return
	}

	if id == osdAttrProfileChange {
		if shape, ok := parseCursorShape(pv); ok {
			if d.Events != nil {
				d.Events.SetCursorStyleRequest(shape)
			}
			return
		}
	}

	d.enqueueAttribute(id, pv)
}

func splitOSC(body string) (pa, pv string) {
	i := strings.IndexByte(body, ';')
	if i < 0 {
		return body, ""
	}
	return body[:i], body[i+1:]
}

func (d *Dispatcher) dispatchHyperlink(pv string) {
	_, url := splitOSC(pv) // strip the leading "<id-part>;"
	if url == "" {
		if d.inHyperlink && d.Hyperlink != nil {
			d.Hyperlink.EndHyperlink()
		}
		d.inHyperlink = false
		return
	}
	if d.Hyperlink != nil {
		d.Hyperlink.BeginHyperlink(url)
	}
	d.inHyperlink = true
}

const cursorShapePrefix = "CursorShape="

func parseCursorShape(pv string) (CursorShape, bool) {
	if !strings.HasPrefix(pv, cursorShapePrefix) {
		return 0, false
	}
	digits := pv[len(cursorShapePrefix):]
	if digits == "" {
		return 0, false
	}
	switch digits[len(digits)-1] {
	case '0', '1':
		return ShapeBlock, true
	case '2', '3':
		return ShapeUnderline, true
	case '4', '5':
		return ShapeBar, true
	}
	return 0, false
}

// enqueueAttribute stores (id, text) and (re)arms the coalescing
// timer.
func (d *Dispatcher) enqueueAttribute(id int, text string) {
	if _, ok := d.pendingVals[id]; !ok {
		d.pendingOrder = append(d.pendingOrder, id)
	}
	d.pendingVals[id] = text

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.Clock != nil {
		d.timer = d.Clock.AfterFunc(CoalesceDelay, d.flushAttributes)
	}
}

func (d *Dispatcher) flushAttributes() {
	order := d.pendingOrder
	vals := d.pendingVals
	d.pendingOrder = nil
	d.pendingVals = make(map[int]string)
	d.timer = nil

	if d.Events == nil {
		return
	}
	for _, id := range order {
		d.Events.SessionAttributeChanged(id, vals[id])
	}
}

// Reset implements RIS: resets the mode set, clears both screens, and
// requests a default cursor style. The tokenizer itself is reset by
// the caller (Emulator), which owns it.
func (d *Dispatcher) Reset() {
	d.Modes.Reset()
	d.current = 0
	for i := range d.Screens {
		if d.Screens[i] == nil {
			continue
		}
		d.Screens[i].ClearEntireScreen()
		d.Screens[i].SetDefaultMargins()
		d.Screens[i].SetDefaultRendition()
	}
	d.Charsets[0] = charset.New()
	d.Charsets[1] = charset.New()
	d.inHyperlink = false
	d.pendingOrder = nil
	d.pendingVals = make(map[int]string)
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.Events != nil {
		d.Events.ResetCursorStyleRequest()
	}
	if d.OnAnsiModeChanged != nil {
		d.OnAnsiModeChanged(true)
	}
}
