// Package screen defines the Screen contract the dispatcher drives
// and the value types shared across that boundary. A screen's own
// storage, scrollback, and eviction policy are out of scope for this
// package; it is the interface only.
package screen

// Rendition is a bitset of the SGR attributes a cell can carry.
type Rendition uint16

const (
	Bold Rendition = 1 << iota
	Faint
	Italic
	Underline
	Blink
	Inverse
	Conceal
	Strikethrough
)

// ColorSpace identifies how a color value in SetForeColor/SetBackColor
// is to be interpreted.
type ColorSpace uint8

const (
	// ColorSpaceDefault means "restore the terminal's default color",
	// value is ignored.
	ColorSpaceDefault ColorSpace = iota
	// ColorSpaceSystem is one of the 16 standard ANSI colors, value in
	// 0-15.
	ColorSpaceSystem
	// ColorSpace256 is the xterm 256-color cube/grayscale index, value
	// in 0-255.
	ColorSpace256
	// ColorSpaceRGB is 24-bit truecolor, value packed as
	// (r<<16)|(g<<8)|b.
	ColorSpaceRGB
)

// LineProperty identifies a DEC double-width/double-height line kind
// (DECDWL/DECDHL).
type LineProperty uint8

const (
	LineSingleWidth LineProperty = iota
	LineDoubleWidth
	LineDoubleHeightTop
	LineDoubleHeightBottom
)

// ScreenMode is the subset of boolean modes a Screen owns locally
// (forwarded from modes.Set; see modes.screenForwarded). Declared here
// rather than imported from package modes to keep this contract free
// of a dependency on the mode registry's internals — the dispatcher
// translates modes.Mode to screen.ScreenMode at the call site.
type ScreenMode uint8

const (
	ModeCursor ScreenMode = iota
	ModeInsert
	ModeOrigin
	ModeWrap
	ModeReverse
	ModeNewLine
)

// Screen is every operation the emulation core may invoke on a screen
// buffer. It is the sole surface through which the core touches cell
// storage.
type Screen interface {
	// Cursor motion
	CursorUp(n int)
	CursorDown(n int)
	CursorLeft(n int)
	CursorRight(n int)
	SetCursorX(col int)
	SetCursorY(row int)
	SetCursorYX(row, col int)
	Index()
	ReverseIndex()
	NextLine()
	ToStartOfLine()
	CursorPosition() (row, col int)

	// Character insertion
	DisplayCharacter(c rune)
	Backspace()
	Tab(n int)
	Backtab(n int)
	NewLine()
	InsertChars(n int)
	InsertLines(n int)
	DeleteChars(n int)
	DeleteLines(n int)
	EraseChars(n int)
	RepeatChars(n int)

	// Clearing
	ClearToEndOfLine()
	ClearToEndOfScreen()
	ClearToBeginOfLine()
	ClearToBeginOfScreen()
	ClearEntireLine()
	ClearEntireScreen()

	// Scrolling
	ScrollUp(n int)
	ScrollDown(n int)

	// Margins and tabs
	SetMargins(top, bottom int)
	SetDefaultMargins()
	Margins() (top, bottom int)
	ChangeTabStop(set bool)
	ClearTabStops()

	// Rendition
	SetRendition(bit Rendition)
	ResetRendition(bit Rendition)
	SetDefaultRendition()
	SetForeColor(space ColorSpace, value int)
	SetBackColor(space ColorSpace, value int)

	// Line properties
	SetLineProperty(kind LineProperty, on bool)

	// State
	SaveCursor()
	RestoreCursor()
	SetScreenMode(m ScreenMode, on bool)
	ScreenMode(m ScreenMode) bool
	SetImageSize(rows, cols int)
	HelpAlign()

	// Reporting support, required by the Device Reporter's CPR/checksum
	// replies, which read cell state and cursor position back out of
	// the screen.
	Rows() int
	Cols() int
	CellAt(row, col int) (ch rune, rend Rendition)

	// ClearSelection and SetDefaultRendition are invoked together by
	// the Mode Registry's AppScreen side effect: clear the selection and
	// reset rendition on the alternate screen. ClearSelection lives on
	// Screen because selection state is screen-local even though
	// selection mechanics themselves are the GUI's concern; the core
	// only ever calls this single clearing hook.
	ClearSelection()
}
