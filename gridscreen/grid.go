package gridscreen

import (
	"github.com/javanhut/vtcore/screen"
	"github.com/lucasb-eyer/go-colorful"
)

// MaxScrollback caps retained scrolled-off lines.
const MaxScrollback = 10000

const defaultTabWidth = 8

// Grid is a concrete screen.Screen: a flat cell array plus cursor,
// margins, tab stops, current rendition, and scrollback.
type Grid struct {
	cells []Cell
	cols  int
	rows  int

	cursorCol, cursorRow int
	savedCol, savedRow   int

	scrollTop, scrollBottom int // 1-based, inclusive

	tabStops []bool

	rend          screen.Rendition
	fgSpace       screen.ColorSpace
	fgValue       int
	bgSpace       screen.ColorSpace
	bgValue       int
	lastWritten   Cell
	lineProps     []screen.LineProperty
	screenModes   [6]bool
	selectionSet  bool
	scrollback    [][]Cell
	pal           *Palette
}

// New creates a Grid sized cols x rows, cursor at home, default tab
// stops every 8 columns, full-screen scroll region.
func New(cols, rows int) *Grid {
	g := &Grid{pal: &DefaultPalette}
	g.resizeTo(cols, rows)
	g.scrollTop, g.scrollBottom = 1, rows
	g.resetTabStops()
	g.screenModes[screen.ModeWrap] = true
	g.screenModes[screen.ModeCursor] = true
	return g
}

func (g *Grid) resizeTo(cols, rows int) {
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = blankCell()
	}
	g.cells = cells
	g.cols, g.rows = cols, rows
	g.lineProps = make([]screen.LineProperty, rows)
}

func (g *Grid) resetTabStops() {
	g.tabStops = make([]bool, g.cols)
	for i := 0; i < g.cols; i += defaultTabWidth {
		g.tabStops[i] = true
	}
}

func (g *Grid) index(col, row int) int { return row*g.cols + col }

func (g *Grid) clampCursor() {
	if g.cursorCol < 0 {
		g.cursorCol = 0
	}
	if g.cursorCol >= g.cols {
		g.cursorCol = g.cols - 1
	}
	if g.cursorRow < 0 {
		g.cursorRow = 0
	}
	if g.cursorRow >= g.rows {
		g.cursorRow = g.rows - 1
	}
}

// Rows/Cols/CellAt satisfy the reporting-support methods of
// screen.Screen.
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) CellAt(row, col int) (rune, screen.Rendition) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return ' ', 0
	}
	c := g.cells[g.index(col, row)]
	return c.Char, c.Rend
}

// --- Cursor motion ---

func (g *Grid) CursorUp(n int) {
	g.cursorRow -= n
	g.clampCursor()
}

func (g *Grid) CursorDown(n int) {
	g.cursorRow += n
	g.clampCursor()
}

func (g *Grid) CursorLeft(n int) {
	g.cursorCol -= n
	g.clampCursor()
}

func (g *Grid) CursorRight(n int) {
	g.cursorCol += n
	g.clampCursor()
}

func (g *Grid) SetCursorX(col int) {
	g.cursorCol = col
	g.clampCursor()
}

func (g *Grid) SetCursorY(row int) {
	g.cursorRow = row
	if g.screenModes[screen.ModeOrigin] {
		g.cursorRow += g.scrollTop - 1
	}
	g.clampCursor()
}

func (g *Grid) SetCursorYX(row, col int) {
	g.cursorCol = col
	g.cursorRow = row
	if g.screenModes[screen.ModeOrigin] {
		g.cursorRow += g.scrollTop - 1
	}
	g.clampCursor()
}

func (g *Grid) CursorPosition() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// Index moves down one line, scrolling the margin region if the
// cursor is already on the bottom margin (IND).
func (g *Grid) Index() {
	if g.cursorRow == g.scrollBottom-1 {
		g.scrollRegionUp(1)
		return
	}
	g.cursorRow++
	g.clampCursor()
}

// ReverseIndex moves up one line, scrolling the margin region if the
// cursor is already on the top margin (RI).
func (g *Grid) ReverseIndex() {
	if g.cursorRow == g.scrollTop-1 {
		g.scrollRegionDown(1)
		return
	}
	g.cursorRow--
	g.clampCursor()
}

func (g *Grid) NextLine() {
	g.cursorCol = 0
	g.Index()
}

func (g *Grid) ToStartOfLine() {
	g.cursorCol = 0
}

// --- Character insertion ---

func (g *Grid) DisplayCharacter(c rune) {
	if g.cursorCol >= g.cols {
		if g.screenModes[screen.ModeWrap] {
			g.cursorCol = 0
			g.Index()
		} else {
			g.cursorCol = g.cols - 1
		}
	}
	cell := Cell{
		Char: c, Rend: g.rend,
		FgSpace: g.fgSpace, FgValue: g.fgValue,
		BgSpace: g.bgSpace, BgValue: g.bgValue,
	}
	g.cells[g.index(g.cursorCol, g.cursorRow)] = cell
	g.lastWritten = cell
	g.cursorCol++
}

func (g *Grid) Backspace() {
	if g.cursorCol > 0 {
		g.cursorCol--
	}
}

func (g *Grid) Tab(n int) {
	for ; n > 0; n-- {
		next := g.cursorCol + 1
		for next < g.cols && !g.tabStops[next] {
			next++
		}
		if next >= g.cols {
			next = g.cols - 1
		}
		g.cursorCol = next
	}
}

func (g *Grid) Backtab(n int) {
	for ; n > 0; n-- {
		prev := g.cursorCol - 1
		for prev > 0 && !g.tabStops[prev] {
			prev--
		}
		if prev < 0 {
			prev = 0
		}
		g.cursorCol = prev
	}
}

func (g *Grid) NewLine() {
	g.Index()
}

func (g *Grid) InsertChars(n int) {
	row := g.cursorRow
	for col := g.cols - 1; col >= g.cursorCol+n; col-- {
		g.cells[g.index(col, row)] = g.cells[g.index(col-n, row)]
	}
	for col := g.cursorCol; col < g.cursorCol+n && col < g.cols; col++ {
		g.cells[g.index(col, row)] = blankCell()
	}
}

func (g *Grid) DeleteChars(n int) {
	row := g.cursorRow
	for col := g.cursorCol; col < g.cols-n; col++ {
		g.cells[g.index(col, row)] = g.cells[g.index(col+n, row)]
	}
	for col := g.cols - n; col < g.cols; col++ {
		if col < 0 {
			continue
		}
		g.cells[g.index(col, row)] = blankCell()
	}
}

func (g *Grid) InsertLines(n int) {
	bottom := g.scrollBottom - 1
	for row := bottom; row >= g.cursorRow+n; row-- {
		g.copyRow(row-n, row)
	}
	for row := g.cursorRow; row < g.cursorRow+n && row <= bottom; row++ {
		g.clearRow(row)
	}
}

func (g *Grid) DeleteLines(n int) {
	bottom := g.scrollBottom - 1
	for row := g.cursorRow; row <= bottom-n; row++ {
		g.copyRow(row+n, row)
	}
	for row := bottom - n + 1; row <= bottom; row++ {
		if row < g.cursorRow {
			continue
		}
		g.clearRow(row)
	}
}

func (g *Grid) EraseChars(n int) {
	row := g.cursorRow
	for i := 0; i < n && g.cursorCol+i < g.cols; i++ {
		g.cells[g.index(g.cursorCol+i, row)] = blankCell()
	}
}

func (g *Grid) RepeatChars(n int) {
	for i := 0; i < n; i++ {
		g.DisplayCharacter(g.lastWritten.Char)
	}
}

// --- Clearing ---

func (g *Grid) ClearToEndOfLine() {
	row := g.cursorRow
	for col := g.cursorCol; col < g.cols; col++ {
		g.cells[g.index(col, row)] = blankCell()
	}
}

func (g *Grid) ClearToEndOfScreen() {
	g.ClearToEndOfLine()
	for row := g.cursorRow + 1; row < g.rows; row++ {
		g.clearRow(row)
	}
}

func (g *Grid) ClearToBeginOfLine() {
	row := g.cursorRow
	for col := 0; col <= g.cursorCol; col++ {
		g.cells[g.index(col, row)] = blankCell()
	}
}

func (g *Grid) ClearToBeginOfScreen() {
	for row := 0; row < g.cursorRow; row++ {
		g.clearRow(row)
	}
	g.ClearToBeginOfLine()
}

func (g *Grid) ClearEntireLine() {
	g.clearRow(g.cursorRow)
}

func (g *Grid) ClearEntireScreen() {
	for row := 0; row < g.rows; row++ {
		g.clearRow(row)
	}
}

func (g *Grid) clearRow(row int) {
	for col := 0; col < g.cols; col++ {
		g.cells[g.index(col, row)] = blankCell()
	}
}

func (g *Grid) copyRow(src, dst int) {
	copy(g.cells[g.index(0, dst):g.index(0, dst)+g.cols], g.cells[g.index(0, src):g.index(0, src)+g.cols])
}

// --- Scrolling ---

func (g *Grid) ScrollUp(n int) { g.scrollRegionUp(n) }

func (g *Grid) ScrollDown(n int) { g.scrollRegionDown(n) }

func (g *Grid) scrollRegionUp(n int) {
	top, bottom := g.scrollTop-1, g.scrollBottom-1
	for i := 0; i < n; i++ {
		if top == 0 {
			row := make([]Cell, g.cols)
			copy(row, g.cells[g.index(0, 0):g.index(0, 0)+g.cols])
			g.scrollback = append(g.scrollback, row)
			if len(g.scrollback) > MaxScrollback {
				g.scrollback = g.scrollback[1:]
			}
		}
		for row := top; row < bottom; row++ {
			g.copyRow(row+1, row)
		}
		g.clearRow(bottom)
	}
}

func (g *Grid) scrollRegionDown(n int) {
	top, bottom := g.scrollTop-1, g.scrollBottom-1
	for i := 0; i < n; i++ {
		for row := bottom; row > top; row-- {
			g.copyRow(row-1, row)
		}
		g.clearRow(top)
	}
}

// --- Margins and tabs ---

func (g *Grid) SetMargins(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if top < bottom {
		g.scrollTop, g.scrollBottom = top, bottom
	}
}

func (g *Grid) SetDefaultMargins() {
	g.scrollTop, g.scrollBottom = 1, g.rows
}

func (g *Grid) Margins() (top, bottom int) {
	return g.scrollTop, g.scrollBottom
}

func (g *Grid) ChangeTabStop(set bool) {
	if g.cursorCol >= 0 && g.cursorCol < len(g.tabStops) {
		g.tabStops[g.cursorCol] = set
	}
}

func (g *Grid) ClearTabStops() {
	for i := range g.tabStops {
		g.tabStops[i] = false
	}
}

// --- Rendition ---

func (g *Grid) SetRendition(bit screen.Rendition)   { g.rend |= bit }
func (g *Grid) ResetRendition(bit screen.Rendition) { g.rend &^= bit }

func (g *Grid) SetDefaultRendition() {
	g.rend = 0
	g.fgSpace, g.fgValue = screen.ColorSpaceDefault, 0
	g.bgSpace, g.bgValue = screen.ColorSpaceDefault, 0
}

func (g *Grid) SetForeColor(space screen.ColorSpace, value int) {
	g.fgSpace, g.fgValue = space, value
}

func (g *Grid) SetBackColor(space screen.ColorSpace, value int) {
	g.bgSpace, g.bgValue = space, value
}

// --- Line properties ---

func (g *Grid) SetLineProperty(kind screen.LineProperty, on bool) {
	if g.cursorRow < 0 || g.cursorRow >= len(g.lineProps) {
		return
	}
	if on {
		g.lineProps[g.cursorRow] = kind
	} else {
		g.lineProps[g.cursorRow] = screen.LineSingleWidth
	}
}

// LineProperty exposes a row's current line property, for rendering.
func (g *Grid) LineProperty(row int) screen.LineProperty {
	if row < 0 || row >= len(g.lineProps) {
		return screen.LineSingleWidth
	}
	return g.lineProps[row]
}

// --- State ---

func (g *Grid) SaveCursor() {
	g.savedCol, g.savedRow = g.cursorCol, g.cursorRow
}

func (g *Grid) RestoreCursor() {
	g.cursorCol, g.cursorRow = g.savedCol, g.savedRow
	g.clampCursor()
}

func (g *Grid) SetScreenMode(m screen.ScreenMode, on bool) {
	if int(m) < len(g.screenModes) {
		g.screenModes[m] = on
	}
}

func (g *Grid) ScreenMode(m screen.ScreenMode) bool {
	if int(m) < len(g.screenModes) {
		return g.screenModes[m]
	}
	return false
}

func (g *Grid) SetImageSize(rows, cols int) {
	old := g.cells
	oldCols, oldRows := g.cols, g.rows
	g.resizeTo(cols, rows)
	for row := 0; row < min(rows, oldRows); row++ {
		for col := 0; col < min(cols, oldCols); col++ {
			g.cells[g.index(col, row)] = old[row*oldCols+col]
		}
	}
	g.resetTabStops()
	g.scrollTop, g.scrollBottom = 1, rows
	g.clampCursor()
}

func (g *Grid) HelpAlign() {
	// DECALN: fill the screen with 'E' at default rendition, used by
	// terminal self-test programs to check alignment.
	saved := g.rend
	g.rend = 0
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			g.cells[g.index(col, row)] = Cell{Char: 'E'}
		}
	}
	g.rend = saved
}

func (g *Grid) ClearSelection() {
	g.selectionSet = false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ResolvedColors returns the foreground/background of the cell at
// (row, col) as concrete RGB, via the grid's Palette. Used by
// reference rendering and tests; not part of the Screen contract.
func (g *Grid) ResolvedColors(row, col int) (fg, bg colorful.Color) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return g.pal.system[7], g.pal.system[0]
	}
	c := g.cells[g.index(col, row)]
	fg = g.pal.Resolve(c.FgSpace, c.FgValue)
	bg = g.pal.Resolve(c.BgSpace, c.BgValue)
	return fg, bg
}

var _ screen.Screen = (*Grid)(nil)
