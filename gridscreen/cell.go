// Package gridscreen is a concrete screen.Screen backed by a flat cell
// grid with cursor, scroll-region, rendition, palette, and
// line-property bookkeeping. It is not mandated by any caller's
// contract but is what this module's own tests and examples exercise
// against.
package gridscreen

import "github.com/javanhut/vtcore/screen"

// Cell is a single terminal cell: character, rendition bits, and the
// two colors a cell can carry, stored as (space, value) pairs so a
// later truecolor request does not need to round-trip through an
// indexed approximation until something actually needs one (see
// Palette.Resolve).
type Cell struct {
	Char     rune
	Rend     screen.Rendition
	FgSpace  screen.ColorSpace
	FgValue  int
	BgSpace  screen.ColorSpace
	BgValue  int
	WideTail bool // true for the trailing half of a wide character
}

func blankCell() Cell {
	return Cell{Char: ' '}
}
