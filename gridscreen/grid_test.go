package gridscreen

import (
	"testing"

	"github.com/javanhut/vtcore/screen"
)

func TestNewGridBlank(t *testing.T) {
	g := New(80, 24)
	if g.Rows() != 24 || g.Cols() != 80 {
		t.Fatalf("dimensions = %d x %d, want 80 x 24", g.Cols(), g.Rows())
	}
	ch, _ := g.CellAt(0, 0)
	if ch != ' ' {
		t.Fatalf("fresh grid cell = %q, want blank", ch)
	}
}

func TestDisplayCharacterAdvancesCursor(t *testing.T) {
	g := New(10, 5)
	g.DisplayCharacter('A')
	g.DisplayCharacter('B')
	row, col := g.CursorPosition()
	if row != 0 || col != 2 {
		t.Fatalf("cursor at (%d,%d), want (0,2)", row, col)
	}
	ch, _ := g.CellAt(0, 0)
	if ch != 'A' {
		t.Fatalf("cell(0,0) = %q, want 'A'", ch)
	}
	ch, _ = g.CellAt(0, 1)
	if ch != 'B' {
		t.Fatalf("cell(0,1) = %q, want 'B'", ch)
	}
}

func TestWrapAtEndOfLine(t *testing.T) {
	g := New(3, 2)
	g.DisplayCharacter('A')
	g.DisplayCharacter('B')
	g.DisplayCharacter('C')
	g.DisplayCharacter('D') // should wrap to next line
	row, col := g.CursorPosition()
	if row != 1 || col != 1 {
		t.Fatalf("cursor at (%d,%d) after wrap, want (1,1)", row, col)
	}
	ch, _ := g.CellAt(1, 0)
	if ch != 'D' {
		t.Fatalf("cell(1,0) = %q, want 'D'", ch)
	}
}

func TestIndexScrollsAtBottomMargin(t *testing.T) {
	g := New(5, 3)
	g.DisplayCharacter('X')
	g.SetCursorYX(2, 0) // bottom row (0-based row 2)
	g.Index()
	ch, _ := g.CellAt(0, 0)
	if ch != ' ' {
		t.Fatalf("top row should have scrolled off 'X', got %q", ch)
	}
	row, _ := g.CursorPosition()
	if row != 2 {
		t.Fatalf("cursor row after scrolling Index = %d, want still on bottom margin 2", row)
	}
}

func TestInsertAndDeleteChars(t *testing.T) {
	g := New(5, 1)
	for _, c := range "ABCDE" {
		g.DisplayCharacter(c)
	}
	g.SetCursorYX(1, 0)
	g.InsertChars(2)
	ch, _ := g.CellAt(0, 2)
	if ch != 'A' {
		t.Fatalf("cell(0,2) after InsertChars(2) = %q, want 'A' shifted right", ch)
	}
	ch0, _ := g.CellAt(0, 0)
	if ch0 != ' ' {
		t.Fatalf("cell(0,0) after InsertChars(2) = %q, want blank", ch0)
	}

	g2 := New(5, 1)
	for _, c := range "ABCDE" {
		g2.DisplayCharacter(c)
	}
	g2.SetCursorYX(1, 0)
	g2.DeleteChars(2)
	ch2, _ := g2.CellAt(0, 0)
	if ch2 != 'C' {
		t.Fatalf("cell(0,0) after DeleteChars(2) = %q, want 'C' shifted left", ch2)
	}
}

func TestClearToEndOfScreen(t *testing.T) {
	g := New(3, 2)
	g.DisplayCharacter('A')
	g.SetCursorYX(2, 0)
	g.DisplayCharacter('B')
	g.SetCursorYX(1, 0)
	g.ClearToEndOfScreen()
	ch, _ := g.CellAt(1, 0)
	if ch != ' ' {
		t.Fatalf("row 1 should be cleared, got %q", ch)
	}
}

func TestMarginsClampToRows(t *testing.T) {
	g := New(5, 5)
	g.SetMargins(1, 100)
	top, bottom := g.Margins()
	if top != 1 || bottom != 5 {
		t.Fatalf("margins = %d,%d, want clamped to 1,5", top, bottom)
	}
	g.SetDefaultMargins()
	top, bottom = g.Margins()
	if top != 1 || bottom != 5 {
		t.Fatalf("default margins = %d,%d, want 1,5", top, bottom)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	g := New(10, 10)
	g.SetCursorYX(3, 4)
	g.SaveCursor()
	g.SetCursorYX(0, 0)
	g.RestoreCursor()
	row, col := g.CursorPosition()
	if row != 3 || col != 4 {
		t.Fatalf("cursor after RestoreCursor = (%d,%d), want (3,4)", row, col)
	}
}

func TestSetImageSizePreservesOverlap(t *testing.T) {
	g := New(5, 5)
	g.DisplayCharacter('Z')
	g.SetImageSize(3, 3)
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("dimensions after resize = %d x %d, want 3 x 3", g.Cols(), g.Rows())
	}
	ch, _ := g.CellAt(0, 0)
	if ch != 'Z' {
		t.Fatalf("cell(0,0) after shrink = %q, want preserved 'Z'", ch)
	}
}

func TestTabAndBacktab(t *testing.T) {
	g := New(20, 1)
	g.Tab(1)
	_, col := g.CursorPosition()
	if col != 8 {
		t.Fatalf("cursor col after one Tab = %d, want 8", col)
	}
	g.Backtab(1)
	_, col = g.CursorPosition()
	if col != 0 {
		t.Fatalf("cursor col after Backtab = %d, want 0", col)
	}
}

func TestRenditionRoundTrip(t *testing.T) {
	g := New(5, 1)
	g.SetRendition(screen.Bold | screen.Underline)
	g.DisplayCharacter('X')
	_, rend := g.CellAt(0, 0)
	if rend&screen.Bold == 0 || rend&screen.Underline == 0 {
		t.Fatalf("rendition on written cell = %v, want Bold|Underline", rend)
	}
	g.ResetRendition(screen.Bold)
	g.DisplayCharacter('Y')
	_, rend = g.CellAt(0, 1)
	if rend&screen.Bold != 0 {
		t.Fatal("Bold should have been cleared by ResetRendition")
	}
}

func TestHelpAlignFillsScreen(t *testing.T) {
	g := New(3, 2)
	g.HelpAlign()
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			ch, _ := g.CellAt(row, col)
			if ch != 'E' {
				t.Fatalf("cell(%d,%d) = %q after DECALN, want 'E'", row, col, ch)
			}
		}
	}
}

var _ screen.Screen = (*Grid)(nil)
