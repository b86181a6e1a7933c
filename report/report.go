// Package report implements the device reporter: synthesizing replies
// to status/attribute/cursor-position/checksum queries. Every reply
// is 7-bit ASCII unless stated otherwise.
package report

import (
	"fmt"
	"log"

	"github.com/javanhut/vtcore/screen"
)

// Sink is where reply bytes go.
type Sink interface {
	SendData(b []byte)
}

// Reporter formats and sends device reports against a Screen.
type Reporter struct {
	Sink   Sink
	Logger *log.Logger
}

func (r *Reporter) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func (r *Reporter) send(s string) {
	if r.Sink != nil {
		r.Sink.SendData([]byte(s))
	}
}

// PrimaryAttributes replies to DA1 ("ESC [ c").
func (r *Reporter) PrimaryAttributes() { r.send("\x1b[?1;2c") }

// PrimaryAttributesVT52 replies to DA1 while in VT52 mode.
func (r *Reporter) PrimaryAttributesVT52() { r.send("\x1b/Z") }

// SecondaryAttributes replies to DA2 ("ESC [ > c").
func (r *Reporter) SecondaryAttributes() { r.send("\x1b[>0;115;0c") }

// TertiaryAttributes replies to DA3 ("ESC [ = c").
func (r *Reporter) TertiaryAttributes() { r.send("\x1bP!|7E4B4445\x1b\\") }

// Status replies to DSR ("ESC [ 5 n").
func (r *Reporter) Status() { r.send("\x1b[0n") }

// CursorPosition replies to CPR ("ESC [ 6 n"). row/col are 1-based
// screen coordinates; if Origin mode is active, row is reported
// relative to the current top margin.
func (r *Reporter) CursorPosition(s screen.Screen) {
	row, col := s.CursorPosition()
	y, x := row+1, col+1
	if s.ScreenMode(screen.ModeOrigin) {
		top, _ := s.Margins()
		y -= top - 1
		if y < 1 {
			y = 1
		}
	}
	r.send(fmt.Sprintf("\x1b[%d;%dR", y, x))
}

// WindowSize replies to "ESC [ 18 t".
func (r *Reporter) WindowSize(s screen.Screen) {
	r.send(fmt.Sprintf("\x1b[8;%d;%dt", s.Rows(), s.Cols()))
}

// TerminalParams replies to "ESC [ x". sol is the requested reporting
// line (argv[0], conventionally 0 or 1; echoed back unchanged).
func (r *Reporter) TerminalParams(sol int) {
	r.send(fmt.Sprintf("\x1b[%d;1;1;112;112;1;0x", sol))
}

// ChecksumSupported gates the DECRQCRA reply path at compile time.
// It ships enabled since nothing in this module depends on a
// terminal-specific build tag, but a downstream build can flip this
// to omit the feature entirely.
const ChecksumSupported = true

// Checksum replies to DECRQCRA
// ("CSI Pp ; Pt ; Pl ; Pb ; Pr * y"). pt/pl/pb/pr is the requested
// rectangle (1-based, inclusive), clipped to the screen's bounds and
// adjusted for Origin mode.
func (r *Reporter) Checksum(s screen.Screen, pp, pt, pl, pb, pr int) {
	if !ChecksumSupported {
		return
	}

	top := 1
	if s.ScreenMode(screen.ModeOrigin) {
		top, _ = s.Margins()
	}

	t, l, b, right := pt+top-1, pl, pb+top-1, pr
	if t < 1 {
		t = 1
	}
	if l < 1 {
		l = 1
	}
	if b > s.Rows() {
		b = s.Rows()
	}
	if right > s.Cols() {
		right = s.Cols()
	}
	if b < t || right < l {
		r.logger().Printf("checksum: empty region requested (pt=%d pl=%d pb=%d pr=%d)", pt, pl, pb, pr)
		return
	}

	sum := 0
	for row := t; row <= b; row++ {
		for col := l; col <= right; col++ {
			ch, rend := s.CellAt(row-1, col-1)
			v := int(ch)
			if rend&screen.Conceal != 0 {
				v = 0x20
			}
			if rend&screen.Bold != 0 {
				v += 0x80
			}
			if rend&screen.Blink != 0 {
				v += 0x40
			}
			if rend&screen.Inverse != 0 {
				v += 0x20
			}
			if rend&screen.Underline != 0 {
				v += 0x10
			}
			sum += v
		}
	}

	checksum := uint16(-sum) & 0xFFFF
	r.send(fmt.Sprintf("\x1bP%d!~%04X\x1b\\", pp, checksum))
}
