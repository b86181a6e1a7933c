package report

import (
	"testing"

	"github.com/javanhut/vtcore/gridscreen"
	"github.com/javanhut/vtcore/screen"
)

type fakeSink struct{ sent [][]byte }

func (f *fakeSink) SendData(b []byte) {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sent = append(f.sent, cp)
}

func (f *fakeSink) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return string(f.sent[len(f.sent)-1])
}

func TestPrimaryAttributes(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.PrimaryAttributes()
	if sink.last() != "\x1b[?1;2c" {
		t.Fatalf("DA1 = %q, want ESC[?1;2c", sink.last())
	}
}

func TestPrimaryAttributesVT52(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.PrimaryAttributesVT52()
	if sink.last() != "\x1b/Z" {
		t.Fatalf("VT52 DA1 = %q, want ESC/Z", sink.last())
	}
}

func TestSecondaryAttributes(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.SecondaryAttributes()
	if sink.last() != "\x1b[>0;115;0c" {
		t.Fatalf("DA2 = %q, want ESC[>0;115;0c", sink.last())
	}
}

func TestTertiaryAttributes(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.TertiaryAttributes()
	if sink.last() != "\x1bP!|7E4B4445\x1b\\" {
		t.Fatalf("DA3 = %q, want ESC P ! | 7E4B4445 ESC \\", sink.last())
	}
}

func TestStatus(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.Status()
	if sink.last() != "\x1b[0n" {
		t.Fatalf("DSR reply = %q, want ESC[0n", sink.last())
	}
}

func TestCursorPositionReport(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	g := gridscreen.New(80, 24)
	g.SetCursorYX(3, 4)
	r.CursorPosition(g)
	if sink.last() != "\x1b[4;5R" {
		t.Fatalf("CPR = %q, want ESC[4;5R (1-based)", sink.last())
	}
}

func TestCursorPositionReportUnderOriginMode(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	g := gridscreen.New(80, 24)
	g.SetMargins(3, 20)
	g.SetScreenMode(screen.ModeOrigin, true)
	g.SetCursorYX(0, 0) // origin-relative row 0 -> absolute row = top margin
	r.CursorPosition(g)
	if sink.last() != "\x1b[1;1R" {
		t.Fatalf("CPR under Origin mode = %q, want ESC[1;1R", sink.last())
	}
}

func TestWindowSizeReport(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	g := gridscreen.New(80, 24)
	r.WindowSize(g)
	if sink.last() != "\x1b[8;24;80t" {
		t.Fatalf("window size reply = %q, want ESC[8;24;80t", sink.last())
	}
}

func TestTerminalParamsReport(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	r.TerminalParams(0)
	if sink.last() != "\x1b[0;1;1;112;112;1;0x" {
		t.Fatalf("terminal params reply = %q, want ESC[0;1;1;112;112;1;0x", sink.last())
	}
}

func TestChecksumOverRegion(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	g := gridscreen.New(80, 24)
	g.DisplayCharacter('A')
	r.Checksum(g, 1, 1, 1, 1, 1)
	if len(sink.sent) != 1 {
		t.Fatalf("expected one checksum reply, got %d", len(sink.sent))
	}
	got := sink.last()
	if len(got) != len("\x1bP1!~0000\x1b\\") || got[:4] != "\x1bP1!" {
		t.Fatalf("checksum reply malformed: %q", got)
	}
}

func TestChecksumEmptyRegionSkipsReply(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	g := gridscreen.New(80, 24)
	// Requested rectangle entirely outside the screen: bottom < top after clipping.
	r.Checksum(g, 1, 100, 1, 200, 1)
	if len(sink.sent) != 0 {
		t.Fatalf("expected no reply for an empty region, got %d", len(sink.sent))
	}
}
