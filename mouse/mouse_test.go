package mouse

import (
	"testing"

	"github.com/javanhut/vtcore/modes"
)

type fakeSink struct{ sent [][]byte }

func (f *fakeSink) SendData(b []byte) {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sent = append(f.sent, cp)
}

func newEncoder() (*Encoder, *fakeSink, *modes.Set) {
	sink := &fakeSink{}
	var m *modes.Set
	m = modes.New(nil)
	return &Encoder{Modes: m, Sink: sink}, sink, m
}

func TestDefaultX10Encoding(t *testing.T) {
	e, sink, m := newEncoder()
	m.SetMode(modes.Mouse1000)
	e.Encode(0, 5, 10, Press)
	if len(sink.sent) != 1 {
		t.Fatalf("expected one send, got %d", len(sink.sent))
	}
	got := sink.sent[0]
	want := []byte{0x1b, '[', 'M', byte(0 + 32), byte(5 + 32), byte(10 + 32)}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSGR1006Encoding(t *testing.T) {
	e, sink, m := newEncoder()
	m.SetMode(modes.Mouse1000)
	m.SetMode(modes.Mouse1006)
	e.Encode(0, 5, 10, Press)
	if string(sink.sent[0]) != "\x1b[<0;5;10M" {
		t.Fatalf("got %q", sink.sent[0])
	}
	sink.sent = nil
	e.Encode(0, 5, 10, Release)
	if string(sink.sent[0]) != "\x1b[<0;5;10m" {
		t.Fatalf("got %q", sink.sent[0])
	}
}

func TestDragSuppressedWithoutButtonEventOrAnyEventMode(t *testing.T) {
	e, sink, m := newEncoder()
	m.SetMode(modes.Mouse1000)
	e.Encode(0, 5, 10, Drag)
	if len(sink.sent) != 0 {
		t.Fatal("drag events must be suppressed under plain 1000 tracking")
	}
}

func TestDragAllowedUnderButtonEventMode(t *testing.T) {
	e, sink, m := newEncoder()
	m.SetMode(modes.Mouse1002)
	m.SetMode(modes.Mouse1006)
	e.Encode(0, 5, 10, Drag)
	if len(sink.sent) != 1 {
		t.Fatal("drag events should be reported under 1002 (button-event) tracking")
	}
}

func TestOutOfRangeCoordinatesSuppressedWithoutExtension(t *testing.T) {
	e, sink, m := newEncoder()
	m.SetMode(modes.Mouse1000)
	e.Encode(0, 300, 10, Press)
	if len(sink.sent) != 0 {
		t.Fatal("coordinates beyond 223 must be suppressed in plain X10 encoding")
	}
}

func TestFocusGatedByReportFocus(t *testing.T) {
	sink := &fakeSink{}
	m := modes.New(nil)
	e := &Encoder{Modes: m, Sink: sink}
	e.Focus(true)
	if len(sink.sent) != 0 {
		t.Fatal("Focus must be a no-op when ReportFocus is false")
	}
	e.ReportFocus = true
	e.Focus(true)
	e.Focus(false)
	if len(sink.sent) != 2 || string(sink.sent[0]) != "\x1b[I" || string(sink.sent[1]) != "\x1b[O" {
		t.Fatalf("unexpected focus sequences: %v", sink.sent)
	}
}
