package token

import "testing"

func TestNew(t *testing.T) {
	tok := New(CsiPn, 'A', 5, 0, 0)
	if tok.Kind != CsiPn || tok.Final != 'A' || tok.P0 != 5 {
		t.Fatalf("New produced unexpected token: %+v", tok)
	}
}

func TestStringKnownKind(t *testing.T) {
	tok := New(Ctl, 0x07, 0, 0, 0)
	if got, want := tok.String(), "Ctl(\a)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringUnknownKind(t *testing.T) {
	tok := Token{Kind: Kind(99), Final: 'x'}
	if got, want := tok.String(), "Unknown(x)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

type recordingReporter struct {
	calls [][]rune
}

func (r *recordingReporter) DecodingError(buf []rune) {
	r.calls = append(r.calls, buf)
}

func TestErrorReporterInterface(t *testing.T) {
	var r recordingReporter
	var er ErrorReporter = &r
	er.DecodingError([]rune{'a', 'b'})
	if len(r.calls) != 1 || string(r.calls[0]) != "ab" {
		t.Fatalf("DecodingError not recorded: %+v", r.calls)
	}
}

func TestPlainSGRSentinel(t *testing.T) {
	if PlainSGR != -1 {
		t.Fatalf("PlainSGR = %d, want -1", PlainSGR)
	}
}
