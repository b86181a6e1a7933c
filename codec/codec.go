// Package codec decodes raw PTY bytes into Unicode code points before
// they reach the tokenizer. The active codec is selected by the
// "ESC % G" (UTF-8) / "ESC % @" (locale) escape sequences; the core
// never hardcodes a charset conversion itself.
package codec

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Codec turns a byte as it arrives from the child process into zero or
// one rune, buffering partial multi-byte sequences internally.
// Implementations are stateful and must not be shared across sessions.
type Codec interface {
	// Feed consumes one raw byte and returns the rune it completed, if
	// any, and whether a rune was produced. A multi-byte sequence in
	// progress returns ok == false until its last byte arrives.
	Feed(b byte) (r rune, ok bool)
	// Name identifies the codec for diagnostics.
	Name() string
}

// Utf8Codec decodes the child's output as UTF-8, the default and the
// codec selected by "ESC % G".
type Utf8Codec struct {
	buf  [utf8.UTFMax]byte
	n    int
	want int
}

func NewUtf8Codec() *Utf8Codec { return &Utf8Codec{} }

func (c *Utf8Codec) Name() string { return "UTF-8" }

func (c *Utf8Codec) Feed(b byte) (rune, bool) {
	if c.want == 0 {
		switch {
		case b < 0x80:
			return rune(b), true
		case b&0xE0 == 0xC0:
			c.start(b, 2)
		case b&0xF0 == 0xE0:
			c.start(b, 3)
		case b&0xF8 == 0xF0:
			c.start(b, 4)
		default:
			return utf8.RuneError, true
		}
		return 0, false
	}

	if b&0xC0 != 0x80 {
		// Invalid continuation: abandon the sequence and reprocess b
		// as a fresh lead byte.
		c.want = 0
		c.n = 0
		return c.Feed(b)
	}

	c.buf[c.n] = b
	c.n++
	if c.n < c.want {
		return 0, false
	}

	r, size := utf8.DecodeRune(c.buf[:c.n])
	c.want = 0
	c.n = 0
	if size == 0 {
		return utf8.RuneError, true
	}
	return r, true
}

func (c *Utf8Codec) start(lead byte, want int) {
	c.buf[0] = lead
	c.n = 1
	c.want = want
}

// LocaleCodec decodes the child's output through a fixed 8-bit
// encoding.Encoding, for sessions running in a non-UTF-8 locale.
// Selected by "ESC % @". Defaults to ISO-8859-1 (Latin-1), the
// traditional xterm fallback locale; a different legacy encoding can
// be supplied with NewLocaleCodecWith.
type LocaleCodec struct {
	dec *encoding.Decoder
}

func NewLocaleCodec() *LocaleCodec {
	return NewLocaleCodecWith(charmap.ISO8859_1)
}

func NewLocaleCodecWith(cm encoding.Encoding) *LocaleCodec {
	return &LocaleCodec{dec: cm.NewDecoder()}
}

func (c *LocaleCodec) Name() string { return "locale" }

func (c *LocaleCodec) Feed(b byte) (rune, bool) {
	out, _, err := transformByte(c.dec, b)
	if err != nil || out == utf8.RuneError {
		return rune(b), true
	}
	return out, true
}

// transformByte runs a single byte through a golang.org/x/text Decoder.
// Every charmap.Charmap codepage is a single-byte encoding, so one
// input byte always yields exactly one rune; this keeps LocaleCodec's
// Feed contract (one byte in, at most one rune out) intact without
// needing the general streaming Transformer buffering protocol.
func transformByte(dec *encoding.Decoder, b byte) (rune, int, error) {
	dst := make([]byte, utf8.UTFMax)
	nDst, _, err := dec.Transform(dst, []byte{b}, true)
	if err != nil {
		return utf8.RuneError, 0, err
	}
	r, size := utf8.DecodeRune(dst[:nDst])
	return r, size, nil
}
