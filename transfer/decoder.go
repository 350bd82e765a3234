package transfer

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/transform"
)

// Errors returned while decoding a body.
var (
	// ErrTruncatedEscape is returned when the input ends right after an
	// escape marker, so the byte it escapes never arrived.
	ErrTruncatedEscape = errors.New("input ends inside an escape sequence")
)

// InvalidEscapeError is returned by a strict Decoder when the byte following
// an escape marker is not one a conforming encoder would produce.
type InvalidEscapeError struct {
	Offset int64 // offset of the offending byte in the encoded input
	Byte   byte  // the byte that followed the escape marker
}

// Error returns the error message.
func (err *InvalidEscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence: '=' followed by 0x%02x at encoded offset %d", err.Byte, err.Offset)
}

// Decoder is a transform.Transformer that turns yEnc body bytes back into raw
// bytes. Unescaped CR and LF bytes are line breaks and are skipped. The
// zero value is a lenient decoder.
//
// An escape marker at the very end of one call to Transform is remembered and
// applied to the first data byte of the next call. If the transformation ends
// (atEOF) with a marker still pending, ErrTruncatedEscape is returned.
type Decoder struct {
	// Strict rejects escape pairs whose second byte is not produced by a
	// conforming encoder, see ValidStrictEscape. A lenient decoder accepts any
	// byte after the marker.
	Strict bool

	escaped bool
	offset  int64
}

var _ transform.Transformer = (*Decoder)(nil)

// Transform decodes src into dst.
func (d *Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]

		switch {
		case c == '\r' || c == '\n':
			nSrc++
			d.offset++
			continue
		case !d.escaped && c == Escape:
			d.escaped = true
			nSrc++
			d.offset++
			continue
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if d.escaped {
			if d.Strict && !ValidStrictEscape(c) {
				return nDst, nSrc, &InvalidEscapeError{Offset: d.offset, Byte: c}
			}
			dst[nDst] = UnescapeByte(c)
			d.escaped = false
		} else {
			dst[nDst] = DecodeByte(c)
		}

		nDst++
		nSrc++
		d.offset++
	}

	if atEOF && d.escaped {
		return nDst, nSrc, ErrTruncatedEscape
	}

	return nDst, nSrc, nil
}

// Pending reports whether an escape marker has been read whose pair byte has
// not arrived yet.
func (d *Decoder) Pending() bool {
	return d.escaped
}

// Reset clears the escape state and the offset counter.
func (d *Decoder) Reset() {
	d.escaped = false
	d.offset = 0
}

// NewDecoder returns an io.Reader that decodes the yEnc body read from r.
// The input must be the body alone, without control lines.
func NewDecoder(r io.Reader, strict bool) io.Reader {
	return transform.NewReader(r, &Decoder{Strict: strict})
}
