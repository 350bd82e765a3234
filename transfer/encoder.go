package transfer

import (
	"io"

	"golang.org/x/text/transform"

	"github.com/zostay/go-yenc/header"
)

// Encoder is a transform.Transformer that turns raw bytes into yEnc body
// lines. The zero value is ready to use and writes lines of
// DefaultLineLength encoded bytes separated by header.LF.
//
// A line is ended as soon as it holds at least LineLength encoded bytes. An
// escape pair is never split across lines, so a line may run one byte over.
// When the transformation is finished (atEOF), a partially filled last line
// is terminated too. Empty input produces no output at all.
type Encoder struct {
	// LineLength is the wrap width in encoded bytes. Values less than 1 mean
	// DefaultLineLength.
	LineLength int

	// Break is written at the end of every line. The empty break means
	// header.LF.
	Break header.Break

	col int
}

var _ transform.Transformer = (*Encoder)(nil)

func (e *Encoder) lineLength() int {
	if e.LineLength < 1 {
		return DefaultLineLength
	}
	return e.LineLength
}

func (e *Encoder) lineBreak() header.Break {
	if e.Break == header.Meh {
		return header.LF
	}
	return e.Break
}

// Transform encodes src into dst.
func (e *Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	ll := e.lineLength()
	lbr := e.lineBreak()

	for nSrc < len(src) {
		b := src[nSrc]

		width := 1
		if NeedsEscape(b) {
			width = 2
		}

		wrap := e.col+width >= ll
		need := width
		if wrap {
			need += len(lbr)
		}

		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if width == 2 {
			dst[nDst] = Escape
			dst[nDst+1] = EscapeByte(b)
		} else {
			dst[nDst] = EncodeByte(b)
		}
		nDst += width
		e.col += width

		if wrap {
			nDst += copy(dst[nDst:], lbr)
			e.col = 0
		}

		nSrc++
	}

	if atEOF && e.col > 0 {
		if nDst+len(lbr) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], lbr)
		e.col = 0
	}

	return nDst, nSrc, nil
}

// Reset forgets the current column so the next byte starts a fresh line.
func (e *Encoder) Reset() {
	e.col = 0
}

// NewEncoder returns an io.WriteCloser that encodes everything written to it
// as yEnc body lines and writes those to w. You must call Close() to
// terminate the final line. Close does not close w.
func NewEncoder(w io.Writer, lineLength int, lbr header.Break) io.WriteCloser {
	return transform.NewWriter(w, &Encoder{LineLength: lineLength, Break: lbr})
}
