package transfer

import (
	"io"

	"github.com/zostay/go-yenc/header"
)

// Transcoding is a pair of functions that move a bare yEnc body, without
// control lines, between its encoded and raw forms.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode raw data and write
	// the encoded body lines to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read encoded body lines from
	// the given io.Reader and return the raw data.
	Decoder func(io.Reader) io.Reader
}

// The available transcodings. Both write DefaultLineLength bytes per line
// ended with header.LF, they differ in how escapes are checked on decoding.
var (
	Yenc = Transcoding{
		Encoder: newDefaultEncoder,
		Decoder: func(r io.Reader) io.Reader { return NewDecoder(r, false) },
	}

	StrictYenc = Transcoding{
		Encoder: newDefaultEncoder,
		Decoder: func(r io.Reader) io.Reader { return NewDecoder(r, true) },
	}
)

func newDefaultEncoder(w io.Writer) io.WriteCloser {
	return NewEncoder(w, DefaultLineLength, header.LF)
}
