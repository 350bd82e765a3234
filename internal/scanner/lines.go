package scanner

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// ErrLongLine is returned when a line grows past the configured maximum.
var ErrLongLine = errors.New("line exceeds the maximum length")

// Lines reads lines from an io.Reader, one at a time. A line ends at LF, at
// CRLF or at a CR that is not followed by LF.
//
// Unlike bufio.Scanner, there is no built-in limit on line length. Lines are
// returned with their terminator. A final line without a terminator is
// returned as well. Only one line is held in memory at a time, the buffer
// returned by Bytes() is reused by the following call to Next().
type Lines struct {
	// Max is the longest line allowed, in bytes. Values less than 1 mean no
	// limit.
	Max int

	r   *bufio.Reader
	buf []byte
	n   int
	err error
}

// NewLines returns a line reader for r.
func NewLines(r io.Reader) *Lines {
	return &Lines{r: bufio.NewReader(r)}
}

func (l *Lines) tooLong() bool {
	if l.Max > 0 && len(l.buf) > l.Max {
		l.err = ErrLongLine
		return true
	}
	return false
}

// Next advances to the next line. It returns false at the end of input or on
// error. Check Err() to tell those apart.
func (l *Lines) Next() bool {
	if l.err != nil {
		return false
	}

	l.buf = l.buf[:0]
	for {
		if _, err := l.r.Peek(1); err != nil {
			l.err = err
			if !errors.Is(err, io.EOF) || len(l.buf) == 0 {
				return false
			}

			l.n++
			return true
		}

		avail, _ := l.r.Peek(l.r.Buffered())
		i := bytes.IndexAny(avail, "\r\n")
		if i < 0 {
			l.buf = append(l.buf, avail...)
			_, _ = l.r.Discard(len(avail))
			if l.tooLong() {
				return false
			}
			continue
		}

		l.buf = append(l.buf, avail[:i+1]...)
		_, _ = l.r.Discard(i + 1)

		if avail[i] == '\r' {
			// CRLF is a single break, even when split across reads
			next, err := l.r.Peek(1)
			switch {
			case err != nil:
				l.err = err
			case next[0] == '\n':
				l.buf = append(l.buf, '\n')
				_, _ = l.r.Discard(1)
			}
		}

		if l.tooLong() {
			return false
		}

		l.n++
		return true
	}
}

// Bytes returns the current line, including its terminator if it had one.
func (l *Lines) Bytes() []byte {
	return l.buf
}

// Number returns the 1-based number of the current line.
func (l *Lines) Number() int {
	return l.n
}

// Err returns the error that stopped Next(), or nil at a clean end of input.
func (l *Lines) Err() error {
	if errors.Is(l.err, io.EOF) {
		return nil
	}
	return l.err
}
