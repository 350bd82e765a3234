package scanner_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-yenc/internal/scanner"
)

func collect(l *scanner.Lines) []string {
	var out []string
	for l.Next() {
		out = append(out, string(l.Bytes()))
	}
	return out
}

func TestLines(t *testing.T) {
	t.Parallel()

	l := scanner.NewLines(strings.NewReader("one\ntwo\r\n\nthree"))
	assert.Equal(t, []string{"one\n", "two\r\n", "\n", "three"}, collect(l))
	assert.Equal(t, 4, l.Number())
	assert.NoError(t, l.Err())

	l = scanner.NewLines(strings.NewReader(""))
	assert.Empty(t, collect(l))
	assert.Equal(t, 0, l.Number())
	assert.NoError(t, l.Err())
}

func TestLines_Breaks(t *testing.T) {
	t.Parallel()

	const in = "lf\ncrlf\r\ncr\rcr\r\rcrlf\r\nend\r"
	want := []string{"lf\n", "crlf\r\n", "cr\r", "cr\r", "\r", "crlf\r\n", "end\r"}

	l := scanner.NewLines(strings.NewReader(in))
	assert.Equal(t, want, collect(l))
	assert.Equal(t, len(want), l.Number())
	assert.NoError(t, l.Err())

	// a CRLF split between two reads is still one break
	l = scanner.NewLines(iotest.OneByteReader(strings.NewReader(in)))
	assert.Equal(t, want, collect(l))
	assert.NoError(t, l.Err())
}

func TestLines_Long(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 3*4096+17)
	l := scanner.NewLines(iotest.HalfReader(strings.NewReader(long + "\nshort\n")))
	assert.Equal(t, []string{long + "\n", "short\n"}, collect(l))
	assert.NoError(t, l.Err())

	l = scanner.NewLines(iotest.HalfReader(strings.NewReader(long + "\rshort\r")))
	assert.Equal(t, []string{long + "\r", "short\r"}, collect(l))
	assert.NoError(t, l.Err())
}

func TestLines_Max(t *testing.T) {
	t.Parallel()

	l := scanner.NewLines(strings.NewReader("short\n" + strings.Repeat("x", 100) + "\nafter\n"))
	l.Max = 64

	require.True(t, l.Next())
	assert.Equal(t, "short\n", string(l.Bytes()))
	assert.False(t, l.Next())
	assert.ErrorIs(t, l.Err(), scanner.ErrLongLine)
	assert.False(t, l.Next())
}

func TestLines_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	l := scanner.NewLines(iotest.ErrReader(boom))
	assert.False(t, l.Next())
	assert.ErrorIs(t, l.Err(), boom)
	assert.NotErrorIs(t, l.Err(), bufio.ErrBufferFull)

	// the error after a trailing CR shows up on the following call
	l = scanner.NewLines(io.MultiReader(strings.NewReader("last\r"), iotest.ErrReader(boom)))
	require.True(t, l.Next())
	assert.Equal(t, "last\r", string(l.Bytes()))
	assert.False(t, l.Next())
	assert.ErrorIs(t, l.Err(), boom)
}
