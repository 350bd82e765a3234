package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yenc "github.com/zostay/go-yenc"
)

// The commands share global state, so these tests do not run in parallel.

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the command line given in args with stdin as input and
// returns what was written to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEncode_Stdio(t *testing.T) {
	out, _, err := run(t, "KLMNO", "encode", "--name", "test.txt")
	require.NoError(t, err)
	assert.Equal(t,
		"=ybegin line=128 size=5 name=test.txt\n"+
			"uvwxy\n"+
			"=yend size=5 pcrc32=c81859d9 crc32=c81859d9\n",
		out)

	_, _, err = run(t, "KLMNO", "encode")
	assert.ErrorContains(t, err, "--name is required")
}

func TestEncodeDecode_Files(t *testing.T) {
	raw := make([]byte, 5000)
	for i := range raw {
		raw[i] = byte(i * 31)
	}
	in := writeFile(t, "photo.jpg", raw)
	enc := filepath.Join(t.TempDir(), "photo.yenc")
	dec := filepath.Join(t.TempDir(), "photo.out")

	_, _, err := run(t, "", "encode", "-i", in, "-o", enc, "--line", "64", "--crlf")
	require.NoError(t, err)

	encoded, err := os.ReadFile(enc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(encoded, []byte("=ybegin line=64 size=5000 name=photo.jpg\r\n")))

	_, _, err = run(t, "", "decode", "-i", enc, "-o", dec, "--strict")
	require.NoError(t, err)

	decoded, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecode_RemovesOutputOnError(t *testing.T) {
	in := writeFile(t, "bad.yenc", []byte("=ybegin size=5 name=bad.bin\nKLMNO\n=yend size=5 crc32=deadbeef\n"))
	dec := filepath.Join(t.TempDir(), "bad.bin")

	_, _, err := run(t, "", "decode", "-i", in, "-o", dec)
	assert.ErrorIs(t, err, yenc.ErrChecksum)
	assert.NoFileExists(t, dec)

	_, _, err = run(t, "", "decode", "-i", in, "-o", dec, "--no-crc")
	require.NoError(t, err)
	assert.FileExists(t, dec)
}

func TestEncode_Part(t *testing.T) {
	out, _, err := run(t, string([]byte{5, 6, 7, 8, 9}), "encode",
		"--name", "test.bin",
		"--part", "2", "--total", "2",
		"--begin", "6", "--end", "10", "--file-size", "10",
		"--file-crc", "456CD746")
	require.NoError(t, err)
	assert.Equal(t,
		"=ybegin part=2 total=2 line=128 size=10 name=test.bin\n"+
			"=ypart begin=6 end=10\n"+
			"/0123\n"+
			"=yend size=5 part=2 pcrc32=9fe30398 crc32=456cd746\n",
		out)

	_, _, err = run(t, "abc", "encode", "--name", "test.bin", "--part", "1")
	assert.ErrorContains(t, err, "--begin is required with --part")

	_, _, err = run(t, "abc", "encode", "--name", "test.bin",
		"--part", "1", "--begin", "1", "--end", "5", "--file-size", "10")
	assert.ErrorIs(t, err, yenc.ErrInvalidPart)
}

func TestEncode_Environment(t *testing.T) {
	t.Setenv("YENC_LINE", "2")
	t.Setenv("YENC_NO_CRC", "true")

	out, _, err := run(t, "KLM", "encode", "--name", "a")
	require.NoError(t, err)
	assert.Equal(t, "=ybegin line=2 size=3 name=a\nuv\nw\n=yend size=3\n", out)

	// flags win over the environment
	out, _, err = run(t, "KLM", "encode", "--name", "a", "--line", "3")
	require.NoError(t, err)
	assert.Equal(t, "=ybegin line=3 size=3 name=a\nuvw\n=yend size=3\n", out)
}

func TestEncode_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "yenc.yaml", []byte("line: 2\ncrlf: true\nno-crc: true\n"))

	out, _, err := run(t, "KLM", "--config", cfg, "encode", "--name", "a")
	require.NoError(t, err)
	assert.Equal(t, "=ybegin line=2 size=3 name=a\r\nuv\r\nw\r\n=yend size=3\r\n", out)

	_, _, err = run(t, "KLM", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "encode", "--name", "a")
	assert.ErrorContains(t, err, "unable to read config")
}

func TestInfo(t *testing.T) {
	in := writeFile(t, "part.yenc", []byte("Subject: part 1\n\n"+
		"=ybegin part=1 total=3 line=128 size=15 name=test.bin\n"+
		"=ypart begin=1 end=5\n"+
		"*+,-=n\n"+
		"=yend size=5 part=1 pcrc32=515ad3cc\n"))

	out, _, err := run(t, "", "info", "-i", in)
	require.NoError(t, err)
	assert.Equal(t,
		"name:     test.bin\n"+
			"size:     15\n"+
			"line:     128\n"+
			"part:     1 of 3\n"+
			"range:    1-5\n"+
			"decoded:  5\n"+
			"pcrc32:   515ad3cc\n"+
			"computed: 515ad3cc\n",
		out)

	out, _, err = run(t, "=ybegin size=5 name=cut.bin\nKLM\n", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "decoded:  3\n")
	assert.Contains(t, out, "trailer:  missing\n")

	_, _, err = run(t, "no yenc here\n", "info")
	assert.ErrorIs(t, err, yenc.ErrNoHeader)
}

func TestRoundTrip(t *testing.T) {
	same := writeFile(t, "same.yenc", []byte("From: someone\n\n"+
		"=ybegin line=128 size=5 name=test.bin\n"+
		"KLMNO\n"+
		"=yend size=5 pcrc32=b05f5b44 crc32=b05f5b44\n"+
		"-- \n"))

	out, _, err := run(t, "", "roundtrip", same)
	require.NoError(t, err)
	assert.Contains(t, out, "size = 5\n")
	assert.Contains(t, out, "identical\n")

	// another encoder that wraps lines early and writes crc32 only
	other := writeFile(t, "other.yenc", []byte(
		"=ybegin line=128 size=5 name=test.bin\n"+
			"KLM\n"+
			"NO\n"+
			"=yend size=5 crc32=b05f5b44\n"))

	out, _, err = run(t, "", "roundtrip", other)
	assert.ErrorIs(t, err, errRoundTrip)
	assert.Contains(t, out, "-KLM\n")
	assert.Contains(t, out, "-NO\n")
	assert.Contains(t, out, "+KLMNO\n")
	assert.Contains(t, out, "-=yend size=5 crc32=b05f5b44\n")
	assert.Contains(t, out, "+=yend size=5\n")
	assert.Contains(t, out, " =ybegin line=128 size=5 name=test.bin\n")
}

func TestLogging(t *testing.T) {
	_, errOut, err := run(t, "KLMNO", "encode", "--name", "a", "-o", filepath.Join(t.TempDir(), "a.yenc"))
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, errOut, err = run(t, "KLMNO", "--verbose", "encode", "--name", "a", "-o", filepath.Join(t.TempDir(), "a.yenc"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "encoded")
	assert.NotContains(t, errOut, "yenc: encoded unit")

	_, errOut, err = run(t, "KLMNO", "--debug", "encode", "--name", "a", "-o", filepath.Join(t.TempDir(), "a.yenc"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "yenc: encoded unit")

	t.Setenv("YENC_LOG_LEVEL", "debug")
	_, errOut, err = run(t, "KLMNO", "encode", "--name", "a", "-o", filepath.Join(t.TempDir(), "a.yenc"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "yenc: encoded unit")

	_, _, err = run(t, "KLMNO", "--log-level", "loud", "encode", "--name", "a")
	assert.ErrorContains(t, err, "unknown log level")
}
