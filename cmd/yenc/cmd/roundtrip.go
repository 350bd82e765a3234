package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	yenc "github.com/zostay/go-yenc"
	"github.com/zostay/go-yenc/header"
	"github.com/zostay/go-yenc/internal/scanner"
)

// errRoundTrip is returned when re-encoding does not reproduce the input.
var errRoundTrip = errors.New("re-encoded unit differs from the input")

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip file",
	Short: "Shows the diff of a single yEnc unit round-trip",
	Long: `Decodes the first yEnc unit found in the file, encodes the result again
with the parameters found on its control lines and shows a diff of the two.

Differences are expected when the input came from an encoder that wraps
lines or escapes bytes differently.`,
	Args: cobra.ExactArgs(1),
	RunE: RunRoundTrip,
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}

// extractUnit returns the lines from the =ybegin line up to and including the
// =yend line, or up to the end of input when there is none.
func extractUnit(r io.Reader) ([]byte, error) {
	lines := scanner.NewLines(r)

	unit := &bytes.Buffer{}
	for lines.Next() {
		line := lines.Bytes()
		if unit.Len() == 0 && !header.BeginLine.Is(line) {
			continue
		}

		unit.Write(line)
		if header.EndLine.Is(line) {
			break
		}
	}

	return unit.Bytes(), lines.Err()
}

// reencodeOptions returns the options that should reproduce the given unit.
func reencodeOptions(unit []byte, res *yenc.Result) []yenc.Option {
	opts := []yenc.Option{yenc.WithLogger(logger)}

	if ll := res.Header.LineLength; ll > 0 {
		opts = append(opts, yenc.WithLineLength(ll))
	}
	switch {
	case bytes.Contains(unit, header.CRLF.Bytes()):
		opts = append(opts, yenc.WithLineBreak(header.CRLF))
	case bytes.Contains(unit, header.CR.Bytes()):
		opts = append(opts, yenc.WithLineBreak(header.CR))
	}
	if t := res.Trailer; t == nil || t.PartCRC == nil {
		opts = append(opts, yenc.WithoutChecksum())
	}

	return opts
}

// reencode encodes data again the way the decoded unit describes.
func reencode(unit, data []byte, res *yenc.Result) ([]byte, error) {
	opts := reencodeOptions(unit, res)
	h := res.Header

	if res.Part == nil {
		return yenc.EncodeBytes(data, h.Name, opts...)
	}

	mp := yenc.MultiPart{
		Index:    h.Part,
		Total:    h.Total,
		Begin:    res.Part.Begin,
		End:      res.Part.End,
		FileSize: h.Size,
	}
	if res.Trailer != nil {
		mp.FileCRC = res.Trailer.FileCRC
	}

	return yenc.EncodePartBytes(data, h.Name, mp, opts...)
}

// writeDiff writes a line based diff of a and b to w. Nothing is written and
// false is returned when they are the same.
func writeDiff(w io.Writer, a, b string) bool {
	if a == b {
		return false
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	for _, d := range diffs {
		mark := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			mark = "-"
		case diffmatchpatch.DiffInsert:
			mark = "+"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			_, _ = fmt.Fprint(w, mark, strings.TrimRight(line, "\r\n"), "\n")
		}
	}

	return true
}

// RunRoundTrip implements the roundtrip command.
func RunRoundTrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	unit, err := extractUnit(f)
	if err != nil {
		return err
	}

	data, res, err := yenc.DecodeBytes(unit, decodeOptions()...)
	if err != nil {
		return err
	}

	again, err := reencode(unit, data, res)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "path = %s\n", path)
	_, _ = fmt.Fprintf(w, "size = %d\n", res.Size)

	if !writeDiff(w, string(unit), string(again)) {
		_, _ = fmt.Fprintln(w, "identical")
		return nil
	}

	return errRoundTrip
}
