package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	yenc "github.com/zostay/go-yenc"
	"github.com/zostay/go-yenc/header/field"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describes the first yEnc unit found in a file",
	Long: `Decodes the first yEnc unit found in a file, throwing the data away, and
prints what the control lines say about it. Any problem found while decoding
is reported as an error.`,
	Args: cobra.NoArgs,
	RunE: RunInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringP("input", "i", stdio, "file to inspect")
	infoCmd.Flags().Bool("strict", false, "reject escapes no conforming encoder writes")
	infoCmd.Flags().Bool("no-crc", false, "skip the checksum comparison")
	infoCmd.Flags().Int("max-line", yenc.DefaultMaxLineLength, "longest input line accepted, 0 for no limit")
}

func printCRC(w io.Writer, label string, sum *uint32) {
	if sum != nil {
		_, _ = fmt.Fprintf(w, "%-9s %s\n", label+":", field.FormatCRC(*sum))
	}
}

// RunInfo implements the info command.
func RunInfo(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("input")

	in, err := openInput(cmd, inPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	res, err := yenc.Decode(io.Discard, in, decodeOptions()...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	h := res.Header

	_, _ = fmt.Fprintf(w, "name:     %s\n", h.Name)
	_, _ = fmt.Fprintf(w, "size:     %d\n", h.Size)
	if h.LineLength > 0 {
		_, _ = fmt.Fprintf(w, "line:     %d\n", h.LineLength)
	}
	if h.IsMultiPart() {
		if h.Total > 0 {
			_, _ = fmt.Fprintf(w, "part:     %d of %d\n", h.Part, h.Total)
		} else {
			_, _ = fmt.Fprintf(w, "part:     %d\n", h.Part)
		}
	}
	if p := res.Part; p != nil {
		_, _ = fmt.Fprintf(w, "range:    %d-%d\n", p.Begin, p.End)
	}
	_, _ = fmt.Fprintf(w, "decoded:  %d\n", res.Size)

	t := res.Trailer
	if t == nil {
		_, _ = fmt.Fprintln(w, "trailer:  missing")
		return nil
	}

	printCRC(w, "pcrc32", t.PartCRC)
	printCRC(w, "crc32", t.FileCRC)
	if !conf.GetBool("no-crc") {
		_, _ = fmt.Fprintf(w, "computed: %s\n", field.FormatCRC(res.Checksum))
	}

	return nil
}
