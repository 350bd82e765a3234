package cmd

import (
	"github.com/spf13/cobra"

	yenc "github.com/zostay/go-yenc"
	"github.com/zostay/go-yenc/header/field"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decodes the first yEnc unit found in a file",
	Long: `Decodes the first yEnc unit found in a file. Anything before the =ybegin
line is skipped, so a whole news article may be given. For a part of a
multi-part file only the bytes of that part are written.

The output file is removed again if decoding fails.`,
	Args: cobra.NoArgs,
	RunE: RunDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("input", "i", stdio, "file to decode")
	decodeCmd.Flags().StringP("output", "o", stdio, "file to write the raw bytes to")
	decodeCmd.Flags().Bool("strict", false, "reject escapes no conforming encoder writes")
	decodeCmd.Flags().Bool("no-crc", false, "skip the checksum comparison")
	decodeCmd.Flags().Int("max-line", yenc.DefaultMaxLineLength, "longest input line accepted, 0 for no limit")
}

// decodeOptions returns the decoder options selected by the configuration.
func decodeOptions() []yenc.Option {
	opts := []yenc.Option{
		yenc.WithMaxLineLength(conf.GetInt("max-line")),
		yenc.WithLogger(logger),
	}
	if conf.GetBool("strict") {
		opts = append(opts, yenc.Strict())
	}
	if conf.GetBool("no-crc") {
		opts = append(opts, yenc.WithoutChecksum())
	}
	return opts
}

// RunDecode implements the decode command.
func RunDecode(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")

	in, err := openInput(cmd, inPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, finish, err := createOutput(cmd, outPath)
	if err != nil {
		return err
	}

	res, err := yenc.Decode(out, in, decodeOptions()...)
	if err = finish(err); err != nil {
		return err
	}

	if res.Trailer == nil {
		logger.Warn().
			Str("name", res.Header.Name).
			Msg("input ended without =yend line, the data may be incomplete")
	}

	logger.Info().
		Str("name", res.Header.Name).
		Int64("size", res.Size).
		Str("crc32", field.FormatCRC(res.Checksum)).
		Str("output", outPath).
		Msg("decoded")

	return nil
}
