package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	yenc "github.com/zostay/go-yenc"
	"github.com/zostay/go-yenc/header"
	"github.com/zostay/go-yenc/header/field"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encodes a file as a yEnc unit",
	Long: `Encodes a file as a single yEnc unit.

To write one part of a multi-part file, feed just the bytes of that part and
give --part, --begin, --end and --file-size (plus --total and, on the last
part, --file-crc if you know them).`,
	Args: cobra.NoArgs,
	RunE: RunEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("input", "i", stdio, "file to encode")
	encodeCmd.Flags().StringP("output", "o", stdio, "file to write the yEnc unit to")
	encodeCmd.Flags().String("name", "", "file name to record (default is the base name of the input)")
	encodeCmd.Flags().Int("line", yenc.DefaultLineLength, "encoded bytes per line")
	encodeCmd.Flags().Bool("no-crc", false, "leave the checksums out")
	encodeCmd.Flags().Bool("crlf", false, "end lines with CRLF instead of LF")

	encodeCmd.Flags().Int("part", 0, "part number, makes this one part of a multi-part file")
	encodeCmd.Flags().Int("total", 0, "total number of parts")
	encodeCmd.Flags().Int64("begin", 0, "1-based offset of the first byte of the part")
	encodeCmd.Flags().Int64("end", 0, "1-based offset of the last byte of the part")
	encodeCmd.Flags().Int64("file-size", 0, "size of the whole file")
	encodeCmd.Flags().String("file-crc", "", "checksum of the whole file, in hex")
}

// encodeOptions returns the encoder options selected by the configuration.
func encodeOptions() []yenc.Option {
	opts := []yenc.Option{
		yenc.WithLineLength(conf.GetInt("line")),
		yenc.WithLogger(logger),
	}
	if conf.GetBool("no-crc") {
		opts = append(opts, yenc.WithoutChecksum())
	}
	if conf.GetBool("crlf") {
		opts = append(opts, yenc.WithLineBreak(header.CRLF))
	}
	return opts
}

// multiPart builds the part description from the flags, or returns nil when
// no part number was given.
func multiPart(cmd *cobra.Command) (*yenc.MultiPart, error) {
	flags := cmd.Flags()

	index, _ := flags.GetInt("part")
	if index == 0 {
		return nil, nil
	}

	for _, name := range []string{"begin", "end", "file-size"} {
		if !flags.Changed(name) {
			return nil, fmt.Errorf("--%s is required with --part", name)
		}
	}

	mp := &yenc.MultiPart{Index: index}
	mp.Total, _ = flags.GetInt("total")
	mp.Begin, _ = flags.GetInt64("begin")
	mp.End, _ = flags.GetInt64("end")
	mp.FileSize, _ = flags.GetInt64("file-size")

	if v, _ := flags.GetString("file-crc"); v != "" {
		sum, err := field.ParseCRC(v)
		if err != nil {
			return nil, fmt.Errorf("bad --file-crc %q: %w", v, err)
		}
		mp.FileCRC = &sum
	}

	return mp, nil
}

// RunEncode implements the encode command.
func RunEncode(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		if inPath == stdio {
			return errors.New("--name is required when encoding stdin")
		}
		name = filepath.Base(inPath)
	}

	mp, err := multiPart(cmd)
	if err != nil {
		return err
	}

	in, err := openInput(cmd, inPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, finish, err := createOutput(cmd, outPath)
	if err != nil {
		return err
	}

	var n int64
	if mp != nil {
		n, err = yenc.EncodePart(out, in, name, *mp, encodeOptions()...)
	} else {
		n, err = yenc.Encode(out, in, name, encodeOptions()...)
	}
	if err = finish(err); err != nil {
		return err
	}

	logger.Info().
		Str("name", name).
		Int64("size", n).
		Str("output", outPath).
		Msg("encoded")

	return nil
}
