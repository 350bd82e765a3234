package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdio is the file name that stands for stdin or stdout.
const stdio = "-"

// openInput opens the named file, or returns the command's input for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdio || path == "" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// createOutput creates the named file, or returns the command's output for
// "-". The returned finish function must be called with the outcome of the
// work. It closes the file and removes it again when the work failed.
func createOutput(cmd *cobra.Command, path string) (io.Writer, func(error) error, error) {
	if path == stdio || path == "" {
		return cmd.OutOrStdout(), func(err error) error { return err }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	finish := func(err error) error {
		cerr := f.Close()
		if err != nil {
			_ = os.Remove(path)
			return err
		}
		return cerr
	}

	return f, finish, nil
}
