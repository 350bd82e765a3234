package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	// conf holds the settings of the running command: flags, YENC_*
	// environment variables and the config file, in that order.
	conf = viper.New()

	logger = zerolog.Nop()

	rootCmd = &cobra.Command{
		Use:   "yenc",
		Short: "Encodes and decodes yEnc files",
		Long: `Tools for working with yEnc, the binary-to-text encoding used on Usenet.

Settings other than file names may also be given as YENC_* environment
variables (e.g. YENC_LINE=64, YENC_NO_CRC=true) or in a YAML config file
(default $HOME/.yenc.yaml) using the flag names as keys.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yenc.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log a summary of what was done")
	rootCmd.PersistentFlags().Bool("debug", false, "log every control line and check")
	rootCmd.PersistentFlags().String("log-level", "", "log level, overrides --verbose and --debug")
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration for the command about to run and builds the
// logger.
func setup(cmd *cobra.Command, _ []string) error {
	conf = viper.New()
	conf.SetEnvPrefix("YENC")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	if err := conf.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile != "" {
		conf.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		conf.AddConfigPath(home)
		conf.SetConfigType("yaml")
		conf.SetConfigName(".yenc")
	}

	if err := conf.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("unable to read config: %w", err)
		}
	}

	var err error
	logger, err = newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if used := conf.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("using config file")
	}

	return nil
}

// newLogger returns a console logger writing to w at the level selected by
// the configuration. Warnings and errors are always shown.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	switch {
	case conf.GetBool("debug"):
		level = zerolog.DebugLevel
	case conf.GetBool("verbose"):
		level = zerolog.InfoLevel
	}

	if name := conf.GetString("log-level"); name != "" {
		l, err := zerolog.ParseLevel(name)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("unknown log level %q: %w", name, err)
		}
		level = l
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, isFile := w.(*os.File)
	return isFile && isatty.IsTerminal(f.Fd())
}
