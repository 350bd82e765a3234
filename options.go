package yenc

import (
	"github.com/rs/zerolog"

	"github.com/zostay/go-yenc/header"
	"github.com/zostay/go-yenc/transfer"
)

// Constants related to the options.
const (
	// DefaultLineLength is the number of encoded bytes per body line written
	// by the encoders.
	DefaultLineLength = transfer.DefaultLineLength

	// DefaultLineBreak is the line break written by the encoders.
	DefaultLineBreak = header.LF

	// DefaultMaxLineLength is the longest line the decoder accepts. Zero
	// means there is no limit.
	DefaultMaxLineLength = 0
)

type config struct {
	lineLength int
	lineBreak  header.Break
	checksum   bool
	strict     bool
	maxLineLen int
	logger     zerolog.Logger
}

func (c *config) clone() *config {
	cc := *c
	return &cc
}

var defaultConfig = &config{
	lineLength: DefaultLineLength,
	lineBreak:  DefaultLineBreak,
	checksum:   true,
	strict:     false,
	maxLineLen: DefaultMaxLineLength,
	logger:     zerolog.Nop(),
}

func configure(opts []Option) *config {
	c := defaultConfig.clone()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option modifies how the encoders and Decode work. Options that only make
// sense for one direction are ignored by the other.
type Option func(c *config)

// WithLineLength is an encoder Option setting the number of encoded bytes per
// body line. The default is DefaultLineLength. A line ends once it holds at
// least this many bytes, and escape pairs are never split, so a line may be
// one byte longer. Values less than 1 make encoding fail with
// ErrInvalidLineLength.
func WithLineLength(n int) Option {
	return func(c *config) { c.lineLength = n }
}

// WithLineBreak is an encoder Option selecting the line break written after
// every line. The default is DefaultLineBreak. Decode accepts LF, CRLF and CR
// input regardless of this setting.
func WithLineBreak(lb header.Break) Option {
	return func(c *config) {
		if lb == header.Meh {
			lb = DefaultLineBreak
		}
		c.lineBreak = lb
	}
}

// WithoutChecksum turns off checksums. The encoders will not compute or
// write pcrc32 and crc32 (a whole-file checksum given in MultiPart is still
// written). Decode will not compute a checksum and will not compare it with
// the =yend line.
func WithoutChecksum() Option {
	return func(c *config) { c.checksum = false }
}

// Strict is a decoder Option that rejects escape sequences a conforming
// encoder would never write. See transfer.ValidStrictEscape. By default any
// byte may follow an escape marker.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// WithMaxLineLength is a decoder Option limiting the length of a single input
// line, in bytes. Longer lines fail the decode. The default,
// DefaultMaxLineLength, imposes no limit.
func WithMaxLineLength(n int) Option {
	return func(c *config) { c.maxLineLen = n }
}

// WithLogger sets a logger that receives debug events about the control lines
// read or written and the checks performed. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
