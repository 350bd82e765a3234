package yenc

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/zostay/go-yenc/header"
	"github.com/zostay/go-yenc/header/field"
	"github.com/zostay/go-yenc/internal/scanner"
	"github.com/zostay/go-yenc/transfer"
)

// Result describes a decoded unit.
type Result struct {
	// Header is the parsed =ybegin line.
	Header header.Header

	// Part is the parsed =ypart line, or nil for a single-part unit.
	Part *header.Part

	// Trailer is the parsed =yend line. It is nil when the input ended
	// before a =yend line was seen, in which case the unit may be
	// incomplete and none of the trailer checks were made.
	Trailer *header.Trailer

	// Size is the number of raw bytes written.
	Size int64

	// Checksum is the CRC32 of the raw bytes written. It is 0 when
	// checksums are turned off.
	Checksum uint32
}

// decoding holds the state of a single Decode call.
type decoding struct {
	*config

	lines *scanner.Lines
	out   io.Writer
	crc   hash.Hash32
	body  transfer.Decoder
	buf   []byte

	res Result
}

// next advances to the following line, turning a read error into the error
// to return. It returns false, nil at the end of input.
func (d *decoding) next() (bool, error) {
	if d.lines.Next() {
		return true, nil
	}
	if err := d.lines.Err(); err != nil {
		return false, fmt.Errorf("yenc: read failed after line %d: %w", d.lines.Number(), err)
	}
	return false, nil
}

// seekHeader skips lines until a =ybegin line turns up and parses it.
func (d *decoding) seekHeader() error {
	for {
		ok, err := d.next()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoHeader
		}

		if !header.BeginLine.Is(d.lines.Bytes()) {
			continue
		}

		h, err := header.ParseHeader(d.lines.Bytes())
		if err != nil {
			return fmt.Errorf("line %d: %w", d.lines.Number(), err)
		}

		d.res.Header = *h
		d.logger.Debug().
			Int("line", d.lines.Number()).
			Str("name", h.Name).
			Int64("size", h.Size).
			Int("part", h.Part).
			Int("total", h.Total).
			Msg("yenc: found header")
		return nil
	}
}

// seekBody reads the optional =ypart line and leaves the first body line (or
// the =yend line) current.
func (d *decoding) seekBody() error {
	ok, err := d.next()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoData
	}

	if header.PartLine.Is(d.lines.Bytes()) {
		p, err := header.ParsePart(d.lines.Bytes())
		if err != nil {
			return fmt.Errorf("line %d: %w", d.lines.Number(), err)
		}

		d.res.Part = p
		d.logger.Debug().
			Int("line", d.lines.Number()).
			Int64("begin", p.Begin).
			Int64("end", p.End).
			Msg("yenc: found part")

		ok, err = d.next()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoData
		}
	}

	if d.res.Header.IsMultiPart() && d.res.Part == nil {
		return ErrMissingPart
	}

	return nil
}

// decodeLine writes the raw bytes of one body line.
func (d *decoding) decodeLine(line []byte) error {
	data := field.Trim(line)
	if len(data) == 0 {
		return nil
	}

	// decoding never grows the data
	if cap(d.buf) < len(data) {
		d.buf = make([]byte, len(data))
	}
	dst := d.buf[:len(data)]

	n, _, err := d.body.Transform(dst, data, false)
	if err != nil {
		return invalidData(d.lines.Number(), err)
	}

	if n > 0 {
		if _, err := d.out.Write(dst[:n]); err != nil {
			return err
		}
	}

	d.res.Size += int64(n)
	return nil
}

// checkTrailer parses the =yend line and checks it against everything seen
// so far.
func (d *decoding) checkTrailer(line []byte) error {
	ln := d.lines.Number()

	t, err := header.ParseTrailer(line)
	if err != nil {
		var missing *header.MissingFieldError
		if errors.As(err, &missing) {
			return fmt.Errorf("line %d: %w", ln, err)
		}
		return invalidData(ln, err)
	}

	if d.body.Pending() {
		return invalidData(ln, ErrTruncatedEscape)
	}

	if p := d.res.Part; p != nil && t.Size != p.Size() {
		return &PartSizeMismatchError{Declared: t.Size, Expected: p.Size()}
	}

	if h := d.res.Header; h.IsMultiPart() && t.Part != h.Part {
		return &PartNumberMismatchError{Header: h.Part, Trailer: t.Part}
	}

	if d.crc != nil {
		key, want := header.KeyFileCRC, t.FileCRC
		if d.res.Part != nil {
			key, want = header.KeyPartCRC, t.PartCRC
		}

		if want != nil && *want != d.res.Checksum {
			return &ChecksumMismatchError{Field: key, Expected: *want, Actual: d.res.Checksum}
		}

		d.logger.Debug().
			Str("field", key).
			Bool("present", want != nil).
			Str("actual", field.FormatCRC(d.res.Checksum)).
			Msg("yenc: checksum verified")
	}

	d.res.Trailer = t
	return nil
}

func (d *decoding) run() (*Result, error) {
	if err := d.seekHeader(); err != nil {
		return nil, err
	}

	if err := d.seekBody(); err != nil {
		return nil, err
	}

	for {
		line := d.lines.Bytes()
		if header.EndLine.Is(line) {
			if d.crc != nil {
				d.res.Checksum = d.crc.Sum32()
			}

			if err := d.checkTrailer(line); err != nil {
				return nil, err
			}

			d.logger.Debug().
				Int("line", d.lines.Number()).
				Int64("size", d.res.Size).
				Msg("yenc: found trailer")
			return &d.res, nil
		}

		if err := d.decodeLine(line); err != nil {
			return nil, err
		}

		ok, err := d.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}

	if d.body.Pending() {
		return nil, invalidData(d.lines.Number(), ErrTruncatedEscape)
	}

	if d.crc != nil {
		d.res.Checksum = d.crc.Sum32()
	}

	d.logger.Debug().
		Int64("size", d.res.Size).
		Msg("yenc: input ended without a trailer")
	return &d.res, nil
}

// Decode reads a yEnc encoded unit from r and writes the raw bytes to w. Text
// before the =ybegin line is skipped. Reading stops after the =yend line, so
// whatever follows it is left in r (modulo buffering).
//
// On success the returned Result describes the unit. If the input ends
// without a =yend line, Result.Trailer is nil and no trailer checks are made.
//
// Errors abort decoding immediately. Bytes already written to w are not taken
// back, so discard the output on error. The errors to expect are:
//
//   - ErrNoHeader when there is no =ybegin line,
//   - header.ErrInvalidHeader or *header.MissingFieldError for broken
//     =ybegin and =ypart lines and *header.MissingFieldError for a =yend line
//     without a size,
//   - ErrInvalidData for everything else that is wrong with the unit,
//     including *PartSizeMismatchError, *PartNumberMismatchError,
//     *transfer.InvalidEscapeError in Strict() mode, ErrTruncatedEscape,
//     ErrNoData and ErrMissingPart,
//   - *ChecksumMismatchError (ErrChecksum) when the CRC does not match,
//   - anything r or w return.
func Decode(w io.Writer, r io.Reader, opts ...Option) (*Result, error) {
	c := configure(opts)

	d := &decoding{
		config: c,
		lines:  scanner.NewLines(r),
		out:    w,
		body:   transfer.Decoder{Strict: c.strict},
	}
	d.lines.Max = c.maxLineLen

	if c.checksum {
		d.crc = crc32.NewIEEE()
		d.out = io.MultiWriter(w, d.crc)
	}

	return d.run()
}

// DecodeBytes decodes a yEnc encoded unit held in memory. It returns the raw
// bytes along with the Result. See Decode for details.
func DecodeBytes(data []byte, opts ...Option) ([]byte, *Result, error) {
	buf := &bytes.Buffer{}
	res, err := Decode(buf, bytes.NewReader(data), opts...)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), res, nil
}
