package yenc

import (
	"errors"
	"fmt"

	"github.com/zostay/go-yenc/internal/scanner"
	"github.com/zostay/go-yenc/transfer"
)

// Errors returned by Decode, Encode and friends. Besides these, Decode
// returns the errors of the header package unchanged (after adding the line
// number) when a =ybegin or =ypart line is broken, and I/O errors from the
// reader and writer are passed through.
var (
	// ErrNoHeader is returned when the input ends before a =ybegin line is
	// found. The input is probably not yEnc at all.
	ErrNoHeader = errors.New("yenc: no =ybegin line found")

	// ErrInvalidData is matched by errors.Is for every problem with the body
	// or the =yend line of a unit that otherwise looked like yEnc.
	ErrInvalidData = errors.New("yenc: invalid data")

	// ErrNoData is returned when the input ends right after the =ybegin or
	// =ypart line.
	ErrNoData = fmt.Errorf("%w: no data after the control lines", ErrInvalidData)

	// ErrMissingPart is returned when the =ybegin line carries a part number
	// but is not followed by a =ypart line.
	ErrMissingPart = fmt.Errorf("%w: multi-part header without a =ypart line", ErrInvalidData)

	// ErrTruncatedEscape is returned when the body ends with an escape
	// marker that is never completed.
	ErrTruncatedEscape = transfer.ErrTruncatedEscape

	// ErrLineTooLong is returned when an input line is longer than allowed
	// by WithMaxLineLength.
	ErrLineTooLong = scanner.ErrLongLine

	// ErrChecksum is matched by errors.Is for a ChecksumMismatchError.
	ErrChecksum = errors.New("yenc: checksum mismatch")

	// ErrInvalidPart is matched by errors.Is for a PartRangeError.
	ErrInvalidPart = errors.New("yenc: invalid part range")

	// ErrInvalidLineLength is returned by the encoders when the line length
	// option is less than 1.
	ErrInvalidLineLength = errors.New("yenc: line length must be at least 1")

	// ErrInvalidName is returned by the encoders when the file name would not
	// read back unchanged from the =ybegin line. That is the case for names
	// containing line breaks, tabs, runs of spaces or trailing spaces, and
	// for names in which a word after a space contains '='.
	ErrInvalidName = errors.New("yenc: file name must not contain line breaks")
)

// invalidData marks err as an ErrInvalidData problem found on the given line.
func invalidData(line int, err error) error {
	return fmt.Errorf("%w: line %d: %w", ErrInvalidData, line, err)
}

// PartSizeMismatchError is returned when the size in the =yend line does not
// match the range given on the =ypart line.
type PartSizeMismatchError struct {
	Declared int64 // size from the =yend line
	Expected int64 // end - begin + 1 from the =ypart line
}

// Error returns the error message.
func (err *PartSizeMismatchError) Error() string {
	return fmt.Sprintf("yenc: part size mismatch: =yend says %d bytes, =ypart range covers %d", err.Declared, err.Expected)
}

// Is matches ErrInvalidData.
func (err *PartSizeMismatchError) Is(target error) bool {
	return target == ErrInvalidData
}

// PartNumberMismatchError is returned when the part number of the =yend line
// differs from the one on the =ybegin line. A Trailer of 0 means the =yend
// line had no part number at all.
type PartNumberMismatchError struct {
	Header  int
	Trailer int
}

// Error returns the error message.
func (err *PartNumberMismatchError) Error() string {
	if err.Trailer == 0 {
		return fmt.Sprintf("yenc: part number mismatch: =ybegin says part %d, =yend has none", err.Header)
	}
	return fmt.Sprintf("yenc: part number mismatch: =ybegin says part %d, =yend says part %d", err.Header, err.Trailer)
}

// Is matches ErrInvalidData.
func (err *PartNumberMismatchError) Is(target error) bool {
	return target == ErrInvalidData
}

// ChecksumMismatchError is returned when the checksum of the decoded bytes
// differs from the one given on the =yend line.
type ChecksumMismatchError struct {
	Field    string // header.KeyPartCRC or header.KeyFileCRC
	Expected uint32 // from the =yend line
	Actual   uint32 // computed from the decoded bytes
}

// Error returns the error message.
func (err *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("yenc: %s mismatch: expected %08x, got %08x", err.Field, err.Expected, err.Actual)
}

// Is matches ErrChecksum.
func (err *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksum
}

// PartRangeError is returned by EncodePart when the MultiPart does not
// describe the data handed over.
type PartRangeError struct {
	Part   MultiPart
	Length int64 // number of raw bytes supplied
	Reason string
}

// Error returns the error message.
func (err *PartRangeError) Error() string {
	return fmt.Sprintf("yenc: invalid part %d (bytes %d-%d of %d, %d supplied): %s",
		err.Part.Index, err.Part.Begin, err.Part.End, err.Part.FileSize, err.Length, err.Reason)
}

// Is matches ErrInvalidPart.
func (err *PartRangeError) Is(target error) bool {
	return target == ErrInvalidPart
}
