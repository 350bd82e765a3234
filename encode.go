package yenc

import (
	"bytes"
	"hash/crc32"
	"io"
	"strings"

	"github.com/zostay/go-yenc/header"
	"github.com/zostay/go-yenc/transfer"
)

// MultiPart describes which piece of a larger file is handed to EncodePart.
type MultiPart struct {
	Index    int   // 1-based part number
	Total    int   // number of parts, 0 if unknown
	Begin    int64 // 1-based offset of the first byte of the piece
	End      int64 // 1-based offset of the last byte of the piece
	FileSize int64 // size of the whole file

	// FileCRC is the checksum of the whole file. It is written as crc32 on
	// the =yend line when set, which is customary on the final part only.
	FileCRC *uint32
}

// Size returns the number of bytes the piece covers.
func (mp *MultiPart) Size() int64 {
	return mp.End - mp.Begin + 1
}

// check returns a PartRangeError if mp cannot describe n bytes of data.
func (mp *MultiPart) check(n int64) error {
	reason := ""
	switch {
	case mp.Index < 1:
		reason = "part number must be at least 1"
	case mp.Total != 0 && mp.Total < mp.Index:
		reason = "part number exceeds the total"
	case mp.Begin < 1:
		reason = "begin must be at least 1"
	case mp.End < mp.Begin-1:
		reason = "end lies before begin"
	case mp.End > mp.FileSize:
		reason = "end lies past the end of the file"
	case mp.Size() != n:
		reason = "range does not match the data supplied"
	default:
		return nil
	}

	return &PartRangeError{Part: *mp, Length: n, Reason: reason}
}

// checkName returns ErrInvalidName unless name reads back unchanged from a
// =ybegin line. A word like file=1.bin after a space would be read as a key,
// and the tokenizer collapses or trims other whitespace.
func checkName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return ErrInvalidName
	}

	h := header.Header{Name: name}
	back, err := header.ParseHeader(h.Line().Bytes())
	if err != nil || back.Name != name {
		return ErrInvalidName
	}

	return nil
}

// encode renders one unit into memory and hands it to w in a single write.
func (c *config) encode(w io.Writer, data []byte, name string, mp *MultiPart) (int64, error) {
	if c.lineLength < 1 {
		return 0, ErrInvalidLineLength
	}
	if err := checkName(name); err != nil {
		return 0, err
	}

	n := int64(len(data))
	if mp != nil {
		if err := mp.check(n); err != nil {
			return 0, err
		}
	}

	h := header.Header{Name: name, Size: n, LineLength: c.lineLength}
	t := header.Trailer{Size: n}

	if c.checksum {
		sum := crc32.ChecksumIEEE(data)
		t.PartCRC = &sum
		if mp == nil {
			t.FileCRC = &sum
		}
	}

	var p *header.Part
	if mp != nil {
		h.Size = mp.FileSize
		h.Part = mp.Index
		h.Total = mp.Total
		t.Part = mp.Index
		t.FileCRC = mp.FileCRC
		p = &header.Part{Begin: mp.Begin, End: mp.End}
	}

	lbr := c.lineBreak.Bytes()
	buf := &bytes.Buffer{}
	buf.Grow(len(data) + len(data)/32 + 256)

	buf.Write(h.Line().Bytes())
	buf.Write(lbr)
	if p != nil {
		buf.Write(p.Line().Bytes())
		buf.Write(lbr)
	}

	body := transfer.NewEncoder(buf, c.lineLength, c.lineBreak)
	if _, err := body.Write(data); err != nil {
		return 0, err
	}
	if err := body.Close(); err != nil {
		return 0, err
	}

	buf.Write(t.Line().Bytes())
	buf.Write(lbr)

	c.logger.Debug().
		Str("name", name).
		Int64("size", n).
		Int("part", h.Part).
		Int("total", h.Total).
		Int("encoded", buf.Len()).
		Msg("yenc: encoded unit")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, err
	}

	return n, nil
}

// Encode reads all of r and writes it to w as a single-part yEnc unit under
// the given file name. It returns the number of raw bytes encoded.
//
// When checksums are on (the default), the =yend line carries the CRC32 of
// the data as both pcrc32 and crc32.
//
// The unit is built in memory first. If the options or the name are bad,
// nothing is written to w.
func Encode(w io.Writer, r io.Reader, name string, opts ...Option) (int64, error) {
	c := configure(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	return c.encode(w, data, name, nil)
}

// EncodePart reads all of r and writes it to w as one part of a multi-part
// yEnc unit. The data read must be exactly the range mp describes, otherwise
// a PartRangeError is returned and nothing is written.
//
// The =ybegin line carries the part number, total and full file size, the
// =ypart line the range and the =yend line the size of this part, the part
// number, pcrc32 (unless checksums are off) and crc32 if mp.FileCRC is set.
func EncodePart(w io.Writer, r io.Reader, name string, mp MultiPart, opts ...Option) (int64, error) {
	c := configure(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	return c.encode(w, data, name, &mp)
}

// EncodeBytes is Encode for data held in memory.
func EncodeBytes(data []byte, name string, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := configure(opts).encode(buf, data, name, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePartBytes is EncodePart for data held in memory.
func EncodePartBytes(data []byte, name string, mp MultiPart, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := configure(opts).encode(buf, data, name, &mp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
