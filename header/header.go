package header

import (
	"errors"
	"fmt"

	"github.com/zostay/go-yenc/header/field"
)

// Kind identifies one of the three control lines.
type Kind string

// The control line kinds.
const (
	BeginLine Kind = "begin" // =ybegin
	PartLine  Kind = "part"  // =ypart
	EndLine   Kind = "end"   // =yend
)

// Prefix returns the literal the line starts with, including the trailing
// space.
func (k Kind) Prefix() string {
	switch k {
	case BeginLine:
		return field.BeginPrefix
	case PartLine:
		return field.PartPrefix
	case EndLine:
		return field.EndPrefix
	}
	return ""
}

// Is reports whether the given raw line is a control line of this kind.
// Surrounding whitespace is ignored.
func (k Kind) Is(line []byte) bool {
	p := k.Prefix()
	return p != "" && field.HasPrefix(line, p)
}

// These are the keys understood on control lines. Everything else is ignored.
const (
	KeyName    = "name"
	KeySize    = "size"
	KeyLine    = "line"
	KeyPart    = "part"
	KeyTotal   = "total"
	KeyBegin   = "begin"
	KeyEnd     = "end"
	KeyPartCRC = "pcrc32"
	KeyFileCRC = "crc32"
)

var errOutOfRange = errors.New("value out of range")

// Header is the content of the =ybegin line.
//
// The optional numeric fields use 0 for "absent". None of them may be 0 on
// the wire, so nothing is lost.
type Header struct {
	Name       string // file name, required
	Size       int64  // size of the whole file, required
	LineLength int    // advisory wrap width, optional
	Part       int    // 1-based part number, optional
	Total      int    // total number of parts, optional
}

// IsMultiPart reports whether the header announces a part of a larger file.
// Such a header must be followed by a =ypart line.
func (h *Header) IsMultiPart() bool {
	return h.Part > 0
}

// Part is the content of the =ypart line. Begin and End are 1-based,
// inclusive offsets into the full file.
type Part struct {
	Begin int64
	End   int64
}

// Size returns the number of bytes the part covers.
func (p *Part) Size() int64 {
	return p.End - p.Begin + 1
}

// Trailer is the content of the =yend line.
type Trailer struct {
	Size    int64   // bytes in this unit, required
	Part    int     // echoes Header.Part, 0 when absent
	PartCRC *uint32 // pcrc32, checksum of this unit
	FileCRC *uint32 // crc32, checksum of the whole file
}

// lineReader pulls typed values off a tokenized line and remembers the first
// problem it runs into.
type lineReader struct {
	kind Kind
	line *field.Line
	err  error
}

func (r *lineReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *lineReader) lookup(key string, required bool) (string, bool) {
	v, ok := r.line.Get(key)
	if !ok && required {
		r.fail(&MissingFieldError{Kind: r.kind, Field: key})
	}
	return v, ok
}

func (r *lineReader) str(key string, required bool) string {
	v, _ := r.lookup(key, required)
	return v
}

func (r *lineReader) num(key string, required bool, least int64) int64 {
	v, ok := r.lookup(key, required)
	if !ok {
		return 0
	}

	n, err := field.ParseInt(v)
	if err == nil && n < least {
		err = errOutOfRange
	}
	if err != nil {
		r.fail(&InvalidFieldError{Kind: r.kind, Field: key, Value: v, Err: err})
		return 0
	}
	return n
}

func (r *lineReader) crc(key string) *uint32 {
	v, ok := r.lookup(key, false)
	if !ok {
		return nil
	}

	c, err := field.ParseCRC(v)
	if err != nil {
		r.fail(&InvalidFieldError{Kind: r.kind, Field: key, Value: v, Err: err})
		return nil
	}
	return &c
}

func newLineReader(kind Kind, line []byte) (*lineReader, error) {
	l, err := field.Parse(line, kind.Prefix())
	if err != nil {
		return nil, &BadPrefixError{Kind: kind, Line: string(field.Trim(line))}
	}
	return &lineReader{kind: kind, line: l}, nil
}

// ParseHeader parses a =ybegin line. It returns a BadPrefixError if the line
// is something else, a MissingFieldError if name or size is absent and an
// InvalidFieldError if a known value does not parse.
func ParseHeader(line []byte) (*Header, error) {
	r, err := newLineReader(BeginLine, line)
	if err != nil {
		return nil, err
	}

	h := &Header{
		Name:       r.str(KeyName, true),
		Size:       r.num(KeySize, true, 0),
		LineLength: int(r.num(KeyLine, false, 1)),
		Part:       int(r.num(KeyPart, false, 1)),
		Total:      int(r.num(KeyTotal, false, 1)),
	}
	if r.err != nil {
		return nil, r.err
	}

	return h, nil
}

// ParsePart parses a =ypart line. Both begin and end are required.
func ParsePart(line []byte) (*Part, error) {
	r, err := newLineReader(PartLine, line)
	if err != nil {
		return nil, err
	}

	p := &Part{
		Begin: r.num(KeyBegin, true, 1),
		End:   r.num(KeyEnd, true, 0),
	}
	if r.err != nil {
		return nil, r.err
	}

	if p.End < p.Begin-1 {
		return nil, &InvalidFieldError{
			Kind:  PartLine,
			Field: KeyEnd,
			Value: fmt.Sprint(p.End),
			Err:   fmt.Errorf("end lies before begin=%d", p.Begin),
		}
	}

	return p, nil
}

// ParseTrailer parses a =yend line. Only size is required.
func ParseTrailer(line []byte) (*Trailer, error) {
	r, err := newLineReader(EndLine, line)
	if err != nil {
		return nil, err
	}

	t := &Trailer{
		Size:    r.num(KeySize, true, 0),
		Part:    int(r.num(KeyPart, false, 1)),
		PartCRC: r.crc(KeyPartCRC),
		FileCRC: r.crc(KeyFileCRC),
	}
	if r.err != nil {
		return nil, r.err
	}

	return t, nil
}

// Line returns the header as a tokenized line, ready for output. The name is
// written last so that readers which take the rest of the line as the name
// get it right.
func (h *Header) Line() *field.Line {
	l := field.New(field.BeginPrefix)
	if h.Part > 0 {
		l.AddInt(KeyPart, int64(h.Part))
		if h.Total > 0 {
			l.AddInt(KeyTotal, int64(h.Total))
		}
	}
	if h.LineLength > 0 {
		l.AddInt(KeyLine, int64(h.LineLength))
	}
	l.AddInt(KeySize, h.Size)
	l.Add(KeyName, h.Name)
	return l
}

// String renders the =ybegin line without a line break.
func (h *Header) String() string {
	return h.Line().String()
}

// Line returns the part as a tokenized line, ready for output.
func (p *Part) Line() *field.Line {
	l := field.New(field.PartPrefix)
	l.AddInt(KeyBegin, p.Begin)
	l.AddInt(KeyEnd, p.End)
	return l
}

// String renders the =ypart line without a line break.
func (p *Part) String() string {
	return p.Line().String()
}

// Line returns the trailer as a tokenized line, ready for output.
func (t *Trailer) Line() *field.Line {
	l := field.New(field.EndPrefix)
	l.AddInt(KeySize, t.Size)
	if t.Part > 0 {
		l.AddInt(KeyPart, int64(t.Part))
	}
	if t.PartCRC != nil {
		l.AddCRC(KeyPartCRC, *t.PartCRC)
	}
	if t.FileCRC != nil {
		l.AddCRC(KeyFileCRC, *t.FileCRC)
	}
	return l
}

// String renders the =yend line without a line break.
func (t *Trailer) String() string {
	return t.Line().String()
}
