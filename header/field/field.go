package field

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefixes of the three control lines. The trailing space is part of the
// prefix.
const (
	BeginPrefix = "=ybegin "
	PartPrefix  = "=ypart "
	EndPrefix   = "=yend "
)

// Errors returned by the tokenizer and the value parsers.
var (
	// ErrPrefix is returned by Parse when the line does not start with the
	// expected prefix.
	ErrPrefix = errors.New("line does not start with the expected prefix")

	// ErrCRCLength is returned by ParseCRC when the value has more than 8
	// hex digits.
	ErrCRCLength = errors.New("checksum has more than 8 hex digits")
)

// whitespace is what may be trimmed from either end of a line. Transports
// like to leave a CR behind when splitting on LF.
const whitespace = " \t\r\n"

// continued lists the keys whose value may contain spaces. A token without an
// '=' that follows one of these is glued back onto the value.
var continued = map[string]bool{
	"name": true,
}

// Field is a single key=value token of a control line.
type Field struct {
	Key   string
	Value string
}

// String returns the field as key=value.
func (f Field) String() string {
	return f.Key + "=" + f.Value
}

// Line is a tokenized control line. Fields are kept in the order they were
// found or added. Lookups do not depend on that order.
type Line struct {
	Prefix string
	Fields []Field
}

// Trim removes leading and trailing spaces, tabs, CRs and LFs.
func Trim(line []byte) []byte {
	return bytes.Trim(line, whitespace)
}

// HasPrefix reports whether the line, once trimmed, starts with prefix. A
// line consisting of the prefix keyword alone, e.g. "=yend", counts as well.
func HasPrefix(line []byte, prefix string) bool {
	return hasPrefix(Trim(line), prefix)
}

func hasPrefix(trimmed []byte, prefix string) bool {
	return bytes.HasPrefix(trimmed, []byte(prefix)) ||
		bytes.Equal(trimmed, []byte(strings.TrimRight(prefix, " ")))
}

// New builds a line for output.
func New(prefix string, fields ...Field) *Line {
	return &Line{Prefix: prefix, Fields: fields}
}

// Parse trims the line, checks the prefix and splits the remainder into
// fields. Tokens without an '=' are ignored unless they directly follow a
// name value, in which case they are part of that name. Returns ErrPrefix if
// the prefix is wrong.
func Parse(line []byte, prefix string) (*Line, error) {
	trimmed := Trim(line)
	if !hasPrefix(trimmed, prefix) {
		return nil, ErrPrefix
	}

	rest := ""
	if len(trimmed) > len(prefix) {
		rest = string(trimmed[len(prefix):])
	}

	l := &Line{Prefix: prefix}
	glue := false
	for _, tok := range strings.Fields(rest) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			if glue {
				last := &l.Fields[len(l.Fields)-1]
				last.Value += " " + tok
			}
			continue
		}

		l.Fields = append(l.Fields, Field{k, v})
		glue = continued[k]
	}

	return l, nil
}

// Get returns the value of the last field with the given key.
func (l *Line) Get(key string) (string, bool) {
	for i := len(l.Fields) - 1; i >= 0; i-- {
		if l.Fields[i].Key == key {
			return l.Fields[i].Value, true
		}
	}
	return "", false
}

// Add appends a field.
func (l *Line) Add(key, value string) {
	l.Fields = append(l.Fields, Field{key, value})
}

// AddInt appends a decimal field.
func (l *Line) AddInt(key string, n int64) {
	l.Add(key, strconv.FormatInt(n, 10))
}

// AddCRC appends a checksum field in its canonical form.
func (l *Line) AddCRC(key string, crc uint32) {
	l.Add(key, FormatCRC(crc))
}

// String renders the line without a line break.
func (l *Line) String() string {
	buf := &strings.Builder{}
	buf.WriteString(l.Prefix)
	for i, f := range l.Fields {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(f.String())
	}
	return strings.TrimRight(buf.String(), " ")
}

// Bytes renders the line without a line break.
func (l *Line) Bytes() []byte {
	return []byte(l.String())
}

// ParseInt parses a non-negative decimal value.
func ParseInt(v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// ParseCRC parses a hex checksum. Case does not matter, a 0x prefix is
// allowed and leading zeros may be missing.
func ParseCRC(v string) (uint32, error) {
	h := v
	if len(h) > 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if len(h) > 8 {
		return 0, ErrCRCLength
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// FormatCRC renders a checksum as exactly 8 lowercase hex digits.
func FormatCRC(crc uint32) string {
	return fmt.Sprintf("%08x", crc)
}
