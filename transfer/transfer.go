package transfer

// Constants that define the yEnc byte mapping.
const (
	Offset       byte = 42  // added to every raw byte
	EscapeOffset byte = 64  // added again to bytes that must be escaped
	Escape       byte = '=' // marks the following byte as escaped

	// DefaultLineLength is the number of encoded bytes written per line
	// unless something else is asked for.
	DefaultLineLength = 128
)

// escapable holds the encoded values that may never appear bare in the body.
var escapable = [256]bool{
	0x00: true, // NUL
	0x09: true, // TAB
	0x0a: true, // LF
	0x0d: true, // CR
	0x20: true, // SPACE
	0x2e: true, // .
	0x3d: true, // =
}

// EncodeByte returns the primary encoded form of a raw byte.
func EncodeByte(b byte) byte {
	return b + Offset
}

// DecodeByte reverses EncodeByte.
func DecodeByte(e byte) byte {
	return e - Offset
}

// IsEscapable reports whether the encoded value e is one of the seven values
// that must always be escaped.
func IsEscapable(e byte) bool {
	return escapable[e]
}

// NeedsEscape reports whether the raw byte b must be written as an escape
// pair. That is the case when its encoded form is escapable or when the raw
// byte is the escape marker itself.
func NeedsEscape(b byte) bool {
	return escapable[EncodeByte(b)] || b == Escape
}

// EscapeByte returns the second byte of the escape pair for the raw byte b.
func EscapeByte(b byte) byte {
	return EncodeByte(b) + EscapeOffset
}

// UnescapeByte returns the raw byte for the second byte of an escape pair.
func UnescapeByte(c byte) byte {
	return DecodeByte(c - EscapeOffset)
}

// ValidStrictEscape reports whether c is acceptable as the second byte of an
// escape pair when decoding strictly. Once the escape shift is removed the
// value must be escapable, or be the encoded form of a raw '=', which the
// Encoder escapes as well.
func ValidStrictEscape(c byte) bool {
	u := c - EscapeOffset
	return escapable[u] || u == EncodeByte(Escape)
}
