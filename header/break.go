package header

// Break represents the line break written after control lines and body lines.
type Break string

// Constants for use when selecting a line break. The decoder ends a line at
// LF, at CRLF or at a CR not followed by LF, so input written with any of
// CRLF, LF or CR decodes the same, even when they are mixed. If you don't know
// what to pick, choose LF unless the transport wants CRLF.
const (
	Meh  Break = ""         // no preference, the encoders write LF
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
	CR   Break = "\x0d"     // \r - Commodores/old Macs linebreak
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
