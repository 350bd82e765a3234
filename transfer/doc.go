// Package transfer contains the byte-level half of the yEnc transfer
// encoding. Every raw byte is shifted by 42 to land in the encoded domain and
// the handful of results that would upset a text transport (NUL, TAB, LF, CR,
// SPACE, '.' and '=') are escaped with a leading '=' and a further shift of
// 64.
//
// The functions EncodeByte, DecodeByte and NeedsEscape define the mapping for
// a single byte. The Encoder and Decoder types apply it to streams. Both
// implement transform.Transformer from golang.org/x/text, so they can be used
// with transform.NewReader, transform.NewWriter, transform.Bytes and friends.
// The Encoder also wraps its output into lines. The Decoder ignores line
// breaks and remembers a dangling escape marker between calls, which allows
// the body to be fed to it one line at a time.
//
// For the sake of this package, "encoded" means the printable yEnc form and
// "decoded" means the original binary data. Nothing in this package knows
// about the =ybegin, =ypart or =yend control lines. See the header package and
// the root package for those.
package transfer
