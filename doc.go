// Package yenc encodes and decodes the yEnc binary-to-text transfer encoding.
//
// A yEnc encoded unit looks like this:
//
//	=ybegin part=1 total=2 line=128 size=10 name=real.bin
//	=ypart begin=1 end=5
//	*+,-=n
//	=yend size=5 part=1 pcrc32=515ad3cc
//
// The =ybegin line names the file and gives its total size. Units that carry
// one piece of a larger file add part and total to it and follow it with a
// =ypart line giving the 1-based, inclusive byte range the piece covers. Then
// come the body lines and finally the =yend line with the size of this unit
// and, optionally, CRC32 checksums of the unit (pcrc32) and of the whole file
// (crc32).
//
// Decode reads such a unit from an io.Reader, writes the raw bytes to an
// io.Writer and returns what the control lines said in a Result. Any text
// before the =ybegin line is skipped, so a decoder can be pointed straight
// at the body of a message. Everything the control lines promise is
// checked. In particular the checksum must match unless checking is switched
// off with WithoutChecksum().
//
// Encode and EncodePart do the reverse. Both read all of their input before
// writing anything because the size has to go into the first line.
//
// The byte mapping itself lives in the transfer package and the control line
// codec in the header package. Both can be used on their own.
//
// Nothing here keeps state between calls. The same options may be used from
// as many goroutines as you like.
package yenc
