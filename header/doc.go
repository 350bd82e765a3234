// Package header parses and renders the three control lines that frame a
// yEnc encoded unit:
//
//	=ybegin part=1 total=3 line=128 size=15 name=test.bin
//	=ypart begin=1 end=5
//	... body ...
//	=yend size=5 part=1 pcrc32=515ad3cc
//
// The =ybegin line becomes a Header, the optional =ypart line a Part and the
// =yend line a Trailer. Parsing is liberal about whitespace, field order and
// unknown keys. Output always uses the same field order and writes checksums
// as 8 lowercase hex digits.
//
// Errors come in two flavors so callers can tell "this is not the line I
// asked for" or "this value is garbage" (both match ErrInvalidHeader) apart
// from "a required key is missing" (MissingFieldError).
package header
