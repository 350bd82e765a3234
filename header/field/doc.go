// Package field is the low-level tokenizer behind the header package. A yEnc
// control line is a fixed prefix followed by whitespace separated key=value
// tokens. This package splits such a line into Fields, looks them up, and
// renders them back out. It also holds the codecs for the two value types in
// use: decimal integers and 32-bit checksums written as hex.
//
// Parsing is liberal about whitespace and token order, and anything that is
// not key=value is skipped. Output is single spaced with checksums always
// written as 8 lowercase hex digits.
package field
