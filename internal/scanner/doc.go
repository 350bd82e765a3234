// Package scanner holds the line reader used by the decoder. It exists
// because bufio.Scanner refuses tokens longer than its buffer, and text
// before a =ybegin line comes from wherever the caller found it.
package scanner
