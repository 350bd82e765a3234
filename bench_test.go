package yenc_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	yenc "github.com/zostay/go-yenc"
)

var benchSizes = []int{1024, 10 * 1024, 100 * 1024, 1000 * 1024}

var benchInputs = []struct {
	name string
	fill func(n int) []byte
}{
	{"random", func(n int) []byte { return randomBytes(5, n) }},
	// every byte needs an escape
	{"worst", func(n int) []byte { return bytes.Repeat([]byte{0xd6}, n) }},
	// no byte needs an escape
	{"best", func(n int) []byte { return bytes.Repeat([]byte{'a'}, n) }},
}

func BenchmarkEncode(b *testing.B) {
	for _, in := range benchInputs {
		for _, size := range benchSizes {
			data := in.fill(size)
			b.Run(fmt.Sprintf("%s/%d", in.name, size), func(b *testing.B) {
				b.SetBytes(int64(size))
				for b.Loop() {
					if _, err := yenc.Encode(io.Discard, bytes.NewReader(data), "bench.bin"); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, in := range benchInputs {
		for _, size := range benchSizes {
			enc, err := yenc.EncodeBytes(in.fill(size), "bench.bin")
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%d", in.name, size), func(b *testing.B) {
				b.SetBytes(int64(size))
				for b.Loop() {
					if _, err := yenc.Decode(io.Discard, bytes.NewReader(enc)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
