package yenc_test

import (
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yenc "github.com/zostay/go-yenc"
)

// split encodes data as parts of at most size bytes each.
func split(t *testing.T, data []byte, size int) [][]byte {
	t.Helper()

	total := (len(data) + size - 1) / size
	sum := crc32.ChecksumIEEE(data)

	parts := make([][]byte, 0, total)
	for i := 0; i < total; i++ {
		begin := i * size
		end := min(begin+size, len(data))

		mp := yenc.MultiPart{
			Index:    i + 1,
			Total:    total,
			Begin:    int64(begin) + 1,
			End:      int64(end),
			FileSize: int64(len(data)),
		}
		if i == total-1 {
			mp.FileCRC = &sum
		}

		enc, err := yenc.EncodePartBytes(data[begin:end], "split.bin", mp)
		require.NoError(t, err)
		parts = append(parts, enc)
	}

	return parts
}

func TestMultiPart(t *testing.T) {
	t.Parallel()

	data := seq(0, 9)
	parts := split(t, data, 5)
	require.Len(t, parts, 2)

	file := make([]byte, len(data))
	for i, enc := range parts {
		dec, res, err := yenc.DecodeBytes(enc, yenc.Strict())
		require.NoError(t, err)

		assert.Equal(t, i+1, res.Header.Part)
		assert.Equal(t, 2, res.Header.Total)
		assert.Equal(t, int64(10), res.Header.Size)
		require.NotNil(t, res.Part)
		require.NotNil(t, res.Trailer)
		assert.Equal(t, i+1, res.Trailer.Part)
		assert.Equal(t, int64(5), res.Trailer.Size)

		copy(file[res.Part.Begin-1:res.Part.End], dec)
	}

	assert.Equal(t, data, file)

	_, last, err := yenc.DecodeBytes(parts[1])
	require.NoError(t, err)
	require.NotNil(t, last.Trailer.PartCRC)
	require.NotNil(t, last.Trailer.FileCRC)
	assert.Equal(t, uint32(0x9fe30398), *last.Trailer.PartCRC)
	assert.Equal(t, uint32(0x456cd746), *last.Trailer.FileCRC)
	assert.Equal(t, *last.Trailer.FileCRC, crc32.ChecksumIEEE(file))
}

func TestMultiPart_Random(t *testing.T) {
	t.Parallel()

	data := randomBytes(4, 50_000)
	parts := split(t, data, 7_000)
	require.Len(t, parts, 8)

	// parts may arrive in any order
	file := make([]byte, len(data))
	for i := len(parts) - 1; i >= 0; i-- {
		dec, res, err := yenc.DecodeBytes(parts[i])
		require.NoError(t, err)
		require.NotNil(t, res.Part)
		assert.Equal(t, res.Part.Size(), int64(len(dec)))
		copy(file[res.Part.Begin-1:res.Part.End], dec)
	}

	assert.True(t, bytes.Equal(data, file), "reassembled file differs")
}
