package bytesource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a transparent decompression wrapper Open can apply before
// handing the stream to the decoder core. FIT exports served by Garmin
// Connect and Strava bulk-export tooling are routinely gzip-wrapped; some
// archival pipelines re-pack with zstd or lz4 instead.
type Codec int

const (
	// CodecAuto sniffs the stream's magic bytes and picks a codec, falling
	// back to CodecNone if nothing matches.
	CodecAuto Codec = iota
	CodecNone
	CodecGzip
	CodecZstd
	CodecLZ4
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Open wraps r according to codec, returning a reader a Source can be built
// on top of. With CodecAuto, up to 4 bytes are peeked (via a small
// bufio.Reader) to detect the container format.
func Open(r io.Reader, codec Codec) (io.Reader, error) {
	if codec == CodecAuto {
		br := bufio.NewReaderSize(r, 4096)
		magic, err := br.Peek(4)
		switch {
		case err != nil && len(magic) < 2:
			// not enough bytes to sniff; treat as an uncompressed (and
			// likely truncated) stream and let the header decoder report
			// the real error.
			return br, nil
		case bytes.HasPrefix(magic, gzipMagic):
			codec = CodecGzip
		case bytes.Equal(magic, zstdMagic):
			codec = CodecZstd
		case bytes.Equal(magic, lz4Magic):
			codec = CodecLZ4
		default:
			codec = CodecNone
		}
		r = br
	}

	switch codec {
	case CodecNone:
		return r, nil
	case CodecGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("bytesource: opening gzip stream: %w", err)
		}
		return gr, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("bytesource: opening zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case CodecLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("bytesource: unknown codec %d", codec)
	}
}
