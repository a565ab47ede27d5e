package fitdecode

import "github.com/polyvertex/fitdecode/internal/bytesource"

// Codec names a transparent decompression wrapper a Reader can apply to its
// input stream before decoding. See bytesource.Codec.
type Codec = bytesource.Codec

const (
	CodecAuto = bytesource.CodecAuto
	CodecNone = bytesource.CodecNone
	CodecGzip = bytesource.CodecGzip
	CodecZstd = bytesource.CodecZstd
	CodecLZ4  = bytesource.CodecLZ4
)
