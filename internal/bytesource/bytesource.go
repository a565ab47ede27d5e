// Package bytesource implements the blocking exact-size byte reader that
// feeds the FIT decoder: exact-size reads, running CRC, offset tracking and
// raw-chunk accumulation, plus transient-EAGAIN back-off retry.
package bytesource

import (
	"errors"
	"io"
	"time"

	"github.com/polyvertex/fitdecode/internal/crc16"
)

// ShortReadError is returned by ReadExact when the underlying reader hits
// EOF before n bytes were available. It carries enough context for the
// caller to build a spec-shaped UnexpectedEOF error.
type ShortReadError struct {
	Expected int
	Got      int
	Offset   int64
}

func (e *ShortReadError) Error() string {
	return "bytesource: short read"
}

// DefaultRetryBudget bounds how many times ReadExact will back off and
// retry a transient zero-byte, nil-error read before giving up.
const DefaultRetryBudget = 64

const retryDelay = 2 * time.Millisecond

// Source is a blocking byte source over an io.Reader, tracking the running
// CRC, the absolute read offset and the bytes read for the "current chunk"
// (the span the reader is about to hand the caller as a Chunk).
type Source struct {
	r           io.Reader
	crc         crc16.Hash16
	crcEnabled  bool
	offset      int64
	chunk       []byte
	retryBudget int
}

// New wraps r. If computeCRC is false, Write-through to the CRC engine is
// skipped entirely (the Disabled policy), saving the per-byte nibble work.
func New(r io.Reader, computeCRC bool) *Source {
	return &Source{
		r:           r,
		crc:         crc16.New(),
		crcEnabled:  computeCRC,
		retryBudget: DefaultRetryBudget,
	}
}

// SetRetryBudget overrides DefaultRetryBudget.
func (s *Source) SetRetryBudget(n int) {
	if n > 0 {
		s.retryBudget = n
	}
}

// Offset returns the number of bytes read so far from the underlying
// reader.
func (s *Source) Offset() int64 {
	return s.offset
}

// CRC returns the CRC accumulated over every byte read so far.
func (s *Source) CRC() uint16 {
	return s.crc.Sum16()
}

// ResetCRC zeroes the running CRC, called at each new chained file.
func (s *Source) ResetCRC() {
	s.crc.Reset()
}

// BeginChunk starts accumulating bytes for a new raw chunk. keep controls
// whether bytes are actually retained (keep_raw_chunks); when false this is
// a cheap no-op so non-chunk-keeping decoding pays nothing for it.
func (s *Source) BeginChunk(keep bool) {
	if keep {
		s.chunk = []byte{}
	} else {
		s.chunk = nil
	}
}

// Chunk returns the bytes accumulated since the last BeginChunk, or nil if
// chunk-keeping was not requested.
func (s *Source) Chunk() []byte {
	return s.chunk
}

// ReadExact reads exactly n bytes, updating the running CRC, offset and
// current-chunk accumulator. n == 0 is a programmer error per spec.
func (s *Source) ReadExact(n int) ([]byte, error) {
	if n <= 0 {
		panic("bytesource: ReadExact called with n <= 0")
	}

	buf := make([]byte, n)
	got := 0
	retries := 0

	for got < n {
		m, err := s.r.Read(buf[got:])
		if m > 0 {
			got += m
			retries = 0
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		if m == 0 {
			retries++
			if retries > s.retryBudget {
				break
			}
			time.Sleep(retryDelay)
		}
	}

	if s.crcEnabled && got > 0 {
		_, _ = s.crc.Write(buf[:got])
	}
	if s.chunk != nil {
		s.chunk = append(s.chunk, buf[:got]...)
	}

	offsetBefore := s.offset
	s.offset += int64(got)

	if got != n {
		return buf[:got], &ShortReadError{Expected: n, Got: got, Offset: offsetBefore}
	}

	return buf, nil
}
