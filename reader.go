package fitdecode

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/polyvertex/fitdecode/internal/bytesource"
	"github.com/polyvertex/fitdecode/internal/options"
	"github.com/polyvertex/fitdecode/profile"
)

var debug, _ = strconv.ParseBool(os.Getenv("FITDECODE_DEBUG"))

type readerState int

const (
	stateExpectHeader readerState = iota
	stateInBody
	stateDone
)

// Reader is a lazy, pull-based FIT decoder: each call to Next consumes
// bytes up to the next frame boundary and returns exactly one Frame. It
// transparently handles chained files (back-to-back independent FIT files
// in one stream).
type Reader struct {
	cfg   Config
	input io.Reader
	src   *bytesource.Source

	state         readerState
	header        *FileHeader
	bodyBytesLeft uint32
	chunkIndex    int

	localMesgDefs LocalMessageTable
	devTypes      *DevTypeRegistry
	accumulators  *AccumulatorTable

	lastTimestamp     uint32
	hasLastTimestamp  bool
	compressedTSAccum uint32
	hrStartTimestamp  uint32
	hasHRStart        bool

	fileID *DataMessage
	closed bool
}

// NewReader builds a Reader over r, applying every Option in order.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	reader := &Reader{cfg: defaultConfig()}
	if err := options.Apply(reader, opts...); err != nil {
		return nil, err
	}

	opened, err := bytesource.Open(r, reader.cfg.Codec)
	if err != nil {
		return nil, err
	}

	reader.input = r
	reader.src = bytesource.New(opened, reader.cfg.CRCPolicy != CRCDisabled)
	if reader.cfg.RetryBudget > 0 {
		reader.src.SetRetryBudget(reader.cfg.RetryBudget)
	}
	reader.devTypes = newDevTypeRegistry()
	reader.accumulators = newAccumulatorTable()
	reader.state = stateExpectHeader

	return reader, nil
}

// readExact wraps the byte source's ReadExact, translating a short read
// into the package's exported UnexpectedEOFError.
func (r *Reader) readExact(n int) ([]byte, error) {
	b, err := r.src.ReadExact(n)
	if err == nil {
		return b, nil
	}
	var short *bytesource.ShortReadError
	if errors.As(err, &short) {
		return b, &UnexpectedEOFError{Expected: short.Expected, Got: short.Got, Offset: short.Offset}
	}
	return b, err
}

func (r *Reader) resetPerFileState() {
	r.localMesgDefs.reset()
	r.devTypes.reset()
	r.accumulators.reset()
	r.lastTimestamp = 0
	r.hasLastTimestamp = false
	r.compressedTSAccum = 0
	r.hrStartTimestamp = 0
	r.hasHRStart = false
	r.header = nil
	r.fileID = nil
	r.src.ResetCRC()
}

func (r *Reader) buildChunk() *Chunk {
	if !r.cfg.RawChunks {
		return nil
	}
	c := &Chunk{Index: r.chunkIndex, Offset: r.src.Offset() - int64(len(r.src.Chunk())), Bytes: r.src.Chunk()}
	r.chunkIndex++
	return c
}

// Next pulls and decodes the next Frame: a FileHeader, a
// DefinitionMessage, a DataMessage, or a Crc footer. It returns (nil,
// io.EOF) once the stream is exhausted at a clean file boundary.
func (r *Reader) Next() (Frame, error) {
	if r.closed {
		return nil, io.ErrClosedPipe
	}

	switch r.state {
	case stateDone:
		return nil, io.EOF

	case stateExpectHeader:
		r.resetPerFileState()
		r.src.BeginChunk(r.cfg.RawChunks)
		hdr, err := r.decodeFileHeader()
		if err != nil {
			if _, ok := err.(errEndOfStream); ok {
				r.state = stateDone
				return nil, io.EOF
			}
			return nil, err
		}
		hdr.Chunk = r.buildChunk()
		r.header = hdr
		r.bodyBytesLeft = hdr.BodySize
		r.state = stateInBody
		if debug {
			log.Println("fitdecode: header decoded:", hdr)
		}
		if r.cfg.Processor != nil {
			r.cfg.Processor.OnHeader(hdr)
		}
		return hdr, nil

	case stateInBody:
		if r.bodyBytesLeft == 0 {
			return r.decodeFooter()
		}
		return r.decodeRecord()

	default:
		return nil, io.EOF
	}
}

func (r *Reader) decodeRecord() (Frame, error) {
	startOffset := r.src.Offset()
	r.src.BeginChunk(r.cfg.RawChunks)

	b, err := r.readExact(1)
	if err != nil {
		return nil, err
	}
	rh := decodeRecordHeader(b[0])

	var frame Frame
	if rh.isDefinition {
		def, err := r.decodeDefinitionMessage(rh)
		if err != nil {
			return nil, err
		}
		def.Chunk = r.buildChunk()
		frame = def
	} else {
		msg, err := r.decodeDataMessage(rh)
		if err != nil {
			return nil, err
		}
		msg.Chunk = r.buildChunk()
		frame = msg
	}

	consumed := uint32(r.src.Offset() - startOffset)
	if consumed > r.bodyBytesLeft {
		r.bodyBytesLeft = 0
	} else {
		r.bodyBytesLeft -= consumed
	}

	return frame, nil
}

func (r *Reader) decodeFooter() (Frame, error) {
	r.src.BeginChunk(r.cfg.RawChunks)

	b, err := r.readExact(2)
	if err != nil {
		return nil, err
	}
	readCRC := binary.LittleEndian.Uint16(b)
	computed := r.src.CRC()
	matched := computed == readCRC

	if r.cfg.CRCPolicy == CRCEnabled && !matched {
		return nil, &CRCMismatchError{Where: "footer", Computed: computed, Read: readCRC}
	}

	crcFrame := &Crc{Value: readCRC, Matched: matched, Chunk: r.buildChunk()}
	if r.cfg.Processor != nil {
		r.cfg.Processor.OnCrc(crcFrame)
	}

	r.state = stateExpectHeader
	return crcFrame, nil
}

// Close tears down the input if it owns it (i.e. if r is an io.Closer) and
// zeroes all per-reader state. It is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.state = stateDone
	r.resetPerFileState()

	if c, ok := r.input.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// LastHeader returns the FileHeader of the file currently being decoded, or
// nil before the first one has been read.
func (r *Reader) LastHeader() *FileHeader { return r.header }

// LastTimestamp returns the most recently decoded raw FIT timestamp (as
// seconds since the FIT epoch) and whether one has been seen yet in the
// current file.
func (r *Reader) LastTimestamp() (uint32, bool) { return r.lastTimestamp, r.hasLastTimestamp }

// FileID returns the file_id DataMessage cached for the current file, or
// nil if none has been decoded yet.
func (r *Reader) FileID() *DataMessage { return r.fileID }

// LocalMesgDefs exposes the current file's local message definition table.
func (r *Reader) LocalMesgDefs() *LocalMessageTable { return &r.localMesgDefs }

// LocalDevTypes exposes the current file's developer-type registry.
func (r *Reader) LocalDevTypes() *DevTypeRegistry { return r.devTypes }

// Processor returns the configured Processor, or nil if hooks are disabled.
func (r *Reader) Processor() Processor { return r.cfg.Processor }

// DataBag returns the opaque per-reader scratch value installed via
// WithDataBag. The core never inspects it.
func (r *Reader) DataBag() any { return r.cfg.DataBag }

// CheckIntegrity verifies a FIT stream's structural and CRC integrity
// without keeping any decoded frame around. If headerOnly, only the first
// file's header CRC is checked.
func CheckIntegrity(r io.Reader, headerOnly bool) error {
	rd, err := NewReader(r)
	if err != nil {
		return err
	}
	defer rd.Close()

	for {
		f, err := rd.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if headerOnly {
			if _, ok := f.(*FileHeader); ok {
				return nil
			}
		}
	}
}

// DecodeHeader returns the FIT file header without decoding the rest of the
// stream.
func DecodeHeader(r io.Reader) (*FileHeader, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	f, err := rd.Next()
	if err != nil {
		return nil, err
	}
	hdr, _ := f.(*FileHeader)
	return hdr, nil
}

// DecodeHeaderAndFileID returns the FIT file header and its file_id message
// without decoding the rest of the stream. The file_id message must be
// present in every well-formed FIT file.
func DecodeHeaderAndFileID(r io.Reader) (*FileHeader, *DataMessage, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer rd.Close()

	f, err := rd.Next()
	if err != nil {
		return nil, nil, err
	}
	hdr, _ := f.(*FileHeader)

	for {
		f, err := rd.Next()
		if err != nil {
			return hdr, nil, err
		}
		if msg, ok := f.(*DataMessage); ok && msg.Def.GlobalMesgNum == profile.MesgNumFileId {
			return hdr, msg, nil
		}
	}
}
