package fitdecode

// Frame is the union of everything a Reader can emit from a pull. Each
// concrete type below is one variant; callers type-switch on the result of
// Reader.Next.
type Frame interface {
	frame()
}

// Chunk is the optional raw-bytes echo of a Frame, present only when the
// reader is configured with WithRawChunks(true). Concatenating every Chunk
// emitted for a well-formed file reproduces the file byte-for-byte.
type Chunk struct {
	Index  int
	Offset int64
	Bytes  []byte
}

// ProtoVersion is a FIT protocol version, nibble-packed on the wire as
// major:minor.
type ProtoVersion struct {
	Major, Minor uint8
}

// ProfileVersion is a FIT profile version, decimal-coded on the wire as
// major*100+minor.
type ProfileVersion struct {
	Major, Minor uint16
}

// FileHeader is the first frame of every file.
type FileHeader struct {
	HeaderSize uint8
	ProtoVer   ProtoVersion
	ProfileVer ProfileVersion
	BodySize   uint32
	CRC        uint16
	CRCPresent bool
	CRCMatched bool
	Chunk      *Chunk
}

func (*FileHeader) frame() {}

// DefinitionMessage describes the layout of subsequent DataMessages bound to
// the same LocalMesgNum, until the next redefinition or end of file.
type DefinitionMessage struct {
	IsDeveloperData bool
	LocalMesgNum    uint8
	TimeOffset      *uint8
	GlobalMesgNum   uint16
	MesgName        string // "" if not in the profile catalogue
	LittleEndian    bool
	FieldDefs       []FieldDefinition
	DevFieldDefs    []DevFieldDefinition

	// Redefined is true when this definition replaces a prior occupant of
	// the same LocalMesgNum whose Fingerprint differs from this one's. It
	// is false for a slot's first definition and for a byte-identical
	// re-announce of the definition already occupying the slot.
	Redefined bool

	fingerprint    uint64
	hasFingerprint bool

	Chunk *Chunk
}

func (*DefinitionMessage) frame() {}

// DataMessage carries one decoded record's fields, in definition order.
type DataMessage struct {
	IsDeveloperData bool
	LocalMesgNum    uint8
	TimeOffset      *uint8
	Def             *DefinitionMessage
	Fields          []FieldData

	Chunk *Chunk
}

func (*DataMessage) frame() {}

// Crc is the footer frame closing one (possibly chained) file.
type Crc struct {
	Value   uint16
	Matched bool
	Chunk   *Chunk
}

func (*Crc) frame() {}
