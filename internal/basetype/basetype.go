// Package basetype implements the static FIT base-type table: the seventeen
// wire-level scalar types every field definition ultimately bottoms out at.
package basetype

// Kind identifies the shape a parsed value takes once the invalid-value
// mapping has been applied.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
)

// Type describes one entry of the FIT base-type table.
type Type struct {
	ID      byte
	Name    string
	Size    int // size in bytes of one element
	Kind    Kind
	Signed  bool
	invalid uint64 // invalid-value sentinel, compared against the raw bit pattern
}

// Invalid reports whether raw (the element's bit pattern, zero-extended to
// uint64) is this type's invalid-value sentinel.
func (t Type) Invalid(raw uint64) bool {
	if t.Kind == KindString {
		return false // strings carry their own termination; never "invalid"
	}
	return raw == t.invalid
}

var (
	Enum    = Type{ID: 0x00, Name: "enum", Size: 1, Kind: KindUint, invalid: 0xFF}
	SInt8   = Type{ID: 0x01, Name: "sint8", Size: 1, Kind: KindInt, Signed: true, invalid: 0x7F}
	UInt8   = Type{ID: 0x02, Name: "uint8", Size: 1, Kind: KindUint, invalid: 0xFF}
	SInt16  = Type{ID: 0x83, Name: "sint16", Size: 2, Kind: KindInt, Signed: true, invalid: 0x7FFF}
	UInt16  = Type{ID: 0x84, Name: "uint16", Size: 2, Kind: KindUint, invalid: 0xFFFF}
	SInt32  = Type{ID: 0x85, Name: "sint32", Size: 4, Kind: KindInt, Signed: true, invalid: 0x7FFFFFFF}
	UInt32  = Type{ID: 0x86, Name: "uint32", Size: 4, Kind: KindUint, invalid: 0xFFFFFFFF}
	String  = Type{ID: 0x07, Name: "string", Size: 1, Kind: KindString, invalid: 0x00}
	Float32 = Type{ID: 0x88, Name: "float32", Size: 4, Kind: KindFloat, invalid: 0xFFFFFFFF}
	Float64 = Type{ID: 0x89, Name: "float64", Size: 8, Kind: KindFloat, invalid: 0xFFFFFFFFFFFFFFFF}
	UInt8z  = Type{ID: 0x0A, Name: "uint8z", Size: 1, Kind: KindUint, invalid: 0x00}
	UInt16z = Type{ID: 0x8B, Name: "uint16z", Size: 2, Kind: KindUint, invalid: 0x0000}
	UInt32z = Type{ID: 0x8C, Name: "uint32z", Size: 4, Kind: KindUint, invalid: 0x00000000}
	Byte    = Type{ID: 0x0D, Name: "byte", Size: 1, Kind: KindBytes, invalid: 0xFF}
	SInt64  = Type{ID: 0x8E, Name: "sint64", Size: 8, Kind: KindInt, Signed: true, invalid: 0x7FFFFFFFFFFFFFFF}
	UInt64  = Type{ID: 0x8F, Name: "uint64", Size: 8, Kind: KindUint, invalid: 0xFFFFFFFFFFFFFFFF}
	UInt64z = Type{ID: 0x90, Name: "uint64z", Size: 8, Kind: KindUint, invalid: 0x0000000000000000}
)

var byID = map[byte]Type{
	Enum.ID: Enum, SInt8.ID: SInt8, UInt8.ID: UInt8, SInt16.ID: SInt16,
	UInt16.ID: UInt16, SInt32.ID: SInt32, UInt32.ID: UInt32, String.ID: String,
	Float32.ID: Float32, Float64.ID: Float64, UInt8z.ID: UInt8z,
	UInt16z.ID: UInt16z, UInt32z.ID: UInt32z, Byte.ID: Byte, SInt64.ID: SInt64,
	UInt64.ID: UInt64, UInt64z.ID: UInt64z,
}

// Lookup returns the base type for id, falling back to Byte for any
// identifier the table does not recognize, per spec.
func Lookup(id byte) Type {
	if t, ok := byID[id]; ok {
		return t
	}
	return Byte
}
