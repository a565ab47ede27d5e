package basetype

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupFallsBackToByte(t *testing.T) {
	assert.Equal(t, UInt16, Lookup(UInt16.ID))
	assert.Equal(t, Byte, Lookup(0x5A))
}

func TestInvalidSentinels(t *testing.T) {
	assert.True(t, UInt16.Invalid(0xFFFF))
	assert.False(t, UInt16.Invalid(1036))
	assert.True(t, UInt8z.Invalid(0))
	assert.False(t, String.Invalid(0))
}

func TestParseElementSigned(t *testing.T) {
	raw, signed, _ := SInt16.ParseElement([]byte{0xFF, 0xFF}, binary.LittleEndian)
	assert.Equal(t, uint64(0xFFFF), raw)
	assert.Equal(t, int64(-1), signed)
}

func TestParseElementFloat(t *testing.T) {
	b := []byte{0x00, 0x00, 0x80, 0x3F} // 1.0f little endian
	_, _, f := Float32.ParseElement(b, binary.LittleEndian)
	assert.InDelta(t, 1.0, f, 1e-9)
}
