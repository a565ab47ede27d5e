package fitdecode

import (
	"bytes"
	"io"
	"testing"

	"github.com/polyvertex/fitdecode/internal/crc16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFileHeaderRejectsBadMagic(t *testing.T) {
	hdr := fitHeader(0)
	copy(hdr[8:12], "XXXX")

	rd, err := NewReader(bytes.NewReader(hdr))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	var badHdr *BadHeaderError
	require.ErrorAs(t, err, &badHdr)
}

func TestDecodeFileHeaderEmptyStreamIsCleanEOF(t *testing.T) {
	rd, err := NewReader(bytes.NewReader(nil))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeFileHeaderWithMatchingExtendedCRC(t *testing.T) {
	fixed := fitHeader(0)
	fixed[0] = 14 // header_size includes a 2-byte CRC
	crc := crc16.Update(0, fixed)

	raw := append(append([]byte{}, fixed...), u16(crc)...)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	f, err := rd.Next()
	require.NoError(t, err)
	hdr := f.(*FileHeader)
	assert.True(t, hdr.CRCPresent)
	assert.True(t, hdr.CRCMatched)
}

func TestDecodeFileHeaderWithMismatchedExtendedCRCFails(t *testing.T) {
	fixed := fitHeader(0)
	fixed[0] = 14
	crc := crc16.Update(0, fixed) ^ 0xFFFF

	raw := append(append([]byte{}, fixed...), u16(crc)...)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	var crcErr *CRCMismatchError
	require.ErrorAs(t, err, &crcErr)
	assert.Equal(t, "header", crcErr.Where)
}

func TestDecodeFileHeaderCRCDisabledSkipsMismatch(t *testing.T) {
	fixed := fitHeader(0)
	fixed[0] = 14
	crc := crc16.Update(0, fixed) ^ 0xFFFF

	raw := append(append([]byte{}, fixed...), u16(crc)...)

	rd, err := NewReader(bytes.NewReader(raw), WithCRCPolicy(CRCDisabled))
	require.NoError(t, err)
	defer rd.Close()

	f, err := rd.Next()
	require.NoError(t, err)
	hdr := f.(*FileHeader)
	assert.False(t, hdr.CRCPresent)
}

func TestDecodeFileHeaderExtendedHeaderShorterThanCRCIsBadHeader(t *testing.T) {
	fixed := fitHeader(0)
	fixed[0] = 13 // only 1 extra byte, can't hold a 2-byte CRC

	rd, err := NewReader(bytes.NewReader(append(append([]byte{}, fixed...), 0x00)))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	var badHdr *BadHeaderError
	require.ErrorAs(t, err, &badHdr)
}
