package fitdecode

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/polyvertex/fitdecode/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldByName(fields []FieldData, name string) (FieldData, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldData{}, false
}

func TestReaderDecodesMinimalFileIDFile(t *testing.T) {
	body := append(
		defMsg(0, 0, // local mesg 0, global mesg 0 (file_id)
			ft(0, 1, 0x00), // type: enum
			ft(1, 2, 0x84), // manufacturer: uint16
			ft(2, 2, 0x84), // product: uint16
			ft(3, 4, 0x8C), // serial_number: uint32z
			ft(4, 4, 0x86), // time_created: uint32
			ft(5, 2, 0x84), // number: uint16
		),
		dataMsg(0,
			u8(4),             // type = activity
			u16(1),            // manufacturer = garmin
			u16(1036),         // product = edge500
			u32(123456),       // serial_number
			u32(1000000000),   // time_created (absolute, >= 0x10000000)
			u16(7),            // number
		)...,
	)
	raw := buildFile(body)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	hdr, err := rd.Next()
	require.NoError(t, err)
	fh, ok := hdr.(*FileHeader)
	require.True(t, ok)
	assert.Equal(t, uint32(len(body)), fh.BodySize)
	assert.False(t, fh.CRCPresent)

	def, err := rd.Next()
	require.NoError(t, err)
	_, ok = def.(*DefinitionMessage)
	require.True(t, ok)

	msgFrame, err := rd.Next()
	require.NoError(t, err)
	msg, ok := msgFrame.(*DataMessage)
	require.True(t, ok)
	assert.Equal(t, profile.MesgNumFileId, int(msg.Def.GlobalMesgNum))

	typeField, ok := fieldByName(msg.Fields, "type")
	require.True(t, ok)
	assert.Equal(t, "activity", typeField.Value.Str())

	mfgField, ok := fieldByName(msg.Fields, "manufacturer")
	require.True(t, ok)
	assert.Equal(t, "garmin", mfgField.Value.Str())

	productField, ok := fieldByName(msg.Fields, "product")
	require.True(t, ok)
	assert.Equal(t, "edge500", productField.Value.Str())

	serialField, ok := fieldByName(msg.Fields, "serial_number")
	require.True(t, ok)
	u, ok := serialField.Value.AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(123456), u)

	tcField, ok := fieldByName(msg.Fields, "time_created")
	require.True(t, ok)
	assert.Equal(t, KindTime, tcField.Value.Kind())
	assert.Equal(t, time.Unix(1000000000+fitUTCReference, 0).UTC(), tcField.Value.Time())

	crcFrame, err := rd.Next()
	require.NoError(t, err)
	crc, ok := crcFrame.(*Crc)
	require.True(t, ok)
	assert.True(t, crc.Matched)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)

	require.NotNil(t, rd.FileID())
	assert.Equal(t, msg, rd.FileID())
}

func TestReaderFooterCRCMismatch(t *testing.T) {
	body := append(
		defMsg(0, 0, ft(0, 1, 0x00)),
		dataMsg(0, u8(4))...,
	)
	raw := buildFile(body)
	raw[len(raw)-1] ^= 0xFF // corrupt footer

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next() // header
	require.NoError(t, err)
	_, err = rd.Next() // definition
	require.NoError(t, err)
	_, err = rd.Next() // data
	require.NoError(t, err)

	_, err = rd.Next() // footer, should mismatch
	var crcErr *CRCMismatchError
	require.ErrorAs(t, err, &crcErr)
	assert.Equal(t, "footer", crcErr.Where)
}

func TestReaderFooterCRCMismatchIgnoredUnderReadOnlyPolicy(t *testing.T) {
	body := append(
		defMsg(0, 0, ft(0, 1, 0x00)),
		dataMsg(0, u8(4))...,
	)
	raw := buildFile(body)
	raw[len(raw)-1] ^= 0xFF

	rd, err := NewReader(bytes.NewReader(raw), WithCRCPolicy(CRCReadOnly))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)

	f, err := rd.Next()
	require.NoError(t, err)
	crc, ok := f.(*Crc)
	require.True(t, ok)
	assert.False(t, crc.Matched)
}

func TestReaderTruncatedFooterReportsUnexpectedEOF(t *testing.T) {
	body := append(
		defMsg(0, 0, ft(0, 1, 0x00)),
		dataMsg(0, u8(4))...,
	)
	hdr := fitHeader(uint32(len(body)))
	// no footer at all: stream ends exactly where the 2-byte CRC was due.
	raw := append(append([]byte{}, hdr...), body...)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)

	_, err = rd.Next()
	var eofErr *UnexpectedEOFError
	require.ErrorAs(t, err, &eofErr)
	assert.Equal(t, 2, eofErr.Expected)
	assert.Equal(t, 0, eofErr.Got)
}

func TestReaderHandlesChainedFiles(t *testing.T) {
	body := append(
		defMsg(0, 0, ft(0, 1, 0x00)),
		dataMsg(0, u8(4))...,
	)
	one := buildFile(body)
	two := buildFile(body)

	rd, err := NewReader(bytes.NewReader(append(append([]byte{}, one...), two...)))
	require.NoError(t, err)
	defer rd.Close()

	var headers int
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		if _, ok := f.(*FileHeader); ok {
			headers++
		}
	}
	assert.Equal(t, 2, headers)
}

func TestReaderLocalMessageRedefinition(t *testing.T) {
	body := append(append(
		defMsg(0, 0, ft(0, 1, 0x00)),
		dataMsg(0, u8(4))...),
		append(defMsg(0, 20, // redefine local 0 as a record message
			ft(profile.FieldNumTimestamp, 4, 0x86),
			ft(3, 1, 0x02), // heart_rate
		),
			dataMsg(0, u32(500000000), u8(77))...,
		)...,
	)
	raw := buildFile(body)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next() // header
	require.NoError(t, err)
	_, err = rd.Next() // def file_id
	require.NoError(t, err)
	_, err = rd.Next() // data file_id
	require.NoError(t, err)

	defFrame, err := rd.Next()
	require.NoError(t, err)
	def := defFrame.(*DefinitionMessage)
	assert.Equal(t, uint16(20), def.GlobalMesgNum)
	assert.True(t, def.Redefined, "local mesg 0 switched from file_id to record")

	msgFrame, err := rd.Next()
	require.NoError(t, err)
	msg := msgFrame.(*DataMessage)
	hr, ok := fieldByName(msg.Fields, "heart_rate")
	require.True(t, ok)
	u, _ := hr.Value.AsUint64()
	assert.Equal(t, uint64(77), u)
}
