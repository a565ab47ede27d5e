package fitdecode

import (
	"encoding/binary"

	"github.com/polyvertex/fitdecode/internal/crc16"
)

// fitHeader builds a 12-byte fixed FIT header (no extended CRC) announcing
// bodySize bytes of record data to follow.
func fitHeader(bodySize uint32) []byte {
	b := make([]byte, 12)
	b[0] = 12
	b[1] = 0x10 // proto 1.0
	binary.LittleEndian.PutUint16(b[2:4], 100)
	binary.LittleEndian.PutUint32(b[4:8], bodySize)
	copy(b[8:12], fitMagic)
	return b
}

// fieldTriplet is one (def_num, size, base_type) entry of a definition
// message's field list.
type fieldTriplet struct {
	defNum, size, baseType byte
}

func ft(defNum, size, baseType byte) fieldTriplet { return fieldTriplet{defNum, size, baseType} }

// defMsg builds a non-developer-data definition message record, always
// little-endian.
func defMsg(localMesgNum uint8, globalMesgNum uint16, fields ...fieldTriplet) []byte {
	buf := []byte{mesgDefinitionMask | localMesgNum, 0, 0}
	gb := make([]byte, 2)
	binary.LittleEndian.PutUint16(gb, globalMesgNum)
	buf = append(buf, gb...)
	buf = append(buf, byte(len(fields)))
	for _, f := range fields {
		buf = append(buf, f.defNum, f.size, f.baseType)
	}
	return buf
}

// devFieldTriplet is one (field_num, size, developer_data_index) entry of a
// definition message's developer field list.
type devFieldTriplet struct {
	defNum, size, devDataIndex byte
}

func dft(defNum, size, devDataIndex byte) devFieldTriplet {
	return devFieldTriplet{defNum, size, devDataIndex}
}

// defMsgDev builds a definition message that also carries developer field
// definitions.
func defMsgDev(localMesgNum uint8, globalMesgNum uint16, fields []fieldTriplet, devFields []devFieldTriplet) []byte {
	buf := []byte{mesgDefinitionMask | developerDataMask | localMesgNum, 0, 0}
	gb := make([]byte, 2)
	binary.LittleEndian.PutUint16(gb, globalMesgNum)
	buf = append(buf, gb...)
	buf = append(buf, byte(len(fields)))
	for _, f := range fields {
		buf = append(buf, f.defNum, f.size, f.baseType)
	}
	buf = append(buf, byte(len(devFields)))
	for _, f := range devFields {
		buf = append(buf, f.defNum, f.size, f.devDataIndex)
	}
	return buf
}

// dataMsg builds a normal-form data record: header byte plus the raw field
// payload, in definition order.
func dataMsg(localMesgNum uint8, payload ...[]byte) []byte {
	buf := []byte{localMesgNum}
	for _, p := range payload {
		buf = append(buf, p...)
	}
	return buf
}

// compressedDataMsg builds a compressed-timestamp-form data record.
func compressedDataMsg(localMesgNum uint8, timeOffset uint8, payload ...[]byte) []byte {
	header := byte(compressedHeaderMask) | ((localMesgNum << 5) & compressedLocalMesgNumMask) | (timeOffset & compressedTimeOffsetMask)
	buf := []byte{header}
	for _, p := range payload {
		buf = append(buf, p...)
	}
	return buf
}

func u8(v uint8) []byte { return []byte{v} }
func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
func i32(v int32) []byte { return u32(uint32(v)) }

func strField(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	return b
}

// buildFile concatenates a header, body and a correctly computed CRC-16
// footer into one complete FIT file.
func buildFile(body []byte) []byte {
	hdr := fitHeader(uint32(len(body)))
	all := append(append([]byte{}, hdr...), body...)
	crc := crc16.Update(0, all)
	return append(all, u16(crc)...)
}
