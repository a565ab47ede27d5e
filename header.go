package fitdecode

import (
	"encoding/binary"
	"errors"

	"github.com/polyvertex/fitdecode/internal/bytesource"
	"github.com/polyvertex/fitdecode/internal/crc16"
)

const fitMagic = ".FIT"

// decodeFileHeader implements spec §4.3. A clean EOF with zero bytes read
// signals end-of-stream rather than a malformed file, and an I/O error while
// reading the fixed part is returned as is; a header CRC mismatch is a
// CRCMismatchError and every other failure mode is a BadHeaderError.
func (r *Reader) decodeFileHeader() (*FileHeader, error) {
	fixed, err := r.src.ReadExact(12)
	if err != nil {
		var short *bytesource.ShortReadError
		if !errors.As(err, &short) {
			return nil, err
		}
		if len(fixed) == 0 {
			return nil, errEndOfStream{}
		}
		return nil, &BadHeaderError{Reason: "truncated fixed header"}
	}

	headerSize := fixed[0]
	if headerSize < 12 {
		return nil, &BadHeaderError{Reason: "header_size smaller than the fixed part"}
	}
	if string(fixed[8:12]) != fitMagic {
		return nil, &BadHeaderError{Reason: "bad magic, not a FIT file"}
	}

	protoByte := fixed[1]
	hdr := &FileHeader{
		HeaderSize: headerSize,
		ProtoVer:   ProtoVersion{Major: protoByte >> 4, Minor: protoByte & 0x0F},
		BodySize:   binary.LittleEndian.Uint32(fixed[4:8]),
	}
	profileVer := binary.LittleEndian.Uint16(fixed[2:4])
	hdr.ProfileVer = ProfileVersion{Major: uint16(profileVer / 100), Minor: uint16(profileVer % 100)}

	extra := int(headerSize) - 12
	if extra > 0 {
		if extra < 2 {
			return nil, &BadHeaderError{Reason: "extended header shorter than its CRC field"}
		}
		extraBytes, err := r.src.ReadExact(extra)
		if err != nil {
			return nil, &BadHeaderError{Reason: "truncated extended header"}
		}
		readCRC := binary.LittleEndian.Uint16(extraBytes[:2])
		if readCRC != 0 && r.cfg.CRCPolicy != CRCDisabled {
			hdr.CRCPresent = true
			hdr.CRC = readCRC
			computed := crc16.Update(0, fixed)
			hdr.CRCMatched = computed == readCRC
			if r.cfg.CRCPolicy == CRCEnabled && !hdr.CRCMatched {
				return nil, &CRCMismatchError{Where: "header", Computed: computed, Read: readCRC}
			}
		}
	}

	return hdr, nil
}
