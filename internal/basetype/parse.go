package basetype

import (
	"encoding/binary"
	"math"
)

// ParseElement decodes one element of size t.Size from b using byte order
// order, returning its bit pattern zero/sign-extended into a uint64 so
// callers can run Invalid against it uniformly, plus the element as the
// Go-native numeric type (int64 or float64) for non-string/byte kinds.
func (t Type) ParseElement(b []byte, order binary.ByteOrder) (raw uint64, signed int64, float float64) {
	switch t.Size {
	case 1:
		raw = uint64(b[0])
	case 2:
		raw = uint64(order.Uint16(b))
	case 4:
		raw = uint64(order.Uint32(b))
	case 8:
		raw = order.Uint64(b)
	}

	switch t.Kind {
	case KindInt:
		switch t.Size {
		case 1:
			signed = int64(int8(raw))
		case 2:
			signed = int64(int16(raw))
		case 4:
			signed = int64(int32(raw))
		case 8:
			signed = int64(raw)
		}
	case KindFloat:
		switch t.Size {
		case 4:
			float = float64(math.Float32frombits(uint32(raw)))
		case 8:
			float = math.Float64frombits(raw)
		}
	}

	return raw, signed, float
}
