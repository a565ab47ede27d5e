package fitdecode

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// cborValue is Value's wire representation: one tagged field per Kind,
// keyed by small integers so the encoding stays compact across a whole
// decoded file's worth of FieldData.
type cborValue struct {
	Kind  Kind    `cbor:"0,keyasint"`
	I     int64   `cbor:"1,keyasint,omitempty"`
	U     uint64  `cbor:"2,keyasint,omitempty"`
	F     float64 `cbor:"3,keyasint,omitempty"`
	S     string  `cbor:"4,keyasint,omitempty"`
	B     []byte  `cbor:"5,keyasint,omitempty"`
	Bl    bool    `cbor:"6,keyasint,omitempty"`
	T     int64   `cbor:"7,keyasint,omitempty"` // unix nanoseconds
	Tuple []Value `cbor:"8,keyasint,omitempty"`
}

// MarshalCBOR lets Value (and anything embedding it, such as a persisted
// DataMessage) round-trip through cbor.Marshal without reflecting into its
// unexported fields.
func (v Value) MarshalCBOR() ([]byte, error) {
	wire := cborValue{Kind: v.kind}
	switch v.kind {
	case KindInt:
		wire.I = v.i
	case KindUint:
		wire.U = v.u
	case KindFloat:
		wire.F = v.f
	case KindString:
		wire.S = v.s
	case KindBytes:
		wire.B = v.b
	case KindBool:
		wire.Bl = v.bl
	case KindTime:
		wire.T = v.t.UnixNano()
	case KindTuple:
		wire.Tuple = v.tuple
	}
	return cbor.Marshal(wire)
}

// UnmarshalCBOR is MarshalCBOR's counterpart.
func (v *Value) UnmarshalCBOR(data []byte) error {
	var wire cborValue
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch wire.Kind {
	case KindInt:
		*v = IntValue(wire.I)
	case KindUint:
		*v = UintValue(wire.U)
	case KindFloat:
		*v = FloatValue(wire.F)
	case KindString:
		*v = StringValue(wire.S)
	case KindBytes:
		*v = BytesValue(wire.B)
	case KindBool:
		*v = BoolValue(wire.Bl)
	case KindTime:
		*v = TimeValue(time.Unix(0, wire.T).UTC())
	case KindTuple:
		*v = TupleValue(wire.Tuple)
	default:
		*v = None
	}
	return nil
}
