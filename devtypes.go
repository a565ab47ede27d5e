package fitdecode

import (
	"github.com/polyvertex/fitdecode/internal/basetype"
	"github.com/polyvertex/fitdecode/profile"
)

// DevField is a developer-defined field type, registered at runtime via a
// field_description message.
type DevField struct {
	DevDataIndex   uint8
	Name           string
	DefNum         uint8
	BaseType       basetype.Type
	Units          string
	HasNativeField bool
	NativeFieldNum uint8
}

type devDataEntry struct {
	applicationID []byte
	fields        map[uint8]*DevField
}

// DevTypeRegistry tracks developer_data_id and field_description messages so
// developer field definitions can be resolved while decoding.
type DevTypeRegistry struct {
	entries map[uint8]*devDataEntry
}

func newDevTypeRegistry() *DevTypeRegistry {
	return &DevTypeRegistry{entries: make(map[uint8]*devDataEntry)}
}

func (reg *DevTypeRegistry) reset() {
	reg.entries = make(map[uint8]*devDataEntry)
}

// RegisterDataID creates or overwrites the registry entry for devDataIndex,
// per spec §4.10 ("developer_data_id" handling).
func (reg *DevTypeRegistry) RegisterDataID(devDataIndex uint8, applicationID []byte) {
	reg.entries[devDataIndex] = &devDataEntry{
		applicationID: applicationID,
		fields:        make(map[uint8]*DevField),
	}
}

// RegisterField registers or overwrites a DevField under
// fields[field.DefNum] for the given devDataIndex. Returns a ParseError if
// devDataIndex was never announced via RegisterDataID.
func (reg *DevTypeRegistry) RegisterField(devDataIndex uint8, field *DevField, offset int64) error {
	e, ok := reg.entries[devDataIndex]
	if !ok {
		return &ParseError{Offset: offset, Message: "field_description references unregistered developer_data_index"}
	}
	e.fields[field.DefNum] = field
	return nil
}

// Lookup returns the DevField registered under (devDataIndex, defNum).
func (reg *DevTypeRegistry) Lookup(devDataIndex, defNum uint8) (*DevField, bool) {
	e, ok := reg.entries[devDataIndex]
	if !ok {
		return nil, false
	}
	f, ok := e.fields[defNum]
	return f, ok
}

func fieldDataUint(fields []FieldData, defNum uint8) (uint64, bool) {
	for _, fd := range fields {
		if fd.FieldDef != nil && fd.FieldDef.DefNum == defNum {
			u, ok := fd.RawValue.AsUint64()
			return u, ok
		}
	}
	return 0, false
}

func fieldDataString(fields []FieldData, defNum uint8) (string, bool) {
	for _, fd := range fields {
		if fd.FieldDef != nil && fd.FieldDef.DefNum == defNum {
			if fd.RawValue.Kind() != KindString {
				return "", false
			}
			return fd.RawValue.Str(), true
		}
	}
	return "", false
}

func fieldDataBytes(fields []FieldData, defNum uint8) ([]byte, bool) {
	for _, fd := range fields {
		if fd.FieldDef != nil && fd.FieldDef.DefNum == defNum {
			if fd.RawValue.Kind() != KindBytes {
				return nil, false
			}
			return fd.RawValue.Bytes(), true
		}
	}
	return nil, false
}

// registerDeveloperDataID implements spec §4.10's developer_data_id
// handling: developer_data_index is required, application_id optional.
func (r *Reader) registerDeveloperDataID(msg *DataMessage) {
	idx, ok := fieldDataUint(msg.Fields, profile.FieldNumDevDataIndexInDDIDm)
	if !ok {
		return
	}
	appID, _ := fieldDataBytes(msg.Fields, profile.FieldNumDevAppIDInDDIDMsg)
	r.devTypes.RegisterDataID(uint8(idx), appID)
}

// registerFieldDescription implements spec §4.10's field_description
// handling.
func (r *Reader) registerFieldDescription(msg *DataMessage) error {
	idx, ok := fieldDataUint(msg.Fields, profile.FieldNumDevDataIndex)
	if !ok {
		return &ParseError{Offset: r.src.Offset(), Message: "field_description missing developer_data_index"}
	}
	defNum, ok := fieldDataUint(msg.Fields, profile.FieldNumDevFieldDefNum)
	if !ok {
		return &ParseError{Offset: r.src.Offset(), Message: "field_description missing field_definition_number"}
	}
	btID, ok := fieldDataUint(msg.Fields, profile.FieldNumDevBaseTypeID)
	if !ok {
		return &ParseError{Offset: r.src.Offset(), Message: "field_description missing fit_base_type_id"}
	}
	name, ok := fieldDataString(msg.Fields, profile.FieldNumDevFieldName)
	if !ok {
		return &ParseError{Offset: r.src.Offset(), Message: "field_description missing field_name"}
	}
	units, _ := fieldDataString(msg.Fields, profile.FieldNumDevUnits)

	field := &DevField{
		DevDataIndex: uint8(idx),
		Name:         name,
		DefNum:       uint8(defNum),
		BaseType:     basetype.Lookup(uint8(btID)),
		Units:        units,
	}
	if native, ok := fieldDataUint(msg.Fields, profile.FieldNumDevNativeFieldNum); ok {
		field.HasNativeField = true
		field.NativeFieldNum = uint8(native)
	}

	return r.devTypes.RegisterField(uint8(idx), field, r.src.Offset())
}
