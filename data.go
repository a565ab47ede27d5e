package fitdecode

import (
	"bytes"
	"fmt"

	"github.com/polyvertex/fitdecode/internal/basetype"
	"github.com/polyvertex/fitdecode/profile"
)

// FieldData is one rendered value within a DataMessage, per spec §3.
type FieldData struct {
	FieldDef    *FieldDefinition    // non-nil for a value decoded straight off a native field definition
	DevFieldDef *DevFieldDefinition // non-nil for a developer field
	Field       *profile.Field      // resolved field (possibly a subfield); nil when unknown to the profile
	ParentField *profile.Field      // non-nil when Field is a subfield, or the sibling field of a component
	Name        string
	Units       string
	Value       Value
	RawValue    Value
}

func fieldName(f *profile.Field, fallbackDefNum uint8) string {
	if f != nil {
		return f.Name
	}
	return fmt.Sprintf("unknown_%d", fallbackDefNum)
}

func fieldUnits(f *profile.Field) string {
	if f == nil {
		return ""
	}
	return f.Units
}

func fieldScaleOffset(f *profile.Field) (scale, offset float64) {
	if f == nil {
		return 0, 0
	}
	return f.Scale, f.Offset
}

// renderFieldValue implements the "field.render(raw_value)" half of spec
// §4.6 step 3: it maps raw through field's enum table, if any. Non-enum and
// non-scalar values pass through unchanged.
func renderFieldValue(field *profile.Field, raw Value) Value {
	if field == nil || field.Type.Values == nil {
		return raw
	}
	i, ok := raw.AsInt64()
	if !ok {
		return raw
	}
	name, ok := field.Type.Render(i)
	if !ok {
		return raw
	}
	return StringValue(name)
}

// applyScaleOffset implements "display = raw/scale - offset", applied only
// to numeric values; a zero scale means "no scaling" rather than a
// division by zero.
func applyScaleOffset(v Value, scale, offset float64) Value {
	if scale == 0 && offset == 0 {
		return v
	}
	f, ok := v.AsFloat64()
	if !ok {
		return v
	}
	s := scale
	if s == 0 {
		s = 1
	}
	return FloatValue(f/s - offset)
}

// rawElementToValue converts one parsed base-type element into a Value,
// honoring the element's numeric kind.
func rawElementToValue(kind basetype.Kind, raw uint64, signed int64, f float64) Value {
	switch kind {
	case basetype.KindUint:
		return UintValue(raw)
	case basetype.KindInt:
		return IntValue(signed)
	case basetype.KindFloat:
		return FloatValue(f)
	default:
		return UintValue(raw)
	}
}

// decodeDataMessage implements spec §4.6 in full: it reads every native and
// developer field of def's layout, resolves subfields and components,
// applies bookkeeping (timestamp tracking, hr_start_timestamp, the
// compressed-timestamp trailing field), and drives the configured
// Processor's hooks.
func (r *Reader) decodeDataMessage(rh recordHeader) (*DataMessage, error) {
	def, ok := r.localMesgDefs.Get(rh.localMesgNum)
	if !ok {
		return nil, &ParseError{
			Offset:  r.src.Offset(),
			Message: fmt.Sprintf("no definition registered for local message number %d", rh.localMesgNum),
		}
	}

	msg := &DataMessage{
		IsDeveloperData: def.IsDeveloperData,
		LocalMesgNum:    rh.localMesgNum,
		TimeOffset:      rh.timeOffset,
		Def:             def,
	}

	rawValues := make(map[uint8]int64, len(def.FieldDefs))
	var fields []FieldData

	for _, fd := range def.FieldDefs {
		fdatas, err := r.decodeNativeField(def, fd, rawValues)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fdatas...)
	}

	for _, dfd := range def.DevFieldDefs {
		fdata, err := r.decodeDevField(dfd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fdata)
	}

	if rh.timeOffset != nil {
		fields = append(fields, r.synthesizeCompressedTimestamp(def, *rh.timeOffset))
	}

	msg.Fields = fields

	if r.cfg.Processor != nil {
		for i := range fields {
			r.cfg.Processor.ProcessType(&fields[i])
			r.cfg.Processor.ProcessField(&fields[i])
			r.cfg.Processor.ProcessUnit(&fields[i])
		}
		r.cfg.Processor.ProcessMessage(msg)
	}

	switch def.GlobalMesgNum {
	case profile.MesgNumFileId:
		r.fileID = msg
	case profile.MesgNumDeveloperDataId:
		r.registerDeveloperDataID(msg)
	case profile.MesgNumFieldDescription:
		if err := r.registerFieldDescription(msg); err != nil {
			return nil, err
		}
	}

	return msg, nil
}

func (r *Reader) decodeNativeField(def *DefinitionMessage, fd FieldDefinition, rawValues map[uint8]int64) ([]FieldData, error) {
	raw, err := r.readExact(int(fd.Size))
	if err != nil {
		return nil, err
	}

	bt := fd.BaseType
	order := byteOrder(def.LittleEndian)

	var mainRaw Value
	var repInt64 int64

	switch bt.Kind {
	case basetype.KindBytes:
		cp := make([]byte, len(raw))
		copy(cp, raw)
		mainRaw = BytesValue(cp)
	case basetype.KindString:
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		mainRaw = StringValue(string(raw))
	default:
		numElements := int(fd.Size) / bt.Size
		if numElements < 1 {
			numElements = 1
		}
		elems := make([]Value, numElements)
		for i := 0; i < numElements; i++ {
			elemBytes := raw[i*bt.Size : (i+1)*bt.Size]
			u, signed, f := bt.ParseElement(elemBytes, order)
			if i == 0 {
				repInt64 = signed
				if bt.Kind == basetype.KindUint {
					repInt64 = int64(u)
				}
			}
			if bt.Invalid(u) {
				elems[i] = None
			} else {
				elems[i] = rawElementToValue(bt.Kind, u, signed, f)
			}
		}
		if numElements == 1 {
			mainRaw = elems[0]
		} else {
			mainRaw = TupleValue(elems)
		}
	}

	rawValues[fd.DefNum] = repInt64

	resolved, parent := resolveSubfield(fd.Field, rawValues)

	var aux []FieldData
	if resolved != nil && len(resolved.Components) > 0 {
		aux = r.expandComponents(resolved, mainRaw, def.GlobalMesgNum, rawValues)
	}

	scale, offset := fieldScaleOffset(resolved)
	mainValue := renderFieldValue(resolved, mainRaw)
	mainValue = mainValue.Map(func(v Value) Value { return applyScaleOffset(v, scale, offset) })

	if fd.DefNum == profile.FieldNumTimestamp {
		if u, ok := mainRaw.AsUint64(); ok {
			r.compressedTSAccum = uint32(u)
		}
		if u, ok := mainValue.AsUint64(); ok {
			r.lastTimestamp = uint32(u)
			r.hasLastTimestamp = true
		}
	}
	if def.GlobalMesgNum == profile.MesgNumHr && fd.DefNum == profile.FieldNumHREventTimestamp && r.hasLastTimestamp {
		r.hrStartTimestamp = r.lastTimestamp
		r.hasHRStart = true
	}

	fdCopy := fd
	primary := FieldData{
		FieldDef:    &fdCopy,
		Field:       resolved,
		ParentField: parent,
		Name:        fieldName(resolved, fd.DefNum),
		Units:       fieldUnits(resolved),
		Value:       mainValue,
		RawValue:    mainRaw,
	}

	return append(aux, primary), nil
}

func (r *Reader) decodeDevField(dfd DevFieldDefinition) (FieldData, error) {
	raw, err := r.readExact(int(dfd.Size))
	if err != nil {
		return FieldData{}, err
	}

	bt := dfd.Field.BaseType
	order := byteOrder(true) // developer fields are always little-endian encoded per FIT SDK convention

	var mainRaw Value
	switch bt.Kind {
	case basetype.KindBytes:
		cp := make([]byte, len(raw))
		copy(cp, raw)
		mainRaw = BytesValue(cp)
	case basetype.KindString:
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		mainRaw = StringValue(string(raw))
	default:
		numElements := int(dfd.Size) / bt.Size
		if numElements < 1 {
			numElements = 1
		}
		elems := make([]Value, numElements)
		for i := 0; i < numElements; i++ {
			elemBytes := raw[i*bt.Size : (i+1)*bt.Size]
			u, signed, f := bt.ParseElement(elemBytes, order)
			if bt.Invalid(u) {
				elems[i] = None
			} else {
				elems[i] = rawElementToValue(bt.Kind, u, signed, f)
			}
		}
		if numElements == 1 {
			mainRaw = elems[0]
		} else {
			mainRaw = TupleValue(elems)
		}
	}

	dfdCopy := dfd
	return FieldData{
		DevFieldDef: &dfdCopy,
		Name:        dfd.Field.Name,
		Units:       dfd.Field.Units,
		Value:       mainRaw,
		RawValue:    mainRaw,
	}, nil
}

// synthesizeCompressedTimestamp implements the trailing-field half of spec
// §4.6: when the record header carried a compressed time_offset, reconstruct
// the full timestamp and append it as if it were a regular decoded field.
func (r *Reader) synthesizeCompressedTimestamp(def *DefinitionMessage, timeOffset uint8) FieldData {
	newTS := accumulate(uint32(timeOffset), r.compressedTSAccum, 5)
	r.compressedTSAccum = newTS
	r.lastTimestamp = newTS
	r.hasLastTimestamp = true

	var tsField *profile.Field
	if mesg, ok := profile.LookupMessage(int(def.GlobalMesgNum)); ok {
		tsField, _ = mesg.Field(profile.FieldNumTimestamp)
	}

	raw := UintValue(uint64(newTS))
	value := renderFieldValue(tsField, raw)
	scale, off := fieldScaleOffset(tsField)
	value = applyScaleOffset(value, scale, off)

	return FieldData{
		Field:    tsField,
		Name:     fieldName(tsField, profile.FieldNumTimestamp),
		Units:    fieldUnits(tsField),
		Value:    value,
		RawValue: raw,
	}
}
