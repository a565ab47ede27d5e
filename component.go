package fitdecode

import "github.com/polyvertex/fitdecode/profile"

// expandComponents implements spec §4.6 step 2 / §4.8: it bit-slices each of
// parent's declared components out of rawValue, applies accumulation and
// component-local scale/offset, resolves and renders the component's
// sibling field, and returns one auxiliary FieldData per component, in
// declaration order — ahead of the caller's own primary FieldData.
func (r *Reader) expandComponents(parent *profile.Field, rawValue Value, globalMesgNum uint16, rawValues map[uint8]int64) []FieldData {
	if len(parent.Components) == 0 {
		return nil
	}

	raw64, ok := rawValue.AsUint64()
	if !ok {
		return nil
	}

	var mesg *profile.Message
	if m, found := profile.LookupMessage(int(globalMesgNum)); found {
		mesg = m
	}

	out := make([]FieldData, 0, len(parent.Components))
	for _, c := range parent.Components {
		mask := uint64(1)<<uint(c.Bits) - 1
		comp := uint32((raw64 >> uint(c.BitOffset)) & mask)

		if c.Accumulate {
			comp = r.accumulators.Accumulate(globalMesgNum, uint8(c.DefNum), comp, uint(c.Bits))
		}

		var compField *profile.Field
		if mesg != nil {
			compField, _ = mesg.Field(c.DefNum)
		}
		resolved, _ := resolveSubfield(compField, rawValues)

		rawCompValue := UintValue(uint64(comp))
		value := renderFieldValue(resolved, applyScaleOffset(rawCompValue, c.Scale, c.Offset))

		if globalMesgNum == profile.MesgNumHr &&
			parent.DefNum == profile.FieldNumHREventTimestamp12 &&
			c.DefNum == profile.FieldNumHREventTimestamp &&
			r.hasHRStart {
			if f, ok := value.AsFloat64(); ok {
				value = FloatValue(f + float64(r.hrStartTimestamp))
			}
		}

		out = append(out, FieldData{
			Field:       resolved,
			ParentField: parent,
			Name:        fieldName(resolved, uint8(c.DefNum)),
			Units:       fieldUnits(resolved),
			Value:       value,
			RawValue:    rawCompValue,
		})
	}
	return out
}
