package fitdecode

import "github.com/polyvertex/fitdecode/profile"

// resolveSubfield implements spec §4.7: scan field's subfields in
// declaration order; the first one with any ref_field matching a
// (def_num, raw_value) pair observed among the message's native fields
// wins. rawValues maps native field def_num to its freshly decoded signed
// raw value (enough precision for every FIT base type up to uint32).
//
// It returns (resolved, parent): resolved is the subfield when one matched,
// otherwise field itself; parent is non-nil only when a subfield matched.
func resolveSubfield(field *profile.Field, rawValues map[uint8]int64) (resolved, parent *profile.Field) {
	if field == nil || len(field.Subfields) == 0 {
		return field, nil
	}

	for _, sub := range field.Subfields {
		for _, ref := range sub.RefFields {
			if got, ok := rawValues[uint8(ref.DefNum)]; ok && got == ref.RawValue {
				return sub, field
			}
		}
	}
	return field, nil
}
