// Package profile is the external collaborator spec.md places out of
// scope: the static table of global message numbers, their named fields,
// subfields and bit-packed components. A real deployment generates this
// package from Garmin's published Profile.xlsx; this one is hand-authored
// and covers only the messages the core decoder's algorithms are exercised
// against (file_id, record, event, hr, device_info, developer_data_id,
// field_description).
//
// profile never imports the root fitdecode package — it trades in plain
// int64/string values, not fitdecode.Value — so the core can import profile
// without a cycle. data.go is responsible for lifting profile's output into
// Value.
package profile

import "github.com/polyvertex/fitdecode/internal/basetype"

// FieldType names the semantic interpretation of a field's decoded value,
// independent of its wire base type: it drives both enum rendering here and
// the data processor's per-type hook dispatch (spec.md §4.9).
type FieldType struct {
	Name string
	Base basetype.Type
	// Values maps a raw integer to its enum name. Nil for non-enum types.
	Values map[int64]string
}

// Render maps a raw integer through this FieldType's enum table, if it has
// one. ok is true only when an enum name was found; callers fall back to
// the raw value otherwise.
func (t FieldType) Render(raw int64) (name string, ok bool) {
	if t.Values == nil {
		return "", false
	}
	name, ok = t.Values[raw]
	return name, ok
}

// RefField is one of a Subfield's activation conditions: it fires when the
// sibling field def_num carried raw value RawValue in the same message.
type RefField struct {
	DefNum   int
	RawValue int64
}

// Component is a sub-field packed bitwise inside a parent field's raw
// value. BitOffset is the cumulative bit offset of this component within
// the parent's raw integer, computed by WithComponents from declaration
// order so call sites never have to track it by hand.
type Component struct {
	DefNum     int // def_num of the sibling Field this component renders through
	Bits       int
	BitOffset  int
	Accumulate bool
	Scale      float64
	Offset     float64
}

// WithComponents assigns sequential BitOffsets to comps, starting at bit 0,
// in the order given — the layout FIT itself uses for packed fields.
func WithComponents(comps ...Component) []Component {
	offset := 0
	out := make([]Component, len(comps))
	for i, c := range comps {
		c.BitOffset = offset
		out[i] = c
		offset += c.Bits
	}
	return out
}

// Field describes one profile-known field of a Message: its semantic type,
// scale/offset, units, and any components or subfields it carries. A
// Subfield is represented as a *Field with RefFields populated.
type Field struct {
	DefNum     int
	Name       string
	Type       FieldType
	Scale      float64
	Offset     float64
	Units      string
	Array      bool
	Components []Component
	Subfields  []*Field
	RefFields  []RefField // non-nil only when this Field is itself a subfield
}

// Message describes one profile-known FIT message: its global number, name
// and the fields it carries, keyed by field definition number.
type Message struct {
	GlobalNum int
	Name      string
	Fields    map[int]*Field
}

// Field looks up one of m's fields by definition number.
func (m *Message) Field(defNum int) (*Field, bool) {
	f, ok := m.Fields[defNum]
	return f, ok
}

// LookupMessage returns the profile-known message for globalNum, if any.
func LookupMessage(globalNum int) (*Message, bool) {
	m, ok := messagesByNum[globalNum]
	return m, ok
}
