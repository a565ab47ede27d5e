package fitdecode

import "github.com/cespare/xxhash/v2"

const maxLocalMesgs = 16

// LocalMessageTable maps a local message number (0..15) to the
// DefinitionMessage currently registered for it. It is cleared at each file
// boundary; redefining an existing slot overwrites it, never merges.
type LocalMessageTable struct {
	slots [maxLocalMesgs]*DefinitionMessage
}

func (t *LocalMessageTable) reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
}

// Get returns the definition currently registered under localMesgNum, if
// any.
func (t *LocalMessageTable) Get(localMesgNum uint8) (*DefinitionMessage, bool) {
	if int(localMesgNum) >= len(t.slots) {
		return nil, false
	}
	d := t.slots[localMesgNum]
	return d, d != nil
}

// Set registers def under its own LocalMesgNum, overwriting any prior
// registration for the same slot, and reports whether doing so redefines a
// slot that previously held a structurally different definition (comparing
// Fingerprint, not deep-equaling field slices).
func (t *LocalMessageTable) Set(def *DefinitionMessage) (redefined bool) {
	prev := t.slots[def.LocalMesgNum]
	if prev != nil && prev.Fingerprint() != def.Fingerprint() {
		redefined = true
	}
	t.slots[def.LocalMesgNum] = def
	return redefined
}

// Fingerprint returns a cheap structural hash of d's field-def byte layout,
// computed lazily and cached on first call. Two definitions with the same
// fingerprint are extremely likely byte-identical redefinitions; it lets a
// reader skip a deep field-slice comparison when deciding whether a
// redefinition actually changed anything.
func (d *DefinitionMessage) Fingerprint() uint64 {
	if d.hasFingerprint {
		return d.fingerprint
	}

	h := xxhash.New()
	var hdr [4]byte
	hdr[0] = byte(d.GlobalMesgNum)
	hdr[1] = byte(d.GlobalMesgNum >> 8)
	hdr[2] = boolByte(d.LittleEndian)
	hdr[3] = boolByte(d.IsDeveloperData)
	_, _ = h.Write(hdr[:])

	for _, fd := range d.FieldDefs {
		_, _ = h.Write([]byte{fd.DefNum, fd.Size, fd.BaseType.ID})
	}
	for _, fd := range d.DevFieldDefs {
		_, _ = h.Write([]byte{fd.DefNum, fd.Size, fd.DevDataIndex})
	}

	d.fingerprint = h.Sum64()
	d.hasFingerprint = true
	return d.fingerprint
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
