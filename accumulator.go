package fitdecode

import "github.com/polyvertex/fitdecode/profile"

// accumulatorKey identifies one per-file running accumulator: a component
// def_num scoped to the global message it belongs to.
type accumulatorKey struct {
	globalMesgNum uint16
	defNum        uint8
}

// AccumulatorTable holds the per-file running values used to reconstruct
// higher-precision counters from low-bit deltas (compressed timestamps and
// accumulating components both use it). Lifetime is one file.
type AccumulatorTable struct {
	values map[accumulatorKey]uint32
}

func newAccumulatorTable() *AccumulatorTable {
	return &AccumulatorTable{values: make(map[accumulatorKey]uint32)}
}

func (a *AccumulatorTable) reset() {
	a.values = make(map[accumulatorKey]uint32)
}

// Seed sets the accumulator for (globalMesgNum, defNum) to 0 if it doesn't
// already exist, per spec §4.5 ("seed the per-file accumulator... to 0").
func (a *AccumulatorTable) Seed(globalMesgNum uint16, defNum uint8) {
	key := accumulatorKey{globalMesgNum, defNum}
	if _, ok := a.values[key]; !ok {
		a.values[key] = 0
	}
}

// Accumulate reconstructs a higher-precision value from raw (a numBits-wide
// delta) and the previous accumulated value for (globalMesgNum, defNum),
// per spec §4.8, then stores the result back into the table.
func (a *AccumulatorTable) Accumulate(globalMesgNum uint16, defNum uint8, raw uint32, numBits uint) uint32 {
	key := accumulatorKey{globalMesgNum, defNum}
	base := accumulate(raw, a.values[key], numBits)
	a.values[key] = base
	return base
}

// seedAccumulators implements spec §4.5: for every profile-known field of
// def (native or subfield) that declares accumulating components, seed
// those components' accumulators to 0 if they don't already have a value.
func (r *Reader) seedAccumulators(def *DefinitionMessage) {
	seedField := func(f *profile.Field) {
		for _, c := range f.Components {
			if c.Accumulate {
				r.accumulators.Seed(def.GlobalMesgNum, uint8(c.DefNum))
			}
		}
	}
	for _, fd := range def.FieldDefs {
		if fd.Field == nil {
			continue
		}
		seedField(fd.Field)
		for _, sub := range fd.Field.Subfields {
			seedField(sub)
		}
	}
}

// accumulate implements the reconstruction formula of spec §4.8: given a
// numBits-wide raw delta and the previous full-precision accumulator value,
// it returns the nearest value >= the previous one whose low numBits bits
// equal raw.
func accumulate(raw, accum uint32, numBits uint) uint32 {
	maxValue := uint32(1) << numBits
	maxMask := maxValue - 1

	base := raw + (accum &^ maxMask)
	if raw < (accum & maxMask) {
		base += maxValue
	}
	return base
}
