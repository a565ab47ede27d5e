package fitdecode

import (
	"encoding/binary"
	"fmt"

	"github.com/polyvertex/fitdecode/internal/basetype"
	"github.com/polyvertex/fitdecode/profile"
)

// FieldDefinition is one entry of a DefinitionMessage's native field list.
type FieldDefinition struct {
	Field    *profile.Field // nil if DefNum is unknown to the profile catalogue
	DefNum   uint8
	BaseType basetype.Type
	Size     uint8
}

// DevFieldDefinition is one entry of a DefinitionMessage's developer field
// list.
type DevFieldDefinition struct {
	Field        *DevField
	DevDataIndex uint8
	DefNum       uint8
	Size         uint8
}

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// decodeDefinitionMessage parses a definition record body, following a
// record header already identified as a definition message.
func (r *Reader) decodeDefinitionMessage(rh recordHeader) (*DefinitionMessage, error) {
	offset := r.src.Offset()

	// reserved byte
	if _, err := r.readExact(1); err != nil {
		return nil, err
	}

	archb, err := r.readExact(1)
	if err != nil {
		return nil, err
	}
	littleEndian := archb[0] == 0

	gb, err := r.readExact(2)
	if err != nil {
		return nil, err
	}
	globalMesgNum := byteOrder(littleEndian).Uint16(gb)

	nb, err := r.readExact(1)
	if err != nil {
		return nil, err
	}
	numFields := int(nb[0])

	mesg, _ := profile.LookupMessage(int(globalMesgNum))
	var mesgName string
	if mesg != nil {
		mesgName = mesg.Name
	}

	def := &DefinitionMessage{
		IsDeveloperData: rh.isDeveloperData,
		LocalMesgNum:    rh.localMesgNum,
		TimeOffset:      rh.timeOffset,
		GlobalMesgNum:   globalMesgNum,
		MesgName:        mesgName,
		LittleEndian:    littleEndian,
	}

	def.FieldDefs = make([]FieldDefinition, numFields)
	for i := 0; i < numFields; i++ {
		fb, err := r.readExact(3)
		if err != nil {
			return nil, err
		}
		fd := FieldDefinition{
			DefNum:   fb[0],
			Size:     fb[1],
			BaseType: basetype.Lookup(fb[2]),
		}
		if fd.Size == 0 || int(fd.Size)%fd.BaseType.Size != 0 {
			return nil, &ParseError{
				Offset:  offset,
				Message: fmt.Sprintf("field %d: size %d is not a multiple of base type size %d", fd.DefNum, fd.Size, fd.BaseType.Size),
			}
		}
		if mesg != nil {
			fd.Field, _ = mesg.Field(int(fd.DefNum))
		}
		def.FieldDefs[i] = fd
	}

	if rh.isDeveloperData {
		ndb, err := r.readExact(1)
		if err != nil {
			return nil, err
		}
		numDevFields := int(ndb[0])
		def.DevFieldDefs = make([]DevFieldDefinition, numDevFields)
		for i := 0; i < numDevFields; i++ {
			fb, err := r.readExact(3)
			if err != nil {
				return nil, err
			}
			dfd := DevFieldDefinition{
				DefNum:       fb[0],
				Size:         fb[1],
				DevDataIndex: fb[2],
			}
			field, ok := r.devTypes.Lookup(dfd.DevDataIndex, dfd.DefNum)
			if !ok {
				return nil, &ParseError{
					Offset:  offset,
					Message: fmt.Sprintf("developer field {index=%d, def_num=%d} is not registered", dfd.DevDataIndex, dfd.DefNum),
				}
			}
			dfd.Field = field
			def.DevFieldDefs[i] = dfd
		}
	}

	r.seedAccumulators(def)
	def.Redefined = r.localMesgDefs.Set(def)

	return def, nil
}
