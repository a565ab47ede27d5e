package fitdecode

import (
	"strings"
	"time"
)

// fitUTCReference is the FIT epoch: seconds since the Unix epoch for
// 1989-12-31T00:00:00Z.
const fitUTCReference = 631065600

// Processor is the pluggable post-decode hook collaborator (spec §4.9). A
// Reader dispatches, per DataMessage, one ProcessType/ProcessField/
// ProcessUnit call for each of its FieldData entries (in that order, per
// field), then a single ProcessMessage call. A nil Processor disables hooks
// entirely.
type Processor interface {
	// OnHeader is called once a FileHeader has been decoded.
	OnHeader(h *FileHeader)
	// OnCrc is called once a Crc footer has been decoded.
	OnCrc(c *Crc)
	// ProcessType applies type-level semantics (date_time, bool, ...) to fd.
	ProcessType(fd *FieldData)
	// ProcessField applies field-name-keyed semantics to fd.
	ProcessField(fd *FieldData)
	// ProcessUnit applies unit-keyed semantics to fd.
	ProcessUnit(fd *FieldData)
	// ProcessMessage is called once per DataMessage, after every FieldData
	// has gone through ProcessType/ProcessField/ProcessUnit.
	ProcessMessage(msg *DataMessage)
}

type typeHandler func(fd *FieldData)

// DefaultDataProcessor implements the baseline type-hook conversions spec
// §4.9 requires of any FIT decoder: date_time/local_date_time fields become
// UTC timestamps, localtime_into_day fields become a (h, m, s) tuple, and
// bool fields become actual booleans. Field- and unit-level hooks are
// no-ops; StandardUnitsDataProcessor layers those on top.
type DefaultDataProcessor struct {
	typeHandlers map[string]typeHandler
}

// NewDefaultProcessor returns a DefaultDataProcessor with its type-handler
// dispatch table built once, ahead of any decoding.
func NewDefaultProcessor() *DefaultDataProcessor {
	p := &DefaultDataProcessor{}
	p.typeHandlers = map[string]typeHandler{
		"date_time":          p.handleDateTime,
		"local_date_time":    p.handleDateTime,
		"localtime_into_day": p.handleLocalTimeIntoDay,
		"bool":               p.handleBool,
	}
	return p
}

func (p *DefaultDataProcessor) OnHeader(*FileHeader) {}
func (p *DefaultDataProcessor) OnCrc(*Crc)           {}

func (p *DefaultDataProcessor) ProcessType(fd *FieldData) {
	if fd.Field == nil || fd.Field.Type.Name == "" {
		return
	}
	if h, ok := p.typeHandlers[fd.Field.Type.Name]; ok {
		h(fd)
	}
}

func (p *DefaultDataProcessor) ProcessField(*FieldData)     {}
func (p *DefaultDataProcessor) ProcessUnit(*FieldData)      {}
func (p *DefaultDataProcessor) ProcessMessage(*DataMessage) {}

// handleDateTime implements spec §4.9's date_time/local_date_time
// conversion: raw values below 0x10000000 are treated as relative seconds,
// not absolute FIT timestamps, and are left untouched.
func (p *DefaultDataProcessor) handleDateTime(fd *FieldData) {
	raw, ok := fd.RawValue.AsUint64()
	if !ok || raw < 0x10000000 {
		return
	}
	fd.Value = TimeValue(time.Unix(int64(raw)+fitUTCReference, 0).UTC())
	fd.Units = ""
}

func (p *DefaultDataProcessor) handleLocalTimeIntoDay(fd *FieldData) {
	raw, ok := fd.RawValue.AsUint64()
	if !ok {
		return
	}
	secs := raw % 86400
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	fd.Value = TupleValue([]Value{UintValue(h), UintValue(m), UintValue(s)})
	fd.Units = ""
}

func (p *DefaultDataProcessor) handleBool(fd *FieldData) {
	i, ok := fd.Value.AsInt64()
	if !ok {
		return
	}
	fd.Value = BoolValue(i != 0)
}

// StandardUnitsDataProcessor layers human-friendly unit conversions on top
// of DefaultDataProcessor: *_speed fields to km/h, distance to km, and
// semicircles-unit fields to degrees. Grounded on the original decoder's
// StandardUnitsDataProcessor.
type StandardUnitsDataProcessor struct {
	*DefaultDataProcessor
}

// NewStandardUnitsProcessor returns a StandardUnitsDataProcessor.
func NewStandardUnitsProcessor() *StandardUnitsDataProcessor {
	return &StandardUnitsDataProcessor{DefaultDataProcessor: NewDefaultProcessor()}
}

func (p *StandardUnitsDataProcessor) ProcessField(fd *FieldData) {
	name := fd.Name
	switch {
	case strings.HasSuffix(name, "_speed"):
		if f, ok := fd.Value.AsFloat64(); ok {
			fd.Value = FloatValue(f * 3600 / 1000)
			fd.Units = "km/h"
		}
	case name == "distance":
		if f, ok := fd.Value.AsFloat64(); ok {
			fd.Value = FloatValue(f / 1000)
			fd.Units = "km"
		}
	}
}

func (p *StandardUnitsDataProcessor) ProcessUnit(fd *FieldData) {
	if fd.Units != "semicircles" {
		return
	}
	if f, ok := fd.Value.AsFloat64(); ok {
		fd.Value = FloatValue(f * (180.0 / 2147483648.0))
		fd.Units = "deg"
	}
}
