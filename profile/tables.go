package profile

import "github.com/polyvertex/fitdecode/internal/basetype"

// Global message numbers. These are protocol identifiers defined by the FIT
// SDK, not implementation choices — any FIT-aware tool agrees on them.
const (
	MesgNumFileId           = 0
	MesgNumRecord           = 20
	MesgNumEvent            = 21
	MesgNumDeviceInfo       = 23
	MesgNumHr               = 132
	MesgNumFieldDescription = 206
	MesgNumDeveloperDataId  = 207
)

// FieldNumTimestamp is the def_num FIT reserves, by convention, for the
// "timestamp" field present on most periodic messages (record, event, hr,
// device_info, ...). spec.md §4.6 bookkeeping step keys off this constant.
const FieldNumTimestamp = 253

// HR message field numbers referenced by the compressed-timestamp-style
// accumulating component special case in spec.md §4.6/§9.
const (
	FieldNumHREventTimestamp   = 9
	FieldNumHREventTimestamp12 = 10
)

// field_description message field numbers.
const (
	FieldNumDevDataIndex        = 0
	FieldNumDevFieldDefNum      = 1
	FieldNumDevBaseTypeID       = 2
	FieldNumDevFieldName        = 3
	FieldNumDevUnits            = 8
	FieldNumDevNativeMesgNum    = 14
	FieldNumDevNativeFieldNum   = 15
	FieldNumDevDataIndexInDDIDm = 3 // developer_data_id.developer_data_index
	FieldNumDevAppIDInDDIDMsg   = 0 // developer_data_id.application_id
)

var (
	typeDateTime = FieldType{Name: "date_time", Base: basetype.UInt32}
	typeUint8    = FieldType{Name: "uint8", Base: basetype.UInt8}
	typeUint8z   = FieldType{Name: "uint8z", Base: basetype.UInt8z}
	typeUint16   = FieldType{Name: "uint16", Base: basetype.UInt16}
	typeUint32   = FieldType{Name: "uint32", Base: basetype.UInt32}
	typeUint32z  = FieldType{Name: "uint32z", Base: basetype.UInt32z}
	typeSint32   = FieldType{Name: "sint32", Base: basetype.SInt32}
	typeString   = FieldType{Name: "string", Base: basetype.String}
	typeByte     = FieldType{Name: "byte", Base: basetype.Byte}
)

var fileTypeEnum = FieldType{
	Name: "file",
	Base: basetype.Enum,
	Values: map[int64]string{
		1: "device", 2: "settings", 3: "sport", 4: "activity", 5: "workout",
		6: "course", 7: "schedules", 9: "weight", 10: "totals", 11: "goals",
		14: "blood_pressure", 15: "monitoring_a", 20: "activity_summary",
		28: "monitoring_daily", 32: "monitoring_b", 34: "segment",
		35: "segment_list",
	},
}

var manufacturerEnum = FieldType{
	Name: "manufacturer",
	Base: basetype.UInt16,
	Values: map[int64]string{
		1: "garmin", 13: "wahoo_fitness", 15: "dynastream", 23: "timex",
		32: "suunto", 37: "polar", 89: "zwift", 255: "dynastream_oem",
	},
}

var garminProductEnum = FieldType{
	Name: "garmin_product",
	Base: basetype.UInt16,
	Values: map[int64]string{
		1036: "edge500", 1561: "edge810", 2067: "fenix3", 2884: "edge1000",
		3589: "fenix5", 3990: "edge820",
	},
}

var eventEnum = FieldType{
	Name: "event",
	Base: basetype.Enum,
	Values: map[int64]string{
		0: "timer", 3: "workout", 4: "workout_step", 8: "session", 9: "lap",
		11: "battery", 26: "activity", 27: "fitness_equipment", 33: "sport_point",
	},
}

var eventTypeEnum = FieldType{
	Name: "event_type",
	Base: basetype.Enum,
	Values: map[int64]string{
		0: "start", 1: "stop", 3: "marker", 4: "stop_all", 7: "sync",
	},
}

var timerTriggerEnum = FieldType{
	Name: "timer_trigger",
	Base: basetype.Enum,
	Values: map[int64]string{
		0: "manual", 1: "auto", 2: "fitness_equipment",
	},
}

func eventDataField() *Field {
	return &Field{
		DefNum: 3,
		Name:   "data",
		Type:   typeUint32,
		Subfields: []*Field{
			{
				DefNum:    3,
				Name:      "timer_trigger",
				Type:      timerTriggerEnum,
				RefFields: []RefField{{DefNum: 0, RawValue: 0}}, // event == timer
			},
			{
				DefNum: 3,
				Name:   "sport_point",
				Type:   typeUint32,
				Components: WithComponents(
					Component{DefNum: 7, Bits: 16},
					Component{DefNum: 8, Bits: 16},
				),
				RefFields: []RefField{{DefNum: 0, RawValue: 33}}, // event == sport_point
			},
		},
	}
}

var messagesByNum = map[int]*Message{
	MesgNumFileId: {
		GlobalNum: MesgNumFileId,
		Name:      "file_id",
		Fields: map[int]*Field{
			0: {DefNum: 0, Name: "type", Type: fileTypeEnum},
			1: {DefNum: 1, Name: "manufacturer", Type: manufacturerEnum},
			2: {DefNum: 2, Name: "product", Type: garminProductEnum},
			3: {DefNum: 3, Name: "serial_number", Type: typeUint32z},
			4: {DefNum: 4, Name: "time_created", Type: typeDateTime},
			5: {DefNum: 5, Name: "number", Type: typeUint16},
		},
	},
	MesgNumRecord: {
		GlobalNum: MesgNumRecord,
		Name:      "record",
		Fields: map[int]*Field{
			FieldNumTimestamp: {DefNum: FieldNumTimestamp, Name: "timestamp", Type: typeDateTime},
			0:                 {DefNum: 0, Name: "position_lat", Type: typeSint32, Units: "semicircles"},
			1:                 {DefNum: 1, Name: "position_long", Type: typeSint32, Units: "semicircles"},
			3:                 {DefNum: 3, Name: "heart_rate", Type: typeUint8, Units: "bpm"},
			4:                 {DefNum: 4, Name: "cadence", Type: typeUint8, Units: "rpm"},
			5:                 {DefNum: 5, Name: "distance", Type: typeUint32, Scale: 100, Units: "m"},
			6:                 {DefNum: 6, Name: "speed", Type: typeUint16, Scale: 1000, Units: "m/s"},
			7:                 {DefNum: 7, Name: "power", Type: typeUint16, Units: "watts"},
			73:                {DefNum: 73, Name: "enhanced_speed", Type: typeUint32, Scale: 1000, Units: "m/s"},
		},
	},
	MesgNumEvent: {
		GlobalNum: MesgNumEvent,
		Name:      "event",
		Fields: map[int]*Field{
			0: {DefNum: 0, Name: "event", Type: eventEnum},
			1: {DefNum: 1, Name: "event_type", Type: eventTypeEnum},
			2: {DefNum: 2, Name: "data16", Type: typeUint16},
			3: eventDataField(),
			4: {DefNum: 4, Name: "event_group", Type: typeUint8},
			7: {DefNum: 7, Name: "score", Type: typeUint16},
			8: {DefNum: 8, Name: "opponent_score", Type: typeUint16},
		},
	},
	MesgNumDeviceInfo: {
		GlobalNum: MesgNumDeviceInfo,
		Name:      "device_info",
		Fields: map[int]*Field{
			FieldNumTimestamp: {DefNum: FieldNumTimestamp, Name: "timestamp", Type: typeDateTime},
			0:                 {DefNum: 0, Name: "device_index", Type: typeUint8},
			2:                 {DefNum: 2, Name: "manufacturer", Type: manufacturerEnum},
			3:                 {DefNum: 3, Name: "serial_number", Type: typeUint32z},
			4:                 {DefNum: 4, Name: "product", Type: garminProductEnum},
		},
	},
	MesgNumHr: {
		GlobalNum: MesgNumHr,
		Name:      "hr",
		Fields: map[int]*Field{
			0: {DefNum: 0, Name: "fractional_timestamp", Type: typeUint16, Scale: 32768},
			1: {DefNum: 1, Name: "time256", Type: typeUint8, Scale: 256},
			FieldNumHREventTimestamp: {
				DefNum: FieldNumHREventTimestamp, Name: "event_timestamp", Type: typeUint32, Scale: 1024,
			},
			FieldNumHREventTimestamp12: {
				DefNum: FieldNumHREventTimestamp12, Name: "event_timestamp_12", Type: typeUint16,
				Components: WithComponents(
					Component{DefNum: FieldNumHREventTimestamp, Bits: 12, Accumulate: true},
				),
			},
		},
	},
	MesgNumFieldDescription: {
		GlobalNum: MesgNumFieldDescription,
		Name:      "field_description",
		Fields: map[int]*Field{
			FieldNumDevDataIndex:      {DefNum: FieldNumDevDataIndex, Name: "developer_data_index", Type: typeUint8},
			FieldNumDevFieldDefNum:    {DefNum: FieldNumDevFieldDefNum, Name: "field_definition_number", Type: typeUint8},
			FieldNumDevBaseTypeID:     {DefNum: FieldNumDevBaseTypeID, Name: "fit_base_type_id", Type: typeUint8},
			FieldNumDevFieldName:      {DefNum: FieldNumDevFieldName, Name: "field_name", Type: typeString},
			FieldNumDevUnits:          {DefNum: FieldNumDevUnits, Name: "units", Type: typeString},
			FieldNumDevNativeMesgNum:  {DefNum: FieldNumDevNativeMesgNum, Name: "native_mesg_num", Type: typeUint16},
			FieldNumDevNativeFieldNum: {DefNum: FieldNumDevNativeFieldNum, Name: "native_field_num", Type: typeUint8},
		},
	},
	MesgNumDeveloperDataId: {
		GlobalNum: MesgNumDeveloperDataId,
		Name:      "developer_data_id",
		Fields: map[int]*Field{
			FieldNumDevAppIDInDDIDMsg:   {DefNum: FieldNumDevAppIDInDDIDMsg, Name: "application_id", Type: typeByte, Array: true},
			FieldNumDevDataIndexInDDIDm: {DefNum: FieldNumDevDataIndexInDDIDm, Name: "developer_data_index", Type: typeUint8},
		},
	},
}
