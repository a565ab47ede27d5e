package fitdecode

const (
	compressedHeaderMask       = 0x80
	mesgDefinitionMask         = 0x40
	developerDataMask          = 0x20
	localMesgNumMask           = 0x0F
	compressedLocalMesgNumMask = 0x60
	compressedTimeOffsetMask   = 0x1F
)

// recordHeader is the decoded form of one record header byte (spec §4.4).
type recordHeader struct {
	isDefinition    bool
	isDeveloperData bool
	localMesgNum    uint8
	timeOffset      *uint8 // non-nil only for the compressed-timestamp form
}

func decodeRecordHeader(b byte) recordHeader {
	if b&compressedHeaderMask != 0 {
		off := b & compressedTimeOffsetMask
		return recordHeader{
			localMesgNum: (b & compressedLocalMesgNumMask) >> 5,
			timeOffset:   &off,
		}
	}
	return recordHeader{
		isDefinition:    b&mesgDefinitionMask != 0,
		isDeveloperData: b&developerDataMask != 0,
		localMesgNum:    b & localMesgNumMask,
	}
}
