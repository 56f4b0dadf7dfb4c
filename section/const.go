package section

// Byte-layout constants of the EC-Lab modular container. These positions and
// widths are format constants recovered by reverse engineering; any deviation
// is a compatibility break.
const (
	// FileMagic opens every .mpr file: the signature padded with spaces to 48
	// bytes, followed by four NUL bytes.
	FileMagic = "BIO-LOGIC MODULAR FILE\x1a                         \x00\x00\x00\x00"

	// FileMagicSize is the total magic length in bytes.
	FileMagicSize = 52

	// ModuleTag precedes every module header.
	ModuleTag = "MODULE"

	ModuleTagSize = 6
	ShortNameSize = 10
	LongNameSize  = 25
	DateSize      = 8
	HeaderV1Size  = 51 // shortname + longname + length + version + date
	HeaderV2Size  = 59 // v1 plus max-length and reserved fields

	// V2Sentinel fills the u32 after the module names in v2 headers, where a
	// v1 header would store its length.
	V2Sentinel = 0xFFFFFFFF
)

// Known module short names, space padded to ShortNameSize as stored on disk.
const (
	ModuleSettings = "VMP Set   "
	ModuleData     = "VMP data  "
	ModuleLog      = "VMP LOG   "
	ModuleLoop     = "VMP loop  "
)

// Data module body layout. The preamble is a u32 record count at offset 0 and
// a u8 column count at offset 4; the column ID array and the record region
// start depend on the module version.
const (
	DataCountOffset   = 0
	DataColumnsOffset = 4
	DataIDsOffset     = 5

	// Version 0 stores column IDs as single bytes when the byte at offset 5
	// is non-zero, and as (0, id) byte pairs otherwise. The reserved region
	// between the IDs and the records must be zero.
	DataRecordsOffsetV0       = 100
	DataRecordsOffsetV0Padded = 1007
	dataReservedEndV0Padded   = 1006

	// Versions 2 and 3 store column IDs as u16; version 3 shifts the record
	// region by one extra leading byte.
	DataRecordsOffsetV2 = 405
	DataRecordsOffsetV3 = 406
)

// Settings module body layout. The technique code is the first body byte; the
// parameter record region starts at a version-dependent offset with a u16
// record count.
const (
	SettingsTechniqueOffset = 0

	// Parameter region offsets: early settings module versions pack the
	// records right after the preamble, later versions leave room for the
	// expanded comment block.
	SettingsParamsOffsetV4   = 0x0005 // module version <= 4
	SettingsParamsOffsetV5Up = 0x0105
	settingsParamsVersionCut = 4
)

// SettingsParamsOffset returns the parameter region offset for a settings
// module version.
func SettingsParamsOffset(version uint32) int {
	if version <= settingsParamsVersionCut {
		return SettingsParamsOffsetV4
	}

	return SettingsParamsOffsetV5Up
}

// Log module body layout. The acquisition start timestamp is an OLE automation
// date (fractional days since 1899-12-30) whose position varies between
// instrument firmware builds; the known candidate offsets are probed in order
// and the first plausible value wins.
const (
	LogChannelOffset = 9
)

// LogTimestampOffsets are the known positions of the OLE start timestamp.
// No header field discriminates between them.
var LogTimestampOffsets = [...]int{465, 469, 473, 585}

// Plausibility window for the OLE timestamp, in days since 1899-12-30.
// 40000..50000 spans roughly 2009..2036.
const (
	OLETimestampMin = 40000
	OLETimestampMax = 50000
)

// Loop module body layout (version 0): a u32 count followed by u32 record
// indexes, zero padded at the tail.
const (
	LoopIndexesOffset = 4
)
