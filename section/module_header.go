package section

import (
	"fmt"
	"strings"
	"time"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
)

// ModuleHeader is the fixed header preceding every module body.
//
// Two layouts exist. The original (v1) header is 51 bytes; instruments running
// EC-Lab 11.50 or later write a 59-byte header carrying an extra max-length
// field, detected by a 0xFFFFFFFF sentinel where the v1 length would sit.
type ModuleHeader struct {
	ShortName string // fixed 10-byte tag, space padded on disk
	LongName  string // fixed 25-byte description
	MaxLength uint32 // allocated body length, v2 headers only
	Length    uint32 // body byte count, excluding the header itself
	Version   uint32 // governs the body schema
	Date      string // acquisition date, e.g. "08/30/26"

	// HeaderSize is the on-disk header length (HeaderV1Size or HeaderV2Size).
	HeaderSize int
}

// ParseModuleHeader reads the "MODULE" tag and the following header from cur,
// leaving the cursor at the first body byte.
//
// Returns:
//   - ModuleHeader: Parsed header with trimmed names
//   - error: ErrCorruptModule if the tag is wrong, or ErrOutOfBounds on a
//     truncated header
func ParseModuleHeader(cur *cursor.Cursor) (ModuleHeader, error) {
	tag, err := cur.ReadASCII(ModuleTagSize)
	if err != nil {
		return ModuleHeader{}, err
	}
	if tag != ModuleTag {
		return ModuleHeader{}, fmt.Errorf("%w: expected %q tag at offset %d, found %q",
			errs.ErrCorruptModule, ModuleTag, cur.Pos()-ModuleTagSize, tag)
	}

	var hdr ModuleHeader

	shortName, err := cur.ReadASCII(ShortNameSize)
	if err != nil {
		return ModuleHeader{}, err
	}
	longName, err := cur.ReadASCII(LongNameSize)
	if err != nil {
		return ModuleHeader{}, err
	}
	hdr.ShortName = shortName
	hdr.LongName = strings.TrimRight(longName, " \x00")

	// Peek the u32 after the names: the v2 sentinel means this header carries
	// the extra max-length field.
	peek := cur.Fork()
	sentinel, err := peek.ReadUint32()
	if err != nil {
		return ModuleHeader{}, err
	}

	if sentinel == V2Sentinel {
		// v2 header: the sentinel occupies the max-length slot, followed by
		// length, version and a reserved u32.
		hdr.HeaderSize = HeaderV2Size
		if hdr.MaxLength, err = cur.ReadUint32(); err != nil {
			return ModuleHeader{}, err
		}
		if hdr.Length, err = cur.ReadUint32(); err != nil {
			return ModuleHeader{}, err
		}
		if hdr.Version, err = cur.ReadUint32(); err != nil {
			return ModuleHeader{}, err
		}
		if err = cur.Skip(4); err != nil {
			return ModuleHeader{}, err
		}
	} else {
		hdr.HeaderSize = HeaderV1Size
		if hdr.Length, err = cur.ReadUint32(); err != nil {
			return ModuleHeader{}, err
		}
		if hdr.Version, err = cur.ReadUint32(); err != nil {
			return ModuleHeader{}, err
		}
	}

	if hdr.Date, err = cur.ReadASCII(DateSize); err != nil {
		return ModuleHeader{}, err
	}
	hdr.Date = strings.TrimRight(hdr.Date, " \x00")

	return hdr, nil
}

// Name returns the short name without trailing padding.
func (h ModuleHeader) Name() string {
	return strings.TrimRight(h.ShortName, " \x00")
}

// vendorDateFormats are the date layouts observed across firmware builds.
var vendorDateFormats = []string{"01/02/06", "01-02-06", "01.02.06"}

// ParseDate parses a module header date, trying each of the vendor's formats.
func ParseDate(text string) (time.Time, error) {
	for _, layout := range vendorDateFormats {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q matches none of %v", errs.ErrBadDate, text, vendorDateFormats)
}
