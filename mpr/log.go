package mpr

import (
	"fmt"
	"strings"
	"time"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/section"
)

// oleEpoch is the zero point of OLE automation dates.
var oleEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// decodeLog decodes the log module body: channel number, the acquisition
// start timestamp and the trailing operator comment.
//
// The timestamp position varies between firmware builds with no
// discriminating header field, so the known candidate offsets are probed in
// order and the first plausible value wins.
func decodeLog(body []byte) (*LogInfo, error) {
	if len(body) <= section.LogChannelOffset {
		return nil, fmt.Errorf("%w: body of %d bytes has no channel field", errs.ErrCorruptLog, len(body))
	}

	info := &LogInfo{Channel: body[section.LogChannelOffset]}

	tsOffset := -1
	for _, offset := range section.LogTimestampOffsets {
		cur, err := cursor.NewAt(body, offset)
		if err != nil {
			continue
		}
		days, err := cur.ReadFloat64()
		if err != nil {
			continue
		}
		if days > section.OLETimestampMin && days < section.OLETimestampMax {
			info.StartTime = oleTime(days)
			tsOffset = offset

			break
		}
	}
	if tsOffset < 0 {
		return nil, fmt.Errorf("%w: no plausible timestamp at any of the known offsets %v",
			errs.ErrCorruptLog, section.LogTimestampOffsets)
	}

	info.Comment = trailingComment(body[tsOffset+8:])

	return info, nil
}

// oleTime converts an OLE automation date (fractional days since 1899-12-30)
// to a time.Time.
func oleTime(days float64) time.Time {
	return oleEpoch.Add(time.Duration(days * float64(24*time.Hour)))
}

// trailingComment extracts the first printable ASCII run of meaningful length
// after the timestamp block. The comment region has no length field; the run
// heuristic matches how the vendor zero-pads the remainder of the module.
func trailingComment(tail []byte) string {
	const minRun = 4

	start := -1
	for i, b := range tail {
		printable := b >= 0x20 && b <= 0x7E
		if printable && start < 0 {
			start = i
		}
		if !printable && start >= 0 {
			if i-start >= minRun {
				return strings.Trim(string(tail[start:i]), " ")
			}
			start = -1
		}
	}
	if start >= 0 && len(tail)-start >= minRun {
		return strings.Trim(string(tail[start:]), " ")
	}

	return ""
}

// decodeLoop decodes the loop module body: the u32 record indexes at which
// each loop started, zero padded at the tail.
func decodeLoop(body []byte, version uint32) (*LoopInfo, error) {
	if version != 0 {
		return nil, fmt.Errorf("%w: loop module version %d", errs.ErrUnsupportedVersion, version)
	}

	cur, err := cursor.NewAt(body, section.LoopIndexesOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: body of %d bytes has no index array", errs.ErrCorruptLoop, len(body))
	}

	indexes := make([]uint32, 0, cur.Remaining()/4)
	for cur.Remaining() >= 4 {
		v, err := cur.ReadUint32()
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, v)
	}

	// Trim the zero padding at the tail.
	end := len(indexes)
	for end > 0 && indexes[end-1] == 0 {
		end--
	}

	return &LoopInfo{Indexes: indexes[:end]}, nil
}
