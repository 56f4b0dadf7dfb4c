package section

import (
	"fmt"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
)

// DataPreamble is the decoded head of the data module body: the declared
// record count, the column ID sequence describing the record layout, and the
// offset at which the fixed-stride record region starts.
type DataPreamble struct {
	RecordCount   uint32
	ColumnIDs     []uint16
	RecordsOffset int
}

// ParseDataPreamble decodes the data module preamble for the given module
// version.
//
// Three body layouts exist:
//   - version 0: column IDs as single bytes (or as (0, id) byte pairs in
//     older firmware), record region at a fixed offset past a zero-filled
//     reserved block
//   - version 2: column IDs as u16 values, record region at offset 405
//   - version 3: as version 2 with one extra leading byte (records at 406)
//
// Any other version fails with ErrUnsupportedVersion rather than guessing.
func ParseDataPreamble(body []byte, version uint32) (DataPreamble, error) {
	cur := cursor.New(body)

	count, err := cur.ReadUint32()
	if err != nil {
		return DataPreamble{}, err
	}
	nCols, err := cur.ReadUint8()
	if err != nil {
		return DataPreamble{}, err
	}

	pre := DataPreamble{RecordCount: count}

	switch version {
	case 0:
		return parseDataPreambleV0(cur, body, pre, int(nCols))
	case 2, 3:
		pre.ColumnIDs = make([]uint16, 0, nCols)
		for i := 0; i < int(nCols); i++ {
			id, err := cur.ReadUint16()
			if err != nil {
				return DataPreamble{}, err
			}
			pre.ColumnIDs = append(pre.ColumnIDs, id)
		}
		pre.RecordsOffset = DataRecordsOffsetV2
		if version == 3 {
			// Version 3 inserts one marker byte before the record region.
			pre.RecordsOffset = DataRecordsOffsetV3
		}
		if len(body) < pre.RecordsOffset {
			return DataPreamble{}, fmt.Errorf("%w: data module body of %d bytes is shorter than its %d byte preamble",
				errs.ErrCorruptModule, len(body), pre.RecordsOffset)
		}
		for i := cur.Pos(); i < DataRecordsOffsetV2; i++ {
			if body[i] != 0 {
				return DataPreamble{}, fmt.Errorf("%w: unexpected byte 0x%02x in reserved data preamble region at offset %d",
					errs.ErrCorruptModule, body[i], i)
			}
		}

		return pre, nil
	default:
		return DataPreamble{}, fmt.Errorf("%w: data module version %d", errs.ErrUnsupportedVersion, version)
	}
}

func parseDataPreambleV0(cur *cursor.Cursor, body []byte, pre DataPreamble, nCols int) (DataPreamble, error) {
	// Firmware 11.50+ writes plain byte IDs; older builds write (0, id)
	// pairs. A zero first byte distinguishes them.
	peek := cur.Fork()
	first, err := peek.ReadUint8()
	if err != nil {
		return DataPreamble{}, err
	}

	pre.ColumnIDs = make([]uint16, 0, nCols)
	if first != 0 {
		for i := 0; i < nCols; i++ {
			id, err := cur.ReadUint8()
			if err != nil {
				return DataPreamble{}, err
			}
			pre.ColumnIDs = append(pre.ColumnIDs, uint16(id))
		}
		pre.RecordsOffset = DataRecordsOffsetV0
	} else {
		for i := 0; i < nCols; i++ {
			if err := cur.Skip(1); err != nil {
				return DataPreamble{}, err
			}
			id, err := cur.ReadUint8()
			if err != nil {
				return DataPreamble{}, err
			}
			pre.ColumnIDs = append(pre.ColumnIDs, uint16(id))
		}
		// Skip the stray marker byte after the ID pairs.
		if err := cur.Skip(1); err != nil {
			return DataPreamble{}, err
		}
		pre.RecordsOffset = DataRecordsOffsetV0Padded
	}

	if len(body) < pre.RecordsOffset {
		return DataPreamble{}, fmt.Errorf("%w: data module body of %d bytes is shorter than its %d byte preamble",
			errs.ErrCorruptModule, len(body), pre.RecordsOffset)
	}

	// The reserved block between the IDs and the records must be zero filled;
	// anything else means an unseen layout variant.
	reservedEnd := pre.RecordsOffset
	if pre.RecordsOffset == DataRecordsOffsetV0Padded {
		reservedEnd = dataReservedEndV0Padded
	}
	for i := cur.Pos(); i < reservedEnd; i++ {
		if body[i] != 0 {
			return DataPreamble{}, fmt.Errorf("%w: unexpected byte 0x%02x in reserved data preamble region at offset %d",
				errs.ErrCorruptModule, body[i], i)
		}
	}

	return pre, nil
}
