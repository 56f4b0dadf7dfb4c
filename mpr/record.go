package mpr

import (
	"fmt"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/schema"
)

// decodeRecords iterates the fixed-stride record region, applying the schema
// to each stride with a fresh cursor windowed to that record.
//
// The declared record count and the region length must agree with the schema
// stride. A region shorter than declared is a recoverable truncation (the
// instrument was interrupted mid-write): all complete rows are returned with
// an ErrTruncatedRecord warning. A region longer than declared, or one whose
// tail is not explained by truncation, means the schema disagrees with the
// file's actual stride and fails with ErrSchemaStrideMismatch.
func decodeRecords(region []byte, sch *schema.Schema, declared uint32, module string, regionOffset int) ([]DataRow, []Warning, error) {
	stride := sch.Stride()
	if stride == 0 {
		if len(region) > 0 {
			return nil, nil, sch.ValidateStride(len(region))
		}

		return []DataRow{}, nil, nil
	}

	whole := len(region) / stride
	rem := len(region) % stride

	var warnings []Warning
	count := int(declared)

	switch {
	case whole > count, whole == count && rem != 0:
		// More bytes than count*stride: the resolved widths cannot match the
		// stride the instrument actually wrote.
		observed := len(region)
		if count > 0 {
			observed = len(region) / count
		}

		return nil, nil, fmt.Errorf("data module record region: %w", errorStride(sch, observed))
	case whole < count:
		warnings = append(warnings, Warning{
			Err:    errs.ErrTruncatedRecord,
			Module: module,
			Offset: regionOffset + whole*stride,
			Detail: fmt.Sprintf("%d records declared, %d complete records present (%d trailing bytes)", count, whole, rem),
		})
		count = whole
	}

	rows := make([]DataRow, 0, count)
	for i := 0; i < count; i++ {
		row, err := decodeRecord(region[i*stride:(i+1)*stride], sch)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d at offset %d: %w", i, regionOffset+i*stride, err)
		}
		rows = append(rows, row)
	}

	return rows, warnings, nil
}

func errorStride(sch *schema.Schema, observed int) error {
	if err := sch.ValidateStride(observed); err != nil {
		return err
	}

	// Widths match the implied stride but the region length still disagrees
	// with the declared count; report it as the same class of corruption.
	return fmt.Errorf("%w: record region length disagrees with declared record count", errs.ErrSchemaStrideMismatch)
}

// decodeRecord decodes one stride into a row, applying each column's decode
// rule in schema order.
func decodeRecord(stride []byte, sch *schema.Schema) (DataRow, error) {
	cur := cursor.New(stride)
	row := DataRow{Cells: make([]Value, 0, len(sch.Columns))}

	for _, col := range sch.Columns {
		switch col.Kind {
		case format.KindUint:
			v, err := readUint(cur, col.Width)
			if err != nil {
				return DataRow{}, err
			}
			row.Cells = append(row.Cells, Value{Kind: ValueUint, U: v})

		case format.KindFloat:
			v, err := readFloat(cur, col.Width)
			if err != nil {
				return DataRow{}, err
			}
			row.Cells = append(row.Cells, Value{Kind: ValueFloat, F: v})

		case format.KindFixed:
			raw, err := readInt(cur, col.Width)
			if err != nil {
				return DataRow{}, err
			}
			row.Cells = append(row.Cells, Value{Kind: ValueFloat, F: float64(raw)*col.Scale + col.Offset})

		case format.KindFlags:
			raw, err := cur.ReadUint8()
			if err != nil {
				return DataRow{}, err
			}
			row.Cells = append(row.Cells, Value{Kind: ValueUint, U: uint64(raw)})
			row.Flags = unpackFlags(raw, sch.Flags)

		default:
			return DataRow{}, fmt.Errorf("column %q: unhandled decode kind %s", col.Name, col.Kind)
		}
	}

	return row, nil
}

// unpackFlags extracts each named sub-field from the packed flag byte via
// mask and shift.
func unpackFlags(raw uint8, flags []schema.Flag) []FlagValue {
	out := make([]FlagValue, 0, len(flags))
	for _, f := range flags {
		out = append(out, FlagValue{
			Name:  f.Name,
			Value: (raw & f.Mask) >> f.Shift(),
		})
	}

	return out
}

func readUint(cur *cursor.Cursor, width int) (uint64, error) {
	switch width {
	case 1:
		v, err := cur.ReadUint8()
		return uint64(v), err
	case 2:
		v, err := cur.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := cur.ReadUint32()
		return uint64(v), err
	case 8:
		return cur.ReadUint64()
	default:
		return 0, fmt.Errorf("unsupported uint width %d", width)
	}
}

func readInt(cur *cursor.Cursor, width int) (int64, error) {
	switch width {
	case 1:
		v, err := cur.ReadInt8()
		return int64(v), err
	case 2:
		v, err := cur.ReadInt16()
		return int64(v), err
	case 4:
		v, err := cur.ReadInt32()
		return int64(v), err
	case 8:
		return cur.ReadInt64()
	default:
		return 0, fmt.Errorf("unsupported int width %d", width)
	}
}

func readFloat(cur *cursor.Cursor, width int) (float64, error) {
	switch width {
	case 4:
		v, err := cur.ReadFloat32()
		return float64(v), err
	case 8:
		return cur.ReadFloat64()
	default:
		return 0, fmt.Errorf("unsupported float width %d", width)
	}
}
