package mpr

import (
	"math"
	"testing"

	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/schema"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordFixedPoint(t *testing.T) {
	// Fixed-point columns decode as raw*scale+offset; the raw integer must be
	// recoverable exactly from the decoded value.
	sch := &schema.Schema{
		Columns: []schema.Column{
			{Name: "range", Kind: format.KindFixed, Width: 2, Scale: 0.01},
			{Name: "bias", Kind: format.KindFixed, Width: 4, Scale: 0.5, Offset: -10},
		},
	}

	for _, raw := range []int16{-3000, -1, 0, 1, 42, 3000} {
		stride := engine.AppendUint32(engine.AppendUint16(nil, uint16(raw)), uint32(int32(raw)))

		row, err := decodeRecord(stride, sch)
		require.NoError(t, err)
		require.Len(t, row.Cells, 2)

		require.Equal(t, int16(math.Round(row.Cells[0].F/0.01)), raw)
		require.Equal(t, int16(math.Round((row.Cells[1].F+10)/0.5)), raw)
	}
}

func TestDecodeRecordFlagUnpacking(t *testing.T) {
	sch := &schema.Schema{
		Columns: []schema.Column{
			{Name: "flags", Kind: format.KindFlags, Width: 1},
		},
		Flags: []schema.Flag{
			{Name: "A", Mask: 0x01},
			{Name: "B", Mask: 0x02},
			{Name: "C", Mask: 0x04},
			{Name: "mode", Mask: 0x60},
		},
	}

	row, err := decodeRecord([]byte{0x45}, sch) // 0b0100_0101
	require.NoError(t, err)

	// The packed byte itself is kept as the cell value.
	require.Equal(t, uint64(0x45), row.Cells[0].U)

	expected := map[string]uint8{"A": 1, "B": 0, "C": 1, "mode": 2}
	for name, want := range expected {
		got, ok := row.Flag(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}
}

func TestDecodeRecordsEmptyRegion(t *testing.T) {
	sch := &schema.Schema{
		Columns: []schema.Column{{Name: "flags", Kind: format.KindFlags, Width: 1}},
	}

	rows, warnings, err := decodeRecords(nil, sch, 0, "VMP data", 0)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.Empty(t, warnings)
}
