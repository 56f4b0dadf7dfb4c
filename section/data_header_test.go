package section

import (
	"testing"

	"github.com/echemdata/galvani/endian"
	"github.com/echemdata/galvani/errs"
	"github.com/stretchr/testify/require"
)

func dataBody(count uint32, ids []byte, recordsOffset int) []byte {
	engine := endian.GetLittleEndianEngine()

	body := engine.AppendUint32(nil, count)
	body = append(body, uint8(0)) // column count placeholder
	body = append(body, ids...)
	for len(body) < recordsOffset {
		body = append(body, 0)
	}

	return body
}

func TestParseDataPreambleV0(t *testing.T) {
	body := dataBody(42, []byte{4, 6, 8}, DataRecordsOffsetV0)
	body[DataColumnsOffset] = 3

	pre, err := ParseDataPreamble(body, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(42), pre.RecordCount)
	require.Equal(t, []uint16{4, 6, 8}, pre.ColumnIDs)
	require.Equal(t, DataRecordsOffsetV0, pre.RecordsOffset)
}

func TestParseDataPreambleV0Padded(t *testing.T) {
	// Older firmware writes (0, id) byte pairs and a wider reserved block.
	body := dataBody(7, []byte{0, 1, 0, 3, 0, 174}, DataRecordsOffsetV0Padded)
	body[DataColumnsOffset] = 3

	pre, err := ParseDataPreamble(body, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(7), pre.RecordCount)
	require.Equal(t, []uint16{1, 3, 174}, pre.ColumnIDs)
	require.Equal(t, DataRecordsOffsetV0Padded, pre.RecordsOffset)
}

func TestParseDataPreambleV2V3(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	ids := engine.AppendUint16(nil, 4)
	ids = engine.AppendUint16(ids, 6)
	ids = engine.AppendUint16(ids, 212)

	t.Run("version 2", func(t *testing.T) {
		body := dataBody(100, ids, DataRecordsOffsetV2)
		body[DataColumnsOffset] = 3

		pre, err := ParseDataPreamble(body, 2)
		require.NoError(t, err)
		require.Equal(t, uint32(100), pre.RecordCount)
		require.Equal(t, []uint16{4, 6, 212}, pre.ColumnIDs)
		require.Equal(t, DataRecordsOffsetV2, pre.RecordsOffset)
	})

	t.Run("version 3", func(t *testing.T) {
		body := dataBody(100, ids, DataRecordsOffsetV3)
		body[DataColumnsOffset] = 3
		body[DataRecordsOffsetV2] = 0x01 // marker byte before the records

		pre, err := ParseDataPreamble(body, 3)
		require.NoError(t, err)
		require.Equal(t, DataRecordsOffsetV3, pre.RecordsOffset)
	})
}

func TestParseDataPreambleUnknownVersion(t *testing.T) {
	body := dataBody(1, []byte{4}, DataRecordsOffsetV0)
	body[DataColumnsOffset] = 1

	_, err := ParseDataPreamble(body, 7)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestParseDataPreambleDirtyReserved(t *testing.T) {
	body := dataBody(1, []byte{4}, DataRecordsOffsetV0)
	body[DataColumnsOffset] = 1
	body[50] = 0xAB

	_, err := ParseDataPreamble(body, 0)
	require.ErrorIs(t, err, errs.ErrCorruptModule)
}

func TestParseDataPreambleTooShort(t *testing.T) {
	_, err := ParseDataPreamble([]byte{1, 0, 0}, 0)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)

	body := dataBody(1, []byte{4}, 50) // body ends before the record offset
	body[DataColumnsOffset] = 1
	_, err = ParseDataPreamble(body, 0)
	require.ErrorIs(t, err, errs.ErrCorruptModule)
}
