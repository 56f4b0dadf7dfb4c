package section

import (
	"testing"
	"time"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/endian"
	"github.com/echemdata/galvani/errs"
	"github.com/stretchr/testify/require"
)

func buildHeaderV1(short, long string, length, version uint32, date string) []byte {
	engine := endian.GetLittleEndianEngine()

	buf := []byte(ModuleTag)
	buf = append(buf, padded(short, ShortNameSize)...)
	buf = append(buf, padded(long, LongNameSize)...)
	buf = engine.AppendUint32(buf, length)
	buf = engine.AppendUint32(buf, version)
	buf = append(buf, padded(date, DateSize)...)

	return buf
}

func buildHeaderV2(short, long string, length, version uint32, date string) []byte {
	engine := endian.GetLittleEndianEngine()

	buf := []byte(ModuleTag)
	buf = append(buf, padded(short, ShortNameSize)...)
	buf = append(buf, padded(long, LongNameSize)...)
	buf = engine.AppendUint32(buf, V2Sentinel)
	buf = engine.AppendUint32(buf, length)
	buf = engine.AppendUint32(buf, version)
	buf = engine.AppendUint32(buf, 10) // reserved
	buf = append(buf, padded(date, DateSize)...)

	return buf
}

func padded(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = ' '
	}

	return b
}

func TestParseModuleHeaderV1(t *testing.T) {
	buf := buildHeaderV1(ModuleSettings, "VMP settings", 1024, 3, "08/30/26")

	cur := cursor.New(buf)
	hdr, err := ParseModuleHeader(cur)
	require.NoError(t, err)

	require.Equal(t, HeaderV1Size, hdr.HeaderSize)
	require.Equal(t, "VMP Set", hdr.Name())
	require.Equal(t, "VMP settings", hdr.LongName)
	require.Equal(t, uint32(1024), hdr.Length)
	require.Equal(t, uint32(3), hdr.Version)
	require.Equal(t, "08/30/26", hdr.Date)
	require.Equal(t, ModuleTagSize+HeaderV1Size, cur.Pos())
}

func TestParseModuleHeaderV2(t *testing.T) {
	buf := buildHeaderV2(ModuleData, "VMP data", 4096, 3, "01-15-25")

	cur := cursor.New(buf)
	hdr, err := ParseModuleHeader(cur)
	require.NoError(t, err)

	require.Equal(t, HeaderV2Size, hdr.HeaderSize)
	require.Equal(t, "VMP data", hdr.Name())
	require.Equal(t, uint32(V2Sentinel), hdr.MaxLength)
	require.Equal(t, uint32(4096), hdr.Length)
	require.Equal(t, uint32(3), hdr.Version)
	require.Equal(t, "01-15-25", hdr.Date)
	require.Equal(t, ModuleTagSize+HeaderV2Size, cur.Pos())
}

func TestParseModuleHeaderBadTag(t *testing.T) {
	buf := buildHeaderV1(ModuleSettings, "VMP settings", 10, 0, "08/30/26")
	copy(buf, "BOGUS!")

	_, err := ParseModuleHeader(cursor.New(buf))
	require.ErrorIs(t, err, errs.ErrCorruptModule)
}

func TestParseModuleHeaderTruncated(t *testing.T) {
	buf := buildHeaderV1(ModuleSettings, "VMP settings", 10, 0, "08/30/26")

	_, err := ParseModuleHeader(cursor.New(buf[:20]))
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	for _, text := range []string{"08/30/26", "08-30-26", "08.30.26"} {
		ts, err := ParseDate(text)
		require.NoError(t, err)
		require.Equal(t, want, ts)
	}

	_, err := ParseDate("2026-08-30")
	require.ErrorIs(t, err, errs.ErrBadDate)
}
