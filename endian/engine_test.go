package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}

func TestEngineRoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0xDEADBEEF)
	require.Len(t, buf, 4)
	require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0x1A2B)
	require.Equal(t, uint16(0x1A2B), engine.Uint16(buf))
}
