package technique

import (
	"math"
	"testing"

	"github.com/echemdata/galvani/endian"
	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/section"
	"github.com/stretchr/testify/require"
)

// buildSettingsBody assembles a settings module body with the given technique
// code and raw parameter record payload.
func buildSettingsBody(tech format.TechniqueID, version uint32, count uint16, records []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	offset := section.SettingsParamsOffset(version)
	body := make([]byte, offset)
	body[section.SettingsTechniqueOffset] = byte(tech)
	body = engine.AppendUint16(body, count)
	body = append(body, records...)

	return body
}

func TestDecodeSettingsOCV(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	// Two OCV records: rest time, dER/dt, record every dE/dt, E range.
	var records []byte
	for _, rest := range []float32{600, 1200} {
		records = engine.AppendUint32(records, math.Float32bits(rest))
		records = engine.AppendUint32(records, math.Float32bits(0.1))
		records = engine.AppendUint32(records, math.Float32bits(5))
		records = engine.AppendUint32(records, math.Float32bits(1))
		records = engine.AppendUint32(records, math.Float32bits(-2.5))
		records = engine.AppendUint32(records, math.Float32bits(2.5))
	}

	body := buildSettingsBody(format.TechniqueOCV, 3, 2, records)

	settings, err := DecodeSettings(body, 3)
	require.NoError(t, err)
	require.Equal(t, format.TechniqueOCV, settings.Technique)
	require.Equal(t, uint32(3), settings.Version)
	require.Len(t, settings.Records, 2)

	rest, ok := settings.Records[0].Get("rest time/s")
	require.True(t, ok)
	require.Equal(t, FieldFloat32, rest.Kind)
	require.InDelta(t, 600.0, rest.Float, 1e-6)

	rest2, ok := settings.Records[1].Get("rest time/s")
	require.True(t, ok)
	require.InDelta(t, 1200.0, rest2.Float, 1e-6)

	eMin, ok := settings.Records[0].Get("E range min/V")
	require.True(t, ok)
	require.InDelta(t, -2.5, eMin.Float, 1e-6)
}

func TestDecodeSettingsStepCodes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	// One GCPL record.
	rec := []byte{byte(StepConstantCurrent)}
	for _, f := range []float32{1.5, 3600, 4.2, 0.5, 1, 10} {
		rec = engine.AppendUint32(rec, math.Float32bits(f))
	}
	rec = engine.AppendUint16(rec, 100) // cycles
	rec = engine.AppendUint16(rec, 9)   // I range

	body := buildSettingsBody(format.TechniqueGCPL, 5, 1, rec)

	settings, err := DecodeSettings(body, 5)
	require.NoError(t, err)
	require.Len(t, settings.Records, 1)

	mode, ok := settings.Records[0].Get("set I/C")
	require.True(t, ok)
	require.Equal(t, FieldStepCode, mode.Kind)
	require.Equal(t, StepConstantCurrent, mode.Code)
	require.Equal(t, "constant current", mode.String())

	cycles, ok := settings.Records[0].Get("cycles")
	require.True(t, ok)
	require.Equal(t, uint64(100), cycles.Uint)
}

func TestDecodeSettingsUnsupportedTechnique(t *testing.T) {
	body := buildSettingsBody(format.TechniqueID(0x55), 3, 0, nil)

	_, err := DecodeSettings(body, 3)
	require.ErrorIs(t, err, errs.ErrUnsupportedTechnique)
	require.ErrorContains(t, err, "0x55")
}

func TestDecodeSettingsUnsupportedVersion(t *testing.T) {
	// Known technique, but a version with no registered layout.
	body := buildSettingsBody(format.TechniqueOCV, 99, 0, nil)

	_, err := DecodeSettings(body, 99)
	require.ErrorIs(t, err, errs.ErrUnsupportedTechnique)
}

func TestDecodeSettingsTruncated(t *testing.T) {
	// Declares one record but provides no record bytes.
	body := buildSettingsBody(format.TechniqueOCV, 3, 1, nil)

	_, err := DecodeSettings(body, 3)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestRecordWidth(t *testing.T) {
	fields := paramLayouts[layoutKey{tech: format.TechniqueOCV, version: 0}]
	require.Equal(t, 24, recordWidth(fields))
}
