package mpr

import (
	"math"
	"testing"
	"time"

	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/section"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogTimestampProbing(t *testing.T) {
	// The timestamp may sit at any of the known offsets depending on the
	// firmware build; each must be found.
	for _, offset := range section.LogTimestampOffsets {
		body := make([]byte, 700)
		body[section.LogChannelOffset] = 3
		engine.PutUint64(body[offset:], math.Float64bits(oleDays2026Aug30))

		info, err := decodeLog(body)
		require.NoError(t, err, "offset %d", offset)
		require.Equal(t, uint8(3), info.Channel)
		require.Equal(t, 2026, info.StartTime.Year())
	}
}

func TestDecodeLogFractionalDay(t *testing.T) {
	body := make([]byte, 700)
	engine.PutUint64(body[465:], math.Float64bits(oleDays2026Aug30+0.25)) // 18:00

	info, err := decodeLog(body)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC), info.StartTime)
}

func TestDecodeLogImplausibleTimestamp(t *testing.T) {
	// A float64 outside the plausibility window is not a timestamp.
	body := make([]byte, 700)
	engine.PutUint64(body[465:], math.Float64bits(123456789.0))

	_, err := decodeLog(body)
	require.ErrorIs(t, err, errs.ErrCorruptLog)
}

func TestDecodeLogShortRunIsNotAComment(t *testing.T) {
	body := make([]byte, 700)
	engine.PutUint64(body[465:], math.Float64bits(oleDays2026Aug30))
	copy(body[500:], "ab") // stray printable bytes below the run threshold
	copy(body[560:], "overnight OCV rest")

	info, err := decodeLog(body)
	require.NoError(t, err)
	require.Equal(t, "overnight OCV rest", info.Comment)
}

func TestDecodeLoop(t *testing.T) {
	t.Run("interior zeros survive trimming", func(t *testing.T) {
		info, err := decodeLoop(loopBody([]uint32{0, 40, 0, 120}, 4), 0)
		require.NoError(t, err)
		require.Equal(t, []uint32{0, 40, 0, 120}, info.Indexes)
	})

	t.Run("all-zero body yields no indexes", func(t *testing.T) {
		info, err := decodeLoop(make([]byte, 40), 0)
		require.NoError(t, err)
		require.Empty(t, info.Indexes)
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := decodeLoop(loopBody([]uint32{1}, 0), 1)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("body shorter than the index offset", func(t *testing.T) {
		_, err := decodeLoop([]byte{1, 2}, 0)
		require.ErrorIs(t, err, errs.ErrCorruptLoop)
	})
}
