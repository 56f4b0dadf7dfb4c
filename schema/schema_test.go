package schema

import (
	"testing"

	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
	"github.com/stretchr/testify/require"
)

func TestResolveBasic(t *testing.T) {
	// time/s (f8), Ewe/V (f4), I Range (u2)
	s, err := Resolve([]uint16{4, 6, 39}, format.TechniqueOCV)
	require.NoError(t, err)

	require.Equal(t, format.TechniqueOCV, s.Technique)
	require.Len(t, s.Columns, 3)
	require.Empty(t, s.Flags)

	require.Equal(t, "time/s", s.Columns[0].Name)
	require.Equal(t, format.RoleTime, s.Columns[0].Role)
	require.Equal(t, format.KindFloat, s.Columns[0].Kind)
	require.Equal(t, 8, s.Columns[0].Width)

	require.Equal(t, "Ewe/V", s.Columns[1].Name)
	require.Equal(t, format.RolePotential, s.Columns[1].Role)

	require.Equal(t, "I Range", s.Columns[2].Name)
	require.Equal(t, format.KindUint, s.Columns[2].Kind)

	require.Equal(t, 8+4+2, s.Stride())
	require.NoError(t, s.ValidateStride(14))
	require.ErrorIs(t, s.ValidateStride(15), errs.ErrSchemaStrideMismatch)
}

func TestResolveFlagsColumn(t *testing.T) {
	// Flag IDs collapse into one u8 column at the position of the first one.
	s, err := Resolve([]uint16{1, 2, 3, 4, 21, 6}, format.TechniqueGCPL)
	require.NoError(t, err)

	require.Len(t, s.Columns, 3) // flags, time/s, Ewe/V
	require.Equal(t, "flags", s.Columns[0].Name)
	require.Equal(t, format.KindFlags, s.Columns[0].Kind)
	require.Equal(t, 1, s.Columns[0].Width)
	require.Equal(t, "time/s", s.Columns[1].Name)
	require.Equal(t, "Ewe/V", s.Columns[2].Name)

	require.Len(t, s.Flags, 4)
	require.Equal(t, "mode", s.Flags[0].Name)
	require.Equal(t, uint8(0x03), s.Flags[0].Mask)
	require.Equal(t, 0, s.Flags[0].Shift())
	require.Equal(t, "ox/red", s.Flags[1].Name)
	require.Equal(t, 2, s.Flags[1].Shift())
	require.Equal(t, "control changes", s.Flags[3].Name)
	require.Equal(t, 4, s.Flags[3].Shift())

	require.Equal(t, 1+8+4, s.Stride())
}

func TestResolveDuplicateNames(t *testing.T) {
	// IDs 13 and 23 both decode charge fields; 23's canonical name collides
	// with repeated use of the same ID as well.
	s, err := Resolve([]uint16{11, 76}, format.TechniqueCP)
	require.NoError(t, err)

	require.Equal(t, "<I>/mA", s.Columns[0].Name)
	require.Equal(t, "<I>/mA 2", s.Columns[1].Name)
	require.Equal(t, 8, s.Columns[0].Width)
	require.Equal(t, 4, s.Columns[1].Width)
}

func TestResolveUnknownColumn(t *testing.T) {
	_, err := Resolve([]uint16{4, 9999}, format.TechniqueCV)
	require.ErrorIs(t, err, errs.ErrUnknownColumn)
	require.ErrorContains(t, err, "9999")
	require.ErrorContains(t, err, "column ID 4")
}

func TestLookup(t *testing.T) {
	s, err := Resolve([]uint16{4, 6}, format.TechniqueCV)
	require.NoError(t, err)

	col, ok := s.Lookup("Ewe/V")
	require.True(t, ok)
	require.Equal(t, uint16(6), col.ID)

	_, ok = s.Lookup("missing")
	require.False(t, ok)
}
