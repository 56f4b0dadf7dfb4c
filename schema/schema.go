// Package schema resolves the ordered column layout of a data module from the
// column ID sequence declared in its preamble.
//
// The binary record layout is self-describing only through these IDs; the
// mapping from ID to field name, byte width and decode rule is reverse
// engineered knowledge kept in an explicit table (columns.go) so unsupported
// IDs fail loudly instead of being decoded speculatively.
package schema

import (
	"fmt"
	"math/bits"

	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
)

// Column describes one decoded field of a data record.
type Column struct {
	ID    uint16
	Name  string
	Role  format.ColumnRole
	Kind  format.DecodeKind
	Width int

	// Scale and Offset apply to KindFixed columns only: the physical value is
	// raw*Scale + Offset.
	Scale  float64
	Offset float64
}

// Flag describes one named sub-field of the packed flags column.
type Flag struct {
	ID   uint16
	Name string
	Mask uint8
}

// Shift returns the right shift that aligns the masked bits to bit zero.
func (f Flag) Shift() int {
	return bits.TrailingZeros8(f.Mask)
}

// Schema is the resolved, ordered column layout of a data module. Immutable
// after Resolve.
type Schema struct {
	Technique format.TechniqueID
	Columns   []Column
	Flags     []Flag

	stride int
}

// Stride returns the fixed byte length of one record.
func (s *Schema) Stride() int {
	return s.stride
}

// Resolve builds the ordered column schema for the given column ID sequence.
// The technique identifier is recorded for consumers; the layout itself is
// fully determined by the IDs.
//
// Flag IDs share one u8 flags column inserted at the position of the first
// flag ID. Repeated field names are disambiguated with " 2", " 3", ...
// suffixes, preserving order.
//
// Returns:
//   - *Schema: Resolved schema with the record stride computed
//   - error: ErrUnknownColumn for an ID absent from both tables
func Resolve(colIDs []uint16, tech format.TechniqueID) (*Schema, error) {
	s := &Schema{
		Technique: tech,
		Columns:   make([]Column, 0, len(colIDs)),
	}

	nameCounts := make(map[string]int, len(colIDs))
	haveFlags := false

	for i, id := range colIDs {
		if fd, ok := flagTable[id]; ok {
			if !haveFlags {
				s.Columns = append(s.Columns, Column{
					ID:    id,
					Name:  "flags",
					Role:  format.RoleFlags,
					Kind:  format.KindFlags,
					Width: 1,
				})
				haveFlags = true
			}
			s.Flags = append(s.Flags, Flag{ID: id, Name: fd.name, Mask: fd.mask})

			continue
		}

		def, ok := columnTable[id]
		if !ok {
			prev := "start of record"
			if i > 0 {
				prev = fmt.Sprintf("column ID %d", colIDs[i-1])
			}

			return nil, fmt.Errorf("%w: %d after %s", errs.ErrUnknownColumn, id, prev)
		}

		name := def.name
		nameCounts[name]++
		if n := nameCounts[name]; n > 1 {
			name = fmt.Sprintf("%s %d", name, n)
		}

		s.Columns = append(s.Columns, Column{
			ID:    id,
			Name:  name,
			Role:  def.role,
			Kind:  def.kind,
			Width: def.width,
		})
	}

	for _, col := range s.Columns {
		s.stride += col.Width
	}

	return s, nil
}

// ValidateStride checks the resolved column widths against the record stride
// observed in the data module.
//
// Returns:
//   - error: ErrSchemaStrideMismatch when the widths disagree; a mismatch
//     means an unseen format variant or a corrupt file, never something to
//     pad or truncate over
func (s *Schema) ValidateStride(observed int) error {
	if s.stride != observed {
		return fmt.Errorf("%w: schema width %d bytes, record stride %d bytes",
			errs.ErrSchemaStrideMismatch, s.stride, observed)
	}

	return nil
}

// Lookup returns the column with the given (possibly disambiguated) name.
func (s *Schema) Lookup(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}

	return Column{}, false
}
