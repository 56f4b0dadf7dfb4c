// Package technique decodes the settings module of an EC-Lab file: the
// technique identifier and the per-step acquisition parameter records whose
// layout depends on the (technique, module version) pair.
package technique

import (
	"fmt"

	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/section"
)

// Value is one decoded parameter field. Kind selects which member is set.
type Value struct {
	Kind  FieldKind
	Uint  uint64
	Float float64
	Code  StepCode
}

func (v Value) String() string {
	switch v.Kind {
	case FieldUint8, FieldUint16:
		return fmt.Sprintf("%d", v.Uint)
	case FieldFloat32:
		return fmt.Sprintf("%g", v.Float)
	case FieldStepCode:
		return v.Code.String()
	default:
		return "invalid"
	}
}

// Param is one named field of a parameter record.
type Param struct {
	Name  string
	Value Value
}

// Record is one ordered parameter record, typically one technique step.
type Record []Param

// Get returns the value of the named parameter.
func (r Record) Get(name string) (Value, bool) {
	for _, p := range r {
		if p.Name == name {
			return p.Value, true
		}
	}

	return Value{}, false
}

// Settings is the decoded settings module.
type Settings struct {
	Technique format.TechniqueID
	Version   uint32
	Records   []Record
}

// DecodeSettings decodes a settings module body.
//
// The preamble holds the technique code; the parameter region starts at a
// version-dependent offset with a u16 record count, followed by that many
// fixed-layout records as defined by the (technique, version) table.
//
// Returns:
//   - *Settings: Decoded technique identifier and parameter records
//   - error: ErrUnsupportedTechnique when the pair has no registered layout,
//     or ErrOutOfBounds when the body is shorter than the declared records
func DecodeSettings(body []byte, version uint32) (*Settings, error) {
	cur := cursor.New(body)

	techByte, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	tech := format.TechniqueID(techByte)

	fields, ok := paramLayouts[layoutKey{tech: tech, version: version}]
	if !ok {
		return nil, fmt.Errorf("%w: technique 0x%02X (%s), settings version %d",
			errs.ErrUnsupportedTechnique, techByte, tech, version)
	}

	if err := cur.SeekAbsolute(section.SettingsParamsOffset(version)); err != nil {
		return nil, fmt.Errorf("settings parameter region: %w", err)
	}

	count, err := cur.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("settings record count: %w", err)
	}

	settings := &Settings{
		Technique: tech,
		Version:   version,
		Records:   make([]Record, 0, count),
	}

	for i := 0; i < int(count); i++ {
		rec, err := decodeRecord(cur, fields)
		if err != nil {
			return nil, fmt.Errorf("settings record %d: %w", i, err)
		}
		settings.Records = append(settings.Records, rec)
	}

	return settings, nil
}

func decodeRecord(cur *cursor.Cursor, fields []Field) (Record, error) {
	rec := make(Record, 0, len(fields))

	for _, field := range fields {
		val := Value{Kind: field.Kind}

		switch field.Kind {
		case FieldUint8:
			v, err := cur.ReadUint8()
			if err != nil {
				return nil, err
			}
			val.Uint = uint64(v)
		case FieldUint16:
			v, err := cur.ReadUint16()
			if err != nil {
				return nil, err
			}
			val.Uint = uint64(v)
		case FieldFloat32:
			v, err := cur.ReadFloat32()
			if err != nil {
				return nil, err
			}
			val.Float = float64(v)
		case FieldStepCode:
			v, err := cur.ReadUint8()
			if err != nil {
				return nil, err
			}
			val.Code = StepCode(v)
		}

		rec = append(rec, Param{Name: field.Name, Value: val})
	}

	return rec, nil
}
