package technique

import "github.com/echemdata/galvani/format"

// FieldKind is the wire type of one settings parameter field.
type FieldKind uint8

const (
	FieldUint8 FieldKind = iota + 1
	FieldUint16
	FieldFloat32
	FieldStepCode // u8 enumerated step-control code
)

// Width returns the on-disk byte width of the field kind.
func (k FieldKind) Width() int {
	switch k {
	case FieldUint8, FieldStepCode:
		return 1
	case FieldUint16:
		return 2
	case FieldFloat32:
		return 4
	default:
		return 0
	}
}

// StepCode enumerates the vendor's step-control codes stored in settings
// parameter records.
type StepCode uint8

const (
	StepRest StepCode = iota
	StepConstantCurrent
	StepConstantVoltage
	StepScan
	StepLoop
)

func (c StepCode) String() string {
	switch c {
	case StepRest:
		return "rest"
	case StepConstantCurrent:
		return "constant current"
	case StepConstantVoltage:
		return "constant voltage"
	case StepScan:
		return "scan"
	case StepLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Field is one (name, type) slot of a parameter record layout.
type Field struct {
	Name string
	Kind FieldKind
}

type layoutKey struct {
	tech    format.TechniqueID
	version uint32
}

// paramLayouts maps (technique, settings module version) to the ordered field
// layout of one parameter record. The mapping is deliberately closed world:
// a pair absent from this table fails the decode, because guessing a layout
// risks silently wrong physical units downstream.
//
// The layouts are a versioned data asset recovered from sample files; extend
// only against real captures.
var paramLayouts = map[layoutKey][]Field{}

func register(tech format.TechniqueID, versions []uint32, fields []Field) {
	for _, v := range versions {
		paramLayouts[layoutKey{tech: tech, version: v}] = fields
	}
}

// recordWidth returns the total byte width of one record of the layout.
func recordWidth(fields []Field) int {
	width := 0
	for _, f := range fields {
		width += f.Kind.Width()
	}

	return width
}

func init() {
	v := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	register(format.TechniqueOCV, v, []Field{
		{"rest time/s", FieldFloat32},
		{"dER/dt/mV/h", FieldFloat32},
		{"record every dE/mV", FieldFloat32},
		{"record every dt/s", FieldFloat32},
		{"E range min/V", FieldFloat32},
		{"E range max/V", FieldFloat32},
	})

	register(format.TechniqueCV, v, []Field{
		{"vs.", FieldStepCode},
		{"Ei/V", FieldFloat32},
		{"dE/dt/mV/s", FieldFloat32},
		{"E1/V", FieldFloat32},
		{"E2/V", FieldFloat32},
		{"Ef/V", FieldFloat32},
		{"scan number", FieldUint16},
		{"average over dE", FieldUint8},
		{"I range", FieldUint16},
	})

	register(format.TechniqueLSV, v, []Field{
		{"vs.", FieldStepCode},
		{"Ei/V", FieldFloat32},
		{"dE/dt/mV/s", FieldFloat32},
		{"Ef/V", FieldFloat32},
		{"record every dE/mV", FieldFloat32},
		{"I range", FieldUint16},
	})

	register(format.TechniqueGCPL, v, []Field{
		{"set I/C", FieldStepCode},
		{"Is/mA", FieldFloat32},
		{"time/s", FieldFloat32},
		{"EM/V", FieldFloat32},
		{"dQM/mA.h", FieldFloat32},
		{"record every dE/mV", FieldFloat32},
		{"record every dt/s", FieldFloat32},
		{"cycles", FieldUint16},
		{"I range", FieldUint16},
	})

	register(format.TechniqueCP, v, []Field{
		{"vs.", FieldStepCode},
		{"Is/mA", FieldFloat32},
		{"ts/s", FieldFloat32},
		{"EM/V", FieldFloat32},
		{"dQM/mA.h", FieldFloat32},
		{"record every dE/mV", FieldFloat32},
		{"record every dt/s", FieldFloat32},
		{"I range", FieldUint16},
	})

	register(format.TechniqueCA, v, []Field{
		{"vs.", FieldStepCode},
		{"Ei/V", FieldFloat32},
		{"ti/s", FieldFloat32},
		{"Imax/mA", FieldFloat32},
		{"dQM/mA.h", FieldFloat32},
		{"record every dI/mA", FieldFloat32},
		{"record every dt/s", FieldFloat32},
		{"I range", FieldUint16},
	})

	register(format.TechniquePEIS, v, []Field{
		{"vs.", FieldStepCode},
		{"E/V", FieldFloat32},
		{"fi/Hz", FieldFloat32},
		{"ff/Hz", FieldFloat32},
		{"Nd", FieldUint16},
		{"points per decade", FieldUint8},
		{"spacing", FieldStepCode},
		{"Va/mV", FieldFloat32},
		{"average N", FieldUint16},
		{"I range", FieldUint16},
	})

	register(format.TechniqueGEIS, v, []Field{
		{"vs.", FieldStepCode},
		{"Ia/mA", FieldFloat32},
		{"fi/Hz", FieldFloat32},
		{"ff/Hz", FieldFloat32},
		{"Nd", FieldUint16},
		{"points per decade", FieldUint8},
		{"spacing", FieldStepCode},
		{"average N", FieldUint16},
		{"I range", FieldUint16},
	})

	register(format.TechniqueWait, v, []Field{
		{"td/s", FieldFloat32},
		{"record every dE/mV", FieldFloat32},
		{"record every dI/mA", FieldFloat32},
		{"record every dt/s", FieldFloat32},
	})
}
