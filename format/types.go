// Package format defines the enumerated types shared by the EC-Lab decoders:
// technique identifiers, column roles, column decode rules and archive framing
// types.
package format

type (
	// TechniqueID identifies the electrochemical technique that produced a
	// file. The values are the vendor's own codes as stored in the settings
	// module.
	TechniqueID uint8

	// ColumnRole is the semantic role of a data column.
	ColumnRole uint8

	// DecodeKind selects the numeric decode rule for a data column. The set
	// is closed: the record decoder switches exhaustively over these values.
	DecodeKind uint8

	// ArchiveType identifies the optional compression frame wrapped around a
	// captured file buffer.
	ArchiveType uint8
)

// Vendor technique codes observed in settings modules.
const (
	TechniqueGCPL TechniqueID = 0x04 // galvanostatic cycling with potential limitation
	TechniqueCV   TechniqueID = 0x06 // cyclic voltammetry
	TechniqueOCV  TechniqueID = 0x0B // open circuit voltage
	TechniqueCA   TechniqueID = 0x18 // chronoamperometry
	TechniqueCP   TechniqueID = 0x19 // chronopotentiometry
	TechniqueWait TechniqueID = 0x1C // wait step
	TechniquePEIS TechniqueID = 0x1D // potentiostatic impedance spectroscopy
	TechniqueGEIS TechniqueID = 0x1E // galvanostatic impedance spectroscopy
	TechniqueLSV  TechniqueID = 0x6C // linear sweep voltammetry
	TechniqueMB   TechniqueID = 0x7F // modulo bat
)

const (
	RoleTime      ColumnRole = iota + 1 // elapsed time
	RolePotential                       // working/counter electrode potential
	RoleCurrent                         // cell current
	RoleCharge                          // accumulated or differential charge
	RoleControl                         // applied control signal
	RoleCycle                           // cycle/step counters
	RoleFlags                           // packed per-record flag byte
	RoleAux                             // technique-specific auxiliary channel
)

const (
	KindUint  DecodeKind = iota + 1 // raw unsigned integer, width 1/2/4/8
	KindFloat                       // IEEE 754 float, width 4/8
	KindFixed                       // integer with instrument scale/offset applied
	KindFlags                       // bit-packed flag byte, unpacked into sub-fields
)

const (
	ArchiveNone ArchiveType = iota
	ArchiveGzip
	ArchiveZstd
	ArchiveLZ4
	ArchiveS2
)

func (t TechniqueID) String() string {
	switch t {
	case TechniqueGCPL:
		return "GCPL"
	case TechniqueCV:
		return "CV"
	case TechniqueOCV:
		return "OCV"
	case TechniqueCA:
		return "CA"
	case TechniqueCP:
		return "CP"
	case TechniqueWait:
		return "Wait"
	case TechniquePEIS:
		return "PEIS"
	case TechniqueGEIS:
		return "GEIS"
	case TechniqueLSV:
		return "LSV"
	case TechniqueMB:
		return "MB"
	default:
		return "Unknown"
	}
}

func (r ColumnRole) String() string {
	switch r {
	case RoleTime:
		return "time"
	case RolePotential:
		return "potential"
	case RoleCurrent:
		return "current"
	case RoleCharge:
		return "charge"
	case RoleControl:
		return "control"
	case RoleCycle:
		return "cycle"
	case RoleFlags:
		return "flags"
	case RoleAux:
		return "aux"
	default:
		return "unknown"
	}
}

func (k DecodeKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindFixed:
		return "fixed-point"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

func (a ArchiveType) String() string {
	switch a {
	case ArchiveNone:
		return "none"
	case ArchiveGzip:
		return "gzip"
	case ArchiveZstd:
		return "zstd"
	case ArchiveLZ4:
		return "lz4"
	case ArchiveS2:
		return "s2"
	default:
		return "unknown"
	}
}
