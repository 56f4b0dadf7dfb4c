package schema

import "github.com/echemdata/galvani/format"

// columnDef is one entry of the column ID table: the canonical field name and
// the on-disk decode rule for that ID.
type columnDef struct {
	name  string
	role  format.ColumnRole
	kind  format.DecodeKind
	width int
}

// flagDef is one entry of the packed-flag table. All flag IDs share a single
// u8 flags column; each ID claims a bit mask within it.
type flagDef struct {
	name string
	mask uint8
}

func f4(name string, role format.ColumnRole) columnDef {
	return columnDef{name: name, role: role, kind: format.KindFloat, width: 4}
}

func f8(name string, role format.ColumnRole) columnDef {
	return columnDef{name: name, role: role, kind: format.KindFloat, width: 8}
}

func u1(name string, role format.ColumnRole) columnDef {
	return columnDef{name: name, role: role, kind: format.KindUint, width: 1}
}

func u2(name string, role format.ColumnRole) columnDef {
	return columnDef{name: name, role: role, kind: format.KindUint, width: 2}
}

func u4(name string, role format.ColumnRole) columnDef {
	return columnDef{name: name, role: role, kind: format.KindUint, width: 4}
}

// columnTable maps column IDs to decode rules. This table is reverse
// engineered from sample files and is the authoritative description of the
// record layout; an ID missing here fails the decode rather than being
// guessed at.
var columnTable = map[uint16]columnDef{
	4:   f8("time/s", format.RoleTime),
	5:   f4("control/V/mA", format.RoleControl),
	6:   f4("Ewe/V", format.RolePotential),
	7:   f8("dq/mA.h", format.RoleCharge),
	8:   f4("I/mA", format.RoleCurrent),
	9:   f4("Ece/V", format.RolePotential),
	11:  f8("<I>/mA", format.RoleCurrent),
	13:  f8("(Q-Qo)/mA.h", format.RoleCharge),
	16:  f4("Analog IN 1/V", format.RoleAux),
	19:  f4("control/V", format.RoleControl),
	20:  f4("control/mA", format.RoleControl),
	23:  f8("dQ/mA.h", format.RoleCharge),
	24:  f8("cycle number", format.RoleCycle),
	26:  f4("Rapp/Ohm", format.RoleAux),
	27:  f4("Ewe-Ece/V", format.RolePotential),
	32:  f4("freq/Hz", format.RoleAux),
	33:  f4("|Ewe|/V", format.RolePotential),
	34:  f4("|I|/A", format.RoleCurrent),
	35:  f4("Phase(Z)/deg", format.RoleAux),
	36:  f4("|Z|/Ohm", format.RoleAux),
	37:  f4("Re(Z)/Ohm", format.RoleAux),
	38:  f4("-Im(Z)/Ohm", format.RoleAux),
	39:  u2("I Range", format.RoleAux),
	50:  f4("E0/V", format.RolePotential),
	69:  f4("R/Ohm", format.RoleAux),
	70:  f4("P/W", format.RoleAux),
	73:  f4("rotation rate/rpm", format.RoleAux),
	74:  f8("|Energy|/W.h", format.RoleAux),
	75:  f4("Analog OUT/V", format.RoleAux),
	76:  f4("<I>/mA", format.RoleCurrent),
	77:  f4("<Ewe>/V", format.RolePotential),
	78:  f4("Cs-2/µF-2", format.RoleAux),
	96:  f4("|Ece|/V", format.RolePotential),
	98:  f4("Phase(Zce)/deg", format.RoleAux),
	99:  f4("|Zce|/Ohm", format.RoleAux),
	100: f4("Re(Zce)/Ohm", format.RoleAux),
	101: f4("-Im(Zce)/Ohm", format.RoleAux),
	123: f8("Energy charge/W.h", format.RoleAux),
	124: f8("Energy discharge/W.h", format.RoleAux),
	125: f8("Capacitance charge/µF", format.RoleAux),
	126: f8("Capacitance discharge/µF", format.RoleAux),
	131: u2("Ns", format.RoleCycle),
	163: f4("|Estack|/V", format.RolePotential),
	168: f4("Rcmp/Ohm", format.RoleAux),
	169: f4("Cs/µF", format.RoleAux),
	172: f4("Cp/µF", format.RoleAux),
	173: f4("Cp-2/µF-2", format.RoleAux),
	174: f4("<Ewe>/V", format.RolePotential),
	178: f4("(Q-Qo)/C", format.RoleCharge),
	179: f4("dQ/C", format.RoleCharge),
	182: f8("step time/s", format.RoleTime),
	211: f8("Q charge/discharge/mA.h", format.RoleCharge),
	212: u4("half cycle", format.RoleCycle),
	213: u4("z cycle", format.RoleCycle),
	217: f4("THD Ewe/%", format.RoleAux),
	218: f4("THD I/%", format.RoleAux),
	220: f4("NSD Ewe/%", format.RoleAux),
	221: f4("NSD I/%", format.RoleAux),
	223: f4("NSR Ewe/%", format.RoleAux),
	224: f4("NSR I/%", format.RoleAux),
	230: f4("|Ewe h2|/V", format.RoleAux),
	231: f4("|Ewe h3|/V", format.RoleAux),
	232: f4("|Ewe h4|/V", format.RoleAux),
	233: f4("|Ewe h5|/V", format.RoleAux),
	234: f4("|Ewe h6|/V", format.RoleAux),
	235: f4("|Ewe h7|/V", format.RoleAux),
	236: f4("|I h2|/A", format.RoleAux),
	237: f4("|I h3|/A", format.RoleAux),
	238: f4("|I h4|/A", format.RoleAux),
	239: f4("|I h5|/A", format.RoleAux),
	240: f4("|I h6|/A", format.RoleAux),
	241: f4("|I h7|/A", format.RoleAux),
	242: f4("|E2|/V", format.RoleAux),
	243: f4("|E3|/V", format.RoleAux),
	244: f4("|E4|/V", format.RoleAux),
	245: f4("|E5|/V", format.RoleAux),
	246: f4("|E6|/V", format.RoleAux),
	247: f4("|E7|/V", format.RoleAux),
	248: f4("|E8|/V", format.RoleAux),
	271: f4("Phase(Z1) / deg", format.RoleAux),
	272: f4("Phase(Z2) / deg", format.RoleAux),
	273: f4("Phase(Z3) / deg", format.RoleAux),
	274: f4("Phase(Z4) / deg", format.RoleAux),
	275: f4("Phase(Z5) / deg", format.RoleAux),
	276: f4("Phase(Z6) / deg", format.RoleAux),
	277: f4("Phase(Z7) / deg", format.RoleAux),
	278: f4("Phase(Z8) / deg", format.RoleAux),
	301: f4("|Z1|/Ohm", format.RoleAux),
	302: f4("|Z2|/Ohm", format.RoleAux),
	303: f4("|Z3|/Ohm", format.RoleAux),
	304: f4("|Z4|/Ohm", format.RoleAux),
	305: f4("|Z5|/Ohm", format.RoleAux),
	306: f4("|Z6|/Ohm", format.RoleAux),
	307: f4("|Z7|/Ohm", format.RoleAux),
	308: f4("|Z8|/Ohm", format.RoleAux),
	331: f4("Re(Z1)/Ohm", format.RoleAux),
	332: f4("Re(Z2)/Ohm", format.RoleAux),
	333: f4("Re(Z3)/Ohm", format.RoleAux),
	334: f4("Re(Z4)/Ohm", format.RoleAux),
	335: f4("Re(Z5)/Ohm", format.RoleAux),
	336: f4("Re(Z6)/Ohm", format.RoleAux),
	337: f4("Re(Z7)/Ohm", format.RoleAux),
	338: f4("Re(Z8)/Ohm", format.RoleAux),
	361: f4("-Im(Z1)/Ohm", format.RoleAux),
	362: f4("-Im(Z2)/Ohm", format.RoleAux),
	363: f4("-Im(Z3)/Ohm", format.RoleAux),
	364: f4("-Im(Z4)/Ohm", format.RoleAux),
	365: f4("-Im(Z5)/Ohm", format.RoleAux),
	366: f4("-Im(Z6)/Ohm", format.RoleAux),
	367: f4("-Im(Z7)/Ohm", format.RoleAux),
	368: f4("-Im(Z8)/Ohm", format.RoleAux),
	391: f4("<E1>/V", format.RoleAux),
	392: f4("<E2>/V", format.RoleAux),
	393: f4("<E3>/V", format.RoleAux),
	394: f4("<E4>/V", format.RoleAux),
	395: f4("<E5>/V", format.RoleAux),
	396: f4("<E6>/V", format.RoleAux),
	397: f4("<E7>/V", format.RoleAux),
	398: f4("<E8>/V", format.RoleAux),
	422: f4("Phase(Zstack)/deg", format.RoleAux),
	423: f4("|Zstack|/Ohm", format.RoleAux),
	424: f4("Re(Zstack)/Ohm", format.RoleAux),
	425: f4("-Im(Zstack)/Ohm", format.RoleAux),
	426: f4("<Estack>/V", format.RolePotential),
	430: f4("Phase(Zwe-ce)/deg", format.RoleAux),
	431: f4("|Zwe-ce|/Ohm", format.RoleAux),
	432: f4("Re(Zwe-ce)/Ohm", format.RoleAux),
	433: f4("-Im(Zwe-ce)/Ohm", format.RoleAux),
	434: f4("(Q-Qo)/C", format.RoleCharge),
	435: f4("dQ/C", format.RoleCharge),
	438: f8("step time/s", format.RoleTime),
	441: f4("<Ecv>/V", format.RolePotential),
	462: f4("Temperature/°C", format.RoleAux),
	467: f8("Q charge/discharge/mA.h", format.RoleCharge),
	468: u4("half cycle", format.RoleCycle),
	469: u4("z cycle", format.RoleCycle),
	471: f4("<Ece>/V", format.RolePotential),
	473: f4("THD Ewe/%", format.RoleAux),
	474: f4("THD I/%", format.RoleAux),
	475: f4("THD Ece/%", format.RoleAux),
	476: f4("NSD Ewe/%", format.RoleAux),
	477: f4("NSD I/%", format.RoleAux),
	478: f4("NSD Ece/%", format.RoleAux),
	479: f4("NSR Ewe/%", format.RoleAux),
	480: f4("NSR I/%", format.RoleAux),
	481: f4("NSR Ece/%", format.RoleAux),
	486: f4("|Ewe h2|/V", format.RoleAux),
	487: f4("|Ewe h3|/V", format.RoleAux),
	488: f4("|Ewe h4|/V", format.RoleAux),
	489: f4("|Ewe h5|/V", format.RoleAux),
	490: f4("|Ewe h6|/V", format.RoleAux),
	491: f4("|Ewe h7|/V", format.RoleAux),
	492: f4("|I h2|/A", format.RoleAux),
	493: f4("|I h3|/A", format.RoleAux),
	494: f4("|I h4|/A", format.RoleAux),
	495: f4("|I h5|/A", format.RoleAux),
	496: f4("|I h6|/A", format.RoleAux),
	497: f4("|I h7|/A", format.RoleAux),
	498: f4("|Ece h2|/V", format.RoleAux),
	499: f4("|Ece h3|/V", format.RoleAux),
	500: f4("|Ece h4|/V", format.RoleAux),
	501: f4("|Ece h5|/V", format.RoleAux),
	502: f4("|Ece h6|/V", format.RoleAux),
	503: f4("|Ece h7|/V", format.RoleAux),
	505: f4("Rdc/Ohm", format.RoleAux),
	509: u1("Acir/Dcir Control", format.RoleAux),
}

// flagTable maps the column IDs that do not carry their own bytes: they are
// bit fields packed into a single u8 flags column, materialized at the
// position of the first flag ID in the column sequence.
var flagTable = map[uint16]flagDef{
	1:  {name: "mode", mask: 0x03},
	2:  {name: "ox/red", mask: 0x04},
	3:  {name: "error", mask: 0x08},
	21: {name: "control changes", mask: 0x10},
	31: {name: "Ns changes", mask: 0x20},
	65: {name: "counter inc.", mask: 0x80},
}
