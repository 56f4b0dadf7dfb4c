package mpt

import (
	"fmt"
	"strings"

	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
)

// boolFields are the exported flag columns; they hold 0 or 1.
var boolFields = map[string]bool{
	"ox/red":          true,
	"error":           true,
	"control changes": true,
	"Ns changes":      true,
	"counter inc.":    true,
}

// intFields are the exported integral columns.
var intFields = map[string]bool{
	"cycle number": true,
	"I Range":      true,
	"Ns":           true,
	"half cycle":   true,
	"z cycle":      true,
}

// floatFields are exported float columns whose headers carry no recognizable
// unit suffix.
var floatFields = map[string]bool{
	"x":                true,
	"Re(M)":            true,
	"Im(M)":            true,
	"|M|":              true,
	"Re(Permittivity)": true,
	"Im(Permittivity)": true,
	"|Permittivity|":   true,
	"Tan(Delta)":       true,
	"control/V/mA":     true,
	"(Q-Qo)/mA.h":      true,
	"(Q-Qo)/C":         true,
	"dQ/C":             true,
}

// fieldAliases maps header spellings that changed across EC-Lab releases to
// the canonical name the binary schema uses.
var fieldAliases = map[string]string{
	"dq/mA.h": "dQ/mA.h",
	"<I>/mA":  "I/mA",
	"<Ewe>/V": "Ewe/V",
	"<Ewe/V>": "Ewe/V",
	"Ecell/V": "Ewe/V",
}

// unitSuffixes cover the open-ended family of measured columns: any header
// ending in a known unit is a float field under its own name.
var unitSuffixes = []string{
	"/s", "/Hz", "/deg",
	"/W", "/mW", "/W.h", "/mW.h",
	"/A", "/mA", "/A.h", "/mA.h",
	"/V", "/mV",
	"/F", "/mF", "/uF", "/µF", "/nF",
	"/C", "/Ohm", "/Ohm-1", "/Ohm.cm", "/mS/cm",
	"/%", "/°C",
}

// canonicalField maps one column header to its canonical name and kind.
func canonicalField(header string) (string, format.DecodeKind, error) {
	if header == "mode" {
		return "mode", format.KindUint, nil
	}
	if boolFields[header] || intFields[header] {
		return header, format.KindUint, nil
	}
	if floatFields[header] {
		return header, format.KindFloat, nil
	}
	if canonical, ok := fieldAliases[header]; ok {
		return canonical, format.KindFloat, nil
	}
	for _, suffix := range unitSuffixes {
		if strings.HasSuffix(header, suffix) {
			return header, format.KindFloat, nil
		}
	}

	return "", 0, fmt.Errorf("%w: %q", errs.ErrUnknownColumnHeader, header)
}
