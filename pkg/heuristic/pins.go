package heuristic

import (
	"strings"

	"github.com/edalab/pinwire/pkg/schematic"
)

// InferPins returns a canonical pin set for a component that declared none,
// derived from its reference-designator prefix and free-text type hint.
// The tables follow common schematic conventions: ICs get power pins,
// diodes get anode/cathode, polarized capacitors get +/-, and so on.
// The result always contains at least one pin.
func InferPins(refDes, typeHint string) []schematic.Pin {
	ref := strings.ToUpper(refDes)
	hint := strings.ToLower(typeHint)

	switch {
	case strings.HasPrefix(ref, "IC") || strings.HasPrefix(ref, "U"):
		if strings.Contains(hint, "arduino") {
			return pins("VIN", "GND", "5V", "3V3", "D0", "D1", "D2", "D13", "A0", "A1")
		}
		return pins("VCC", "GND", "1", "2")
	case strings.HasPrefix(ref, "R"):
		return pins("1", "2")
	case strings.HasPrefix(ref, "D") || strings.HasPrefix(ref, "LED"):
		return pins("A", "K") // anode, cathode
	case strings.HasPrefix(ref, "C"):
		return pins("+", "-")
	case strings.HasPrefix(ref, "SW") || strings.HasPrefix(ref, "S"):
		return pins("1", "2", "3", "4")
	default:
		return pins("1", "2")
	}
}

// PowerValue maps a power-rail net name to a display voltage.
// Unrecognized names map to the generic "Power".
func PowerValue(netName string) string {
	name := strings.ToUpper(netName)
	switch {
	case strings.Contains(name, "5V") || strings.Contains(name, "VCC"):
		return "5V"
	case strings.Contains(name, "3V3") || strings.Contains(name, "3.3V"):
		return "3.3V"
	case strings.Contains(name, "12V"):
		return "12V"
	case strings.Contains(name, "GND") || strings.Contains(name, "GROUND") || strings.Contains(name, "VSS"):
		return "0V (Ground)"
	default:
		return "Power"
	}
}

// PowerKeywords is the vocabulary that qualifies a net-like markup node as a
// power rail. Matching is a case-insensitive substring check; see IsPowerNet.
var PowerKeywords = []string{"VCC", "5V", "GND", "GROUND", "VDD", "VSS", "3V3", "12V"}

// IsPowerNet reports whether a net name contains a recognized power-rail
// keyword.
func IsPowerNet(netName string) bool {
	name := strings.ToUpper(netName)
	for _, kw := range PowerKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func pins(names ...string) []schematic.Pin {
	ps := make([]schematic.Pin, len(names))
	for i, n := range names {
		ps[i] = schematic.Pin{Name: n}
	}
	return ps
}
