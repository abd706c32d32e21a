package schematic

// DemoBoard returns the fixed fallback component set used when extraction
// yields nothing usable. The set is a small, realistic Arduino breadboard
// circuit so the editor always has something to wire up. The returned slice
// is freshly allocated on every call but its contents are identical across
// calls; callers may mutate it freely.
func DemoBoard() []Component {
	mcuPins := []string{
		"VIN", "GND", "5V", "3V3", "RESET",
		"D0", "D1", "D2", "D3", "D4", "D5", "D6", "D7",
		"D8", "D9", "D10", "D11", "D12", "D13",
		"A0", "A1", "A2", "A3", "A4", "A5",
	}

	return []Component{
		{
			ID:    "IC1",
			Name:  "ARDUINO_UNO_R3",
			Type:  "Microcontroller",
			Value: "Arduino Uno R3",
			Pins:  namedPins(mcuPins),
			X:     "100",
			Y:     "100",
		},
		{
			ID:    "D1",
			Name:  "LED-RED",
			Type:  "LED",
			Value: "5mm Red LED",
			Pins:  namedPins([]string{"A", "K"}),
			X:     "300",
			Y:     "150",
		},
		{
			ID:    "R1",
			Name:  "RES",
			Type:  "Resistor",
			Value: "220Ω",
			Pins:  namedPins([]string{"1", "2"}),
			X:     "250",
			Y:     "150",
		},
		{
			ID:    "SW1",
			Name:  "BUTTON",
			Type:  "Push Button",
			Value: "Tactile Switch",
			Pins:  namedPins([]string{"1", "2", "3", "4"}),
			X:     "150",
			Y:     "250",
		},
		{
			ID:    "PWR1",
			Name:  "5V",
			Type:  "Power Rail",
			Value: "5V",
			Pins:  namedPins([]string{"OUT"}),
			X:     "50",
			Y:     "50",
		},
		{
			ID:    "PWR2",
			Name:  "GND",
			Type:  "Power Rail",
			Value: "0V (Ground)",
			Pins:  namedPins([]string{"OUT"}),
			X:     "50",
			Y:     "300",
		},
	}
}

func namedPins(names []string) []Pin {
	pins := make([]Pin, len(names))
	for i, n := range names {
		pins[i] = Pin{Name: n}
	}
	return pins
}
