package heuristic

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "Unknown"},
		{"plain", "ARDUINO_UNO_R3", "ARDUINO_UNO_R3"},
		{"surrounding whitespace", "  R5  ", "R5"},
		{"non-printables stripped", "IC\x001\x02", "IC1"},
		{"too short", "R", PlaceholderName},
		{"too few alphanumerics", "+-#!", PlaceholderName},
		{"single alnum among symbols", "--5--", PlaceholderName},
		{"truncated to 50", string(make50('A')) + "XYZ", string(make50('A'))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.in); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{"", "R", "  LED-RED  ", "ARDUINO_UNO_R3", "\x01\x02", string(make50('B')) + "tail"}
	for _, in := range inputs {
		once := CleanName(in)
		if twice := CleanName(once); twice != once {
			t.Errorf("CleanName not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanPinName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "Pin"},
		{"only non-printables", "\x00\x01", "Pin"},
		{"single char kept", "K", "K"},
		{"symbol kept", "+", "+"},
		{"number kept", "13", "13"},
		{"trimmed", " D13 ", "D13"},
		{"truncated to 25", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "ABCDEFGHIJKLMNOPQRSTUVWXY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPinName(tt.in); got != tt.want {
				t.Errorf("CleanPinName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func make50(r rune) []rune {
	runes := make([]rune, 50)
	for i := range runes {
		runes[i] = r
	}
	return runes
}
