package extract

import (
	"fmt"
	"unicode/utf8"
)

// DecodeText performs a best-effort lossy decode of raw member bytes to a
// UTF-8 string. Invalid byte sequences are dropped rather than substituted,
// matching how legacy project members mix text with binary padding.
//
// The decode fails when the input is predominantly non-text (more than half
// the bytes are invalid UTF-8): at that point the caller should treat the
// member as binary and move on, not parse a near-empty husk.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	var out []byte
	invalid := 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			invalid++
			i++
			continue
		}
		out = append(out, data[i:i+size]...)
		i += size
	}

	if invalid*2 > len(data) {
		return "", fmt.Errorf("decode: %d of %d bytes are not valid UTF-8", invalid, len(data))
	}
	return string(out), nil
}
