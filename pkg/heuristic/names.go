// Package heuristic contains the naming-convention rules used to clean up
// and fill in component data when the source file is ambiguous or sparse.
//
// All functions here are pure: they take extracted strings and return
// normalized strings or canonical pin sets, with no I/O and no state. The
// markup walk in pkg/extract calls them during extraction; they are also
// exported for direct use in tests and tooling.
package heuristic

import (
	"strings"
	"unicode"
)

const (
	maxComponentNameLen = 50
	maxPinNameLen       = 25

	// PlaceholderName is substituted when a component name survives cleaning
	// with too little real content. The extractor also uses it to detect
	// false-positive matches on decorative markup.
	PlaceholderName = "Component"
)

// CleanName normalizes a component name extracted from markup. It strips
// non-printable characters and surrounding whitespace, substitutes
// [PlaceholderName] when fewer than 2 printable or fewer than 2 alphanumeric
// characters remain, and truncates to 50 characters. CleanName is idempotent.
func CleanName(name string) string {
	if name == "" {
		return "Unknown"
	}

	cleaned := strings.TrimSpace(stripNonPrintable(name))

	alnum := 0
	for _, r := range cleaned {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	if len([]rune(cleaned)) < 2 || alnum < 2 {
		return PlaceholderName
	}

	return truncate(cleaned, maxComponentNameLen)
}

// CleanPinName normalizes a pin name. Pin names are often single characters
// or symbols ("+", "K", "3"), so this is deliberately less aggressive than
// [CleanName]: only non-printables and surrounding whitespace are removed,
// and the fallback "Pin" applies only to a fully empty result. Truncates to
// 25 characters.
func CleanPinName(name string) string {
	cleaned := strings.TrimSpace(stripNonPrintable(name))
	if cleaned == "" {
		return "Pin"
	}
	return truncate(cleaned, maxPinNameLen)
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
