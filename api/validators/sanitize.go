package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims whitespace and cuts the input to at most maxLen bytes
// without splitting a multi-byte rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || len(trimmed) <= maxLen {
		return trimmed
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}
