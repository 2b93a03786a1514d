// Package wire converts Buttplug message field names between the
// snake_case used internally by Go struct tags and the PascalCase used on
// the wire, preserving a small set of acronyms that the protocol keeps
// upper-cased (RSSI, FW12).
package wire

import (
	"strings"
	"unicode"
)

// acronyms keep their upper-case form when converted to PascalCase. ToSnake
// does not consult this table; splitWords' case-boundary rules keep an
// upper-case run such as "RSSI" or "FW12" together as one word.
var acronyms = map[string]string{
	"rssi": "RSSI",
	"fw12": "FW12",
}

// ToPascal converts a snake_case field name to the wire's PascalCase,
// e.g. "device_index" -> "DeviceIndex", "rssi_level" -> "RSSILevel".
func ToPascal(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if upper, ok := acronyms[strings.ToLower(p)]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(capitalize(p))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// ToSnake converts a wire PascalCase field name to internal snake_case,
// e.g. "DeviceIndex" -> "device_index", "RSSILevel" -> "rssi_level".
func ToSnake(s string) string {
	if s == "" {
		return s
	}

	words := splitWords(s)
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	return strings.Join(lower, "_")
}

// splitWords breaks a PascalCase identifier into its constituent words,
// treating a run of upper-case letters followed by a lower-case letter as
// the boundary between an acronym and the word that follows it (so
// "RSSILevel" splits as ["RSSI", "Level"], matching the acronym set).
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		switch {
		case unicode.IsUpper(prev) && unicode.IsLower(cur):
			// Start of a new word is one rune back, unless that would
			// split a two-letter word that is itself the start.
			if i-1 > start && unicode.IsUpper(runes[i-1]) {
				words = append(words, string(runes[start:i-1]))
				start = i - 1
			}
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}
